package compiler

import (
	"bytes"
	"strconv"

	"voxkit/internal/binenc"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

// compileWordBreaker encodes the segmentation data folder:
//
//	u32 breaking char count, u32 dictionary word count, u32 trie size,
//	breaking codepoints (u32 each),
//	trie over main words and particles (main words first).
//
// Breaking char rows are "0xNNNN" codepoints; unparseable rows are reported
// and skipped.
func compileWordBreaker(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	data := in.Raw[rawdata.NameWordBreaker].(*rawdata.WordBreakerData)

	breaking := make([]uint32, 0, len(data.BreakingChars))
	for i, row := range data.BreakingChars {
		cp, err := strconv.ParseUint(row, 0, 32)
		if err != nil {
			bag.Add(diag.Warning(diag.InvalidModuleData, container.ModWordBreaker, "breaking char row %d: bad codepoint %q", i+1, row))
			continue
		}
		breaking = append(breaking, uint32(cp))
	}
	if len(breaking) == 0 {
		bag.Add(diag.MustFix(diag.InvalidModuleData, container.ModWordBreaker, "no usable breaking characters"))
		return nil, bag, nil
	}

	words := make([]string, 0, len(data.MainWords)+len(data.Particles))
	words = append(words, data.MainWords...)
	words = append(words, data.Particles...)
	trie := binenc.BuildTrie(words)
	trieBytes := trie.Serialize()

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutCount(len(breaking))
	w.PutCount(trie.Count())
	w.PutCount(len(trieBytes))
	for _, cp := range breaking {
		w.PutUint32(cp)
	}
	buf.Write(trieBytes)
	return buf.Bytes(), bag, nil
}
