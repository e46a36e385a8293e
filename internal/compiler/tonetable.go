package compiler

import (
	"bytes"

	"voxkit/internal/binenc"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

func validateToneRules(in Inputs) *diag.Bag {
	bag := diag.NewBag()
	rules := in.Raw[rawdata.NameToneRules].(*rawdata.ToneRules)
	seen := make(map[string]bool, len(rules.Rules))
	for _, r := range rules.Rules {
		key := binenc.RewriteWildcards(r.Pattern)
		if seen[key] {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModToneTable, "duplicate tone pattern %q", r.Pattern))
		}
		seen[key] = true
	}
	return bag
}

// compileToneTable encodes the tone sandhi rules as a pattern trie plus a
// tone value table indexed by trie pattern id:
//
//	u32 value width (2), u32 pattern count, u32 trie size,
//	trie, tone values (u16 each).
//
// The trie serializer keeps node offsets 4-aligned, so values start aligned
// without padding.
func compileToneTable(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	rules := in.Raw[rawdata.NameToneRules].(*rawdata.ToneRules)

	patterns := make([]string, len(rules.Rules))
	tones := make([]uint16, len(rules.Rules))
	for i, r := range rules.Rules {
		patterns[i] = r.Pattern
		tones[i] = r.Tone
	}

	trie := binenc.BuildTrie(patterns)
	values, err := binenc.ReorderByID(trie, patterns, tones)
	if err != nil {
		return nil, bag, err
	}
	trieBytes := trie.Serialize()

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutUint32(2)
	w.PutCount(trie.Count())
	w.PutCount(len(trieBytes))
	buf.Write(trieBytes)
	for _, v := range values {
		w.PutUint16(v)
	}
	binenc.Pad4(&buf)
	return buf.Bytes(), bag, nil
}
