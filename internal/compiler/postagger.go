package compiler

import (
	"bytes"

	"voxkit/internal/binenc"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

// posTaggerRecordSize: category name offset u32 + POS id u16 + pad u16.
const posTaggerRecordSize = 8

func validatePosTaggerPos(in Inputs) *diag.Bag {
	bag := diag.NewBag()
	schema := in.Raw[rawdata.NameLexiconSchema].(*rawdata.LexiconSchema)
	posSet := in.Raw[rawdata.NamePosSet].(*rawdata.PosSet)

	known := make(map[string]bool, len(posSet.Tags))
	for _, t := range posSet.Tags {
		known[t.Name] = true
	}
	seen := make(map[string]bool, len(schema.Categories))
	for _, c := range schema.Categories {
		if seen[c.Name] {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModPosTaggerPos, "duplicate lexicon category %q", c.Name))
		}
		seen[c.Name] = true
		if !known[c.Pos] {
			bag.Add(diag.MustFix(diag.InvalidModuleData, container.ModPosTaggerPos, "category %q references unknown POS tag %q", c.Name, c.Pos))
		}
	}
	return bag
}

// compilePosTaggerPos joins lexicon categories onto POS tag ids:
//
//	u32 record size, u32 record count, u32 POS table payload size, u32 pool size,
//	pool (UTF-16LE category names), pad to 4,
//	then per category: name offset u32, POS id u16, pad u16.
//
// The POS table payload size field stamps the compiled POS set this table was
// joined against; the runtime rejects a container where the two disagree.
// Categories with an unresolvable POS tag encode id 0 (only reachable when the
// caller relaxed validation).
func compilePosTaggerPos(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	schema := in.Raw[rawdata.NameLexiconSchema].(*rawdata.LexiconSchema)
	posSet := in.Raw[rawdata.NamePosSet].(*rawdata.PosSet)
	posPayload := in.Modules[container.ModPosSet]

	idByName := make(map[string]uint16, len(posSet.Tags))
	for _, t := range posSet.Tags {
		idByName[t.Name] = t.ID
	}

	pool := binenc.NewPool()
	offsets := make([]uint32, len(schema.Categories))
	for i, c := range schema.Categories {
		offsets[i] = pool.PutString(c.Name)
	}

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutUint32(posTaggerRecordSize)
	w.PutCount(len(schema.Categories))
	w.PutCount(len(posPayload))
	w.PutCount(pool.Len())
	buf.Write(pool.Bytes())
	binenc.Pad4(&buf)
	for i, c := range schema.Categories {
		w.PutUint32(offsets[i])
		w.PutUint16(idByName[c.Pos])
		w.PutUint16(0)
	}
	return buf.Bytes(), bag, nil
}
