package compiler

import (
	"bytes"

	"voxkit/internal/binenc"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

const (
	posNameUnits = 8
	// posRecordSize: name (8 units = 16 bytes) + id u16 + pad u16.
	posRecordSize = 20
)

func validatePosSet(in Inputs) *diag.Bag {
	bag := diag.NewBag()
	ps := in.Raw[rawdata.NamePosSet].(*rawdata.PosSet)
	seenName := make(map[string]bool, len(ps.Tags))
	seenID := make(map[uint16]bool, len(ps.Tags))
	for _, t := range ps.Tags {
		if seenName[t.Name] {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModPosSet, "duplicate POS tag name %q", t.Name))
		}
		if seenID[t.ID] {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModPosSet, "duplicate POS tag id %d (%q)", t.ID, t.Name))
		}
		seenName[t.Name] = true
		seenID[t.ID] = true
	}
	return bag
}

// compilePosSet encodes the POS tag table with the same fixed-record shape as
// the phone set: u32 record size, u32 count, then name/id records in source
// order.
func compilePosSet(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	ps := in.Raw[rawdata.NamePosSet].(*rawdata.PosSet)

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutUint32(posRecordSize)
	w.PutCount(len(ps.Tags))
	for _, t := range ps.Tags {
		w.PutFixedText(t.Name, posNameUnits)
		w.PutUint16(t.ID)
		w.PutUint16(0)
	}
	return buf.Bytes(), bag, nil
}
