package compiler

import (
	"bytes"

	"voxkit/internal/binenc"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

// unitRecordSize: name offset u32 + unit id u16 + pad u16.
const unitRecordSize = 8

func validateUnitTable(in Inputs) *diag.Bag {
	bag := diag.NewBag()
	table := in.Raw[rawdata.NameUnitTable].(*rawdata.UnitTable)
	seenName := make(map[string]bool, len(table.Units))
	seenID := make(map[uint16]bool, len(table.Units))
	for _, u := range table.Units {
		if seenName[u.Name] {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModUnitGenerator, "duplicate unit name %q", u.Name))
		}
		if seenID[u.ID] {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModUnitGenerator, "duplicate unit id %d (%q)", u.ID, u.Name))
		}
		seenName[u.Name] = true
		seenID[u.ID] = true
	}
	return bag
}

// compileUnitGenerator encodes the synthesis unit table:
//
//	u32 record size, u32 unit count, u32 pool size,
//	pool (UTF-16LE unit names), pad to 4,
//	then per unit: name offset u32, unit id u16, pad u16.
func compileUnitGenerator(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	table := in.Raw[rawdata.NameUnitTable].(*rawdata.UnitTable)

	pool := binenc.NewPool()
	offsets := make([]uint32, len(table.Units))
	for i, u := range table.Units {
		offsets[i] = pool.PutString(u.Name)
	}

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutUint32(unitRecordSize)
	w.PutCount(len(table.Units))
	w.PutCount(pool.Len())
	buf.Write(pool.Bytes())
	binenc.Pad4(&buf)
	for i, u := range table.Units {
		w.PutUint32(offsets[i])
		w.PutUint16(u.ID)
		w.PutUint16(0)
	}
	return buf.Bytes(), bag, nil
}
