package compiler

import (
	"bytes"

	"voxkit/internal/binenc"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

// charRecordSize: codepoint u32 + reading offset u32 + type u8 + pad 3 bytes.
const charRecordSize = 12

func validateCharTable(in Inputs) *diag.Bag {
	bag := diag.NewBag()
	table := in.Raw[rawdata.NameCharTable].(*rawdata.CharTable)
	seen := make(map[rune]int, len(table.Entries))
	for _, e := range table.Entries {
		r := firstRune(e.Char)
		if prev, ok := seen[r]; ok {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModCharTable, "character %q on row %d already defined on row %d", e.Char, e.Line, prev))
			continue
		}
		seen[r] = e.Line
	}
	return bag
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// compileCharTable encodes the normalization character table:
//
//	u32 record size, u32 record count, u32 pool size,
//	pool (UTF-16LE readings), pad to 4,
//	then per entry: codepoint u32, reading offset u32, type u8, 3 pad bytes.
func compileCharTable(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	table := in.Raw[rawdata.NameCharTable].(*rawdata.CharTable)

	pool := binenc.NewPool()
	offsets := make([]uint32, len(table.Entries))
	for i, e := range table.Entries {
		offsets[i] = pool.PutString(e.Reading)
	}

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutUint32(charRecordSize)
	w.PutCount(len(table.Entries))
	w.PutCount(pool.Len())
	buf.Write(pool.Bytes())
	binenc.Pad4(&buf)
	for i, e := range table.Entries {
		w.PutUint32(uint32(firstRune(e.Char)))
		w.PutUint32(offsets[i])
		w.PutUint8(e.Type)
		w.PutUint8(0)
		w.PutUint16(0)
	}
	return buf.Bytes(), bag, nil
}
