package compiler

import (
	"bytes"

	"voxkit/internal/binenc"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

const (
	// phoneNameUnits is the fixed name field width in UTF-16 code units.
	phoneNameUnits = 8
	// phoneRecordSize: name (8 units = 16 bytes) + id u16 + feature u8 + pad u8.
	phoneRecordSize = 20
)

// phoneFeatureCodes maps the articulatory feature attribute onto its runtime
// class byte. Unknown features encode as 0.
var phoneFeatureCodes = map[string]uint8{
	"Vowel":     1,
	"Consonant": 2,
	"Semivowel": 3,
	"Diphthong": 4,
	"Silence":   5,
}

func validatePhoneSet(in Inputs) *diag.Bag {
	bag := diag.NewBag()
	ps := in.Raw[rawdata.NamePhoneSet].(*rawdata.PhoneSet)
	seenName := make(map[string]bool, len(ps.Phones))
	seenID := make(map[uint16]bool, len(ps.Phones))
	for _, p := range ps.Phones {
		if seenName[p.Name] {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModPhoneSet, "duplicate phone name %q", p.Name))
		}
		if seenID[p.ID] {
			bag.Add(diag.MustFix(diag.DuplicateItemKey, container.ModPhoneSet, "duplicate phone id %d (%q)", p.ID, p.Name))
		}
		seenName[p.Name] = true
		seenID[p.ID] = true
		if _, ok := phoneFeatureCodes[p.Feature]; !ok {
			bag.Add(diag.Warning(diag.InvalidModuleData, container.ModPhoneSet, "phone %q has unknown feature %q", p.Name, p.Feature))
		}
	}
	return bag
}

// compilePhoneSet encodes the phone inventory as a fixed-record table:
//
//	u32 record size, u32 phone count,
//	then per phone: name (8 UTF-16 units), id u16, feature class u8, pad u8.
//
// Records keep the source table order; the runtime does a linear scan.
func compilePhoneSet(_ *Session, in Inputs) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	ps := in.Raw[rawdata.NamePhoneSet].(*rawdata.PhoneSet)

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutUint32(phoneRecordSize)
	w.PutCount(len(ps.Phones))
	for _, p := range ps.Phones {
		w.PutFixedText(p.Name, phoneNameUnits)
		w.PutUint16(p.ID)
		w.PutUint8(phoneFeatureCodes[p.Feature])
		w.PutUint8(0)
	}
	return buf.Bytes(), bag, nil
}
