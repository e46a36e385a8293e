package rawdata

import (
	"strconv"

	"voxkit/internal/diag"
)

// CharEntry is one character table row: a character, its reading and a
// coarse type class used by text normalization.
type CharEntry struct {
	Char    string
	Reading string
	Type    uint8
	Line    int
}

// CharTable is the parsed character table.
type CharTable struct {
	Entries []CharEntry
}

// LoadCharTable parses the delimited character table. Rows are
// "char<TAB>reading<TAB>type"; malformed rows are reported and skipped so one
// bad row does not discard the table.
func LoadCharTable(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	lines, err := readTextLines(path)
	if err != nil {
		return nil, bag, err
	}
	table := &CharTable{Entries: make([]CharEntry, 0, len(lines))}
	for i, line := range lines {
		fields := splitFields(line)
		if len(fields) < 3 {
			bag.Add(diag.Warning(diag.InvalidRawData, NameCharTable, "char table row %d has %d fields, want 3", i+1, len(fields)))
			continue
		}
		typ, err := strconv.ParseUint(fields[2], 10, 8)
		if err != nil {
			bag.Add(diag.Warning(diag.InvalidRawData, NameCharTable, "char table row %d: bad type %q", i+1, fields[2]))
			continue
		}
		table.Entries = append(table.Entries, CharEntry{
			Char:    fields[0],
			Reading: fields[1],
			Type:    uint8(typ),
			Line:    i + 1,
		})
	}
	if len(table.Entries) == 0 {
		bag.Add(diag.MustFix(diag.InvalidRawData, NameCharTable, "char table %q has no usable rows", path))
		return nil, bag, nil
	}
	return table, bag, nil
}

// ToneRule associates a syllable pattern (wildcards allowed) with a tone
// value.
type ToneRule struct {
	Pattern string
	Tone    uint16
}

// ToneRules is the parsed per-language tone rule table.
type ToneRules struct {
	Rules []ToneRule
}

// LoadToneRules parses "pattern<TAB>tone" rows.
func LoadToneRules(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	lines, err := readTextLines(path)
	if err != nil {
		return nil, bag, err
	}
	rules := &ToneRules{Rules: make([]ToneRule, 0, len(lines))}
	for i, line := range lines {
		fields := splitFields(line)
		if len(fields) != 2 {
			bag.Add(diag.Warning(diag.InvalidRawData, NameToneRules, "tone rule row %d has %d fields, want 2", i+1, len(fields)))
			continue
		}
		tone, err := strconv.ParseUint(fields[1], 10, 16)
		if err != nil {
			bag.Add(diag.Warning(diag.InvalidRawData, NameToneRules, "tone rule row %d: bad tone %q", i+1, fields[1]))
			continue
		}
		rules.Rules = append(rules.Rules, ToneRule{Pattern: fields[0], Tone: uint16(tone)})
	}
	if len(rules.Rules) == 0 {
		bag.Add(diag.MustFix(diag.InvalidRawData, NameToneRules, "tone rule table %q has no usable rows", path))
		return nil, bag, nil
	}
	return rules, bag, nil
}

// Unit is one synthesis unit of the unit generator table.
type Unit struct {
	Name string
	ID   uint16
}

// UnitTable is the parsed unit generator table.
type UnitTable struct {
	Units []Unit
}

// LoadUnitTable parses "name<TAB>id" rows.
func LoadUnitTable(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	lines, err := readTextLines(path)
	if err != nil {
		return nil, bag, err
	}
	table := &UnitTable{Units: make([]Unit, 0, len(lines))}
	for i, line := range lines {
		fields := splitFields(line)
		if len(fields) != 2 {
			bag.Add(diag.Warning(diag.InvalidRawData, NameUnitTable, "unit table row %d has %d fields, want 2", i+1, len(fields)))
			continue
		}
		id, err := strconv.ParseUint(fields[1], 10, 16)
		if err != nil {
			bag.Add(diag.Warning(diag.InvalidRawData, NameUnitTable, "unit table row %d: bad id %q", i+1, fields[1]))
			continue
		}
		table.Units = append(table.Units, Unit{Name: fields[0], ID: uint16(id)})
	}
	if len(table.Units) == 0 {
		bag.Add(diag.MustFix(diag.InvalidRawData, NameUnitTable, "unit table %q has no usable rows", path))
		return nil, bag, nil
	}
	return table, bag, nil
}

// DomainList is the parsed list of domain names (weather, navigation, ...)
// the voice carries specialized data for.
type DomainList struct {
	Domains []string
}

// LoadDomainList parses one domain name per row.
func LoadDomainList(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	lines, err := readTextLines(path)
	if err != nil {
		return nil, bag, err
	}
	if len(lines) == 0 {
		bag.Add(diag.MustFix(diag.DomainDataMissing, NameDomainList, "domain list %q is empty", path))
		return nil, bag, nil
	}
	return &DomainList{Domains: lines}, bag, nil
}
