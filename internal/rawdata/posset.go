package rawdata

import (
	"encoding/xml"
	"os"

	"voxkit/internal/diag"
)

// PosTag is one part-of-speech tag of the POS set.
type PosTag struct {
	Name string `xml:"name,attr"`
	ID   uint16 `xml:"id,attr"`
}

// PosSet is the parsed part-of-speech tag table.
type PosSet struct {
	XMLName xml.Name `xml:"posSet"`
	Lang    string   `xml:"lang,attr"`
	Tags    []PosTag `xml:"pos"`
}

// LoadPosSet parses a POS set XML table.
func LoadPosSet(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the resolved registry
	if err != nil {
		return nil, bag, err
	}
	var ps PosSet
	if err := xml.Unmarshal(data, &ps); err != nil {
		bag.Add(diag.MustFix(diag.InvalidRawData, NamePosSet, "malformed POS set XML %q: %v", path, err))
		return nil, bag, nil
	}
	if len(ps.Tags) == 0 {
		bag.Add(diag.MustFix(diag.InvalidRawData, NamePosSet, "POS set %q contains no tags", path))
		return nil, bag, nil
	}
	return &ps, bag, nil
}

// LexiconSchema describes the word categories the lexicon files use. The
// POS-tagger table compiler joins it against the compiled POS set.
type LexiconSchema struct {
	XMLName    xml.Name         `xml:"lexiconSchema"`
	Categories []SchemaCategory `xml:"category"`
}

// SchemaCategory maps a lexicon word category onto a POS tag name.
type SchemaCategory struct {
	Name string `xml:"name,attr"`
	Pos  string `xml:"pos,attr"`
}

// LoadLexiconSchema parses the lexicon schema XML.
func LoadLexiconSchema(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the resolved registry
	if err != nil {
		return nil, bag, err
	}
	var s LexiconSchema
	if err := xml.Unmarshal(data, &s); err != nil {
		bag.Add(diag.MustFix(diag.InvalidRawData, NameLexiconSchema, "malformed lexicon schema XML %q: %v", path, err))
		return nil, bag, nil
	}
	if len(s.Categories) == 0 {
		bag.Add(diag.MustFix(diag.InvalidRawData, NameLexiconSchema, "lexicon schema %q has no categories", path))
		return nil, bag, nil
	}
	return &s, bag, nil
}
