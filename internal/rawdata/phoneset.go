package rawdata

import (
	"encoding/xml"
	"os"

	"voxkit/internal/diag"
)

// Phone is one entry of the phone inventory. Insertion order of the source
// table is preserved; the runtime format is explicitly unsorted.
type Phone struct {
	Name    string `xml:"name,attr"`
	ID      uint16 `xml:"id,attr"`
	Feature string `xml:"feature,attr"`
}

// PhoneSet is the parsed phone inventory table.
type PhoneSet struct {
	XMLName xml.Name `xml:"phoneSet"`
	Lang    string   `xml:"lang,attr"`
	Phones  []Phone  `xml:"phone"`
}

// LoadPhoneSet parses a phone set XML table. Content validation (duplicate
// keys and the like) is left to the module compiler so the strictness policy
// stays a caller decision.
func LoadPhoneSet(path string) (any, *diag.Bag, error) {
	bag := diag.NewBag()
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the resolved registry
	if err != nil {
		return nil, bag, err
	}
	var ps PhoneSet
	if err := xml.Unmarshal(data, &ps); err != nil {
		bag.Add(diag.MustFix(diag.InvalidRawData, NamePhoneSet, "malformed phone set XML %q: %v", path, err))
		return nil, bag, nil
	}
	if len(ps.Phones) == 0 {
		bag.Add(diag.MustFix(diag.InvalidRawData, NamePhoneSet, "phone set %q contains no phones", path))
		return nil, bag, nil
	}
	return &ps, bag, nil
}
