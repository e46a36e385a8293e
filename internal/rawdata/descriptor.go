package rawdata

import (
	"strings"

	"voxkit/internal/diag"
)

// Stable raw-data names. They are the keys consumers use to pull sources out
// of the Registry; recipes refer to them, never to paths.
const (
	NamePhoneSet      = "PhoneSetXml"
	NamePosSet        = "PosSetXml"
	NameLexiconSchema = "LexiconSchemaXml"
	NameCharTable     = "CharTableText"
	NameWordBreaker   = "WordBreakerData"
	NameToneRules     = "ToneRulesText"
	NameUnitTable     = "UnitTableText"
	NameDomainList    = "DomainListText"
	NamePolyphone     = "PolyphoneModelDir"
	NameProsody       = "ProsodyModelDir"
	NameLexicon       = "LexiconXml"
	NameLtsRules      = "LtsRulesText"
	NameTnRules       = "TnRulesXml"
	NameFstNeRules    = "FstNeRulesText"
	NamePosRules      = "PosRulesText"
	NameGeneralRules  = "GeneralRulesText"
)

// langPlaceholder is substituted with the session language code when a
// relative path template is rendered.
const langPlaceholder = "{lang}"

// LoaderFunc parses one raw source. Expected data conditions (malformed
// content, missing inner files) are reported through the returned bag with a
// nil object; the error return is reserved for environment and programming
// failures that must abort the build.
type LoaderFunc func(path string) (any, *diag.Bag, error)

// Descriptor describes one raw data source: its stable name, its default
// location relative to the data root and how to parse it.
type Descriptor struct {
	Name        string
	RelTemplate string
	Loader      LoaderFunc

	path       string
	overridden bool
	attempted  bool
	cached     any
}

// Path returns the currently resolved absolute path ("" until the registry is
// pointed at a data root or the path is overridden).
func (d *Descriptor) Path() string {
	return d.path
}

// templated reports whether the relative path depends on the session language.
func (d *Descriptor) templated() bool {
	return strings.Contains(d.RelTemplate, langPlaceholder)
}

func (d *Descriptor) render(lang Language) string {
	return strings.ReplaceAll(d.RelTemplate, langPlaceholder, lang.Code())
}
