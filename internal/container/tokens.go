package container

import (
	"sort"

	"github.com/google/uuid"
)

// Module names. These are the human-readable keys of the compilation recipes
// and of the container working set.
const (
	ModPhoneSet       = "PhoneSet"
	ModPosSet         = "PosSet"
	ModPosTaggerPos   = "PosTaggerPos"
	ModCharTable      = "CharTable"
	ModWordBreaker    = "WordBreaker"
	ModToneTable      = "ToneTable"
	ModPolyphoneModel = "PolyphoneModel"
	ModProsodyModel   = "ProsodyModel"
	ModUnitGenerator  = "UnitGenerator"
	ModDomainList     = "DomainList"
	ModLexicon        = "Lexicon"
	ModLtsRules       = "LtsRules"
	ModTnRules        = "TnRules"
	ModFstNeRules     = "FstNeRules"
	ModPosRules       = "PosRules"
	ModGeneralRules   = "GeneralRules"
)

type tokenPair struct {
	token  string
	format string
}

// moduleTokens is the reserved identifier table shared with the runtime that
// consumes the container. It is a protocol contract: never renumber an
// existing entry. The first GUID identifies the module kind, the second the
// binary layout version of its payload.
var moduleTokens = map[string]tokenPair{
	ModPhoneSet:       {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b101", "c0b1d2e3-0001-4a00-8000-5a9e30f6a101"},
	ModPosSet:         {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b102", "c0b1d2e3-0001-4a00-8000-5a9e30f6a102"},
	ModPosTaggerPos:   {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b103", "c0b1d2e3-0001-4a00-8000-5a9e30f6a103"},
	ModCharTable:      {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b104", "c0b1d2e3-0001-4a00-8000-5a9e30f6a104"},
	ModWordBreaker:    {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b105", "c0b1d2e3-0001-4a00-8000-5a9e30f6a105"},
	ModToneTable:      {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b106", "c0b1d2e3-0001-4a00-8000-5a9e30f6a106"},
	ModPolyphoneModel: {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b107", "c0b1d2e3-0001-4a00-8000-5a9e30f6a107"},
	ModProsodyModel:   {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b108", "c0b1d2e3-0001-4a00-8000-5a9e30f6a108"},
	ModUnitGenerator:  {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b109", "c0b1d2e3-0001-4a00-8000-5a9e30f6a109"},
	ModDomainList:     {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b10a", "c0b1d2e3-0001-4a00-8000-5a9e30f6a10a"},
	ModLexicon:        {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b10b", "c0b1d2e3-0001-4a00-8000-5a9e30f6a10b"},
	ModLtsRules:       {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b10c", "c0b1d2e3-0001-4a00-8000-5a9e30f6a10c"},
	ModTnRules:        {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b10d", "c0b1d2e3-0001-4a00-8000-5a9e30f6a10d"},
	ModFstNeRules:     {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b10e", "c0b1d2e3-0001-4a00-8000-5a9e30f6a10e"},
	ModPosRules:       {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b10f", "c0b1d2e3-0001-4a00-8000-5a9e30f6a10f"},
	ModGeneralRules:   {"8e3a45c1-77c2-4e54-9a5b-0d1f2a63b110", "c0b1d2e3-0001-4a00-8000-5a9e30f6a110"},
}

// NecessaryModules is the fixed set that must be present before a container
// is combined; missing ones are auto-compiled.
func NecessaryModules() []string {
	return []string{ModPhoneSet, ModPosTaggerPos, ModLexicon, ModCharTable, ModUnitGenerator}
}

// TokenOf returns the module identity token for a known module name.
func TokenOf(name string) (uuid.UUID, bool) {
	p, ok := moduleTokens[name]
	if !ok {
		return uuid.UUID{}, false
	}
	return uuid.MustParse(p.token), true
}

// FormatTokenOf returns the payload layout token for a known module name.
func FormatTokenOf(name string) (uuid.UUID, bool) {
	p, ok := moduleTokens[name]
	if !ok {
		return uuid.UUID{}, false
	}
	return uuid.MustParse(p.format), true
}

// ModuleNames returns every known module name, sorted.
func ModuleNames() []string {
	names := make([]string, 0, len(moduleTokens))
	for n := range moduleTokens {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// KnownModule reports whether name is in the reserved table.
func KnownModule(name string) bool {
	_, ok := moduleTokens[name]
	return ok
}
