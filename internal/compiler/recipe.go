package compiler

import (
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

// Inputs carries resolved dependencies into a validate or compile function.
type Inputs struct {
	Raw     map[string]any
	Modules map[string][]byte
}

// ValidateFn checks raw input content eagerly, before any bytes are encoded.
// Its MustFix entries are the ones the caller's strictness policy may relax.
type ValidateFn func(in Inputs) *diag.Bag

// CompileFn encodes one module. Expected data conditions go into the returned
// bag; the error return is reserved for environment and programming failures.
type CompileFn func(s *Session, in Inputs) ([]byte, *diag.Bag, error)

// Recipe declares a module's dependencies, its content validator and its
// encoder. Dependencies are data, not control flow: the dispatcher and the
// worker pool both derive build order from these declarations.
type Recipe struct {
	Name       string
	RawDeps    []string
	ModuleDeps []string
	Validate   ValidateFn
	Compile    CompileFn
}

// recipes is the fixed compilation table, keyed by module name.
var recipes = map[string]Recipe{
	container.ModPhoneSet: {
		Name:     container.ModPhoneSet,
		RawDeps:  []string{rawdata.NamePhoneSet},
		Validate: validatePhoneSet,
		Compile:  compilePhoneSet,
	},
	container.ModPosSet: {
		Name:     container.ModPosSet,
		RawDeps:  []string{rawdata.NamePosSet},
		Validate: validatePosSet,
		Compile:  compilePosSet,
	},
	container.ModPosTaggerPos: {
		Name:       container.ModPosTaggerPos,
		RawDeps:    []string{rawdata.NameLexiconSchema, rawdata.NamePosSet},
		ModuleDeps: []string{container.ModPosSet},
		Validate:   validatePosTaggerPos,
		Compile:    compilePosTaggerPos,
	},
	container.ModCharTable: {
		Name:     container.ModCharTable,
		RawDeps:  []string{rawdata.NameCharTable},
		Validate: validateCharTable,
		Compile:  compileCharTable,
	},
	container.ModWordBreaker: {
		Name:    container.ModWordBreaker,
		RawDeps: []string{rawdata.NameWordBreaker},
		Compile: compileWordBreaker,
	},
	container.ModToneTable: {
		Name:     container.ModToneTable,
		RawDeps:  []string{rawdata.NameToneRules},
		Validate: validateToneRules,
		Compile:  compileToneTable,
	},
	container.ModPolyphoneModel: {
		Name:    container.ModPolyphoneModel,
		RawDeps: []string{rawdata.NamePolyphone},
		Compile: compileModelBlob(rawdata.NamePolyphone),
	},
	container.ModProsodyModel: {
		Name:    container.ModProsodyModel,
		RawDeps: []string{rawdata.NameProsody},
		Compile: compileModelBlob(rawdata.NameProsody),
	},
	container.ModUnitGenerator: {
		Name:     container.ModUnitGenerator,
		RawDeps:  []string{rawdata.NameUnitTable},
		Validate: validateUnitTable,
		Compile:  compileUnitGenerator,
	},
	container.ModDomainList: {
		Name:    container.ModDomainList,
		RawDeps: []string{rawdata.NameDomainList},
		Compile: compileDomainList,
	},
	container.ModLexicon: {
		Name:    container.ModLexicon,
		RawDeps: []string{rawdata.NameLexicon},
		Compile: compileWithTool("lexcomp", rawdata.NameLexicon),
	},
	container.ModLtsRules: {
		Name:    container.ModLtsRules,
		RawDeps: []string{rawdata.NameLtsRules},
		Compile: compileWithTool("ltscomp", rawdata.NameLtsRules),
	},
	container.ModTnRules: {
		Name:    container.ModTnRules,
		RawDeps: []string{rawdata.NameTnRules},
		Compile: compileWithTool("tncomp", rawdata.NameTnRules),
	},
	container.ModFstNeRules: {
		Name:    container.ModFstNeRules,
		RawDeps: []string{rawdata.NameFstNeRules},
		Compile: compileWithTool("fstnecomp", rawdata.NameFstNeRules),
	},
	container.ModPosRules: {
		Name:    container.ModPosRules,
		RawDeps: []string{rawdata.NamePosRules},
		Compile: compileWithTool("poscomp", rawdata.NamePosRules),
	},
	container.ModGeneralRules: {
		Name:    container.ModGeneralRules,
		RawDeps: []string{rawdata.NameGeneralRules},
		Compile: compileWithTool("rulecomp", rawdata.NameGeneralRules),
	},
}

// RecipeFor returns the recipe registered under name.
func RecipeFor(name string) (Recipe, bool) {
	r, ok := recipes[name]
	return r, ok
}

// validatorCodes marks diagnostics produced by content validators (as opposed
// to structural/parse failures). Only these are downgraded to Warning when a
// caller compiles with validation relaxed.
var validatorCodes = map[diag.Code]bool{
	diag.DuplicateItemKey:  true,
	diag.InvalidModuleData: true,
	diag.DomainDataMissing: true,
}
