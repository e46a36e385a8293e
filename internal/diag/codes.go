package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Environment / tooling
	ToolNotFound Code = 1001

	// Raw data access
	RawDataNotFound    Code = 2001
	PathNotInitialized Code = 2002
	RawDataError       Code = 2003
	InvalidRawData     Code = 2004
	DataFolderNotFound Code = 2005
	BasicDataNotFound  Code = 2006
	DomainDataMissing  Code = 2007
	DuplicateItemKey   Code = 2008

	// Module compilation
	InvalidModuleData    Code = 3001
	DependenciesNotValid Code = 3002
	InvalidBinaryData    Code = 3003

	// Container assembly
	ZeroModuleData       Code = 4001
	NecessaryDataMissing Code = 4002
	SkipCombiningData    Code = 4003
	InvalidGuidString    Code = 4004
	SaveBinaryFileFail   Code = 4005

	// Compiling logs (informational)
	CompilingLog             Code = 5000
	CompilingLogWithError    Code = 5001
	CompilingLogWithWarning  Code = 5002
	CompilingLogWithDataName Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	ToolNotFound:             "External compiler tool not found",
	RawDataNotFound:          "Raw data file not found",
	PathNotInitialized:       "Raw data path not initialized",
	RawDataError:             "Raw data previously failed to load",
	InvalidRawData:           "Invalid raw data content",
	DataFolderNotFound:       "Raw data folder not found",
	BasicDataNotFound:        "Required basic data file not found",
	DomainDataMissing:        "Domain data missing",
	DuplicateItemKey:         "Duplicate item key",
	InvalidModuleData:        "Invalid module data",
	DependenciesNotValid:     "Dependent data is not valid",
	InvalidBinaryData:        "Invalid binary data",
	ZeroModuleData:           "Module data is empty",
	NecessaryDataMissing:     "Necessary module data missing",
	SkipCombiningData:        "Module skipped during combine",
	InvalidGuidString:        "Invalid GUID string",
	SaveBinaryFileFail:       "Failed to save binary file",
	CompilingLog:             "Compiling log",
	CompilingLogWithError:    "Compiling log (error)",
	CompilingLogWithWarning:  "Compiling log (warning)",
	CompilingLogWithDataName: "Compiling log (data)",
}

// codeSeverity holds the default severity per code. Callers may override it
// (e.g. validator MustFix entries downgraded to Warning when validation is
// relaxed), but the default is what the taxonomy in the runtime contract uses.
var codeSeverity = map[Code]Severity{
	ToolNotFound:             SevMustFix,
	RawDataNotFound:          SevMustFix,
	PathNotInitialized:       SevMustFix,
	RawDataError:             SevMustFix,
	InvalidRawData:           SevWarning,
	DataFolderNotFound:       SevMustFix,
	BasicDataNotFound:        SevMustFix,
	DomainDataMissing:        SevMustFix,
	DuplicateItemKey:         SevMustFix,
	InvalidModuleData:        SevMustFix,
	DependenciesNotValid:     SevMustFix,
	InvalidBinaryData:        SevWarning,
	ZeroModuleData:           SevWarning,
	NecessaryDataMissing:     SevWarning,
	SkipCombiningData:        SevWarning,
	InvalidGuidString:        SevMustFix,
	SaveBinaryFileFail:       SevWarning,
	CompilingLog:             SevInfo,
	CompilingLogWithError:    SevInfo,
	CompilingLogWithWarning:  SevInfo,
	CompilingLogWithDataName: SevInfo,
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ENV%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RAW%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CMP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("VCE%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LOG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// DefaultSeverity returns the severity the taxonomy assigns to the code.
func (c Code) DefaultSeverity() Severity {
	sev, ok := codeSeverity[c]
	if !ok {
		return SevMustFix
	}
	return sev
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
