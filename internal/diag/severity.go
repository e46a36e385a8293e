package diag

// Severity defines how strongly a diagnostic affects the build outcome.
type Severity uint8

const (
	// SevInfo is for informational diagnostics; they never affect control flow.
	SevInfo Severity = iota
	// SevWarning marks data that was skipped or substituted; the build continues.
	SevWarning
	// SevMustFix marks data that must not be trusted or included.
	SevMustFix
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevMustFix:
		return "MUSTFIX"
	}
	return "UNKNOWN"
}
