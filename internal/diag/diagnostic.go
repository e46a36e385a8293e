package diag

// Diagnostic is one severity-tagged build error or log entry.
//
// Data names the raw data source or module the entry is about; it is used for
// deterministic sorting and for wrapping dependency failures so the root cause
// stays traceable.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Data     string
	Message  string
}
