package diag

import "fmt"

// New builds a diagnostic with an explicit severity.
func New(sev Severity, code Code, data, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Data:     data,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewDefault builds a diagnostic carrying the code's default severity.
func NewDefault(code Code, data, format string, args ...any) Diagnostic {
	return New(code.DefaultSeverity(), code, data, format, args...)
}

// MustFix is a shortcut for SevMustFix diagnostics.
func MustFix(code Code, data, format string, args ...any) Diagnostic {
	return New(SevMustFix, code, data, format, args...)
}

// Warning is a shortcut for SevWarning diagnostics.
func Warning(code Code, data, format string, args ...any) Diagnostic {
	return New(SevWarning, code, data, format, args...)
}

// Info is a shortcut for SevInfo diagnostics.
func Info(code Code, data, format string, args ...any) Diagnostic {
	return New(SevInfo, code, data, format, args...)
}
