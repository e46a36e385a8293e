package diag

import (
	"fmt"
	"strings"
)

// FormatGolden renders a bag into a stable single-line-per-entry string
// suitable for golden files and CLI short output. The bag itself is not
// mutated; entries are rendered in sorted order.
func FormatGolden(b *Bag) string {
	if b == nil || b.Len() == 0 {
		return ""
	}
	sorted := NewBag()
	sorted.Merge(b)
	sorted.Sort()

	var sb strings.Builder
	items := sorted.Items()
	for i, d := range items {
		sb.WriteString(formatLine(d))
		if i < len(items)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func formatLine(d Diagnostic) string {
	data := d.Data
	if data == "" {
		data = "-"
	}
	return fmt.Sprintf("%s %s %s %s", severityLabel(d.Severity), d.Code.ID(), data, sanitizeMessage(d.Message))
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevMustFix:
		return "mustfix"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
