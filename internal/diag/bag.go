package diag

import (
	"fmt"
	"sort"
)

// Bag is an ordered collector of diagnostics for one operation.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{items: make([]Diagnostic, 0, 4)}
}

// Add добавляет диагностику в конец.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// HasMustFix возвращает true, если есть хотя бы одна диагностика с Severity >= MustFix.
func (b *Bag) HasMustFix() bool {
	return b.HasAtLeast(SevMustFix)
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	return b.HasAtLeast(SevWarning)
}

// HasAtLeast reports whether the bag contains an entry at or above sev.
// The answer is monotonic under Merge: once true it stays true.
func (b *Bag) HasAtLeast(sev Severity) bool {
	if b == nil {
		return false
	}
	for i := range b.items {
		if b.items[i].Severity >= sev {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items returns a read-only view of the collected diagnostics.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// Merge appends every entry from other; nothing is ever dropped.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by: data name, severity (desc), code (asc), message.
// The order is total and deterministic for golden output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Data != dj.Data {
			return di.Data < dj.Data
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})
}

// Reclassify applies f to every entry in place. Dispatch uses it to apply
// severity policy (e.g. relaxing validator MustFix entries) before a merge.
func (b *Bag) Reclassify(f func(d *Diagnostic)) {
	for i := range b.items {
		f(&b.items[i])
	}
}

// Dedup drops exact repeats (code+data+message), keeping first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s:%s", d.Code, d.Data, d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
