// Package container assembles compiled voice-data modules into the single
// tagged container file the runtime mmaps. Layout is deterministic: modules
// are sorted by the canonical string form of their 128-bit token, never by
// registration order, so identical module sets produce byte-identical files.
package container

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"voxkit/internal/binenc"
	"voxkit/internal/diag"
	"voxkit/internal/rawdata"
)

// HeaderVersion is the container layout version written into the header.
const HeaderVersion uint32 = 1

// entry is one registered module in the working set.
type entry struct {
	name   string
	token  uuid.UUID
	format uuid.UUID
	data   []byte
}

// CompileFunc compiles one module by name and registers its output with the
// assembler; it is how Combine auto-compiles missing necessary modules
// without the container package depending on the dispatcher.
type CompileFunc func(name string, strict bool) (*diag.Bag, error)

// CombineOptions configures one Combine call.
type CombineOptions struct {
	Build    uint32
	Language rawdata.Language
	// Compile, when set, is invoked for each missing necessary module.
	Compile CompileFunc
	// StrictAutoCompile is forwarded to Compile; auto-compiled modules do not
	// silently inherit a relaxed validation policy.
	StrictAutoCompile bool
}

// Assembler accumulates compiled module payloads keyed by token.
type Assembler struct {
	// keyed by canonical token string; re-registering a token replaces the
	// previous entry (rebuild in place), it never duplicates.
	entries map[string]*entry
}

func NewAssembler() *Assembler {
	return &Assembler{entries: make(map[string]*entry, 16)}
}

// Register adds a compiled module under its reserved token.
//
// Empty payloads are reported as ZeroModuleData and dropped: "compiled to
// zero bytes" must never reach the container. A token string that does not
// parse as a GUID is a MustFix. Case-different token strings are the same
// token.
func (a *Assembler) Register(name string, data []byte, token, formatToken string) *diag.Bag {
	bag := diag.NewBag()

	tok, err := uuid.Parse(token)
	if err != nil {
		bag.Add(diag.MustFix(diag.InvalidGuidString, name, "module token %q is not a valid GUID", token))
		return bag
	}
	ftok, err := uuid.Parse(formatToken)
	if err != nil {
		bag.Add(diag.MustFix(diag.InvalidGuidString, name, "format token %q is not a valid GUID", formatToken))
		return bag
	}
	if len(data) == 0 {
		bag.Add(diag.Warning(diag.ZeroModuleData, name, "module %q compiled to zero bytes, dropped", name))
		delete(a.entries, tok.String())
		return bag
	}
	a.entries[tok.String()] = &entry{name: name, token: tok, format: ftok, data: data}
	return bag
}

// Has reports whether a module with usable payload is registered under name.
func (a *Assembler) Has(name string) bool {
	for _, e := range a.entries {
		if e.name == name && len(e.data) > 0 {
			return true
		}
	}
	return false
}

// Len returns the number of registered modules.
func (a *Assembler) Len() int {
	return len(a.entries)
}

// Combine checks the necessary set, auto-compiling any missing member, then
// serializes every registered module into outPath. Two Combine calls with no
// re-registration in between produce byte-identical files.
func (a *Assembler) Combine(outPath string, necessary []string, opts CombineOptions) (*diag.Bag, error) {
	bag := diag.NewBag()

	for _, name := range necessary {
		if a.Has(name) {
			continue
		}
		bag.Add(diag.Warning(diag.NecessaryDataMissing, name, "necessary module %q missing, compiling on demand", name))
		if opts.Compile == nil {
			continue
		}
		compileBag, err := opts.Compile(name, opts.StrictAutoCompile)
		bag.Merge(compileBag)
		if err != nil {
			return bag, err
		}
	}

	data := a.Serialize(opts.Build, opts.Language, bag)
	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		bag.Add(diag.Warning(diag.SaveBinaryFileFail, "", "failed to write container %q: %v", outPath, err))
	}
	return bag, nil
}

// Serialize renders the container image: a fixed header followed by every
// usable module, ascending by canonical token string (case-insensitive
// ordinal — uuid canonical form is lowercase), with no gaps.
func (a *Assembler) Serialize(build uint32, lang rawdata.Language, bag *diag.Bag) []byte {
	keys := make([]string, 0, len(a.entries))
	for k, e := range a.entries {
		if len(e.data) == 0 {
			if bag != nil {
				bag.Add(diag.Warning(diag.SkipCombiningData, e.name, "module %q has no payload, skipped", e.name))
			}
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.Compare(keys[i], keys[j]) < 0
	})

	var buf bytes.Buffer
	w := binenc.NewRecordWriter(&buf)
	w.PutUint32(HeaderVersion)
	w.PutUint32(build)
	w.PutUint32(lang.ID())
	for _, k := range keys {
		e := a.entries[k]
		buf.Write(e.token[:])
		buf.Write(e.format[:])
		w.PutCount(len(e.data))
		buf.Write(e.data)
	}
	return buf.Bytes()
}
