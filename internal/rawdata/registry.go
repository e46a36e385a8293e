package rawdata

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"voxkit/internal/diag"
)

// Registry is the name-keyed raw data store for one build session.
//
// The cache is the only long-lived mutable shared state of a session; it is
// populated once under lock so module compiles may run concurrently.
type Registry struct {
	mu          sync.Mutex
	root        string
	lang        Language
	descriptors map[string]*Descriptor
}

// NewRegistry builds a registry with every known raw-data kind registered.
func NewRegistry() *Registry {
	r := &Registry{descriptors: make(map[string]*Descriptor, 16)}
	for _, d := range defaultDescriptors() {
		r.Register(d)
	}
	return r
}

func defaultDescriptors() []*Descriptor {
	return []*Descriptor{
		{Name: NamePhoneSet, RelTemplate: "phoneset.xml", Loader: LoadPhoneSet},
		{Name: NamePosSet, RelTemplate: "posset.xml", Loader: LoadPosSet},
		{Name: NameLexiconSchema, RelTemplate: "lexicon.schema.xml", Loader: LoadLexiconSchema},
		{Name: NameCharTable, RelTemplate: "chartable.txt", Loader: LoadCharTable},
		{Name: NameWordBreaker, RelTemplate: "wordbreaker", Loader: LoadWordBreaker},
		{Name: NameToneRules, RelTemplate: "tone/{lang}.tone.txt", Loader: LoadToneRules},
		{Name: NameUnitTable, RelTemplate: "unittable.txt", Loader: LoadUnitTable},
		{Name: NameDomainList, RelTemplate: "domainlist.txt", Loader: LoadDomainList},
		{Name: NamePolyphone, RelTemplate: "models/polyphone", Loader: LoadModelDir},
		{Name: NameProsody, RelTemplate: "models/prosody", Loader: LoadModelDir},
		{Name: NameLexicon, RelTemplate: "lexicon.xml", Loader: LoadSourceFile},
		{Name: NameLtsRules, RelTemplate: "lts.rules", Loader: LoadSourceFile},
		{Name: NameTnRules, RelTemplate: "tnrules/{lang}.tnrule.xml", Loader: LoadSourceFile},
		{Name: NameFstNeRules, RelTemplate: "fstne.rules", Loader: LoadSourceFile},
		{Name: NamePosRules, RelTemplate: "pos.rules", Loader: LoadSourceFile},
		{Name: NameGeneralRules, RelTemplate: "general.rules", Loader: LoadSourceFile},
	}
}

// Register adds (or replaces) a descriptor under its name.
func (r *Registry) Register(d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[d.Name] = d
}

// SetDataRoot points the registry at a data root and resolves every
// descriptor whose path has not been explicitly overridden.
func (r *Registry) SetDataRoot(root string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = root
	for _, d := range r.descriptors {
		if d.overridden {
			continue
		}
		d.path = filepath.Join(root, filepath.FromSlash(d.render(r.lang)))
	}
}

// SetLanguage sets the session language and re-renders any language-templated
// relative path that has not been overridden.
func (r *Registry) SetLanguage(lang Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lang = lang
	if r.root == "" {
		return
	}
	for _, d := range r.descriptors {
		if d.overridden || !d.templated() {
			continue
		}
		d.path = filepath.Join(r.root, filepath.FromSlash(d.render(lang)))
	}
}

// Language returns the session language.
func (r *Registry) Language() Language {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lang
}

// OverridePath pins a descriptor to an explicit path. Overridden paths are
// left alone by SetDataRoot and SetLanguage.
func (r *Registry) OverridePath(name, path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.descriptors[name]
	if !ok {
		return false
	}
	d.path = path
	d.overridden = true
	return true
}

// PathOf returns the currently resolved path for a raw data name.
func (r *Registry) PathOf(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.descriptors[name]
	if !ok {
		return "", false
	}
	return d.path, true
}

// Names returns all registered raw-data names (unordered).
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.descriptors))
	for n := range r.descriptors {
		names = append(names, n)
	}
	return names
}

// Get returns the loaded object for name, loading it on first access.
//
// The load is attempted exactly once per session: after a failed attempt every
// later Get reports RawDataError without touching the file system again, so a
// known-bad source is neither reloaded nor re-reported with its original
// diagnostics.
func (r *Registry) Get(name string) (any, *diag.Bag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bag := diag.NewBag()
	d, ok := r.descriptors[name]
	if !ok {
		bag.Add(diag.MustFix(diag.RawDataNotFound, name, "raw data %q is not registered", name))
		return nil, bag, nil
	}
	if d.cached != nil {
		return d.cached, bag, nil
	}
	if d.attempted {
		bag.Add(diag.MustFix(diag.RawDataError, name, "raw data %q already failed to load in this session", name))
		return nil, bag, nil
	}
	d.attempted = true

	if d.path == "" {
		bag.Add(diag.MustFix(diag.PathNotInitialized, name, "no path configured for raw data %q", name))
		return nil, bag, nil
	}
	if _, err := os.Stat(d.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			bag.Add(diag.MustFix(diag.RawDataNotFound, name, "raw data file %q not found", d.path))
			return nil, bag, nil
		}
		return nil, bag, err
	}

	obj, loadBag, err := d.Loader(d.path)
	bag.Merge(loadBag)
	if err != nil {
		return nil, bag, err
	}
	// Cache only a healthy object; a failed load stays failed for the session.
	if obj != nil && !bag.HasMustFix() {
		d.cached = obj
		return obj, bag, nil
	}
	return nil, bag, nil
}
