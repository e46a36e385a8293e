package compiler

import (
	"voxkit/internal/diag"
)

// Build compiles one module by name and returns its payload and diagnostics.
//
// Dependency failures never run the recipe: they are wrapped as a
// DependenciesNotValid entry plus one re-tagged CompilingLog* entry per
// underlying diagnostic so a human can trace root cause through the wrapper.
// With validate=false, MustFix entries produced by content validators are
// downgraded to Warning before merging; structural failures never downgrade.
// Hard errors (environment, programming bugs) propagate as Go errors and are
// never masked as data-quality diagnostics.
func (s *Session) build(name string, validate bool) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag()
	rec, ok := RecipeFor(name)
	if !ok {
		bag.Add(diag.MustFix(diag.InvalidModuleData, name, "unknown module %q", name))
		return nil, bag, nil
	}

	in := Inputs{
		Raw:     make(map[string]any, len(rec.RawDeps)),
		Modules: make(map[string][]byte, len(rec.ModuleDeps)),
	}

	for _, dep := range rec.RawDeps {
		obj, depBag, err := s.Registry.Get(dep)
		if err != nil {
			return nil, bag, err
		}
		if obj == nil || depBag.HasMustFix() {
			wrapDependencyFailure(bag, name, dep, depBag)
			return nil, bag, nil
		}
		bag.Merge(depBag)
		in.Raw[dep] = obj
	}

	for _, dep := range rec.ModuleDeps {
		out := s.BuildStored(dep, validate)
		if out.Err != nil {
			return nil, bag, out.Err
		}
		if out.Data == nil || out.Bag.HasMustFix() {
			wrapDependencyFailure(bag, name, dep, out.Bag)
			return nil, bag, nil
		}
		in.Modules[dep] = out.Data
	}

	if s.Cache != nil {
		if data, hit := s.lookupCache(rec); hit {
			bag.Add(diag.Info(diag.CompilingLog, name, "reused cached payload (%d bytes)", len(data)))
			return data, bag, nil
		}
	}

	if rec.Validate != nil {
		vbag := rec.Validate(in)
		if !validate {
			downgradeValidatorEntries(vbag)
		}
		bag.Merge(vbag)
		if bag.HasMustFix() {
			return nil, bag, nil
		}
	}

	data, compileBag, err := rec.Compile(s, in)
	if err != nil {
		return nil, bag, err
	}
	bag.Merge(compileBag)
	if bag.HasMustFix() {
		return nil, bag, nil
	}
	if s.Cache != nil && !bag.HasWarnings() {
		s.storeCache(rec, data)
	}
	return data, bag, nil
}

// wrapDependencyFailure records that name cannot be compiled because dep is
// not valid. The underlying entries are preserved as informational compiling
// logs, re-tagged by their original severity.
func wrapDependencyFailure(bag *diag.Bag, name, dep string, depBag *diag.Bag) {
	bag.Add(diag.MustFix(diag.DependenciesNotValid, name, "dependent data %q is not valid", dep))
	for _, d := range depBag.Items() {
		code := diag.CompilingLogWithDataName
		switch d.Severity {
		case diag.SevMustFix:
			code = diag.CompilingLogWithError
		case diag.SevWarning:
			code = diag.CompilingLogWithWarning
		}
		bag.Add(diag.Info(code, name, "%s: %s", dep, d.Message))
	}
}

// downgradeValidatorEntries relaxes content-validator MustFix entries to
// Warning in place. Validation strictness is a caller-supplied policy, not a
// fixed property of a module; structural and parse failures keep their
// severity regardless.
func downgradeValidatorEntries(bag *diag.Bag) {
	bag.Reclassify(func(d *diag.Diagnostic) {
		if d.Severity == diag.SevMustFix && validatorCodes[d.Code] {
			d.Severity = diag.SevWarning
		}
	})
}
