package compiler

import (
	"context"
	"sync"

	"voxkit/internal/cache"
	"voxkit/internal/container"
	"voxkit/internal/diag"
	"voxkit/internal/exttool"
	"voxkit/internal/observ"
	"voxkit/internal/rawdata"
)

// Output is one compiled module in the session working set. Data == nil means
// the compile did not produce trustworthy bytes; that state blocks container
// inclusion and is distinct from a zero-length payload.
type Output struct {
	Name string
	Data []byte
	Bag  *diag.Bag
	Err  error
}

// Session owns the mutable state of one build: the raw-data registry, the
// external tool runner, an optional compiled-module disk cache and the
// working set of module outputs. A module is compiled at most once per
// session; concurrent first requests are serialized per module.
type Session struct {
	Registry *rawdata.Registry
	Runner   exttool.Runner
	Cache    *cache.Cache
	Timer    *observ.Timer

	ctx context.Context

	mu      sync.Mutex
	onces   map[string]*sync.Once
	outputs map[string]*Output
}

func NewSession(reg *rawdata.Registry, runner exttool.Runner) *Session {
	return &Session{
		Registry: reg,
		Runner:   runner,
		Timer:    observ.NewTimer(),
		ctx:      context.Background(),
		onces:    make(map[string]*sync.Once, 16),
		outputs:  make(map[string]*Output, 16),
	}
}

// WithContext sets the context forwarded to external tool runs.
func (s *Session) WithContext(ctx context.Context) *Session {
	s.ctx = ctx
	return s
}

// Output returns the stored output for name, or nil if it was never built.
func (s *Session) Output(name string) *Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputs[name]
}

// BuildStored compiles name unless the session already holds its output.
// The first caller's validation policy wins for the lifetime of the session;
// auto-compiles of missing necessary modules always request strict validation
// and therefore only relax if someone compiled the module earlier.
func (s *Session) BuildStored(name string, validate bool) *Output {
	s.mu.Lock()
	once, ok := s.onces[name]
	if !ok {
		once = &sync.Once{}
		s.onces[name] = once
	}
	s.mu.Unlock()

	once.Do(func() {
		span := s.Timer.Begin(name)
		data, bag, err := s.build(name, validate)
		s.Timer.End(span, "")
		s.mu.Lock()
		s.outputs[name] = &Output{Name: name, Data: data, Bag: bag, Err: err}
		s.mu.Unlock()
	})
	return s.Output(name)
}

// RegisterInto pushes a compiled output into the container assembler under
// its reserved tokens.
func (s *Session) RegisterInto(a *container.Assembler, out *Output) *diag.Bag {
	bag := diag.NewBag()
	if out == nil || out.Data == nil {
		return bag
	}
	tok, ok := container.TokenOf(out.Name)
	if !ok {
		bag.Add(diag.MustFix(diag.InvalidGuidString, out.Name, "no reserved token for module %q", out.Name))
		return bag
	}
	ftok, _ := container.FormatTokenOf(out.Name)
	bag.Merge(a.Register(out.Name, out.Data, tok.String(), ftok.String()))
	return bag
}
