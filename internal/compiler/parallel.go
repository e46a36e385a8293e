package compiler

import (
	"golang.org/x/sync/errgroup"
)

// CompileAll builds the named modules concurrently, at most workers at a time
// (workers <= 0 means unbounded). Recipes are the parallelization boundary:
// they only communicate through the registry and the session working set, both
// of which serialize access internally.
//
// Data-quality failures stay inside each module's Output; only hard errors
// abort the group, and the first one is returned.
func (s *Session) CompileAll(names []string, validate bool, workers int) (map[string]*Output, error) {
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, name := range names {
		name := name
		g.Go(func() error {
			return s.BuildStored(name, validate).Err
		})
	}
	err := g.Wait()

	outs := make(map[string]*Output, len(names))
	for _, name := range names {
		if out := s.Output(name); out != nil {
			outs[name] = out
		}
	}
	return outs, err
}
