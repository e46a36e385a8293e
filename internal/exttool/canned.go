package exttool

import (
	"context"
	"fmt"
	"os"
)

func readProducedFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the recipe invocation
	if err != nil {
		return nil, fmt.Errorf("tool output file: %w", err)
	}
	return data, nil
}

// Canned is a Runner returning pre-recorded results, keyed by tool name.
// Recipes that shell out are tested against it.
type Canned struct {
	Results map[string]Result
	// Missing lists tool names that should behave as not installed.
	Missing map[string]bool

	Calls []Invocation
}

func (c *Canned) Run(_ context.Context, inv Invocation) (Result, error) {
	c.Calls = append(c.Calls, inv)
	if c.Missing[inv.Tool] {
		return Result{}, fmt.Errorf("%w: %s", ErrToolNotFound, inv.Tool)
	}
	res, ok := c.Results[inv.Tool]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrToolNotFound, inv.Tool)
	}
	return res, nil
}
