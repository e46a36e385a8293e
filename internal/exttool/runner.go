// Package exttool abstracts the handful of legacy command-line compilers the
// build still delegates to. The core treats a tool run purely as an opaque
// byte-producing step: run, capture output, read the produced file.
package exttool

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrToolNotFound reports a missing external tool binary. Callers map it to
// the ToolNotFound diagnostic instead of aborting the whole build.
var ErrToolNotFound = errors.New("external tool not found")

// Invocation describes one external tool run.
type Invocation struct {
	Tool string
	Args []string
	Dir  string
	// OutputFile is the file (relative to Dir when not absolute) the tool is
	// expected to produce; its bytes become the module payload.
	OutputFile string
}

// Result captures everything the build keeps from a tool run.
type Result struct {
	ExitCode    int
	Stdout      string
	Stderr      string
	OutputBytes []byte
}

// Runner runs external tools. The exec-backed implementation is ExecRunner;
// tests substitute a canned runner so recipes stay testable without spawning
// processes.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecRunner runs tools through os/exec with captured output.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	var res Result
	path, err := exec.LookPath(inv.Tool)
	if err != nil {
		return res, fmt.Errorf("%w: %s", ErrToolNotFound, inv.Tool)
	}

	cmd := exec.CommandContext(ctx, path, inv.Args...) // #nosec G204 -- tool names come from the fixed recipe table
	cmd.Dir = inv.Dir
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			return res, runErr
		}
	}

	if inv.OutputFile != "" && res.ExitCode == 0 {
		out := inv.OutputFile
		if !filepath.IsAbs(out) {
			out = filepath.Join(inv.Dir, out)
		}
		data, err := readProducedFile(out)
		if err != nil {
			return res, err
		}
		res.OutputBytes = data
	}
	return res, nil
}
