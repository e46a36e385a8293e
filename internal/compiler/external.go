package compiler

import (
	"errors"
	"os"
	"strings"

	"voxkit/internal/diag"
	"voxkit/internal/exttool"
	"voxkit/internal/rawdata"
)

// toolOutputFile is the payload name every external compiler is asked to
// produce inside its scratch directory.
const toolOutputFile = "out.bin"

// compileWithTool builds the encoder for a module produced by a legacy
// command-line compiler. The tool is invoked as
//
//	<tool> <source path> -o out.bin
//
// in a scratch directory; out.bin becomes the module payload. Tool chatter is
// preserved as informational compiling logs, a missing binary maps to
// ToolNotFound and a nonzero exit to InvalidModuleData. Anything else (exec
// plumbing, scratch dir creation) is an environment error and propagates.
func compileWithTool(tool, rawName string) CompileFn {
	return func(s *Session, in Inputs) ([]byte, *diag.Bag, error) {
		bag := diag.NewBag()
		src := in.Raw[rawName].(*rawdata.SourceFile)

		dir, err := os.MkdirTemp("", "voxkit-"+tool+"-")
		if err != nil {
			return nil, bag, err
		}
		defer func() {
			_ = os.RemoveAll(dir)
		}()

		res, err := s.Runner.Run(s.ctx, exttool.Invocation{
			Tool:       tool,
			Args:       []string{src.Path, "-o", toolOutputFile},
			Dir:        dir,
			OutputFile: toolOutputFile,
		})
		if err != nil {
			if errors.Is(err, exttool.ErrToolNotFound) {
				bag.Add(diag.MustFix(diag.ToolNotFound, tool, "external compiler %q is not installed", tool))
				return nil, bag, nil
			}
			return nil, bag, err
		}

		logToolOutput(bag, tool, diag.CompilingLog, res.Stdout)
		logToolOutput(bag, tool, diag.CompilingLogWithError, res.Stderr)

		if res.ExitCode != 0 {
			bag.Add(diag.MustFix(diag.InvalidModuleData, tool, "external compiler %q exited with code %d", tool, res.ExitCode))
			return nil, bag, nil
		}
		if len(res.OutputBytes) == 0 {
			bag.Add(diag.MustFix(diag.InvalidBinaryData, tool, "external compiler %q produced no output", tool))
			return nil, bag, nil
		}
		return res.OutputBytes, bag, nil
	}
}

// logToolOutput re-emits one captured stream line-by-line as Info entries so
// tool chatter survives into the error set without affecting its verdict.
func logToolOutput(bag *diag.Bag, tool string, code diag.Code, stream string) {
	for _, line := range strings.Split(stream, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		bag.Add(diag.Info(code, tool, "%s", line))
	}
}
