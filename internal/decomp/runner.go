// Package decomp invokes the external normal-mode decomposition tool and
// locates the per-mode breakdown file it produces. It is glue around the
// collaborator, not analysis logic: the core consumes the file through
// package extract.
package decomp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner produces a decomposition file for a Hessian input.
type Runner interface {
	Run(ctx context.Context, hessianPath string) (nmaPath string, err error)
}

// DefaultArgs are the decomposition flags the analysis relies on: variational
// mode decomposition, mass-weighted displacements, automatic internal
// coordinate selection.
var DefaultArgs = []string{"--vmard", "--mwd", "--autosel"}

// Tool runs the decomposition script as a subprocess.
//
// The tool writes its output next to the input file; Run locates it by
// replacing the input extension with ".nma", falling back to appending
// ".nma" for tool versions that do so.
type Tool struct {
	// Command is the interpreter or binary, e.g. "python3".
	Command string
	// Script is the decomposition script path; empty when Command is a
	// standalone binary.
	Script string
	// Args are the tool flags; nil means DefaultArgs.
	Args []string
}

func (t Tool) Run(ctx context.Context, hessianPath string) (string, error) {
	if t.Command == "" {
		return "", fmt.Errorf("decomposition tool command is required")
	}
	abs, err := filepath.Abs(hessianPath)
	if err != nil {
		return "", fmt.Errorf("resolve hessian path: %w", err)
	}

	args := t.Args
	if args == nil {
		args = DefaultArgs
	}
	argv := make([]string, 0, len(args)+2)
	if t.Script != "" {
		argv = append(argv, t.Script)
	}
	argv = append(argv, args...)
	argv = append(argv, abs)

	cmd := exec.CommandContext(ctx, t.Command, argv...)
	if t.Script != "" {
		// Run from the script's directory so it finds its auxiliary files.
		cmd.Dir = filepath.Dir(t.Script)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("decomposition tool failed: %w\n%s", err, out.String())
	}

	return locateOutput(abs)
}

func locateOutput(hessianPath string) (string, error) {
	ext := filepath.Ext(hessianPath)
	candidates := []string{
		strings.TrimSuffix(hessianPath, ext) + ".nma",
		hessianPath + ".nma",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("decomposition tool produced no output (looked for %s)", strings.Join(candidates, ", "))
}
