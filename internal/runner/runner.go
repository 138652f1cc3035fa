// Package runner provides a stub-friendly abstraction over external command
// execution. The initializer pipeline never spawns processes directly - it goes
// through the Runner interface so tests can substitute a recording fake.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Invocation describes a single external command to run.
// Dir is always set explicitly by the caller - the pipeline never changes the
// process working directory, it threads the target directory through every
// invocation instead.
type Invocation struct {
	// Name is the binary to run (e.g., "ng", "npm", "npx")
	Name string

	// Args are the command arguments (e.g., ["install", "--save-dev", "prettier"])
	Args []string

	// Dir is the working directory for the command
	// Empty means the current directory of the nginit process
	Dir string
}

// String returns the invocation as a shell-like command line.
// Used in diagnostics when a command fails.
func (i Invocation) String() string {
	if len(i.Args) == 0 {
		return i.Name
	}
	return i.Name + " " + strings.Join(i.Args, " ")
}

// Runner is the interface for running external commands.
// Implementations must block until the command exits and return a non-nil
// error when the command exits with a non-zero status.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExecRunner is the production implementation of Runner using os/exec.
// The spawned process inherits the terminal streams by default, so the output
// of ng/npm is shown to the user exactly as if they had run the command
// themselves. Streams are overridable for tests.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner wired to the process streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes the command and waits for it to finish.
// There is no timeout - a hanging external command blocks the whole run,
// which matches the interactive nature of the tool (the user can ^C).
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}

	if err := cmd.Run(); err != nil {
		// Both non-zero exits and start failures (binary not found) come back
		// here; the pipeline wraps them with the full command line
		return err
	}

	return nil
}

// DryRunner prints the commands that would be executed without running them.
// Used by the --dry-run flag.
type DryRunner struct {
	Out io.Writer
}

// Run prints the invocation and succeeds.
func (r *DryRunner) Run(_ context.Context, inv Invocation) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	if inv.Dir != "" {
		fmt.Fprintf(out, "would run (in %s): %s\n", inv.Dir, inv)
	} else {
		fmt.Fprintf(out, "would run: %s\n", inv)
	}
	return nil
}
