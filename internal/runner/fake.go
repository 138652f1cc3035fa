package runner

import (
	"context"
	"fmt"
	"strings"
)

// Fake is a Runner implementation for tests.
// It records every invocation in order and can be configured to fail when a
// specific command comes up, which is how the fail-fast behavior of the
// pipeline is verified.
type Fake struct {
	// Calls records every invocation in execution order
	Calls []Invocation

	// FailOn makes Run return an error for the first invocation whose
	// command line starts with this prefix (e.g., "npm install --save-dev prettier")
	FailOn string

	// OnRun, if set, is called for every invocation after it is recorded.
	// Tests use it to simulate side effects of external commands, such as
	// the project generator creating the project directory.
	OnRun func(inv Invocation) error
}

// Run records the invocation and applies the configured behavior.
func (f *Fake) Run(_ context.Context, inv Invocation) error {
	f.Calls = append(f.Calls, inv)

	if f.FailOn != "" && strings.HasPrefix(inv.String(), f.FailOn) {
		return fmt.Errorf("exit status 1")
	}

	if f.OnRun != nil {
		return f.OnRun(inv)
	}

	return nil
}

// CommandLines returns the recorded invocations as command-line strings.
// Convenient for order assertions in tests.
func (f *Fake) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, inv := range f.Calls {
		lines = append(lines, inv.String())
	}
	return lines
}
