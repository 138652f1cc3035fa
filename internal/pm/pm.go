// Package pm provides an abstraction over JavaScript package managers
// (npm, pnpm, yarn) so the initializer pipeline can install dependencies and
// run tool binaries without knowing which manager the user picked.
package pm

// Manager is the interface that all package managers must implement.
// Each method returns the binary and argument vector to spawn; actual
// execution is the pipeline's job (via the runner package), which keeps this
// package free of process-spawning side effects and trivially testable.
type Manager interface {
	// Name returns the manager identifier ("npm", "pnpm", "yarn")
	// Used for logging and user messages.
	Name() string

	// Install returns the command to install regular dependencies.
	Install(pkgs ...string) (bin string, args []string)

	// InstallDev returns the command to install development dependencies.
	InstallDev(pkgs ...string) (bin string, args []string)

	// Exec returns the command to run a locally installed tool binary
	// (e.g., "husky init" via npx / pnpm exec / yarn).
	Exec(tool string, toolArgs ...string) (bin string, args []string)

	// RunScript returns the shell fragment that runs a locally installed
	// tool from a script context (used in the pre-commit hook).
	RunScript(tool string) string
}

// npm is the default package manager.
type npm struct{}

func (npm) Name() string { return "npm" }

func (npm) Install(pkgs ...string) (string, []string) {
	return "npm", append([]string{"install"}, pkgs...)
}

func (npm) InstallDev(pkgs ...string) (string, []string) {
	return "npm", append([]string{"install", "--save-dev"}, pkgs...)
}

func (npm) Exec(tool string, toolArgs ...string) (string, []string) {
	return "npx", append([]string{tool}, toolArgs...)
}

func (npm) RunScript(tool string) string { return "npx " + tool }

// pnpm uses "add" instead of "install" and its own exec subcommand.
type pnpm struct{}

func (pnpm) Name() string { return "pnpm" }

func (pnpm) Install(pkgs ...string) (string, []string) {
	return "pnpm", append([]string{"add"}, pkgs...)
}

func (pnpm) InstallDev(pkgs ...string) (string, []string) {
	return "pnpm", append([]string{"add", "--save-dev"}, pkgs...)
}

func (pnpm) Exec(tool string, toolArgs ...string) (string, []string) {
	return "pnpm", append([]string{"exec", tool}, toolArgs...)
}

func (pnpm) RunScript(tool string) string { return "pnpm exec " + tool }

// yarn (classic) resolves local binaries directly.
type yarn struct{}

func (yarn) Name() string { return "yarn" }

func (yarn) Install(pkgs ...string) (string, []string) {
	return "yarn", append([]string{"add"}, pkgs...)
}

func (yarn) InstallDev(pkgs ...string) (string, []string) {
	return "yarn", append([]string{"add", "--dev"}, pkgs...)
}

func (yarn) Exec(tool string, toolArgs ...string) (string, []string) {
	return "yarn", append([]string{tool}, toolArgs...)
}

func (yarn) RunScript(tool string) string { return "yarn " + tool }
