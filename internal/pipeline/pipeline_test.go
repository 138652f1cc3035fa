package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlame/nginit/internal/config"
	"github.com/wlame/nginit/internal/manifest"
	"github.com/wlame/nginit/internal/pm"
	"github.com/wlame/nginit/internal/runner"
)

// testConfig returns a configuration matching the stock defaults
func testConfig() *config.Config {
	return &config.Config{
		Tools:   config.ToolsConfig{NgBin: "ng", PackageManager: "npm"},
		Project: config.ProjectConfig{Style: "scss", Routing: true, Prefix: "app"},
		Git: config.GitConfig{
			AuthorName:    "nginit",
			AuthorEmail:   "nginit@localhost",
			CommitMessage: "Initial commit (scaffolded by nginit)",
		},
	}
}

// stubGenerator returns an OnRun hook that simulates the project generator:
// when "ng new <name>" comes through, it creates the project directory with
// a minimal package.json and stylesheet entry, like the real generator would.
func stubGenerator(base string) func(runner.Invocation) error {
	return func(inv runner.Invocation) error {
		if inv.Name != "ng" || len(inv.Args) < 2 || inv.Args[0] != "new" {
			return nil
		}

		dir := filepath.Join(base, inv.Args[1])
		if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
			return err
		}

		pkg := `{
  "name": "` + inv.Args[1] + `",
  "version": "0.0.0",
  "scripts": {
    "start": "ng serve",
    "build": "ng build",
    "lint": "legacy-linter ."
  }
}
`
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0o644); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, "src", "styles.scss"),
			[]byte("/* generator output */\n"), 0o644)
	}
}

func newTestPipeline(t *testing.T, cfg *config.Config, fake *runner.Fake) (*Pipeline, string) {
	t.Helper()
	base := t.TempDir()
	fake.OnRun = stubGenerator(base)

	mgr, err := pm.New(cfg.Tools.PackageManager)
	require.NoError(t, err)

	return New(cfg, mgr, fake, Options{BaseDir: base}), base
}

// TestCommandOrderAndDirThreading tests that the external commands run in
// the fixed order and that everything after the generator runs inside the
// project directory (the process working directory is never involved)
func TestCommandOrderAndDirThreading(t *testing.T) {
	fake := &runner.Fake{}
	p, base := newTestPipeline(t, testConfig(), fake)

	_, err := p.Run(context.Background(), "demo")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ng new demo --style scss --skip-git --routing",
		"npm install tailwindcss @tailwindcss/postcss",
		"npm install --save-dev @angular-eslint/schematics",
		"ng add @angular-eslint/schematics --skip-confirmation",
		"npm install --save-dev prettier prettier-eslint eslint-config-prettier eslint-plugin-prettier",
		"npm install --save-dev eslint-plugin-unused-imports",
		"npm install --save-dev eslint-plugin-simple-import-sort",
		"npm install --save-dev lint-staged husky",
		"npx husky init",
	}, fake.CommandLines())

	projectDir := filepath.Join(base, "demo")
	assert.Equal(t, base, fake.Calls[0].Dir, "the generator runs in the base directory")
	for _, inv := range fake.Calls[1:] {
		assert.Equal(t, projectDir, inv.Dir, "%s should run in the project directory", inv)
	}
}

// TestFailFast tests that a failing external command stops the sequence
// immediately: nothing after the failing command executes and the error
// names the offending command line
func TestFailFast(t *testing.T) {
	fake := &runner.Fake{FailOn: "npm install --save-dev eslint-plugin-unused-imports"}
	p, base := newTestPipeline(t, testConfig(), fake)

	_, err := p.Run(context.Background(), "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(),
		"failed to execute: npm install --save-dev eslint-plugin-unused-imports")

	// The failing command is the last one recorded
	lines := fake.CommandLines()
	assert.Equal(t, "npm install --save-dev eslint-plugin-unused-imports", lines[len(lines)-1])

	// None of the configuration files were written
	assert.NoFileExists(t, filepath.Join(base, "demo", ".prettierrc"))
	assert.NoFileExists(t, filepath.Join(base, "demo", "eslint.config.js"))
}

// TestGeneratorFailureLeavesNoProject tests failing at the very first step
func TestGeneratorFailureLeavesNoProject(t *testing.T) {
	fake := &runner.Fake{FailOn: "ng new"}
	p, base := newTestPipeline(t, testConfig(), fake)

	_, err := p.Run(context.Background(), "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute: ng new demo")

	require.Len(t, fake.Calls, 1)
	assert.NoDirExists(t, filepath.Join(base, "demo"))
}

// TestEndToEnd runs the full pipeline against the stub generator and checks
// every artifact: the config files, the hook, and the patched manifest
func TestEndToEnd(t *testing.T) {
	fake := &runner.Fake{}
	p, base := newTestPipeline(t, testConfig(), fake)

	st, err := p.Run(context.Background(), "demo")
	require.NoError(t, err)
	assert.Empty(t, st.Warnings)

	dir := filepath.Join(base, "demo")
	assert.Equal(t, dir, st.ProjectDir)

	assert.FileExists(t, filepath.Join(dir, ".postcssrc.json"))
	assert.FileExists(t, filepath.Join(dir, ".prettierrc"))
	assert.FileExists(t, filepath.Join(dir, ".prettierignore"))
	assert.FileExists(t, filepath.Join(dir, "eslint.config.js"))
	assert.FileExists(t, filepath.Join(dir, ".husky", "pre-commit"))

	// The stylesheet entry was overwritten with the Tailwind directive
	styles, err := os.ReadFile(filepath.Join(dir, "src", "styles.scss"))
	require.NoError(t, err)
	assert.Equal(t, "@import \"tailwindcss\";\n", string(styles))

	// The hook is executable and runs the staged-file runner
	hook, err := os.ReadFile(filepath.Join(dir, ".husky", "pre-commit"))
	require.NoError(t, err)
	assert.Equal(t, "npx lint-staged\n", string(hook))
	info, err := os.Stat(filepath.Join(dir, ".husky", "pre-commit"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "hook should be executable")

	// The manifest carries both patches: lint-staged plus the four scripts,
	// with last-write-wins on the pre-existing lint script and untouched
	// generator scripts
	m, err := manifest.Load(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, m, "lint-staged")

	scripts, ok := m["scripts"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ng lint", scripts["lint"])
	assert.Equal(t, "ng lint --fix", scripts["lint:fix"])
	assert.Equal(t, "prettier --write .", scripts["format"])
	assert.Equal(t, "prettier --check .", scripts["format:check"])
	assert.Equal(t, "ng serve", scripts["start"])
	assert.Equal(t, "ng build", scripts["build"])
}

// TestHookChmodFailureIsWarning tests the best-effort executable bit: a
// rejected permission change produces a warning but the run still completes
func TestHookChmodFailureIsWarning(t *testing.T) {
	orig := chmodHook
	chmodHook = func(string, os.FileMode) error {
		return errors.New("operation not permitted")
	}
	t.Cleanup(func() { chmodHook = orig })

	var warnings []string
	fake := &runner.Fake{}
	base := t.TempDir()
	fake.OnRun = stubGenerator(base)

	mgr, err := pm.New("npm")
	require.NoError(t, err)

	p := New(testConfig(), mgr, fake, Options{
		BaseDir: base,
		Warn:    func(msg string) { warnings = append(warnings, msg) },
	})

	st, err := p.Run(context.Background(), "demo")
	require.NoError(t, err, "chmod failure must not abort the pipeline")

	require.Len(t, st.Warnings, 1)
	assert.Contains(t, st.Warnings[0], "could not mark")
	assert.Equal(t, st.Warnings, warnings)

	// The hook content was still written
	assert.FileExists(t, filepath.Join(base, "demo", ".husky", "pre-commit"))
}

// TestGitSetup tests the optional repository initialization: the project
// ends up as a git repository with the toolchain in the initial commit
func TestGitSetup(t *testing.T) {
	cfg := testConfig()
	cfg.Git.Enabled = true

	fake := &runner.Fake{}
	p, base := newTestPipeline(t, cfg, fake)

	st, err := p.Run(context.Background(), "demo")
	require.NoError(t, err)

	assert.NotEmpty(t, st.CommitHash)
	assert.DirExists(t, filepath.Join(base, "demo", ".git"))
}

// TestProjectNameWithShellMetacharacters tests that the project name is
// passed to external commands as a single argv element. Commands are spawned
// directly, never through a shell, so spaces and metacharacters in the name
// cannot be interpreted as shell syntax
func TestProjectNameWithShellMetacharacters(t *testing.T) {
	fake := &runner.Fake{}
	p, base := newTestPipeline(t, testConfig(), fake)

	name := "my demo; echo pwned"
	st, err := p.Run(context.Background(), name)
	require.NoError(t, err)

	require.NotEmpty(t, fake.Calls)
	assert.Equal(t, name, fake.Calls[0].Args[1],
		"the name must reach the generator as one verbatim argument")
	assert.Equal(t, filepath.Join(base, name), st.ProjectDir)
}

// TestDryRunWritesNothing tests that --dry-run executes no commands via the
// real runner and touches no files
func TestDryRunWritesNothing(t *testing.T) {
	fake := &runner.Fake{}
	base := t.TempDir()

	mgr, err := pm.New("npm")
	require.NoError(t, err)

	var messages []string
	p := New(testConfig(), mgr, fake, Options{
		BaseDir: base,
		DryRun:  true,
		Info:    func(msg string) { messages = append(messages, msg) },
	})

	// No stub generator hook: in dry-run mode the project directory is
	// never created and the pipeline must not care
	_, err = p.Run(context.Background(), "demo")
	require.NoError(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not create any files")

	assert.Contains(t, messages, "would write .prettierrc")
	assert.Contains(t, messages, "would update package.json (lint-staged mapping, scripts)")
}
