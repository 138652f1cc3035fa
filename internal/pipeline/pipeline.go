// Package pipeline implements the ordered project-initialization sequence:
// generate the Angular workspace, install the toolchain packages, write the
// configuration files and patch the package manifest.
//
// Steps execute strictly in order and the pipeline aborts on the first
// failing external invocation. Nothing is retried and nothing is rolled
// back - a failed run leaves the project directory partially configured,
// which is the honest state to leave it in.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wlame/nginit/internal/assets"
	"github.com/wlame/nginit/internal/config"
	"github.com/wlame/nginit/internal/git"
	"github.com/wlame/nginit/internal/manifest"
	"github.com/wlame/nginit/internal/pm"
	"github.com/wlame/nginit/internal/runner"
)

// chmodHook marks the pre-commit hook executable.
// A package variable so tests can simulate a filesystem that rejects the
// permission change (the warn-and-continue path).
var chmodHook = os.Chmod

// Options holds the optional knobs for constructing a Pipeline.
type Options struct {
	// BaseDir is the directory the project is created in (default: current directory)
	BaseDir string

	// DryRun prints what would happen instead of executing commands or writing files
	DryRun bool

	// Info and Warn receive progress and warning messages.
	// Nil callbacks are replaced with no-ops.
	Info func(msg string)
	Warn func(msg string)
}

// State accumulates the results of a pipeline run.
// The project directory and the in-memory manifest are threaded through the
// steps explicitly; the pipeline never changes the process working directory.
type State struct {
	// ProjectName is the name given on the command line, verbatim
	ProjectName string

	// ProjectDir is the generated project directory (BaseDir/ProjectName)
	ProjectDir string

	// Manifest is the in-memory package.json, loaded once and patched in order
	Manifest manifest.Manifest

	// CommitHash is set when the optional git step created an initial commit
	CommitHash string

	// Warnings collects non-fatal problems (chmod failure, git setup failure)
	Warnings []string
}

// Pipeline runs the initialization sequence.
type Pipeline struct {
	cfg    *config.Config
	mgr    pm.Manager
	run    runner.Runner
	base   string
	dryRun bool
	info   func(string)
	warn   func(string)
}

// New creates a Pipeline from the tool configuration, the package manager
// and the command runner.
func New(cfg *config.Config, mgr pm.Manager, run runner.Runner, opts Options) *Pipeline {
	info := opts.Info
	if info == nil {
		info = func(string) {}
	}
	warn := opts.Warn
	if warn == nil {
		warn = func(string) {}
	}

	return &Pipeline{
		cfg:    cfg,
		mgr:    mgr,
		run:    run,
		base:   opts.BaseDir,
		dryRun: opts.DryRun,
		info:   info,
		warn:   warn,
	}
}

// Run executes every step in order and returns the final state.
// On the first failing external command it returns an error naming the
// command line; configuration-file writes that fail surface as wrapped
// filesystem errors. Either way, no cleanup of earlier steps is attempted.
func (p *Pipeline) Run(ctx context.Context, name string) (*State, error) {
	st := &State{
		ProjectName: name,
		ProjectDir:  filepath.Join(p.base, name),
	}

	// Generate the workspace. Version-control setup is suppressed here;
	// the optional git step at the end takes care of it once the toolchain
	// is in place.
	p.info(fmt.Sprintf("Generating Angular workspace %q...", name))
	newArgs := []string{"new", name, "--style", p.cfg.Project.Style, "--skip-git"}
	if p.cfg.Project.Routing {
		newArgs = append(newArgs, "--routing")
	}
	if err := p.exec(ctx, p.base, p.cfg.Tools.NgBin, newArgs...); err != nil {
		return st, err
	}

	// Install the toolchain. Everything from here on runs inside the
	// project directory; if the generator somehow failed to create it, the
	// first install fails naturally.
	p.info("Installing Tailwind CSS...")
	if err := p.install(ctx, st, false, "tailwindcss", "@tailwindcss/postcss"); err != nil {
		return st, err
	}

	p.info("Adding angular-eslint...")
	if err := p.install(ctx, st, true, "@angular-eslint/schematics"); err != nil {
		return st, err
	}
	if err := p.exec(ctx, st.ProjectDir, p.cfg.Tools.NgBin,
		"add", "@angular-eslint/schematics", "--skip-confirmation"); err != nil {
		return st, err
	}

	p.info("Installing Prettier and ESLint integrations...")
	if err := p.install(ctx, st, true,
		"prettier", "prettier-eslint", "eslint-config-prettier", "eslint-plugin-prettier"); err != nil {
		return st, err
	}

	if err := p.install(ctx, st, true, "eslint-plugin-unused-imports"); err != nil {
		return st, err
	}

	if err := p.install(ctx, st, true, "eslint-plugin-simple-import-sort"); err != nil {
		return st, err
	}

	// Staged-file runner and hook manager.
	p.info("Installing lint-staged and husky...")
	if err := p.install(ctx, st, true, "lint-staged", "husky"); err != nil {
		return st, err
	}
	huskyBin, huskyArgs := p.mgr.Exec("husky", "init")
	if err := p.exec(ctx, st.ProjectDir, huskyBin, huskyArgs...); err != nil {
		return st, err
	}

	// Configuration files, written verbatim, overwriting whatever the
	// generator or the schematics left behind.
	p.info("Writing configuration files...")
	if err := p.writeFile(st, ".postcssrc.json", assets.PostCSSConfig); err != nil {
		return st, err
	}
	if err := p.writeFile(st, filepath.Join("src", "styles."+p.cfg.Project.Style), assets.StylesheetEntry); err != nil {
		return st, err
	}
	if err := p.writeFile(st, ".prettierrc", assets.PrettierConfig); err != nil {
		return st, err
	}
	if err := p.writeFile(st, ".prettierignore", assets.PrettierIgnore); err != nil {
		return st, err
	}
	if err := p.writeFile(st, "eslint.config.js", assets.ESLintConfig(p.cfg.Project.Prefix)); err != nil {
		return st, err
	}

	// Patch the package manifest. The manifest is read once, patched
	// in memory with pure functions, and rewritten in full after each patch.
	if err := p.patchManifest(st); err != nil {
		return st, err
	}

	// Optional: initialize the repository and create the initial commit.
	p.setupGit(st)

	return st, nil
}

// patchManifest applies the lint-staged mapping, writes the pre-commit hook
// and merges the lint/format scripts, keeping the ordered file states of the
// original sequence (hook written between the two manifest writes).
func (p *Pipeline) patchManifest(st *State) error {
	manifestPath := filepath.Join(st.ProjectDir, "package.json")

	if p.dryRun {
		p.info("would update package.json (lint-staged mapping, scripts)")
		p.info("would write .husky/pre-commit")
		return nil
	}

	p.info("Updating package.json...")
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	st.Manifest = manifest.WithLintStaged(m, assets.LintStagedRules())
	if err := st.Manifest.Save(manifestPath); err != nil {
		return err
	}

	if err := p.writeHook(st); err != nil {
		return err
	}

	st.Manifest, err = manifest.MergeScripts(st.Manifest, assets.PackageScripts(p.cfg.Tools.NgBin))
	if err != nil {
		return err
	}
	return st.Manifest.Save(manifestPath)
}

// writeHook creates .husky/pre-commit and marks it executable.
// The chmod is best effort: on platforms or filesystems that reject it the
// pipeline warns and keeps going, the hook content is still correct.
func (p *Pipeline) writeHook(st *State) error {
	hookDir := filepath.Join(st.ProjectDir, ".husky")
	if err := os.MkdirAll(hookDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", hookDir, err)
	}

	hookPath := filepath.Join(hookDir, "pre-commit")
	script := assets.HookScript(p.mgr.RunScript("lint-staged"))
	if err := os.WriteFile(hookPath, []byte(script), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", hookPath, err)
	}

	if err := chmodHook(hookPath, 0o755); err != nil {
		msg := fmt.Sprintf("could not mark %s executable: %v", hookPath, err)
		st.Warnings = append(st.Warnings, msg)
		p.warn(msg)
	}

	return nil
}

// setupGit initializes the repository and creates the initial commit when
// git setup is enabled. Failures are warnings, not pipeline aborts: the
// toolchain is already fully configured at this point.
func (p *Pipeline) setupGit(st *State) {
	if !p.cfg.Git.Enabled {
		return
	}

	if p.dryRun {
		p.info("would initialize git repository and create the initial commit")
		return
	}

	p.info("Initializing git repository...")
	hash, err := git.InitAndCommit(st.ProjectDir,
		p.cfg.Git.CommitMessage, p.cfg.Git.AuthorName, p.cfg.Git.AuthorEmail)
	if err != nil {
		msg := fmt.Sprintf("git setup failed: %v", err)
		st.Warnings = append(st.Warnings, msg)
		p.warn(msg)
		return
	}

	st.CommitHash = hash
}

// install runs a package install in the project directory.
func (p *Pipeline) install(ctx context.Context, st *State, dev bool, pkgs ...string) error {
	var bin string
	var args []string
	if dev {
		bin, args = p.mgr.InstallDev(pkgs...)
	} else {
		bin, args = p.mgr.Install(pkgs...)
	}
	return p.exec(ctx, st.ProjectDir, bin, args...)
}

// exec runs one external command via the runner and wraps any failure with
// the full command line, which is the diagnostic the user sees.
func (p *Pipeline) exec(ctx context.Context, dir, bin string, args ...string) error {
	inv := runner.Invocation{Name: bin, Args: args, Dir: dir}
	if err := p.run.Run(ctx, inv); err != nil {
		return fmt.Errorf("failed to execute: %s: %w", inv, err)
	}
	return nil
}

// writeFile writes one configuration payload relative to the project root.
func (p *Pipeline) writeFile(st *State, rel, content string) error {
	if p.dryRun {
		p.info("would write " + rel)
		return nil
	}

	path := filepath.Join(st.ProjectDir, rel)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
