// Package commands implements all CLI commands for nginit.
// It uses the Cobra library which is the standard for CLI applications in Go.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wlame/nginit/internal/config"
	"github.com/wlame/nginit/internal/pipeline"
	"github.com/wlame/nginit/internal/pm"
	"github.com/wlame/nginit/internal/runner"
	"github.com/wlame/nginit/pkg/version"
)

var (
	// cfgFile holds the path to the configuration file
	// This is set by the --config flag
	cfgFile string

	// verbose enables verbose output
	// This is set by the --verbose flag
	verbose bool

	// packageManager overrides the configured package manager
	packageManager string

	// gitSetup enables repository initialization after scaffolding
	gitSetup bool

	// dryRun prints the commands that would run without executing anything
	dryRun bool

	// versionShort restricts `nginit version` to the bare version number
	versionShort bool
)

// rootCmd represents the base command. Unlike most Cobra tools the root
// command does the actual work: `nginit <project-name>` runs the whole
// initializer pipeline.
var rootCmd = &cobra.Command{
	Use:   "nginit <project-name>",
	Short: "Scaffold an Angular workspace with a full linting toolchain",
	Long: `nginit generates an Angular workspace and wires a fixed linting and
formatting toolchain into it in one run:

  - Tailwind CSS with its PostCSS adapter
  - ESLint via the angular-eslint schematic
  - Prettier with full ESLint interop
  - unused-imports and simple-import-sort ESLint plugins
  - lint-staged running against staged files
  - a husky-managed pre-commit hook

The steps run strictly in order and the run aborts on the first failing
external command. No cleanup is attempted - a failed run leaves the project
directory partially configured.

Example usage:
  # Scaffold a project named "shop"
  nginit shop

  # Use pnpm and create an initial git commit
  nginit shop --package-manager pnpm --git

  # Show what would happen without running anything
  nginit shop --dry-run`,

	// Exactly one positional argument: the project name. The argument is
	// used verbatim as a directory name; no validation, no collision check.
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: nginit <project-name>")
		}
		return nil
	},

	// SilenceUsage prevents showing usage on errors
	// We don't want to show the full usage every time there's an error
	SilenceUsage: true,

	// SilenceErrors prevents Cobra from printing errors
	// We'll handle error printing ourselves for better control
	SilenceErrors: true,

	RunE: runInit,
}

// Execute is the main entry point for the CLI
// It's called from main.go and executes the root command
// Returns an error if command execution fails
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Persistent flags are available to all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./nginit.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")

	// Flags for the initializer itself
	rootCmd.Flags().StringVar(&packageManager, "package-manager", "",
		"package manager to use: npm, pnpm or yarn (default from config)")
	rootCmd.Flags().BoolVar(&gitSetup, "git", false,
		"initialize a git repository and create an initial commit")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"print the commands that would run without executing anything")

	versionCmd.Flags().BoolVar(&versionShort, "short", false,
		"print only the version number")

	rootCmd.AddCommand(versionCmd)
}

// runInit loads the configuration and executes the initializer pipeline.
func runInit(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	// 1. Load and validate configuration
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flag overrides beat the config file
	if packageManager != "" {
		cfg.Tools.PackageManager = packageManager
	}
	if gitSetup {
		cfg.Git.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// 2. Resolve the package manager
	mgr, err := pm.New(cfg.Tools.PackageManager)
	if err != nil {
		return err
	}

	if IsVerbose() {
		PrintInfo(fmt.Sprintf("Generator: %s, package manager: %s, style: %s",
			cfg.Tools.NgBin, mgr.Name(), cfg.Project.Style))
	}

	// 3. Run the pipeline. External command output streams straight to the
	// terminal; nginit only adds its own status lines around the steps.
	var run runner.Runner = runner.NewExecRunner()
	if dryRun {
		run = &runner.DryRunner{Out: cmd.OutOrStdout()}
	}

	p := pipeline.New(cfg, mgr, run, pipeline.Options{
		DryRun: dryRun,
		Info:   PrintInfo,
		Warn:   PrintWarning,
	})

	st, err := p.Run(cmd.Context(), projectName)
	if err != nil {
		return err
	}

	// 4. Success summary and next steps
	fmt.Println()
	PrintSuccess(fmt.Sprintf("Project %q is ready", st.ProjectName))
	if st.CommitHash != "" {
		PrintInfo(fmt.Sprintf("Initial commit: %.8s", st.CommitHash))
	}
	// Warnings were already printed as they happened; remind the user at the
	// end that the run was not perfectly clean
	if len(st.Warnings) > 0 {
		PrintWarning(fmt.Sprintf("completed with %d warning(s), see above", len(st.Warnings)))
	}

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", st.ProjectName)
	fmt.Printf("  %s start\n", mgr.Name())
	fmt.Println()
	fmt.Println("Available scripts:")
	fmt.Printf("  %s run lint          # check lint rules\n", mgr.Name())
	fmt.Printf("  %s run lint:fix      # fix lint violations\n", mgr.Name())
	fmt.Printf("  %s run format        # format all files\n", mgr.Name())
	fmt.Printf("  %s run format:check  # verify formatting\n", mgr.Name())

	return nil
}

// versionCmd displays version information about the binary
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version, commit hash, and build time of nginit.`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(version.Short())
			return
		}

		fmt.Println(version.String())

		if IsVerbose() {
			fmt.Println()
			info := version.Get()
			fmt.Printf("Version:    %s\n", info.Version)
			fmt.Printf("Commit:     %s\n", info.Commit)
			fmt.Printf("Build Time: %s\n", info.BuildTime)
		}
	},
}

// GetConfigFile returns the path to the configuration file
// This is used by subcommands to load the configuration
func GetConfigFile() string {
	return cfgFile
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
