// Package config handles loading and managing configuration for nginit.
// It uses Viper to support multiple configuration sources: files, environment variables, and CLI flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the main configuration structure for nginit
// It maps directly to the TOML configuration file structure
//
// Every value has a default that reproduces the plain `nginit <name>`
// behavior, so the tool works without any configuration file at all.
type Config struct {
	// Tools contains the external binaries and package manager selection
	Tools ToolsConfig `mapstructure:"tools"`

	// Project contains the options passed to the project generator
	Project ProjectConfig `mapstructure:"project"`

	// Git contains the optional post-scaffold repository setup
	Git GitConfig `mapstructure:"git"`
}

// ToolsConfig holds the external tool configuration
type ToolsConfig struct {
	// NgBin is the Angular CLI binary to invoke (default: "ng")
	// Useful for pointing at a pinned install, e.g. "./node_modules/.bin/ng"
	NgBin string `mapstructure:"ng_bin"`

	// PackageManager selects how dependencies are installed: "npm", "pnpm" or "yarn"
	// Default: "npm"
	PackageManager string `mapstructure:"package_manager"`
}

// ProjectConfig holds the generator options
type ProjectConfig struct {
	// Style is the stylesheet dialect passed to the generator (default: "scss")
	Style string `mapstructure:"style"`

	// Routing enables router scaffolding in the generated project (default: true)
	Routing bool `mapstructure:"routing"`

	// Prefix is the selector prefix enforced by the generated ESLint rules
	// for components and directives (default: "app")
	Prefix string `mapstructure:"prefix"`
}

// GitConfig holds the optional git repository setup.
// The generator itself is always invoked with version-control initialization
// suppressed; when Enabled is set, nginit initializes the repository itself
// after the toolchain is fully wired, so the initial commit already contains
// the lint configuration.
type GitConfig struct {
	// Enabled turns on repository initialization and the initial commit
	// Also settable via the --git flag
	Enabled bool `mapstructure:"enabled"`

	// AuthorName is the name to use in the initial commit
	AuthorName string `mapstructure:"author_name"`

	// AuthorEmail is the email to use in the initial commit
	AuthorEmail string `mapstructure:"author_email"`

	// CommitMessage is the message of the initial commit
	CommitMessage string `mapstructure:"commit_message"`
}

// Load reads the configuration from a file and environment variables
// It follows this precedence order (highest to lowest):
//  1. CLI flags (handled by caller)
//  2. Environment variables
//  3. Configuration file
//  4. Default values
//
// Parameters:
//   - configPath: Path to the configuration file. If empty, will look for
//     "nginit.toml" in the current directory
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading
func Load(configPath string) (*Config, error) {
	// Create a new Viper instance
	v := viper.New()

	// Set configuration file details
	if configPath != "" {
		// User specified a config file path explicitly
		v.SetConfigFile(configPath)
	} else {
		// Look for config file in current directory
		v.SetConfigName("nginit") // Name of config file (without extension)
		v.SetConfigType("toml")   // Config file format
		v.AddConfigPath(".")      // Look in current directory
	}

	// Enable environment variable support
	// Example: NGINIT_TOOLS_PACKAGE_MANAGER=pnpm
	// The key replacer maps config keys like "tools.package_manager" to the
	// settable env name NGINIT_TOOLS_PACKAGE_MANAGER
	v.SetEnvPrefix("NGINIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	// These are used if no value is provided in the config file or environment
	setDefaults(v)

	// Read the configuration file
	if err := v.ReadInConfig(); err != nil {
		// Check if the error is because the file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found - this is only an error if user specified a path
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
			// Otherwise the defaults are the whole configuration; this is the
			// normal case for a first run
		} else {
			// Some other error reading the config file
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal the configuration into our Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// Apply environment variable overrides for specific fields
	// This handles special cases where we want to check well-known env vars
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// setDefaults sets default values for configuration options
// These defaults reproduce the stock `nginit <name>` behavior exactly
func setDefaults(v *viper.Viper) {
	// Tool defaults
	v.SetDefault("tools.ng_bin", "ng")
	v.SetDefault("tools.package_manager", "npm")

	// Project defaults
	v.SetDefault("project.style", "scss")
	v.SetDefault("project.routing", true)
	v.SetDefault("project.prefix", "app")

	// Git defaults
	v.SetDefault("git.enabled", false)
	v.SetDefault("git.author_name", "nginit")
	v.SetDefault("git.author_email", "nginit@localhost")
	v.SetDefault("git.commit_message", "Initial commit (scaffolded by nginit)")
}

// applyEnvOverrides applies environment variable overrides for specific fields
// This handles cases where a well-known variable exists outside the NGINIT_
// prefix (the standard git author variables)
func applyEnvOverrides(cfg *Config) {
	// Honor the standard git author variables for the initial commit,
	// but only when the config still carries the built-in defaults
	if cfg.Git.AuthorName == "nginit" {
		if name := os.Getenv("GIT_AUTHOR_NAME"); name != "" {
			cfg.Git.AuthorName = name
		}
	}

	if cfg.Git.AuthorEmail == "nginit@localhost" {
		if email := os.Getenv("GIT_AUTHOR_EMAIL"); email != "" {
			cfg.Git.AuthorEmail = email
		}
	}
}
