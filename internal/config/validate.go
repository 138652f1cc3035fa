package config

import (
	"fmt"
	"strings"
)

// Validate checks if the configuration is valid
// It returns an error if any required fields are missing or invalid
// This should be called after loading the configuration
func (c *Config) Validate() error {
	// Validate tool configuration
	if err := c.Tools.Validate(); err != nil {
		return fmt.Errorf("tools config: %w", err)
	}

	// Validate project configuration
	if err := c.Project.Validate(); err != nil {
		return fmt.Errorf("project config: %w", err)
	}

	// Validate git configuration
	if err := c.Git.Validate(); err != nil {
		return fmt.Errorf("git config: %w", err)
	}

	return nil
}

// Validate checks if the tool configuration is valid
func (t *ToolsConfig) Validate() error {
	if t.NgBin == "" {
		return fmt.Errorf("ng_bin must not be empty")
	}

	validManagers := []string{"npm", "pnpm", "yarn"}
	if t.PackageManager != "" && !contains(validManagers, t.PackageManager) {
		return fmt.Errorf("invalid package_manager: %s (must be one of: %s)",
			t.PackageManager, strings.Join(validManagers, ", "))
	}

	return nil
}

// Validate checks if the project configuration is valid
func (p *ProjectConfig) Validate() error {
	// These are the stylesheet dialects the Angular generator accepts
	validStyles := []string{"css", "scss", "sass", "less"}
	if !contains(validStyles, p.Style) {
		return fmt.Errorf("invalid style: %s (must be one of: %s)",
			p.Style, strings.Join(validStyles, ", "))
	}

	if p.Prefix == "" {
		return fmt.Errorf("prefix must not be empty")
	}

	// The prefix ends up in ESLint selector rules and component selectors,
	// so it has to be a plain lowercase identifier
	for _, r := range p.Prefix {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("invalid prefix: %s (lowercase letters, digits and dashes only)", p.Prefix)
		}
	}

	return nil
}

// Validate checks if the git configuration is valid
// The author fields are only required when repository setup is enabled
func (g *GitConfig) Validate() error {
	if !g.Enabled {
		return nil
	}

	if g.AuthorName == "" {
		return fmt.Errorf("author_name is required when git setup is enabled")
	}

	if g.AuthorEmail == "" || !strings.Contains(g.AuthorEmail, "@") {
		return fmt.Errorf("author_email must be a valid email address, got: %q", g.AuthorEmail)
	}

	if g.CommitMessage == "" {
		return fmt.Errorf("commit_message must not be empty")
	}

	return nil
}

// contains checks if a string slice contains a value
func contains(slice []string, value string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
