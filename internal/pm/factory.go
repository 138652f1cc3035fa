package pm

import "fmt"

// New creates a package manager based on the configured name.
// This is a factory function that instantiates the correct implementation.
//
// Supported managers:
//   - "npm" (default)
//   - "pnpm"
//   - "yarn"
//
// An empty name defaults to npm, matching the behavior of the Angular CLI
// when no explicit package manager is configured.
func New(name string) (Manager, error) {
	switch name {
	case "", "npm":
		return npm{}, nil

	case "pnpm":
		return pnpm{}, nil

	case "yarn":
		return yarn{}, nil

	default:
		return nil, fmt.Errorf("unsupported package manager: %s (supported: npm, pnpm, yarn)", name)
	}
}
