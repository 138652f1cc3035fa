// Package manifest reads and patches the generated project's package.json.
//
// The manifest is always handled as a whole document: load the full JSON
// object, patch it in memory, write the full object back. There is no
// field-level update protocol. The patch operations are pure functions
// (manifest in, manifest out) so the pipeline can compose them explicitly
// and tests can verify them without touching the filesystem.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"dario.cat/mergo"
)

// Manifest is the parsed package.json document.
// It is kept as a generic map because package.json carries arbitrary keys
// (dependencies, angular workspace settings, user additions) that must
// survive a round trip untouched.
type Manifest map[string]any

// Load reads and parses the package.json at path.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return m, nil
}

// Save writes the whole manifest back to path.
// Two-space indentation matches what npm itself writes.
func (m Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	// npm keeps a trailing newline; preserve that convention
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// WithLintStaged returns a copy of the manifest with the lint-staged mapping
// set. Any pre-existing lint-staged block is replaced wholesale.
func WithLintStaged(m Manifest, rules map[string]any) Manifest {
	out := m.clone()
	out["lint-staged"] = rules
	return out
}

// MergeScripts returns a copy of the manifest with the given scripts merged
// into the scripts block. The merge is additive: pre-existing scripts with
// other names are preserved, and name collisions resolve last-write-wins in
// favor of the incoming scripts.
func MergeScripts(m Manifest, scripts map[string]string) (Manifest, error) {
	out := m.clone()

	// Start from whatever scripts the manifest already has
	merged := map[string]any{}
	if existing, ok := out["scripts"].(map[string]any); ok {
		for name, cmd := range existing {
			merged[name] = cmd
		}
	}

	incoming := map[string]any{}
	for name, cmd := range scripts {
		incoming[name] = cmd
	}

	// WithOverride makes the incoming scripts win on collisions
	if err := mergo.Merge(&merged, incoming, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge scripts: %w", err)
	}

	out["scripts"] = merged
	return out, nil
}

// clone copies the top-level map so patch functions never mutate their input.
// Nested values are shared; patches only ever replace top-level keys.
func (m Manifest) clone() Manifest {
	out := make(Manifest, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
