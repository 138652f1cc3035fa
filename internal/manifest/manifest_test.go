package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manifestJSON is a realistic generated package.json with pre-existing
// scripts and dependency blocks that must survive patching untouched.
const manifestJSON = `{
  "name": "demo",
  "version": "0.0.0",
  "scripts": {
    "start": "ng serve",
    "build": "ng build",
    "lint": "tslint -p ."
  },
  "dependencies": {
    "@angular/core": "^19.0.0"
  }
}
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(manifestJSON), 0o644))
	return path
}

// TestLoadSaveRoundTrip tests that unrelated keys survive a load/save cycle
func TestLoadSaveRoundTrip(t *testing.T) {
	path := writeManifest(t)

	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", reloaded["name"])
	deps, ok := reloaded["dependencies"].(map[string]any)
	require.True(t, ok, "dependencies block should survive the round trip")
	assert.Equal(t, "^19.0.0", deps["@angular/core"])

	// The written file keeps npm's trailing newline convention
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0 && data[len(data)-1] == '\n')
}

// TestLoadMissingFile tests the error path for an absent manifest
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "package.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

// TestLoadInvalidJSON tests the error path for a corrupt manifest
func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest")
}

// TestWithLintStaged tests that the lint-staged block is set and that the
// input manifest is not mutated
func TestWithLintStaged(t *testing.T) {
	m := Manifest{"name": "demo"}

	rules := map[string]any{
		"*.ts": []any{"eslint --fix", "prettier --write"},
	}
	patched := WithLintStaged(m, rules)

	assert.Equal(t, rules, patched["lint-staged"])
	assert.NotContains(t, m, "lint-staged", "patch functions must not mutate their input")
}

// TestMergeScriptsLastWriteWins tests the merge semantics: colliding names
// are overwritten by the incoming scripts, unrelated scripts are preserved
func TestMergeScriptsLastWriteWins(t *testing.T) {
	path := writeManifest(t)
	m, err := Load(path)
	require.NoError(t, err)

	incoming := map[string]string{
		"lint":     "ng lint",
		"lint:fix": "ng lint --fix",
	}

	merged, err := MergeScripts(m, incoming)
	require.NoError(t, err)

	scripts, ok := merged["scripts"].(map[string]any)
	require.True(t, ok)

	// Collision: the pre-existing tslint script is replaced
	assert.Equal(t, "ng lint", scripts["lint"])

	// New entry added
	assert.Equal(t, "ng lint --fix", scripts["lint:fix"])

	// Unrelated pre-existing scripts untouched
	assert.Equal(t, "ng serve", scripts["start"])
	assert.Equal(t, "ng build", scripts["build"])
}

// TestMergeScriptsTwiceIsDeterministic tests that applying the same patch
// twice yields the same result (the merge is a pure function of its inputs)
func TestMergeScriptsTwiceIsDeterministic(t *testing.T) {
	m := Manifest{
		"scripts": map[string]any{"lint": "old-lint", "test": "ng test"},
	}

	incoming := map[string]string{"lint": "ng lint"}

	once, err := MergeScripts(m, incoming)
	require.NoError(t, err)
	twice, err := MergeScripts(once, incoming)
	require.NoError(t, err)

	assert.Equal(t, once["scripts"], twice["scripts"])

	scripts := twice["scripts"].(map[string]any)
	assert.Equal(t, "ng lint", scripts["lint"])
	assert.Equal(t, "ng test", scripts["test"])
}

// TestMergeScriptsNoExistingBlock tests merging into a manifest that has no
// scripts block at all
func TestMergeScriptsNoExistingBlock(t *testing.T) {
	m := Manifest{"name": "demo"}

	merged, err := MergeScripts(m, map[string]string{"format": "prettier --write ."})
	require.NoError(t, err)

	scripts, ok := merged["scripts"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "prettier --write .", scripts["format"])
}
