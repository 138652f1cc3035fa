package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestShort tests that Short returns just the version number without the
// commit and build time decoration
func TestShort(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"
	assert.Equal(t, "1.2.3", Short())
	assert.NotContains(t, Short(), "commit")
}

// TestString tests the full human-readable form
func TestString(t *testing.T) {
	s := String()
	assert.Contains(t, s, "nginit version")
	assert.Contains(t, s, Version)
	assert.Contains(t, s, Commit)
}

// TestGet tests that the structured info mirrors the build variables
func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, BuildTime, info.BuildTime)
}
