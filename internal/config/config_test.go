package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() merges .godoc-swagger/config.yml with defaults
// - Environment variables override config file values
// - Load() returns error for malformed YAML
// - Validate() rejects empty marker
// - Validate() rejects non-positive proximity threshold
// - Validate() rejects unknown resolver names
// - Validate() rejects non-positive debounce
// - Validate() rejects bad comment token overrides
// - Validate() aggregates multiple errors

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)

	assert.Equal(t, "godoc", cfg.Annotations.Marker)
	assert.Equal(t, 10, cfg.Annotations.ProximityThreshold)
	assert.Equal(t, []string{"index", "search", "scan"}, cfg.Resolver.Order)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
	assert.Equal(t, 1024, cfg.Storage.CacheEntries)
	assert.NotEmpty(t, cfg.Paths.Code)
	assert.NotEmpty(t, cfg.Paths.Ignore)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	expected := Default()
	assert.Equal(t, expected.Annotations.Marker, cfg.Annotations.Marker)
	assert.Equal(t, expected.Annotations.ProximityThreshold, cfg.Annotations.ProximityThreshold)
	assert.Equal(t, expected.Resolver.Order, cfg.Resolver.Order)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	confDir := filepath.Join(tempDir, ".godoc-swagger")
	require.NoError(t, os.MkdirAll(confDir, 0755))

	configContent := `
annotations:
  marker: swaggen
  proximity_threshold: 4

resolver:
  order:
    - search
    - scan

watch:
  debounce_ms: 250
`
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yml"), []byte(configContent), 0644))

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	assert.Equal(t, "swaggen", cfg.Annotations.Marker)
	assert.Equal(t, 4, cfg.Annotations.ProximityThreshold)
	assert.Equal(t, []string{"search", "scan"}, cfg.Resolver.Order)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)

	// Unset sections keep their defaults
	assert.Equal(t, Default().Storage.CacheEntries, cfg.Storage.CacheEntries)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	tempDir := t.TempDir()
	confDir := filepath.Join(tempDir, ".godoc-swagger")
	require.NoError(t, os.MkdirAll(confDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yml"), []byte("annotations:\n  marker: fromfile\n"), 0644))

	t.Setenv("GODOC_SWAGGER_ANNOTATIONS_MARKER", "fromenv")

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Annotations.Marker)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	confDir := filepath.Join(tempDir, ".godoc-swagger")
	require.NoError(t, os.MkdirAll(confDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yml"), []byte("annotations: [unclosed"), 0644))

	_, err := NewLoader(tempDir).Load()

	assert.Error(t, err)
}

func TestValidate_RejectsEmptyMarker(t *testing.T) {
	cfg := Default()
	cfg.Annotations.Marker = "  "

	err := Validate(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyMarker)
}

func TestValidate_RejectsNonPositiveProximity(t *testing.T) {
	cfg := Default()
	cfg.Annotations.ProximityThreshold = 0

	err := Validate(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProximity)
}

func TestValidate_RejectsUnknownResolver(t *testing.T) {
	cfg := Default()
	cfg.Resolver.Order = []string{"index", "psychic"}

	err := Validate(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResolver)
}

func TestValidate_RejectsNonPositiveDebounce(t *testing.T) {
	cfg := Default()
	cfg.Watch.DebounceMs = -1

	err := Validate(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDebounce)
}

func TestValidate_RejectsBadCommentTokens(t *testing.T) {
	cfg := Default()
	cfg.Annotations.CommentTokens = map[string]string{
		"py": "#",  // missing leading dot
		".sh": " ", // empty token
	}

	err := Validate(cfg)

	assert.Error(t, err)
}

func TestValidate_AggregatesMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Annotations.Marker = ""
	cfg.Watch.DebounceMs = 0
	cfg.Storage.CacheEntries = 0

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "marker")
	assert.Contains(t, err.Error(), "debounce_ms")
	assert.Contains(t, err.Error(), "cache_entries")
}

func TestValidate_AllowsEmptyResolverOrder(t *testing.T) {
	cfg := Default()
	cfg.Resolver.Order = nil

	assert.NoError(t, Validate(cfg))
}
