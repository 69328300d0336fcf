package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unfaiyted/godoc-swagger/internal/config"
	"github.com/unfaiyted/godoc-swagger/internal/scanner"
)

// Test plan:
// 1. summarize totals files, blocks, fields, and model references.
// 2. declarationsDBPath prefers the configured cache location and creates it.
// 3. declarationsDBPath defaults to .godoc-swagger under the project root.

func TestSummarize(t *testing.T) {
	t.Parallel()

	root, err := filepath.Abs("../../testdata/project")
	require.NoError(t, err)

	cfg := config.Default()
	sc, err := scanner.New(cfg)
	require.NoError(t, err)
	defer sc.Close()

	files, err := sc.ScanProject(root, cfg.Paths.Code, cfg.Paths.Ignore, nil)
	require.NoError(t, err)

	totals := summarize(files)
	// users.go has 3 blocks, tasks.py has 1; the other fixtures have none.
	assert.Equal(t, 4, totals.Blocks)
	assert.Greater(t, totals.Fields, totals.Blocks)
	assert.GreaterOrEqual(t, totals.Models, 7)
}

func TestDeclarationsDBPath_ConfiguredLocation(t *testing.T) {
	t.Parallel()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	cfg := config.Default()
	cfg.Storage.CacheLocation = cacheDir

	path, err := declarationsDBPath(cfg, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cacheDir, "declarations.db"), path)
	assert.DirExists(t, cacheDir)
}

func TestDeclarationsDBPath_DefaultsToProjectRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := config.Default()

	path, err := declarationsDBPath(cfg, root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".godoc-swagger", "declarations.db"), path)
	assert.DirExists(t, filepath.Join(root, ".godoc-swagger"))
}
