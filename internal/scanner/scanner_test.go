// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir creates a temporary directory with test files.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		dir := filepath.Dir(fullPath)
		err := os.MkdirAll(dir, 0o755)
		require.NoError(t, err)
		err = os.WriteFile(fullPath, []byte(content), 0o644)
		require.NoError(t, err)
	}

	return tmpDir
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})
	assert.Equal(t, DefaultIncludePatterns(), s.include)
	assert.Empty(t, s.exclude)

	s = New(Config{Include: []string{"**/*.yaml"}, Exclude: []string{"vendor/**"}})
	assert.Equal(t, []string{"**/*.yaml"}, s.include)
	assert.Equal(t, []string{"vendor/**"}, s.exclude)
}

func TestScan_DefaultPatterns(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api.endpoints.yaml":             "sets: []",
		"front/front.endpoints.json":     "{}",
		"listing/listing.endpoints.toml": "",
		"apiref.yaml":                    "output: x",
		"readme.md":                      "# README",
	})

	files, err := New(Config{}).Scan(tmpDir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	// ordered by relative path
	assert.Equal(t, "api.endpoints.yaml", files[0].Rel)
	assert.Equal(t, "yaml", files[0].Format)
	assert.Equal(t, "front/front.endpoints.json", files[1].Rel)
	assert.Equal(t, "json", files[1].Format)
	assert.Equal(t, "listing/listing.endpoints.toml", files[2].Rel)
	assert.Equal(t, "toml", files[2].Format)

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
		assert.False(t, f.ModTime.IsZero())
	}
	assert.Equal(t, "sets: []", string(files[0].Content))
}

func TestScan_ExcludePatterns(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api.endpoints.yaml":            "sets: []",
		"vendor/dep/dep.endpoints.yaml": "sets: []",
		"internal/api.endpoints.yaml":   "sets: []",
		"internal/old.endpoints.yaml":   "sets: []",
	})

	files, err := New(Config{Exclude: []string{"vendor/**", "**/old.*"}}).Scan(tmpDir)
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.Rel)
	}
	assert.Equal(t, []string{"api.endpoints.yaml", "internal/api.endpoints.yaml"}, rels)
}

func TestScanner_Prunes(t *testing.T) {
	s := New(Config{Exclude: []string{"vendor/**", "**/testdata/**", "**/old.*"}})

	assert.True(t, s.prunes("vendor"))
	assert.True(t, s.prunes("pkg/testdata"))
	assert.False(t, s.prunes("vendored"))
	assert.False(t, s.prunes("internal"), "file patterns never prune directories")
}

func TestScan_IncludeNeedsKnownFormat(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api.endpoints.txt":  "not a manifest",
		"api.endpoints.yaml": "sets: []",
	})

	files, err := New(Config{Include: []string{"**/*"}}).Scan(tmpDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "api.endpoints.yaml", files[0].Rel)
}

func TestScan_EmptyDirectory(t *testing.T) {
	files, err := New(Config{}).Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScan_ExplicitFile(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"custom.yml": "sets: []",
		"notes.txt":  "text",
	})

	// an explicit file bypasses the include globs
	files, err := New(Config{}).Scan(filepath.Join(tmpDir, "custom.yml"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "yaml", files[0].Format)
	assert.Equal(t, "custom.yml", files[0].Rel)

	_, err = New(Config{}).Scan(filepath.Join(tmpDir, "notes.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest format")
}

func TestScan_Errors(t *testing.T) {
	_, err := New(Config{}).Scan("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	_, err = New(Config{Include: []string{"**/[.yaml"}}).Scan(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid manifest pattern")
}

func TestScan_MultiplePaths(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api/api.endpoints.yaml":     "sets: []",
		"front/front.endpoints.yaml": "sets: []",
		"other/other.endpoints.yaml": "sets: []",
	})

	files, err := New(Config{}).Scan(filepath.Join(tmpDir, "front"), filepath.Join(tmpDir, "api"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(tmpDir, "front", "front.endpoints.yaml"), files[0].Path, "roots keep their order")
}

func TestScan_DeduplicatesFiles(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api/api.endpoints.yaml": "sets: []",
	})

	files, err := New(Config{}).Scan(tmpDir, tmpDir, filepath.Join(tmpDir, "api"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "api/api.endpoints.yaml", files[0].Rel)
}

func TestDirs(t *testing.T) {
	files := []ManifestFile{
		{Path: "/b/x.endpoints.yaml"},
		{Path: "/a/y.endpoints.yaml"},
		{Path: "/b/z.endpoints.json"},
	}
	assert.Equal(t, []string{"/a", "/b"}, Dirs(files))
	assert.Empty(t, Dirs(nil))
}
