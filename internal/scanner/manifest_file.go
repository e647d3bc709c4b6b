// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers endpoint manifest files.
package scanner

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ManifestFile represents a discovered manifest.
type ManifestFile struct {
	// Path is the absolute path to the file
	Path string

	// Rel is the slash-separated path relative to the scanned root
	Rel string

	// Format is the detected format ("yaml", "json", "toml")
	Format string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// formatExtensions maps file extensions to manifest formats.
var formatExtensions = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".toml": "toml",
}

// DetectFormat detects the manifest format from a file path.
func DetectFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := formatExtensions[ext]; ok {
		return format
	}
	return ""
}

// SupportedExtensions returns the supported file extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formatExtensions))
	for ext := range formatExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupportedFile checks if a file path has a supported extension.
func IsSupportedFile(path string) bool {
	return DetectFormat(path) != ""
}
