// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration. Patterns are doublestar globs matched
// against slash-separated paths relative to each scanned root.
type Config struct {
	// Include selects manifest files (e.g., "**/*.endpoints.yaml")
	Include []string

	// Exclude drops files; "dir/**" patterns also prune whole directories
	Exclude []string
}

// Scanner discovers endpoint manifests.
type Scanner struct {
	include []string
	exclude []string
}

// New creates a Scanner. Without include patterns DefaultIncludePatterns
// applies.
func New(config Config) *Scanner {
	include := config.Include
	if len(include) == 0 {
		include = DefaultIncludePatterns()
	}
	return &Scanner{
		include: include,
		exclude: config.Exclude,
	}
}

// DefaultIncludePatterns returns the patterns used when none are configured.
func DefaultIncludePatterns() []string {
	return []string{"**/*.endpoints.{yaml,yml,json,toml}"}
}

// Scan discovers manifests under each path. A path naming a file is taken
// as a manifest regardless of the include patterns, as long as its format
// is known. Results are ordered by root, then by relative path; a file
// reachable from several roots is reported once.
func (s *Scanner) Scan(paths ...string) ([]ManifestFile, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var out []ManifestFile
	seen := make(map[string]bool)
	for _, p := range paths {
		files, err := s.scanRoot(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if seen[f.Path] {
				continue
			}
			seen[f.Path] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Scanner) validate() error {
	for _, p := range append(append([]string(nil), s.include...), s.exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid manifest pattern %q", p)
		}
	}
	return nil
}

func (s *Scanner) scanRoot(path string) ([]ManifestFile, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("path does not exist: %s", root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		format := DetectFormat(root)
		if format == "" {
			return nil, fmt.Errorf("unsupported manifest format: %s", root)
		}
		f, err := readManifest(filepath.Dir(root), filepath.Base(root), format)
		if err != nil {
			return nil, err
		}
		return []ManifestFile{f}, nil
	}

	var rels []string
	err = fs.WalkDir(os.DirFS(root), ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are not manifests
			return nil
		}
		if d.IsDir() {
			if rel != "." && s.prunes(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if s.matches(rel) {
			rels = append(rels, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(rels)

	files := make([]ManifestFile, 0, len(rels))
	for _, rel := range rels {
		f, err := readManifest(root, rel, DetectFormat(rel))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// matches reports whether rel is an included manifest of a known format.
func (s *Scanner) matches(rel string) bool {
	if DetectFormat(rel) == "" || matchAny(s.exclude, rel) {
		return false
	}
	return matchAny(s.include, rel)
}

// prunes reports whether a directory is covered by an exclude pattern of
// the form "dir/**", so nothing below it can be included.
func (s *Scanner) prunes(rel string) bool {
	for _, p := range s.exclude {
		dir, ok := strings.CutSuffix(p, "/**")
		if !ok {
			continue
		}
		if matched, _ := doublestar.Match(dir, rel); matched {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func readManifest(root, rel, format string) (ManifestFile, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil {
		return ManifestFile{}, fmt.Errorf("failed to stat manifest: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return ManifestFile{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ManifestFile{
		Path:    path,
		Rel:     filepath.ToSlash(rel),
		Format:  format,
		Content: content,
		ModTime: info.ModTime(),
	}, nil
}

// Dirs returns the directories holding the given files, sorted and
// de-duplicated.
func Dirs(files []ManifestFile) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}
