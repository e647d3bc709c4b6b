// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/api2spec/apiref/pkg/types"
)

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded indicates a new item was added.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved indicates an item was removed.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified indicates an item was modified.
	DiffTypeModified DiffType = "modified"
)

// EntryChange represents a change to one (section, URI, method) entry.
type EntryChange struct {
	Type        DiffType
	Section     types.SectionID
	URI         string
	Method      types.Method
	Description string

	// Fields lists the changed record fields for modifications
	Fields []string
}

// DiffResult contains the differences between two indexes.
type DiffResult struct {
	// Changes contains all entry changes, sorted by section, URI and method.
	Changes []EntryChange

	// HasBreakingChanges indicates if any breaking changes were detected.
	HasBreakingChanges bool

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if there are no differences.
func (d *DiffResult) IsEmpty() bool {
	return len(d.Changes) == 0
}

// Differ compares two indexes.
type Differ struct {
	ignore []string
}

// NewDiffer creates a new Differ. URIs matching any of the ignore patterns
// (doublestar syntax) are left out of the comparison.
func NewDiffer(ignore ...string) *Differ {
	return &Differ{ignore: ignore}
}

// Diff compares index a (old) with index b (new).
func (d *Differ) Diff(a, b types.Index) (*DiffResult, error) {
	for _, p := range d.ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}

	result := &DiffResult{
		Changes: []EntryChange{},
	}

	for section, uris := range a {
		for uri, methods := range uris {
			if d.ignored(uri) {
				continue
			}
			for method, aMeta := range methods {
				bMeta, exists := b.Get(section, uri, method)
				if !exists {
					result.Changes = append(result.Changes, d.change(DiffTypeRemoved, section, uri, method, nil))
					continue
				}
				if fields := modifiedFields(aMeta, bMeta); len(fields) > 0 {
					result.Changes = append(result.Changes, d.change(DiffTypeModified, section, uri, method, fields))
				}
			}
		}
	}

	for section, uris := range b {
		for uri, methods := range uris {
			if d.ignored(uri) {
				continue
			}
			for method := range methods {
				if _, exists := a.Get(section, uri, method); !exists {
					result.Changes = append(result.Changes, d.change(DiffTypeAdded, section, uri, method, nil))
				}
			}
		}
	}

	sort.Slice(result.Changes, func(i, j int) bool {
		ci, cj := result.Changes[i], result.Changes[j]
		if ci.Section != cj.Section {
			return ci.Section < cj.Section
		}
		if ci.URI != cj.URI {
			return ci.URI < cj.URI
		}
		return ci.Method < cj.Method
	})

	result.HasBreakingChanges = d.detectBreakingChanges(result)
	result.Summary = d.generateSummary(result)

	return result, nil
}

func (d *Differ) ignored(uri string) bool {
	for _, p := range d.ignore {
		if ok, _ := doublestar.Match(p, uri); ok {
			return true
		}
	}
	return false
}

func (d *Differ) change(t DiffType, section types.SectionID, uri string, method types.Method, fields []string) EntryChange {
	verb := map[DiffType]string{
		DiffTypeAdded:    "Added",
		DiffTypeRemoved:  "Removed",
		DiffTypeModified: "Modified",
	}[t]
	return EntryChange{
		Type:        t,
		Section:     section,
		URI:         uri,
		Method:      method,
		Description: fmt.Sprintf("%s %s %s in %s", verb, method, uri, section),
		Fields:      fields,
	}
}

// modifiedFields lists the documented fields that differ between two
// records. Source positions are not compared; nil and empty lists are equal.
func modifiedFields(a, b *types.Metadata) []string {
	var fields []string
	if a.Doc != b.Doc {
		fields = append(fields, "doc")
	}
	if a.URI != b.URI {
		fields = append(fields, "uri")
	}
	if !equalStrings(a.URIVariants, b.URIVariants) {
		fields = append(fields, "uri_variants")
	}
	if !equalStrings(a.Extensions, b.Extensions) {
		fields = append(fields, "extensions")
	}
	if !equalParams(a.Parameters, b.Parameters) {
		fields = append(fields, "parameters")
	}
	return fields
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalParams(a, b types.Parameters) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// detectBreakingChanges checks if any changes are breaking.
func (d *Differ) detectBreakingChanges(result *DiffResult) bool {
	// Removed entries are breaking
	for _, change := range result.Changes {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}
	return false
}

// generateSummary creates a human-readable summary of changes.
func (d *Differ) generateSummary(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	var sb strings.Builder

	added, removed, modified := 0, 0, 0
	for _, c := range result.Changes {
		switch c.Type {
		case DiffTypeAdded:
			added++
		case DiffTypeRemoved:
			removed++
		case DiffTypeModified:
			modified++
		}
	}

	var parts []string
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d endpoint(s) added", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d endpoint(s) removed", removed))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("%d endpoint(s) modified", modified))
	}

	sb.WriteString(strings.Join(parts, ", "))

	if result.HasBreakingChanges {
		sb.WriteString(" [BREAKING CHANGES DETECTED]")
	}

	return sb.String()
}

// FormatDiff returns a formatted string representation of the diff.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder

	sb.WriteString("=== Index Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	var section types.SectionID
	for i, c := range result.Changes {
		if i == 0 || c.Section != section {
			section = c.Section
			sb.WriteString(fmt.Sprintf("--- %s ---\n", section))
		}

		symbol := "  "
		switch c.Type {
		case DiffTypeAdded:
			symbol = "+ "
		case DiffTypeRemoved:
			symbol = "- "
		case DiffTypeModified:
			symbol = "~ "
		}
		sb.WriteString(fmt.Sprintf("%s%s %s", symbol, c.Method, c.URI))
		if len(c.Fields) > 0 {
			sb.WriteString(" (" + strings.Join(c.Fields, ", ") + ")")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
