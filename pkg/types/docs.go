// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides core data structures for API reference generation.
package types

import (
	"sort"

	"github.com/mohae/deepcopy"
)

// SectionID identifies a documentation section (e.g., "account", "listings").
type SectionID string

// Method is an HTTP method name as used in endpoint names (e.g., "GET").
type Method string

// HTTP methods recognized in endpoint names.
const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// documentedMethods lists the methods that take part in documentation, in
// rendering order.
var documentedMethods = []Method{MethodGet, MethodPost}

// Documented reports whether endpoints using this method are documented.
func (m Method) Documented() bool {
	for _, dm := range documentedMethods {
		if m == dm {
			return true
		}
	}
	return false
}

// DocumentedMethods returns the documented methods in rendering order.
func DocumentedMethods() []Method {
	out := make([]Method, len(documentedMethods))
	copy(out, documentedMethods)
	return out
}

// Parameters maps parameter names to human-readable descriptions.
type Parameters map[string]string

// Names returns the parameter names in sorted order.
func (p Parameters) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourceLocation is the place an endpoint was declared.
type SourceLocation struct {
	// File is the path of the declaring file
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Line is the 1-based line number of the declaration
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

// IsZero reports whether the location is unset.
func (l SourceLocation) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// Metadata is the documentation record attached to one endpoint. After
// collection the same type holds the fully resolved (merged) record.
//
// A Metadata value handed out by the attachment layer is never modified;
// use Clone to derive a new record.
type Metadata struct {
	// Section is the documentation section the endpoint belongs to
	Section SectionID `json:"section" yaml:"section"`

	// Doc is the free-text (markdown) description
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// URI overrides the derived canonical URI when non-empty
	URI string `json:"uri,omitempty" yaml:"uri,omitempty"`

	// URIVariants are alternate URIs documented by the same record.
	// nil means "not declared".
	URIVariants []string `json:"uri_variants,omitempty" yaml:"uri_variants,omitempty"`

	// Extensions are supported response-format suffixes (e.g., "json").
	// nil means "not declared".
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`

	// Parameters describes the endpoint's own parameters
	Parameters Parameters `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Extends is a snapshot of the metadata this record inherits from
	Extends *Metadata `json:"-" yaml:"-"`

	// Source is where the annotation was declared
	Source SourceLocation `json:"source,omitempty" yaml:"source,omitempty"`

	// RelativeSource is Source.File relative to the configured root path.
	// Empty when the file is outside that root.
	RelativeSource string `json:"relative_source,omitempty" yaml:"relative_source,omitempty"`
}

// Clone returns a deep copy of the record, including its Extends snapshot.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	return deepcopy.Copy(m).(*Metadata)
}

// URIs returns the canonical URI followed by every variant.
func (m *Metadata) URIs() []string {
	uris := make([]string, 0, 1+len(m.URIVariants))
	uris = append(uris, m.URI)
	return append(uris, m.URIVariants...)
}

// Index is the aggregated documentation index:
// section -> URI -> method -> merged record.
//
// Variant URIs are keys as well; all keys produced for one endpoint hold the
// same *Metadata.
type Index map[SectionID]map[string]map[Method]*Metadata

// NewIndex creates an empty index.
func NewIndex() Index {
	return make(Index)
}

// Put files a record under (section, uri, method), replacing any previous one.
func (idx Index) Put(section SectionID, uri string, method Method, meta *Metadata) {
	uris, ok := idx[section]
	if !ok {
		uris = make(map[string]map[Method]*Metadata)
		idx[section] = uris
	}
	methods, ok := uris[uri]
	if !ok {
		methods = make(map[Method]*Metadata)
		uris[uri] = methods
	}
	methods[method] = meta
}

// Get returns the record stored under (section, uri, method).
func (idx Index) Get(section SectionID, uri string, method Method) (*Metadata, bool) {
	meta, ok := idx[section][uri][method]
	return meta, ok
}

// Merge copies every entry of other into idx. Entries of other replace
// entries of idx with the same (section, uri, method) key.
func (idx Index) Merge(other Index) {
	for section, uris := range other {
		for uri, methods := range uris {
			for method, meta := range methods {
				idx.Put(section, uri, method, meta)
			}
		}
	}
}

// Len returns the number of (section, uri, method) entries.
func (idx Index) Len() int {
	n := 0
	for _, uris := range idx {
		for _, methods := range uris {
			n += len(methods)
		}
	}
	return n
}

// SortedSections returns the section keys in sorted order.
func (idx Index) SortedSections() []SectionID {
	keys := make([]SectionID, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// SortedURIs returns the URI keys of a section in sorted order.
func (idx Index) SortedURIs(section SectionID) []string {
	uris := idx[section]
	keys := make([]string, 0, len(uris))
	for k := range uris {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
