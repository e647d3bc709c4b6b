// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package present turns a documentation index into a section-ordered page
// model and renders it as markdown, HTML or terminal output.
package present

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/internal/util"
	"github.com/api2spec/apiref/pkg/types"
)

// Page is the read-only view of a whole index.
type Page struct {
	Sections []SectionView
}

// SectionView groups the endpoints of one section.
type SectionView struct {
	ID          types.SectionID
	Title       string
	Description string

	// Endpoints lists each logical endpoint once, under its canonical URI.
	Endpoints []EndpointView

	// URIs lists every index key, including variant aliases.
	URIs []URIView
}

// URIView is one URI key of a section.
type URIView struct {
	URI     string
	Methods []MethodView
}

// MethodView is one method entry of a URI.
type MethodView struct {
	Method types.Method
	Meta   *types.Metadata

	// Alias is true when the URI is a variant of Meta.URI.
	Alias bool
}

// EndpointView is a de-duplicated endpoint listing entry.
type EndpointView struct {
	Method types.Method
	Meta   *types.Metadata
}

// URI returns the canonical URI.
func (e EndpointView) URI() string {
	return e.Meta.URI
}

// Anchor returns the HTML anchor id of the endpoint.
func (e EndpointView) Anchor() string {
	return util.Anchor(string(e.Method), e.Meta.URI)
}

// Forms returns the canonical URI expanded once per declared extension, or
// the bare URI when the record lists none.
func (e EndpointView) Forms() []string {
	if len(e.Meta.Extensions) == 0 {
		return []string{e.Meta.URI}
	}
	forms := make([]string, 0, len(e.Meta.Extensions))
	for _, ext := range e.Meta.Extensions {
		forms = append(forms, e.Meta.URI+"."+ext)
	}
	return forms
}

// Build arranges idx by the registry's section order. Sections without
// entries are omitted; a section missing from the registry is an error.
// URIs are sorted and methods appear in documented order (GET, POST).
func Build(idx types.Index, reg *sections.Registry) (*Page, error) {
	for id := range idx {
		if !reg.Has(id) {
			return nil, &sections.UnknownSectionError{ID: id}
		}
	}

	page := &Page{}
	for _, s := range reg.Sections() {
		if len(idx[s.ID]) == 0 {
			continue
		}
		view := SectionView{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
		}
		for _, uri := range idx.SortedURIs(s.ID) {
			uv := URIView{URI: uri}
			for _, method := range types.DocumentedMethods() {
				meta, ok := idx.Get(s.ID, uri, method)
				if !ok {
					continue
				}
				alias := meta.URI != uri
				uv.Methods = append(uv.Methods, MethodView{Method: method, Meta: meta, Alias: alias})
				if !alias {
					view.Endpoints = append(view.Endpoints, EndpointView{Method: method, Meta: meta})
				}
			}
			if len(uv.Methods) > 0 {
				view.URIs = append(view.URIs, uv)
			}
		}
		page.Sections = append(page.Sections, view)
	}
	return page, nil
}

// Filter returns a copy of idx keeping only URIs that match at least one
// include pattern (all URIs when include is empty) and no exclude pattern.
// Patterns use doublestar syntax.
func Filter(idx types.Index, include, exclude []string) (types.Index, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid URI pattern %q", p)
		}
	}

	out := types.NewIndex()
	for section, uris := range idx {
		for uri, methods := range uris {
			if !matchURI(uri, include, exclude) {
				continue
			}
			for method, meta := range methods {
				out.Put(section, uri, method, meta)
			}
		}
	}
	return out, nil
}

func matchURI(uri string, include, exclude []string) bool {
	if len(include) > 0 && !matchAny(uri, include) {
		return false
	}
	return !matchAny(uri, exclude)
}

func matchAny(uri string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, uri); ok {
			return true
		}
	}
	return false
}
