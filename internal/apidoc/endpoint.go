// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package apidoc attaches documentation metadata to endpoint definitions.
//
// Endpoints are declared explicitly on a Set and annotated with Attach:
//
//	api := apidoc.NewSet("api")
//	me := api.Define("GET_me", "Returns the identity of the current user.")
//	apidoc.Attach(me, sections.Account, apidoc.URI("/api/v1/me"))
//
// Every Attach call produces a new immutable Metadata snapshot; extends
// references are resolved to copies at attachment time.
package apidoc

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/api2spec/apiref/pkg/types"
)

// Endpoint is a single request-handling definition.
type Endpoint struct {
	name string
	doc  string
	loc  types.SourceLocation
	set  *Set
	meta *types.Metadata
}

// Name returns the endpoint name (e.g., "GET_me").
func (e *Endpoint) Name() string {
	return e.name
}

// Doc returns the endpoint's free-text description.
func (e *Endpoint) Doc() string {
	return e.doc
}

// Location returns where the endpoint was defined.
func (e *Endpoint) Location() types.SourceLocation {
	return e.loc
}

// Metadata returns the attached metadata, or nil when nothing was attached.
// The returned record must be treated as read-only.
func (e *Endpoint) Metadata() *types.Metadata {
	return e.meta
}

// Ref returns the stable reference of the endpoint.
func (e *Endpoint) Ref() Ref {
	ref := Ref{Name: e.name}
	if e.set != nil {
		ref.Set = e.set.name
	}
	return ref
}

// Ref identifies an endpoint by set name and endpoint name.
type Ref struct {
	Set  string
	Name string
}

// ParseRef parses "set:name" or a bare "name" (same set).
func ParseRef(s string) Ref {
	if set, name, ok := strings.Cut(s, ":"); ok {
		return Ref{Set: set, Name: name}
	}
	return Ref{Name: s}
}

// String formats the reference as ParseRef accepts it.
func (r Ref) String() string {
	if r.Set == "" {
		return r.Name
	}
	return r.Set + ":" + r.Name
}

// Set is an ordered collection of endpoint definitions.
type Set struct {
	name      string
	catalog   *Catalog
	endpoints []*Endpoint
	byName    map[string]*Endpoint
}

// NewSet creates an empty endpoint set.
func NewSet(name string) *Set {
	return &Set{
		name:   name,
		byName: make(map[string]*Endpoint),
	}
}

// Name returns the set name.
func (s *Set) Name() string {
	return s.name
}

// Define declares an endpoint and records the caller's file and line as its
// definition location. It panics if the name is already defined.
func (s *Set) Define(name, doc string) *Endpoint {
	var loc types.SourceLocation
	if _, file, line, ok := runtime.Caller(1); ok {
		loc = types.SourceLocation{File: file, Line: line}
	}
	return s.DefineAt(name, doc, loc)
}

// DefineAt declares an endpoint with an explicit definition location.
// It panics if the name is already defined.
func (s *Set) DefineAt(name, doc string, loc types.SourceLocation) *Endpoint {
	if _, exists := s.byName[name]; exists {
		panic(fmt.Sprintf("endpoint %q is already defined in set %q", name, s.name))
	}
	ep := &Endpoint{
		name: name,
		doc:  doc,
		loc:  loc,
		set:  s,
	}
	s.endpoints = append(s.endpoints, ep)
	s.byName[name] = ep
	return ep
}

// Lookup returns the endpoint with the given name.
func (s *Set) Lookup(name string) (*Endpoint, bool) {
	ep, ok := s.byName[name]
	return ep, ok
}

// Endpoints returns the endpoints in definition order.
func (s *Set) Endpoints() []*Endpoint {
	out := make([]*Endpoint, len(s.endpoints))
	copy(out, s.endpoints)
	return out
}

// Len returns the number of endpoints.
func (s *Set) Len() int {
	return len(s.endpoints)
}
