// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package apidoc

import (
	"github.com/api2spec/apiref/pkg/types"
)

// fields holds the values declared by one Attach call. nil means "not
// declared" so that composition only overrides what the call mentions.
type fields struct {
	doc        *string
	uri        *string
	variants   []string
	extensions []string
	params     types.Parameters
	extends    *extendsTarget
	loc        *types.SourceLocation
}

type extendsTarget struct {
	endpoint *Endpoint
	ref      *Ref
}

// Option declares one metadata field.
type Option func(*fields)

// Doc sets the doc text on the metadata record itself. It takes precedence
// over the endpoint's own description and is the only doc text endpoints
// extending this one inherit.
func Doc(doc string) Option {
	return func(f *fields) {
		f.doc = &doc
	}
}

// URI sets the canonical URI.
func URI(uri string) Option {
	return func(f *fields) {
		f.uri = &uri
	}
}

// URIVariants sets the alternate URIs, in order.
func URIVariants(uris ...string) Option {
	return func(f *fields) {
		f.variants = append(make([]string, 0, len(uris)), uris...)
	}
}

// Extensions sets the supported response-format suffixes.
func Extensions(exts ...string) Option {
	return func(f *fields) {
		f.extensions = append(make([]string, 0, len(exts)), exts...)
	}
}

// Parameters sets the parameter descriptions.
func Parameters(params types.Parameters) Option {
	return func(f *fields) {
		f.params = make(types.Parameters, len(params))
		for k, v := range params {
			f.params[k] = v
		}
	}
}

// Param adds one parameter description to those declared by this call.
func Param(name, description string) Option {
	return func(f *fields) {
		if f.params == nil {
			f.params = make(types.Parameters)
		}
		f.params[name] = description
	}
}

// Extends inherits documentation from another endpoint. The target's
// metadata is copied when Attach runs.
func Extends(target *Endpoint) Option {
	return func(f *fields) {
		f.extends = &extendsTarget{endpoint: target}
	}
}

// ExtendsRef is like Extends but names the target by reference. A reference
// without a set name points into the attaching endpoint's own set.
func ExtendsRef(ref Ref) Option {
	return func(f *fields) {
		f.extends = &extendsTarget{ref: &ref}
	}
}

// At overrides the recorded source location.
func At(file string, line int) Option {
	return func(f *fields) {
		f.loc = &types.SourceLocation{File: file, Line: line}
	}
}

// Attach merges the given fields into the endpoint's metadata and returns
// the endpoint. Fields declared here replace earlier ones; section always
// takes the value of the most recent call.
func Attach(ep *Endpoint, section types.SectionID, opts ...Option) *Endpoint {
	var f fields
	for _, opt := range opts {
		opt(&f)
	}

	var next types.Metadata
	if ep.meta != nil {
		next = *ep.meta.Clone()
	}

	next.Section = section
	if f.doc != nil {
		next.Doc = *f.doc
	}
	if f.uri != nil {
		next.URI = *f.uri
	}
	if f.variants != nil {
		next.URIVariants = f.variants
	}
	if f.extensions != nil {
		next.Extensions = f.extensions
	}
	if f.params != nil {
		next.Parameters = f.params
	}
	if f.extends != nil {
		next.Extends = snapshot(ep.resolve(f.extends))
	}

	next.Source = ep.loc
	if f.loc != nil {
		next.Source = *f.loc
	}

	ep.meta = &next
	return ep
}

// resolve finds the endpoint an extends declaration points at.
func (e *Endpoint) resolve(t *extendsTarget) *Endpoint {
	if t.endpoint != nil {
		return t.endpoint
	}
	if t.ref == nil {
		return nil
	}
	ref := *t.ref
	if e.set == nil {
		return nil
	}
	if ref.Set == "" || ref.Set == e.set.name {
		target, _ := e.set.Lookup(ref.Name)
		return target
	}
	if e.set.catalog == nil {
		return nil
	}
	target, _ := e.set.catalog.Resolve(ref)
	return target
}

// snapshot copies the target's current metadata. Only declared fields are
// carried; the target's free-text description stays on the target. Targets
// without metadata yield nil (no inheritance).
func snapshot(target *Endpoint) *types.Metadata {
	if target == nil || target.meta == nil {
		return nil
	}
	snap := target.meta.Clone()
	snap.Extends = nil
	return snap
}
