// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package collector turns one endpoint set into a partial documentation
// index.
package collector

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/api2spec/apiref/internal/apidoc"
	"github.com/api2spec/apiref/internal/logging"
	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/pkg/types"
)

// EndpointSet is any ordered collection of endpoint definitions.
type EndpointSet interface {
	Endpoints() []*apidoc.Endpoint
}

// Collector extracts and resolves endpoint metadata.
type Collector struct {
	registry *sections.Registry
	rootPath string
	logger   *log.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithRootPath sets the root used to compute relative source paths.
func WithRootPath(root string) Option {
	return func(c *Collector) {
		c.rootPath = root
	}
}

// WithLogger sets the logger used for skipped-endpoint diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a collector validating sections against reg.
func New(reg *sections.Registry, opts ...Option) *Collector {
	c := &Collector{
		registry: reg,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseName splits an endpoint name of the form METHOD_action on the first
// underscore. ok is false when either part is missing.
func ParseName(name string) (method types.Method, action string, ok bool) {
	m, a, found := strings.Cut(name, "_")
	if !found || m == "" || a == "" {
		return "", "", false
	}
	return types.Method(m), a, true
}

// Collect builds the partial index for one endpoint set. Endpoints without
// documentation are skipped; a section missing from the registry aborts the
// build with *sections.UnknownSectionError.
func (c *Collector) Collect(set EndpointSet, urlPrefix string) (types.Index, error) {
	idx := types.NewIndex()

	for _, ep := range set.Endpoints() {
		method, action, ok := ParseName(ep.Name())
		if !ok {
			c.logger.Debug("skipping endpoint", "name", ep.Name(), "reason", "no action in name")
			continue
		}
		if !method.Documented() {
			c.logger.Debug("skipping endpoint", "name", ep.Name(), "reason", "method not documented")
			continue
		}
		meta := ep.Metadata()
		if meta == nil || meta.Section == "" {
			c.logger.Debug("skipping endpoint", "name", ep.Name(), "reason", "no metadata")
			continue
		}
		if !c.registry.Has(meta.Section) {
			return nil, &sections.UnknownSectionError{ID: meta.Section}
		}

		merged := merge(ep, meta)
		if merged.URI == "" {
			merged.URI = urlPrefix + "/" + action
		}
		if len(merged.Extensions) == 1 {
			merged.URI += "." + merged.Extensions[0]
			merged.Extensions = nil
		}
		merged.RelativeSource = c.relative(merged.Source.File)

		for _, uri := range merged.URIs() {
			idx.Put(merged.Section, uri, method, merged)
		}
	}

	return idx, nil
}

// merge resolves inheritance into a fresh record: own declared fields, then
// inherited ones, then the endpoint description and defaults. Parameters are
// never inherited.
func merge(ep *apidoc.Endpoint, meta *types.Metadata) *types.Metadata {
	merged := &types.Metadata{
		Section:    meta.Section,
		Doc:        ep.Doc(),
		Parameters: make(types.Parameters),
		Source:     meta.Source,
	}

	if parent := meta.Extends; parent != nil && parent.Section != "" {
		if parent.Doc != "" {
			merged.Doc = parent.Doc
		}
		merged.URI = parent.URI
		merged.URIVariants = copyStrings(parent.URIVariants)
		merged.Extensions = copyStrings(parent.Extensions)
	}

	if meta.Doc != "" {
		merged.Doc = meta.Doc
	}
	if meta.URI != "" {
		merged.URI = meta.URI
	}
	if meta.URIVariants != nil {
		merged.URIVariants = copyStrings(meta.URIVariants)
	}
	if meta.Extensions != nil {
		merged.Extensions = copyStrings(meta.Extensions)
	}
	for name, desc := range meta.Parameters {
		merged.Parameters[name] = desc
	}

	return merged
}

// relative returns file relative to the root path, or "" when the file is
// not under it.
func (c *Collector) relative(file string) string {
	if c.rootPath == "" || file == "" {
		return ""
	}
	rel, err := filepath.Rel(c.rootPath, file)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
