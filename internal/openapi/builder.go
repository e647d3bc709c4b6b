// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi exports documentation indexes as OpenAPI documents and
// compares indexes.
package openapi

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/api2spec/apiref/internal/config"
	"github.com/api2spec/apiref/internal/present"
	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/internal/util"
	"github.com/api2spec/apiref/pkg/types"
)

// pathParamPattern matches {name} segments in a URI.
var pathParamPattern = regexp.MustCompile(`\{([^{}/]+)\}`)

// Builder constructs OpenAPI documents from documentation indexes.
type Builder struct {
	config *config.Config
}

// NewBuilder creates a new OpenAPI builder with the given configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		config: cfg,
	}
}

// Build creates an OpenAPI document from an index. Each logical endpoint
// becomes one operation under its canonical URI, tagged with its section
// title; variant URIs are mentioned in the description.
func (b *Builder) Build(idx types.Index, reg *sections.Registry) (*types.OpenAPI, error) {
	page, err := present.Build(idx, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to build paths: %w", err)
	}

	doc := &types.OpenAPI{
		OpenAPI: b.config.OpenAPI.Version,
		Info:    b.buildInfo(),
		Paths:   make(map[string]types.PathItem),
	}

	opts := present.Options{SourceURL: b.config.Render.SourceURL}
	for _, section := range page.Sections {
		doc.Tags = append(doc.Tags, types.Tag{
			Name:        section.Title,
			Description: section.Description,
		})

		for _, ep := range section.Endpoints {
			item := doc.Paths[ep.URI()]
			op := b.endpointToOperation(section.Title, ep, opts)

			switch ep.Method {
			case types.MethodGet:
				item.Get = op
			case types.MethodPost:
				item.Post = op
			default:
				return nil, fmt.Errorf("unsupported HTTP method: %s", ep.Method)
			}
			doc.Paths[ep.URI()] = item
		}
	}

	return doc, nil
}

// buildInfo constructs the Info object from configuration.
func (b *Builder) buildInfo() types.Info {
	return types.Info{
		Title:       b.config.OpenAPI.Info.Title,
		Description: b.config.OpenAPI.Info.Description,
		Version:     b.config.OpenAPI.Info.Version,
	}
}

// endpointToOperation converts one endpoint listing entry to an operation.
func (b *Builder) endpointToOperation(tag string, ep present.EndpointView, opts present.Options) *types.Operation {
	meta := ep.Meta
	op := &types.Operation{
		Tags:        []string{tag},
		Summary:     summary(meta.Doc),
		Description: describe(ep),
		OperationID: util.Anchor(string(ep.Method), meta.URI),
		Responses: map[string]types.Response{
			"200": {Description: "Successful response"},
		},
	}

	for _, name := range pathParams(meta.URI) {
		op.Parameters = append(op.Parameters, types.Parameter{
			Name:        name,
			In:          "path",
			Description: meta.Parameters[name],
			Required:    true,
			Schema:      &types.Schema{Type: "string"},
		})
	}
	inPath := make(map[string]bool, len(op.Parameters))
	for _, p := range op.Parameters {
		inPath[p.Name] = true
	}
	for _, name := range meta.Parameters.Names() {
		if inPath[name] {
			continue
		}
		op.Parameters = append(op.Parameters, types.Parameter{
			Name:        name,
			In:          "query",
			Description: meta.Parameters[name],
			Schema:      &types.Schema{Type: "string"},
		})
	}

	if link := opts.SourceLink(ep); link != "" {
		op.ExternalDocs = &types.ExternalDocs{
			Description: "view source",
			URL:         link,
		}
	}

	return op
}

// summary returns the first line of a doc text.
func summary(doc string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(doc), "\n")
	return strings.TrimSpace(first)
}

// describe returns the doc text followed by the variant URIs and formats.
func describe(ep present.EndpointView) string {
	parts := []string{}
	if doc := strings.TrimSpace(ep.Meta.Doc); doc != "" {
		parts = append(parts, doc)
	}
	if len(ep.Meta.URIVariants) > 0 {
		parts = append(parts, "Also available at: "+strings.Join(ep.Meta.URIVariants, ", "))
	}
	if len(ep.Meta.Extensions) > 1 {
		parts = append(parts, "Formats: "+strings.Join(ep.Forms(), ", "))
	}
	return strings.Join(parts, "\n\n")
}

// pathParams returns the {name} segments of a URI in order of appearance.
func pathParams(uri string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range pathParamPattern.FindAllStringSubmatch(uri, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// SortedPaths returns a sorted list of path keys for deterministic output.
func SortedPaths(paths map[string]types.PathItem) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
