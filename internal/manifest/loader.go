// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/api2spec/apiref/internal/apidoc"
	"github.com/api2spec/apiref/internal/logging"
	"github.com/api2spec/apiref/internal/parser"
	"github.com/api2spec/apiref/internal/scanner"
	"github.com/api2spec/apiref/pkg/types"
)

// Loaded is the result of loading a group of manifests.
type Loaded struct {
	// Catalog holds every declared set
	Catalog *apidoc.Catalog

	// Prefixes maps set names to the prefix declared in their manifest
	Prefixes map[string]string
}

// Loader builds endpoint sets from manifests.
type Loader struct {
	parser *parser.GoParser
	logger *log.Logger
}

// NewLoader creates a loader. A nil logger discards diagnostics.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loader{
		parser: parser.NewGoParser(),
		logger: logger,
	}
}

type pending struct {
	file *File
	set  *apidoc.Set
	spec SetSpec
}

// Load parses the files and builds their sets. Endpoints are defined
// first across all files, then annotations are applied in file order so
// extends references to other sets resolve regardless of file order, as
// long as the target was annotated earlier.
func (l *Loader) Load(files []scanner.ManifestFile) (*Loaded, error) {
	parsed := make([]*File, 0, len(files))
	for _, mf := range files {
		f, err := Parse(mf.Path, mf.Format, mf.Content)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, f)
	}
	return l.Build(parsed...)
}

// Build builds sets from already decoded manifests.
func (l *Loader) Build(files ...*File) (*Loaded, error) {
	out := &Loaded{
		Catalog:  apidoc.NewCatalog(),
		Prefixes: make(map[string]string),
	}

	var work []pending
	for _, f := range files {
		for _, spec := range f.Sets {
			if spec.Name == "" {
				return nil, fmt.Errorf("%s: set without a name", f.Path)
			}
			set, err := out.Catalog.NewSet(spec.Name)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Path, err)
			}
			out.Prefixes[spec.Name] = spec.Prefix

			for _, es := range spec.Endpoints {
				if err := l.define(f, set, es); err != nil {
					return nil, err
				}
			}
			work = append(work, pending{file: f, set: set, spec: spec})
		}
	}

	for _, w := range work {
		for _, es := range w.spec.Endpoints {
			ep, _ := w.set.Lookup(es.Name)
			for _, an := range es.Annotations {
				l.annotate(w.file, ep, an)
			}
		}
		l.logger.Debug("loaded set", "set", w.set.Name(), "endpoints", w.set.Len(), "manifest", w.file.Path)
	}

	return out, nil
}

// define declares one endpoint, pulling its description and location from
// the Go handler when one is referenced.
func (l *Loader) define(f *File, set *apidoc.Set, es EndpointSpec) error {
	if es.Name == "" {
		return fmt.Errorf("%s: endpoint without a name in set %q", f.Path, set.Name())
	}
	if _, exists := set.Lookup(es.Name); exists {
		return fmt.Errorf("%s: endpoint %q defined twice in set %q", f.Path, es.Name, set.Name())
	}

	doc := es.Doc
	loc := types.SourceLocation{File: f.Path, Line: es.Line}

	if es.Handler != "" {
		ref := es.Handler
		if !filepath.IsAbs(ref) && f.Path != "" {
			ref = filepath.Join(filepath.Dir(f.Path), ref)
		}
		fd, err := l.parser.LookupHandler(ref)
		if err != nil {
			return fmt.Errorf("%s: endpoint %q: %w", f.Path, es.Name, err)
		}
		if doc == "" {
			doc = fd.Doc
		}
		loc = types.SourceLocation{File: fd.Position.Filename, Line: fd.Position.Line}
	}

	set.DefineAt(es.Name, doc, loc)
	return nil
}

func (l *Loader) annotate(f *File, ep *apidoc.Endpoint, an AnnotationSpec) {
	var opts []apidoc.Option
	if an.Doc != nil {
		opts = append(opts, apidoc.Doc(*an.Doc))
	}
	if an.URI != nil {
		opts = append(opts, apidoc.URI(*an.URI))
	}
	if an.URIVariants != nil {
		opts = append(opts, apidoc.URIVariants(an.URIVariants...))
	}
	if an.Extensions != nil {
		opts = append(opts, apidoc.Extensions(an.Extensions...))
	}
	if an.Parameters != nil {
		opts = append(opts, apidoc.Parameters(an.Parameters))
	}
	if an.Extends != "" {
		opts = append(opts, apidoc.ExtendsRef(apidoc.ParseRef(an.Extends)))
	}

	apidoc.Attach(ep, types.SectionID(an.Section), opts...)

	if an.Section == "" {
		l.logger.Warn("annotation without section", "endpoint", ep.Ref(), "manifest", f.Path, "line", an.Line)
	}
	if an.Extends != "" && ep.Metadata().Extends == nil {
		l.logger.Warn("extends target has no documentation", "endpoint", ep.Ref(), "extends", an.Extends, "manifest", f.Path, "line", an.Line)
	}
}
