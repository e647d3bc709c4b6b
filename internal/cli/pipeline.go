// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/api2spec/apiref/internal/aggregator"
	"github.com/api2spec/apiref/internal/collector"
	"github.com/api2spec/apiref/internal/config"
	"github.com/api2spec/apiref/internal/logging"
	"github.com/api2spec/apiref/internal/manifest"
	"github.com/api2spec/apiref/internal/present"
	"github.com/api2spec/apiref/internal/scanner"
	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/pkg/types"
)

// pipeline carries the loaded configuration through manifest discovery,
// collection and aggregation.
type pipeline struct {
	cfg      *config.Config
	paths    []string
	registry *sections.Registry
	logger   *log.Logger
}

// loadPipeline loads the config, applies the global flag overrides and
// validates the result. paths overrides the configured manifest paths.
func loadPipeline(paths []string) (*pipeline, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply command-line overrides
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if rootPath != "" {
		cfg.RootPath = rootPath
	}
	if len(paths) == 0 {
		paths = cfg.Manifests.Paths
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	reg, err := sections.FromConfig(cfg.Sections)
	if err != nil {
		return nil, fmt.Errorf("invalid sections: %w", err)
	}

	p := &pipeline{
		cfg:      cfg,
		paths:    paths,
		registry: reg,
		logger:   logging.NewWithWriter(stderr, logLevel(cfg), "apiref"),
	}

	printVerbose("Configuration:")
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Sections: %d", reg.Len())
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	return p, nil
}

// logLevel maps the verbosity flags onto the configured level.
func logLevel(cfg *config.Config) string {
	switch {
	case quiet:
		return "error"
	case verbose:
		return "debug"
	default:
		return cfg.Log.Level
	}
}

// scan discovers the manifest files under the configured paths.
func (p *pipeline) scan() ([]scanner.ManifestFile, error) {
	s := scanner.New(scanner.Config{
		Include: p.cfg.Manifests.Include,
		Exclude: p.cfg.Manifests.Exclude,
	})
	files, err := s.Scan(p.paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan manifests: %w", err)
	}
	printVerbose("Found %d manifest files", len(files))
	return files, nil
}

// buildIndex runs the whole pipeline and returns the aggregated index.
func (p *pipeline) buildIndex() (types.Index, error) {
	files, err := p.scan()
	if err != nil {
		return nil, err
	}

	loaded, err := manifest.NewLoader(p.logger).Load(files)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifests: %w", err)
	}

	sources, err := loaded.Sources(p.cfg.Sources)
	if err != nil {
		return nil, err
	}

	root := p.cfg.RootPath
	if root != "" {
		if root, err = filepath.Abs(root); err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
	}

	c := collector.New(p.registry,
		collector.WithRootPath(root),
		collector.WithLogger(p.logger),
	)
	idx, err := aggregator.New(c).Aggregate(sources)
	if err != nil {
		return nil, fmt.Errorf("failed to collect endpoints: %w", err)
	}

	printVerbose("Collected %d index entries from %d sources", idx.Len(), len(sources))
	return idx, nil
}

// renderIndex is buildIndex restricted by the configured URI filter.
func (p *pipeline) renderIndex() (types.Index, error) {
	idx, err := p.buildIndex()
	if err != nil {
		return nil, err
	}
	return p.filter(idx)
}

func (p *pipeline) filter(idx types.Index) (types.Index, error) {
	filtered, err := present.Filter(idx, p.cfg.Filter.Include, p.cfg.Filter.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return filtered, nil
}

// renderOptions returns the presentation options from the config.
func (p *pipeline) renderOptions() present.Options {
	r := p.cfg.Render
	return present.Options{
		Title:     r.Title,
		TitleCase: r.TitleCase,
		Language:  r.Language,
		SourceURL: r.SourceURL,
		Width:     r.Width,
	}
}
