// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package aggregator combines the partial indexes of several endpoint sets.
package aggregator

import (
	"fmt"

	"github.com/api2spec/apiref/internal/collector"
	"github.com/api2spec/apiref/pkg/types"
)

// Source is one endpoint set together with its URL prefix.
type Source struct {
	// Name identifies the source in error messages
	Name string

	// Set holds the endpoint definitions
	Set collector.EndpointSet

	// Prefix is prepended to derived URIs (may be empty)
	Prefix string
}

// Aggregator runs a Collector over an ordered list of sources.
type Aggregator struct {
	collector *collector.Collector
}

// New creates an aggregator using c for every source.
func New(c *collector.Collector) *Aggregator {
	return &Aggregator{collector: c}
}

// Aggregate collects each source in order and merges the results. For the
// same (section, URI, method) key a later source replaces the earlier entry
// entirely. The first collection error aborts the build.
func (a *Aggregator) Aggregate(sources []Source) (types.Index, error) {
	idx := types.NewIndex()
	for i, src := range sources {
		partial, err := a.collector.Collect(src.Set, src.Prefix)
		if err != nil {
			name := src.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("source %s: %w", name, err)
		}
		idx.Merge(partial)
	}
	return idx, nil
}
