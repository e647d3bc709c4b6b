// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"github.com/api2spec/apiref/pkg/types"
)

// MergeOptions configures what an existing export keeps when regenerated.
type MergeOptions struct {
	// PreserveInfo keeps the existing info block.
	PreserveInfo bool

	// PreserveTags keeps hand-written tag descriptions where the generated
	// tag has none.
	PreserveTags bool

	// PreserveSummaries keeps existing operation summaries where the
	// generated operation has none.
	PreserveSummaries bool
}

// DefaultMergeOptions returns the default merge options.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		PreserveInfo:      true,
		PreserveTags:      true,
		PreserveSummaries: true,
	}
}

// Merger combines a previously written export with a freshly generated one.
// Paths always come from the generated document.
type Merger struct {
	options MergeOptions
}

// NewMerger creates a new Merger with the given options.
func NewMerger(options MergeOptions) *Merger {
	return &Merger{
		options: options,
	}
}

// Merge returns generated with the preserved parts of existing applied.
func (m *Merger) Merge(existing, generated *types.OpenAPI) (*types.OpenAPI, error) {
	if existing == nil {
		return generated, nil
	}

	result := generated

	if m.options.PreserveInfo && existing.Info.Title != "" {
		result.Info = existing.Info
	}

	if m.options.PreserveTags {
		descriptions := make(map[string]string, len(existing.Tags))
		for _, t := range existing.Tags {
			descriptions[t.Name] = t.Description
		}
		for i, t := range result.Tags {
			if t.Description == "" {
				result.Tags[i].Description = descriptions[t.Name]
			}
		}
	}

	if m.options.PreserveSummaries {
		for path, item := range result.Paths {
			old, ok := existing.Paths[path]
			if !ok {
				continue
			}
			keepSummary(item.Get, old.Get)
			keepSummary(item.Post, old.Post)
		}
	}

	return result, nil
}

func keepSummary(op, old *types.Operation) {
	if op == nil || old == nil || op.Summary != "" {
		return
	}
	op.Summary = old.Summary
}

// MergeDefault merges two documents using default options.
func MergeDefault(existing, generated *types.OpenAPI) (*types.OpenAPI, error) {
	merger := NewMerger(DefaultMergeOptions())
	return merger.Merge(existing, generated)
}
