// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package manifest

import (
	"fmt"

	"github.com/api2spec/apiref/internal/aggregator"
	"github.com/api2spec/apiref/internal/config"
)

// Sources returns the aggregation order. With no configured sources every
// loaded set is used in load order with its manifest prefix; otherwise the
// configured order and prefixes apply and every named set must exist.
func (l *Loaded) Sources(configured []config.SourceConfig) ([]aggregator.Source, error) {
	if len(configured) == 0 {
		sets := l.Catalog.Sets()
		sources := make([]aggregator.Source, 0, len(sets))
		for _, set := range sets {
			sources = append(sources, aggregator.Source{
				Name:   set.Name(),
				Set:    set,
				Prefix: l.Prefixes[set.Name()],
			})
		}
		return sources, nil
	}

	sources := make([]aggregator.Source, 0, len(configured))
	for _, sc := range configured {
		set := l.Catalog.Get(sc.Set)
		if set == nil {
			return nil, fmt.Errorf("configured source %q has no manifest", sc.Set)
		}
		sources = append(sources, aggregator.Source{
			Name:   sc.Set,
			Set:    set,
			Prefix: sc.Prefix,
		})
	}
	return sources, nil
}
