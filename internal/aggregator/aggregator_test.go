// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apiref/internal/apidoc"
	"github.com/api2spec/apiref/internal/collector"
	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/pkg/types"
)

func newAggregator() *Aggregator {
	return New(collector.New(sections.Default()))
}

// sharedSet defines GET /api/foo in section misc with the given doc.
func sharedSet(name, doc string) *apidoc.Set {
	set := apidoc.NewSet(name)
	apidoc.Attach(set.Define("GET_foo", doc), sections.Misc)
	return set
}

func TestAggregate_LaterSourceWins(t *testing.T) {
	s1 := Source{Name: "s1", Set: sharedSet("s1", "from s1"), Prefix: "/api"}
	s2 := Source{Name: "s2", Set: sharedSet("s2", "from s2"), Prefix: "/api"}

	idx, err := newAggregator().Aggregate([]Source{s1, s2})
	require.NoError(t, err)
	meta, ok := idx.Get(sections.Misc, "/api/foo", types.MethodGet)
	require.True(t, ok)
	assert.Equal(t, "from s2", meta.Doc)

	idx, err = newAggregator().Aggregate([]Source{s2, s1})
	require.NoError(t, err)
	meta, ok = idx.Get(sections.Misc, "/api/foo", types.MethodGet)
	require.True(t, ok)
	assert.Equal(t, "from s1", meta.Doc)
}

func TestAggregate_MethodLevelOverwrite(t *testing.T) {
	first := apidoc.NewSet("first")
	apidoc.Attach(first.Define("GET_foo", "get"), sections.Misc)
	apidoc.Attach(first.Define("POST_foo", "post"), sections.Misc)

	second := apidoc.NewSet("second")
	apidoc.Attach(second.Define("GET_foo", "replaced"), sections.Misc, apidoc.Param("x", "y"))

	idx, err := newAggregator().Aggregate([]Source{
		{Set: first, Prefix: "/api"},
		{Set: second, Prefix: "/api"},
	})
	require.NoError(t, err)

	get, _ := idx.Get(sections.Misc, "/api/foo", types.MethodGet)
	assert.Equal(t, "replaced", get.Doc)
	assert.Equal(t, types.Parameters{"x": "y"}, get.Parameters)

	post, ok := idx.Get(sections.Misc, "/api/foo", types.MethodPost)
	require.True(t, ok, "entries for other methods survive")
	assert.Equal(t, "post", post.Doc)
}

func TestAggregate_DistinctPrefixes(t *testing.T) {
	idx, err := newAggregator().Aggregate([]Source{
		{Set: sharedSet("api", "api"), Prefix: "/api"},
		{Set: sharedSet("front", "front"), Prefix: ""},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())
	_, ok := idx.Get(sections.Misc, "/foo", types.MethodGet)
	assert.True(t, ok)
}

func TestAggregate_Idempotent(t *testing.T) {
	set := apidoc.NewSet("api")
	apidoc.Attach(set.Define("GET_foo", "doc"), sections.Misc,
		apidoc.URIVariants("/api/bar"),
		apidoc.Extensions("json"),
	)
	sources := []Source{{Set: set, Prefix: "/api"}}

	a := newAggregator()
	first, err := a.Aggregate(sources)
	require.NoError(t, err)
	second, err := a.Aggregate(sources)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregate_Empty(t *testing.T) {
	idx, err := newAggregator().Aggregate(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestAggregate_ErrorNamesSource(t *testing.T) {
	bad := apidoc.NewSet("bad")
	apidoc.Attach(bad.Define("GET_x", ""), "wiki")

	_, err := newAggregator().Aggregate([]Source{
		{Name: "good", Set: sharedSet("good", ""), Prefix: "/api"},
		{Name: "bad", Set: bad},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source bad")
	assert.ErrorIs(t, err, sections.ErrUnknownSection)

	_, err = newAggregator().Aggregate([]Source{{Set: bad}})
	assert.Contains(t, err.Error(), "source #0")
}
