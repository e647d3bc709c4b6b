// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apiref/internal/config"
	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/pkg/types"
)

func testIndex() types.Index {
	idx := types.NewIndex()

	me := &types.Metadata{
		Section:        sections.Account,
		Doc:            "Returns the identity of the user.\n\nIncludes karma.",
		URI:            "/api/v1/me",
		Source:         types.SourceLocation{File: "/srv/app/api.go", Line: 7},
		RelativeSource: "api.go",
	}
	idx.Put(sections.Account, me.URI, types.MethodGet, me)

	byID := &types.Metadata{
		Section:     sections.Listings,
		URI:         "/by_id/{names}",
		URIVariants: []string{"/api/by_id/{names}"},
		Extensions:  []string{"json", "xml"},
		Parameters:  types.Parameters{"names": "comma-separated fullnames", "limit": "max items"},
	}
	idx.Put(sections.Listings, byID.URI, types.MethodGet, byID)
	idx.Put(sections.Listings, "/api/by_id/{names}", types.MethodGet, byID)

	comment := &types.Metadata{Section: sections.LinksAndComments, URI: "/api/comment"}
	idx.Put(sections.LinksAndComments, comment.URI, types.MethodPost, comment)

	return idx
}

func TestNewBuilder(t *testing.T) {
	cfg := config.Default()
	builder := NewBuilder(cfg)

	assert.NotNil(t, builder)
	assert.Equal(t, cfg, builder.config)
}

func TestBuilder_Build_Empty(t *testing.T) {
	doc, err := NewBuilder(config.Default()).Build(types.NewIndex(), sections.Default())
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.Empty(t, doc.Paths)
	assert.Empty(t, doc.Tags)
}

func TestBuilder_Build(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Info.Title = "Example"
	cfg.Render.SourceURL = "https://example.com/{file}#L{line}"

	doc, err := NewBuilder(cfg).Build(testIndex(), sections.Default())
	require.NoError(t, err)

	assert.Equal(t, "Example", doc.Info.Title)
	assert.Equal(t, []types.Tag{
		{Name: "account"},
		{Name: "links & comments"},
		{Name: "listings"},
	}, doc.Tags)

	assert.Equal(t, []string{"/api/comment", "/api/v1/me", "/by_id/{names}"}, SortedPaths(doc.Paths))

	me := doc.Paths["/api/v1/me"].Get
	require.NotNil(t, me)
	assert.Nil(t, doc.Paths["/api/v1/me"].Post)
	assert.Equal(t, []string{"account"}, me.Tags)
	assert.Equal(t, "Returns the identity of the user.", me.Summary)
	assert.Equal(t, "Returns the identity of the user.\n\nIncludes karma.", me.Description)
	assert.Equal(t, "GET_api_v1_me", me.OperationID)
	assert.Equal(t, "Successful response", me.Responses["200"].Description)
	require.NotNil(t, me.ExternalDocs)
	assert.Equal(t, "https://example.com/api.go#L7", me.ExternalDocs.URL)

	comment := doc.Paths["/api/comment"].Post
	require.NotNil(t, comment)
	assert.Nil(t, comment.ExternalDocs)
	assert.Equal(t, []string{"links & comments"}, comment.Tags)
}

func TestBuilder_Build_Parameters(t *testing.T) {
	doc, err := NewBuilder(config.Default()).Build(testIndex(), sections.Default())
	require.NoError(t, err)

	op := doc.Paths["/by_id/{names}"].Get
	require.NotNil(t, op)
	require.Len(t, op.Parameters, 2)

	assert.Equal(t, types.Parameter{
		Name:        "names",
		In:          "path",
		Description: "comma-separated fullnames",
		Required:    true,
		Schema:      &types.Schema{Type: "string"},
	}, op.Parameters[0])
	assert.Equal(t, "limit", op.Parameters[1].Name)
	assert.Equal(t, "query", op.Parameters[1].In)
	assert.False(t, op.Parameters[1].Required)

	assert.Contains(t, op.Description, "Also available at: /api/by_id/{names}")
	assert.Contains(t, op.Description, "Formats: /by_id/{names}.json, /by_id/{names}.xml")
	assert.Empty(t, op.Summary)
}

func TestBuilder_Build_VariantsAreNotPaths(t *testing.T) {
	doc, err := NewBuilder(config.Default()).Build(testIndex(), sections.Default())
	require.NoError(t, err)

	_, ok := doc.Paths["/api/by_id/{names}"]
	assert.False(t, ok)
}

func TestBuilder_Build_UnknownSection(t *testing.T) {
	idx := testIndex()
	idx.Put("wiki", "/wiki", types.MethodGet, &types.Metadata{Section: "wiki", URI: "/wiki"})

	_, err := NewBuilder(config.Default()).Build(idx, sections.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, sections.ErrUnknownSection)
}

func TestPathParams(t *testing.T) {
	assert.Equal(t, []string{"subreddit", "article"}, pathParams("/r/{subreddit}/comments/{article}"))
	assert.Equal(t, []string{"x"}, pathParams("/{x}/{x}"))
	assert.Empty(t, pathParams("/api/v1/me"))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "First line.", summary("  First line.\nSecond line."))
	assert.Empty(t, summary(""))
}

func TestSortedPaths(t *testing.T) {
	paths := map[string]types.PathItem{
		"/users":    {},
		"/accounts": {},
		"/posts":    {},
	}
	assert.Equal(t, []string{"/accounts", "/posts", "/users"}, SortedPaths(paths))
}
