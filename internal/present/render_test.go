// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package present

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/pkg/types"
)

func fixturePage(t *testing.T) *Page {
	t.Helper()
	page, err := Build(fixtureIndex(), sections.Default())
	require.NoError(t, err)
	return page
}

func TestOptions_SourceLink(t *testing.T) {
	opts := Options{SourceURL: "https://example.com/blob/main/{file}#L{line}"}
	e := EndpointView{Meta: &types.Metadata{RelativeSource: "r2/controllers/api.py", Source: types.SourceLocation{Line: 12}}}

	assert.Equal(t, "https://example.com/blob/main/r2/controllers/api.py#L12", opts.SourceLink(e))

	outside := EndpointView{Meta: &types.Metadata{Source: types.SourceLocation{File: "/elsewhere.go", Line: 1}}}
	assert.Empty(t, opts.SourceLink(outside))
	assert.Empty(t, Options{}.SourceLink(e))
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := Markdown(&buf, fixturePage(t), Options{
		Title:     "Example API",
		SourceURL: "https://example.com/{file}#L{line}",
	})
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Example API\n"))
	assert.Contains(t, out, "## account")
	assert.Contains(t, out, "### GET /api/v1/me")
	assert.Contains(t, out, "Returns the **identity** of the user.")
	assert.Contains(t, out, "[view source](https://example.com/api.go#L42)")
	assert.Contains(t, out, "Also available at: `/r/{subreddit}/hot`")
	assert.Contains(t, out, "Formats: `/hot.json` `/hot.xml`")
	assert.Contains(t, out, "| `after` | fullname of a thing |")
	assert.Less(t, strings.Index(out, "`after`"), strings.Index(out, "`limit`"), "parameters sorted by name")
	assert.Less(t, strings.Index(out, "## account"), strings.Index(out, "## listings"))

	// variant aliases are not listed as their own endpoints
	assert.NotContains(t, out, "### GET /r/{subreddit}/hot")
}

func TestMarkdown_TitleCase(t *testing.T) {
	reg := sections.MustNew(sections.Section{ID: "links_and_comments", Title: "links & comments"})
	idx := types.NewIndex()
	idx.Put("links_and_comments", "/api/comment", types.MethodPost, &types.Metadata{Section: "links_and_comments", URI: "/api/comment"})
	page, err := Build(idx, reg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, page, Options{Title: "API", TitleCase: true, Language: "en"}))
	assert.Contains(t, buf.String(), "## Links & Comments")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, fixturePage(t), Options{Title: "Example <API>"})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "<title>Example &lt;API&gt;</title>")
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `id="GET_api_v1_me"`)
	assert.Contains(t, out, "<strong>identity</strong>")
	assert.Contains(t, out, `<a href="#listings">listings</a>`)
	assert.Contains(t, out, "<li>/hot.xml</li>")
	assert.NotContains(t, out, "view source")
}

func TestHTML_EscapesRawMarkup(t *testing.T) {
	idx := types.NewIndex()
	idx.Put(sections.Misc, "/x", types.MethodGet, &types.Metadata{
		Section: sections.Misc,
		URI:     "/x",
		Doc:     "<script>alert(1)</script>",
	})
	page, err := Build(idx, sections.Default())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, page, Options{Title: "x"}))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(fixturePage(t), Options{Title: "Example API", Style: "notty", Width: 100})
	require.NoError(t, err)

	assert.Contains(t, out, "Example API")
	assert.Contains(t, out, "/api/v1/me")
}
