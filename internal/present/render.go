// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package present

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/api2spec/apiref/internal/util"
)

// Options controls rendering.
type Options struct {
	// Title is the page heading
	Title string

	// TitleCase converts section titles to title case
	TitleCase bool

	// Language is the BCP 47 tag used for title casing
	Language string

	// SourceURL is a link template with {file} and {line} placeholders
	SourceURL string

	// Width is the terminal word-wrap width (0 disables wrapping)
	Width int

	// Style is a glamour style name; empty selects one automatically
	Style string
}

// SourceLink fills the SourceURL template for an endpoint. It returns ""
// when no template is set or the source lies outside the root path.
func (o Options) SourceLink(e EndpointView) string {
	if o.SourceURL == "" || e.Meta.RelativeSource == "" {
		return ""
	}
	return strings.NewReplacer(
		"{file}", e.Meta.RelativeSource,
		"{line}", strconv.Itoa(e.Meta.Source.Line),
	).Replace(o.SourceURL)
}

func (o Options) titler() func(string) string {
	if !o.TitleCase {
		return util.Identity
	}
	lang := o.Language
	if lang == "" {
		lang = "en"
	}
	return util.TitleCaser(lang)
}

type pageData struct {
	Title string
	Page  *Page
}

const markdownTemplate = `# {{ .Title }}
{{ range .Page.Sections }}
## {{ title .Title }}
{{ with .Description }}
{{ . }}
{{ end -}}
{{ range .Endpoints }}
### {{ .Method }} {{ .URI }}
{{ with .Meta.URIVariants }}
Also available at:{{ range . }} ` + "`{{ . }}`" + `{{ end }}
{{ end -}}
{{ if gt (len .Meta.Extensions) 1 }}
Formats:{{ range .Forms }} ` + "`{{ . }}`" + `{{ end }}
{{ end -}}
{{ with .Meta.Doc }}
{{ . }}
{{ end -}}
{{ with .Meta.Parameters }}
| parameter | description |
| --- | --- |
{{ range $name, $desc := . }}| ` + "`{{ $name }}`" + ` | {{ $desc }} |
{{ end -}}
{{ end -}}
{{ with source . }}
[view source]({{ . }})
{{ end -}}
{{ end -}}
{{ end -}}
`

// Markdown renders the page as a markdown document.
func Markdown(w io.Writer, page *Page, opts Options) error {
	tmpl, err := template.New("markdown").Funcs(template.FuncMap{
		"title":  opts.titler(),
		"source": opts.SourceLink,
	}).Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse markdown template: %w", err)
	}
	if err := tmpl.Execute(w, pageData{Title: opts.Title, Page: page}); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="{{ .Lang }}">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
</head>
<body>
<h1>{{ .Title }}</h1>
<nav>
<ul>
{{- range .Page.Sections }}
<li><a href="#{{ .ID }}">{{ title .Title }}</a></li>
{{- end }}
</ul>
</nav>
{{- range .Page.Sections }}
<section id="{{ .ID }}">
<h2>{{ title .Title }}</h2>
{{- with .Description }}
<div class="description">{{ md . }}</div>
{{- end }}
{{- range .Endpoints }}
<div class="endpoint" id="{{ .Anchor }}">
<h3><span class="method">{{ .Method }}</span> {{ .URI }}</h3>
{{- with .Meta.URIVariants }}
<ul class="variants">
{{- range . }}
<li>{{ . }}</li>
{{- end }}
</ul>
{{- end }}
{{- if gt (len .Meta.Extensions) 1 }}
<ul class="formats">
{{- range .Forms }}
<li>{{ . }}</li>
{{- end }}
</ul>
{{- end }}
{{- with .Meta.Doc }}
<div class="doc">{{ md . }}</div>
{{- end }}
{{- with .Meta.Parameters }}
<table class="parameters">
{{- range $name, $desc := . }}
<tr><th>{{ $name }}</th><td>{{ md $desc }}</td></tr>
{{- end }}
</table>
{{- end }}
{{- with source . }}
<a class="source" href="{{ . }}">view source</a>
{{- end }}
</div>
{{- end }}
</section>
{{- end }}
</body>
</html>
`

type htmlData struct {
	pageData
	Lang string
}

// HTML renders the page as a standalone HTML document. Markdown in
// descriptions is converted with goldmark; raw HTML in it is not passed
// through.
func HTML(w io.Writer, page *Page, opts Options) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	tmpl, err := htmltemplate.New("html").Funcs(htmltemplate.FuncMap{
		"title":  opts.titler(),
		"source": opts.SourceLink,
		"md": func(text string) (htmltemplate.HTML, error) {
			var buf bytes.Buffer
			if err := md.Convert([]byte(text), &buf); err != nil {
				return "", err
			}
			return htmltemplate.HTML(buf.String()), nil
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	data := htmlData{pageData: pageData{Title: opts.Title, Page: page}, Lang: lang}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

// Terminal renders the page as styled terminal output.
func Terminal(page *Page, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Markdown(&buf, page, opts); err != nil {
		return "", err
	}

	var rendererOpts []glamour.TermRendererOption
	if opts.Style != "" {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	}
	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return renderer.Render(buf.String())
}
