// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/pdiddy/doc-explorer/internal/view"
)

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"is": func(s view.Status, name string) bool { return s.String() == name },
	"pdfHref": pdfHref,
}).Parse(`
{{define "head"}}<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>{{.Title}} - Document Explorer</title>
	<style>
		body { font-family: system-ui, sans-serif; max-width: 960px; margin: 0 auto; padding: 1rem; line-height: 1.5; }
		a { color: #0066cc; }
		.search-form { margin: 1rem 0; display: flex; gap: 0.5rem; }
		.search-form input[type="text"] { padding: 0.5rem; flex: 1; font-size: 1rem; }
		.search-form select, .search-form button { padding: 0.5rem; font-size: 1rem; }
		.form-error { color: #e53935; }
		.status { color: #666; }
		.error { color: #e53935; }
		.paper { border-bottom: 1px solid #eee; padding: 0.75rem 0; }
		.paper-title { font-weight: 600; }
		.paper-meta { color: #555; font-size: 0.9rem; }
		.topics a { margin-right: 0.5rem; }
		.swatch { display: inline-block; width: 10px; height: 10px; border-radius: 50%; border: 1px solid #999; margin-right: 0.4rem; }
		.plot { border: 1px solid #ddd; border-radius: 4px; background: #2b2f36; }
		.plot circle { stroke: #111; stroke-width: 1; cursor: pointer; }
		.columns { display: flex; gap: 2rem; flex-wrap: wrap; }
	</style>
</head>
<body>
<div class="nav"><a href="/">Home</a></div>
{{template "form" .Form}}
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "form"}}
<form class="search-form" action="/submit" method="get">
	<select name="field">
		<option value="title"{{if eq .Field "title"}} selected{{end}}>Title</option>
		<option value="author"{{if eq .Field "author"}} selected{{end}}>Author</option>
		<option value="topic"{{if eq .Field "topic"}} selected{{end}}>Topic</option>
	</select>
	<input type="text" name="q" value="{{.Value}}" placeholder="Search papers..." autocomplete="off">
	<button type="submit">Search</button>
</form>
{{if .Error}}<p class="form-error">{{.Error}}</p>{{end}}
{{end}}

{{define "status"}}
{{if is .Status "error"}}<p class="error">{{.Reason}}</p>
{{else if is .Status "loading"}}<p class="status">Loading...</p>
{{end}}
{{end}}

{{define "home"}}
{{template "head" .}}
<h1>Document Explorer</h1>
<h2>Topics</h2>
{{template "status" .Topics}}
{{if is .Topics.Status "empty"}}<p class="status">No topics.</p>{{end}}
{{if is .Topics.Status "ready"}}
<div class="topics">
{{range .Topics.Payload}}
<p><span class="status">{{.ID}}</span> {{range .Terms}}<a href="{{$.TermHref .}}">{{.}}</a>{{end}}</p>
{{end}}
</div>
{{end}}
{{template "foot" .}}
{{end}}

{{define "results"}}
{{template "head" .}}
<h1>Results</h1>
{{template "status" .Results}}
{{if is .Results.Status "empty"}}<p class="status">No results found.</p>{{end}}
{{if is .Results.Status "ready"}}
<p class="status">{{len .Results.Payload}} results</p>
{{range .Results.Payload}}
<div class="paper">
	<div class="paper-title"><a href="{{.Location}}">{{.Article.Title}}</a></div>
	<div class="paper-meta">{{.Article.Author}}{{if .Article.Year}} ({{.Article.Year}}){{end}}</div>
</div>
{{end}}
{{end}}
{{template "foot" .}}
{{end}}

{{define "article"}}
{{template "head" .}}
{{template "status" .Reader}}
{{if is .Reader.Status "empty"}}<p class="status">Article not found.</p>{{end}}
{{if is .Reader.Status "ready"}}
{{with .Reader.Payload}}
<h1>{{.Article.Title}}</h1>
<p class="paper-meta">{{.Article.Author}}{{if .Article.Year}} ({{.Article.Year}}){{end}}</p>
{{if .PDFURL}}<p><a href="{{pdfHref .PDFURL}}">PDF</a>{{if .PDF}} <span class="status">{{.PDF.Summary}}</span>{{else if .PDFError}} <span class="error">{{.PDFError}}</span>{{end}}</p>{{end}}
{{end}}
{{end}}
<h2>Related papers</h2>
{{template "status" .Related}}
{{if is .Related.Status "empty"}}<p class="status">No related papers.</p>{{end}}
{{if is .Related.Status "ready"}}
<div class="columns">
<div>
{{range .Related.Payload.Items}}
<div class="paper"><span class="swatch" style="background: {{.Color}}"></span><a href="{{.Location}}">{{.Article.Title}}</a>{{if .Article.Year}} <span class="paper-meta">({{.Article.Year}})</span>{{end}}</div>
{{end}}
</div>
<svg class="plot" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" xmlns="http://www.w3.org/2000/svg">
{{range .Points}}<a href="{{.Href}}"><circle cx="{{printf "%.1f" .X}}" cy="{{printf "%.1f" .Y}}" r="{{$.Radius}}" fill="{{.Color}}"><title>{{.Title}}{{if .Year}} ({{.Year}}){{end}}</title></circle></a>
{{end}}</svg>
</div>
{{end}}
{{template "foot" .}}
{{end}}
`))

// pdfHref links a stored PDF path through the proxy; absolute URLs are
// linked directly.
func pdfHref(pdfURL string) string {
	if strings.HasPrefix(pdfURL, "http://") || strings.HasPrefix(pdfURL, "https://") {
		return pdfURL
	}
	return "/pdf/" + url.PathEscape(pdfURL)
}

type page struct {
	Title string
	Form  view.FormState
}

type homePage struct {
	page
	Topics view.Model[[]view.Topic]
}

// TermHref links a topic term to a topic search, appended to the current
// form value.
func (p homePage) TermHref(term string) string {
	value := strings.TrimSpace(p.Form.Value + " " + term)
	if p.Form.Field != "topic" {
		value = term
	}
	loc, err := encodeTopic(value)
	if err != nil {
		return "/"
	}
	return loc
}

type resultsPage struct {
	page
	Results view.Model[[]view.ResultItem]
}

type articlePage struct {
	page
	Reader  view.Model[view.ReaderPane]
	Related view.Model[view.RelatedPane]
	Points  []svgPoint
	Width   int
	Height  int
	Radius  int
}
