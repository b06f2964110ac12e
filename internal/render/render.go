// Package render produces the HTML fragments shown in the results
// container. Highlighted titles and excerpts arrive pre-built from the
// highlighter and pass through unescaped; everything else, including the
// user's query text, is escaped by html/template.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/dshills/localsearch/pkg/types"
)

var resultsTmpl = template.Must(template.New("results").Parse(
	`<p class="search-result-count">{{.Count}} {{.Label}} found</p>
<ul class="search-result-list">
{{- range .Items}}
<li class="search-result-item"><a href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a>{{if .Excerpt}}<p class="search-result-excerpt">{{.Excerpt}}</p>{{end}}</li>
{{- end}}
</ul>
`))

var emptyTmpl = template.Must(template.New("empty").Parse(
	`<p class="search-result-empty">No results for &quot;{{.Query}}&quot;</p>
`))

type resultView struct {
	URL     string
	Title   template.HTML
	Excerpt template.HTML
}

type resultsView struct {
	Count int
	Label string
	Items []resultView
}

// Results renders the count line and result list.
func Results(items []types.ResultItem) (string, error) {
	view := resultsView{
		Count: len(items),
		Label: "results",
		Items: make([]resultView, 0, len(items)),
	}
	if view.Count == 1 {
		view.Label = "result"
	}

	for _, item := range items {
		view.Items = append(view.Items, resultView{
			URL:     item.URL,
			Title:   template.HTML(item.HighlightedTitle),
			Excerpt: template.HTML(item.HighlightedContent),
		})
	}

	var b strings.Builder
	if err := resultsTmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render results: %w", err)
	}
	return b.String(), nil
}

// Empty renders the no-results state with the literal query text.
func Empty(query string) (string, error) {
	var b strings.Builder
	if err := emptyTmpl.Execute(&b, struct{ Query string }{Query: query}); err != nil {
		return "", fmt.Errorf("render empty state: %w", err)
	}
	return b.String(), nil
}

// Unavailable renders the index-load-failure state.
func Unavailable() string {
	return `<p class="search-result-error">Search is unavailable right now</p>` + "\n"
}

// Loading renders the in-flight state shown while the index loads.
func Loading() string {
	return `<p class="search-result-loading">Searching...</p>` + "\n"
}
