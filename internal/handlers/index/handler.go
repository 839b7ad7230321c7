package index

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"unicode/utf8"

	"github.com/brody192/ext/respond"
)

var indexTmpl = template.Must(template.ParseFS(indexHTMLfs, "index.template.html"))

// Render sorts the routes shortest path first and renders the listing page.
func Render(doc *Doc) ([]byte, error) {
	if doc == nil || doc.Routes == nil {
		panic("render input must not be nil")
	}

	sort.SliceStable((*doc.Routes), func(i, j int) bool {
		a, b := (*doc.Routes)[i].Path, (*doc.Routes)[j].Path

		if la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b); la != lb {
			return la < lb
		}

		return a < b
	})

	var renderedTemplate = &bytes.Buffer{}

	if err := indexTmpl.ExecuteTemplate(renderedTemplate, "index.template.html", doc); err != nil {
		return nil, err
	}

	return renderedTemplate.Bytes(), nil
}

func Handler(doc *Doc) (http.HandlerFunc, error) {
	if doc == nil || doc.Routes == nil {
		panic("handler input must not be nil")
	}

	renderedTemplate, err := Render(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		respond.HTMLBlob(w, renderedTemplate, http.StatusOK)
	}, nil
}
