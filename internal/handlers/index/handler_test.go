package index

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSortsByPathLength(t *testing.T) {
	routes := []DocRoute{
		{Title: "Testing", Path: "/docs/Guides/testing", Href: "/docs/Guides/testing"},
		{Title: "Blog", Path: "/blog", Href: "/blog"},
		{Title: "Home", Path: "/", Href: "/"},
		{Title: "Archive", Path: "/blog/archive", Href: "/blog/archive"},
		{Title: "Intro", Path: "/docs/intro", Href: "/docs/intro", Sidebar: "tutorialSidebar", Chunk: "aed"},
	}

	page, err := Render(&Doc{Title: "Routes", Routes: &routes})
	require.NoError(t, err)

	assert.Equal(t, "/", routes[0].Path)
	assert.Equal(t, "/blog", routes[1].Path)
	assert.Equal(t, "/docs/Guides/testing", routes[len(routes)-1].Path)

	html := string(page)
	assert.Contains(t, html, "<title>Routes</title>")
	assert.Contains(t, html, `<a href="/docs/intro">Intro</a>`)
	assert.Contains(t, html, "tutorialSidebar")
	assert.Less(t, strings.Index(html, "/blog/archive"), strings.Index(html, "/docs/Guides/testing"))
}

func TestHandler(t *testing.T) {
	routes := []DocRoute{{Title: "Blog", Path: "/blog", Href: "/blog"}}

	h, err := Handler(&Doc{Title: "Routes", Routes: &routes})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/__routes", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `<a href="/blog">Blog</a>`)
}

func TestHandlerPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { _, _ = Handler(nil) })
	assert.Panics(t, func() { _, _ = Handler(&Doc{}) })
}

func TestHandlerReturnsTemplateErrors(t *testing.T) {
	original := indexTmpl
	t.Cleanup(func() { indexTmpl = original })

	indexTmpl = template.Must(template.New("index.template.html").Parse("{{ .Missing }}"))

	routes := []DocRoute{{Title: "Blog", Path: "/blog", Href: "/blog"}}

	h, err := Handler(&Doc{Title: "Routes", Routes: &routes})
	assert.Error(t, err)
	assert.Nil(t, h)
}
