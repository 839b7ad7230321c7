package site

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/arufa-research/junokit-user-docs/internal/manifest"
	"github.com/arufa-research/junokit-user-docs/internal/route"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts Options) (*Site, http.Handler) {
	t.Helper()

	s, err := New(opts)
	require.NoError(t, err)

	r := chi.NewRouter()
	s.Register(r)

	return s, r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func builtSite(t *testing.T) afero.Fs {
	t.Helper()

	built := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(built, "blog/index.html", []byte("<h1>Built blog</h1>"), 0o644))
	require.NoError(t, afero.WriteFile(built, "img/logo.svg", []byte("<svg></svg>"), 0o644))
	require.NoError(t, afero.WriteFile(built, "assets/js/main.js", []byte("console.log(1)"), 0o644))
	require.NoError(t, afero.WriteFile(built, "404.html", []byte("<h1>Built not found</h1>"), 0o644))

	return built
}

func TestPages(t *testing.T) {
	_, h := newTestServer(t, Options{Fs: builtSite(t)})

	t.Run("built page shadows placeholder", func(t *testing.T) {
		rec := get(h, "/blog/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<h1>Built blog</h1>", rec.Body.String())
	})

	t.Run("exact nested tag page", func(t *testing.T) {
		rec := get(h, "/blog/tags/docusaurus")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>Docusaurus</h1>")
		assert.Contains(t, rec.Body.String(), "/blog/tags/docusaurus")
	})

	t.Run("doc page carries its sidebar", func(t *testing.T) {
		rec := get(h, "/docs/intro")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `data-sidebar="tutorialSidebar"`)
		assert.Contains(t, body, `<a href="/docs/intro" class="active" aria-current="page">Intro</a>`)
		assert.Contains(t, body, `<a href="/docs/Getting-started/installation">Installation</a>`)
	})

	t.Run("home", func(t *testing.T) {
		rec := get(h, "/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>Home</h1>")
	})

	t.Run("unknown path falls to catch-all", func(t *testing.T) {
		for _, target := range []string{"/nope", "/docs", "/docs/missing", "/blog/tags/missing"} {
			rec := get(h, target)
			assert.Equal(t, http.StatusNotFound, rec.Code, target)
			assert.Contains(t, rec.Body.String(), "Built not found", target)
		}
	})

	t.Run("static file", func(t *testing.T) {
		rec := get(h, "/img/logo.svg")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<svg></svg>", rec.Body.String())
	})

	t.Run("bundled asset", func(t *testing.T) {
		rec := get(h, "/assets/js/main.js")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "console.log(1)", rec.Body.String())
	})

	t.Run("asset lookups stay inside the assets directory", func(t *testing.T) {
		assert.NotEqual(t, http.StatusOK, get(h, "/assets/blog/index.html").Code)
	})

	t.Run("not found page keeps its status", func(t *testing.T) {
		rec := get(h, "/404.html")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "<h1>Built not found</h1>", rec.Body.String())
	})

	t.Run("index.html answers like its directory", func(t *testing.T) {
		rec := get(h, "/blog/index.html")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<h1>Built blog</h1>", rec.Body.String())

		assert.Equal(t, http.StatusNotFound, get(h, "/docs/index.html").Code)
	})
}

func TestPlaceholderOnlySite(t *testing.T) {
	_, h := newTestServer(t, Options{})

	rec := get(h, "/blog")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "has not been built yet")
	assert.Contains(t, rec.Body.String(), "chunk <code>626</code>")
}

func TestRoutesEndpoints(t *testing.T) {
	s, h := newTestServer(t, Options{})

	t.Run("json", func(t *testing.T) {
		rec := get(h, "/__routes.json")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		table, err := route.DecodeJSON(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, s.Table(), table)
	})

	t.Run("html listing", func(t *testing.T) {
		rec := get(h, "/__routes")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<a href="/docs/Guides/writing-scripts">Writing scripts</a>`)
		assert.NotContains(t, rec.Body.String(), `href="*"`)
	})

	t.Run("resolve", func(t *testing.T) {
		rec := get(h, "/__resolve?path=/docs/intro/")
		require.Equal(t, http.StatusOK, rec.Code)

		var res Resolution
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.True(t, res.Found)
		assert.False(t, res.Fallback)
		assert.Equal(t, "/docs/intro", res.Normalized)
		assert.Equal(t, "docs/intro/index.html", res.File)
		assert.Equal(t, []string{"/docs"}, res.Parents)
		require.NotNil(t, res.Record)
		assert.Equal(t, "tutorialSidebar", res.Record.Sidebar)
	})

	t.Run("resolve fallback", func(t *testing.T) {
		rec := get(h, "/__resolve?path=/missing")
		require.Equal(t, http.StatusOK, rec.Code)

		var res Resolution
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.True(t, res.Fallback)
		assert.Equal(t, "404.html", res.File)
	})

	t.Run("resolve without path", func(t *testing.T) {
		rec := get(h, "/__resolve")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "required")
	})
}

func writeManifest(t *testing.T, path string, table route.Table) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, route.EncodeJSON(&buf, table))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestDevModeReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")

	table := route.Table{
		{Path: "/guide", Component: route.Component{Key: "/guide", Hash: "aaa"}, Exact: true},
		{Path: route.CatchAll, Component: route.Component{Key: route.CatchAll}},
	}
	writeManifest(t, path, table)

	_, h := newTestServer(t, Options{Source: manifest.Source{Path: path}, Dev: true})

	assert.Equal(t, http.StatusOK, get(h, "/guide").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/reference").Code)

	table = append(route.Table{{Path: "/reference", Component: route.Component{Key: "/reference", Hash: "bbb"}, Exact: true}}, table...)
	writeManifest(t, path, table)

	rec := get(h, "/reference")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Reference</h1>")

	require.NoError(t, os.WriteFile(path, []byte(`[{"path": "/reference"}]`), 0o600))
	assert.Equal(t, http.StatusInternalServerError, get(h, "/reference").Code)
}

func TestNewFailsOnInvalidManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	writeManifest(t, path, route.Table{{Path: "/guide", Component: route.Component{Key: "/guide"}}})

	_, err := New(Options{Source: manifest.Source{Path: path}})
	assert.ErrorIs(t, err, route.ErrCatchAllMissing)
}

func TestPageFileAndTitle(t *testing.T) {
	assert.Equal(t, "index.html", pageFile("/"))
	assert.Equal(t, "404.html", pageFile(route.CatchAll))
	assert.Equal(t, "docs/Guides/testing/index.html", pageFile("/docs/Guides/testing"))

	assert.Equal(t, "Home", pageTitle("/"))
	assert.Equal(t, "Using localenet", pageTitle("/docs/Guides/using-localenet"))
	assert.Equal(t, "Page Not Found", pageTitle(route.CatchAll))
}
