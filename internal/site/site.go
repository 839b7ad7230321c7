package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/arufa-research/junokit-user-docs/internal/handlers/index"
	"github.com/arufa-research/junokit-user-docs/internal/manifest"
	"github.com/arufa-research/junokit-user-docs/internal/route"

	"github.com/brody192/ext/handler"
	"github.com/brody192/ext/respond"
	"github.com/brody192/logger"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"github.com/yalue/merged_fs"
)

const mimeJSON = "application/json; charset=utf-8"

type Options struct {
	Source manifest.Source

	// Dir is the output directory of a static build. Fs takes precedence
	// when both are set. With neither, only placeholder pages are served.
	Dir string
	Fs  afero.Fs

	// Dev reloads the route table and placeholder pages on every request.
	Dev bool
}

type Site struct {
	opts  Options
	built fs.FS

	mu    sync.RWMutex
	state *state
}

type state struct {
	table      route.Table
	content    fs.FS
	routesPage http.HandlerFunc
}

func New(opts Options) (*Site, error) {
	s := &Site{
		opts:  opts,
		built: builtFS(opts),
	}

	st, err := s.load()
	if err != nil {
		return nil, err
	}

	s.state = st

	return s, nil
}

func builtFS(opts Options) fs.FS {
	switch {
	case opts.Fs != nil:
		return afero.NewIOFS(afero.NewReadOnlyFs(opts.Fs))
	case opts.Dir != "":
		return afero.NewIOFS(afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), opts.Dir)))
	}

	return nil
}

func (s *Site) load() (*state, error) {
	sT := time.Now()

	table, err := s.opts.Source.Load()
	if err != nil {
		return nil, fmt.Errorf("loading route table from %s failed: %w", s.opts.Source, err)
	}

	generated, count, err := renderPages(table)
	if err != nil {
		return nil, fmt.Errorf("rendering placeholder pages failed: %w", err)
	}

	content := generated

	if s.built != nil {
		content = merged_fs.NewMergedFS(s.built, generated)
	}

	routesPage, err := index.Handler(routesDoc(table))
	if err != nil {
		return nil, fmt.Errorf("rendering route listing failed: %w", err)
	}

	st := &state{
		table:      table,
		content:    content,
		routesPage: routesPage,
	}

	logger.Stdout.Info("loaded route table",
		slog.String("source", s.opts.Source.String()),
		slog.Int("routes", table.Len()),
		slog.Int("placeholder_pages", count),
		slog.String("time_pretty", time.Since(sT).String()),
	)

	return st, nil
}

func routesDoc(table route.Table) *index.Doc {
	var docRoutes []index.DocRoute

	for _, r := range table.Leaves() {
		if r.IsCatchAll() {
			continue
		}

		docRoutes = append(docRoutes, index.DocRoute{
			Title:   pageTitle(r.Path),
			Path:    r.Path,
			Href:    r.Path,
			Sidebar: r.Sidebar,
			Chunk:   r.Component.Hash,
		})
	}

	return &index.Doc{
		Title:  "Routes",
		Routes: &docRoutes,
	}
}

func (s *Site) current() (*state, error) {
	if !s.opts.Dev {
		s.mu.RLock()
		defer s.mu.RUnlock()

		return s.state, nil
	}

	st, err := s.load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	return st, nil
}

// Table returns the route table currently being served.
func (s *Site) Table() route.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.table
}

func (s *Site) Register(r chi.Router) {
	if s.built != nil {
		if assets, err := fs.Sub(s.built, "assets"); err == nil {
			handler.FileServer(r, "/assets", assets, false)
		}
	}

	r.Get("/__routes", s.routesPage)
	r.Get("/__routes.json", s.routesJSON)
	r.Get("/__resolve", s.resolve)
	r.Get("/*", s.page)
}

func (s *Site) withState(w http.ResponseWriter) (*state, bool) {
	st, err := s.current()
	if err != nil {
		logger.Stderr.Error("failed to reload route table", logger.ErrAttr(err))
		http.Error(w, "failed to reload route table", http.StatusInternalServerError)
		return nil, false
	}

	return st, true
}

func (s *Site) page(w http.ResponseWriter, r *http.Request) {
	st, ok := s.withState(w)
	if !ok {
		return
	}

	urlPath := r.URL.Path

	// pages are only reachable through the route table, so 404.html keeps
	// its status and dir/index.html answers like dir
	switch name := strings.TrimPrefix(path.Clean("/"+urlPath), "/"); {
	case name == "" || name == notFoundFile:
	case path.Base(name) == "index.html":
		urlPath = path.Dir("/" + name)
	default:
		if info, err := fs.Stat(st.content, name); err == nil && info.Mode().IsRegular() {
			http.ServeFileFS(w, r, st.content, name)
			return
		}
	}

	m, found := st.table.Resolve(urlPath)
	if !found {
		http.NotFound(w, r)
		return
	}

	status := http.StatusOK
	if m.Record.IsCatchAll() {
		status = http.StatusNotFound
	}

	name := pageFile(m.Record.Path)

	body, err := fs.ReadFile(st.content, name)
	if err != nil {
		logger.Stderr.Error("failed to read page", slog.String("file", name), logger.ErrAttr(err))
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	respond.HTMLBlob(w, body, status)
}

func (s *Site) routesPage(w http.ResponseWriter, r *http.Request) {
	st, ok := s.withState(w)
	if !ok {
		return
	}

	st.routesPage(w, r)
}

func (s *Site) routesJSON(w http.ResponseWriter, _ *http.Request) {
	st, ok := s.withState(w)
	if !ok {
		return
	}

	buf := &bytes.Buffer{}

	if err := route.EncodeJSON(buf, st.table); err != nil {
		logger.Stderr.Error("failed to encode route table", logger.ErrAttr(err))
		http.Error(w, "failed to encode route table", http.StatusInternalServerError)
		return
	}

	respond.Blob(w, mimeJSON, buf.Bytes(), http.StatusOK)
}

type Resolution struct {
	Path       string        `json:"path"`
	Normalized string        `json:"normalized"`
	Found      bool          `json:"found"`
	Fallback   bool          `json:"fallback"`
	File       string        `json:"file,omitempty"`
	Record     *route.Record `json:"record,omitempty"`
	Parents    []string      `json:"parents,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Site) resolve(w http.ResponseWriter, r *http.Request) {
	st, ok := s.withState(w)
	if !ok {
		return
	}

	p := r.URL.Query().Get("path")
	if p == "" {
		writeJSON(w, errorResponse{Error: "query parameter 'path' is required"}, http.StatusBadRequest)
		return
	}

	res := Resolution{
		Path:       p,
		Normalized: route.Normalize(p),
	}

	if m, found := st.table.Resolve(p); found {
		res.Found = true
		res.Fallback = m.Record.IsCatchAll()
		res.File = pageFile(m.Record.Path)
		res.Record = m.Record

		for _, parent := range m.Parents {
			res.Parents = append(res.Parents, parent.Path)
		}
	}

	writeJSON(w, res, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Stderr.Error("failed to encode response", logger.ErrAttr(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	respond.Blob(w, mimeJSON, body, status)
}
