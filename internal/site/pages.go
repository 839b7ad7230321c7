package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arufa-research/junokit-user-docs/internal/route"

	"github.com/spf13/afero"
)

const (
	notFoundFile = "404.html"
	siteTitle    = "Junokit"
)

var pageTmpl = template.Must(template.ParseFS(pageHTMLfs, "page.template.html"))

type navItem struct {
	Title  string
	Href   string
	Active bool
}

type page struct {
	SiteTitle string
	Title     string
	Path      string
	Component route.Component
	Sidebar   string
	Nav       []navItem
	NotFound  bool
}

// pageFile is where a static build keeps the HTML for a route path.
func pageFile(routePath string) string {
	if routePath == route.CatchAll {
		return notFoundFile
	}

	name := strings.Trim(routePath, "/")
	if name == "" {
		return "index.html"
	}

	return name + "/index.html"
}

// pageTitle turns the last path segment into a heading, "using-localenet"
// becomes "Using localenet".
func pageTitle(routePath string) string {
	switch routePath {
	case "/":
		return "Home"
	case route.CatchAll:
		return "Page Not Found"
	}

	title := strings.ReplaceAll(path.Base(routePath), "-", " ")

	r, size := utf8.DecodeRuneInString(title)

	return string(unicode.ToUpper(r)) + title[size:]
}

// renderPages writes a placeholder page for every leaf route into a memory
// filesystem. Pages from a real build shadow these.
func renderPages(table route.Table) (fs.FS, int, error) {
	memfs := afero.NewMemMapFs()
	sidebars := table.Sidebars()
	count := 0

	for _, r := range table.Leaves() {
		p := &page{
			SiteTitle: siteTitle,
			Title:     pageTitle(r.Path),
			Path:      r.Path,
			Component: r.Component,
			Sidebar:   r.Sidebar,
			NotFound:  r.IsCatchAll(),
		}

		for _, sibling := range sidebars[r.Sidebar] {
			p.Nav = append(p.Nav, navItem{
				Title:  pageTitle(sibling.Path),
				Href:   sibling.Path,
				Active: sibling == r,
			})
		}

		name := pageFile(r.Path)

		if dir := path.Dir(name); dir != "." {
			if err := memfs.MkdirAll(dir, 0o700); err != nil {
				return nil, 0, fmt.Errorf("mkdir failed: %w", err)
			}
		}

		if err := writePage(memfs, name, p); err != nil {
			return nil, 0, err
		}

		count++
	}

	return afero.NewIOFS(memfs), count, nil
}

func writePage(memfs afero.Fs, name string, p *page) error {
	f, err := memfs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("openfile failed to open %s: %w", name, err)
	}

	defer f.Close()

	if err := pageTmpl.ExecuteTemplate(f, "page.template.html", p); err != nil {
		return fmt.Errorf("failed to execute template for %s: %w", name, err)
	}

	return nil
}
