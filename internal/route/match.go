package route

import (
	"path"
	"strings"
)

// Normalize turns a request path into the form records are matched against:
// no query or fragment, a leading slash, no trailing slash except for the
// root, and no empty or dot segments.
func Normalize(urlPath string) string {
	if i := strings.IndexAny(urlPath, "?#"); i >= 0 {
		urlPath = urlPath[:i]
	}

	return path.Clean("/" + urlPath)
}

// Resolve finds the record that answers urlPath. Records are tried in
// order and the first match wins. A non-exact record with nested routes is
// entered, and if none of its children match the search continues with its
// siblings, which normally ends at the catch-all.
func (t Table) Resolve(urlPath string) (Match, bool) {
	return resolve(t, Normalize(urlPath), nil)
}

func resolve(level []Record, p string, parents []*Record) (Match, bool) {
	for i := range level {
		r := &level[i]

		if !r.matches(p) {
			continue
		}

		if r.IsLeaf() {
			return Match{Record: r, Parents: parents}, true
		}

		trail := make([]*Record, len(parents), len(parents)+1)
		copy(trail, parents)

		if m, ok := resolve(r.Routes, p, append(trail, r)); ok {
			return m, true
		}
	}

	return Match{}, false
}

func (r *Record) matches(p string) bool {
	if r.IsCatchAll() {
		return true
	}

	pattern := r.Path
	if pattern != "/" {
		pattern = strings.TrimSuffix(pattern, "/")
	}

	if strings.EqualFold(p, pattern) {
		return true
	}

	if r.Exact {
		return false
	}

	if pattern == "/" {
		return true
	}

	return len(p) > len(pattern) && p[len(pattern)] == '/' && strings.EqualFold(p[:len(pattern)], pattern)
}
