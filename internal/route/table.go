package route

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Walk visits every record in table order, parents before their children.
// Returning an error from fn stops the walk and returns that error.
func (t Table) Walk(fn func(r *Record, depth int) error) error {
	return walk(t, 0, fn)
}

func walk(level []Record, depth int, fn func(r *Record, depth int) error) error {
	for i := range level {
		if err := fn(&level[i], depth); err != nil {
			return err
		}

		if err := walk(level[i].Routes, depth+1, fn); err != nil {
			return err
		}
	}

	return nil
}

func (t Table) Leaves() []*Record {
	var leaves []*Record

	_ = t.Walk(func(r *Record, _ int) error {
		if r.IsLeaf() {
			leaves = append(leaves, r)
		}

		return nil
	})

	return leaves
}

// Sidebars groups the leaves that carry a sidebar tag, keeping table order
// inside each group.
func (t Table) Sidebars() map[string][]*Record {
	sidebars := make(map[string][]*Record)

	for _, leaf := range t.Leaves() {
		if leaf.Sidebar == "" {
			continue
		}

		sidebars[leaf.Sidebar] = append(sidebars[leaf.Sidebar], leaf)
	}

	return sidebars
}

func (t Table) Find(path string) *Record {
	var found *Record

	_ = t.Walk(func(r *Record, _ int) error {
		if found == nil && r.Path == path {
			found = r
		}

		return nil
	})

	return found
}

// Len counts every record in the tree.
func (t Table) Len() int {
	n := 0

	_ = t.Walk(func(*Record, int) error {
		n++
		return nil
	})

	return n
}

// Validate reports every structural violation in the table, not just the
// first one.
func (t Table) Validate() error {
	var result *multierror.Error

	result = validateLevel(result, t, nil)

	catchAlls := 0

	for i := range t {
		if t[i].IsCatchAll() {
			catchAlls++
		}
	}

	if catchAlls == 0 {
		result = multierror.Append(result, ErrCatchAllMissing)
	}

	return result.ErrorOrNil()
}

func validateLevel(result *multierror.Error, level []Record, parent *Record) *multierror.Error {
	seen := make(map[string]struct{}, len(level))
	catchAllSeen := false

	for i := range level {
		r := &level[i]

		switch {
		case r.Path == "":
			result = multierror.Append(result, fmt.Errorf("%w: position %d under %q", ErrEmptyPath, i, parentPath(parent)))
		case r.IsCatchAll():
			if catchAllSeen {
				result = multierror.Append(result, fmt.Errorf("%w: under %q", ErrCatchAllRepeated, parentPath(parent)))
			}

			catchAllSeen = true

			if i != len(level)-1 {
				result = multierror.Append(result, fmt.Errorf("%w: position %d of %d under %q", ErrCatchAllNotLast, i, len(level), parentPath(parent)))
			}
		case !strings.HasPrefix(r.Path, "/"):
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrRelativePath, r.Path))
		}

		if _, ok := seen[r.Path]; ok && !r.IsCatchAll() {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrDuplicatePath, r.Path))
		}

		seen[r.Path] = struct{}{}

		if !r.IsCatchAll() && r.Component.Key == "" {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingComponent, r.Path))
		}

		if r.Sidebar != "" && !r.IsLeaf() {
			result = multierror.Append(result, fmt.Errorf("%w: %s (sidebar %q)", ErrSidebarOnBranch, r.Path, r.Sidebar))
		}

		if parent != nil && r.Path != "" && !r.IsCatchAll() && !underPath(parent.Path, r.Path) {
			result = multierror.Append(result, fmt.Errorf("%w: %s is not under %s", ErrChildOutsideParent, r.Path, parent.Path))
		}

		if !r.IsLeaf() {
			result = validateLevel(result, r.Routes, r)
		}
	}

	return result
}

func parentPath(parent *Record) string {
	if parent == nil {
		return "/"
	}

	return parent.Path
}

// underPath reports whether path equals prefix or is one of its sub-paths.
func underPath(prefix, path string) bool {
	if prefix == "/" || prefix == path {
		return true
	}

	return strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}
