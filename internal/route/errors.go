package route

import "errors"

var (
	ErrEmptyPath          = errors.New("route path is empty")
	ErrRelativePath       = errors.New("route path must start with a slash")
	ErrDuplicatePath      = errors.New("duplicate route path")
	ErrCatchAllMissing    = errors.New("catch-all route is missing")
	ErrCatchAllNotLast    = errors.New("catch-all route is not last")
	ErrCatchAllRepeated   = errors.New("catch-all route appears more than once")
	ErrSidebarOnBranch    = errors.New("sidebar set on a route with nested routes")
	ErrChildOutsideParent = errors.New("nested route is outside its parent path")
	ErrMissingComponent   = errors.New("route has no component key")
	ErrSyntax             = errors.New("route module syntax error")
)
