package route

// CatchAll is the path of the fallback record that matches every request.
const CatchAll = "*"

type Component struct {
	Key  string `json:"key" yaml:"key"`
	Hash string `json:"hash,omitempty" yaml:"hash,omitempty"`
}

type Record struct {
	Path      string    `json:"path" yaml:"path"`
	Component Component `json:"component" yaml:"component"`
	Exact     bool      `json:"exact,omitempty" yaml:"exact,omitempty"`
	Routes    []Record  `json:"routes,omitempty" yaml:"routes,omitempty"`
	Sidebar   string    `json:"sidebar,omitempty" yaml:"sidebar,omitempty"`
}

// Table is the ordered top level of a route manifest. Order is matching
// precedence.
type Table []Record

// Match is the outcome of resolving a path. Parents holds the non-exact
// records that were entered on the way to Record, outermost first.
type Match struct {
	Record  *Record   `json:"record"`
	Parents []*Record `json:"parents,omitempty"`
}

func (r *Record) IsCatchAll() bool {
	return r.Path == CatchAll
}

func (r *Record) IsLeaf() bool {
	return len(r.Routes) == 0
}
