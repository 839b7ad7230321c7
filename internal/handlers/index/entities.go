package index

type Doc struct {
	Title  string      `json:"title"`
	Routes *[]DocRoute `json:"routes"`
}

type DocRoute struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Href    string `json:"href"`
	Sidebar string `json:"sidebar,omitempty"`
	Chunk   string `json:"chunk,omitempty"`
}
