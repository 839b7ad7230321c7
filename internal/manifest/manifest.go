package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arufa-research/junokit-user-docs/internal/route"
)

//go:embed routes.js
var embeddedModule []byte

// Source says where a route table comes from. The zero value is the table
// compiled into the binary.
type Source struct {
	Path string
}

func (s Source) String() string {
	if s.Path == "" {
		return "embedded routes.js"
	}

	return s.Path
}

func (s Source) Load() (route.Table, error) {
	if s.Path == "" {
		return Default()
	}

	return Load(s.Path)
}

func Default() (route.Table, error) {
	return decode("routes.js", embeddedModule)
}

// Load reads a route table from disk. The format follows the extension:
// .js for a generated routes module, .json, or .yaml/.yml.
func Load(path string) (route.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route manifest failed: %w", err)
	}

	return decode(path, data)
}

func decode(name string, data []byte) (route.Table, error) {
	var (
		table route.Table
		err   error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".js", ".mjs":
		table, err = route.ParseModule(data)
	case ".json":
		table, err = route.DecodeJSON(bytes.NewReader(data))
	case ".yaml", ".yml":
		table, err = route.DecodeYAML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported route manifest extension %q: %s", ext, name)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid route table: %w", name, err)
	}

	return table, nil
}
