package tools

import (
	"os"
	"path/filepath"
	"strings"
)

// Cwd is the working directory at startup; relative config paths resolve
// against it.
var Cwd = must(os.Getwd())

// EnvToMap snapshots the process environment. Entries without '=' are
// skipped.
func EnvToMap() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}

	return env
}

// Abs resolves name against Cwd. Empty and absolute names pass through.
func Abs(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(Cwd, name)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}
