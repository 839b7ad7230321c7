package config

import (
	"cmp"
	"strings"

	"github.com/arufa-research/junokit-user-docs/internal/tools"
)

type Config struct {
	Port string

	// Manifest is a route table file; empty means the embedded one.
	Manifest string

	// SiteDir is the static build output. Placeholder pages fill in for
	// anything it does not contain.
	SiteDir string

	Dev bool
}

func Load() Config {
	return FromEnv(tools.EnvToMap())
}

func FromEnv(env map[string]string) Config {
	return Config{
		Port:     cmp.Or(env["PORT"], "3000"),
		Manifest: tools.Abs(env["ROUTES_MANIFEST"]),
		SiteDir:  tools.Abs(cmp.Or(env["SITE_DIR"], "build")),
		Dev:      strings.HasPrefix(env["ENV"], "dev"),
	}
}
