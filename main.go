package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/arufa-research/junokit-user-docs/internal/config"
	"github.com/arufa-research/junokit-user-docs/internal/manifest"
	"github.com/arufa-research/junokit-user-docs/internal/site"

	"github.com/brody192/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	extmiddleware "github.com/brody192/ext/middleware"
)

func main() {
	cfg := config.Load()

	if cfg.Dev {
		logger.Stdout.Info("running in dev mode", slog.String("info", "unset ENV=dev to run in prod"))
	} else {
		logger.Stderr.Info("running in prod mode", slog.String("info", "set ENV=dev to run in dev"))
	}

	siteDir := cfg.SiteDir

	if info, err := os.Stat(siteDir); err != nil || !info.IsDir() {
		logger.Stderr.Warn("site build directory not found, serving placeholder pages only", slog.String("dir", siteDir))
		siteDir = ""
	}

	docs, err := site.New(site.Options{
		Source: manifest.Source{Path: cfg.Manifest},
		Dir:    siteDir,
		Dev:    cfg.Dev,
	})
	if err != nil {
		logger.Stdout.Error("failed to load docs site", logger.ErrAttr(err))
		os.Exit(1)
	}

	var r = chi.NewRouter()

	r.Use(extmiddleware.AutoReply([]string{
		"/service-worker.js",
	}, 404))
	r.Use(extmiddleware.TrustProxy(&extmiddleware.TrustProxyConfig{}))
	r.Use(extmiddleware.Logger(logger.Stdout))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	if cfg.Dev {
		r.Use(middleware.NoCache)
	}

	docs.Register(r)

	logger.Stdout.Info("starting server", slog.String("port", cfg.Port))

	if err := http.ListenAndServe((":" + cfg.Port), r); err != nil {
		logger.Stderr.Error("server exited with an error", logger.ErrAttr(err))
	}
}
