package main

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "worldvoice.in/web/internal/middleware"
)

const requestTimeout = 30 * time.Second

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/metrics", a.metrics.Handler())

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(a.cfg.Content.PublicDir, "assets"), 0))
	r.Handle("/assets/*", assets)

	a.pages.Routes(r)
	r.NotFound(a.pages.NotFound)
	return r
}
