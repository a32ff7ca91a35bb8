// Package handlers serves content pages through the shared layout.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"worldvoice.in/web/internal/cms"
	"worldvoice.in/web/internal/layout"
	mw "worldvoice.in/web/internal/middleware"
	"worldvoice.in/web/internal/observability"
	"worldvoice.in/web/internal/seo"
)

const homeSlug = "home"

// ContentSource is the read side of the content store.
type ContentSource interface {
	GetPage(ctx context.Context, kind, slug string) (cms.Page, error)
	ListPages(ctx context.Context, opts cms.ListOptions) ([]cms.Page, error)
	Site(ctx context.Context) cms.Site
}

// Options configure a Server.
type Options struct {
	SEO           seo.Config
	Defaults      layout.Defaults
	SiteURL       string // overrides the content source's site URL when set
	HomePostLimit int
	Metrics       *observability.Metrics
}

// Server renders pages from a ContentSource.
type Server struct {
	content ContentSource
	opts    Options
}

// New constructs a Server.
func New(content ContentSource, opts Options) *Server {
	return &Server{content: content, opts: opts}
}

// Routes registers the page routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Home)
	r.Get("/meta.json", s.HomeMeta)
	// The home intro page lives at "/" only.
	r.Get("/"+homeSlug, redirectTo("/"))
	r.Get("/"+homeSlug+"/meta.json", redirectTo("/meta.json"))
	r.Get("/posts", s.Posts)
	r.Get("/posts/{slug}", s.Post)
	r.Get("/posts/{slug}/meta.json", s.PostMeta)
	r.Get("/{slug}", s.Page)
	r.Get("/{slug}/meta.json", s.PageMeta)
}

func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	}
}

// Home renders the landing page with the latest posts.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	composed, err := s.BuildHome(r.Context())
	s.respond(w, r, cms.KindPage, composed, err)
}

// HomeMeta writes the landing page metadata as JSON.
func (s *Server) HomeMeta(w http.ResponseWriter, r *http.Request) {
	composed, err := s.BuildHome(r.Context())
	s.respondMeta(w, r, composed, err)
}

// Posts renders the archive of all posts.
func (s *Server) Posts(w http.ResponseWriter, r *http.Request) {
	composed, err := s.BuildArchive(r.Context())
	s.respond(w, r, cms.KindPost, composed, err)
}

// Page renders a standalone page.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	composed, err := s.BuildPage(r.Context(), cms.KindPage, chi.URLParam(r, "slug"))
	s.respond(w, r, cms.KindPage, composed, err)
}

// PageMeta writes a page's metadata as JSON.
func (s *Server) PageMeta(w http.ResponseWriter, r *http.Request) {
	composed, err := s.BuildPage(r.Context(), cms.KindPage, chi.URLParam(r, "slug"))
	s.respondMeta(w, r, composed, err)
}

// Post renders a single post.
func (s *Server) Post(w http.ResponseWriter, r *http.Request) {
	composed, err := s.BuildPage(r.Context(), cms.KindPost, chi.URLParam(r, "slug"))
	s.respond(w, r, cms.KindPost, composed, err)
}

// PostMeta writes a post's metadata as JSON.
func (s *Server) PostMeta(w http.ResponseWriter, r *http.Request) {
	composed, err := s.BuildPage(r.Context(), cms.KindPost, chi.URLParam(r, "slug"))
	s.respondMeta(w, r, composed, err)
}

// NotFound renders the not-found page inside the layout.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, "unknown", layout.Composed{}, cms.ErrNotFound)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, kind string, composed layout.Composed, err error) {
	logger := observability.FromContext(r.Context())
	status := http.StatusOK
	outcome := observability.OutcomeOK
	switch {
	case errors.Is(err, cms.ErrNotFound):
		status = http.StatusNotFound
		outcome = observability.OutcomeNotFound
		composed = s.buildNotFound(r.Context(), r.URL.Path)
	case err != nil:
		logger.Error("render page", zap.String("kind", kind), zap.String("path", r.URL.Path), zap.Error(err))
		s.opts.Metrics.PageRendered(kind, observability.OutcomeError)
		internalError(w, r)
		return
	}

	var buf bytes.Buffer
	if err := composed.Render(&buf); err != nil {
		logger.Error("write page", zap.String("kind", kind), zap.String("path", r.URL.Path), zap.Error(err))
		s.opts.Metrics.PageRendered(kind, observability.OutcomeError)
		internalError(w, r)
		return
	}
	s.observe(kind, outcome, composed.Meta)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) observe(kind, outcome string, meta seo.Output) {
	s.opts.Metrics.PageRendered(kind, outcome)
	if meta.Empty() {
		s.opts.Metrics.MetadataEmpty()
		return
	}
	types := make([]string, 0, len(meta.Documents))
	for _, doc := range meta.Documents {
		types = append(types, doc.Type)
	}
	s.opts.Metrics.DocumentsEmitted(types...)
}

func (s *Server) respondMeta(w http.ResponseWriter, r *http.Request, composed layout.Composed, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	switch {
	case errors.Is(err, cms.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		return
	case err != nil:
		observability.FromContext(r.Context()).Error("build metadata", zap.String("path", r.URL.Path), zap.Error(err))
		body := map[string]string{"error": "internal error"}
		if rid, ok := mw.RequestID(r.Context()); ok {
			body["requestId"] = rid
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(body)
		return
	}
	_ = WriteMeta(w, composed)
}

// internalError writes a plain 500 carrying the request id so it can be matched to the logs.
func internalError(w http.ResponseWriter, r *http.Request) {
	msg := http.StatusText(http.StatusInternalServerError)
	if rid, ok := mw.RequestID(r.Context()); ok {
		msg += " (request " + rid + ")"
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

func (s *Server) site(ctx context.Context) layout.Site {
	site := s.content.Site(ctx)
	url := site.URL
	if strings.TrimSpace(s.opts.SiteURL) != "" {
		url = s.opts.SiteURL
	}
	return layout.Site{
		Title:       site.Title,
		Description: site.Description,
		URL:         url,
		HeaderMenu:  site.HeaderMenu,
		FooterMenu:  site.FooterMenu,
	}
}
