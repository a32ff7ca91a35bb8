package handlers

import (
	"context"
	"errors"
	"net/url"
	"strings"

	g "maragu.dev/gomponents"

	"worldvoice.in/web/internal/cms"
	"worldvoice.in/web/internal/format"
	"worldvoice.in/web/internal/layout"
)

const notFoundTitle = "Page not found"

// BuildPage loads a page or post and composes it with the site layout.
func (s *Server) BuildPage(ctx context.Context, kind, slug string) (layout.Composed, error) {
	page, err := s.content.GetPage(ctx, kind, slug)
	if err != nil {
		return layout.Composed{}, err
	}
	site := s.site(ctx)
	path := contentPath(page.Kind, page.Slug)
	return layout.Compose(toLayoutPage(page, path, site.URL, articleView(page)), site, s.opts.Defaults, s.opts.SEO), nil
}

// BuildHome composes the landing page: the optional "home" page followed by the latest posts.
func (s *Server) BuildHome(ctx context.Context) (layout.Composed, error) {
	site := s.site(ctx)
	intro, err := s.content.GetPage(ctx, cms.KindPage, homeSlug)
	switch {
	case errors.Is(err, cms.ErrNotFound):
		intro = cms.Page{}
	case err != nil:
		return layout.Composed{}, err
	}

	var posts []cms.Page
	if s.opts.HomePostLimit > 0 {
		posts, err = s.content.ListPages(ctx, cms.ListOptions{Kind: cms.KindPost, Limit: s.opts.HomePostLimit})
		if err != nil {
			return layout.Composed{}, err
		}
	}

	page := toLayoutPage(intro, "/", site.URL, homeView(intro, posts))
	return layout.Compose(page, site, s.opts.Defaults, s.opts.SEO), nil
}

// BuildArchive composes the list of all posts.
func (s *Server) BuildArchive(ctx context.Context) (layout.Composed, error) {
	posts, err := s.content.ListPages(ctx, cms.ListOptions{Kind: cms.KindPost})
	if err != nil {
		return layout.Composed{}, err
	}
	site := s.site(ctx)
	page := layout.Page{
		Path:         "/posts",
		Title:        "Posts",
		CanonicalURL: absoluteURL(site.URL, "/posts"),
		Content:      archiveView(posts),
	}
	return layout.Compose(page, site, s.opts.Defaults, s.opts.SEO), nil
}

func (s *Server) buildNotFound(ctx context.Context, path string) layout.Composed {
	site := s.site(ctx)
	page := layout.Page{
		Path:    path,
		Title:   notFoundTitle,
		Content: notFoundView(),
	}
	return layout.Compose(page, site, s.opts.Defaults, s.opts.SEO)
}

// toLayoutPage maps content to layout values. SEO overrides win over the
// content's own title, summary and featured image.
func toLayoutPage(page cms.Page, path, siteURL string, content g.Node) layout.Page {
	canonical := strings.TrimSpace(page.CanonicalURL)
	if canonical == "" && page.Slug != "" {
		canonical = absoluteURL(siteURL, path)
	}
	return layout.Page{
		Path:          path,
		Title:         firstNonEmpty(page.SEO.Title, page.Title),
		Description:   firstNonEmpty(page.SEO.Description, page.Summary),
		ImageURL:      firstNonEmpty(page.SEO.OGImage, page.FeaturedImageURL),
		CanonicalURL:  canonical,
		DatePublished: format.ISO8601(page.PublishedAt),
		DateModified:  format.ISO8601(page.UpdatedAt),
		AuthorName:    page.Author.Name,
		AuthorURL:     page.Author.URL,
		Content:       content,
	}
}

func contentPath(kind, slug string) string {
	if kind == cms.KindPost {
		return "/posts/" + slug
	}
	return "/" + slug
}

// absoluteURL resolves path against base. It returns "" when base is not absolute.
func absoluteURL(base, path string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	ref, err := url.Parse(path)
	if err != nil {
		return ""
	}
	return u.ResolveReference(ref).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
