package cms

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"worldvoice.in/web/internal/nav"
)

// ErrNotFound is returned when a content resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

// Content kinds map to sub-directories of the content dir and to remote path segments.
const (
	KindPage = "pages"
	KindPost = "posts"
)

const (
	defaultContentFormat = "markdown"
	defaultContentDir    = "content"
	excerptLength        = 160
)

// Page is a single piece of content rendered into the layout's content slot.
type Page struct {
	Kind             string
	Slug             string
	Title            string
	Summary          string
	Body             string // sanitized HTML
	Format           string // "markdown" (default) or "html" at the source
	FeaturedImageURL string
	CanonicalURL     string
	PublishedAt      time.Time
	UpdatedAt        time.Time
	Author           Author
	SEO              PageSEO
}

// Author identifies who wrote a page.
type Author struct {
	Name string
	URL  string
}

// PageSEO holds optional metadata overrides for a page.
type PageSEO struct {
	Title       string
	Description string
	OGImage     string
}

// Site holds the site-wide general settings and navigation menus.
type Site struct {
	Title       string
	Description string
	URL         string
	HeaderMenu  nav.Menu
	FooterMenu  nav.Menu
}

// Client reads content from a remote content API, falling back to local markdown.
type Client struct {
	baseURL    string
	contentDir string
	http       *http.Client
	logger     *zap.Logger
}

// NewClient constructs a Client. An empty baseURL serves local content only.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		logger:  zap.NewNop(),
	}
}

// SetContentDir configures the directory holding markdown pages and site.yaml.
func (c *Client) SetContentDir(dir string) {
	if c == nil {
		return
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	c.contentDir = dir
}

// ContentDir returns the configured content directory.
func (c *Client) ContentDir() string {
	if c == nil || strings.TrimSpace(c.contentDir) == "" {
		return defaultContentDir
	}
	return c.contentDir
}

// SetHTTPClient replaces the client used for remote requests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	if c == nil || hc == nil {
		return
	}
	c.http = hc
}

// SetLogger sets the logger used to report remote failures before falling back.
func (c *Client) SetLogger(logger *zap.Logger) {
	if c == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

func (c *Client) remoteEnabled() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) log() *zap.Logger {
	if c == nil || c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

// GetPage fetches a page of the given kind, consulting the remote API when configured
// and falling back to local markdown otherwise.
func (c *Client) GetPage(ctx context.Context, kind, slug string) (Page, error) {
	kind = normalizeKind(kind)
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	if c.remoteEnabled() {
		page, err := c.fetchPageRemote(ctx, kind, slug)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			c.log().Warn("cms: remote page fetch failed, using local content",
				zap.String("kind", kind), zap.String("slug", slug), zap.Error(err))
		}
	}
	return readPageMarkdown(c.ContentDir(), kind, slug)
}

// Site returns the site-wide settings. It never fails: missing settings fall back
// to built-in defaults.
func (c *Client) Site(ctx context.Context) Site {
	if c.remoteEnabled() {
		site, err := c.fetchSiteRemote(ctx)
		if err == nil {
			return site
		}
		c.log().Warn("cms: remote site settings fetch failed, using local settings", zap.Error(err))
	}
	site, err := readSiteYAML(c.ContentDir())
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log().Warn("cms: read site settings", zap.Error(err))
		}
		return fallbackSite()
	}
	return site
}

func normalizeKind(kind string) string {
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		return KindPage
	}
	return kind
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
