package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldvoice.in/web/internal/cms"
	"worldvoice.in/web/internal/layout"
	mw "worldvoice.in/web/internal/middleware"
	"worldvoice.in/web/internal/nav"
	"worldvoice.in/web/internal/observability"
	"worldvoice.in/web/internal/seo"
	"worldvoice.in/web/internal/testutil"
)

type fakeContent struct {
	pages   map[string]cms.Page
	posts   []cms.Page
	site    cms.Site
	failGet error
}

func (f *fakeContent) GetPage(_ context.Context, kind, slug string) (cms.Page, error) {
	if f.failGet != nil {
		return cms.Page{}, f.failGet
	}
	p, ok := f.pages[kind+"/"+slug]
	if !ok {
		return cms.Page{}, cms.ErrNotFound
	}
	return p, nil
}

func (f *fakeContent) ListPages(_ context.Context, opts cms.ListOptions) ([]cms.Page, error) {
	if opts.Limit > 0 && opts.Limit < len(f.posts) {
		return f.posts[:opts.Limit], nil
	}
	return f.posts, nil
}

func (f *fakeContent) Site(context.Context) cms.Site { return f.site }

func newFakeContent() *fakeContent {
	published := time.Date(2025, 9, 8, 10, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	rain := cms.Page{
		Kind:             cms.KindPost,
		Slug:             "latur-rain",
		Title:            "Heavy rain in Latur",
		Summary:          "Farmers welcome early <em>monsoon</em> showers.",
		Body:             "<p>Showers arrived early.</p>",
		FeaturedImageURL: "https://worldvoice.in/img/rain.jpg",
		PublishedAt:      published,
		UpdatedAt:        published,
		Author:           cms.Author{Name: "Hanumant Nalwade", URL: "https://worldvoice.in/author/admin/"},
		SEO:              cms.PageSEO{Title: "Latur rain update"},
	}
	about := cms.Page{Kind: cms.KindPage, Slug: "about", Title: "About", Summary: "Who we are", Body: "<p>We report.</p>"}
	home := cms.Page{Kind: cms.KindPage, Slug: "home", Body: "<p>Welcome to World Voice.</p>"}
	return &fakeContent{
		pages: map[string]cms.Page{
			"posts/latur-rain": rain,
			"pages/about":      about,
			"pages/home":       home,
		},
		posts: []cms.Page{rain, {Kind: cms.KindPost, Slug: "older", Title: "Older news"}},
		site: cms.Site{
			Title:       "World Voice",
			Description: "Local news",
			URL:         "https://worldvoice.in/",
			HeaderMenu:  nav.Menu{{Label: "Home", URL: "/"}, {Label: "About", URL: "/about"}},
			FooterMenu:  nav.Menu{{Label: "Privacy", URL: "/privacy-policy"}},
		},
	}
}

func newTestRouter(t *testing.T, content ContentSource, opts Options) http.Handler {
	t.Helper()
	s := New(content, opts)
	r := chi.NewRouter()
	s.Routes(r)
	r.NotFound(s.NotFound)
	return r
}

func defaultOptions() Options {
	return Options{
		SEO:           seo.DefaultConfig(),
		Defaults:      layout.Defaults{PublisherName: "World Voice", PublisherLogoURL: "https://worldvoice.in/logo.png"},
		HomePostLimit: 5,
		Metrics:       observability.NewMetrics(),
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPostPage(t *testing.T) {
	h := newTestRouter(t, newFakeContent(), defaultOptions())
	rec := get(t, h, "/posts/latur-rain")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "Latur rain update - World Voice", doc.Find("head title").Text())
	assert.Equal(t, []string{"Farmers welcome early monsoon showers."}, testutil.MetaContents(doc, "name", "description"))
	assert.Equal(t, []string{"https://worldvoice.in/img/rain.jpg"}, testutil.MetaContents(doc, "property", "og:image"))
	assert.Equal(t, []string{"https://worldvoice.in/posts/latur-rain"}, testutil.MetaContents(doc, "property", "twitter:url"))

	scripts := testutil.JSONLD(doc)
	require.Len(t, scripts, 2)
	var posting map[string]any
	require.NoError(t, json.Unmarshal([]byte(scripts[0]), &posting))
	assert.Equal(t, "BlogPosting", posting["@type"])
	assert.Equal(t, "2025-09-08T10:30:00+05:30", posting["datePublished"])
	assert.Equal(t, "Hanumant Nalwade", posting["author"].(map[string]any)["name"])

	assert.Equal(t, "Heavy rain in Latur", doc.Find("article h1").Text())
	assert.Equal(t, "Showers arrived early.", doc.Find("article .entry-body p").Text())
	assert.Equal(t, "2025-09-08T10:30:00+05:30", doc.Find(".byline time").AttrOr("datetime", ""))
	assert.Contains(t, doc.Find(".byline").Text(), "1 min read")
}

func TestStandalonePageMarksActiveMenuItem(t *testing.T) {
	h := newTestRouter(t, newFakeContent(), defaultOptions())
	rec := get(t, h, "/about")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "About - World Voice", doc.Find("head title").Text())
	assert.Equal(t, "About", doc.Find(`header nav a[aria-current="page"]`).Text())
	assert.Equal(t, 0, doc.Find(".byline").Length())
	assert.Equal(t, "Privacy", doc.Find("footer nav a").Text())
}

func TestHomeListsLatestPosts(t *testing.T) {
	opts := defaultOptions()
	opts.HomePostLimit = 1
	opts.SiteURL = "https://www.worldvoice.in/"
	h := newTestRouter(t, newFakeContent(), opts)
	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "World Voice", doc.Find("head title").Text())
	assert.Equal(t, []string{"Local news"}, testutil.MetaContents(doc, "name", "description"))
	assert.Equal(t, []string{"https://www.worldvoice.in/"}, testutil.MetaContents(doc, "property", "og:url"))
	assert.Equal(t, "Welcome to World Voice.", doc.Find(".intro p").Text())
	items := doc.Find(".post-list li")
	require.Equal(t, 1, items.Length())
	assert.Equal(t, "/posts/latur-rain", items.Find("a").AttrOr("href", ""))
	assert.Equal(t, "Farmers welcome early monsoon showers.", items.Find("p").Text())
}

func TestHomeSlugRedirectsToRoot(t *testing.T) {
	h := newTestRouter(t, newFakeContent(), defaultOptions())
	cases := map[string]string{
		"/home":           "/",
		"/home/meta.json": "/meta.json",
	}
	for path, want := range cases {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusMovedPermanently, rec.Code, path)
		assert.Equal(t, want, rec.Header().Get("Location"), path)
	}
}

func TestArchiveListsAllPosts(t *testing.T) {
	h := newTestRouter(t, newFakeContent(), defaultOptions())
	rec := get(t, h, "/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, 2, doc.Find(".post-list li").Length())
	assert.Equal(t, "Posts - World Voice", doc.Find("head title").Text())
}

func TestMissingPageRendersNotFound(t *testing.T) {
	opts := defaultOptions()
	h := newTestRouter(t, newFakeContent(), opts)

	for _, path := range []string{"/missing", "/posts/missing", "/a/b/c"} {
		rec := get(t, h, path)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		doc := testutil.ParseHTML(t, rec.Body.Bytes())
		assert.Equal(t, "Page not found - World Voice", doc.Find("head title").Text(), path)
		assert.Equal(t, 1, doc.Find(".not-found").Length(), path)
	}

	metrics := get(t, opts.Metrics.Handler(), "/metrics").Body.String()
	assert.Contains(t, metrics, `worldvoice_pages_rendered_total{kind="pages",outcome="not_found"} 1`)
	assert.Contains(t, metrics, `worldvoice_pages_rendered_total{kind="posts",outcome="not_found"} 1`)
}

func TestContentErrorIsInternal(t *testing.T) {
	content := newFakeContent()
	content.failGet = errors.New("disk on fire")
	h := newTestRouter(t, content, defaultOptions())

	for _, path := range []string{"/about", "/about/meta.json"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req = req.WithContext(mw.WithRequestID(req.Context(), "req-42"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "disk on fire", path)
		assert.Contains(t, rec.Body.String(), "req-42", path)
	}
}

func TestMetaJSON(t *testing.T) {
	opts := defaultOptions()
	opts.SEO.NewsArticle = true
	opts.SEO.Widget.ProductID = "worldvoice.in:openaccess"
	h := newTestRouter(t, newFakeContent(), opts)

	rec := get(t, h, "/posts/latur-rain/meta.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))

	var resp struct {
		Path      string            `json:"path"`
		Tags      []seo.Tag         `json:"tags"`
		Documents []json.RawMessage `json:"documents"`
		Widget    *struct {
			ScriptURL  string `json:"scriptUrl"`
			InitScript string `json:"initScript"`
		} `json:"widget"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/posts/latur-rain", resp.Path)
	require.NotEmpty(t, resp.Tags)
	assert.Equal(t, seo.Tag{Kind: seo.KindProperty, Key: "og:type", Content: "website"}, resp.Tags[0])
	require.Len(t, resp.Documents, 3)

	var news map[string]any
	require.NoError(t, json.Unmarshal(resp.Documents[2], &news))
	assert.Equal(t, "NewsArticle", news["@type"])
	require.NotNil(t, resp.Widget)
	assert.Contains(t, resp.Widget.InitScript, "worldvoice.in:openaccess")

	rec = get(t, h, "/missing/meta.json")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/meta.json")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAbsoluteURL(t *testing.T) {
	cases := []struct{ base, path, want string }{
		{"https://worldvoice.in/", "/about", "https://worldvoice.in/about"},
		{"https://worldvoice.in/blog/", "/posts/a", "https://worldvoice.in/posts/a"},
		{"", "/about", ""},
		{"worldvoice.in", "/about", ""},
	}
	for _, tc := range cases {
		if got := absoluteURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("absoluteURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
