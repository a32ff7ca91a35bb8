package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"worldvoice.in/web/internal/nav"
)

type rawPage struct {
	Kind             string     `json:"kind"`
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Summary          string     `json:"summary"`
	Body             string     `json:"body"`
	Format           string     `json:"format"`
	FeaturedImageURL string     `json:"featuredImageUrl"`
	CanonicalURL     string     `json:"canonicalUrl"`
	PublishedAt      *time.Time `json:"publishedAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
	Author           struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"author"`
	SEO struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OGImage     string `json:"ogImage"`
	} `json:"seo"`
}

type rawPageList struct {
	Items []rawPage `json:"items"`
}

type rawSite struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
	HeaderMenu  []nav.MenuItem `json:"headerMenu"`
	FooterMenu  []nav.MenuItem `json:"footerMenu"`
}

func (c *Client) getJSON(ctx context.Context, query url.Values, dst any, segments ...string) error {
	endpoint, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return fmt.Errorf("cms: join path: %w", err)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("cms: build request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("cms: remote status %d for %s", resp.StatusCode, endpoint)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("cms: decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) fetchPageRemote(ctx context.Context, kind, slug string) (Page, error) {
	var raw rawPage
	if err := c.getJSON(ctx, nil, &raw, "content", kind, slug); err != nil {
		return Page{}, err
	}
	if strings.TrimSpace(raw.Body) == "" && strings.TrimSpace(raw.Title) == "" {
		return Page{}, fmt.Errorf("cms: empty page for %s/%s", kind, slug)
	}
	return mapRawPage(raw, kind, slug), nil
}

func (c *Client) listPagesRemote(ctx context.Context, kind string, limit int) ([]Page, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var list rawPageList
	if err := c.getJSON(ctx, q, &list, "content", kind); err != nil {
		return nil, err
	}
	pages := make([]Page, 0, len(list.Items))
	for _, raw := range list.Items {
		slug := sanitizeSlug(raw.Slug)
		if slug == "" {
			continue
		}
		pages = append(pages, mapRawPage(raw, kind, slug))
	}
	return pages, nil
}

func (c *Client) fetchSiteRemote(ctx context.Context) (Site, error) {
	var raw rawSite
	if err := c.getJSON(ctx, nil, &raw, "content", "site"); err != nil {
		return Site{}, err
	}
	return Site{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		URL:         strings.TrimSpace(raw.URL),
		HeaderMenu:  nav.Menu(raw.HeaderMenu),
		FooterMenu:  nav.Menu(raw.FooterMenu),
	}, nil
}

func mapRawPage(raw rawPage, kind, slug string) Page {
	format := firstNonEmpty(strings.ToLower(strings.TrimSpace(raw.Format)), defaultContentFormat)
	page := Page{
		Kind:             firstNonEmpty(raw.Kind, kind),
		Slug:             firstNonEmpty(sanitizeSlug(raw.Slug), slug),
		Title:            strings.TrimSpace(raw.Title),
		Summary:          strings.TrimSpace(raw.Summary),
		Body:             renderBody(raw.Body, format),
		Format:           format,
		FeaturedImageURL: strings.TrimSpace(raw.FeaturedImageURL),
		CanonicalURL:     strings.TrimSpace(raw.CanonicalURL),
		Author: Author{
			Name: strings.TrimSpace(raw.Author.Name),
			URL:  strings.TrimSpace(raw.Author.URL),
		},
		SEO: PageSEO{
			Title:       strings.TrimSpace(raw.SEO.Title),
			Description: strings.TrimSpace(raw.SEO.Description),
			OGImage:     strings.TrimSpace(raw.SEO.OGImage),
		},
	}
	if raw.PublishedAt != nil {
		page.PublishedAt = *raw.PublishedAt
	}
	if raw.UpdatedAt != nil {
		page.UpdatedAt = *raw.UpdatedAt
	}
	return finishPage(page)
}

// finishPage fills derived fields shared by remote and local content.
func finishPage(page Page) Page {
	if page.Title == "" {
		page.Title = prettifySlug(page.Slug)
	}
	if page.Summary == "" {
		page.Summary = Excerpt(page.Body, excerptLength)
	}
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = page.PublishedAt
	}
	return page
}
