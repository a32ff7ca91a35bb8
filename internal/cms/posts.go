package cms

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ListOptions controls page listing requests.
type ListOptions struct {
	Kind  string
	Limit int
}

// ListPages returns pages of a kind, newest first. Remote failures fall back to
// the local content directory.
func (c *Client) ListPages(ctx context.Context, opts ListOptions) ([]Page, error) {
	kind := normalizeKind(opts.Kind)
	if c.remoteEnabled() {
		pages, err := c.listPagesRemote(ctx, kind, opts.Limit)
		if err == nil {
			sortPages(pages)
			return limitPages(pages, opts.Limit), nil
		}
		if errors.Is(err, ErrNotFound) {
			return []Page{}, nil
		}
		c.log().Warn("cms: remote list failed, using local content", zap.String("kind", kind), zap.Error(err))
	}
	pages, err := listPagesMarkdown(c.ContentDir(), kind)
	if err != nil {
		return nil, err
	}
	sortPages(pages)
	return limitPages(pages, opts.Limit), nil
}

func listPagesMarkdown(contentDir, kind string) ([]Page, error) {
	dir := filepath.Join(contentDir, kind)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Page{}, nil
		}
		return nil, fmt.Errorf("cms: list %s: %w", dir, err)
	}
	pages := make([]Page, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := sanitizeSlug(strings.TrimSuffix(entry.Name(), ".md"))
		if slug == "" {
			continue
		}
		page, err := readPageMarkdown(contentDir, kind, slug)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func limitPages(pages []Page, limit int) []Page {
	if limit > 0 && len(pages) > limit {
		return pages[:limit]
	}
	return pages
}

func sortPages(items []Page) {
	sort.SliceStable(items, func(i, j int) bool {
		a := items[i]
		b := items[j]

		switch {
		case !a.PublishedAt.IsZero() && !b.PublishedAt.IsZero():
			if !a.PublishedAt.Equal(b.PublishedAt) {
				return a.PublishedAt.After(b.PublishedAt)
			}
		case !a.PublishedAt.IsZero():
			return true
		case !b.PublishedAt.IsZero():
			return false
		}

		switch {
		case !a.UpdatedAt.IsZero() && !b.UpdatedAt.IsZero():
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
		case !a.UpdatedAt.IsZero():
			return true
		case !b.UpdatedAt.IsZero():
			return false
		}

		return strings.Compare(a.Slug, b.Slug) < 0
	})
}
