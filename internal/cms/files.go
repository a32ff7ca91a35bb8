package cms

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"worldvoice.in/web/internal/nav"
)

const siteFile = "site.yaml"

type pageFrontMatter struct {
	Title         string `yaml:"title"`
	Summary       string `yaml:"summary"`
	Format        string `yaml:"format"`
	FeaturedImage string `yaml:"featured_image"`
	CanonicalURL  string `yaml:"canonical_url"`
	PublishedAt   string `yaml:"published_at"`
	UpdatedAt     string `yaml:"updated_at"`
	Author        struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	} `yaml:"author"`
	SEO struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
	} `yaml:"seo"`
}

type siteSettings struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	URL         string         `yaml:"url"`
	HeaderMenu  []nav.MenuItem `yaml:"header_menu"`
	FooterMenu  []nav.MenuItem `yaml:"footer_menu"`
}

func readPageMarkdown(contentDir, kind, slug string) (Page, error) {
	if slug == "" {
		return Page{}, ErrNotFound
	}
	file := filepath.Join(contentDir, kind, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("cms: read %s: %w", file, err)
	}
	page, err := parsePageMarkdown(string(data), kind, slug)
	if err != nil {
		return Page{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
	}
	if page.UpdatedAt.IsZero() {
		if info, statErr := os.Stat(file); statErr == nil {
			page.UpdatedAt = info.ModTime().UTC()
		}
	}
	return page, nil
}

func parsePageMarkdown(src, kind, slug string) (Page, error) {
	fm, body := splitFrontMatter(src)
	front := pageFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, err
		}
	}
	format := firstNonEmpty(strings.ToLower(strings.TrimSpace(front.Format)), defaultContentFormat)
	page := Page{
		Kind:             kind,
		Slug:             slug,
		Title:            strings.TrimSpace(front.Title),
		Summary:          strings.TrimSpace(front.Summary),
		Body:             renderBody(body, format),
		Format:           format,
		FeaturedImageURL: strings.TrimSpace(front.FeaturedImage),
		CanonicalURL:     strings.TrimSpace(front.CanonicalURL),
		PublishedAt:      parseContentDate(front.PublishedAt),
		UpdatedAt:        parseContentDate(front.UpdatedAt),
		Author: Author{
			Name: strings.TrimSpace(front.Author.Name),
			URL:  strings.TrimSpace(front.Author.URL),
		},
		SEO: PageSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	return finishPage(page), nil
}

func readSiteYAML(contentDir string) (Site, error) {
	file := filepath.Join(contentDir, siteFile)
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Site{}, ErrNotFound
		}
		return Site{}, fmt.Errorf("cms: read %s: %w", file, err)
	}
	var raw siteSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Site{}, fmt.Errorf("cms: parse %s: %w", file, err)
	}
	return Site{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		URL:         strings.TrimSpace(raw.URL),
		HeaderMenu:  nav.Menu(raw.HeaderMenu),
		FooterMenu:  nav.Menu(raw.FooterMenu),
	}, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
