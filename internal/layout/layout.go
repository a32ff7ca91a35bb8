// Package layout composes a full page from page values, site settings and
// site-wide defaults.
package layout

import (
	"strings"

	g "maragu.dev/gomponents"

	"worldvoice.in/web/internal/nav"
	"worldvoice.in/web/internal/seo"
)

const titleSeparator = " - "

// Page holds the values a single page contributes. Empty strings mean absent.
type Page struct {
	Path          string
	Title         string
	Description   string // may contain markup
	ImageURL      string
	CanonicalURL  string
	DatePublished string
	DateModified  string
	AuthorName    string
	AuthorURL     string
	Content       g.Node
}

// Site holds the site-wide general settings and menus.
type Site struct {
	Title       string
	Description string
	URL         string
	HeaderMenu  nav.Menu
	FooterMenu  nav.Menu
}

// Defaults are the deployment-wide values used when a page does not override them.
type Defaults struct {
	DatePublished       string
	DateModified        string
	AuthorName          string
	AuthorURL           string
	PublisherName       string
	PublisherLogoURL    string
	OrganizationName    string
	OrganizationLogoURL string
	Contact             *seo.Contact
}

// HeaderRegion is the data handed to the site header.
type HeaderRegion struct {
	SiteTitle       string
	SiteDescription string
	Menu            nav.Menu
}

// FooterRegion is the data handed to the site footer.
type FooterRegion struct {
	Menu nav.Menu
}

// Composed is a page ready to render: metadata, header, content slot and footer in that order.
type Composed struct {
	Path    string
	Meta    seo.Output
	Header  HeaderRegion
	Content g.Node
	Footer  FooterRegion
}

// Compose merges page values over site settings and defaults and builds the
// page metadata. Menus are passed through unchanged.
func Compose(page Page, site Site, defaults Defaults, cfg seo.Config) Composed {
	in := seo.Input{
		Title:               joinTitle(page.Title, site.Title),
		Description:         firstNonEmpty(page.Description, site.Description),
		ImageURL:            strings.TrimSpace(page.ImageURL),
		CanonicalURL:        firstNonEmpty(page.CanonicalURL, site.URL),
		DatePublished:       firstNonEmpty(page.DatePublished, defaults.DatePublished),
		DateModified:        firstNonEmpty(page.DateModified, defaults.DateModified),
		PublisherName:       defaults.PublisherName,
		PublisherLogoURL:    defaults.PublisherLogoURL,
		OrganizationName:    defaults.OrganizationName,
		OrganizationLogoURL: defaults.OrganizationLogoURL,
		Contact:             defaults.Contact,
	}
	// The author is a pair: a page naming its own author never borrows the default URL.
	in.AuthorName, in.AuthorURL = defaults.AuthorName, defaults.AuthorURL
	if name := strings.TrimSpace(page.AuthorName); name != "" {
		in.AuthorName, in.AuthorURL = name, strings.TrimSpace(page.AuthorURL)
	}
	if in.OrganizationName == "" {
		in.OrganizationName = firstNonEmpty(defaults.PublisherName, site.Title)
	}
	if in.PublisherName == "" {
		in.PublisherName = firstNonEmpty(defaults.OrganizationName, site.Title)
	}

	return Composed{
		Path: page.Path,
		Meta: seo.Build(in, cfg),
		Header: HeaderRegion{
			SiteTitle:       site.Title,
			SiteDescription: site.Description,
			Menu:            site.HeaderMenu,
		},
		Content: page.Content,
		Footer: FooterRegion{
			Menu: site.FooterMenu,
		},
	}
}

func joinTitle(page, site string) string {
	page = strings.TrimSpace(page)
	site = strings.TrimSpace(site)
	switch {
	case page != "" && site != "":
		return page + titleSeparator + site
	case page != "":
		return page
	default:
		return site
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
