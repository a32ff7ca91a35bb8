package seo

// Input carries the descriptive fields of a single page render.
// Empty strings mean "absent".
type Input struct {
	Title         string
	Description   string // may contain markup
	ImageURL      string // absolute
	CanonicalURL  string // absolute
	DatePublished string // ISO-8601
	DateModified  string // ISO-8601

	AuthorName string
	AuthorURL  string

	PublisherName    string
	PublisherLogoURL string

	OrganizationName    string
	OrganizationLogoURL string

	Contact *Contact
}

// Contact holds the optional organization contact details.
type Contact struct {
	Telephone       string
	StreetAddress   string
	AddressLocality string
	AddressRegion   string
	PostalCode      string
	AddressCountry  string
}

// MetaPair is a fixed <meta name=... content=...> tag.
type MetaPair struct {
	Name    string
	Content string
}

// Config holds deployment-level switches and fixed identifiers.
type Config struct {
	BlogPosting  bool
	Organization bool
	NewsArticle  bool

	OGType      string
	TwitterCard string

	SiteVerification  MetaPair
	AdAccount         MetaPair
	CanonicalOverride string

	ContactType        string
	AreaServed         string
	AvailableLanguages []string

	Widget Widget
}

const (
	defaultOGType      = "website"
	defaultTwitterCard = "summary_large_image"
	defaultContactType = "Customer Service"
	defaultAreaServed  = "IN"
)

var defaultLanguages = []string{"English", "Hindi", "Marathi"}

// DefaultConfig emits BlogPosting and Organization documents with no fixed identifiers.
func DefaultConfig() Config {
	return Config{
		BlogPosting:  true,
		Organization: true,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.OGType == "" {
		c.OGType = defaultOGType
	}
	if c.TwitterCard == "" {
		c.TwitterCard = defaultTwitterCard
	}
	if c.ContactType == "" {
		c.ContactType = defaultContactType
	}
	if c.AreaServed == "" {
		c.AreaServed = defaultAreaServed
	}
	if len(c.AvailableLanguages) == 0 {
		c.AvailableLanguages = append([]string(nil), defaultLanguages...)
	}
	return c
}

// Output is the result of Build. The zero value means nothing to render.
type Output struct {
	PlainDescription string
	Tags             HeadTags
	Documents        []Document
	Widget           *Widget
}

// Empty reports whether the output carries nothing to render.
func (o Output) Empty() bool {
	return len(o.Tags) == 0 && len(o.Documents) == 0 && o.Widget == nil
}

// Document returns the first document of the given schema type.
func (o Output) Document(typ string) (Document, bool) {
	for _, d := range o.Documents {
		if d.Type == typ {
			return d, true
		}
	}
	return Document{}, false
}

// Build maps page fields to head tags and structured-data documents.
// When title, description, image and canonical URL are all empty the output is empty.
func Build(in Input, cfg Config) Output {
	if in.Title == "" && in.Description == "" && in.ImageURL == "" && in.CanonicalURL == "" {
		return Output{}
	}
	cfg = cfg.withDefaults()
	plain := StripTags(in.Description)

	out := Output{
		PlainDescription: plain,
		Tags:             buildTags(in, plain, cfg),
	}
	if cfg.BlogPosting {
		out.Documents = append(out.Documents, Document{Type: TypeBlogPosting, Data: article(TypeBlogPosting, in, plain)})
	}
	if cfg.Organization {
		out.Documents = append(out.Documents, Document{Type: TypeOrganization, Data: organization(in, cfg)})
	}
	if cfg.NewsArticle {
		out.Documents = append(out.Documents, Document{Type: TypeNewsArticle, Data: article(TypeNewsArticle, in, plain)})
	}
	if cfg.Widget.Enabled() {
		w := cfg.Widget.withDefaults()
		out.Widget = &w
	}
	return out
}

func buildTags(in Input, plain string, cfg Config) HeadTags {
	var tags HeadTags
	tags.property("og:type", cfg.OGType)
	tags.property("twitter:card", cfg.TwitterCard)
	if cfg.SiteVerification.Name != "" && cfg.SiteVerification.Content != "" {
		tags.name(cfg.SiteVerification.Name, cfg.SiteVerification.Content)
	}
	if cfg.AdAccount.Name != "" && cfg.AdAccount.Content != "" {
		tags.name(cfg.AdAccount.Name, cfg.AdAccount.Content)
	}
	if cfg.CanonicalOverride != "" {
		tags.property("og:url", cfg.CanonicalOverride)
	}

	if in.Title != "" {
		tags.title(in.Title)
		tags.name("title", in.Title)
		tags.property("og:title", in.Title)
		tags.property("twitter:title", in.Title)
	}
	if plain != "" {
		tags.name("description", plain)
		tags.property("og:description", plain)
		tags.property("twitter:description", plain)
	}
	if in.ImageURL != "" {
		tags.property("og:image", in.ImageURL)
		tags.property("twitter:image", in.ImageURL)
	}
	if in.CanonicalURL != "" {
		tags.property("og:url", in.CanonicalURL)
		tags.property("twitter:url", in.CanonicalURL)
	}
	return tags
}
