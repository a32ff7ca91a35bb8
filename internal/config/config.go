package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"worldvoice.in/web/internal/layout"
	"worldvoice.in/web/internal/seo"
)

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 120 * time.Second
	defaultContentDir    = "content"
	defaultPublicDir     = "public"
	defaultLogLevel      = "info"
	defaultHomePostLimit = 10
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Content  ContentConfig
	Logging  LoggingConfig
	Identity IdentityConfig
	Meta     MetaConfig
	Widget   WidgetConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ContentConfig locates page content and static assets.
type ContentConfig struct {
	Dir           string
	APIURL        string
	PublicDir     string
	HomePostLimit int
}

// LoggingConfig sets the minimum log severity.
type LoggingConfig struct {
	Level string
}

// IdentityConfig holds the site-wide values every page inherits unless it overrides them.
type IdentityConfig struct {
	SiteURL             string
	DatePublished       string
	DateModified        string
	AuthorName          string
	AuthorURL           string
	PublisherName       string
	PublisherLogoURL    string
	OrganizationName    string
	OrganizationLogoURL string
	Contact             seo.Contact
}

// MetaConfig toggles structured-data documents and carries fixed head identifiers.
type MetaConfig struct {
	BlogPosting         bool
	Organization        bool
	NewsArticle         bool
	VerificationName    string
	VerificationContent string
	AdAccountName       string
	AdAccountContent    string
	CanonicalOverride   string
	ContactType         string
	AreaServed          string
	Languages           []string
}

// WidgetConfig configures the optional subscription widget.
type WidgetConfig struct {
	ProductID   string
	ScriptURL   string
	Type        string
	PartOfTypes []string
	Theme       string
	Lang        string
}

// ValidationError reports invalid configuration values.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path skips the file.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values. They take precedence over the system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores process environment variables.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration from defaults, the .env file, the process
// environment and explicit overrides, in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return strings.TrimSpace(value), true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return strings.TrimSpace(value), true
			}
		}
		if value, ok := dotEnv[key]; ok {
			return strings.TrimSpace(value), true
		}
		return "", false
	}

	var invalid []string

	cfg := Config{
		Server: ServerConfig{
			Port: stringWithDefault(lookup, "WV_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
		},
		Content: ContentConfig{
			Dir:       stringWithDefault(lookup, "WV_CONTENT_DIR", defaultContentDir),
			APIURL:    stringWithDefault(lookup, "WV_CONTENT_API_URL", ""),
			PublicDir: stringWithDefault(lookup, "WV_PUBLIC_DIR", defaultPublicDir),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "WV_LOG_LEVEL", stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel))),
		},
		Identity: IdentityConfig{
			SiteURL:             stringWithDefault(lookup, "WV_SITE_URL", ""),
			DatePublished:       stringWithDefault(lookup, "WV_DATE_PUBLISHED", ""),
			DateModified:        stringWithDefault(lookup, "WV_DATE_MODIFIED", ""),
			AuthorName:          stringWithDefault(lookup, "WV_AUTHOR_NAME", ""),
			AuthorURL:           stringWithDefault(lookup, "WV_AUTHOR_URL", ""),
			PublisherName:       stringWithDefault(lookup, "WV_PUBLISHER_NAME", ""),
			PublisherLogoURL:    stringWithDefault(lookup, "WV_PUBLISHER_LOGO_URL", ""),
			OrganizationName:    stringWithDefault(lookup, "WV_ORGANIZATION_NAME", ""),
			OrganizationLogoURL: stringWithDefault(lookup, "WV_ORGANIZATION_LOGO_URL", ""),
			Contact: seo.Contact{
				Telephone:       stringWithDefault(lookup, "WV_CONTACT_TELEPHONE", ""),
				StreetAddress:   stringWithDefault(lookup, "WV_CONTACT_STREET_ADDRESS", ""),
				AddressLocality: stringWithDefault(lookup, "WV_CONTACT_LOCALITY", ""),
				AddressRegion:   stringWithDefault(lookup, "WV_CONTACT_REGION", ""),
				PostalCode:      stringWithDefault(lookup, "WV_CONTACT_POSTAL_CODE", ""),
				AddressCountry:  stringWithDefault(lookup, "WV_CONTACT_COUNTRY", ""),
			},
		},
		Meta: MetaConfig{
			BlogPosting:         boolWithDefault(lookup, "WV_SEO_BLOG_POSTING", true),
			Organization:        boolWithDefault(lookup, "WV_SEO_ORGANIZATION", true),
			NewsArticle:         boolWithDefault(lookup, "WV_SEO_NEWS_ARTICLE", false),
			VerificationName:    stringWithDefault(lookup, "WV_SEO_VERIFICATION_NAME", ""),
			VerificationContent: stringWithDefault(lookup, "WV_SEO_VERIFICATION_CONTENT", ""),
			AdAccountName:       stringWithDefault(lookup, "WV_SEO_AD_ACCOUNT_NAME", ""),
			AdAccountContent:    stringWithDefault(lookup, "WV_SEO_AD_ACCOUNT_CONTENT", ""),
			CanonicalOverride:   stringWithDefault(lookup, "WV_SEO_CANONICAL_OVERRIDE", ""),
			ContactType:         stringWithDefault(lookup, "WV_SEO_CONTACT_TYPE", ""),
			AreaServed:          stringWithDefault(lookup, "WV_SEO_AREA_SERVED", ""),
			Languages:           csvWithDefault(lookup, "WV_SEO_LANGUAGES"),
		},
		Widget: WidgetConfig{
			ProductID:   stringWithDefault(lookup, "WV_WIDGET_PRODUCT_ID", ""),
			ScriptURL:   stringWithDefault(lookup, "WV_WIDGET_SCRIPT_URL", ""),
			Type:        stringWithDefault(lookup, "WV_WIDGET_TYPE", ""),
			PartOfTypes: csvWithDefault(lookup, "WV_WIDGET_PART_OF_TYPES"),
			Theme:       stringWithDefault(lookup, "WV_WIDGET_THEME", ""),
			Lang:        stringWithDefault(lookup, "WV_WIDGET_LANG", ""),
		},
	}

	cfg.Server.ReadTimeout = durationField(lookup, "WV_READ_TIMEOUT", defaultReadTimeout, &invalid)
	cfg.Server.WriteTimeout = durationField(lookup, "WV_WRITE_TIMEOUT", defaultWriteTimeout, &invalid)
	cfg.Server.IdleTimeout = durationField(lookup, "WV_IDLE_TIMEOUT", defaultIdleTimeout, &invalid)
	cfg.Content.HomePostLimit = nonNegativeIntField(lookup, "WV_HOME_POST_LIMIT", defaultHomePostLimit, &invalid)

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		invalid = append(invalid, "WV_PORT")
	}
	for key, value := range map[string]string{
		"WV_SITE_URL":               cfg.Identity.SiteURL,
		"WV_CONTENT_API_URL":        cfg.Content.APIURL,
		"WV_SEO_CANONICAL_OVERRIDE": cfg.Meta.CanonicalOverride,
	} {
		if value != "" && !isAbsoluteURL(value) {
			invalid = append(invalid, key)
		}
	}
	for key, value := range map[string]string{
		"WV_DATE_PUBLISHED": cfg.Identity.DatePublished,
		"WV_DATE_MODIFIED":  cfg.Identity.DateModified,
	} {
		if value != "" && !isISODate(value) {
			invalid = append(invalid, key)
		}
	}

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

// SEO returns the metadata builder configuration.
func (c Config) SEO() seo.Config {
	return seo.Config{
		BlogPosting:  c.Meta.BlogPosting,
		Organization: c.Meta.Organization,
		NewsArticle:  c.Meta.NewsArticle,
		SiteVerification: seo.MetaPair{
			Name:    c.Meta.VerificationName,
			Content: c.Meta.VerificationContent,
		},
		AdAccount: seo.MetaPair{
			Name:    c.Meta.AdAccountName,
			Content: c.Meta.AdAccountContent,
		},
		CanonicalOverride:  c.Meta.CanonicalOverride,
		ContactType:        c.Meta.ContactType,
		AreaServed:         c.Meta.AreaServed,
		AvailableLanguages: c.Meta.Languages,
		Widget: seo.Widget{
			ScriptURL:    c.Widget.ScriptURL,
			Type:         c.Widget.Type,
			IsPartOfType: c.Widget.PartOfTypes,
			ProductID:    c.Widget.ProductID,
			Theme:        c.Widget.Theme,
			Lang:         c.Widget.Lang,
		},
	}
}

// Defaults returns the site-wide values pages inherit during composition.
func (c Config) Defaults() layout.Defaults {
	d := layout.Defaults{
		DatePublished:       c.Identity.DatePublished,
		DateModified:        c.Identity.DateModified,
		AuthorName:          c.Identity.AuthorName,
		AuthorURL:           c.Identity.AuthorURL,
		PublisherName:       c.Identity.PublisherName,
		PublisherLogoURL:    c.Identity.PublisherLogoURL,
		OrganizationName:    c.Identity.OrganizationName,
		OrganizationLogoURL: c.Identity.OrganizationLogoURL,
	}
	if c.Identity.Contact != (seo.Contact{}) {
		contact := c.Identity.Contact
		d.Contact = &contact
	}
	return d
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationField(lookup func(string) (string, bool), key string, fallback time.Duration, invalid *[]string) time.Duration {
	value, ok := lookup(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		*invalid = append(*invalid, key)
		return fallback
	}
	return d
}

func nonNegativeIntField(lookup func(string) (string, bool), key string, fallback int, invalid *[]string) int {
	value, ok := lookup(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		*invalid = append(*invalid, key)
		return fallback
	}
	return parsed
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isISODate(raw string) bool {
	for _, format := range []string{time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(format, raw); err == nil {
			return true
		}
	}
	return false
}
