package seo

// TagKind distinguishes <title> from name- and property-keyed <meta> tags.
type TagKind string

const (
	KindTitle    TagKind = "title"
	KindName     TagKind = "name"
	KindProperty TagKind = "property"
)

// Tag is a single document head entry. Key is empty for KindTitle.
type Tag struct {
	Kind    TagKind `json:"kind"`
	Key     string  `json:"key,omitempty"`
	Content string  `json:"content"`
}

// HeadTags is an ordered tag set. Crawlers usually honour the first duplicate,
// so order is significant.
type HeadTags []Tag

func (t *HeadTags) title(v string) {
	*t = append(*t, Tag{Kind: KindTitle, Content: v})
}

func (t *HeadTags) name(key, v string) {
	*t = append(*t, Tag{Kind: KindName, Key: key, Content: v})
}

func (t *HeadTags) property(key, v string) {
	*t = append(*t, Tag{Kind: KindProperty, Key: key, Content: v})
}

// Values returns every content value for kind/key in insertion order.
func (t HeadTags) Values(kind TagKind, key string) []string {
	var out []string
	for _, tag := range t {
		if tag.Kind == kind && tag.Key == key {
			out = append(out, tag.Content)
		}
	}
	return out
}

// Has reports whether kind/key carries content.
func (t HeadTags) Has(kind TagKind, key string, content string) bool {
	for _, v := range t.Values(kind, key) {
		if v == content {
			return true
		}
	}
	return false
}
