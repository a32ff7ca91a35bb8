package seo

import (
	"bytes"
	"encoding/json"
)

const schemaContext = "https://schema.org"

// Schema types emitted by Build.
const (
	TypeBlogPosting  = "BlogPosting"
	TypeOrganization = "Organization"
	TypeNewsArticle  = "NewsArticle"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Object is an insertion-ordered JSON object. Keys are only added when a value
// is present, so absent fields never serialize as null.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an Object with its @type set.
func NewObject(typ string) *Object {
	o := &Object{values: map[string]any{}}
	return o.Set("@type", typ)
}

// Set stores v under key. Re-setting a key keeps its original position.
func (o *Object) Set(key string, v any) *Object {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

// SetString stores v only when it is non-empty.
func (o *Object) SetString(key, v string) *Object {
	if v == "" {
		return o
	}
	return o.Set(key, v)
}

// SetObject stores child only when it is non-nil.
func (o *Object) SetObject(key string, child *Object) *Object {
	if child == nil {
		return o
	}
	return o.Set(key, child)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// MarshalJSON writes the keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document is one structured-data block embedded as its own script element.
type Document struct {
	Type string
	Data *Object
}

// JSON serializes the document. Markup-significant characters are escaped, so
// the result is safe inside a <script> element.
func (d Document) JSON() string {
	return JSON(d.Data)
}

func root(typ string) *Object {
	o := &Object{values: map[string]any{}}
	o.Set("@context", schemaContext)
	return o.Set("@type", typ)
}

func imageObject(url string) *Object {
	if url == "" {
		return nil
	}
	return NewObject("ImageObject").Set("url", url)
}

// article builds the BlogPosting and NewsArticle payloads, which share a shape.
func article(typ string, in Input, plain string) *Object {
	author := NewObject("Person").
		SetString("name", in.AuthorName).
		SetString("url", in.AuthorURL)

	publisher := NewObject("Organization").
		SetString("name", in.PublisherName)
	if in.PublisherLogoURL != "" {
		publisher.Set("logo", imageObject(in.PublisherLogoURL))
	}

	page := NewObject("WebPage").SetString("@id", in.CanonicalURL)

	return root(typ).
		SetString("headline", in.Title).
		Set("description", plain).
		SetObject("image", imageObject(in.ImageURL)).
		Set("author", author).
		Set("publisher", publisher).
		SetString("url", in.CanonicalURL).
		Set("mainEntityOfPage", page).
		SetString("datePublished", in.DatePublished).
		SetString("dateModified", in.DateModified)
}

func organization(in Input, cfg Config) *Object {
	contact := in.Contact
	if contact == nil {
		contact = &Contact{}
	}

	org := root(TypeOrganization).
		SetString("name", in.OrganizationName).
		SetString("url", in.CanonicalURL).
		SetObject("image", imageObject(in.ImageURL)).
		SetString("logo", in.OrganizationLogoURL).
		SetString("telephone", contact.Telephone)

	if contact.StreetAddress != "" {
		org.Set("address", NewObject("PostalAddress").
			Set("streetAddress", contact.StreetAddress).
			SetString("addressLocality", contact.AddressLocality).
			SetString("addressRegion", contact.AddressRegion).
			SetString("postalCode", contact.PostalCode).
			SetString("addressCountry", contact.AddressCountry))
	}

	langs := append([]string(nil), cfg.AvailableLanguages...)
	org.Set("contactPoint", NewObject("ContactPoint").
		Set("telephone", contact.Telephone).
		Set("contactType", cfg.ContactType).
		Set("areaServed", cfg.AreaServed).
		Set("availableLanguage", langs))
	return org
}
