package handlers

import (
	"encoding/json"
	"io"

	"worldvoice.in/web/internal/layout"
	"worldvoice.in/web/internal/seo"
)

// MetaResponse is the JSON view of a composed page's metadata.
type MetaResponse struct {
	Path        string            `json:"path"`
	Description string            `json:"description,omitempty"`
	Tags        seo.HeadTags      `json:"tags"`
	Documents   []json.RawMessage `json:"documents"`
	Widget      *WidgetResponse   `json:"widget,omitempty"`
}

// WidgetResponse describes the subscription widget scripts.
type WidgetResponse struct {
	ScriptURL  string `json:"scriptUrl"`
	InitScript string `json:"initScript"`
}

// NewMetaResponse flattens composed metadata. Documents are embedded as
// their own serialized JSON.
func NewMetaResponse(composed layout.Composed) MetaResponse {
	resp := MetaResponse{
		Path:        composed.Path,
		Description: composed.Meta.PlainDescription,
		Tags:        composed.Meta.Tags,
		Documents:   make([]json.RawMessage, 0, len(composed.Meta.Documents)),
	}
	if resp.Tags == nil {
		resp.Tags = seo.HeadTags{}
	}
	for _, doc := range composed.Meta.Documents {
		resp.Documents = append(resp.Documents, json.RawMessage(doc.JSON()))
	}
	if wd := composed.Meta.Widget; wd != nil {
		resp.Widget = &WidgetResponse{ScriptURL: wd.ScriptURL, InitScript: wd.InitScript()}
	}
	return resp
}

// WriteMeta writes NewMetaResponse(composed) as indented JSON.
func WriteMeta(w io.Writer, composed layout.Composed) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewMetaResponse(composed))
}
