package seo

import (
	"fmt"
	"strings"
)

const (
	defaultWidgetScriptURL = "https://news.google.com/swg/js/v1/swg-basic.js"
	defaultWidgetType      = "NewsArticle"
	defaultWidgetTheme     = "light"
	defaultWidgetLang      = "en"
)

// Widget configures the third-party subscription widget loaded in the head.
// It is enabled once ProductID is set.
type Widget struct {
	ScriptURL    string
	Type         string
	IsPartOfType []string
	ProductID    string
	Theme        string
	Lang         string
}

// Enabled reports whether the widget should be emitted.
func (w Widget) Enabled() bool {
	return strings.TrimSpace(w.ProductID) != ""
}

func (w Widget) withDefaults() Widget {
	if w.ScriptURL == "" {
		w.ScriptURL = defaultWidgetScriptURL
	}
	if w.Type == "" {
		w.Type = defaultWidgetType
	}
	if len(w.IsPartOfType) == 0 {
		w.IsPartOfType = []string{"Product"}
	} else {
		w.IsPartOfType = append([]string(nil), w.IsPartOfType...)
	}
	if w.Theme == "" {
		w.Theme = defaultWidgetTheme
	}
	if w.Lang == "" {
		w.Lang = defaultWidgetLang
	}
	return w
}

// InitScript returns the inline initialization snippet. String values are
// JSON-encoded so they cannot break out of the script element.
func (w Widget) InitScript() string {
	w = w.withDefaults()
	return fmt.Sprintf(`(self.SWG_BASIC = self.SWG_BASIC || []).push(basicSubscriptions => {
  basicSubscriptions.init({
    type: %s,
    isPartOfType: %s,
    isPartOfProductId: %s,
    clientOptions: { theme: %s, lang: %s },
  });
});`,
		JSON(w.Type), JSON(w.IsPartOfType), JSON(w.ProductID), JSON(w.Theme), JSON(w.Lang))
}
