package nav

import (
	"net/url"
	"path"
	"strings"
)

// MenuItem is a navigation entry as delivered by the content source.
type MenuItem struct {
	Label    string     `yaml:"label" json:"label"`
	URL      string     `yaml:"url" json:"url"`
	Children []MenuItem `yaml:"children,omitempty" json:"children,omitempty"`
}

// Menu is an ordered list of items. Layouts pass it through untouched.
type Menu []MenuItem

// IsActive reports whether item (or one of its children) points at currentPath.
// Absolute item URLs are compared by path only.
func IsActive(item MenuItem, currentPath string) bool {
	if matchPath(itemPath(item.URL), currentPath) {
		return true
	}
	for _, child := range item.Children {
		if IsActive(child, currentPath) {
			return true
		}
	}
	return false
}

func itemPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Path == "" {
		if u.Host == "" {
			return ""
		}
		return "/"
	}
	return u.Path
}

func matchPath(itemPath, currentPath string) bool {
	if itemPath == "" {
		return false
	}
	if currentPath == "" {
		currentPath = "/"
	}
	itemPath = cleanPath(itemPath)
	currentPath = cleanPath(currentPath)
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/news" or "/news/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

func cleanPath(p string) string {
	c := path.Clean("/" + strings.TrimPrefix(p, "/"))
	if c == "." {
		return "/"
	}
	return c
}
