package layout

import (
	"io"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"worldvoice.in/web/internal/nav"
	"worldvoice.in/web/internal/seo"
)

const stylesheetPath = "/assets/site.css"

// Render writes the composed page as a complete HTML document.
func (c Composed) Render(w io.Writer) error {
	return c.Node().Render(w)
}

// Node returns the document tree for the composed page.
func (c Composed) Node() g.Node {
	content := c.Content
	if content == nil {
		content = g.Group(nil)
	}
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				HeadNodes(c.Meta),
				Link(Rel("stylesheet"), Href(stylesheetPath)),
			),
			Body(
				siteHeader(c.Header, c.Path),
				Main(ID("content"), content),
				siteFooter(c.Footer, c.Path),
			),
		),
	)
}

// HeadNodes renders the metadata output as head elements: tags in order, one
// JSON-LD script per document, then the widget scripts.
func HeadNodes(out seo.Output) g.Node {
	nodes := make([]g.Node, 0, len(out.Tags)+len(out.Documents)+2)
	for _, tag := range out.Tags {
		switch tag.Kind {
		case seo.KindTitle:
			nodes = append(nodes, TitleEl(g.Text(tag.Content)))
		case seo.KindName:
			nodes = append(nodes, Meta(Name(tag.Key), Content(tag.Content)))
		case seo.KindProperty:
			nodes = append(nodes, Meta(g.Attr("property", tag.Key), Content(tag.Content)))
		}
	}
	for _, doc := range out.Documents {
		nodes = append(nodes, Script(Type("application/ld+json"), g.Raw(doc.JSON())))
	}
	if out.Widget != nil {
		nodes = append(nodes,
			Script(Async(), Type("application/javascript"), Src(out.Widget.ScriptURL)),
			Script(g.Raw(out.Widget.InitScript())),
		)
	}
	return g.Group(nodes)
}

func siteHeader(h HeaderRegion, path string) g.Node {
	return Header(Class("site-header"),
		A(Class("site-title"), Href("/"), g.Text(h.SiteTitle)),
		g.If(h.SiteDescription != "", P(Class("site-description"), g.Text(h.SiteDescription))),
		g.If(len(h.Menu) > 0, Nav(Aria("label", "Primary"), menuList(h.Menu, path))),
	)
}

func siteFooter(f FooterRegion, path string) g.Node {
	return Footer(Class("site-footer"),
		g.If(len(f.Menu) > 0, Nav(Aria("label", "Footer"), menuList(f.Menu, path))),
	)
}

func menuList(items []nav.MenuItem, path string) g.Node {
	return Ul(g.Map(items, func(item nav.MenuItem) g.Node {
		active := nav.IsActive(item, path)
		current := active && !childActive(item, path)
		return Li(
			g.If(active, Class("active")),
			A(Href(item.URL), g.If(current, Aria("current", "page")), g.Text(item.Label)),
			g.If(len(item.Children) > 0, menuList(item.Children, path)),
		)
	}))
}

func childActive(item nav.MenuItem, path string) bool {
	for _, child := range item.Children {
		if nav.IsActive(child, path) {
			return true
		}
	}
	return false
}
