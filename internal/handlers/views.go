package handlers

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"worldvoice.in/web/internal/cms"
	"worldvoice.in/web/internal/format"
)

const listingExcerptLength = 200

func articleView(page cms.Page) g.Node {
	return Article(Class("entry"),
		H1(Class("entry-title"), g.Text(page.Title)),
		byline(page),
		g.If(page.FeaturedImageURL != "",
			Img(Class("entry-image"), Src(page.FeaturedImageURL), Alt(page.Title), g.Attr("loading", "lazy")),
		),
		Div(Class("entry-body"), g.Raw(page.Body)),
	)
}

func byline(page cms.Page) g.Node {
	if page.Kind != cms.KindPost {
		return nil
	}
	var author g.Node
	switch {
	case page.Author.Name != "" && page.Author.URL != "":
		author = A(Href(page.Author.URL), Rel("author"), g.Text(page.Author.Name))
	case page.Author.Name != "":
		author = Span(g.Text(page.Author.Name))
	}
	minutes := format.ReadingMinutes(cms.Excerpt(page.Body, len(page.Body)+1))
	return P(Class("byline"),
		g.If(author != nil, g.Group([]g.Node{author, g.Text(" · ")})),
		g.If(!page.PublishedAt.IsZero(), g.Group([]g.Node{
			g.El("time", g.Attr("datetime", format.ISO8601(page.PublishedAt)), g.Text(format.FmtDate(page.PublishedAt, "en"))),
			g.Text(" · "),
		})),
		g.Text(fmt.Sprintf("%d min read", minutes)),
	)
}

func homeView(intro cms.Page, posts []cms.Page) g.Node {
	return g.Group([]g.Node{
		g.If(intro.Body != "", Section(Class("intro"), g.Raw(intro.Body))),
		Section(Class("latest"),
			H2(g.Text("Latest")),
			postList(posts),
			A(Class("more"), Href("/posts"), g.Text("All posts")),
		),
	})
}

func archiveView(posts []cms.Page) g.Node {
	return Section(Class("archive"),
		H1(g.Text("Posts")),
		postList(posts),
	)
}

func postList(posts []cms.Page) g.Node {
	if len(posts) == 0 {
		return P(Class("empty"), g.Text("Nothing published yet."))
	}
	return Ul(Class("post-list"), g.Map(posts, func(p cms.Page) g.Node {
		return Li(
			A(Href(contentPath(cms.KindPost, p.Slug)), g.Text(p.Title)),
			g.If(!p.PublishedAt.IsZero(), g.El("time", g.Attr("datetime", format.ISO8601(p.PublishedAt)), g.Text(format.FmtDate(p.PublishedAt, "en")))),
			g.If(p.Summary != "", P(g.Text(cms.Excerpt(p.Summary, listingExcerptLength)))),
		)
	}))
}

func notFoundView() g.Node {
	return Section(Class("not-found"),
		H1(g.Text("Page not found")),
		P(g.Text("The page you were looking for does not exist. "), A(Href("/"), g.Text("Go to the home page")), g.Text(".")),
	)
}
