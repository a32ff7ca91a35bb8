package cms

import "worldvoice.in/web/internal/nav"

// fallbackSite is served when neither the remote API nor site.yaml provide settings.
func fallbackSite() Site {
	return Site{
		Title:       "World Voice",
		Description: "News and stories from Latur and across Maharashtra.",
		URL:         "https://worldvoice.in/",
		HeaderMenu: nav.Menu{
			{Label: "Home", URL: "/"},
			{Label: "About", URL: "/about"},
			{Label: "Contact", URL: "/contact"},
		},
		FooterMenu: nav.Menu{
			{Label: "Privacy Policy", URL: "/privacy-policy"},
			{Label: "Terms", URL: "/terms"},
		},
	}
}
