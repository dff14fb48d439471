package handlers

import (
	"context"
	"strings"

	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/coerce"
	"motorsport.az/club-web/internal/nav"
	"motorsport.az/club-web/internal/seo"
)

// PageData is the shared envelope of every view.
type PageData struct {
	View        nav.View           `json:"view"`
	Lang        string             `json:"lang"`
	Title       string             `json:"title"`
	Nav         []nav.RenderedItem `json:"nav"`
	Footer      []nav.RenderedItem `json:"footer"`
	Breadcrumbs []nav.Crumb        `json:"breadcrumbs"`
	Social      []SocialLink       `json:"social,omitempty"`
	JSONLD      []string           `json:"jsonLd,omitempty"`
	Degraded    bool               `json:"degraded,omitempty"`
	Content     any                `json:"content"`
}

// SocialLink is a shaped social profile link.
type SocialLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

var socialNetworks = []string{"facebook", "instagram", "youtube", "tiktok", "x", "telegram"}

// socialLinks reads SOCIAL_<NETWORK> sections, dropping placeholders.
func socialLinks(page cms.Page) []SocialLink {
	var out []SocialLink
	for _, network := range socialNetworks {
		if u := coerce.SocialURL(page.URL("SOCIAL_"+strings.ToUpper(network), "")); u != "" {
			out = append(out, SocialLink{Network: network, URL: u})
		}
	}
	return out
}

// layout fills the shared chrome for view from the "layout" namespace.
func (h *Handlers) layout(ctx context.Context, view nav.View, lang, title string) PageData {
	data := PageData{View: view, Lang: lang}
	page := h.page(ctx, "layout", &data.Degraded)

	data.Nav = h.resolver.Build(nav.Links(page, nav.Header), view)
	data.Footer = h.resolver.Build(nav.Links(page, nav.Footer), view)
	data.Social = socialLinks(page)

	navLabel := ""
	for _, item := range data.Nav {
		if item.Active {
			navLabel = item.Label
			break
		}
	}
	data.Title = cms.FirstNonEmpty(title, navLabel, view.Label())
	data.Breadcrumbs = nav.Breadcrumbs(view, data.Title)

	siteName := cms.FirstNonEmpty(page.Text("SITE_NAME", ""), h.site.Name, h.t(lang, "site.title"))
	sameAs := make([]string, 0, len(data.Social))
	for _, s := range data.Social {
		sameAs = append(sameAs, s.URL)
	}
	data.JSONLD = append(data.JSONLD, seo.JSON(seo.Organization(siteName, h.site.Origin, page.Image("SITE_LOGO", ""), sameAs)))
	if view != nav.Home {
		crumbs := make([]seo.BreadcrumbItem, 0, len(data.Breadcrumbs))
		for _, c := range data.Breadcrumbs {
			crumbs = append(crumbs, seo.BreadcrumbItem{Name: c.Label, Item: h.site.Origin + c.Href})
		}
		data.JSONLD = append(data.JSONLD, seo.JSON(seo.BreadcrumbList(crumbs)))
	}
	return data
}
