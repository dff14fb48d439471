package nav

import (
	"strings"

	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/sections"
	"motorsport.az/club-web/internal/textnorm"
)

// Link is one CMS-editable menu entry before resolution.
type Link struct {
	ID     string `json:"id,omitempty"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Label    string `json:"label"`
	Href     string `json:"href,omitempty"`
	View     View   `json:"view,omitempty"`
	External bool   `json:"external,omitempty"`
	Active   bool   `json:"active,omitempty"`
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active,omitempty"`
}

// Menu names a CMS-editable link list.
type Menu string

const (
	Header Menu = "NAV"
	Footer Menu = "FOOTER"
)

// Main is the header menu shown when the CMS has no NAV_* sections.
var Main = []Link{
	{ID: "home", Label: Home.Label(), Target: "home"},
	{ID: "about", Label: About.Label(), Target: "about"},
	{ID: "news", Label: News.Label(), Target: "news"},
	{ID: "events", Label: Events.Label(), Target: "events"},
	{ID: "drivers", Label: Drivers.Label(), Target: "drivers"},
	{ID: "rules", Label: Rules.Label(), Target: "rules"},
	{ID: "gallery", Label: Gallery.Label(), Target: "gallery"},
	{ID: "contact", Label: Contact.Label(), Target: "contact"},
}

// Legal is the footer menu shown when the CMS has no FOOTER_* sections.
var Legal = []Link{
	{ID: "privacy", Label: Privacy.Label(), Target: "privacy"},
	{ID: "terms", Label: Terms.Label(), Target: "terms"},
	{ID: "contact", Label: Contact.Label(), Target: "contact"},
}

func linkSpec(menu Menu) sections.Spec[Link] {
	return sections.Spec[Link]{
		Pattern: sections.Pattern{Prefix: string(menu), Layout: sections.IndexFirst, Fields: []string{"ID", "LABEL", "URL"}},
		Build: func(g sections.Group) (Link, bool) {
			l := Link{ID: g.Text("ID"), Label: g.Text("LABEL"), Target: g.Href("URL")}
			return l, l.Label != "" || l.Target != ""
		},
		Key:      linkKey,
		Complete: func(l Link) bool { return l.Label != "" },
		Overlay: func(base, dyn Link) Link {
			base.Label = sections.Prefer(dyn.Label, base.Label)
			base.Target = sections.Prefer(dyn.Target, base.Target)
			return base
		},
	}
}

// linkKey identifies a link by its id, else by the view its target or label names exactly
// (view name or alias), else by its label. Legacy ids are view names, so a CMS link that
// only carries "Haqqımızda" still overrides the legacy about entry.
func linkKey(l Link) string {
	if id := strings.TrimSpace(l.ID); id != "" {
		return id
	}
	if v, ok := matchToken(textnorm.Normalize(l.Target)); ok {
		return string(v)
	}
	if v, ok := matchToken(textnorm.Normalize(l.Label)); ok {
		return string(v)
	}
	return l.Label
}

// Links returns the menu with CMS overrides from page applied to its legacy entries.
func Links(page cms.Page, menu Menu) []Link {
	legacy := Main
	if menu == Footer {
		legacy = Legal
	}
	return sections.Merge(page.Sections, linkSpec(menu), legacy)
}

// Build resolves links and marks the entry for the current view as active. Links that
// resolve to no navigation keep their label and get an empty Href.
func (r *Resolver) Build(links []Link, current View) []RenderedItem {
	items := make([]RenderedItem, 0, len(links))
	for _, l := range links {
		res := r.Resolve(l.Target, l.Label, Home)
		item := RenderedItem{Label: l.Label}
		switch res.Kind {
		case KindInternal:
			item.View = res.View
			item.Href = res.View.Path()
			item.Active = res.View == current
		case KindExternal:
			item.Href = l.Target
			item.External = true
		}
		items = append(items, item)
	}
	return items
}

// Build resolves links with the default resolver.
func Build(links []Link, current View) []RenderedItem {
	return defaultResolver.Build(links, current)
}

// Breadcrumbs always starts with Home; any other known view follows it with label,
// or the view's default label when label is blank.
func Breadcrumbs(current View, label string) []Crumb {
	crumbs := []Crumb{{Href: Home.Path(), Label: Home.Label(), Active: current == Home || !current.Known()}}
	if current == Home || !current.Known() {
		return crumbs
	}
	crumbs = append(crumbs, Crumb{
		Href:   current.Path(),
		Label:  cms.FirstNonEmpty(label, current.Label()),
		Active: true,
	})
	return crumbs
}
