// Package about assembles the about page: headline stats (ABOUT_STAT_LABEL_<x> paired
// with ABOUT_STAT_VALUE_<x>) and club values (ABOUT_VALUE_{ICON,TITLE,DESC}_<x>).
package about

import (
	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/sections"
)

// Stat is a headline number such as the member count.
type Stat struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Value is one of the club's stated values.
type Value struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

var statSpec = sections.Spec[Stat]{
	Pattern: sections.Pattern{Prefix: "ABOUT_STAT", Layout: sections.FieldFirst, Fields: []string{"LABEL", "VALUE"}},
	Build: func(g sections.Group) (Stat, bool) {
		return Stat{ID: g.Key, Label: g.Text("LABEL"), Value: g.Text("VALUE")}, true
	},
	Key:      func(s Stat) string { return s.ID },
	Complete: func(s Stat) bool { return s.Label != "" && s.Value != "" },
	Overlay: func(base, dyn Stat) Stat {
		base.Label = sections.Prefer(dyn.Label, base.Label)
		base.Value = sections.Prefer(dyn.Value, base.Value)
		return base
	},
}

var valueSpec = sections.Spec[Value]{
	Pattern: sections.Pattern{Prefix: "ABOUT_VALUE", Layout: sections.FieldFirst, Fields: []string{"ICON", "TITLE", "DESC"}},
	Build: func(g sections.Group) (Value, bool) {
		return Value{ID: g.Key, Icon: g.Text("ICON"), Title: g.Text("TITLE"), Desc: g.Text("DESC")}, true
	},
	Key:      func(v Value) string { return v.ID },
	Complete: func(v Value) bool { return v.Title != "" },
	Overlay: func(base, dyn Value) Value {
		base.Icon = sections.Prefer(dyn.Icon, base.Icon)
		base.Title = sections.Prefer(dyn.Title, base.Title)
		base.Desc = sections.Prefer(dyn.Desc, base.Desc)
		return base
	},
}

// Stats returns the legacy stats overlaid by the page's ABOUT_STAT sections.
func Stats(page cms.Page) []Stat {
	return sections.Merge(page.Sections, statSpec, append([]Stat(nil), legacyStats...))
}

// Values returns the legacy values overlaid by the page's ABOUT_VALUE sections.
func Values(page cms.Page) []Value {
	return sections.Merge(page.Sections, valueSpec, append([]Value(nil), legacyValues...))
}

var legacyStats = []Stat{
	{ID: "members", Label: "Üzv", Value: "150+"},
	{ID: "events", Label: "Keçirilmiş tədbir", Value: "60+"},
	{ID: "years", Label: "İllik təcrübə", Value: "12"},
	{ID: "champions", Label: "Çempion", Value: "25"},
}

var legacyValues = []Value{
	{ID: "safety", Icon: "shield", Title: "Təhlükəsizlik", Desc: "Hər yarış beynəlxalq təhlükəsizlik standartlarına uyğun təşkil olunur."},
	{ID: "passion", Icon: "flame", Title: "Ehtiras", Desc: "Motorsporta olan sevgimiz bizi hər mövsüm irəli aparır."},
	{ID: "community", Icon: "users", Title: "İcma", Desc: "Sürücüləri, mexanikləri və azarkeşləri bir araya gətiririk."},
	{ID: "excellence", Icon: "trophy", Title: "Mükəmməllik", Desc: "Gənc pilotların peşəkar səviyyəyə çatması üçün təlimlər keçiririk."},
}
