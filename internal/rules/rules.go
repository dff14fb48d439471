// Package rules assembles the tabs of the club regulations page from the legacy rule set
// and CMS overrides under RULES_TAB_<n>_*.
package rules

import (
	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/sections"
)

// Tab is one regulations tab with its downloadable document and rule items.
type Tab struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	DocName   string `json:"docName"`
	DocButton string `json:"docButton"`
	DocURL    string `json:"docUrl"`
	Items     []Item `json:"items"`
}

// Item is a single rule inside a tab.
type Item struct {
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

// Pattern matches RULES_TAB_<n>_<FIELD> and RULES_TAB_<n>_ITEM_<m>_<FIELD>.
var Pattern = sections.Pattern{
	Prefix:     "RULES_TAB",
	Layout:     sections.IndexFirst,
	Fields:     []string{"ID", "TITLE", "ICON", "DOC_NAME", "DOC_BUTTON", "DOC_URL"},
	ItemFields: []string{"SUBTITLE", "DESCRIPTION"},
}

var spec = sections.Spec[Tab]{
	Pattern: Pattern,
	Build:   buildTab,
	Key:     func(t Tab) string { return cms.FirstNonEmpty(t.ID, t.Title) },
	Complete: func(t Tab) bool {
		return t.Title != "" && len(t.Items) > 0
	},
	Overlay: func(base, dyn Tab) Tab {
		return Tab{
			ID:        sections.Prefer(dyn.ID, base.ID),
			Title:     sections.Prefer(dyn.Title, base.Title),
			Icon:      sections.Prefer(dyn.Icon, base.Icon),
			DocName:   sections.Prefer(dyn.DocName, base.DocName),
			DocButton: sections.Prefer(dyn.DocButton, base.DocButton),
			DocURL:    sections.Prefer(dyn.DocURL, base.DocURL),
			Items:     sections.PreferList(dyn.Items, base.Items),
		}
	},
}

func buildTab(g sections.Group) (Tab, bool) {
	t := Tab{
		ID:        g.Text("ID"),
		Title:     g.Text("TITLE"),
		Icon:      g.Text("ICON"),
		DocName:   g.Text("DOC_NAME"),
		DocButton: g.Text("DOC_BUTTON"),
		DocURL:    g.Href("DOC_URL"),
	}
	for _, it := range g.Items {
		item := Item{Subtitle: it.Text("SUBTITLE"), Description: it.Text("DESCRIPTION")}
		if item.Subtitle == "" && item.Description == "" {
			continue
		}
		t.Items = append(t.Items, item)
	}
	return t, true
}

// Assemble returns the legacy tabs overlaid with the page's RULES_TAB sections, followed
// by complete CMS-only tabs.
func Assemble(page cms.Page) []Tab {
	return sections.Merge(page.Sections, spec, Legacy())
}

// Legacy returns a fresh copy of the built-in tabs.
func Legacy() []Tab {
	out := make([]Tab, len(legacy))
	for i, t := range legacy {
		t.Items = append([]Item(nil), t.Items...)
		out[i] = t
	}
	return out
}

var legacy = []Tab{
	{
		ID:        "general",
		Title:     "Ümumi müddəalar",
		Icon:      "book-open",
		DocName:   "Ümumi reqlament",
		DocButton: "Reqlamenti yüklə",
		DocURL:    "/docs/umumi-reqlament.pdf",
		Items: []Item{
			{Subtitle: "İştirak şərtləri", Description: "Yarışlarda yalnız klubda qeydiyyatdan keçmiş və etibarlı lisenziyası olan sürücülər iştirak edə bilər."},
			{Subtitle: "Qeydiyyat", Description: "Qeydiyyat tədbirdən ən geci 3 gün əvvəl onlayn forma vasitəsilə tamamlanmalıdır."},
			{Subtitle: "İntizam", Description: "Hakimlərin və marşalların göstərişlərinə əməl edilməməsi diskvalifikasiya ilə nəticələnə bilər."},
		},
	},
	{
		ID:        "technical",
		Title:     "Texniki tələblər",
		Icon:      "wrench",
		DocName:   "Texniki reqlament",
		DocButton: "Texniki tələbləri yüklə",
		DocURL:    "/docs/texniki-reqlament.pdf",
		Items: []Item{
			{Subtitle: "Texniki baxış", Description: "Hər avtomobil start öncəsi texniki komissiyanın baxışından keçməlidir."},
			{Subtitle: "Təkərlər", Description: "Yalnız sinif üçün təsdiq edilmiş təkər modellərindən istifadəyə icazə verilir."},
			{Subtitle: "Səs həddi", Description: "Səsboğucu sistemin səs səviyyəsi 98 dB-i keçməməlidir."},
		},
	},
	{
		ID:        "safety",
		Title:     "Təhlükəsizlik",
		Icon:      "shield",
		DocName:   "Təhlükəsizlik qaydaları",
		DocButton: "Qaydaları yüklə",
		DocURL:    "/docs/tehlukesizlik.pdf",
		Items: []Item{
			{Subtitle: "Ekipirovka", Description: "Homologasiya edilmiş dəbilqə, kombinezon və əlcəklər məcburidir."},
			{Subtitle: "Təhlükəsizlik kəməri", Description: "Ən azı dörd nöqtəli kəmər və təhlükəsizlik karkası tələb olunur."},
			{Subtitle: "Bayraqlar", Description: "Sürücülər bütün bayraq siqnallarını bilməli və dərhal onlara əməl etməlidir."},
		},
	},
	{
		ID:        "licensing",
		Title:     "Lisenziyalaşdırma",
		Icon:      "id-card",
		DocName:   "Lisenziya qaydaları",
		DocButton: "Lisenziya qaydalarını yüklə",
		DocURL:    "/docs/lisenziya.pdf",
		Items: []Item{
			{Subtitle: "Lisenziya növləri", Description: "Klub həvəskar və idman lisenziyaları verir; hər biri bir mövsüm üçün etibarlıdır."},
			{Subtitle: "Tibbi arayış", Description: "Lisenziya üçün müraciət edərkən son 6 ay ərzində alınmış tibbi arayış təqdim edilməlidir."},
		},
	},
}
