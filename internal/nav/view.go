package nav

import "motorsport.az/club-web/internal/textnorm"

// View identifies one internal page. The set is closed; nothing outside it is ever
// produced by this package.
type View string

const (
	Home    View = "home"
	About   View = "about"
	News    View = "news"
	Events  View = "events"
	Drivers View = "drivers"
	Rules   View = "rules"
	Contact View = "contact"
	Gallery View = "gallery"
	Privacy View = "privacy"
	Terms   View = "terms"
)

var allViews = []View{Home, About, News, Events, Drivers, Rules, Contact, Gallery, Privacy, Terms}

// Views returns every known view in menu order.
func Views() []View {
	return append([]View(nil), allViews...)
}

// Known reports whether v belongs to the closed view set.
func (v View) Known() bool {
	for _, known := range allViews {
		if v == known {
			return true
		}
	}
	return false
}

// Path returns the site path of the view.
func (v View) Path() string {
	if v == Home || !v.Known() {
		return "/"
	}
	return "/" + string(v)
}

// Label returns the default Azerbaijani menu label of the view.
func (v View) Label() string {
	return defaultLabels[v]
}

var defaultLabels = map[View]string{
	Home:    "Ana səhifə",
	About:   "Haqqımızda",
	News:    "Xəbərlər",
	Events:  "Tədbirlər",
	Drivers: "Sürücülər",
	Rules:   "Qaydalar",
	Contact: "Əlaqə",
	Gallery: "Qalereya",
	Privacy: "Məxfilik siyasəti",
	Terms:   "İstifadə şərtləri",
}

// ParseView returns the view whose name equals the normalized form of s.
func ParseView(s string) (View, bool) {
	tok := textnorm.Normalize(s)
	for _, v := range allViews {
		if string(v) == tok {
			return v, true
		}
	}
	return "", false
}
