package nav

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"motorsport.az/club-web/internal/textnorm"
)

// Kind classifies a resolution result.
type Kind int

const (
	// KindNone means the target does not navigate anywhere.
	KindNone Kind = iota
	// KindInternal means the target is one of the site's views.
	KindInternal
	// KindExternal means the target leaves the site.
	KindExternal
)

// Resolution is the outcome of resolving a CMS-authored navigation target.
type Resolution struct {
	Kind Kind `json:"kind"`
	View View `json:"view,omitempty"`
}

// Internal reports whether the resolution points at a view.
func (r Resolution) Internal() bool { return r.Kind == KindInternal }

// External reports whether the resolution leaves the site.
func (r Resolution) External() bool { return r.Kind == KindExternal }

// String renders the resolution the way editors see it: a view name, "external" or "".
func (r Resolution) String() string {
	switch r.Kind {
	case KindInternal:
		return string(r.View)
	case KindExternal:
		return "external"
	default:
		return ""
	}
}

// aliases maps historical and localized route slugs (normalized) to views.
var aliases = map[string]View{
	"index": Home, "anasehife": Home, "esas": Home, "esassehife": Home, "main": Home, "glavnaya": Home,
	"haqqimizda": About, "haqqinda": About, "klubhaqqinda": About, "aboutus": About, "onas": About,
	"xeberler": News, "xeber": News, "yenilikler": News, "novosti": News,
	"tedbirler": Events, "yarislar": Events, "teqvim": Events, "calendar": Events, "schedule": Events, "meropriyatiya": Events,
	"suruculer": Drivers, "pilotlar": Drivers, "racers": Drivers, "komanda": Drivers, "team": Drivers,
	"qaydalar": Rules, "reglament": Rules, "regulations": Rules, "pravila": Rules,
	"elaqe": Contact, "bizimleelaqe": Contact, "contacts": Contact, "contactus": Contact, "kontakty": Contact,
	"qalereya": Gallery, "galereya": Gallery, "foto": Gallery, "photos": Gallery, "media": Gallery,
	"mexfilik": Privacy, "mexfiliksiyaseti": Privacy, "privacypolicy": Privacy, "konfidensialliq": Privacy,
	"istifadesertleri": Terms, "sertler": Terms, "qaydalarvesertler": Terms, "termsofuse": Terms,
	"termsofservice": Terms, "termsandconditions": Terms,
}

type keywordRule struct {
	view     View
	keywords []string
}

// labelRules is evaluated top to bottom against the normalized label; the first rule with
// a keyword contained in the label wins. Order settles overlaps:
//   - privacy and terms precede rules since "qaydalar və şərtlər" contains "qayda";
//   - news precedes contact since "əlaqəli xəbərlər" (related news) contains "elaqe";
//   - drivers precedes rules so "sürücü qaydaları" lands on the drivers page;
//   - contact is late since "əlaqə" also means connection;
//   - home is last since "ana" is a substring of many words.
var labelRules = []keywordRule{
	{view: Privacy, keywords: []string{"mexfilik", "privacy", "konfidensial"}},
	{view: Terms, keywords: []string{"istifadesert", "sertler", "terms", "condition"}},
	{view: About, keywords: []string{"haqqimizda", "haqqinda", "about"}},
	{view: News, keywords: []string{"xeber", "yenilik", "news"}},
	{view: Events, keywords: []string{"tedbir", "yaris", "teqvim", "event", "calendar", "schedule"}},
	{view: Drivers, keywords: []string{"surucu", "pilot", "driver", "racer", "komanda", "team"}},
	{view: Rules, keywords: []string{"qayda", "reglament", "rule", "regulation"}},
	{view: Gallery, keywords: []string{"qalereya", "galereya", "gallery", "foto", "photo", "video", "media"}},
	{view: Contact, keywords: []string{"elaqe", "contact", "kontakt", "unvan"}},
	{view: Home, keywords: []string{"anasehife", "esas", "home", "ana"}},
}

// DefaultTrustedDomains are brand-domain substrings treated as the site itself.
var DefaultTrustedDomains = []string{"motorsport.az", "azmotorsport"}

// Resolver maps CMS-authored link targets and labels to views.
type Resolver struct {
	originHost string
	trusted    []string
}

// NewResolver builds a Resolver for a site served at origin (e.g. "https://motorsport.az").
// Hosts containing any of trustedDomains are treated as internal too.
func NewResolver(origin string, trustedDomains []string) *Resolver {
	r := &Resolver{}
	if u, err := url.Parse(strings.TrimSpace(origin)); err == nil {
		r.originHost = canonicalHost(u.Hostname())
	}
	for _, d := range trustedDomains {
		if d = canonicalHost(d); d != "" {
			r.trusted = append(r.trusted, d)
		}
	}
	return r
}

var defaultResolver = NewResolver("", DefaultTrustedDomains)

// ResolveView resolves with the default trusted domains and no origin.
func ResolveView(rawTarget, labelHint string, def View) Resolution {
	return defaultResolver.Resolve(rawTarget, labelHint, def)
}

// Resolve applies, in order: empty or "#" targets (label hint only, else no navigation),
// exact view names, the alias table, the label keyword rules, absolute URLs on trusted
// hosts (path, fragment, then view/tab query parameters, each checked against views,
// aliases and keywords), external http(s) URLs, and finally def. A def outside the view set is replaced by Home.
func (r *Resolver) Resolve(rawTarget, labelHint string, def View) Resolution {
	if !def.Known() {
		def = Home
	}
	target := strings.TrimSpace(rawTarget)
	if target == "" || target == "#" {
		if v, ok := matchLabel(labelHint); ok {
			return internal(v)
		}
		return Resolution{Kind: KindNone}
	}

	if v, ok := matchToken(textnorm.Normalize(target)); ok {
		return internal(v)
	}
	if v, ok := matchLabel(labelHint); ok {
		return internal(v)
	}

	if u, ok := absoluteURL(target); ok {
		if !r.trustedHost(u.Hostname()) {
			return Resolution{Kind: KindExternal}
		}
		q := u.Query()
		for _, candidate := range []string{strings.Trim(u.Path, "/"), u.Fragment, q.Get("view"), q.Get("tab")} {
			if v, ok := matchToken(textnorm.Normalize(candidate)); ok {
				return internal(v)
			}
			if v, ok := matchLabel(candidate); ok {
				return internal(v)
			}
		}
	}

	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return Resolution{Kind: KindExternal}
	}
	return internal(def)
}

func internal(v View) Resolution {
	return Resolution{Kind: KindInternal, View: v}
}

// matchToken covers exact view names and aliases.
func matchToken(tok string) (View, bool) {
	if tok == "" {
		return "", false
	}
	if v := View(tok); v.Known() {
		return v, true
	}
	v, ok := aliases[tok]
	return v, ok
}

func matchLabel(label string) (View, bool) {
	tok := textnorm.Normalize(label)
	if tok == "" {
		return "", false
	}
	for _, rule := range labelRules {
		for _, kw := range rule.keywords {
			if strings.Contains(tok, kw) {
				return rule.view, true
			}
		}
	}
	return "", false
}

func absoluteURL(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, true
	}
	return nil, false
}

func (r *Resolver) trustedHost(host string) bool {
	host = canonicalHost(host)
	if host == "" {
		return false
	}
	if r.originHost != "" && strings.TrimPrefix(host, "www.") == strings.TrimPrefix(r.originHost, "www.") {
		return true
	}
	for _, d := range r.trusted {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

// canonicalHost lowercases host and converts internationalized names to ASCII so that
// Unicode and punycode spellings compare equal.
func canonicalHost(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" {
		return ""
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		return ascii
	}
	return host
}
