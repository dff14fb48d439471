package handlers

import (
	"context"
	"errors"
	"fmt"

	"motorsport.az/club-web/internal/about"
	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/coerce"
	"motorsport.az/club-web/internal/events"
	"motorsport.az/club-web/internal/feed"
	"motorsport.az/club-web/internal/format"
	"motorsport.az/club-web/internal/gallery"
	"motorsport.az/club-web/internal/markup"
	"motorsport.az/club-web/internal/nav"
	"motorsport.az/club-web/internal/rules"
	"motorsport.az/club-web/internal/sections"
	"motorsport.az/club-web/internal/seo"
)

// ErrUnknownView is returned for views outside the closed view set.
var ErrUnknownView = errors.New("handlers: unknown view")

const homeTeaserCount = 3

// HomeContent is the landing page payload.
type HomeContent struct {
	HeroTitle    string           `json:"heroTitle"`
	HeroSubtitle string           `json:"heroSubtitle,omitempty"`
	HeroImage    string           `json:"heroImage,omitempty"`
	CTA          nav.RenderedItem `json:"cta"`
	Upcoming     []EventView      `json:"upcoming"`
	LatestNews   []ArticleView    `json:"latestNews"`
}

// AboutContent is the about page payload.
type AboutContent struct {
	Heading string        `json:"heading"`
	Intro   string        `json:"introHtml"`
	Image   string        `json:"image,omitempty"`
	Stats   []about.Stat  `json:"stats"`
	Values  []about.Value `json:"values"`
}

// RulesContent is the regulations page payload.
type RulesContent struct {
	Tabs          []rules.Tab `json:"tabs"`
	DownloadLabel string      `json:"downloadLabel"`
}

// EventView decorates an event with display labels and structured data.
type EventView struct {
	events.Record
	DateLabel   string `json:"dateLabel"`
	StatusLabel string `json:"statusLabel"`
	CanRegister bool   `json:"canRegister"`
	JSONLD      string `json:"jsonLd"`
}

// EventsContent is the calendar payload.
type EventsContent struct {
	Planned []EventView `json:"planned"`
	Past    []EventView `json:"past"`
}

// ArticleView decorates a news article with its date label.
type ArticleView struct {
	feed.Article
	DateLabel string `json:"dateLabel"`
}

// NewsContent is the news page payload.
type NewsContent struct {
	Articles []ArticleView `json:"articles"`
}

// GalleryContent is the gallery page payload.
type GalleryContent struct {
	Items  []gallery.GridItem `json:"items"`
	Videos []feed.Video       `json:"videos"`
}

// Driver is one club driver profile.
type Driver struct {
	Name   string `json:"name"`
	Number string `json:"number,omitempty"`
	Class  string `json:"class,omitempty"`
	Photo  string `json:"photo,omitempty"`
	Bio    string `json:"bioHtml,omitempty"`
}

// DriversContent is the drivers page payload.
type DriversContent struct {
	Intro   string   `json:"introHtml,omitempty"`
	Drivers []Driver `json:"drivers"`
}

// ContactContent is the contact page payload.
type ContactContent struct {
	Address string       `json:"address"`
	Phone   string       `json:"phone"`
	Email   string       `json:"email"`
	MapURL  string       `json:"mapUrl,omitempty"`
	Social  []SocialLink `json:"social,omitempty"`
}

// LegalContent is the privacy or terms payload.
type LegalContent struct {
	cms.LegalPage
	UpdatedLabel string `json:"updatedLabel,omitempty"`
}

var driverSpec = sections.Spec[Driver]{
	Pattern: sections.Pattern{Prefix: "DRIVER", Layout: sections.IndexFirst, Fields: []string{"NAME", "NUMBER", "CLASS", "PHOTO", "BIO"}},
	Build: func(g sections.Group) (Driver, bool) {
		return Driver{
			Name:   g.Text("NAME"),
			Number: g.Text("NUMBER"),
			Class:  g.Text("CLASS"),
			Photo:  g.Href("PHOTO"),
			Bio:    markup.SafeHTML(g.Text("BIO")),
		}, true
	},
	Key:      func(d Driver) string { return d.Name },
	Complete: func(d Driver) bool { return d.Name != "" },
}

// Build returns the page data for view in lang.
func (h *Handlers) Build(ctx context.Context, view nav.View, lang string) (PageData, error) {
	if !view.Known() {
		return PageData{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	if lang == "" && h.bundle != nil {
		lang = h.bundle.Fallback()
	}

	var (
		content  any
		title    string
		degraded bool
		jsonLD   []string
	)
	switch view {
	case nav.Home:
		content, jsonLD = h.home(ctx, lang, &degraded)
	case nav.About:
		c := h.about(ctx, &degraded)
		title, content = c.Heading, c
	case nav.Rules:
		content = RulesContent{Tabs: rules.Assemble(h.page(ctx, "rules", &degraded)), DownloadLabel: h.t(lang, "rules.download")}
	case nav.Events:
		c := h.events(ctx, lang, &degraded)
		for _, ev := range c.Planned {
			jsonLD = append(jsonLD, ev.JSONLD)
		}
		content = c
	case nav.News:
		content = NewsContent{Articles: h.news(ctx, lang, &degraded)}
	case nav.Gallery:
		content = h.gallery(ctx, &degraded)
	case nav.Drivers:
		page := h.page(ctx, "drivers", &degraded)
		content = DriversContent{
			Intro:   markup.SafeHTML(page.Text("DRIVERS_INTRO", "")),
			Drivers: sections.Merge[Driver](page.Sections, driverSpec, nil),
		}
	case nav.Contact:
		content = h.contact(ctx, &degraded)
	case nav.Privacy, nav.Terms:
		c, err := h.legal(ctx, string(view), lang)
		if err != nil {
			h.warnFeed(ctx, "legal/"+string(view), err, &degraded)
		}
		title, content = c.Title, c
	}

	data := h.layout(ctx, view, lang, title)
	data.Degraded = data.Degraded || degraded
	data.JSONLD = append(data.JSONLD, jsonLD...)
	data.Content = content
	return data, nil
}

func (h *Handlers) home(ctx context.Context, lang string, degraded *bool) (HomeContent, []string) {
	page := h.page(ctx, "home", degraded)
	cta := nav.Link{
		Label:  page.Text("HERO_CTA_LABEL", nav.Events.Label()),
		Target: page.URL("HERO_CTA_URL", string(nav.Events)),
	}
	c := HomeContent{
		HeroTitle:    page.Text("HERO_TITLE", cms.FirstNonEmpty(h.site.Name, h.t(lang, "site.title"))),
		HeroSubtitle: page.Text("HERO_SUBTITLE", ""),
		HeroImage:    page.Image("HERO_IMAGE", ""),
		CTA:          h.resolver.Build([]nav.Link{cta}, nav.Home)[0],
	}

	planned := h.events(ctx, lang, degraded).Planned
	if len(planned) > homeTeaserCount {
		planned = planned[:homeTeaserCount]
	}
	c.Upcoming = planned

	articles := h.news(ctx, lang, degraded)
	if len(articles) > homeTeaserCount {
		articles = articles[:homeTeaserCount]
	}
	c.LatestNews = articles

	var jsonLD []string
	for _, ev := range c.Upcoming {
		jsonLD = append(jsonLD, ev.JSONLD)
	}
	return c, jsonLD
}

func (h *Handlers) about(ctx context.Context, degraded *bool) AboutContent {
	page := h.page(ctx, "about", degraded)
	return AboutContent{
		Heading: page.Text("ABOUT_TITLE", nav.About.Label()),
		Intro:   markup.SafeHTML(page.Text("ABOUT_INTRO", "")),
		Image:   page.Image("ABOUT_IMAGE", ""),
		Stats:   about.Stats(page),
		Values:  about.Values(page),
	}
}

func (h *Handlers) events(ctx context.Context, lang string, degraded *bool) EventsContent {
	records, err := feed.Events(ctx, h.content, h.now())
	if err != nil {
		h.warnFeed(ctx, feed.EventsCollection, err, degraded)
	}
	planned, past := events.Split(records)
	return EventsContent{Planned: h.eventViews(planned, lang), Past: h.eventViews(past, lang)}
}

func (h *Handlers) eventViews(records []events.Record, lang string) []EventView {
	out := make([]EventView, 0, len(records))
	for _, r := range records {
		v := EventView{Record: r, CanRegister: r.CanRegister(), DateLabel: r.Date}
		if day, ok := coerce.ParseDay(r.Date, h.now().Location()); ok {
			v.DateLabel = format.Date(day, lang)
		}
		v.StatusLabel = h.t(lang, "events."+string(r.Status))
		v.JSONLD = seo.JSON(seo.SportsEvent(seo.Event{
			Name:        r.Title,
			StartDate:   r.Date,
			Location:    r.Location,
			Description: r.Description,
			Image:       r.Image,
			URL:         h.site.Origin + nav.Events.Path(),
			Past:        r.Status == coerce.StatusPast,
		}, h.site.Name))
		out = append(out, v)
	}
	return out
}

func (h *Handlers) news(ctx context.Context, lang string, degraded *bool) []ArticleView {
	articles, err := feed.News(ctx, h.content)
	if err != nil {
		h.warnFeed(ctx, feed.NewsCollection, err, degraded)
	}
	out := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		v := ArticleView{Article: a, DateLabel: a.Date}
		if day, ok := coerce.ParseDay(a.Date, h.now().Location()); ok {
			v.DateLabel = format.Date(day, lang)
		}
		out = append(out, v)
	}
	return out
}

func (h *Handlers) gallery(ctx context.Context, degraded *bool) GalleryContent {
	items, err := feed.Photos(ctx, h.content)
	if err != nil {
		h.warnFeed(ctx, feed.PhotosCollection, err, degraded)
	}
	videos, err := feed.Videos(ctx, h.content)
	if err != nil {
		h.warnFeed(ctx, feed.VideosCollection, err, degraded)
	}
	if items == nil {
		items = []gallery.GridItem{}
	}
	if videos == nil {
		videos = []feed.Video{}
	}
	return GalleryContent{Items: items, Videos: videos}
}

func (h *Handlers) contact(ctx context.Context, degraded *bool) ContactContent {
	page := h.page(ctx, "contact", degraded)
	return ContactContent{
		Address: page.Text("CONTACT_ADDRESS", "Bakı şəhəri, Azərbaycan"),
		Phone:   page.Text("CONTACT_PHONE", ""),
		Email:   page.Text("CONTACT_EMAIL", "info@motorsport.az"),
		MapURL:  page.URL("CONTACT_MAP_URL", ""),
		Social:  socialLinks(page),
	}
}

func (h *Handlers) legal(ctx context.Context, slug, lang string) (LegalContent, error) {
	page, err := h.content.LegalPage(ctx, slug, lang)
	if err != nil {
		return LegalContent{LegalPage: cms.LegalPage{Slug: slug, Lang: lang}}, err
	}
	c := LegalContent{LegalPage: page}
	if !page.UpdatedAt.IsZero() {
		c.UpdatedLabel = h.t(lang, "legal.updated") + ": " + format.Date(page.UpdatedAt, lang)
	}
	return c, nil
}
