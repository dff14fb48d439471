package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"motorsport.az/club-web/internal/about"
	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/coerce"
	"motorsport.az/club-web/internal/i18n"
	"motorsport.az/club-web/internal/nav"
	"motorsport.az/club-web/internal/observability"
	"motorsport.az/club-web/internal/rules"
)

type fakeContent struct {
	pages map[string][]cms.Section
	feeds map[string]string
	legal map[string]cms.LegalPage
	fail  bool
}

func (f fakeContent) Sections(_ context.Context, namespace string) (cms.Page, error) {
	if f.fail {
		return cms.Page{Namespace: namespace}, errors.New("cms down")
	}
	return cms.Page{Namespace: namespace, Sections: f.pages[namespace]}, nil
}

func (f fakeContent) Feed(_ context.Context, name string) ([]byte, error) {
	if f.fail {
		return nil, errors.New("api down")
	}
	body, ok := f.feeds[name]
	if !ok {
		return []byte("[]"), nil
	}
	return []byte(body), nil
}

func (f fakeContent) LegalPage(_ context.Context, slug, lang string) (cms.LegalPage, error) {
	page, ok := f.legal[slug+"/"+lang]
	if !ok {
		return cms.LegalPage{}, cms.ErrNotFound
	}
	return page, nil
}

var fixedNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func newTestHandlers(t *testing.T, content Content) *Handlers {
	t.Helper()
	bundle, err := i18n.Default("az", []string{"az", "en", "ru"})
	require.NoError(t, err)
	site := Site{Name: "Klub", Origin: "https://motorsport.az"}
	return New(content, nav.NewResolver(site.Origin, nav.DefaultTrustedDomains), bundle, site,
		WithClock(func() time.Time { return fixedNow }))
}

func TestBuildAboutDegradesToLegacy(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	ctx := observability.WithLogger(context.Background(), zap.New(core))
	h := newTestHandlers(t, fakeContent{fail: true})

	data, err := h.Build(ctx, nav.About, "az")
	require.NoError(t, err)

	assert.True(t, data.Degraded)
	assert.Equal(t, "Haqqımızda", data.Title)
	content := data.Content.(AboutContent)
	assert.Equal(t, about.Stats(cms.Page{}), content.Stats)
	assert.Len(t, data.Nav, len(nav.Main))
	assert.GreaterOrEqual(t, logs.FilterMessageSnippet("legacy content").Len(), 1)
}

func TestBuildRulesUsesCMSOverrides(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, fakeContent{pages: map[string][]cms.Section{
		"rules": {{ID: "RULES_TAB_1_ID", Value: "general"}, {ID: "RULES_TAB_1_TITLE", Value: "Əsas qaydalar"}},
		"layout": {
			{ID: "NAV_6_ID", Value: "rules"},
			{ID: "NAV_6_LABEL", Value: "Reqlament"},
			{ID: "SOCIAL_FACEBOOK", Value: "facebook.com/club"},
			{ID: "SOCIAL_INSTAGRAM", Value: "SOCIAL_INSTAGRAM"},
		},
	}})

	data, err := h.Build(context.Background(), nav.Rules, "en")
	require.NoError(t, err)

	assert.False(t, data.Degraded)
	assert.Equal(t, "Reqlament", data.Title)
	assert.Equal(t, []SocialLink{{Network: "facebook", URL: "https://facebook.com/club"}}, data.Social)
	require.Len(t, data.Breadcrumbs, 2)
	assert.Equal(t, "Reqlament", data.Breadcrumbs[1].Label)

	content := data.Content.(RulesContent)
	require.Len(t, content.Tabs, len(rules.Legacy()))
	assert.Equal(t, "Əsas qaydalar", content.Tabs[0].Title)
	assert.Equal(t, "Download document", content.DownloadLabel)

	var active []string
	for _, item := range data.Nav {
		if item.Active {
			active = append(active, string(item.View))
		}
	}
	assert.Equal(t, []string{"rules"}, active)
}

func TestBuildEventsSplitsByStatus(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, fakeContent{feeds: map[string]string{
		"events": `[
			{"id":"1","title":"Yay kuboku","date":"2024-07-10","location":"Bakı"},
			{"id":"2","title":"Qış kuboku","date":"2024-01-20"},
			{"id":"3","title":"Bu gün","date":"2024-06-01","registration_enabled":"deaktiv"}
		]`,
	}})

	data, err := h.Build(context.Background(), nav.Events, "az")
	require.NoError(t, err)

	content := data.Content.(EventsContent)
	require.Len(t, content.Planned, 2)
	require.Len(t, content.Past, 1)

	assert.Equal(t, "3", content.Planned[0].ID)
	assert.False(t, content.Planned[0].CanRegister)
	assert.Equal(t, "1", content.Planned[1].ID)
	assert.True(t, content.Planned[1].CanRegister)
	assert.Equal(t, "10 iyul 2024", content.Planned[1].DateLabel)
	assert.Equal(t, "Planlaşdırılıb", content.Planned[1].StatusLabel)
	assert.Equal(t, coerce.StatusPast, content.Past[0].Status)
	assert.Contains(t, content.Past[0].JSONLD, "EventCompleted")

	// organization + breadcrumbs + two planned events
	assert.Len(t, data.JSONLD, 4)
}

func TestBuildGalleryAndLegal(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, fakeContent{
		feeds: map[string]string{
			"gallery-photos": `[{"id":1,"src":"/1.jpg","album":"Drift"},{"id":2,"src":"/2.jpg"}]`,
			"videos":         `[{"id":1,"url":"https://youtu.be/dQw4w9WgXcQ"}]`,
		},
		legal: map[string]cms.LegalPage{
			"privacy/en": {Slug: "privacy", Lang: "en", Title: "Privacy Policy", HTML: "<p>x</p>", UpdatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		},
	})

	data, err := h.Build(context.Background(), nav.Gallery, "az")
	require.NoError(t, err)
	gallery := data.Content.(GalleryContent)
	assert.Len(t, gallery.Items, 2)
	assert.Len(t, gallery.Videos, 1)

	data, err = h.Build(context.Background(), nav.Privacy, "en")
	require.NoError(t, err)
	assert.Equal(t, "Privacy Policy", data.Title)
	legal := data.Content.(LegalContent)
	assert.Equal(t, "Last updated: Mar 2, 2024", legal.UpdatedLabel)

	data, err = h.Build(context.Background(), nav.Terms, "en")
	require.NoError(t, err)
	assert.True(t, data.Degraded)
	assert.Equal(t, "İstifadə şərtləri", data.Title)
}

func TestBuildUnknownView(t *testing.T) {
	t.Parallel()

	_, err := newTestHandlers(t, fakeContent{}).Build(context.Background(), nav.View("shop"), "az")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, fakeContent{pages: map[string][]cms.Section{
		"drivers": {{ID: "DRIVER_1_NAME", Value: "Rəşad"}, {ID: "DRIVER_1_NUMBER", Value: "7"}, {ID: "DRIVER_2_NUMBER", Value: "9"}},
	}})
	r := chi.NewRouter()
	h.Routes(r)

	t.Run("view", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/view/Drivers", nil)
		req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ru", rec.Header().Get("Content-Language"))
		var body struct {
			View    string `json:"view"`
			Lang    string `json:"lang"`
			Content struct {
				Drivers []Driver `json:"drivers"`
			} `json:"content"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "drivers", body.View)
		assert.Equal(t, "ru", body.Lang)
		assert.Equal(t, []Driver{{Name: "Rəşad", Number: "7"}}, body.Content.Drivers)
	})

	t.Run("unknown view", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/view/shop", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown_view")
	})

	t.Run("resolve", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resolve?target=%23&label=%C6%8Flaq%C9%99", nil))
		assert.JSONEq(t, `{"kind":"internal","view":"contact","href":"/contact"}`, rec.Body.String())

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resolve?target=https://fia.com", nil))
		assert.JSONEq(t, `{"kind":"external","href":"https://fia.com"}`, rec.Body.String())

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resolve?target=%23", nil))
		assert.JSONEq(t, `{"kind":"none"}`, rec.Body.String())
	})

	t.Run("markup preview", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/markup/preview", strings.NewReader("[B]Hi[/B]")))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"html":"<strong>Hi</strong>"}`, rec.Body.String())
	})
}
