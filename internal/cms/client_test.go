package cms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSections(t *testing.T) {
	t.Parallel()

	t.Run("bare array with mixed scalar types", func(t *testing.T) {
		t.Parallel()
		raw := []byte(`[
			{"id":"ABOUT_STAT_VALUE_YEARS","value":15},
			{"key":"ABOUT_TITLE","title":"Haqqımızda","text":"Klub"},
			{"label":"no id"},
			{"id":"ABOUT_HERO","image":"/hero.jpg","value":null}
		]`)
		got, err := DecodeSections(raw)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, Section{ID: "ABOUT_STAT_VALUE_YEARS", Value: "15"}, got[0])
		assert.Equal(t, Section{ID: "ABOUT_TITLE", Label: "Haqqımızda", Value: "Klub"}, got[1])
		assert.Equal(t, Section{ID: "ABOUT_HERO", URL: "/hero.jpg"}, got[2])
	})

	t.Run("wrapped object", func(t *testing.T) {
		t.Parallel()
		got, err := DecodeSections([]byte(`{"sections":[{"id":"A","value":"1"}]}`))
		require.NoError(t, err)
		assert.Equal(t, []Section{{ID: "A", Value: "1"}}, got)
	})

	t.Run("invalid payloads", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeSections([]byte(`{not json`))
		assert.Error(t, err)
		_, err = DecodeSections([]byte(`{"data":1}`))
		assert.Error(t, err)
	})
}

func TestClientSectionsCachesRemotePages(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/sections/rules" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"RULES_TAB_1_TITLE","value":"Ümumi"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithCacheTTL(time.Minute))
	page, err := client.Sections(context.Background(), "Rules")
	require.NoError(t, err)
	assert.Equal(t, "rules", page.Namespace)
	assert.Equal(t, "Ümumi", page.Text("RULES_TAB_1_TITLE", ""))

	_, err = client.Sections(context.Background(), "rules")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	_, err = client.Sections(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClientFeed(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/events" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	body, err := client.Feed(context.Background(), "/Events/")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(body))

	_, err = client.Feed(context.Background(), "events")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	_, err = client.Feed(context.Background(), "videos")
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := NewClient("").Feed(context.Background(), "news")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestClientSectionsWithoutBaseURL(t *testing.T) {
	t.Parallel()

	page, err := NewClient("").Sections(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, "about", page.Namespace)
	assert.Empty(t, page.Sections)

	_, err = NewClient("").Sections(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientSectionsRemoteFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL).Sections(context.Background(), "about")
	require.Error(t, err)
	assert.Equal(t, "about", page.Namespace)
}

func writeLegal(t *testing.T, dir, lang, slug, content string) {
	t.Helper()
	path := filepath.Join(dir, "legal", lang)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, slug+".md"), []byte(content), 0o644))
}

func TestLegalPageFallbackMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeLegal(t, dir, "az", "privacy", "---\ntitle: Məxfilik siyasəti\nversion: \"2\"\neffective_date: 2024-05-01\n---\n# Başlıq\n\nMətn <script>alert(1)</script>\n")
	writeLegal(t, dir, "en", "terms", "Plain terms body\n")

	client := NewClient("", WithContentDir(dir))

	page, err := client.LegalPage(context.Background(), "privacy", "ru")
	require.NoError(t, err)
	assert.Equal(t, "az", page.Lang)
	assert.Equal(t, "Məxfilik siyasəti", page.Title)
	assert.Equal(t, "2", page.Version)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), page.EffectiveDate)
	assert.Contains(t, page.HTML, "<h1")
	assert.NotContains(t, page.HTML, "<script>")

	page, err = client.LegalPage(context.Background(), "terms", "az")
	require.NoError(t, err)
	assert.Equal(t, "en", page.Lang)
	assert.Equal(t, "Terms", page.Title)

	_, err = client.LegalPage(context.Background(), "../etc/passwd", "az")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "outside"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "outside", "privacy.md"), []byte("---\ntitle: Outside\n---\nx\n"), 0o644))
	for _, lang := range []string{"../outside", `..\outside`, "az/../../outside"} {
		page, err = client.LegalPage(context.Background(), "privacy", lang)
		require.NoError(t, err, lang)
		assert.Equal(t, "Məxfilik siyasəti", page.Title, lang)
		assert.Equal(t, "az", page.Lang, lang)
	}
	_, err = client.LegalPage(context.Background(), "cookies", "az")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLegalPageRemoteBBCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		_, _ = w.Write([]byte(`{"title":"Terms","format":"bbcode","body":"[B]Rules[/B]","updated_at":"2025-01-02"}`))
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL).LegalPage(context.Background(), "terms", "en-GB")
	require.NoError(t, err)
	assert.Equal(t, "en", page.Lang)
	assert.Equal(t, "<strong>Rules</strong>", page.HTML)
	assert.Equal(t, 2025, page.UpdatedAt.Year())
}
