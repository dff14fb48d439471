package cms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"motorsport.az/club-web/internal/markup"
)

// LegalPage is a localized privacy or terms page with its body rendered to safe HTML.
type LegalPage struct {
	Slug          string    `json:"slug"`
	Lang          string    `json:"lang"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary,omitempty"`
	HTML          string    `json:"html"`
	Version       string    `json:"version,omitempty"`
	EffectiveDate time.Time `json:"effectiveDate,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

type legalFrontMatter struct {
	Title         string `yaml:"title"`
	Summary       string `yaml:"summary"`
	Lang          string `yaml:"lang"`
	Format        string `yaml:"format"`
	Version       string `yaml:"version"`
	EffectiveDate string `yaml:"effective_date"`
	UpdatedAt     string `yaml:"updated_at"`
}

const (
	formatMarkdown = "markdown"
	formatHTML     = "html"
	formatBBCode   = "bbcode"

	defaultLang = "az"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// LegalPage fetches a localized legal page, consulting the remote CMS when configured and
// otherwise reading markdown from the content directory. Languages are tried in the order
// lang, az, en.
func (c *Client) LegalPage(ctx context.Context, slug, lang string) (LegalPage, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return LegalPage{}, ErrNotFound
	}
	lang = normalizeLang(lang)
	key := lang + "|" + slug

	if c != nil {
		if page, ok := c.cachedLegal(key); ok {
			return page, nil
		}
	}

	page, err := c.fetchLegal(ctx, slug, lang)
	if err != nil {
		return LegalPage{}, err
	}
	if c != nil {
		c.storeLegal(key, page)
	}
	return page, nil
}

func (c *Client) fetchLegal(ctx context.Context, slug, lang string) (LegalPage, error) {
	if c != nil && c.baseURL != "" {
		page, err := c.fetchLegalRemote(ctx, slug, lang)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cms legal page fetch failed, using local content",
				zap.String("slug", slug), zap.String("lang", lang), zap.Error(err))
		}
	}
	return fallbackLegal(c.ContentDir(), slug, lang)
}

func (c *Client) fetchLegalRemote(ctx context.Context, slug, lang string) (LegalPage, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", "legal", slug)
	if err != nil {
		return LegalPage{}, err
	}
	body, err := c.get(ctx, endpoint, url.Values{"lang": []string{lang}})
	if err != nil {
		return LegalPage{}, err
	}
	if !gjson.ValidBytes(body) {
		return LegalPage{}, fmt.Errorf("cms: legal %s: invalid json", slug)
	}
	payload := gjson.ParseBytes(body)
	raw := payload.Get("body").String()
	if strings.TrimSpace(raw) == "" {
		return LegalPage{}, fmt.Errorf("cms: empty body for legal/%s", slug)
	}
	html, err := renderBody(raw, payload.Get("format").String())
	if err != nil {
		return LegalPage{}, err
	}
	return LegalPage{
		Slug:          slug,
		Lang:          FirstNonEmpty(payload.Get("lang").String(), lang),
		Title:         FirstNonEmpty(payload.Get("title").String(), prettifySlug(slug)),
		Summary:       payload.Get("summary").String(),
		HTML:          html,
		Version:       payload.Get("version").String(),
		EffectiveDate: parseContentDate(payload.Get("effective_date").String()),
		UpdatedAt:     parseContentDate(payload.Get("updated_at").String()),
	}, nil
}

func fallbackLegal(contentDir, slug, lang string) (LegalPage, error) {
	priority := []string{lang}
	if lang != defaultLang {
		priority = append(priority, defaultLang)
	}
	if lang != "en" {
		priority = append(priority, "en")
	}
	for _, candidate := range priority {
		page, err := readLegalMarkdown(contentDir, slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		// Parse failures stop the chain; a broken file should be fixed, not masked.
		return LegalPage{}, err
	}
	return LegalPage{}, ErrNotFound
}

func readLegalMarkdown(contentDir, slug, lang string) (LegalPage, error) {
	file := filepath.Join(contentDir, "legal", lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LegalPage{}, ErrNotFound
		}
		return LegalPage{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := legalFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return LegalPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	html, err := renderBody(body, front.Format)
	if err != nil {
		return LegalPage{}, fmt.Errorf("cms: render %s: %w", file, err)
	}

	page := LegalPage{
		Slug:          slug,
		Lang:          FirstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:         FirstNonEmpty(strings.TrimSpace(front.Title), prettifySlug(slug)),
		Summary:       strings.TrimSpace(front.Summary),
		HTML:          html,
		Version:       strings.TrimSpace(front.Version),
		EffectiveDate: parseContentDate(front.EffectiveDate),
		UpdatedAt:     parseContentDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, statErr := os.Stat(file); statErr == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

func renderBody(body, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatHTML:
		return markup.Sanitize(body), nil
	case formatBBCode:
		return markup.SafeHTML(body), nil
	default:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(body), &buf); err != nil {
			return "", err
		}
		return markup.Sanitize(buf.String()), nil
	}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02.01.2006", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

// normalizeLang reduces lang to its lowercase base subtag. Anything that is not a plain
// ASCII letter code becomes defaultLang, so the result is always safe as a path element.
func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" || len(lang) > 8 {
		return defaultLang
	}
	for _, r := range lang {
		if r < 'a' || r > 'z' {
			return defaultLang
		}
	}
	return lang
}

func (c *Client) cachedLegal(key string) (LegalPage, bool) {
	c.mu.RLock()
	entry, ok := c.legal[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return LegalPage{}, false
	}
	return entry.value, true
}

func (c *Client) storeLegal(key string, page LegalPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.legal[key] = cacheEntry[LegalPage]{value: page, expires: c.now().Add(c.cacheTTL)}
}
