// Package cms reads page content from the club CMS: ordered section snapshots per page
// namespace and localized legal pages, with local fallbacks when the CMS is unreachable.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultCacheTTL   = 5 * time.Minute
	defaultContentDir = "content"
	maxPayloadBytes   = 4 << 20
)

// Client provides read-only access to CMS content endpoints.
type Client struct {
	baseURL    string
	http       *http.Client
	contentDir string
	logger     *zap.Logger

	cacheTTL time.Duration
	mu       sync.RWMutex
	pages    map[string]cacheEntry[Page]
	legal    map[string]cacheEntry[LegalPage]
	feeds    map[string]cacheEntry[[]byte]
	now      func() time.Time
}

type cacheEntry[T any] struct {
	value   T
	expires time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for remote calls.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger used to report degraded fetches.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCacheTTL sets how long fetched pages are served from memory.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.cacheTTL = d
		}
	}
}

// WithContentDir configures the local directory holding fallback legal pages.
func WithContentDir(dir string) Option {
	return func(c *Client) {
		if dir = strings.TrimSpace(dir); dir != "" {
			c.contentDir = dir
		}
	}
}

// NewClient constructs a Client for the CMS at baseURL. An empty baseURL makes the client
// serve local fallbacks only.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:       &http.Client{Timeout: 5 * time.Second},
		contentDir: defaultContentDir,
		logger:     zap.NewNop(),
		cacheTTL:   defaultCacheTTL,
		pages:      map[string]cacheEntry[Page]{},
		legal:      map[string]cacheEntry[LegalPage]{},
		feeds:      map[string]cacheEntry[[]byte]{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentDir returns the configured fallback directory.
func (c *Client) ContentDir() string {
	if c == nil || strings.TrimSpace(c.contentDir) == "" {
		return defaultContentDir
	}
	return c.contentDir
}

// Sections returns the ordered section snapshot for namespace. Without a configured CMS
// the snapshot is empty and callers render their legacy defaults.
func (c *Client) Sections(ctx context.Context, namespace string) (Page, error) {
	namespace = strings.ToLower(strings.TrimSpace(namespace))
	if namespace == "" {
		return Page{}, ErrNotFound
	}
	if c == nil || c.baseURL == "" {
		return Page{Namespace: namespace}, nil
	}
	if page, ok := c.cachedPage(namespace); ok {
		return page, nil
	}

	page, err := c.fetchSections(ctx, namespace)
	if err != nil {
		return Page{Namespace: namespace}, err
	}
	c.storePage(namespace, page)
	return clonePage(page), nil
}

// Feed returns the raw JSON payload of the REST collection name (events, news, videos,
// gallery-photos) served at {base}/{name}. Payloads are cached like section pages.
func (c *Client) Feed(ctx context.Context, name string) ([]byte, error) {
	name = strings.Trim(strings.ToLower(strings.TrimSpace(name)), "/")
	if name == "" {
		return nil, ErrNotFound
	}
	if c == nil || c.baseURL == "" {
		return []byte("[]"), nil
	}

	c.mu.RLock()
	entry, ok := c.feeds[name]
	c.mu.RUnlock()
	if ok && !c.now().After(entry.expires) {
		return append([]byte(nil), entry.value...), nil
	}

	endpoint, err := url.JoinPath(c.baseURL, name)
	if err != nil {
		return nil, fmt.Errorf("cms: feed endpoint: %w", err)
	}
	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cms: feed %s: %w", name, err)
	}

	c.mu.Lock()
	c.feeds[name] = cacheEntry[[]byte]{value: append([]byte(nil), body...), expires: c.now().Add(c.cacheTTL)}
	c.mu.Unlock()
	return body, nil
}

func (c *Client) fetchSections(ctx context.Context, namespace string) (Page, error) {
	endpoint, err := url.JoinPath(c.baseURL, "sections", namespace)
	if err != nil {
		return Page{}, fmt.Errorf("cms: sections endpoint: %w", err)
	}
	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return Page{}, err
	}
	sections, err := DecodeSections(body)
	if err != nil {
		return Page{}, fmt.Errorf("cms: sections %s: %w", namespace, err)
	}
	return Page{Namespace: namespace, Sections: sections}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("cms: remote status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
}

// DecodeSections reads a section list from a CMS payload. Both a bare array and an
// object with an "items" or "sections" array are accepted; scalar fields may arrive as
// strings or numbers. Entries without an id are skipped.
func DecodeSections(raw []byte) ([]Section, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("invalid json")
	}
	root := gjson.ParseBytes(raw)
	list := root
	if root.IsObject() {
		list = root.Get("items")
		if !list.Exists() {
			list = root.Get("sections")
		}
	}
	if !list.IsArray() {
		return nil, errors.New("no section array")
	}

	out := make([]Section, 0, len(list.Array()))
	list.ForEach(func(_, item gjson.Result) bool {
		s := Section{
			ID:    firstString(item, "id", "key", "slug"),
			Label: firstString(item, "label", "title", "name"),
			Value: firstString(item, "value", "text", "content"),
			URL:   firstString(item, "url", "href", "image"),
		}
		if strings.TrimSpace(s.ID) == "" {
			return true
		}
		out = append(out, s)
		return true
	})
	return out, nil
}

func firstString(item gjson.Result, keys ...string) string {
	for _, k := range keys {
		v := item.Get(k)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if s := v.String(); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (c *Client) cachedPage(key string) (Page, bool) {
	c.mu.RLock()
	entry, ok := c.pages[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return Page{}, false
	}
	return clonePage(entry.value), true
}

func (c *Client) storePage(key string, page Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = cacheEntry[Page]{value: clonePage(page), expires: c.now().Add(c.cacheTTL)}
}

func clonePage(src Page) Page {
	cp := src
	if src.Sections != nil {
		cp.Sections = append([]Section(nil), src.Sections...)
	}
	return cp
}
