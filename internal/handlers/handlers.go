// Package handlers builds the per-view models the site renders and serves them as JSON.
// Every builder degrades to legacy content when the CMS or a feed is unavailable.
package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/i18n"
	"motorsport.az/club-web/internal/nav"
	"motorsport.az/club-web/internal/observability"
)

// Content is the read interface of the CMS; *cms.Client implements it.
type Content interface {
	Sections(ctx context.Context, namespace string) (cms.Page, error)
	Feed(ctx context.Context, name string) ([]byte, error)
	LegalPage(ctx context.Context, slug, lang string) (cms.LegalPage, error)
}

// Site carries the public identity of the club.
type Site struct {
	Name   string
	Origin string
}

// Handlers assembles view models from CMS content.
type Handlers struct {
	content  Content
	resolver *nav.Resolver
	bundle   *i18n.Bundle
	site     Site
	now      func() time.Time
}

// Option customises Handlers.
type Option func(*Handlers)

// WithClock overrides the clock used to derive event status.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		if now != nil {
			h.now = now
		}
	}
}

// New constructs Handlers. A nil resolver uses the default trusted domains.
func New(content Content, resolver *nav.Resolver, bundle *i18n.Bundle, site Site, opts ...Option) *Handlers {
	if resolver == nil {
		resolver = nav.NewResolver(site.Origin, nav.DefaultTrustedDomains)
	}
	h := &Handlers{content: content, resolver: resolver, bundle: bundle, site: site, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// page fetches a namespace, logging and falling back to an empty snapshot on failure so
// that callers render legacy defaults.
func (h *Handlers) page(ctx context.Context, namespace string, degraded *bool) cms.Page {
	page, err := h.content.Sections(ctx, namespace)
	if err != nil {
		observability.FromContext(ctx).Warn("cms sections unavailable, using legacy content",
			zap.String("namespace", namespace),
			zap.Error(err),
		)
		*degraded = true
		return cms.Page{Namespace: namespace}
	}
	return page
}

func (h *Handlers) warnFeed(ctx context.Context, name string, err error, degraded *bool) {
	observability.FromContext(ctx).Warn("feed unavailable",
		zap.String("feed", name),
		zap.Error(err),
	)
	*degraded = true
}

func (h *Handlers) t(lang, key string, args ...string) string {
	if h.bundle == nil {
		return key
	}
	return h.bundle.T(lang, key, args...)
}
