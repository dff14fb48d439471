package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"motorsport.az/club-web/internal/httpx"
	"motorsport.az/club-web/internal/i18n"
	"motorsport.az/club-web/internal/markup"
	"motorsport.az/club-web/internal/nav"
	"motorsport.az/club-web/internal/observability"
)

type ctxKey string

const ctxKeyLang ctxKey = "lang"

const maxPreviewBytes = 256 << 10

// Locale resolves the response language from ?lang= and Accept-Language.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Language")
			if bundle == nil {
				next.ServeHTTP(w, r)
				return
			}
			lang := bundle.Resolve(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyLang, lang)))
		})
	}
}

// Lang returns the language chosen by Locale, or "".
func Lang(ctx context.Context) string {
	lang, _ := ctx.Value(ctxKeyLang).(string)
	return lang
}

// Routes mounts the JSON endpoints on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(Locale(h.bundle))
		r.Get("/api/view", h.ServeView)
		r.Get("/api/view/{view}", h.ServeView)
		r.Get("/api/resolve", h.ServeResolve)
		r.Post("/api/markup/preview", h.ServeMarkupPreview)
	})
}

// ServeView answers with the PageData of the requested view.
func (h *Handlers) ServeView(w http.ResponseWriter, r *http.Request) {
	view := nav.Home
	if raw := chi.URLParam(r, "view"); raw != "" {
		v, ok := nav.ParseView(raw)
		if !ok {
			httpx.WriteError(r.Context(), w, httpx.NewError("unknown_view", "unknown view "+raw, http.StatusNotFound))
			return
		}
		view = v
	}
	data, err := h.Build(r.Context(), view, Lang(r.Context()))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownView) {
			status = http.StatusNotFound
		}
		observability.FromContext(r.Context()).Error("build view failed", zap.String("view", string(view)), zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("view_failed", err.Error(), status))
		return
	}
	if data.Degraded {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=60")
	}
	httpx.WriteJSON(w, http.StatusOK, data)
}

type resolveResponse struct {
	Kind string `json:"kind"`
	View string `json:"view,omitempty"`
	Href string `json:"href,omitempty"`
}

// ServeResolve resolves ?target= with the optional ?label= hint and ?default= view.
func (h *Handlers) ServeResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	def := nav.Home
	if v, ok := nav.ParseView(q.Get("default")); ok {
		def = v
	}
	res := h.resolver.Resolve(q.Get("target"), q.Get("label"), def)
	var out resolveResponse
	switch res.Kind {
	case nav.KindInternal:
		out = resolveResponse{Kind: "internal", View: string(res.View), Href: res.View.Path()}
	case nav.KindExternal:
		out = resolveResponse{Kind: "external", Href: q.Get("target")}
	default:
		out.Kind = "none"
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// ServeMarkupPreview converts a BBCode request body to sanitized HTML for the editor
// preview pane.
func (h *Handlers) ServeMarkupPreview(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPreviewBytes+1))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("bad_request", "cannot read body", http.StatusBadRequest))
		return
	}
	if len(body) > maxPreviewBytes {
		httpx.WriteError(r.Context(), w, httpx.NewError("too_large", "preview body too large", http.StatusRequestEntityTooLarge))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"html": markup.SafeHTML(string(body))})
}
