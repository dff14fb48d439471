// Package observability provides the structured logger and the request logging and
// recovery middleware shared by the club binaries.
package observability

import (
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"motorsport.az/club-web/internal/httpx"
)

// InjectLogger stores logger on the request context.
func InjectLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = noopLogger
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), logger)))
		})
	}
}

// RequestLogger logs request completion with method, route, status and latency. The
// request-scoped logger is available downstream through FromContext.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := FromContext(ctx).With(
			zap.String("request_id", middleware.GetReqID(ctx)),
			zap.String("method", logMethod(r.Method)),
			zap.String("path", clean(r.URL.Path, maxPathRunes)),
		)
		if ip := clientIP(r); ip != "" {
			logger = logger.With(zap.String("remote_ip", ip))
		}
		r = r.WithContext(WithLogger(ctx, logger))

		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		fields := []zap.Field{
			zap.String("route", routePattern(r)),
			zap.Int("status", recorder.status),
			zap.Duration("latency", time.Since(start)),
			zap.Int64("bytes", recorder.bytes),
		}
		switch {
		case recorder.status >= http.StatusInternalServerError:
			logger.Error("request completed", fields...)
		case recorder.status >= http.StatusBadRequest:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	})
}

// Recovery captures panics, logs the stack and answers with a JSON 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				FromContext(r.Context()).Error("panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				httpx.WriteError(r.Context(), w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

const (
	maxPathRunes = 180
	maxIPRunes   = 64
	// unmatchedRoute replaces the raw path of requests no route served, so scanners
	// probing random URLs do not fan out the route field.
	unmatchedRoute = "unmatched"
)

// loggedMethods are the methods the site routes; anything else is logged as OTHER.
var loggedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodOptions: {},
}

func logMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if _, ok := loggedMethods[method]; ok {
		return method
	}
	return "OTHER"
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" && pattern != "/*" {
			return clean(pattern, maxPathRunes)
		}
	}
	return unmatchedRoute
}

// clean drops control characters and caps value at limit runes.
func clean(value string, limit int) string {
	out := make([]rune, 0, len(value))
	for _, r := range value {
		if unicode.IsControl(r) {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, r)
	}
	return string(out)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return clean(strings.TrimSpace(parts[len(parts)-1]), maxIPRunes)
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return clean(addr, maxIPRunes)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += int64(n)
	return n, err
}
