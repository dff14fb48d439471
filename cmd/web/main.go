package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"motorsport.az/club-web/internal/cms"
	"motorsport.az/club-web/internal/config"
	"motorsport.az/club-web/internal/handlers"
	"motorsport.az/club-web/internal/i18n"
	"motorsport.az/club-web/internal/nav"
	"motorsport.az/club-web/internal/observability"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional config file (yaml, toml or json)")
	flag.Parse()

	cfg, err := config.Load(config.WithConfigFile(configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	router, err := newRouter(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("club web listening", zap.Bool("cms", cfg.CMS.BaseURL != ""))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newRouter wires the CMS client, resolver and locale bundle behind the middleware chain.
func newRouter(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	bundle, err := i18n.Default(cfg.Site.DefaultLang, cfg.Site.Languages)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	client := cms.NewClient(cfg.CMS.BaseURL,
		cms.WithHTTPClient(&http.Client{Timeout: cfg.CMS.Timeout}),
		cms.WithLogger(logger.Named("cms")),
		cms.WithCacheTTL(cfg.CMS.CacheTTL),
		cms.WithContentDir(cfg.CMS.ContentDir),
	)
	h := handlers.New(client,
		nav.NewResolver(cfg.Site.Origin, cfg.Site.TrustedDomains),
		bundle,
		handlers.Site{Name: cfg.Site.Name, Origin: cfg.Site.Origin},
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.InjectLogger(logger))
	r.Use(observability.RequestLogger)
	r.Use(observability.Recovery)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	h.Routes(r)
	return r, nil
}
