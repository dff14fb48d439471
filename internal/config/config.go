// Package config loads runtime configuration for the club binaries from defaults, an
// optional YAML/TOML/JSON file and CLUB_WEB_* environment variables, in increasing
// precedence.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"motorsport.az/club-web/internal/nav"
)

// EnvPrefix prefixes every environment variable, e.g. CLUB_WEB_SERVER_ADDR.
const EnvPrefix = "CLUB_WEB"

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultCMSTimeout      = 5 * time.Second
	defaultCacheTTL        = 5 * time.Minute
	defaultContentDir      = "content"
	defaultOrigin          = "https://motorsport.az"
	defaultSiteName        = "Azərbaycan Motorsport Klubu"
	defaultLang            = "az"
	defaultLogLevel        = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server ServerConfig
	CMS    CMSConfig
	Site   SiteConfig
	Log    LogConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// CMSConfig points at the content API. An empty BaseURL serves legacy content only.
type CMSConfig struct {
	BaseURL    string
	Timeout    time.Duration
	CacheTTL   time.Duration
	ContentDir string
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Name           string
	Origin         string
	TrustedDomains []string
	DefaultLang    string
	Languages      []string
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	configFile   string
	envMap       map[string]string
	useSystemEnv bool
}

// WithConfigFile reads path before applying environment overrides. The format follows
// the file extension.
func WithConfigFile(path string) Option {
	return func(o *loaderOptions) {
		o.configFile = strings.TrimSpace(path)
	}
}

// WithEnvMap injects explicit environment values. They take precedence over the process
// environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

var defaults = map[string]any{
	"server.addr":             defaultAddr,
	"server.read_timeout":     defaultReadTimeout,
	"server.write_timeout":    defaultWriteTimeout,
	"server.shutdown_timeout": defaultShutdownTimeout,
	"cms.base_url":            "",
	"cms.timeout":             defaultCMSTimeout,
	"cms.cache_ttl":           defaultCacheTTL,
	"cms.content_dir":         defaultContentDir,
	"site.name":               defaultSiteName,
	"site.origin":             defaultOrigin,
	"site.trusted_domains":    nav.DefaultTrustedDomains,
	"site.default_lang":       defaultLang,
	"site.languages":          []string{"az", "en", "ru"},
	"log.level":               defaultLogLevel,
}

// EnvName returns the environment variable overriding key, e.g. "cms.base_url" becomes
// CLUB_WEB_CMS_BASE_URL.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load resolves the configuration and validates it.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{useSystemEnv: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", options.configFile, err)
		}
	}
	for key := range defaults {
		name := EnvName(key)
		if value, ok := options.envMap[name]; ok {
			v.Set(key, value)
			continue
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(name); ok {
				v.Set(key, value)
			}
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:            strings.TrimSpace(v.GetString("server.addr")),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		CMS: CMSConfig{
			BaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("cms.base_url")), "/"),
			Timeout:    v.GetDuration("cms.timeout"),
			CacheTTL:   v.GetDuration("cms.cache_ttl"),
			ContentDir: strings.TrimSpace(v.GetString("cms.content_dir")),
		},
		Site: SiteConfig{
			Name:           strings.TrimSpace(v.GetString("site.name")),
			Origin:         strings.TrimRight(strings.TrimSpace(v.GetString("site.origin")), "/"),
			TrustedDomains: stringList(v.Get("site.trusted_domains")),
			DefaultLang:    strings.ToLower(strings.TrimSpace(v.GetString("site.default_lang"))),
			Languages:      lower(stringList(v.Get("site.languages"))),
		},
		Log: LogConfig{
			Level: strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		},
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Addr == "" {
		missing = append(missing, "Server.Addr")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if cfg.CMS.BaseURL != "" && !absoluteHTTP(cfg.CMS.BaseURL) {
		missing = append(missing, "CMS.BaseURL")
	}
	if cfg.CMS.CacheTTL <= 0 {
		missing = append(missing, "CMS.CacheTTL")
	}
	if !absoluteHTTP(cfg.Site.Origin) {
		missing = append(missing, "Site.Origin")
	}
	if len(cfg.Site.Languages) == 0 {
		missing = append(missing, "Site.Languages")
	}
	if !contains(cfg.Site.Languages, cfg.Site.DefaultLang) {
		missing = append(missing, "Site.DefaultLang")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

// stringList accepts a YAML list or a comma separated string.
func stringList(raw any) []string {
	var items []string
	if s, ok := raw.(string); ok {
		items = strings.Split(s, ",")
	} else {
		items = cast.ToStringSlice(raw)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func lower(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func absoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
