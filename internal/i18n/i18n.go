// Package i18n holds the UI string catalogues and picks the response language.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embedded embed.FS

// Bundle maps language → key → text.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported []string
	matcher   language.Matcher
}

// Default loads the catalogues shipped with the binary.
func Default(fallback string, supported []string) (*Bundle, error) {
	return Load(embedded, "locales", fallback, supported)
}

// Load reads <dir>/<lang>.json from fsys for every supported language. Only the fallback
// catalogue is required.
func Load(fsys fs.FS, dir, fallback string, supported []string) (*Bundle, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		fallback = "az"
	}
	if len(supported) == 0 {
		supported = []string{fallback}
	}

	b := &Bundle{dict: map[string]map[string]string{}, fallback: fallback}
	tags := []language.Tag{language.Make(fallback)}
	b.supported = append(b.supported, fallback)
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || l == fallback {
			continue
		}
		b.supported = append(b.supported, l)
		tags = append(tags, language.Make(l))
	}
	b.matcher = language.NewMatcher(tags)

	for _, l := range b.supported {
		raw, err := fs.ReadFile(fsys, path.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	return b, nil
}

// Supported lists the configured languages, fallback first.
func (b *Bundle) Supported() []string {
	return append([]string(nil), b.supported...)
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// T returns the text for key in lang, falling back to the default language and finally
// to key itself. "{name}" placeholders are filled from args given as name, value pairs.
func (b *Bundle) T(lang, key string, args ...string) string {
	text := key
	if m, ok := b.dict[lang]; ok && m[key] != "" {
		text = m[key]
	} else if m, ok := b.dict[b.fallback]; ok && m[key] != "" {
		text = m[key]
	}
	for i := 0; i+1 < len(args); i += 2 {
		text = strings.ReplaceAll(text, "{"+args[i]+"}", args[i+1])
	}
	return text
}

// Resolve picks the best supported language for an explicit choice (for example a ?lang=
// parameter) and an Accept-Language header, in that order.
func (b *Bundle) Resolve(explicit, acceptLang string) string {
	if explicit = strings.ToLower(strings.TrimSpace(explicit)); explicit != "" {
		if base, _ := language.Make(explicit).Base(); b.isSupported(base.String()) {
			return base.String()
		}
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, index, confidence := b.matcher.Match(prefs...)
	if confidence == language.No {
		return b.fallback
	}
	return b.supported[index]
}

func (b *Bundle) isSupported(lang string) bool {
	for _, l := range b.supported {
		if l == lang {
			return true
		}
	}
	return false
}
