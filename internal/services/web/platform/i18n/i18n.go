// Package i18n resolves the request localizer for web rendering.
package i18n

import (
	"net/http"
	"strings"

	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/platform/i18n/catalog"
	"github.com/louisbranch/frontpage/internal/services/shared/i18nhttp"
	"github.com/louisbranch/frontpage/internal/services/web/platform/webctx"
	"golang.org/x/text/message"
)

// Localizer formats catalog keys for one locale.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Ensures the embedded catalog is registered before any printer is built.
var _ = catalog.Default()

// ResolveLocale returns the routed locale of r, or the default locale when r
// was not routed under a supported locale.
func ResolveLocale(r *http.Request, cfg i18n.LocaleConfig) string {
	if r != nil {
		if locale := webctx.Locale(r.Context()); locale != "" && cfg.Contains(locale) {
			return locale
		}
	}
	return cfg.Default
}

// ResolveLocalizer returns the localizer and locale for r.
func ResolveLocalizer(r *http.Request, cfg i18n.LocaleConfig) (Localizer, string) {
	locale := ResolveLocale(r, cfg)
	return i18nhttp.Printer(locale), locale
}

// Message localizes key, falling back to fallback when the key has no entry.
func Message(loc Localizer, key string, fallback string) string {
	if loc == nil || strings.TrimSpace(key) == "" {
		return fallback
	}
	value := strings.TrimSpace(loc.Sprintf(key))
	if value == "" || value == key {
		return fallback
	}
	return value
}
