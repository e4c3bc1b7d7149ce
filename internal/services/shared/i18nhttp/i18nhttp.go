// Package i18nhttp builds locale-prefixed URLs and language switcher options.
package i18nhttp

import (
	"net/url"
	"strings"

	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Locale string
	Label  string
	URL    string
	Active bool
}

// Printer returns a message printer for locale.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(i18n.ParseTag(locale))
}

// LocalePath returns the root path of locale, e.g. "/fr/".
func LocalePath(locale string) string {
	return "/" + locale + "/"
}

// SwapLocalePath replaces the leading locale segment of path with locale.
// Paths without a supported leading segment map to the locale root.
func SwapLocalePath(cfg i18n.LocaleConfig, path, locale string) string {
	trimmed := strings.TrimPrefix(path, "/")
	first, rest, hasRest := strings.Cut(trimmed, "/")
	if !cfg.Contains(first) || !hasRest {
		return LocalePath(locale)
	}
	return LocalePath(locale) + rest
}

// BuildLanguageOptions lists every supported locale linked to the current
// page in that locale. labelFor may return "" to fall back to the language's
// own name.
func BuildLanguageOptions(cfg i18n.LocaleConfig, active, currentPath, rawQuery string, labelFor func(locale string) string) []LanguageOption {
	options := make([]LanguageOption, 0, len(cfg.Supported))
	for _, locale := range cfg.Supported {
		label := ""
		if labelFor != nil {
			label = strings.TrimSpace(labelFor(locale))
		}
		if label == "" {
			label = SelfName(locale)
		}
		target := &url.URL{Path: SwapLocalePath(cfg, currentPath, locale), RawQuery: rawQuery}
		options = append(options, LanguageOption{
			Locale: locale,
			Label:  label,
			URL:    target.String(),
			Active: locale == active,
		})
	}
	return options
}

// ActiveLanguageLabel returns the label of the active option.
func ActiveLanguageLabel(options []LanguageOption) string {
	for _, option := range options {
		if option.Active {
			return option.Label
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0].Label
}

// LanguageKeyLabel returns the catalog key naming locale's language.
func LanguageKeyLabel(locale string) string {
	base, _ := i18n.ParseTag(locale).Base()
	return "core.language." + base.String()
}

// SelfName returns a language's name in that language, e.g. "français".
func SelfName(locale string) string {
	tag := i18n.ParseTag(locale)
	if tag == language.Und {
		return locale
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return locale
}
