// Package i18n holds the process-wide locale configuration.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/louisbranch/frontpage/internal/platform/config"
	"golang.org/x/text/language"
)

// LocaleConfig lists the locales served under /{locale}/ and the one the
// unlocalized root redirects to. It is read once at startup.
type LocaleConfig struct {
	Supported []string `env:"FRONTPAGE_LOCALES" envSeparator:"," envDefault:"en,fr" validate:"min=1,dive,required,bcp47_language_tag"`
	Default   string   `env:"FRONTPAGE_DEFAULT_LOCALE" envDefault:"en" validate:"required,bcp47_language_tag"`
}

// ErrDefaultNotSupported reports a default locale missing from Supported.
var ErrDefaultNotSupported = errors.New("default locale is not a supported locale")

const supportedDefaultTag = "supported_default"

func init() {
	config.RegisterStructRule(validateSupportedDefault, LocaleConfig{})
}

func validateSupportedDefault(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(LocaleConfig)
	if !ok || strings.TrimSpace(cfg.Default) == "" {
		return
	}
	if !cfg.Contains(cfg.Default) {
		sl.ReportError(cfg.Default, "FRONTPAGE_DEFAULT_LOCALE", "Default", supportedDefaultTag, "")
	}
}

// Normalize trims entries and drops blanks and duplicates, keeping order.
func (c LocaleConfig) Normalize() LocaleConfig {
	out := LocaleConfig{Default: strings.TrimSpace(c.Default)}
	seen := make(map[string]bool, len(c.Supported))
	for _, locale := range c.Supported {
		locale = strings.TrimSpace(locale)
		if locale == "" || seen[locale] {
			continue
		}
		seen[locale] = true
		out.Supported = append(out.Supported, locale)
	}
	return out
}

// Validate checks that at least one locale is configured, every entry is a
// BCP 47 tag, and the default is one of the supported locales.
func (c LocaleConfig) Validate() error {
	if err := config.Validate(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == supportedDefaultTag {
					return fmt.Errorf("%w: %q not in %v", ErrDefaultNotSupported, c.Default, c.Supported)
				}
			}
		}
		return err
	}
	return nil
}

// Contains reports whether locale is exactly one of the supported segments.
func (c LocaleConfig) Contains(locale string) bool {
	for _, supported := range c.Supported {
		if supported == locale {
			return true
		}
	}
	return false
}

// Tags returns the parsed tags of the supported locales, in order.
func (c LocaleConfig) Tags() []language.Tag {
	tags := make([]language.Tag, 0, len(c.Supported))
	for _, locale := range c.Supported {
		tags = append(tags, ParseTag(locale))
	}
	return tags
}

// DefaultTag returns the parsed default locale.
func (c LocaleConfig) DefaultTag() language.Tag {
	return ParseTag(c.Default)
}

// ParseTag parses a locale identifier, returning language.Und when invalid.
func ParseTag(locale string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return language.Und
	}
	return tag
}
