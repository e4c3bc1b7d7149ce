package templates

import (
	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/shared/i18nhttp"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

// PageContext carries request-wide facts every component may need.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	Locales      i18n.LocaleConfig
	AppName      string
	Year         int
}

// HomeURL returns the landing page of the active locale.
func (p PageContext) HomeURL() string {
	return routepath.Landing(p.Lang)
}

// DashboardURL returns the dashboard root of the active locale.
func (p PageContext) DashboardURL() string {
	return routepath.Dashboard(p.Lang)
}

// LanguageOptions returns the switcher entries for the current page.
func LanguageOptions(page PageContext) []i18nhttp.LanguageOption {
	return i18nhttp.BuildLanguageOptions(page.Locales, page.Lang, page.CurrentPath, page.CurrentQuery, func(locale string) string {
		key := i18nhttp.LanguageKeyLabel(locale)
		if label := T(page.Loc, key); label != key {
			return label
		}
		return ""
	})
}
