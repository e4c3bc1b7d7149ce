// Package routepath stores canonical HTTP paths and mux patterns.
package routepath

import "net/url"

const (
	Root         = "/"
	Health       = "/up"
	StaticPrefix = "/static/"

	// LocaleParam is the path wildcard holding the locale segment.
	LocaleParam = "locale"

	RootPattern       = "/{$}"
	BareLocalePattern = "/{locale}"
	LocalePrefix      = "/{locale}/"

	LandingPattern    = "/{locale}/{$}"
	NewsletterPattern = "/{locale}/newsletter"

	DashboardPrefix          = "/{locale}/dashboard/"
	DashboardRootPattern     = "/{locale}/dashboard/{$}"
	DashboardRestPattern     = "/{locale}/dashboard/{rest...}"
	DashboardProjectsPattern = "/{locale}/dashboard/projects"
	DashboardRefreshPattern  = "/{locale}/dashboard/refresh"

	NewsletterAnchor = "newsletter"
	PricingAnchor    = "pricing"
	FeaturesAnchor   = "features"
)

// Dashboard sections.
const (
	SectionOverview = "overview"
	SectionProjects = "projects"
	SectionSettings = "settings"
)

// Landing returns the landing page path for locale.
func Landing(locale string) string {
	return "/" + url.PathEscape(locale) + "/"
}

// LandingAnchor returns the landing page path scrolled to anchor.
func LandingAnchor(locale, anchor string) string {
	return Landing(locale) + "#" + anchor
}

// Newsletter returns the newsletter form action for locale.
func Newsletter(locale string) string {
	return Landing(locale) + "newsletter"
}

// Dashboard returns the dashboard root for locale.
func Dashboard(locale string) string {
	return Landing(locale) + "dashboard/"
}

// DashboardSection returns the path of a dashboard section. The overview
// lives at the dashboard root.
func DashboardSection(locale, section string) string {
	if section == "" || section == SectionOverview {
		return Dashboard(locale)
	}
	return Dashboard(locale) + url.PathEscape(section)
}

// DashboardRefresh returns the manual refresh action for locale.
func DashboardRefresh(locale string) string {
	return Dashboard(locale) + "refresh"
}

// StaticAsset returns the path of an embedded static file.
func StaticAsset(name string) string {
	return StaticPrefix + name
}
