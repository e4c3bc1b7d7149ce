package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

var dashboardSections = []struct {
	id  string
	key string
}{
	{id: routepath.SectionOverview, key: "dashboard.nav.overview"},
	{id: routepath.SectionProjects, key: "dashboard.nav.projects"},
	{id: routepath.SectionSettings, key: "dashboard.nav.settings"},
}

// DashboardShell wraps a dashboard section with the sidebar and refresh action.
func DashboardShell(page PageContext, active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<div class="dashboard"><aside class="dashboard__sidebar"><nav`)
		h.attr("aria-label", T(page.Loc, "dashboard.nav.label"))
		h.raw(`><ul>`)
		for _, section := range dashboardSections {
			h.raw(`<li><a`)
			h.attr("href", routepath.DashboardSection(page.Lang, section.id))
			h.attr("data-section", section.id)
			if section.id == active {
				h.raw(` aria-current="page" class="is-active"`)
			}
			h.raw(`>`)
			h.text(T(page.Loc, section.key))
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav><form method="post" class="dashboard__refresh"`)
		h.attr("action", routepath.DashboardRefresh(page.Lang))
		h.raw(`><input type="hidden" name="section"`)
		h.attr("value", active)
		h.raw(`><button type="submit" class="button">`)
		h.text(T(page.Loc, "dashboard.refresh"))
		h.raw(`</button></form></aside><section class="dashboard__content">`)
		h.children(ctx)
		h.raw(`</section></div>`)
		return h.err
	})
}

// AccountView summarizes the account on the overview.
type AccountView struct {
	Name         string
	PlanName     string
	ProjectCount int
	ProjectLimit int
}

// DashboardOverview renders the account summary, or a notice when the
// account could not be loaded.
func DashboardOverview(page PageContext, account *AccountView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<h1>`)
		h.text(T(page.Loc, "dashboard.overview.title"))
		h.raw(`</h1>`)
		if account == nil {
			h.raw(`<p class="dashboard__unavailable">`)
			h.text(T(page.Loc, "dashboard.overview.unavailable"))
			h.raw(`</p>`)
			return h.err
		}
		h.raw(`<p class="overview__welcome">`)
		h.text(T(page.Loc, "dashboard.overview.welcome", account.Name))
		h.raw(`</p><dl class="overview__stats"><div><dt>`)
		h.text(T(page.Loc, "dashboard.overview.plan", account.PlanName))
		h.raw(`</dt></div><div><dt>`)
		h.text(T(page.Loc, "dashboard.overview.usage", account.ProjectCount, account.ProjectLimit))
		h.raw(`</dt><dd><progress`)
		h.attr("value", strconv.Itoa(account.ProjectCount))
		h.attr("max", strconv.Itoa(max(account.ProjectLimit, 1)))
		h.raw(`></progress></dd></div></dl>`)
		return h.err
	})
}

// ProjectView is one project row.
type ProjectView struct {
	ID        string
	Name      string
	CreatedAt string
}

// DashboardProjects renders the project list and the create form. A nil
// list means the projects could not be loaded.
func DashboardProjects(page PageContext, projects []ProjectView, available bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<h1>`)
		h.text(T(page.Loc, "dashboard.projects.title"))
		h.raw(`</h1>`)
		switch {
		case !available:
			h.raw(`<p class="dashboard__unavailable">`)
			h.text(T(page.Loc, "dashboard.projects.unavailable"))
			h.raw(`</p>`)
		case len(projects) == 0:
			h.raw(`<p class="projects__empty">`)
			h.text(T(page.Loc, "dashboard.projects.empty"))
			h.raw(`</p>`)
		default:
			h.raw(`<ul class="projects">`)
			for _, project := range projects {
				h.raw(`<li class="project"`)
				h.attr("data-project", project.ID)
				h.raw(`><span class="project__name">`)
				h.text(project.Name)
				h.raw(`</span> <time class="project__created">`)
				h.text(project.CreatedAt)
				h.raw(`</time></li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`<form method="post" class="projects__create"`)
		h.attr("action", routepath.DashboardSection(page.Lang, routepath.SectionProjects))
		h.raw(`><label for="project-name">`)
		h.text(T(page.Loc, "dashboard.projects.name_label"))
		h.raw(`</label><input id="project-name" name="name" type="text" required maxlength="80"><button type="submit" class="button button--primary">`)
		h.text(T(page.Loc, "dashboard.projects.create"))
		h.raw(`</button></form>`)
		return h.err
	})
}

// DashboardSettings shows the language preference for the dashboard.
func DashboardSettings(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<h1>`)
		h.text(T(page.Loc, "dashboard.settings.title"))
		h.raw(`</h1><h2>`)
		h.text(T(page.Loc, "dashboard.settings.language_label"))
		h.raw(`</h2><p>`)
		h.text(T(page.Loc, "dashboard.settings.language_help"))
		h.raw(`</p>`)
		h.render(ctx, LanguageSwitcher(page))
		h.raw(`<p class="settings__default">`)
		defaultLabel := page.Locales.Default
		for _, option := range LanguageOptions(page) {
			if option.Locale == page.Locales.Default {
				defaultLabel = option.Label
			}
		}
		h.text(T(page.Loc, "dashboard.settings.default_locale", defaultLabel))
		h.raw(`</p>`)
		return h.err
	})
}

// DashboardSectionNotFound renders the in-shell message for unknown sections.
func DashboardSectionNotFound(page PageContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<p class="dashboard__missing">`)
		h.text(T(page.Loc, "dashboard.section.not_found"))
		h.raw(`</p>`)
		return h.err
	})
}

// DashboardPage renders section inside the dashboard shell.
func DashboardPage(page PageContext, active string, section templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return DashboardShell(page, active).Render(templ.WithChildren(ctx, section), w)
	})
}
