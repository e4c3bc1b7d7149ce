package dashboard

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/frontpage/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/frontpage/internal/services/web/platform/pagerender"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/frontpage/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderSection(w, r, routepath.SectionOverview)
}

func (h handlers) handleSection(w http.ResponseWriter, r *http.Request) {
	section := strings.Trim(r.PathValue("rest"), "/")
	h.renderSection(w, r, section)
}

func (h handlers) renderSection(w http.ResponseWriter, r *http.Request, section string) {
	page := h.PageContext(r)
	status := http.StatusOK
	var body templ.Component
	switch section {
	case routepath.SectionOverview:
		account, err := h.service.loadAccount(r.Context(), page.Lang)
		if err != nil {
			account = nil
		}
		body = webtemplates.DashboardOverview(page, accountView(account))
	case routepath.SectionProjects:
		projects, err := h.service.listProjects(r.Context())
		body = webtemplates.DashboardProjects(page, projectViews(projects), err == nil)
	case routepath.SectionSettings:
		body = webtemplates.DashboardSettings(page)
	default:
		status = http.StatusNotFound
		section = ""
		body = webtemplates.DashboardSectionNotFound(page)
	}
	h.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.T(page.Loc, "dashboard.meta.title"),
		StatusCode: status,
		MainClass:  "main--dashboard",
		Body:       webtemplates.DashboardPage(page, section, body),
	})
}

func (h handlers) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	locale := h.Locale(r)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, err)
		return
	}
	// The outcome is reported as a toast on the projects page.
	_, _ = h.service.createProject(r.Context(), r.PostFormValue("name"))
	h.RedirectAfterPost(w, r, routepath.DashboardSection(locale, routepath.SectionProjects))
}

func (h handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	locale := h.Locale(r)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := h.service.refresh(r.Context()); err != nil {
		h.Logger().WarnContext(r.Context(), "dashboard refresh failed", "error", err)
	}
	h.RedirectAfterPost(w, r, routepath.DashboardSection(locale, knownSection(r.PostFormValue("section"))))
}

// knownSection keeps redirects inside the dashboard.
func knownSection(section string) string {
	switch section {
	case routepath.SectionProjects, routepath.SectionSettings:
		return section
	default:
		return routepath.SectionOverview
	}
}
