package dashboard

import (
	"net/http"

	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardRootPattern, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardRestPattern, h.handleSection)
	mux.HandleFunc(http.MethodPost+" "+routepath.DashboardProjectsPattern, h.handleCreateProject)
	mux.HandleFunc(http.MethodPost+" "+routepath.DashboardRefreshPattern, h.handleRefresh)
}
