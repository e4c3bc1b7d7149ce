package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/frontpage/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/frontpage/internal/services/web/platform/webctx"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

func testHandlers() handlers {
	deps := testDependencies()
	return newHandlers(newService(&fakeGateway{}, deps.Hooks), modulehandler.NewBase(deps.Renderer, deps.Logger))
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, testHandlers())
}

func TestRegisterRoutesDashboardPathAndMethodContracts(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	registerRoutes(mux, testHandlers())

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{name: "dashboard root", method: http.MethodGet, path: routepath.Dashboard("en"), wantStatus: http.StatusOK},
		{name: "overview section", method: http.MethodGet, path: "/en/dashboard/overview", wantStatus: http.StatusOK},
		{name: "projects section", method: http.MethodGet, path: routepath.DashboardSection("en", routepath.SectionProjects), wantStatus: http.StatusOK},
		{name: "settings head", method: http.MethodHead, path: routepath.DashboardSection("en", routepath.SectionSettings), wantStatus: http.StatusOK},
		{name: "projects delete rejected", method: http.MethodDelete, path: routepath.DashboardSection("en", routepath.SectionProjects), wantStatus: http.StatusMethodNotAllowed, wantAllow: "POST"},
		{name: "refresh get is an unknown section", method: http.MethodGet, path: routepath.DashboardRefresh("en"), wantStatus: http.StatusNotFound},
		{name: "unknown section", method: http.MethodGet, path: "/en/dashboard/billing", wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req = req.WithContext(webctx.WithLocale(req.Context(), "en"))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantAllow != "" && !strings.Contains(rr.Header().Get("Allow"), tc.wantAllow) {
				t.Fatalf("Allow = %q, want it to contain %q", rr.Header().Get("Allow"), tc.wantAllow)
			}
		})
	}
}
