package dashboard

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/louisbranch/frontpage/internal/platform/apiclient"
	"github.com/louisbranch/frontpage/internal/services/web/platform/flash"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func parse(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	return doc
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func flashNotices(rr *httptest.ResponseRecorder) []flash.Notice {
	next := httptest.NewRequest(http.MethodGet, "/en/dashboard/", nil)
	for _, cookie := range rr.Result().Cookies() {
		next.AddCookie(cookie)
	}
	return flash.ReadAndClear(httptest.NewRecorder(), next, testDependencies().Renderer.Policy)
}

func TestModuleIDAndPrefix(t *testing.T) {
	t.Parallel()

	m := NewWithGateway(&fakeGateway{}, testDependencies())
	if got := m.ID(); got != "dashboard" {
		t.Fatalf("ID() = %q", got)
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.DashboardPrefix {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, routepath.DashboardPrefix)
	}
}

func TestOverviewRendersShellAndAccount(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{account: Account{Name: "Ada", PlanName: "Team", ProjectCount: 2, ProjectLimit: 25}}
	h, _ := mountedHandler(NewWithGateway(gateway, testDependencies()), "en")

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := parse(t, rr)
	if doc.Find(".dashboard__sidebar").Length() != 1 {
		t.Fatal("missing sidebar")
	}
	if got := doc.Find(`[data-section="overview"]`).AttrOr("aria-current", ""); got != "page" {
		t.Fatalf("overview aria-current = %q", got)
	}
	if got := doc.Find(".overview__welcome").Text(); !strings.Contains(got, "Ada") {
		t.Fatalf("welcome = %q", got)
	}
	if got := doc.Find(".overview__stats").Text(); !strings.Contains(got, "2 of 25") {
		t.Fatalf("stats = %q", got)
	}
	if got := doc.Find(".dashboard__refresh").AttrOr("action", ""); got != "/en/dashboard/refresh" {
		t.Fatalf("refresh action = %q", got)
	}
}

func TestOverviewServesCachedAccount(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{account: Account{Name: "Ada"}}
	h, _ := mountedHandler(NewWithGateway(gateway, testDependencies()), "en")
	serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/", nil))
	serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/overview", nil))

	if accountCalls, _ := gateway.counts(); accountCalls != 1 {
		t.Fatalf("account fetches = %d, want 1", accountCalls)
	}
}

func TestOverviewDegradesWhenAccountFails(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{accountErr: &apiclient.StatusError{StatusCode: http.StatusNotFound}}
	h, _ := mountedHandler(NewWithGateway(gateway, testDependencies()), "en")
	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := parse(t, rr)
	if doc.Find(".dashboard__unavailable").Length() != 1 {
		t.Fatal("missing unavailable notice")
	}
	if got := doc.Find(`.toast[data-kind="error"]`).Length(); got != 1 {
		t.Fatalf("error toasts = %d, want 1", got)
	}
}

func TestProjectsSectionListsProjects(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{projects: []Project{
		{ID: "p1", Name: "Atlas", CreatedAt: time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)},
	}}
	h, _ := mountedHandler(NewWithGateway(gateway, testDependencies()), "fr")
	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/fr/dashboard/projects", nil))

	doc := parse(t, rr)
	if got := doc.Find(`[data-project="p1"] .project__name`).Text(); got != "Atlas" {
		t.Fatalf("project name = %q", got)
	}
	if got := doc.Find(`[data-project="p1"] time`).Text(); got != "2026-01-02" {
		t.Fatalf("created = %q", got)
	}
	if got := doc.Find("form.projects__create").AttrOr("action", ""); got != "/fr/dashboard/projects" {
		t.Fatalf("create action = %q", got)
	}
}

func TestProjectsSectionShowsEmptyState(t *testing.T) {
	t.Parallel()

	h, _ := mountedHandler(NewWithGateway(&fakeGateway{}, testDependencies()), "en")
	doc := parse(t, serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/projects", nil)))
	if doc.Find(".projects__empty").Length() != 1 {
		t.Fatal("missing empty state")
	}
}

func TestSettingsSectionRendersLanguageSwitcher(t *testing.T) {
	t.Parallel()

	h, _ := mountedHandler(NewWithGateway(&fakeGateway{}, testDependencies()), "en")
	doc := parse(t, serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/settings", nil)))
	if got := doc.Find(`.dashboard__content a[hreflang="fr"]`).AttrOr("href", ""); got != "/fr/dashboard/settings" {
		t.Fatalf("fr switcher href = %q", got)
	}
}

func TestUnknownSectionRendersNotFoundInShell(t *testing.T) {
	t.Parallel()

	h, _ := mountedHandler(NewWithGateway(&fakeGateway{}, testDependencies()), "en")
	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/billing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	doc := parse(t, rr)
	if doc.Find(".dashboard__sidebar").Length() != 1 || doc.Find(".dashboard__missing").Length() != 1 {
		t.Fatal("not found was not rendered inside the shell")
	}
}

func TestCreateProjectInvalidatesProjectList(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	h, _ := mountedHandler(NewWithGateway(gateway, testDependencies()), "en")
	serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/projects", nil))

	rr := serve(t, h, postForm("/en/dashboard/projects", url.Values{"name": {" Atlas "}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/en/dashboard/projects" {
		t.Fatalf("Location = %q", got)
	}
	notices := flashNotices(rr)
	if len(notices) != 1 || notices[0].Key != createdKey {
		t.Fatalf("notices = %+v", notices)
	}

	doc := parse(t, serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/projects", nil)))
	if got := doc.Find(`[data-project="p-Atlas"]`).Length(); got != 1 {
		t.Fatalf("created project rows = %d, want 1", got)
	}
	if _, projectCalls := gateway.counts(); projectCalls != 2 {
		t.Fatalf("project fetches = %d, want 2", projectCalls)
	}
}

func TestCreateProjectRejectsBlankName(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	h, _ := mountedHandler(NewWithGateway(gateway, testDependencies()), "en")
	rr := serve(t, h, postForm("/en/dashboard/projects", url.Values{"name": {"  "}}))

	if len(gateway.created) != 0 {
		t.Fatalf("backend called for blank name")
	}
	notices := flashNotices(rr)
	if len(notices) != 1 || notices[0].Key != invalidNameKey || notices[0].Kind != flash.KindError {
		t.Fatalf("notices = %+v", notices)
	}
}

func TestCreateProjectFailureShowsOneErrorToast(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{createErr: &apiclient.StatusError{StatusCode: http.StatusInternalServerError}}
	h, _ := mountedHandler(NewWithGateway(gateway, testDependencies()), "en")
	rr := serve(t, h, postForm("/en/dashboard/projects", url.Values{"name": {"Atlas"}}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	notices := flashNotices(rr)
	if len(notices) != 1 || notices[0].Key != createFailedKey {
		t.Fatalf("notices = %+v", notices)
	}
}

func TestRefreshInvalidatesDashboardQueries(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{account: Account{Name: "Ada"}}
	h, _ := mountedHandler(NewWithGateway(gateway, testDependencies()), "en")
	serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/", nil))
	serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/projects", nil))

	rr := serve(t, h, postForm("/en/dashboard/refresh", url.Values{"section": {"projects"}}))
	if got := rr.Header().Get("Location"); got != "/en/dashboard/projects" {
		t.Fatalf("Location = %q", got)
	}
	notices := flashNotices(rr)
	if len(notices) != 1 || notices[0].Key != refreshedKey {
		t.Fatalf("notices = %+v", notices)
	}

	serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/", nil))
	serve(t, h, httptest.NewRequest(http.MethodGet, "/en/dashboard/projects", nil))
	if accountCalls, projectCalls := gateway.counts(); accountCalls != 2 || projectCalls != 2 {
		t.Fatalf("fetches account=%d projects=%d, want 2/2", accountCalls, projectCalls)
	}
}

func TestRefreshRedirectStaysInsideDashboard(t *testing.T) {
	t.Parallel()

	h, _ := mountedHandler(NewWithGateway(&fakeGateway{}, testDependencies()), "en")
	rr := serve(t, h, postForm("/en/dashboard/refresh", url.Values{"section": {"//evil.example"}}))
	if got := rr.Header().Get("Location"); got != "/en/dashboard/" {
		t.Fatalf("Location = %q, want %q", got, "/en/dashboard/")
	}
}
