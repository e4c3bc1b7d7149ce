package dashboard

import (
	"context"
	"net/http"
	"sync"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/web/apihooks"
	"github.com/louisbranch/frontpage/internal/services/web/module"
	"github.com/louisbranch/frontpage/internal/services/web/platform/pagerender"
	"github.com/louisbranch/frontpage/internal/services/web/platform/toast"
	"github.com/louisbranch/frontpage/internal/services/web/platform/webctx"
)

// fakeGateway implements DashboardGateway with configurable results and
// call counters.
type fakeGateway struct {
	mu           sync.Mutex
	account      Account
	accountErr   error
	projects     []Project
	projectsErr  error
	createErr    error
	accountCalls int
	projectCalls int
	created      []string
}

var _ DashboardGateway = (*fakeGateway)(nil)

func (f *fakeGateway) GetAccount(context.Context, string) (Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	if f.accountErr != nil {
		return Account{}, f.accountErr
	}
	return f.account, nil
}

func (f *fakeGateway) ListProjects(context.Context) ([]Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projectCalls++
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	return append([]Project(nil), f.projects...), nil
}

func (f *fakeGateway) CreateProject(_ context.Context, name string) (Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return Project{}, f.createErr
	}
	f.created = append(f.created, name)
	project := Project{ID: "p-" + name, Name: name}
	f.projects = append(f.projects, project)
	return project, nil
}

func (f *fakeGateway) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accountCalls, f.projectCalls
}

var testLocales = i18n.LocaleConfig{Supported: []string{"en", "fr"}, Default: "en"}

func testDependencies() module.Dependencies {
	return module.Dependencies{
		Locales:  testLocales,
		Renderer: pagerender.Renderer{Locales: testLocales},
		Hooks:    apihooks.New(apiclient.NewQueryClient()),
	}
}

func mountedHandler(m Module, locale string) (http.Handler, error) {
	mount, err := m.Mount()
	if err != nil {
		return nil, err
	}
	inner := toast.Middleware()(mount.Handler)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner.ServeHTTP(w, r.WithContext(webctx.WithLocale(r.Context(), locale)))
	}), nil
}
