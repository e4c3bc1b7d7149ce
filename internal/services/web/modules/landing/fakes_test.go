package landing

import (
	"context"
	"net/http"
	"sync"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/platform/markdown"
	"github.com/louisbranch/frontpage/internal/services/web/apihooks"
	"github.com/louisbranch/frontpage/internal/services/web/module"
	"github.com/louisbranch/frontpage/internal/services/web/platform/pagerender"
	"github.com/louisbranch/frontpage/internal/services/web/platform/toast"
	"github.com/louisbranch/frontpage/internal/services/web/platform/webctx"
)

// fakeGateway implements LandingGateway with configurable results.
type fakeGateway struct {
	mu           sync.Mutex
	plans        []Plan
	plansErr     error
	subscribeErr error
	planCalls    int
	subscribed   []string
}

var _ LandingGateway = (*fakeGateway)(nil)

func (f *fakeGateway) ListPlans(context.Context, string) ([]Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planCalls++
	if f.plansErr != nil {
		return nil, f.plansErr
	}
	return f.plans, nil
}

func (f *fakeGateway) Subscribe(_ context.Context, email string, _ string) (Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscribeErr != nil {
		return Subscription{}, f.subscribeErr
	}
	f.subscribed = append(f.subscribed, email)
	return Subscription{Email: email, Status: "pending"}, nil
}

var testLocales = i18n.LocaleConfig{Supported: []string{"en", "fr"}, Default: "en"}

func testDependencies() module.Dependencies {
	return module.Dependencies{
		Locales:  testLocales,
		Renderer: pagerender.Renderer{Locales: testLocales},
		Hooks:    apihooks.New(apiclient.NewQueryClient()),
		Markdown: markdown.New(),
	}
}

// mountedHandler mounts m and wraps it the way composition does for one
// locale.
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
