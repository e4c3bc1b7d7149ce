package landing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/louisbranch/frontpage/internal/platform/config"
	"github.com/louisbranch/frontpage/internal/platform/markdown"
	"github.com/louisbranch/frontpage/internal/services/web/apihooks"
	apperrors "github.com/louisbranch/frontpage/internal/services/web/platform/errors"
	webtemplates "github.com/louisbranch/frontpage/internal/services/web/templates"
)

const (
	subscribedKey   = "landing.newsletter.subscribed"
	failedKey       = "landing.newsletter.failed"
	invalidEmailKey = "landing.newsletter.invalid_email"

	fallbackCurrency = "USD"
)

// featureIDs lists the feature cards in page order.
var featureIDs = []string{"pipelines", "rollbacks", "insights"}

type staticPlan struct {
	id         string
	priceCents int64
	featured   bool
	features   []string
}

// fallbackPlans is shown when the backend plan list is unavailable.
var fallbackPlans = []staticPlan{
	{id: "starter", priceCents: 0, features: []string{"projects", "history"}},
	{id: "team", priceCents: 2900, featured: true, features: []string{"projects", "rollbacks", "history"}},
	{id: "business", priceCents: 9900, features: []string{"projects", "sso", "support"}},
}

// PlansKey is the query key of the plan list for locale.
func PlansKey(locale string) apihooks.QueryKey {
	return apihooks.Key("plans", locale)
}

type service struct {
	gateway  LandingGateway
	hooks    *apihooks.Facade
	markdown markdown.Renderer
	logger   *slog.Logger
}

func newService(gateway LandingGateway, hooks *apihooks.Facade, md markdown.Renderer, logger *slog.Logger) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if hooks == nil {
		hooks = apihooks.New(nil)
	}
	if md == nil {
		md = markdown.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return service{gateway: gateway, hooks: hooks, markdown: md, logger: logger}
}

// loadPlans returns the backend plans for locale, or the static plans with
// fallback set when the backend cannot answer. Without a configured backend
// the static plans are served quietly.
func (s service) loadPlans(ctx context.Context, locale string, loc webtemplates.Localizer) (plans []Plan, fallback bool) {
	if _, unconfigured := s.gateway.(unavailableGateway); unconfigured {
		return staticPlans(loc), true
	}
	plans, err := apihooks.Query(ctx, s.hooks, PlansKey(locale), func(ctx context.Context) ([]Plan, error) {
		return s.gateway.ListPlans(ctx, locale)
	})
	if err != nil || len(plans) == 0 {
		return staticPlans(loc), true
	}
	return plans, false
}

func staticPlans(loc webtemplates.Localizer) []Plan {
	plans := make([]Plan, 0, len(fallbackPlans))
	for _, p := range fallbackPlans {
		prefix := "landing.pricing.plan." + p.id
		features := make([]string, 0, len(p.features))
		for _, feature := range p.features {
			features = append(features, webtemplates.T(loc, prefix+".feature."+feature))
		}
		plans = append(plans, Plan{
			ID:          p.id,
			Name:        webtemplates.T(loc, prefix+".name"),
			Description: webtemplates.T(loc, prefix+".description"),
			PriceCents:  p.priceCents,
			Currency:    fallbackCurrency,
			Features:    features,
			Featured:    p.featured,
		})
	}
	return plans
}

// features renders the feature cards. Bodies are catalog markdown.
func (s service) features(ctx context.Context, loc webtemplates.Localizer) []webtemplates.FeatureView {
	views := make([]webtemplates.FeatureView, 0, len(featureIDs))
	for _, id := range featureIDs {
		prefix := "landing.features." + id
		body, err := s.markdown.Inline(webtemplates.T(loc, prefix+".body"))
		if err != nil {
			s.logger.WarnContext(ctx, "render feature body", "feature", id, "error", err)
			body = ""
		}
		views = append(views, webtemplates.FeatureView{
			ID:       id,
			Title:    webtemplates.T(loc, prefix+".title"),
			BodyHTML: body,
		})
	}
	return views
}

// subscribe validates email and records the sign-up. The outcome is shown
// as a toast; an invalid address never reaches the backend.
func (s service) subscribe(ctx context.Context, email string, locale string) error {
	email = strings.TrimSpace(email)
	_, err := apihooks.Mutate(ctx, s.hooks, func(ctx context.Context) (Subscription, error) {
		if err := config.ValidateVar(email, "required,email"); err != nil {
			return Subscription{}, apperrors.EK(apperrors.KindInvalidInput, invalidEmailKey, "invalid newsletter email")
		}
		sub, err := s.gateway.Subscribe(ctx, email, locale)
		if err != nil {
			return Subscription{}, apperrors.FromBackend(err, failedKey)
		}
		return sub, nil
	}, apihooks.MutationCallbacks[Subscription]{
		OnSuccess: func(Subscription) apihooks.Toast {
			return apihooks.SuccessToast(subscribedKey)
		},
		OnError: func(err error) apihooks.Toast {
			if key := apperrors.LocalizationKey(err); key != "" {
				return apihooks.ErrorToast(key)
			}
			return apihooks.ErrorToast(failedKey)
		},
	})
	return err
}
