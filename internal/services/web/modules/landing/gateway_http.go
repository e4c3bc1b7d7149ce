package landing

import (
	"context"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
)

const (
	plansPath         = "/v1/plans"
	subscriptionsPath = "/v1/newsletter/subscriptions"
)

// NewHTTPGateway builds the production landing gateway over the backend API.
func NewHTTPGateway(client *apiclient.Client) LandingGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return httpGateway{client: client}
}

type httpGateway struct {
	client *apiclient.Client
}

type plansResponse struct {
	Plans []Plan `json:"plans"`
}

type subscribeRequest struct {
	Email  string `json:"email"`
	Locale string `json:"locale"`
}

func (g httpGateway) ListPlans(ctx context.Context, locale string) ([]Plan, error) {
	var resp plansResponse
	if err := g.client.Get(ctx, plansPath, apiclient.LanguageHeader(locale), &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

func (g httpGateway) Subscribe(ctx context.Context, email string, locale string) (Subscription, error) {
	var resp Subscription
	body := subscribeRequest{Email: email, Locale: locale}
	if err := g.client.Post(ctx, subscriptionsPath, body, apiclient.LanguageHeader(locale), &resp); err != nil {
		return Subscription{}, err
	}
	if resp.Email == "" {
		resp.Email = email
	}
	return resp, nil
}
