package landing

import "context"

// Plan is one pricing plan as the backend describes it. Display strings are
// already localized for the requested locale.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Features    []string `json:"features"`
	Featured    bool     `json:"featured"`
}

// Subscription is the backend answer to a newsletter sign-up.
type Subscription struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// LandingGateway reads plans and records newsletter sign-ups.
type LandingGateway interface {
	ListPlans(ctx context.Context, locale string) ([]Plan, error)
	Subscribe(ctx context.Context, email string, locale string) (Subscription, error)
}
