package landing

import (
	"context"

	apperrors "github.com/louisbranch/frontpage/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) ListPlans(context.Context, string) ([]Plan, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "backend api is not configured")
}

func (unavailableGateway) Subscribe(context.Context, string, string) (Subscription, error) {
	return Subscription{}, apperrors.E(apperrors.KindUnavailable, "backend api is not configured")
}
