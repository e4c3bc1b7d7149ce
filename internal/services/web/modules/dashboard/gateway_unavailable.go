package dashboard

import (
	"context"

	apperrors "github.com/louisbranch/frontpage/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) GetAccount(context.Context, string) (Account, error) {
	return Account{}, apperrors.E(apperrors.KindUnavailable, "backend api is not configured")
}

func (unavailableGateway) ListProjects(context.Context) ([]Project, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "backend api is not configured")
}

func (unavailableGateway) CreateProject(context.Context, string) (Project, error) {
	return Project{}, apperrors.E(apperrors.KindUnavailable, "backend api is not configured")
}
