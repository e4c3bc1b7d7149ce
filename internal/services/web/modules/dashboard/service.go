package dashboard

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/louisbranch/frontpage/internal/platform/config"
	"github.com/louisbranch/frontpage/internal/services/web/apihooks"
	apperrors "github.com/louisbranch/frontpage/internal/services/web/platform/errors"
)

const (
	createdKey      = "dashboard.projects.created"
	createFailedKey = "dashboard.projects.create_failed"
	invalidNameKey  = "dashboard.projects.invalid_name"
	refreshedKey    = "dashboard.refreshed"

	maxProjectNameLength = 80
)

// AccountKey is the query key of the account summary for locale.
func AccountKey(locale string) apihooks.QueryKey {
	return apihooks.Key("account", locale)
}

// ProjectsKey is the query key of the project list.
func ProjectsKey() apihooks.QueryKey {
	return apihooks.Key("projects")
}

type service struct {
	gateway DashboardGateway
	hooks   *apihooks.Facade
}

func newService(gateway DashboardGateway, hooks *apihooks.Facade) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if hooks == nil {
		hooks = apihooks.New(nil)
	}
	return service{gateway: gateway, hooks: hooks}
}

// loadAccount returns the cached account summary. The pointer is shared by
// every caller until the entry is invalidated.
func (s service) loadAccount(ctx context.Context, locale string) (*Account, error) {
	return apihooks.Query(ctx, s.hooks, AccountKey(locale), func(ctx context.Context) (*Account, error) {
		account, err := s.gateway.GetAccount(ctx, locale)
		if err != nil {
			return nil, err
		}
		return &account, nil
	})
}

func (s service) listProjects(ctx context.Context) ([]Project, error) {
	return apihooks.Query(ctx, s.hooks, ProjectsKey(), func(ctx context.Context) ([]Project, error) {
		projects, err := s.gateway.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		if projects == nil {
			projects = []Project{}
		}
		return projects, nil
	})
}

// createProject adds a project. On success the project list and every
// account summary are invalidated since the usage count changed.
func (s service) createProject(ctx context.Context, name string) (Project, error) {
	name = strings.TrimSpace(name)
	return apihooks.Mutate(ctx, s.hooks, func(ctx context.Context) (Project, error) {
		if err := config.ValidateVar(name, "required,max="+strconv.Itoa(maxProjectNameLength)); err != nil {
			return Project{}, apperrors.EK(apperrors.KindInvalidInput, invalidNameKey, "invalid project name")
		}
		project, err := s.gateway.CreateProject(ctx, name)
		if err != nil {
			return Project{}, apperrors.FromBackend(err, createFailedKey)
		}
		return project, nil
	}, apihooks.MutationCallbacks[Project]{
		OnSuccess: func(Project) apihooks.Toast {
			return apihooks.SuccessToast(createdKey)
		},
		OnError: func(err error) apihooks.Toast {
			if key := apperrors.LocalizationKey(err); key != "" {
				return apihooks.ErrorToast(key)
			}
			return apihooks.ErrorToast(createFailedKey)
		},
		Invalidate: []apihooks.QueryKey{ProjectsKey(), apihooks.Key("account")},
	})
}

// refresh drops every cached dashboard query so the next render refetches.
func (s service) refresh(ctx context.Context) error {
	client := s.hooks.Client()
	err := errors.Join(
		client.Invalidate(ctx, apihooks.Key("account")),
		client.Invalidate(ctx, ProjectsKey()),
	)
	if err != nil {
		s.hooks.Notify(ctx, apihooks.ErrorToast(apihooks.QueryFailedKey))
		return err
	}
	s.hooks.Notify(ctx, apihooks.SuccessToast(refreshedKey))
	return nil
}
