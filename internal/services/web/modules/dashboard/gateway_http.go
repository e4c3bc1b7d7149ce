package dashboard

import (
	"context"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
)

const (
	accountPath  = "/v1/account"
	projectsPath = "/v1/projects"
)

// NewHTTPGateway builds the production dashboard gateway over the backend API.
func NewHTTPGateway(client *apiclient.Client) DashboardGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return httpGateway{client: client}
}

type httpGateway struct {
	client *apiclient.Client
}

type projectsResponse struct {
	Projects []Project `json:"projects"`
}

type createProjectRequest struct {
	Name string `json:"name"`
}

func (g httpGateway) GetAccount(ctx context.Context, locale string) (Account, error) {
	var account Account
	if err := g.client.Get(ctx, accountPath, apiclient.LanguageHeader(locale), &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

func (g httpGateway) ListProjects(ctx context.Context) ([]Project, error) {
	var resp projectsResponse
	if err := g.client.Get(ctx, projectsPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (g httpGateway) CreateProject(ctx context.Context, name string) (Project, error) {
	var project Project
	if err := g.client.Post(ctx, projectsPath, createProjectRequest{Name: name}, nil, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}
