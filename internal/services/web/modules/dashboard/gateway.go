package dashboard

import (
	"context"
	"time"
)

// Account summarizes the signed-in workspace.
type Account struct {
	Name         string `json:"name"`
	PlanName     string `json:"plan_name"`
	ProjectCount int    `json:"project_count"`
	ProjectLimit int    `json:"project_limit"`
}

// Project is one workspace project.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardGateway reads and writes dashboard data on the backend.
type DashboardGateway interface {
	GetAccount(ctx context.Context, locale string) (Account, error)
	ListProjects(ctx context.Context) ([]Project, error)
	CreateProject(ctx context.Context, name string) (Project, error)
}
