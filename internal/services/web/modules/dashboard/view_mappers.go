package dashboard

import (
	webtemplates "github.com/louisbranch/frontpage/internal/services/web/templates"
)

const projectDateLayout = "2006-01-02"

func accountView(account *Account) *webtemplates.AccountView {
	if account == nil {
		return nil
	}
	return &webtemplates.AccountView{
		Name:         account.Name,
		PlanName:     account.PlanName,
		ProjectCount: account.ProjectCount,
		ProjectLimit: account.ProjectLimit,
	}
}

func projectViews(projects []Project) []webtemplates.ProjectView {
	views := make([]webtemplates.ProjectView, 0, len(projects))
	for _, project := range projects {
		created := ""
		if !project.CreatedAt.IsZero() {
			created = project.CreatedAt.UTC().Format(projectDateLayout)
		}
		views = append(views, webtemplates.ProjectView{
			ID:        project.ID,
			Name:      project.Name,
			CreatedAt: created,
		})
	}
	return views
}
