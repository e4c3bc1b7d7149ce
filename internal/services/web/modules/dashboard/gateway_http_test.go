package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
	apperrors "github.com/louisbranch/frontpage/internal/services/web/platform/errors"
)

func newTestClient(t *testing.T, h http.Handler) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := apiclient.DefaultConfig()
	cfg.BaseURL = srv.URL
	client, err := apiclient.NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestHTTPGatewayGetAccount(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != accountPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept-Language"); got != "fr" {
			t.Errorf("Accept-Language = %q", got)
		}
		_, _ = w.Write([]byte(`{"name":"Ada","plan_name":"Équipe","project_count":3,"project_limit":25}`))
	}))

	account, err := NewHTTPGateway(client).GetAccount(context.Background(), "fr")
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if account.Name != "Ada" || account.PlanName != "Équipe" || account.ProjectCount != 3 || account.ProjectLimit != 25 {
		t.Fatalf("account = %+v", account)
	}
}

func TestHTTPGatewayListAndCreateProjects(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != projectsPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"projects":[{"id":"p1","name":"Atlas","created_at":"2026-01-02T15:00:00Z"}]}`))
		case http.MethodPost:
			var body createProjectRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"p2","name":"` + body.Name + `"}`))
		}
	}))
	gateway := NewHTTPGateway(client)

	projects, err := gateway.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p1" || projects[0].CreatedAt.Year() != 2026 {
		t.Fatalf("projects = %+v", projects)
	}

	project, err := gateway.CreateProject(context.Background(), "Borealis")
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if project.ID != "p2" || project.Name != "Borealis" {
		t.Fatalf("project = %+v", project)
	}
}

func TestNilClientGatewayIsUnavailable(t *testing.T) {
	t.Parallel()

	_, err := NewHTTPGateway(nil).ListProjects(context.Background())
	var appErr apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindUnavailable {
		t.Fatalf("ListProjects() error = %v, want unavailable", err)
	}
	if NewWithGateway(NewHTTPGateway(nil), testDependencies()).Healthy() {
		t.Fatal("Healthy() = true for unavailable gateway")
	}
}
