// Package dashboard serves the dashboard shell and its sections.
package dashboard

import (
	"net/http"

	"github.com/louisbranch/frontpage/internal/services/web/module"
	"github.com/louisbranch/frontpage/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

// Module provides dashboard routes.
type Module struct {
	gateway DashboardGateway
	deps    module.Dependencies
}

// New returns a dashboard module backed by the backend API in deps.
func New(deps module.Dependencies) Module {
	return NewWithGateway(NewHTTPGateway(deps.API), deps)
}

// NewWithGateway returns a dashboard module with an explicit gateway.
func NewWithGateway(gateway DashboardGateway, deps module.Dependencies) Module {
	return Module{gateway: gateway, deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Healthy reports whether the dashboard module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.gateway, m.deps.Hooks)
	h := newHandlers(svc, modulehandler.NewBase(m.deps.Renderer, m.deps.Logger))
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
