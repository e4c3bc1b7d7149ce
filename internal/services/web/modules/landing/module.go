// Package landing serves the localized marketing page and the newsletter
// sign-up.
package landing

import (
	"net/http"

	"github.com/louisbranch/frontpage/internal/services/web/module"
	"github.com/louisbranch/frontpage/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

// Module provides the landing page routes.
type Module struct {
	gateway LandingGateway
	deps    module.Dependencies
}

// New returns a landing module backed by the backend API in deps.
func New(deps module.Dependencies) Module {
	return NewWithGateway(NewHTTPGateway(deps.API), deps)
}

// NewWithGateway returns a landing module with an explicit gateway.
func NewWithGateway(gateway LandingGateway, deps module.Dependencies) Module {
	return Module{gateway: gateway, deps: deps}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "landing" }

// Healthy reports whether plans come from the backend rather than the static
// fallback.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires landing route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.gateway, m.deps.Hooks, m.deps.Markdown, m.deps.Logger)
	h := newHandlers(svc, modulehandler.NewBase(m.deps.Renderer, m.deps.Logger))
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.LocalePrefix, Handler: mux}, nil
}
