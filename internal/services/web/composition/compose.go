// Package composition wires the module registry into the root handler.
package composition

import (
	"log/slog"
	"net/http"

	webapp "github.com/louisbranch/frontpage/internal/services/web/app"
	"github.com/louisbranch/frontpage/internal/services/web/module"
	"github.com/louisbranch/frontpage/internal/services/web/modules"
	"github.com/louisbranch/frontpage/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/frontpage/internal/services/web/platform/weberror"
)

// ModuleRegistry builds web module sets from composition input.
type ModuleRegistry interface {
	Build(modules.BuildInput) modules.BuildOutput
}

// ComposeInput describes the contracts needed to compose the application mux.
type ComposeInput struct {
	Dependencies        modules.Dependencies
	RequestSchemePolicy requestmeta.SchemePolicy

	Registry ModuleRegistry
}

// ComposeAppHandler builds the web app handler with the registry's modules.
// Unknown paths and unsupported locales get the localized not-found page.
func ComposeAppHandler(input ComposeInput) (http.Handler, error) {
	registry := input.Registry
	if registry == nil {
		registry = modules.NewRegistry()
	}
	deps := input.Dependencies
	deps.Locales = deps.Locales.Normalize()
	if deps.Renderer.Locales.Default == "" {
		deps.Renderer.Locales = deps.Locales
	}

	built := registry.Build(modules.BuildInput{Dependencies: deps})
	reportDegraded(deps.Logger, append(built.Root, built.Localized...))

	renderer := deps.Renderer
	return webapp.Compose(webapp.ComposeInput{
		RootModules:      built.Root,
		LocalizedModules: built.Localized,
		Locales:          deps.Locales,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			weberror.WriteNotFound(w, r, renderer)
		}),
		RequestSchemePolicy: input.RequestSchemePolicy,
	})
}

// reportDegraded logs modules that run on fallbacks because their backend
// is not configured.
func reportDegraded(logger *slog.Logger, list []modules.Module) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, m := range list {
		reporter, ok := m.(module.HealthReporter)
		if ok && !reporter.Healthy() {
			logger.Warn("module running degraded", "module", m.ID())
		}
	}
}
