package modules

import (
	"github.com/louisbranch/frontpage/internal/services/web/modules/dashboard"
	"github.com/louisbranch/frontpage/internal/services/web/modules/landing"
	"github.com/louisbranch/frontpage/internal/services/web/modules/localeredirect"
)

// BuildInput carries what the registry needs to construct modules.
type BuildInput struct {
	Dependencies Dependencies
}

// BuildOutput groups modules by where they mount.
type BuildOutput struct {
	Root      []Module
	Localized []Module
}

// Registry builds the module sets served by the web app.
type Registry struct{}

// NewRegistry returns the default module registry.
func NewRegistry() Registry {
	return Registry{}
}

// Build returns the root and localized module sets.
func (Registry) Build(input BuildInput) BuildOutput {
	deps := input.Dependencies
	return BuildOutput{
		Root: []Module{
			localeredirect.New(deps.Locales),
		},
		Localized: []Module{
			landing.New(deps),
			dashboard.New(deps),
		},
	}
}
