// Package module defines the feature contract used by web composition.
package module

import (
	"log/slog"
	"net/http"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/platform/markdown"
	"github.com/louisbranch/frontpage/internal/services/web/apihooks"
	"github.com/louisbranch/frontpage/internal/services/web/platform/pagerender"
)

// Mount describes a module route mount. Prefix is a ServeMux pattern without
// method; localized modules mount under "/{locale}/".
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}

// Dependencies carries the shared runtime every module may use. Modules take
// what they need at construction; none of them reach for globals.
type Dependencies struct {
	Locales  i18n.LocaleConfig
	Renderer pagerender.Renderer
	// Hooks is the API hook facade. It owns the process-wide query cache.
	Hooks *apihooks.Facade
	// API sends requests to the backend. Nil leaves data-backed sections
	// unavailable.
	API      *apiclient.Client
	Markdown markdown.Renderer
	Logger   *slog.Logger
}
