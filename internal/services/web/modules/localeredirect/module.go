// Package localeredirect sends the unlocalized root to the default locale.
package localeredirect

import (
	"net/http"

	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/web/module"
	"github.com/louisbranch/frontpage/internal/services/web/platform/httpx"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

// Module redirects "/" to "/{default}/".
type Module struct {
	cfg i18n.LocaleConfig
}

// New returns a redirect module for cfg. cfg is expected to be validated.
func New(cfg i18n.LocaleConfig) Module {
	return Module{cfg: cfg.Normalize()}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "localeredirect" }

// Target returns the localized root for the default locale of cfg. It never
// depends on the request.
func Target(cfg i18n.LocaleConfig) string {
	return routepath.Landing(cfg.Normalize().Default)
}

// Mount wires the root redirect. Only the exact root path matches, so a
// localized path is never redirected again.
func (m Module) Mount() (module.Mount, error) {
	target := Target(m.cfg)
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.RootPattern, func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteRedirect(w, r, target, http.StatusFound)
	})
	return module.Mount{Prefix: routepath.RootPattern, Handler: mux}, nil
}
