// Package modulehandler provides a composable base for localized web module
// handlers.
//
// Landing and dashboard handlers share locale resolution, page rendering,
// error handling, and redirect-after-post. Modules embed Base rather than
// duplicating that scaffold.
package modulehandler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/frontpage/internal/services/web/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/web/platform/pagerender"
	"github.com/louisbranch/frontpage/internal/services/web/platform/toast"
	"github.com/louisbranch/frontpage/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/frontpage/internal/services/web/templates"
)

// Base carries the shared rendering facts for module handlers.
type Base struct {
	renderer pagerender.Renderer
	logger   *slog.Logger
}

// NewBase builds a handler base.
func NewBase(renderer pagerender.Renderer, logger *slog.Logger) Base {
	if logger == nil {
		logger = slog.Default()
	}
	return Base{renderer: renderer, logger: logger}
}

// Locale returns the locale the request was routed under.
func (b Base) Locale(r *http.Request) string {
	return webi18n.ResolveLocale(r, b.renderer.Locales)
}

// PageContext resolves the template facts for r.
func (b Base) PageContext(r *http.Request) webtemplates.PageContext {
	return b.renderer.PageContext(r)
}

// Logger returns the handler logger.
func (b Base) Logger() *slog.Logger {
	return b.logger
}

// WritePage renders body inside the page layout.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := b.renderer.WritePage(w, r, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteComponent renders body with the default status and no description.
func (b Base) WriteComponent(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	b.WritePage(w, r, pagerender.Page{Title: title, Body: body})
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteError(w, r, err, b.renderer, b.logger)
}

// WriteNotFound renders a 404 error page in the layout.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, b.renderer)
}

// RedirectAfterPost sends a See Other to location, carrying the toasts the
// request collected into the next page.
func (b Base) RedirectAfterPost(w http.ResponseWriter, r *http.Request, location string) {
	toast.RedirectAfterPost(w, r, b.renderer.Policy, location)
}
