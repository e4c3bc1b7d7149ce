// Package weberror renders localized error responses for web modules.
package weberror

import (
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/frontpage/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/frontpage/internal/services/web/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/frontpage/internal/services/web/templates"
)

// ShouldRenderErrorPage reports whether status uses the full error page.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteErrorPage writes a localized error page for statusCode.
func WriteErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, renderer pagerender.Renderer) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	page := renderer.PageContext(r)
	err := renderer.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(statusCode, page.Loc),
		StatusCode: statusCode,
		Body:       webtemplates.ErrorState(page, statusCode),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteNotFound writes the localized not-found page.
func WriteNotFound(w http.ResponseWriter, r *http.Request, renderer pagerender.Renderer) {
	WriteErrorPage(w, r, http.StatusNotFound, renderer)
}

// WriteError writes a module-safe localized response for err. Server-side
// failures are logged; the raw error text never reaches the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error, renderer pagerender.Renderer, logger *slog.Logger) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError && logger != nil && r != nil {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", statusCode, "error", err)
	}
	if ShouldRenderErrorPage(statusCode) {
		WriteErrorPage(w, r, statusCode, renderer)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(r, renderer.Locales)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
