package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

func errorKeys(statusCode int) (string, string) {
	switch {
	case statusCode == http.StatusNotFound:
		return "core.error.not_found.title", "core.error.not_found.body"
	case statusCode == http.StatusServiceUnavailable:
		return "core.error.unavailable.title", "core.error.unavailable.body"
	case statusCode >= 400 && statusCode < 500:
		return "core.error.invalid.title", "core.error.invalid.body"
	default:
		return "core.error.internal.title", "core.error.internal.body"
	}
}

// ErrorPageTitle returns the browser title for an error status.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	title, _ := errorKeys(statusCode)
	return T(loc, title)
}

// ErrorState renders the body of an error page.
func ErrorState(page PageContext, statusCode int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		title, body := errorKeys(statusCode)
		h := newHTMLWriter(w)
		h.raw(`<section class="error-state"`)
		h.attr("data-status", strconv.Itoa(statusCode))
		h.raw(`><h1>`)
		h.text(T(page.Loc, title))
		h.raw(`</h1><p>`)
		h.text(T(page.Loc, body))
		h.raw(`</p><a class="button"`)
		h.attr("href", page.HomeURL())
		h.raw(`>`)
		h.text(T(page.Loc, "core.error.back_home"))
		h.raw(`</a></section>`)
		return h.err
	})
}
