// Package pagerender centralizes page rendering for web modules.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/frontpage/internal/platform/branding"
	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/web/platform/flash"
	"github.com/louisbranch/frontpage/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/frontpage/internal/services/web/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/frontpage/internal/services/web/platform/toast"
	webtemplates "github.com/louisbranch/frontpage/internal/services/web/templates"
)

// Renderer writes pages inside the shared layout.
type Renderer struct {
	Locales i18n.LocaleConfig
	Policy  requestmeta.SchemePolicy
	// Now defaults to time.Now.
	Now func() time.Time
}

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Title       string
	Description string
	StatusCode  int
	// Alternates adds hreflang links for every supported locale.
	Alternates bool
	MainClass  string
	Body       templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// PageContext resolves the request-wide template facts for r.
func (rd Renderer) PageContext(r *http.Request) webtemplates.PageContext {
	loc, locale := webi18n.ResolveLocalizer(r, rd.Locales)
	page := webtemplates.PageContext{
		Lang:    locale,
		Loc:     loc,
		Locales: rd.Locales,
		AppName: branding.AppName,
		Year:    rd.now().Year(),
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	return page
}

// WritePage renders page. Flash notices from a previous redirect and toasts
// collected during this request are shown once. HTMX requests receive only
// the main content.
func (rd Renderer) WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	pageCtx := rd.PageContext(r)
	toasts := rd.resolveToasts(w, r, pageCtx.Loc)
	ctx := templ.WithChildren(requestContext(r), body)

	var shell templ.Component
	if httpx.IsHTMXRequest(r) {
		shell = webtemplates.MainContent(pageCtx, toasts)
	} else {
		shell = webtemplates.Layout(webtemplates.LayoutOptions{
			Title:       page.Title,
			Description: page.Description,
			Page:        pageCtx,
			Toasts:      toasts,
			Alternates:  page.Alternates,
			MainClass:   page.MainClass,
		})
	}

	var buf bytes.Buffer
	if err := shell.Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func (rd Renderer) resolveToasts(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer) []webtemplates.ToastView {
	notices := flash.ReadAndClear(w, r, rd.Policy)
	if r != nil {
		notices = append(notices, toast.Drain(r.Context())...)
	}
	if len(notices) == 0 {
		return nil
	}
	out := make([]webtemplates.ToastView, 0, len(notices))
	for _, notice := range notices {
		message := webi18n.Message(loc, notice.Key, strings.TrimSpace(notice.Key))
		if message == "" {
			continue
		}
		out = append(out, webtemplates.ToastView{Kind: string(notice.Kind), Message: message})
	}
	return out
}

func (rd Renderer) now() time.Time {
	if rd.Now != nil {
		return rd.Now()
	}
	return time.Now()
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
