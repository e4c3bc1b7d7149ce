package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/frontpage/internal/platform/branding"
	"github.com/louisbranch/frontpage/internal/services/shared/i18nhttp"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

// LayoutOptions configures the shared page shell.
type LayoutOptions struct {
	Title       string
	Description string
	Page        PageContext
	Toasts      []ToastView
	// Alternates adds hreflang links for every supported locale.
	Alternates bool
	MainClass  string
}

// Layout wraps its children in the document shell with navbar, toasts,
// and footer.
func Layout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		page := opts.Page
		h.raw(`<!doctype html><html`)
		h.attr("lang", page.Lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(branding.ComposePageTitle(opts.Title))
		h.raw(`</title>`)
		if opts.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", opts.Description)
			h.raw(`>`)
		}
		h.raw(`<link rel="stylesheet"`)
		h.attr("href", routepath.StaticAsset("app.css"))
		h.raw(`>`)
		if opts.Alternates {
			for _, locale := range page.Locales.Supported {
				h.raw(`<link rel="alternate"`)
				h.attr("hreflang", locale)
				h.attr("href", i18nhttp.SwapLocalePath(page.Locales, page.CurrentPath, locale))
				h.raw(`>`)
			}
			h.raw(`<link rel="alternate" hreflang="x-default"`)
			h.attr("href", routepath.Root)
			h.raw(`>`)
		}
		h.raw(`</head><body>`)
		h.render(ctx, Navbar(page))
		h.render(ctx, Toasts(page, opts.Toasts))
		h.raw(`<main id="main"`)
		class := "main"
		if opts.MainClass != "" {
			class += " " + opts.MainClass
		}
		h.attr("class", class)
		h.raw(`>`)
		h.children(ctx)
		h.raw(`</main>`)
		h.render(ctx, Footer(page))
		h.raw(`</body></html>`)
		return h.err
	})
}

// MainContent renders only the main element, for HTMX swaps.
func MainContent(page PageContext, toasts []ToastView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.render(ctx, Toasts(page, toasts))
		h.raw(`<main id="main" class="main">`)
		h.children(ctx)
		h.raw(`</main>`)
		return h.err
	})
}

// Navbar renders the brand, section links, and the language switcher.
func Navbar(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<header class="navbar"><a class="navbar__brand"`)
		h.attr("href", page.HomeURL())
		h.raw(`>`)
		h.text(page.AppName)
		h.raw(`</a><nav class="navbar__links"`)
		h.attr("aria-label", T(page.Loc, "core.nav.label"))
		h.raw(`><a`)
		h.attr("href", routepath.LandingAnchor(page.Lang, routepath.FeaturesAnchor))
		h.raw(`>`)
		h.text(T(page.Loc, "core.nav.features"))
		h.raw(`</a><a`)
		h.attr("href", routepath.LandingAnchor(page.Lang, routepath.PricingAnchor))
		h.raw(`>`)
		h.text(T(page.Loc, "core.nav.pricing"))
		h.raw(`</a><a class="navbar__cta"`)
		h.attr("href", page.DashboardURL())
		h.raw(`>`)
		h.text(T(page.Loc, "core.nav.dashboard"))
		h.raw(`</a></nav>`)
		h.render(ctx, LanguageSwitcher(page))
		h.raw(`</header>`)
		return h.err
	})
}

// LanguageSwitcher links the current page in every supported locale.
func LanguageSwitcher(page PageContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<nav class="language-switcher"`)
		h.attr("aria-label", T(page.Loc, "core.nav.language"))
		h.raw(`><ul>`)
		for _, option := range LanguageOptions(page) {
			h.raw(`<li><a`)
			h.attr("href", option.URL)
			h.attr("hreflang", option.Locale)
			h.attr("lang", option.Locale)
			if option.Active {
				h.raw(` aria-current="true" class="is-active"`)
			}
			h.raw(`>`)
			h.text(option.Label)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav>`)
		return h.err
	})
}

// Footer renders the copyright line and legal links.
func Footer(page PageContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<footer class="footer"><p>`)
		h.text(T(page.Loc, "core.footer.copyright", page.Year, page.AppName))
		h.raw(`</p><p class="footer__tagline">`)
		h.text(T(page.Loc, "core.app.tagline"))
		h.raw(`</p><nav class="footer__links"><a href="#privacy">`)
		h.text(T(page.Loc, "core.footer.privacy"))
		h.raw(`</a><a href="#terms">`)
		h.text(T(page.Loc, "core.footer.terms"))
		h.raw(`</a></nav></footer>`)
		return h.err
	})
}

// ToastView is one rendered notification.
type ToastView struct {
	Kind    string
	Message string
}

// Toasts renders the notification region. Each toast can be dismissed
// with its checkbox, no script needed.
func Toasts(page PageContext, toasts []ToastView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(toasts) == 0 {
			return nil
		}
		h := newHTMLWriter(w)
		h.raw(`<div class="toasts" role="status" aria-live="polite"`)
		h.attr("aria-label", T(page.Loc, "core.toast.region"))
		h.raw(`>`)
		for i, toast := range toasts {
			id := "toast-" + strconv.Itoa(i)
			h.raw(`<div`)
			h.attr("class", "toast toast--"+toast.Kind)
			h.attr("data-kind", toast.Kind)
			h.raw(`><p>`)
			h.text(toast.Message)
			h.raw(`</p><input type="checkbox" class="toast__close"`)
			h.attr("id", id)
			h.attr("aria-label", T(page.Loc, "core.toast.dismiss"))
			h.raw(`></div>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
