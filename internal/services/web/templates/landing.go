package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

// FeatureView is one feature card. BodyHTML is already sanitized.
type FeatureView struct {
	ID       string
	Title    string
	BodyHTML string
}

// PlanView is one pricing card.
type PlanView struct {
	ID          string
	Name        string
	Description string
	Price       string
	Features    []string
	Featured    bool
}

// LandingView holds the data-bearing sections of the landing page.
type LandingView struct {
	Features        []FeatureView
	Plans           []PlanView
	PricingFallback bool
}

// LandingPage composes the landing sections in page order.
func LandingPage(page PageContext, view LandingView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.render(ctx, Hero(page))
		h.render(ctx, Features(page, view.Features))
		h.render(ctx, Pricing(page, view.Plans, view.PricingFallback))
		h.render(ctx, Newsletter(page))
		return h.err
	})
}

// Hero renders the banner with the primary calls to action.
func Hero(page PageContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="hero" id="top"><p class="hero__eyebrow">`)
		h.text(T(page.Loc, "landing.hero.eyebrow"))
		h.raw(`</p><h1 class="hero__title">`)
		h.text(T(page.Loc, "landing.hero.title"))
		h.raw(`</h1><p class="hero__subtitle">`)
		h.text(T(page.Loc, "landing.hero.subtitle"))
		h.raw(`</p><div class="hero__actions"><a class="button button--primary"`)
		h.attr("href", page.DashboardURL())
		h.raw(`>`)
		h.text(T(page.Loc, "landing.hero.cta_primary"))
		h.raw(`</a><a class="button"`)
		h.attr("href", routepath.LandingAnchor(page.Lang, routepath.PricingAnchor))
		h.raw(`>`)
		h.text(T(page.Loc, "landing.hero.cta_secondary"))
		h.raw(`</a></div></section>`)
		return h.err
	})
}

// Features renders the feature grid.
func Features(page PageContext, features []FeatureView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="features"`)
		h.attr("id", routepath.FeaturesAnchor)
		h.raw(`><h2>`)
		h.text(T(page.Loc, "landing.features.title"))
		h.raw(`</h2><p class="section__subtitle">`)
		h.text(T(page.Loc, "landing.features.subtitle"))
		h.raw(`</p><div class="features__grid">`)
		for _, feature := range features {
			h.raw(`<article class="feature"`)
			h.attr("data-feature", feature.ID)
			h.raw(`><h3>`)
			h.text(feature.Title)
			h.raw(`</h3><p>`)
			h.raw(feature.BodyHTML)
			h.raw(`</p></article>`)
		}
		h.raw(`</div></section>`)
		return h.err
	})
}

// Pricing renders plan cards. fallback marks the static price list.
func Pricing(page PageContext, plans []PlanView, fallback bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="pricing"`)
		h.attr("id", routepath.PricingAnchor)
		h.raw(`><h2>`)
		h.text(T(page.Loc, "landing.pricing.title"))
		h.raw(`</h2><p class="section__subtitle">`)
		h.text(T(page.Loc, "landing.pricing.subtitle"))
		h.raw(`</p>`)
		if fallback {
			h.raw(`<p class="pricing__note">`)
			h.text(T(page.Loc, "landing.pricing.fallback_note"))
			h.raw(`</p>`)
		}
		h.raw(`<div class="pricing__grid">`)
		for _, plan := range plans {
			class := "plan"
			if plan.Featured {
				class += " plan--featured"
			}
			h.raw(`<article`)
			h.attr("class", class)
			h.attr("data-plan", plan.ID)
			h.raw(`>`)
			if plan.Featured {
				h.raw(`<p class="plan__badge">`)
				h.text(T(page.Loc, "landing.pricing.featured"))
				h.raw(`</p>`)
			}
			h.raw(`<h3>`)
			h.text(plan.Name)
			h.raw(`</h3><p class="plan__description">`)
			h.text(plan.Description)
			h.raw(`</p><p class="plan__price"><span class="plan__amount">`)
			h.text(plan.Price)
			h.raw(`</span> <span class="plan__period">`)
			h.text(T(page.Loc, "landing.pricing.per_month"))
			h.raw(`</span></p><ul class="plan__features">`)
			for _, feature := range plan.Features {
				h.raw(`<li>`)
				h.text(feature)
				h.raw(`</li>`)
			}
			h.raw(`</ul><a class="button button--primary"`)
			h.attr("href", page.DashboardURL())
			h.raw(`>`)
			h.text(T(page.Loc, "landing.pricing.cta", plan.Name))
			h.raw(`</a></article>`)
		}
		h.raw(`</div></section>`)
		return h.err
	})
}

// Newsletter renders the subscription form.
func Newsletter(page PageContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="newsletter"`)
		h.attr("id", routepath.NewsletterAnchor)
		h.raw(`><h2>`)
		h.text(T(page.Loc, "landing.newsletter.title"))
		h.raw(`</h2><p>`)
		h.text(T(page.Loc, "landing.newsletter.body"))
		h.raw(`</p><form class="newsletter__form" method="post"`)
		h.attr("action", routepath.Newsletter(page.Lang))
		h.raw(`><label for="newsletter-email">`)
		h.text(T(page.Loc, "landing.newsletter.email_label"))
		h.raw(`</label><input id="newsletter-email" name="email" type="email" required autocomplete="email"`)
		h.attr("placeholder", T(page.Loc, "landing.newsletter.email_placeholder"))
		h.raw(`><button type="submit" class="button button--primary">`)
		h.text(T(page.Loc, "landing.newsletter.submit"))
		h.raw(`</button></form></section>`)
		return h.err
	})
}
