package landing

import (
	"net/http"

	"github.com/louisbranch/frontpage/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/frontpage/internal/services/web/platform/pagerender"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/frontpage/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := h.PageContext(r)
	plans, fallback := h.service.loadPlans(r.Context(), page.Lang, page.Loc)
	view := webtemplates.LandingView{
		Features:        h.service.features(r.Context(), page.Loc),
		Plans:           planViews(plans, page.Loc),
		PricingFallback: fallback,
	}
	h.WritePage(w, r, pagerender.Page{
		Title:       webtemplates.T(page.Loc, "landing.meta.title"),
		Description: webtemplates.T(page.Loc, "landing.meta.description"),
		Alternates:  true,
		MainClass:   "main--landing",
		Body:        webtemplates.LandingPage(page, view),
	})
}

func (h handlers) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	locale := h.Locale(r)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, err)
		return
	}
	// The outcome is reported as a toast on the landing page.
	_ = h.service.subscribe(r.Context(), r.PostFormValue("email"), locale)
	h.RedirectAfterPost(w, r, routepath.LandingAnchor(locale, routepath.NewsletterAnchor))
}
