package landing

import (
	"net/http"

	"github.com/louisbranch/frontpage/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.LandingPattern, h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.NewsletterPattern, h.handleSubscribe)
	mux.HandleFunc(routepath.LocalePrefix, h.WriteNotFound)
}
