package landing

import (
	"strings"

	webtemplates "github.com/louisbranch/frontpage/internal/services/web/templates"
	"golang.org/x/text/currency"
)

func planViews(plans []Plan, loc webtemplates.Localizer) []webtemplates.PlanView {
	views := make([]webtemplates.PlanView, 0, len(plans))
	for _, plan := range plans {
		if strings.TrimSpace(plan.ID) == "" {
			continue
		}
		views = append(views, webtemplates.PlanView{
			ID:          plan.ID,
			Name:        plan.Name,
			Description: plan.Description,
			Price:       formatPrice(loc, plan.PriceCents, plan.Currency),
			Features:    plan.Features,
			Featured:    plan.Featured,
		})
	}
	return views
}

// formatPrice renders cents in the currency's symbol using the locale's
// number format. Unknown currency codes fall back to USD.
func formatPrice(loc webtemplates.Localizer, cents int64, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		unit = currency.USD
	}
	amount := unit.Amount(float64(cents) / 100)
	if loc == nil {
		return webtemplates.T(nil, "%v", currency.Symbol(amount))
	}
	return loc.Sprintf("%v", currency.Symbol(amount))
}
