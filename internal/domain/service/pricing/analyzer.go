package pricing

import (
	"github.com/justt1n/driffle-tool/internal/domain/entity"
)

// Analyzer picks the comparison target out of a competition snapshot.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze filters blacklisted sellers out and selects the lowest-priced
// surviving offer as the comparison target (first minimum wins on ties).
// SellersBelowMin is computed from the raw list on purpose: a blacklisted
// seller dumping below the floor is still worth reporting.
func (a *Analyzer) Analyze(rule *entity.PricingRule, offers []entity.CompetitorOffer) entity.Analysis {
	result := entity.Analysis{
		Offers: offers,
	}

	if rule.MinPrice != nil {
		for _, offer := range offers {
			if offer.Price < *rule.MinPrice {
				result.SellersBelowMin = append(result.SellersBelowMin, offer)
			}
		}
	}

	var filtered []entity.CompetitorOffer

	for _, offer := range offers {
		if rule.Blacklisted(offer.SellerName) {
			continue
		}

		filtered = append(filtered, offer)
	}

	if len(filtered) == 0 {
		return result
	}

	lowest := filtered[0]

	for _, offer := range filtered[1:] {
		if offer.Price < lowest.Price {
			lowest = offer
		}
	}

	result.CompetitorName = &lowest.SellerName
	result.CompetitivePrice = &lowest.Price

	return result
}
