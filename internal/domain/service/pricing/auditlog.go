package pricing

import (
	"fmt"
	"strings"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
)

// The note is the only artifact a human reviews, so every decision branch
// writes one. Keep the first line the verdict and the rest supporting data.

func noteHold(rule *entity.PricingRule, target float64, analysis *entity.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hold at %.3f: difference from target %.3f is within rounding/randomization noise.",
		rule.CurrentPrice, target)
	writeCompetitionNote(&b, rule, analysis)

	return b.String()
}

func noteKeepPrice(rule *entity.PricingRule, target float64, analysis *entity.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hold at %.3f: already below target %.3f and decrease-only mode never raises the price.",
		rule.CurrentPrice, target)
	writeCompetitionNote(&b, rule, analysis)

	return b.String()
}

func noteNoCompare(rule *entity.PricingRule, target float64) string {
	return fmt.Sprintf("Update %.3f -> %.3f: no-compare mode pins the price to the configured floor.",
		rule.CurrentPrice, target)
}

func noteFollow(rule *entity.PricingRule, target entity.CompareTarget, analysis *entity.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Update %.3f -> %.3f following %s.", rule.CurrentPrice, target.Price, target.Name)

	if rule.AppliedAdj != 0 {
		fmt.Fprintf(&b, " Applied adjustment: -%.3f.", rule.AppliedAdj)
	}

	writeCompetitionNote(&b, rule, analysis)

	return b.String()
}

func noteBelowFloor(rule *entity.PricingRule, target float64, analysis *entity.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Refused: computed price %.3f is below the floor %.3f.", target, *rule.MinPrice)
	writeCompetitionNote(&b, rule, analysis)

	return b.String()
}

func noteNoFloor(rule *entity.PricingRule, target float64, analysis *entity.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Refused: no price floor configured for %s; repricing without a floor is unsafe (target was %.3f).",
		rule.ProductName, target)
	writeCompetitionNote(&b, rule, analysis)

	return b.String()
}

func writeCompetitionNote(b *strings.Builder, rule *entity.PricingRule, analysis *entity.Analysis) {
	if analysis == nil || len(analysis.Offers) == 0 {
		return
	}

	b.WriteString("\nCompetitors:")

	for _, offer := range analysis.Offers {
		fmt.Fprintf(b, "\n- %s: %.3f", offer.SellerName, offer.Price)

		switch {
		case rule.Blacklisted(offer.SellerName):
			b.WriteString(" (blacklisted)")
		case !offer.IsEligible && offer.Note != "":
			fmt.Fprintf(b, " (%s)", offer.Note)
		case !offer.IsEligible:
			b.WriteString(" (ineligible)")
		}
	}

	if len(analysis.SellersBelowMin) > 0 && rule.MinPrice != nil {
		fmt.Fprintf(b, "\nBelow floor %.3f:", *rule.MinPrice)

		for _, offer := range analysis.SellersBelowMin {
			fmt.Fprintf(b, " %s (%.3f)", offer.SellerName, offer.Price)
		}
	}
}
