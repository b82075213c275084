package pricing

import (
	"math"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
)

// Significant reports whether the difference between two prices is larger
// than what rounding granularity plus the rule's own randomization band can
// produce on their own. Updates below this threshold would just oscillate.
func Significant(priceA, priceB float64, rule *entity.PricingRule) bool {
	step := 0.01
	if rule.PriceRounding != nil {
		step = math.Pow(10, -float64(*rule.PriceRounding))
	}

	var noise float64
	if rule.MinPriceAdjustment != nil && rule.MaxPriceAdjustment != nil {
		noise = math.Abs(*rule.MaxPriceAdjustment - *rule.MinPriceAdjustment)
	}

	// At minimum a one-rounding-unit change must still be detected.
	threshold := math.Max(noise+step/2, step*1.5)

	return math.Abs(priceA-priceB) > threshold
}
