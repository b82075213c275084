package pricing

import (
	"math"
	"math/rand"
	"sync"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
)

// Calculator turns a candidate base price into the final listing price:
// randomized undercut, min/max clamp, ceiling rounding. The random source is
// injected so decisions replay deterministically under a fixed seed.
type Calculator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewCalculator(src rand.Source) *Calculator {
	return &Calculator{rand: rand.New(src)}
}

// FinalPrice computes the price to set for the rule given a candidate base
// price (usually the lowest eligible competitor). A nil candidate falls back
// to the rule's upper bound; when that is also absent the result is the
// unbounded sentinel +Inf, which the engine must refuse before it reaches a
// decision. The adjustment actually drawn is recorded on rule.AppliedAdj
// (reset to 0 on entry) for the audit note.
func (c *Calculator) FinalPrice(rule *entity.PricingRule, candidate *float64) float64 {
	rule.AppliedAdj = 0

	price := math.Inf(1)

	switch {
	case candidate != nil:
		price = *candidate
	case rule.MaxPrice != nil:
		price = *rule.MaxPrice
	}

	if math.IsInf(price, 1) {
		return price
	}

	if rule.MinPriceAdjustment != nil && rule.MaxPriceAdjustment != nil {
		// The band may be supplied in either order.
		low := math.Min(*rule.MinPriceAdjustment, *rule.MaxPriceAdjustment)
		high := math.Max(*rule.MinPriceAdjustment, *rule.MaxPriceAdjustment)

		adj := low + c.draw()*(high-low)

		rule.AppliedAdj = adj
		price -= adj
	}

	if rule.MinPrice != nil {
		price = math.Max(price, *rule.MinPrice)
	}

	if rule.MaxPrice != nil {
		price = math.Min(price, *rule.MaxPrice)
	}

	if rule.PriceRounding != nil {
		price = RoundUp(price, *rule.PriceRounding)
	}

	return price
}

func (c *Calculator) draw() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rand.Float64()
}

// RoundUp rounds price up (ceiling, never down) at the given number of
// decimal places. A listing must never round below its computed floor.
func RoundUp(price float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	scaled := price * pow

	// Absorb float artifacts like 5.00*100 = 500.0000000000001 before the
	// ceiling makes them a whole cent.
	if nearest := math.Round(scaled); math.Abs(scaled-nearest) < 1e-9 {
		scaled = nearest
	}

	return math.Ceil(scaled) / pow
}
