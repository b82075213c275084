package entity

import (
	"strings"
	"time"

	"github.com/justt1n/driffle-tool/internal/domain/value"
)

// PricingRule is one hydrated spreadsheet row: the seller's repricing policy
// for a single offer. It is loaded fresh each round, consumed by exactly one
// decision cycle and then discarded; nothing in it survives across rounds.
type PricingRule struct {
	RowIndex int

	ProductName    string
	ProductURL     string // seller's "currently selling" URL, offer id is its last segment
	ProductCompare string // product id whose competition page is compared against

	CompareMode value.CompareMode

	// Randomized undercut band, either order; both or none.
	MinPriceAdjustment *float64
	MaxPriceAdjustment *float64

	// Decimal places for ceiling rounding; nil = no rounding.
	PriceRounding *int

	// Price bounds hydrated from the linked sheet. MinPrice doubles as the
	// price floor below which the engine refuses to go.
	MinPrice *float64
	MaxPrice *float64

	// Seller names whose offers are never used as a comparison target.
	Blacklist []string

	// Pause after the row is processed, seconds.
	Relax int

	// Scratch state written during a decision cycle; reset by the engine
	// before every evaluation and reported back inside the Decision.
	CurrentPrice float64
	OfferID      string
	OfferType    string
	AppliedAdj   float64
}

// ResetScratch clears per-cycle state. Rules are not reused, but the engine
// does not rely on that.
func (r *PricingRule) ResetScratch() {
	r.CurrentPrice = 0
	r.OfferID = ""
	r.OfferType = ""
	r.AppliedAdj = 0
}

// Blacklisted reports whether the seller name matches the blacklist,
// case-insensitively.
func (r *PricingRule) Blacklisted(sellerName string) bool {
	for _, blocked := range r.Blacklist {
		if strings.EqualFold(blocked, sellerName) {
			return true
		}
	}
	return false
}

// RowResult is what the worker writes back to the spreadsheet for a row.
type RowResult struct {
	RowIndex   int
	Note       string
	LastUpdate time.Time
}
