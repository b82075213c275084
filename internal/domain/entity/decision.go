package entity

import "time"

// DecisionStatus is the outcome of one row evaluation.
type DecisionStatus int

const (
	DecisionFail   DecisionStatus = 0 // terminal for the row, nothing written to the marketplace
	DecisionUpdate DecisionStatus = 1 // push Target.Price to the marketplace
	DecisionHold   DecisionStatus = 2 // price already where it should be
)

func (s DecisionStatus) String() string {
	switch s {
	case DecisionFail:
		return "fail"
	case DecisionUpdate:
		return "update"
	case DecisionHold:
		return "hold"
	default:
		return "unknown"
	}
}

// CompareTarget names the price the engine decided to move to and where it
// came from ("No Comparison", "No Competition" or a competitor name).
type CompareTarget struct {
	Name  string
	Price float64
}

// Analysis is the competition analyzer's output. CompetitorName and
// CompetitivePrice are both nil when no offer survived the blacklist.
type Analysis struct {
	CompetitorName   *string
	CompetitivePrice *float64

	// Raw input offers, kept for the audit note.
	Offers []CompetitorOffer

	// Raw offers priced below the rule's floor, blacklisted or not.
	SellersBelowMin []CompetitorOffer
}

// Decision is the engine's sole output artifact. Rule is the engine's own
// working copy with scratch fields filled in; the caller's rule is untouched.
type Decision struct {
	Status      DecisionStatus
	Rule        PricingRule
	Target      *CompareTarget
	Competition []CompetitorOffer
	LogMessage  string
	OfferID     string
	OfferType   string
	EvaluatedAt time.Time
}

// DecisionRecord is a persisted decision as the audit log and the status API
// expose it: the rule collapsed to its identifying fields.
type DecisionRecord struct {
	ID           int64
	RowIndex     int
	ProductName  string
	OfferID      string
	Status       DecisionStatus
	CurrentPrice float64
	Target       *CompareTarget
	AppliedAdj   float64
	LogMessage   string
	EvaluatedAt  time.Time
}
