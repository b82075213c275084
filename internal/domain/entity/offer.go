package entity

// CurrentOffer is the seller's own listing, normalized at the marketplace
// boundary. Produced fresh per decision cycle, never mutated by the engine.
type CurrentOffer struct {
	OfferID   string
	Price     float64
	Status    string
	OfferType string // e.g. "key" vs "gift"
	Currency  string
}

// CompetitorOffer is one competing listing on the compared product page.
// Price is the seller-side base price (what the competitor actually receives
// after commission), not the retail price shown to buyers.
type CompetitorOffer struct {
	Price      float64
	SellerName string
	Rating     int
	IsEligible bool
	Note       string // rejection reason when not eligible
}
