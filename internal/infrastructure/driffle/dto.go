package driffle

// Wire types for the Driffle seller API. Only the fields the adapter reads
// are mapped.

type authResponse struct {
	Data struct {
		Token string `json:"token" validate:"required"`
	} `json:"data"`
}

type priceDetail struct {
	YourPrice   float64 `json:"yourPrice"`
	RetailPrice float64 `json:"retailPrice"`
}

type singleOfferInfo struct {
	OfferID   int64       `json:"offerId" validate:"required"`
	Slug      string      `json:"slug"`
	Title     string      `json:"title"`
	Status    int         `json:"status"`
	ProductID int64       `json:"productId"`
	Price     priceDetail `json:"price"`
}

type singleOfferResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Data       struct {
		Offer singleOfferInfo `json:"offer"`
	} `json:"data"`
}

type competitionPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type competitionOffer struct {
	MerchantName   string           `json:"merchantName"`
	IsInStock      bool             `json:"isInStock"`
	CanBePurchased bool             `json:"canBePurchased"`
	BelongsToYou   bool             `json:"belongsToYou"`
	Price          competitionPrice `json:"price"`
}

type productCompetitionsResponse struct {
	StatusCode   int    `json:"statusCode"`
	Message      string `json:"message"`
	PID          int64  `json:"pid"`
	Competitions struct {
		TotalCount int                `json:"totalCount"`
		Offers     []competitionOffer `json:"offers"`
	} `json:"competitions"`
}

type commissionResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		YouGetPrice competitionPrice `json:"youGetPrice"`
	} `json:"data"`
}

type updateOfferRequest struct {
	OfferID     int64   `json:"offerId"`
	YourPrice   float64 `json:"yourPrice"`
	ToggleOffer string  `json:"toggleOffer"`
}

type updateOfferResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}
