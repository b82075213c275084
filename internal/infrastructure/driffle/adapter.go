package driffle

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/justt1n/driffle-tool/internal/config"
	"github.com/justt1n/driffle-tool/internal/domain"
	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/domain/service/pricing"
	"github.com/justt1n/driffle-tool/pkg/errcodes"
)

// maxCommissionLookups bounds how many distinct retail price points get a
// live commission resolution per competition snapshot. The rest fall back to
// the flat-rate estimate.
const maxCommissionLookups = 8

// commissionFallbackRate approximates "you get" when the commission endpoint
// is unavailable for a price point.
const commissionFallbackRate = 0.88

// Adapter normalizes the Driffle seller API into the engine's market
// boundary. One adapter is shared by all rows; per-row price bounds come in
// through ForRule views.
type Adapter struct {
	client  *Client
	limiter *rate.Limiter
	cache   *gocache.Cache
}

func NewAdapter(client *Client, cfg config.Driffle) *Adapter {
	return &Adapter{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.CommissionRPS), 1),
		cache:   gocache.New(cfg.CommissionCache, 2*cfg.CommissionCache),
	}
}

// ForRule binds the shared adapter to one rule's price bounds. The returned
// view is what the engine consumes as its MarketService.
func (a *Adapter) ForRule(floor, cap *float64) pricing.MarketService {
	return &ruleView{
		adapter: a,
		floor:   floor,
		cap:     cap,
	}
}

type ruleView struct {
	adapter *Adapter
	floor   *float64
	cap     *float64
}

func (v *ruleView) GetMyOffer(ctx context.Context, productURL string) (*entity.CurrentOffer, error) {
	return v.adapter.getMyOffer(ctx, productURL)
}

func (v *ruleView) GetCompetitorOffers(ctx context.Context, productCompare string) ([]entity.CompetitorOffer, error) {
	return v.adapter.getCompetitorOffers(ctx, productCompare, v.floor, v.cap)
}

func (v *ruleView) UpdatePrice(ctx context.Context, offerID, offerType string, newPrice float64) error {
	return v.adapter.updatePrice(ctx, offerID, newPrice)
}

// ExtractOfferID pulls the numeric offer id off the end of a selling-page
// URL, e.g. .../currently-selling/700583 -> 700583.
func ExtractOfferID(productURL string) (int64, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(productURL), "/")

	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0, domain.NewError(errcodes.InvalidOfferURL,
			fmt.Sprintf("no path segments in %q", productURL))
	}

	id, err := strconv.ParseInt(trimmed[idx+1:], 10, 64)
	if err != nil {
		return 0, domain.NewError(errcodes.InvalidOfferURL,
			fmt.Sprintf("trailing segment of %q is not numeric", productURL))
	}

	return id, nil
}

func (a *Adapter) getMyOffer(ctx context.Context, productURL string) (*entity.CurrentOffer, error) {
	offerID, err := ExtractOfferID(productURL)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.GetOfferDetails(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("client.GetOfferDetails: %w", err)
	}

	offer := resp.Data.Offer
	if offer.OfferID == 0 {
		return nil, domain.NewError(errcodes.DataUnavailable,
			fmt.Sprintf("offer %d not found", offerID))
	}

	return &entity.CurrentOffer{
		OfferID:   strconv.FormatInt(offer.OfferID, 10),
		Price:     offer.Price.YourPrice,
		Status:    strconv.Itoa(offer.Status),
		OfferType: "key",
		Currency:  "EUR",
	}, nil
}

func (a *Adapter) getCompetitorOffers(
	ctx context.Context,
	productCompare string,
	floor, cap *float64,
) ([]entity.CompetitorOffer, error) {
	pid, err := strconv.ParseInt(strings.TrimSpace(productCompare), 10, 64)
	if err != nil {
		return nil, domain.NewError(errcodes.InvalidRowData,
			fmt.Sprintf("comparison product id %q is not numeric", productCompare))
	}

	resp, err := a.client.GetProductCompetitions(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("client.GetProductCompetitions: %w", err)
	}

	limitMin := 0.0
	if floor != nil {
		limitMin = *floor
	}

	limitMax := math.Inf(1)
	if cap != nil {
		limitMax = *cap
	}

	type rawOffer struct {
		item     competitionOffer
		retail   float64
		rejected bool
		note     string
	}

	var (
		raws       []rawOffer
		retailSet  = map[float64]struct{}{}
		retailList []float64
	)

	for _, item := range resp.Competitions.Offers {
		if item.BelongsToYou || !item.IsInStock || !item.CanBePurchased {
			continue
		}

		retail := item.Price.Amount

		// Retail already under the floor means the base price must be too.
		// No point burning a commission lookup on it.
		if retail < limitMin {
			raws = append(raws, rawOffer{
				item:     item,
				retail:   retail,
				rejected: true,
				note:     fmt.Sprintf("Retail(%.2f) < Min(%.2f)", retail, limitMin),
			})

			continue
		}

		raws = append(raws, rawOffer{item: item, retail: retail})

		if _, seen := retailSet[retail]; !seen {
			retailSet[retail] = struct{}{}
			retailList = append(retailList, retail)
		}
	}

	sort.Float64s(retailList)

	if len(retailList) > maxCommissionLookups {
		retailList = retailList[:maxCommissionLookups]
	}

	priceMap := make(map[float64]float64, len(retailList))

	for _, retail := range retailList {
		priceMap[retail] = a.resolveBasePrice(ctx, pid, retail)
	}

	offers := make([]entity.CompetitorOffer, 0, len(raws))

	for _, raw := range raws {
		if raw.rejected {
			offers = append(offers, entity.CompetitorOffer{
				SellerName: raw.item.MerchantName,
				Price:      raw.retail,
				IsEligible: false,
				Note:       raw.note,
			})

			continue
		}

		base, resolved := priceMap[raw.retail]
		if !resolved {
			// Retail point past the lookup budget: no base price to compare.
			continue
		}

		offer := entity.CompetitorOffer{
			SellerName: raw.item.MerchantName,
			Price:      base,
			IsEligible: true,
		}

		switch {
		case base < limitMin:
			offer.IsEligible = false
			offer.Note = fmt.Sprintf("Base < Min (%.2f)", base)
		case base > limitMax:
			offer.IsEligible = false
			offer.Note = fmt.Sprintf("Base > Max (%.2f)", base)
		}

		offers = append(offers, offer)
	}

	return offers, nil
}

// resolveBasePrice converts a retail price point to the seller's "you get"
// amount via the commission endpoint. Lookups are rate limited and cached
// per product+retail; any failure degrades to the flat-rate estimate.
func (a *Adapter) resolveBasePrice(ctx context.Context, pid int64, retail float64) float64 {
	key := fmt.Sprintf("%d:%.4f", pid, retail)

	if cached, ok := a.cache.Get(key); ok {
		return cached.(float64)
	}

	fallback := math.Round(retail*commissionFallbackRate*100) / 100

	if err := a.limiter.Wait(ctx); err != nil {
		return fallback
	}

	resp, err := a.client.CalculateCommission(ctx, pid, retail)
	if err != nil || resp.Data.YouGetPrice.Amount == 0 {
		a.cache.Set(key, fallback, gocache.DefaultExpiration)

		return fallback
	}

	base := resp.Data.YouGetPrice.Amount
	a.cache.Set(key, base, gocache.DefaultExpiration)

	return base
}

func (a *Adapter) updatePrice(ctx context.Context, offerID string, newPrice float64) error {
	id, err := strconv.ParseInt(offerID, 10, 64)
	if err != nil {
		return domain.NewError(errcodes.InvalidRowData,
			fmt.Sprintf("offer id %q is not numeric", offerID))
	}

	resp, err := a.client.UpdateOffer(ctx, id, newPrice, true)
	if err != nil {
		return fmt.Errorf("client.UpdateOffer: %w", err)
	}

	if resp.StatusCode != 200 {
		return domain.NewError(errcodes.MarketplaceError,
			fmt.Sprintf("offer update rejected: %d %s", resp.StatusCode, resp.Message))
	}

	return nil
}
