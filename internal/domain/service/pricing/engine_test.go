package pricing_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/domain/service/pricing"
	"github.com/justt1n/driffle-tool/internal/domain/value"
)

func newTestEngine(market *pricing.MarketServiceMock) *pricing.Engine {
	return pricing.NewEngine(market, pricing.NewAnalyzer(), pricing.NewCalculator(rand.NewSource(1)))
}

func staticOffer(price float64) func(context.Context, string) (*entity.CurrentOffer, error) {
	return func(context.Context, string) (*entity.CurrentOffer, error) {
		return &entity.CurrentOffer{
			OfferID:   "12345",
			Price:     price,
			Status:    "active",
			OfferType: "key",
			Currency:  "EUR",
		}, nil
	}
}

func staticCompetitors(offers ...entity.CompetitorOffer) func(context.Context, string) ([]entity.CompetitorOffer, error) {
	return func(context.Context, string) ([]entity.CompetitorOffer, error) {
		return offers, nil
	}
}

func baseRule() entity.PricingRule {
	return entity.PricingRule{
		RowIndex:       4,
		ProductName:    "Elden Ring Steam Key",
		ProductURL:     "https://driffle.com/elden-ring-p12345",
		ProductCompare: "98765",
		PriceRounding:  lo.ToPtr(2),
	}
}

func TestEngineEvaluateNoCompare(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name         string
		current      float64
		minPrice     *float64
		expectStatus entity.DecisionStatus
		expectPrice  float64
	}{
		{
			name:         "current already at the floor holds",
			current:      5.00,
			minPrice:     lo.ToPtr(5.00),
			expectStatus: entity.DecisionHold,
		},
		{
			name:         "current away from the floor updates",
			current:      5.00,
			minPrice:     lo.ToPtr(6.00),
			expectStatus: entity.DecisionUpdate,
			expectPrice:  6.00,
		},
		{
			name:         "missing floor fails",
			current:      5.00,
			minPrice:     nil,
			expectStatus: entity.DecisionFail,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			market := &pricing.MarketServiceMock{
				GetMyOfferFunc: staticOffer(tc.current),
			}

			rule := baseRule()
			rule.CompareMode = value.ModeNoCompare
			rule.MinPrice = tc.minPrice

			decision := newTestEngine(market).Evaluate(context.Background(), rule)

			rq.Equal(tc.expectStatus, decision.Status)
			rq.NotEmpty(decision.LogMessage)
			rq.Empty(market.GetCompetitorOffersCalls(), "no-compare mode must not hit the competition endpoint")

			if tc.expectStatus == entity.DecisionUpdate {
				rq.NotNil(decision.Target)
				rq.Equal(tc.expectPrice, decision.Target.Price)
				rq.Equal("No Comparison", decision.Target.Name)
			}
		})
	}
}

func TestEngineEvaluateFollowMode(t *testing.T) {
	rq := require.New(t)

	market := &pricing.MarketServiceMock{
		GetMyOfferFunc: staticOffer(10.00),
		GetCompetitorOffersFunc: staticCompetitors(
			entity.CompetitorOffer{SellerName: "Alpha", Price: 9.0, IsEligible: true},
			entity.CompetitorOffer{SellerName: "Bravo", Price: 8.0, IsEligible: true},
		),
	}

	rule := baseRule()
	rule.CompareMode = value.ModeFollow
	rule.MinPrice = lo.ToPtr(1.00)

	decision := newTestEngine(market).Evaluate(context.Background(), rule)

	rq.Equal(entity.DecisionUpdate, decision.Status)
	rq.NotNil(decision.Target)
	rq.Equal("Bravo", decision.Target.Name)
	rq.Equal(8.00, decision.Target.Price)
	rq.Equal("12345", decision.OfferID)
	rq.Equal("key", decision.OfferType)
	rq.Len(decision.Competition, 2)
	rq.Contains(decision.LogMessage, "Bravo")
}

func TestEngineEvaluateFollowModeHoldsOnNoise(t *testing.T) {
	rq := require.New(t)

	market := &pricing.MarketServiceMock{
		GetMyOfferFunc: staticOffer(8.005),
		GetCompetitorOffersFunc: staticCompetitors(
			entity.CompetitorOffer{SellerName: "Alpha", Price: 8.0, IsEligible: true},
		),
	}

	rule := baseRule()
	rule.CompareMode = value.ModeFollow
	rule.MinPrice = lo.ToPtr(1.00)

	decision := newTestEngine(market).Evaluate(context.Background(), rule)

	rq.Equal(entity.DecisionHold, decision.Status)
	rq.Empty(market.UpdatePriceCalls())
}

func TestEngineEvaluateDecreaseOnly(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name         string
		current      float64
		competitor   float64
		expectStatus entity.DecisionStatus
	}{
		{
			name:         "never raises toward a higher target",
			current:      7.00,
			competitor:   9.00,
			expectStatus: entity.DecisionHold,
		},
		{
			name:         "still follows a lower target",
			current:      10.00,
			competitor:   8.00,
			expectStatus: entity.DecisionUpdate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			market := &pricing.MarketServiceMock{
				GetMyOfferFunc: staticOffer(tc.current),
				GetCompetitorOffersFunc: staticCompetitors(
					entity.CompetitorOffer{SellerName: "Alpha", Price: tc.competitor, IsEligible: true},
				),
			}

			rule := baseRule()
			rule.CompareMode = value.ModeDecreaseOnly
			rule.MinPrice = lo.ToPtr(1.00)

			decision := newTestEngine(market).Evaluate(context.Background(), rule)

			rq.Equal(tc.expectStatus, decision.Status)
		})
	}
}

func TestEngineEvaluateFloorProtection(t *testing.T) {
	rq := require.New(t)

	t.Run("current below floor self-heals upward", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc: staticOffer(4.00),
			GetCompetitorOffersFunc: staticCompetitors(
				entity.CompetitorOffer{SellerName: "Alpha", Price: 3.50, IsEligible: true},
			),
		}

		rule := baseRule()
		rule.CompareMode = value.ModeFollow
		rule.MinPrice = lo.ToPtr(5.00)
		rule.MinPriceAdjustment = lo.ToPtr(0.01)
		rule.MaxPriceAdjustment = lo.ToPtr(0.05)

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionUpdate, decision.Status)
		rq.NotNil(decision.Target)
		rq.Equal(5.00, decision.Target.Price)
		rq.Zero(decision.Rule.AppliedAdj, "forced floor correction discards the drawn adjustment")
	})

	t.Run("target below floor refuses the update", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc: staticOffer(10.00),
			GetCompetitorOffersFunc: staticCompetitors(
				entity.CompetitorOffer{SellerName: "Alpha", Price: 3.00, IsEligible: true},
			),
		}

		rule := baseRule()
		rule.CompareMode = value.ModeFollow
		rule.MinPrice = lo.ToPtr(5.00)

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionFail, decision.Status)
		rq.Contains(decision.LogMessage, "below the floor")
		rq.Empty(market.UpdatePriceCalls())
	})

	t.Run("compare mode without a floor refuses", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc: staticOffer(10.00),
			GetCompetitorOffersFunc: staticCompetitors(
				entity.CompetitorOffer{SellerName: "Alpha", Price: 8.00, IsEligible: true},
			),
		}

		rule := baseRule()
		rule.CompareMode = value.ModeFollow

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionFail, decision.Status)
		rq.Contains(decision.LogMessage, "no price floor")
	})
}

func TestEngineEvaluateNoCompetition(t *testing.T) {
	rq := require.New(t)

	t.Run("falls back to the cap", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc:          staticOffer(10.00),
			GetCompetitorOffersFunc: staticCompetitors(),
		}

		rule := baseRule()
		rule.CompareMode = value.ModeFollow
		rule.MinPrice = lo.ToPtr(1.00)
		rule.MaxPrice = lo.ToPtr(20.00)

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionUpdate, decision.Status)
		rq.NotNil(decision.Target)
		rq.Equal("No Competition", decision.Target.Name)
		rq.Equal(20.00, decision.Target.Price)
	})

	t.Run("no cap to fall back to fails", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc:          staticOffer(10.00),
			GetCompetitorOffersFunc: staticCompetitors(),
		}

		rule := baseRule()
		rule.CompareMode = value.ModeFollow
		rule.MinPrice = lo.ToPtr(1.00)

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionFail, decision.Status)
		rq.Contains(decision.LogMessage, "no max price")
	})

	t.Run("competition fetch error treated as no competition", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc: staticOffer(10.00),
			GetCompetitorOffersFunc: func(context.Context, string) ([]entity.CompetitorOffer, error) {
				return nil, errors.New("driffle: 502")
			},
		}

		rule := baseRule()
		rule.CompareMode = value.ModeFollow
		rule.MinPrice = lo.ToPtr(1.00)
		rule.MaxPrice = lo.ToPtr(20.00)

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionUpdate, decision.Status)
		rq.Equal("No Competition", decision.Target.Name)
	})
}

func TestEngineEvaluateFailures(t *testing.T) {
	rq := require.New(t)

	t.Run("validation failure skips market calls", func(*testing.T) {
		market := &pricing.MarketServiceMock{}

		rule := baseRule()
		rule.ProductName = ""

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionFail, decision.Status)
		rq.Empty(market.GetMyOfferCalls())
	})

	t.Run("unknown compare mode fails", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc: staticOffer(10.00),
		}

		rule := baseRule()
		rule.CompareMode = value.CompareMode(7)

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionFail, decision.Status)
		rq.Contains(decision.LogMessage, "Unknown compare mode")
	})

	t.Run("offer fetch error fails", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc: func(context.Context, string) (*entity.CurrentOffer, error) {
				return nil, errors.New("driffle: 401")
			},
		}

		rule := baseRule()
		rule.CompareMode = value.ModeFollow
		rule.MinPrice = lo.ToPtr(1.00)

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionFail, decision.Status)
		rq.Contains(decision.LogMessage, "Fetch current offer failed")
	})

	t.Run("panic inside the pass becomes a fail decision", func(*testing.T) {
		market := &pricing.MarketServiceMock{
			GetMyOfferFunc: func(context.Context, string) (*entity.CurrentOffer, error) {
				panic("boom")
			},
		}

		rule := baseRule()

		decision := newTestEngine(market).Evaluate(context.Background(), rule)

		rq.Equal(entity.DecisionFail, decision.Status)
		rq.Contains(decision.LogMessage, "boom")
	})
}
