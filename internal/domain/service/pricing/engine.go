package pricing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/justt1n/driffle-tool/internal/domain"
	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/domain/value"
	"github.com/justt1n/driffle-tool/pkg/errcodes"
)

// MarketService is the normalized marketplace boundary the engine consumes.
// Implementations must be safe for concurrent use across distinct rows.
//
//go:generate moq -rm -out market_service_mock.gen.go . MarketService:MarketServiceMock
type MarketService interface {
	// GetMyOffer resolves the seller's own offer from its selling-page URL.
	GetMyOffer(ctx context.Context, productURL string) (*entity.CurrentOffer, error)
	// GetCompetitorOffers lists normalized competing offers for a product id.
	GetCompetitorOffers(ctx context.Context, productCompare string) ([]entity.CompetitorOffer, error)
	// UpdatePrice pushes a new price for the offer.
	UpdatePrice(ctx context.Context, offerID, offerType string, newPrice float64) error
}

// Engine evaluates one pricing rule against live market data and produces a
// Decision. It is stateless per call: concurrent evaluations of distinct
// rows share nothing but the MarketService.
type Engine struct {
	market     MarketService
	analyzer   *Analyzer
	calculator *Calculator
}

func NewEngine(market MarketService, analyzer *Analyzer, calculator *Calculator) *Engine {
	return &Engine{
		market:     market,
		analyzer:   analyzer,
		calculator: calculator,
	}
}

// Evaluate runs a single decision pass for the rule. It never returns an
// error and never lets a panic escape: every failure mode becomes a fail
// decision whose LogMessage ends up in the sheet. The caller's rule is not
// mutated; the decision carries the engine's own copy with scratch state.
func (e *Engine) Evaluate(ctx context.Context, in entity.PricingRule) (out entity.Decision) {
	rule := in
	rule.ResetScratch()

	defer func() {
		if rec := recover(); rec != nil {
			out = failDecision(rule, fmt.Sprintf("Error: %v", rec))
		}
	}()

	if err := validateRule(&rule); err != nil {
		return failDecision(rule, fmt.Sprintf("Rule validation failed: %v.", err))
	}

	offer, err := e.market.GetMyOffer(ctx, rule.ProductURL)
	if err != nil || offer == nil {
		// Adapter failures are absence of data, not something to retry here.
		return failDecision(rule, fmt.Sprintf("Fetch current offer failed for %s.", rule.ProductName))
	}

	rule.CurrentPrice = offer.Price
	rule.OfferID = offer.OfferID
	rule.OfferType = offer.OfferType

	switch rule.CompareMode {
	case value.ModeNoCompare:
		return e.evaluateNoCompare(rule)
	case value.ModeFollow, value.ModeDecreaseOnly:
		return e.evaluateCompare(ctx, rule)
	default:
		return failDecision(rule, fmt.Sprintf("Unknown compare mode: %d.", int(rule.CompareMode)))
	}
}

// evaluateNoCompare pins the price to the floor, ignoring the market.
func (e *Engine) evaluateNoCompare(rule entity.PricingRule) entity.Decision {
	if rule.MinPrice == nil {
		return failDecision(rule, "No-compare mode requires a configured floor price.")
	}

	target := *rule.MinPrice
	if rule.PriceRounding != nil {
		target = RoundUp(target, *rule.PriceRounding)
	}

	rule.AppliedAdj = 0

	if !Significant(rule.CurrentPrice, target, &rule) {
		return holdDecision(rule, noteHold(&rule, target, nil))
	}

	return updateDecision(rule, entity.CompareTarget{Name: "No Comparison", Price: target},
		nil, noteNoCompare(&rule, target))
}

// evaluateCompare handles modes 1 and 2: competition analysis, candidate
// price, floor protection, then the mode-specific significance rules.
func (e *Engine) evaluateCompare(ctx context.Context, rule entity.PricingRule) entity.Decision {
	offers, err := e.market.GetCompetitorOffers(ctx, rule.ProductCompare)
	if err != nil {
		// No competition data is the same as no competition.
		offers = nil
	}

	var (
		analysis   *entity.Analysis
		target     float64
		targetName = "No Competition"
	)

	if len(offers) == 0 {
		target = e.calculator.FinalPrice(&rule, nil)
	} else {
		result := e.analyzer.Analyze(&rule, offers)
		analysis = &result

		target = e.calculator.FinalPrice(&rule, result.CompetitivePrice)

		if result.CompetitorName != nil {
			targetName = *result.CompetitorName
		}
	}

	if math.IsInf(target, 1) {
		// Unbounded sentinel survived to decision time: no candidate and no
		// max price to fall back to. Fatal misconfiguration for the row.
		return failDecision(rule, fmt.Sprintf("No candidate price for %s and no max price to fall back to.",
			rule.ProductName))
	}

	if rule.MinPrice == nil {
		return failDecision(rule, noteNoFloor(&rule, target, analysis))
	}

	if rule.CurrentPrice < *rule.MinPrice {
		// Already below the floor: self-healing correction beats whatever
		// the competition suggested.
		target = *rule.MinPrice
		rule.AppliedAdj = 0
	} else if target < *rule.MinPrice {
		return failDecision(rule, noteBelowFloor(&rule, target, analysis))
	}

	if rule.CompareMode == value.ModeDecreaseOnly &&
		rule.CurrentPrice < target && Significant(rule.CurrentPrice, target, &rule) {
		return holdDecision(rule, noteKeepPrice(&rule, target, analysis))
	}

	if !Significant(rule.CurrentPrice, target, &rule) {
		return holdDecision(rule, noteHold(&rule, target, analysis))
	}

	return updateDecision(rule, entity.CompareTarget{Name: targetName, Price: target},
		offers, noteFollow(&rule, entity.CompareTarget{Name: targetName, Price: target}, analysis))
}

func validateRule(rule *entity.PricingRule) error {
	if rule.ProductName == "" {
		return domain.NewError(errcodes.ConfigInvalid, "product name is required")
	}

	if rule.PriceRounding != nil && *rule.PriceRounding < 0 {
		return domain.NewError(errcodes.ConfigInvalid, "price rounding cannot be negative")
	}

	if rule.ProductCompare == "" {
		return domain.NewError(errcodes.ConfigInvalid, "comparison target is required")
	}

	return nil
}

func failDecision(rule entity.PricingRule, message string) entity.Decision {
	return entity.Decision{
		Status:      entity.DecisionFail,
		Rule:        rule,
		LogMessage:  message,
		OfferID:     rule.OfferID,
		OfferType:   rule.OfferType,
		EvaluatedAt: time.Now(),
	}
}

func holdDecision(rule entity.PricingRule, message string) entity.Decision {
	return entity.Decision{
		Status:      entity.DecisionHold,
		Rule:        rule,
		LogMessage:  message,
		OfferID:     rule.OfferID,
		OfferType:   rule.OfferType,
		EvaluatedAt: time.Now(),
	}
}

func updateDecision(
	rule entity.PricingRule,
	target entity.CompareTarget,
	competition []entity.CompetitorOffer,
	message string,
) entity.Decision {
	return entity.Decision{
		Status:      entity.DecisionUpdate,
		Rule:        rule,
		Target:      &target,
		Competition: competition,
		LogMessage:  message,
		OfferID:     rule.OfferID,
		OfferType:   rule.OfferType,
		EvaluatedAt: time.Now(),
	}
}
