package worker_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/domain/service/pricing"
	"github.com/justt1n/driffle-tool/internal/domain/value"
	"github.com/justt1n/driffle-tool/internal/infrastructure/sheets"
	"github.com/justt1n/driffle-tool/internal/journal"
	"github.com/justt1n/driffle-tool/internal/worker"
)

type fakeSheet struct {
	mu      sync.Mutex
	rows    []sheets.Row
	loadErr error
	hydrate func(row *sheets.Row) error
	written [][]entity.RowResult
}

func (f *fakeSheet) LoadRules(context.Context) ([]sheets.Row, error) {
	return f.rows, f.loadErr
}

func (f *fakeSheet) Hydrate(_ context.Context, row *sheets.Row) error {
	if f.hydrate != nil {
		return f.hydrate(row)
	}

	return nil
}

func (f *fakeSheet) WriteResults(_ context.Context, results []entity.RowResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.written = append(f.written, results)

	return nil
}

func (f *fakeSheet) allNotes() map[int]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	notes := map[int]string{}
	for _, batch := range f.written {
		for _, result := range batch {
			notes[result.RowIndex] = result.Note
		}
	}

	return notes
}

type fakeGateway struct {
	market pricing.MarketService
}

func (f *fakeGateway) ForRule(_, _ *float64) pricing.MarketService {
	return f.market
}

func checkedRow(index int, mode value.CompareMode, minPrice *float64) sheets.Row {
	return sheets.Row{
		Rule: entity.PricingRule{
			RowIndex:       index,
			ProductName:    "Product",
			ProductURL:     "https://driffle.com/selling/700583",
			ProductCompare: "98765",
			CompareMode:    mode,
			PriceRounding:  lo.ToPtr(2),
			MinPrice:       minPrice,
		},
	}
}

func newRepricer(sheet worker.SheetStore, gateway worker.MarketGateway, workers int) (*worker.Repricer, *journal.Journal) {
	jrnl := journal.New(100)

	return worker.NewRepricer(
		sheet,
		gateway,
		pricing.NewCalculator(rand.NewSource(1)),
		jrnl,
		workers,
	), jrnl
}

func TestRepricerRunRound(t *testing.T) {
	rq := require.New(t)

	market := &pricing.MarketServiceMock{
		GetMyOfferFunc: func(context.Context, string) (*entity.CurrentOffer, error) {
			return &entity.CurrentOffer{OfferID: "700583", Price: 10.00, OfferType: "key"}, nil
		},
		GetCompetitorOffersFunc: func(context.Context, string) ([]entity.CompetitorOffer, error) {
			return []entity.CompetitorOffer{
				{SellerName: "Alpha", Price: 8.00, IsEligible: true},
			}, nil
		},
		UpdatePriceFunc: func(context.Context, string, string, float64) error {
			return nil
		},
	}

	sheet := &fakeSheet{
		rows: []sheets.Row{
			checkedRow(2, value.ModeFollow, lo.ToPtr(1.00)), // follows Alpha down
			checkedRow(3, value.ModeNoCompare, lo.ToPtr(10.00)), // already at floor
		},
	}

	repricer, jrnl := newRepricer(sheet, &fakeGateway{market: market}, 2)

	rq.NoError(repricer.RunRound(context.Background()))

	notes := sheet.allNotes()
	rq.Len(notes, 2)
	rq.Contains(notes[2], "Update")
	rq.Contains(notes[3], "Hold")

	rq.Len(market.UpdatePriceCalls(), 1)
	rq.Equal(8.00, market.UpdatePriceCalls()[0].NewPrice)

	summary, ok := jrnl.LastRound()
	rq.True(ok)
	rq.Equal(2, summary.Rows)
	rq.Equal(1, summary.Updates)
	rq.Equal(1, summary.Holds)
	rq.Equal(0, summary.Failures)

	rq.Len(jrnl.Recent(0), 2)
}

func TestRepricerRowParseErrorBecomesNote(t *testing.T) {
	rq := require.New(t)

	market := &pricing.MarketServiceMock{}

	row := checkedRow(5, value.ModeFollow, nil)
	row.Err = errors.New("cell \"banana\" is not a number")

	sheet := &fakeSheet{rows: []sheets.Row{row}}

	repricer, jrnl := newRepricer(sheet, &fakeGateway{market: market}, 1)

	rq.NoError(repricer.RunRound(context.Background()))

	notes := sheet.allNotes()
	rq.Contains(notes[5], "Error:")
	rq.Empty(market.GetMyOfferCalls(), "broken rows never reach the market")

	summary, _ := jrnl.LastRound()
	rq.Equal(1, summary.Failures)
}

func TestRepricerHydrateErrorBecomesNote(t *testing.T) {
	rq := require.New(t)

	sheet := &fakeSheet{
		rows: []sheets.Row{checkedRow(4, value.ModeFollow, nil)},
		hydrate: func(*sheets.Row) error {
			return errors.New("min price: values.Get failed")
		},
	}

	repricer, _ := newRepricer(sheet, &fakeGateway{market: &pricing.MarketServiceMock{}}, 1)

	rq.NoError(repricer.RunRound(context.Background()))
	rq.Contains(sheet.allNotes()[4], "Error: min price")
}

func TestRepricerUpdateFailureAppendsErrorNote(t *testing.T) {
	rq := require.New(t)

	market := &pricing.MarketServiceMock{
		GetMyOfferFunc: func(context.Context, string) (*entity.CurrentOffer, error) {
			return &entity.CurrentOffer{OfferID: "700583", Price: 10.00, OfferType: "key"}, nil
		},
		GetCompetitorOffersFunc: func(context.Context, string) ([]entity.CompetitorOffer, error) {
			return []entity.CompetitorOffer{
				{SellerName: "Alpha", Price: 8.00, IsEligible: true},
			}, nil
		},
		UpdatePriceFunc: func(context.Context, string, string, float64) error {
			return errors.New("driffle: 503")
		},
	}

	sheet := &fakeSheet{rows: []sheets.Row{checkedRow(2, value.ModeFollow, lo.ToPtr(1.00))}}

	repricer, _ := newRepricer(sheet, &fakeGateway{market: market}, 1)

	rq.NoError(repricer.RunRound(context.Background()))
	rq.Contains(sheet.allNotes()[2], "ERROR: API update call failed.")
}

func TestRepricerSendsDecisionsToChannel(t *testing.T) {
	rq := require.New(t)

	market := &pricing.MarketServiceMock{
		GetMyOfferFunc: func(context.Context, string) (*entity.CurrentOffer, error) {
			return &entity.CurrentOffer{OfferID: "700583", Price: 10.00, OfferType: "key"}, nil
		},
		GetCompetitorOffersFunc: func(context.Context, string) ([]entity.CompetitorOffer, error) {
			return []entity.CompetitorOffer{
				{SellerName: "Alpha", Price: 8.00, IsEligible: true},
			}, nil
		},
		UpdatePriceFunc: func(context.Context, string, string, float64) error {
			return nil
		},
	}

	decisions := make(chan entity.Decision, 10)

	sheet := &fakeSheet{rows: []sheets.Row{checkedRow(2, value.ModeFollow, lo.ToPtr(1.00))}}

	repricer, _ := newRepricer(sheet, &fakeGateway{market: market}, 1)
	repricer.WithDecisionChannel(decisions)

	rq.NoError(repricer.RunRound(context.Background()))

	select {
	case decision := <-decisions:
		rq.Equal(entity.DecisionUpdate, decision.Status)
	case <-time.After(time.Second):
		t.Fatal("no decision on the channel")
	}
}

func TestRepricerLoadFailureAbortsRound(t *testing.T) {
	rq := require.New(t)

	sheet := &fakeSheet{loadErr: errors.New("spreadsheet unreachable")}

	repricer, _ := newRepricer(sheet, &fakeGateway{market: &pricing.MarketServiceMock{}}, 1)

	rq.Error(repricer.RunRound(context.Background()))
	rq.Empty(sheet.written)
}
