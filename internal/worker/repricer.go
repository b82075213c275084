package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/domain/service/pricing"
	"github.com/justt1n/driffle-tool/internal/infrastructure/sheets"
	"github.com/justt1n/driffle-tool/internal/journal"
	"github.com/justt1n/driffle-tool/internal/metrics"
	"github.com/justt1n/driffle-tool/pkg/contextx"
	"github.com/justt1n/driffle-tool/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// SheetStore is the spreadsheet boundary the repricer drives. The
// implementation serializes its own API access.
type SheetStore interface {
	LoadRules(ctx context.Context) ([]sheets.Row, error)
	Hydrate(ctx context.Context, row *sheets.Row) error
	WriteResults(ctx context.Context, results []entity.RowResult) error
}

// MarketGateway builds a per-rule market view bound to the rule's price
// bounds.
type MarketGateway interface {
	ForRule(floor, cap *float64) pricing.MarketService
}

// DecisionRecorder is the optional durable audit sink.
type DecisionRecorder interface {
	Record(ctx context.Context, decision entity.Decision) error
}

// Repricer runs full repricing rounds: load rules, evaluate in bounded
// batches, push price updates, write notes back. One Repricer instance is
// reused across rounds; all per-round state is local to RunRound.
type Repricer struct {
	sheet      SheetStore
	market     MarketGateway
	analyzer   *pricing.Analyzer
	calculator *pricing.Calculator
	journal    *journal.Journal

	recorder  DecisionRecorder        // nil when persistence is disabled
	decisions chan<- entity.Decision  // nil when notifications are disabled

	workers int
}

func NewRepricer(
	sheet SheetStore,
	market MarketGateway,
	calculator *pricing.Calculator,
	jrnl *journal.Journal,
	workers int,
) *Repricer {
	return &Repricer{
		sheet:      sheet,
		market:     market,
		analyzer:   pricing.NewAnalyzer(),
		calculator: calculator,
		journal:    jrnl,
		workers:    workers,
	}
}

func (r *Repricer) WithRecorder(recorder DecisionRecorder) *Repricer {
	r.recorder = recorder
	return r
}

func (r *Repricer) WithDecisionChannel(decisions chan<- entity.Decision) *Repricer {
	r.decisions = decisions
	return r
}

// RunRound processes every checked rule row once. Row-level problems become
// sheet notes; only sheet-level failures abort the round.
func (r *Repricer) RunRound(ctx context.Context) error {
	started := time.Now()

	rows, err := r.sheet.LoadRules(ctx)
	if err != nil {
		return fmt.Errorf("sheet.LoadRules: %w", err)
	}

	if len(rows) == 0 {
		logger(ctx).Info("no checked rows, round skipped")

		return nil
	}

	logger(ctx).Info("round started",
		slog.Int("rows", len(rows)),
		slog.Int("workers", r.workers),
	)

	tally := &roundTally{}

	for start := 0; start < len(rows); start += r.workers {
		end := start + r.workers
		if end > len(rows) {
			end = len(rows)
		}

		batch := rows[start:end]
		results := make([]entity.RowResult, len(batch))

		g, batchCtx := errgroup.WithContext(ctx)
		g.SetLimit(r.workers)

		for i := range batch {
			g.Go(func() error {
				results[i] = r.processRow(batchCtx, &batch[i], tally)

				return nil
			})
		}

		_ = g.Wait()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		// One writeback per batch keeps sheet API usage bounded.
		if err := r.sheet.WriteResults(ctx, results); err != nil {
			return fmt.Errorf("sheet.WriteResults: %w", err)
		}

		logger(ctx).Info("batch written",
			slog.Int(logx.FieldBatch, start/r.workers+1),
			slog.Int("rows", len(batch)),
		)
	}

	summary := tally.summary()
	summary.StartedAt = started
	summary.FinishedAt = time.Now()
	summary.Rows = len(rows)
	r.journal.RoundFinished(summary)

	metrics.RoundsTotal.Inc()
	metrics.RoundDuration.Observe(time.Since(started).Seconds())

	logger(ctx).Info("round finished",
		slog.Int("updates", summary.Updates),
		slog.Int("holds", summary.Holds),
		slog.Int("failures", summary.Failures),
		slog.Duration("took", time.Since(started)),
	)

	return nil
}

// roundTally is the concurrency-safe per-round outcome counter.
type roundTally struct {
	mu       sync.Mutex
	updates  int
	holds    int
	failures int
}

func (t *roundTally) update()  { t.mu.Lock(); t.updates++; t.mu.Unlock() }
func (t *roundTally) hold()    { t.mu.Lock(); t.holds++; t.mu.Unlock() }
func (t *roundTally) failure() { t.mu.Lock(); t.failures++; t.mu.Unlock() }

func (t *roundTally) summary() journal.RoundSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	return journal.RoundSummary{
		Updates:  t.updates,
		Holds:    t.holds,
		Failures: t.failures,
	}
}

func (r *Repricer) processRow(ctx context.Context, row *sheets.Row, tally *roundTally) entity.RowResult {
	metrics.RowsProcessedTotal.Inc()

	rowID := contextx.RowID(row.Rule.RowIndex)
	ctx = contextx.WithRowID(ctx, rowID)
	ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.Stringer(logx.FieldRow, rowID)))

	result := entity.RowResult{
		RowIndex:   row.Rule.RowIndex,
		LastUpdate: time.Now(),
	}

	if row.Err != nil {
		tally.failure()
		result.Note = fmt.Sprintf("Error: %v", row.Err)

		return result
	}

	if err := r.sheet.Hydrate(ctx, row); err != nil {
		tally.failure()
		result.Note = fmt.Sprintf("Error: %v", err)

		return result
	}

	view := r.market.ForRule(row.Rule.MinPrice, row.Rule.MaxPrice)
	engine := pricing.NewEngine(view, r.analyzer, r.calculator)

	decision := engine.Evaluate(ctx, row.Rule)
	result.Note = decision.LogMessage
	result.LastUpdate = decision.EvaluatedAt

	switch decision.Status {
	case entity.DecisionUpdate:
		tally.update()

		if err := view.UpdatePrice(ctx, decision.OfferID, decision.OfferType, decision.Target.Price); err != nil {
			metrics.PriceUpdatesTotal.WithLabelValues("error").Inc()

			logger(ctx).Error("price update failed",
				slog.String(logx.FieldOfferID, decision.OfferID),
				logx.Error(err),
			)

			result.Note = decision.LogMessage + "\n\nERROR: API update call failed."
		} else {
			metrics.PriceUpdatesTotal.WithLabelValues("ok").Inc()

			logger(ctx).Info("price updated",
				slog.String(logx.FieldProduct, decision.Rule.ProductName),
				slog.String(logx.FieldOfferID, decision.OfferID),
				slog.Float64(logx.FieldPrice, decision.Target.Price),
			)
		}
	case entity.DecisionHold:
		tally.hold()
	default:
		tally.failure()
	}

	metrics.DecisionsTotal.WithLabelValues(decision.Status.String()).Inc()

	r.record(ctx, decision)

	if row.Rule.Relax > 0 {
		relax(ctx, time.Duration(row.Rule.Relax)*time.Second)
	}

	return result
}

func (r *Repricer) record(ctx context.Context, decision entity.Decision) {
	r.journal.Record(decision)

	if r.recorder != nil {
		if err := r.recorder.Record(ctx, decision); err != nil {
			logger(ctx).Error("decision audit write failed", logx.Error(err))
		}
	}

	if r.decisions != nil {
		// Alerts are best effort: a slow consumer must not stall the round.
		select {
		case r.decisions <- decision:
		default:
			logger(ctx).Warn("decision channel full, alert dropped",
				slog.String(logx.FieldDecisionStatus, decision.Status.String()))
		}
	}
}

// relax blocks the row's own goroutine only; other rows in the batch keep
// running.
func relax(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
