package journal

import (
	"sync"
	"time"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
)

// Journal keeps the most recent decisions and round summaries in memory for
// the status API. It is the fallback audit trail when Postgres is not
// configured, and the fast path when it is.
type Journal struct {
	mu        sync.RWMutex
	decisions []entity.DecisionRecord
	capacity  int
	nextID    int64

	lastRound RoundSummary
}

// RoundSummary aggregates one completed round.
type RoundSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Rows       int
	Updates    int
	Holds      int
	Failures   int
}

func New(capacity int) *Journal {
	return &Journal{capacity: capacity}
}

// Record appends a decision, evicting the oldest entry once full.
func (j *Journal) Record(decision entity.Decision) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.nextID++

	record := entity.DecisionRecord{
		ID:           j.nextID,
		RowIndex:     decision.Rule.RowIndex,
		ProductName:  decision.Rule.ProductName,
		OfferID:      decision.OfferID,
		Status:       decision.Status,
		CurrentPrice: decision.Rule.CurrentPrice,
		Target:       decision.Target,
		AppliedAdj:   decision.Rule.AppliedAdj,
		LogMessage:   decision.LogMessage,
		EvaluatedAt:  decision.EvaluatedAt,
	}

	j.decisions = append(j.decisions, record)
	if len(j.decisions) > j.capacity {
		j.decisions = j.decisions[len(j.decisions)-j.capacity:]
	}
}

// Recent returns up to limit decisions, newest first.
func (j *Journal) Recent(limit int) []entity.DecisionRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if limit <= 0 || limit > len(j.decisions) {
		limit = len(j.decisions)
	}

	out := make([]entity.DecisionRecord, 0, limit)
	for i := len(j.decisions) - 1; i >= len(j.decisions)-limit; i-- {
		out = append(out, j.decisions[i])
	}

	return out
}

// RoundFinished stores the latest round summary.
func (j *Journal) RoundFinished(summary RoundSummary) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.lastRound = summary
}

// LastRound returns the most recent summary; ok is false before the first
// round completes.
func (j *Journal) LastRound() (RoundSummary, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return j.lastRound, !j.lastRound.FinishedAt.IsZero()
}
