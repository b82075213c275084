package journal_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/journal"
)

func TestJournalEvictsOldest(t *testing.T) {
	rq := require.New(t)

	j := journal.New(3)

	for i := 1; i <= 5; i++ {
		j.Record(entity.Decision{
			Status: entity.DecisionHold,
			Rule: entity.PricingRule{
				RowIndex:    i,
				ProductName: fmt.Sprintf("product-%d", i),
			},
			EvaluatedAt: time.Now(),
		})
	}

	recent := j.Recent(0)
	rq.Len(recent, 3)

	// Newest first, oldest two evicted.
	rq.Equal(5, recent[0].RowIndex)
	rq.Equal(4, recent[1].RowIndex)
	rq.Equal(3, recent[2].RowIndex)
}

func TestJournalRecentLimit(t *testing.T) {
	rq := require.New(t)

	j := journal.New(10)

	for i := 1; i <= 4; i++ {
		j.Record(entity.Decision{Rule: entity.PricingRule{RowIndex: i}})
	}

	recent := j.Recent(2)
	rq.Len(recent, 2)
	rq.Equal(4, recent[0].RowIndex)
	rq.Equal(3, recent[1].RowIndex)
}

func TestJournalLastRound(t *testing.T) {
	rq := require.New(t)

	j := journal.New(10)

	_, ok := j.LastRound()
	rq.False(ok)

	summary := journal.RoundSummary{
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		Rows:       7,
		Updates:    2,
		Holds:      4,
		Failures:   1,
	}
	j.RoundFinished(summary)

	got, ok := j.LastRound()
	rq.True(ok)
	rq.Equal(summary, got)
}
