package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	RoundsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "repricer",
		Name:      "rounds_total",
		Help:      "Completed repricing rounds.",
	})

	RoundDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "repricer",
		Name:      "round_duration_seconds",
		Help:      "Wall time of one full repricing round.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	RowsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "repricer",
		Name:      "rows_processed_total",
		Help:      "Rule rows evaluated, across all rounds.",
	})

	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "repricer",
		Name:      "decisions_total",
		Help:      "Decisions by outcome.",
	}, []string{"status"})

	PriceUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "repricer",
		Name:      "price_updates_total",
		Help:      "Marketplace price update calls by result.",
	}, []string{"result"})
)
