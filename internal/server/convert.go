package server

import (
	"time"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/journal"
	"github.com/justt1n/driffle-tool/pkg/rest"
)

func newRESTRoundSummary(summary journal.RoundSummary) *rest.RoundSummary {
	return &rest.RoundSummary{
		StartedAt:  summary.StartedAt.Format(time.RFC3339),
		FinishedAt: summary.FinishedAt.Format(time.RFC3339),
		Rows:       summary.Rows,
		Updates:    summary.Updates,
		Holds:      summary.Holds,
		Failures:   summary.Failures,
	}
}

func newRESTDecisionRecord(record entity.DecisionRecord) rest.DecisionRecord {
	out := rest.DecisionRecord{
		ID:           record.ID,
		RowIndex:     record.RowIndex,
		ProductName:  record.ProductName,
		OfferID:      record.OfferID,
		Status:       record.Status.String(),
		CurrentPrice: record.CurrentPrice,
		AppliedAdj:   record.AppliedAdj,
		LogMessage:   record.LogMessage,
		EvaluatedAt:  record.EvaluatedAt.Format(time.RFC3339),
	}

	if record.Target != nil {
		out.Target = &rest.CompareTarget{
			Name:  record.Target.Name,
			Price: record.Target.Price,
		}
	}

	return out
}
