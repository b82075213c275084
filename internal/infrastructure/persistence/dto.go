package persistence

import (
	"time"

	"github.com/justt1n/driffle-tool/internal/domain/entity"
)

// decisionSchema maps one decisions row.
type decisionSchema struct {
	ID           int64     `db:"id"`
	RowIndex     int       `db:"row_index"`
	ProductName  string    `db:"product_name"`
	OfferID      string    `db:"offer_id"`
	Status       int       `db:"status"`
	CompareMode  int       `db:"compare_mode"`
	CurrentPrice float64   `db:"current_price"`
	TargetName   *string   `db:"target_name"`
	TargetPrice  *float64  `db:"target_price"`
	AppliedAdj   float64   `db:"applied_adj"`
	LogMessage   string    `db:"log_message"`
	EvaluatedAt  time.Time `db:"evaluated_at"`
}

func fromDecision(d entity.Decision) decisionSchema {
	schema := decisionSchema{
		RowIndex:     d.Rule.RowIndex,
		ProductName:  d.Rule.ProductName,
		OfferID:      d.OfferID,
		Status:       int(d.Status),
		CompareMode:  int(d.Rule.CompareMode),
		CurrentPrice: d.Rule.CurrentPrice,
		AppliedAdj:   d.Rule.AppliedAdj,
		LogMessage:   d.LogMessage,
		EvaluatedAt:  d.EvaluatedAt,
	}

	if d.Target != nil {
		schema.TargetName = &d.Target.Name
		schema.TargetPrice = &d.Target.Price
	}

	return schema
}

func (s *decisionSchema) toDomain() entity.DecisionRecord {
	record := entity.DecisionRecord{
		ID:           s.ID,
		RowIndex:     s.RowIndex,
		ProductName:  s.ProductName,
		OfferID:      s.OfferID,
		Status:       entity.DecisionStatus(s.Status),
		CurrentPrice: s.CurrentPrice,
		AppliedAdj:   s.AppliedAdj,
		LogMessage:   s.LogMessage,
		EvaluatedAt:  s.EvaluatedAt,
	}

	if s.TargetName != nil && s.TargetPrice != nil {
		record.Target = &entity.CompareTarget{
			Name:  *s.TargetName,
			Price: *s.TargetPrice,
		}
	}

	return record
}
