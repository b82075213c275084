package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/justt1n/driffle-tool/internal/domain"
	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/pkg/errcodes"
)

// DecisionRepository persists every evaluated decision so rounds can be
// audited after the sheet note has been overwritten by the next one.
type DecisionRepository struct {
	db *sqlx.DB
}

func NewDecisionRepository(db *sqlx.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS decisions (
		id            BIGSERIAL PRIMARY KEY,
		row_index     INT              NOT NULL,
		product_name  TEXT             NOT NULL,
		offer_id      TEXT             NOT NULL DEFAULT '',
		status        INT              NOT NULL,
		compare_mode  INT              NOT NULL,
		current_price DOUBLE PRECISION NOT NULL,
		target_name   TEXT,
		target_price  DOUBLE PRECISION,
		applied_adj   DOUBLE PRECISION NOT NULL DEFAULT 0,
		log_message   TEXT             NOT NULL DEFAULT '',
		evaluated_at  TIMESTAMPTZ      NOT NULL
	);
	CREATE INDEX IF NOT EXISTS decisions_evaluated_at_idx ON decisions (evaluated_at DESC)`

// EnsureSchema creates the decisions table on first start.
func (r *DecisionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to ensure schema")
	}

	return nil
}

func (r *DecisionRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}
	return nil
}

func (r *DecisionRepository) Record(ctx context.Context, decision entity.Decision) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		schema := fromDecision(decision)

		query := `
			INSERT INTO decisions (
				row_index, product_name, offer_id, status, compare_mode,
				current_price, target_name, target_price, applied_adj,
				log_message, evaluated_at
			) VALUES (
				:row_index, :product_name, :offer_id, :status, :compare_mode,
				:current_price, :target_name, :target_price, :applied_adj,
				:log_message, :evaluated_at
			)`

		if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to record decision")
		}
		return nil
	})
}

// ListRecent returns the latest decisions, newest first.
func (r *DecisionRepository) ListRecent(ctx context.Context, limit int) ([]entity.DecisionRecord, error) {
	query := `SELECT * FROM decisions ORDER BY evaluated_at DESC, id DESC LIMIT $1`

	var schemas []decisionSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list decisions")
	}

	records := make([]entity.DecisionRecord, 0, len(schemas))
	for i := range schemas {
		records = append(records, schemas[i].toDomain())
	}

	return records, nil
}
