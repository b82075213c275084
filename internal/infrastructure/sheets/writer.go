package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/justt1n/driffle-tool/internal/domain"
	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/pkg/errcodes"
)

const lastUpdateLayout = "2006-01-02 15:04:05"

// WriteResults pushes note and timestamp cells for every processed row in a
// single batched update.
func (s *Store) WriteResults(ctx context.Context, results []entity.RowResult) error {
	if len(results) == 0 {
		return nil
	}

	data := make([]*sheets.ValueRange, 0, len(results))

	for _, result := range results {
		data = append(data, &sheets.ValueRange{
			Range: fmt.Sprintf("%s!M%d:N%d", s.sheetName, result.RowIndex, result.RowIndex),
			Values: [][]any{{
				result.Note,
				result.LastUpdate.Format(lastUpdateLayout),
			}},
		})
	}

	if err := s.batchUpdate(ctx, data); err != nil {
		return domain.WrapError(err, errcodes.SheetUnavailable, "write results")
	}

	return nil
}
