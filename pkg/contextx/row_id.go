package contextx

import (
	"context"
	"fmt"
	"strconv"
)

// RowID identifies the spreadsheet row a decision cycle is working on.
type RowID int

type contextKeyRowID struct{}

func (r RowID) String() string {
	return strconv.Itoa(int(r))
}

func WithRowID(ctx context.Context, rowID RowID) context.Context {
	return context.WithValue(ctx, contextKeyRowID{}, rowID)
}

func RowIDFromContext(ctx context.Context) (RowID, error) {
	rowID, ok := ctx.Value(contextKeyRowID{}).(RowID)
	if !ok {
		return 0, fmt.Errorf("row id: %w", ErrNoValue)
	}

	return rowID, nil
}
