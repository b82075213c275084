package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justt1n/driffle-tool/pkg/contextx"
)

func TestRowID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	rowID, err := contextx.RowIDFromContext(ctx)
	rq.Equal(contextx.RowID(0), rowID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "row id: no value in context")

	ctx = contextx.WithRowID(ctx, contextx.RowID(42))

	rowID, err = contextx.RowIDFromContext(ctx)
	rq.Equal(contextx.RowID(42), rowID)
	rq.NoError(err)
	rq.Equal("42", rowID.String())
}
