package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/withdrawal-desk/ledger/sqlite"
)

func newTestClient(t *testing.T) *sqlite.Client {
	client, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_AppendAndReadBack(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	row := []string{"", "user#42", "BET365", "$150.00", "", "Crypto", "", "03/10/2025"}
	require.NoError(t, client.AppendRow(ctx, row))

	rows, err := client.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row, rows[0])
}

func TestClient_AppendOrderPreserved(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	first := []string{"", "a", "BOOK", "$1.00", "", "Crypto", "", "01/01/2025"}
	second := []string{"", "b", "BOOK", "$2.00", "", "PayPal", "", "01/02/2025"}
	require.NoError(t, client.AppendRow(ctx, first))
	require.NoError(t, client.AppendRow(ctx, second))

	rows, err := client.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first, rows[0])
	assert.Equal(t, second, rows[1])
}

func TestClient_RejectsWrongFieldCount(t *testing.T) {
	// The 8-column layout is a hard contract; a short row is a bug in
	// the caller, not something to pad silently.

	client := newTestClient(t)

	err := client.AppendRow(context.Background(), []string{"only", "four", "fields", "here"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "8 fields")

	rows, readErr := client.Rows(context.Background())
	require.NoError(t, readErr)
	assert.Empty(t, rows)
}

func TestClient_DuplicateRowsAllowed(t *testing.T) {
	// Duplicate submissions produce duplicate rows, same as the
	// spreadsheet. No uniqueness is enforced here.

	client := newTestClient(t)
	ctx := context.Background()

	row := []string{"", "user#42", "BET365", "$150.00", "", "Crypto", "", "03/10/2025"}
	require.NoError(t, client.AppendRow(ctx, row))
	require.NoError(t, client.AppendRow(ctx, row))

	rows, err := client.Rows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
