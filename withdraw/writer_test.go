package withdraw_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/withdrawal-desk/ledger"
	"github.com/warp/withdrawal-desk/withdraw"
)

func TestWriter_Append_RowAndConfirmation(t *testing.T) {
	// GIVEN: A request with book chosen
	// WHEN: The writer commits with a method
	// THEN: One row is appended and the confirmation lists every field

	client := ledger.NewMemory()
	writer := withdraw.NewWriter(client)
	writer.Now = func() time.Time {
		return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	}

	req := &withdraw.Request{
		RequesterID:  "user#42",
		Amount:       withdraw.NewAmount(150),
		SelectedBook: "BET365",
		Status:       withdraw.StatusAwaitingMethod,
	}

	msg, err := writer.Append(context.Background(), req, "Crypto")
	require.NoError(t, err)

	rows := client.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"", "user#42", "BET365", "$150.00", "", "Crypto", "", "03/10/2025",
	}, rows[0])

	assert.Contains(t, msg, "Withdrawal logged:")
	assert.Contains(t, msg, "Client ID: user#42")
	assert.Contains(t, msg, "Book: BET365")
	assert.Contains(t, msg, "Amount: $150.00")
	assert.Contains(t, msg, "Method: Crypto")
	assert.Contains(t, msg, "Date: 03/10/2025")
}

func TestWriter_Append_WrapsFailure(t *testing.T) {
	// A failed append surfaces as *LedgerError with the cause preserved.
	// Exactly one attempt is made.

	client := ledger.NewMemory()
	client.Fail = errors.New("the caller does not have permission")
	writer := withdraw.NewWriter(client)

	req := &withdraw.Request{
		RequesterID:  "user#42",
		Amount:       withdraw.NewAmount(25),
		SelectedBook: "BODOG",
		Status:       withdraw.StatusAwaitingMethod,
	}

	msg, err := writer.Append(context.Background(), req, "PayPal")
	assert.Empty(t, msg)
	assert.ErrorIs(t, err, withdraw.ErrLedgerAppend)

	var ledgerErr *withdraw.LedgerError
	require.ErrorAs(t, err, &ledgerErr)
	assert.EqualError(t, ledgerErr.Cause, "the caller does not have permission")
}

func TestWriter_DefaultsToWallClock(t *testing.T) {
	// A writer built by NewWriter stamps today's date.

	client := ledger.NewMemory()
	writer := withdraw.NewWriter(client)

	req := &withdraw.Request{
		RequesterID:  "user#1",
		Amount:       withdraw.NewAmount(5),
		SelectedBook: "PINNY",
		Status:       withdraw.StatusAwaitingMethod,
	}

	_, err := writer.Append(context.Background(), req, "Crypto")
	require.NoError(t, err)

	rows := client.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, time.Now().Format(withdraw.DateLayout), rows[0][7])
}
