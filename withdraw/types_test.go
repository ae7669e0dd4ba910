package withdraw_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/withdrawal-desk/withdraw"
)

// =============================================================================
// AMOUNT FORMATTING
// =============================================================================

func TestAmount_Format_TwoDecimals(t *testing.T) {
	// The ledger's amount column is always "$" + two decimals, rounding
	// half away from zero. This rounding mode is a fixed contract; these
	// cases pin it.

	cases := []struct {
		in   string
		want string
	}{
		{"150", "$150.00"},
		{"150.0", "$150.00"},
		{"150.005", "$150.01"},
		{"150.004", "$150.00"},
		{"0.5", "$0.50"},
		{"1234.567", "$1234.57"},
	}

	for _, tc := range cases {
		amount, err := withdraw.ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, amount.Format(), "formatting %s", tc.in)
	}
}

func TestParseAmount_RejectsGarbage(t *testing.T) {
	_, err := withdraw.ParseAmount("not-a-number")
	assert.Error(t, err)

	_, err = withdraw.ParseAmount("")
	assert.Error(t, err)
}

func TestNewAmount_Positivity(t *testing.T) {
	assert.True(t, withdraw.NewAmount(150).IsPositive())
	assert.False(t, withdraw.NewAmount(0).IsPositive())
	assert.False(t, withdraw.NewAmount(-3).IsPositive())
}

// =============================================================================
// RECORD ROW LAYOUT
// =============================================================================

func TestRecord_Row_Layout(t *testing.T) {
	// GIVEN: A completed record
	// THEN: The row is exactly 8 fields in the spreadsheet's column order,
	// including both interior blank placeholders

	amount, err := withdraw.ParseAmount("150")
	require.NoError(t, err)

	rec := withdraw.Record{
		RequesterID: "user#42",
		Book:        "BET365",
		Amount:      amount,
		Method:      "Crypto",
		Date:        time.Date(2025, time.March, 10, 14, 30, 0, 0, time.Local),
	}

	assert.Equal(t, []string{
		"", "user#42", "BET365", "$150.00", "", "Crypto", "", "03/10/2025",
	}, rec.Row())
}

func TestRecord_Row_DateIsZeroPadded(t *testing.T) {
	rec := withdraw.Record{
		Amount: withdraw.NewAmount(1),
		Date:   time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local),
	}
	assert.Equal(t, "01/05/2026", rec.Row()[7])
}
