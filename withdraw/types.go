/*
Package withdraw implements the withdrawal-request selection workflow.

PURPOSE:
  This package contains the core of the withdrawal desk: a small state
  machine that walks a requester through picking a book and a payment
  method, then commits a single row to the external ledger. There is no
  balance to compute and no storage owned here - the spreadsheet is the
  authority.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A positive monetary quantity with deterministic formatting
  - Record: The fixed 8-field row appended to the ledger
  - Request: Per-exchange session state with a one-directional status
  - Status: awaiting_book -> awaiting_method -> completed | failed

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal so logged amounts never drift
  2. One request, one owner: No shared mutable state between exchanges
  3. Write-once: selectedBook/selectedMethod are set exactly once
  4. The row layout is a hard external contract - never reorder it

SEE ALSO:
  - workflow.go: State machine operations
  - writer.go: Ledger row construction and append
  - catalog.go: Book and payment-method catalogs
*/
package withdraw

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Monetary quantity with fixed formatting
// =============================================================================

// Amount is a withdrawal amount. Construction goes through NewAmount /
// ParseAmount so the positivity invariant holds for every value in flight.
type Amount struct {
	value decimal.Decimal
}

// NewAmount builds an Amount from a float. Prefer ParseAmount at system
// boundaries: a string keeps "150.005" exact where float64 cannot.
func NewAmount(value float64) Amount {
	return Amount{value: decimal.NewFromFloat(value)}
}

// ParseAmount builds an Amount from its decimal string form.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

func (a Amount) IsPositive() bool { return a.value.IsPositive() }

// Format renders the amount with a leading dollar sign and exactly two
// decimal digits, rounding half away from zero ("150.005" -> "$150.01").
// The rounding mode is pinned by tests; changing it changes logged rows.
func (a Amount) Format() string {
	return "$" + a.value.StringFixed(2)
}

func (a Amount) String() string { return a.value.String() }

// =============================================================================
// RECORD - One completed request, ready for the ledger
// =============================================================================

// Record is a completed request at the moment of commit. Date is captured
// in the process's local time when the record is built.
type Record struct {
	RequesterID string
	Book        string
	Amount      Amount
	Method      string
	Date        time.Time
}

// Row returns the 8-field ledger row:
//
//	["", requesterId, book, "$150.00", "", method, "", "03/10/2025"]
//
// The two interior blanks and the field order are a contract with the
// spreadsheet's column layout. Downstream formulas break if this changes.
func (r Record) Row() []string {
	return []string{
		"",
		r.RequesterID,
		r.Book,
		r.Amount.Format(),
		"",
		r.Method,
		"",
		r.Date.Format(DateLayout),
	}
}

// DateLayout is the ledger's date column format (MM/DD/YYYY).
const DateLayout = "01/02/2006"

// =============================================================================
// REQUEST - Per-exchange session state
// =============================================================================

type Status string

const (
	StatusAwaitingBook   Status = "awaiting_book"
	StatusAwaitingMethod Status = "awaiting_method"
	StatusCompleted      Status = "completed"
	StatusFailed         Status = "failed"
)

// Request holds the transient state of one interactive exchange. It lives
// in memory for the duration of the exchange and is discarded once the
// status reaches completed or failed; nothing here is ever persisted.
type Request struct {
	RequesterID string
	Amount      Amount

	// Set exactly once each, then immutable.
	SelectedBook   string
	SelectedMethod string

	// Only meaningful while Status == StatusAwaitingBook.
	CurrentPage int

	Status Status
}
