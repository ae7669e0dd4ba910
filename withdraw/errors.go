/*
errors.go - Centralized error types for the withdrawal workflow

PURPOSE:
  All error types in one place for consistency and discoverability.
  The gateway maps these onto user-facing rejection messages.

ERROR CATEGORIES:
  1. Validation errors - Bad input at request creation
  2. Selection errors - Out-of-state or non-catalog selections
  3. Ledger errors - External append failures

PROPAGATION POLICY:
  Every error here is terminal for the current step only. Nothing in this
  package panics or logs; errors travel back to the gateway as values and
  are rendered as strings for the requester.

SEE ALSO:
  - workflow.go: Raises validation and selection errors
  - writer.go: Wraps ledger failures in LedgerError
*/
package withdraw

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNonPositiveAmount is returned by Create when amount <= 0.
	// No request is constructed in that case.
	ErrNonPositiveAmount = errors.New("amount must be a positive number")

	// ErrInvalidSelection is returned when a selection is made outside its
	// valid state or names a value that is not in the catalog. The request
	// is left unchanged and remains usable.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrLedgerAppend is returned when the external ledger rejects the
	// append. The record is considered lost; resubmission is manual.
	ErrLedgerAppend = errors.New("ledger append failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidSelectionError reports a rejected book or method selection.
type InvalidSelectionError struct {
	Value string // what the caller tried to select
	Stage Status // the status the request was in
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q in state %s", e.Value, e.Stage)
}

func (e *InvalidSelectionError) Unwrap() error {
	return ErrInvalidSelection
}

// LedgerError reports a failed append with the underlying cause preserved
// for display. No retry is attempted on a LedgerError: the external
// ledger's failure modes are opaque and a blind retry could duplicate rows.
type LedgerError struct {
	Cause error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger append failed: %v", e.Cause)
}

func (e *LedgerError) Unwrap() error {
	return ErrLedgerAppend
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInvalidInput returns true if the error is due to bad requester input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrInvalidSelection)
}

// IsLedgerFailure returns true if the external ledger rejected the append.
func IsLedgerFailure(err error) bool {
	return errors.Is(err, ErrLedgerAppend)
}
