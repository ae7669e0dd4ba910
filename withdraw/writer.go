/*
writer.go - Formats a completed request and appends it to the ledger

PURPOSE:
  The Writer is the single point where a request leaves this process: it
  renders the fixed 8-field row and hands it to the external ledger
  client, once. The spreadsheet is authoritative; nothing is read back.

CRITICAL INVARIANTS:
  1. ONE ATTEMPT: No retry on failure. The ledger's failure modes are
     opaque; a stale retry could land a duplicate row.
  2. NO READ-BEFORE-WRITE: Duplicate submissions from a confused user
     produce duplicate rows. The ledger is human-audited downstream.
  3. FIXED LAYOUT: The row shape lives in Record.Row and is bit-exact.

SEE ALSO:
  - types.go: Record and its Row layout
  - ledger/: LedgerClient implementations (memory, sqlite, xlsx, sheets)
*/
package withdraw

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// LEDGER CLIENT - The external collaborator
// =============================================================================

// LedgerClient appends one row to the external ledger. Implementations may
// block; the workflow waits for the call to resolve before transitioning.
// No retry contract: one call, one attempt.
type LedgerClient interface {
	AppendRow(ctx context.Context, fields []string) error
}

// =============================================================================
// WRITER
// =============================================================================

// Writer formats completed requests and appends them via a LedgerClient.
// The client is injected at construction; the Writer holds no other state.
type Writer struct {
	Client LedgerClient

	// Now stamps the ledger date. Defaults to time.Now (local time).
	Now func() time.Time
}

func NewWriter(client LedgerClient) *Writer {
	return &Writer{Client: client, Now: time.Now}
}

// Append builds the ledger row for the request's selections, appends it,
// and returns a confirmation summary for direct display to the requester.
// On failure it returns a *LedgerError carrying the underlying cause.
//
// The method is passed separately because the request's SelectedMethod is
// only set once the append has resolved (see workflow.go).
func (w *Writer) Append(ctx context.Context, req *Request, method string) (string, error) {
	rec := Record{
		RequesterID: req.RequesterID,
		Book:        req.SelectedBook,
		Amount:      req.Amount,
		Method:      method,
		Date:        w.now(),
	}

	if err := w.Client.AppendRow(ctx, rec.Row()); err != nil {
		return "", &LedgerError{Cause: err}
	}

	return Confirmation(rec), nil
}

func (w *Writer) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// Confirmation renders the human-readable summary shown to the requester
// after a successful append.
func Confirmation(rec Record) string {
	return fmt.Sprintf(
		"Withdrawal logged:\n"+
			"Client ID: %s\n"+
			"Book: %s\n"+
			"Amount: %s\n"+
			"Method: %s\n"+
			"Date: %s",
		rec.RequesterID, rec.Book, rec.Amount.Format(), rec.Method, rec.Date.Format(DateLayout),
	)
}
