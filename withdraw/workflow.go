/*
workflow.go - The selection state machine

PURPOSE:
  Drives one requester through: amount validation -> book selection
  (optionally paginated) -> payment-method selection -> commit. One
  Workflow is shared by all exchanges (it is immutable configuration);
  each exchange owns exactly one Request, so no locking is needed here.

STATE MACHINE:

  Create ──▶ awaiting_book ──▶ awaiting_method ──▶ completed
                  │  ▲                │
             next/previous            └──────────▶ failed
              (clamped)                       (ledger append error)

  Transitions are one-directional; only CurrentPage moves within
  awaiting_book. The terminal status is written only after the ledger
  call resolves, so a caller never observes a torn completed/failed.

PAGINATION POLICY:
  Page moves past either boundary are clamped silently, not rejected.
  The gateway disables the buttons at the boundary; the workflow stays
  safe if invoked there anyway. This mirrors the observed behavior of
  the desk it replaces - converting the clamp to a hard error would
  change user-visible behavior.

SEE ALSO:
  - types.go: Request and Status
  - paginate.go: Page windowing
  - writer.go: Commit step
*/
package withdraw

import "context"

// =============================================================================
// WORKFLOW
// =============================================================================

// Workflow validates selections against its catalogs and commits completed
// requests through the Writer. All fields are fixed at construction.
type Workflow struct {
	Books    Catalog
	Methods  Catalog
	PageSize int
	Writer   *Writer
}

// NewWorkflow builds a workflow. A non-positive pageSize falls back to
// DefaultPageSize.
func NewWorkflow(books, methods Catalog, pageSize int, writer *Writer) *Workflow {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Workflow{Books: books, Methods: methods, PageSize: pageSize, Writer: writer}
}

// =============================================================================
// CREATION
// =============================================================================

// Create starts a new exchange at the book-selection step. It fails with
// ErrNonPositiveAmount when amount <= 0; no request is constructed then.
// An empty requesterID falls back to "Unknown".
func (w *Workflow) Create(requesterID string, amount Amount) (*Request, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if requesterID == "" {
		requesterID = "Unknown"
	}
	return &Request{
		RequesterID: requesterID,
		Amount:      amount,
		CurrentPage: 0,
		Status:      StatusAwaitingBook,
	}, nil
}

// CreateWithBook starts a new exchange with the book already chosen,
// skipping the paginated step (the free-text entry path). The book is
// still validated against the catalog.
func (w *Workflow) CreateWithBook(requesterID string, amount Amount, book string) (*Request, error) {
	req, err := w.Create(requesterID, amount)
	if err != nil {
		return nil, err
	}
	if err := w.SelectBook(req, book); err != nil {
		return nil, err
	}
	return req, nil
}

// =============================================================================
// BOOK SELECTION
// =============================================================================

// BookPage returns the books visible on the request's current page and the
// enabled state of previous/next navigation.
func (w *Workflow) BookPage(req *Request) (visible []string, hasPrevious, hasNext bool) {
	return Page(w.Books, w.PageSize, req.CurrentPage)
}

// NextPage advances the book page by one, clamped to the last page.
// Outside awaiting_book (or at the boundary) it is a no-op.
func (w *Workflow) NextPage(req *Request) {
	if req.Status != StatusAwaitingBook {
		return
	}
	if req.CurrentPage < LastPageIndex(len(w.Books), w.PageSize) {
		req.CurrentPage++
	}
}

// PreviousPage moves the book page back by one, clamped to zero.
// Outside awaiting_book (or at the boundary) it is a no-op.
func (w *Workflow) PreviousPage(req *Request) {
	if req.Status != StatusAwaitingBook {
		return
	}
	if req.CurrentPage > 0 {
		req.CurrentPage--
	}
}

// SelectBook records the chosen book and advances to method selection.
// The selection is validated defensively even though the gateway only
// offers catalog members.
func (w *Workflow) SelectBook(req *Request, book string) error {
	if req.Status != StatusAwaitingBook || !w.Books.Contains(book) {
		return &InvalidSelectionError{Value: book, Stage: req.Status}
	}
	req.SelectedBook = book
	req.Status = StatusAwaitingMethod
	return nil
}

// =============================================================================
// METHOD SELECTION + COMMIT
// =============================================================================

// SelectMethod records the chosen method and immediately commits the
// request to the ledger. On success the request is completed and the
// returned string is the confirmation summary. On a ledger failure the
// request is failed and the returned string carries the underlying cause;
// the record is considered lost and must be resubmitted manually.
//
// The request is not mutated until the append resolves: a torn state is
// never observable, and an InvalidSelectionError leaves the request usable.
func (w *Workflow) SelectMethod(ctx context.Context, req *Request, method string) (string, error) {
	if req.Status != StatusAwaitingMethod || !w.Methods.Contains(method) {
		return "", &InvalidSelectionError{Value: method, Stage: req.Status}
	}

	msg, err := w.Writer.Append(ctx, req, method)
	if err != nil {
		req.SelectedMethod = method
		req.Status = StatusFailed
		return "Failed to log data: " + causeOf(err), err
	}

	req.SelectedMethod = method
	req.Status = StatusCompleted
	return msg, nil
}

// causeOf unwraps a *LedgerError down to the external ledger's own message.
func causeOf(err error) string {
	if le, ok := err.(*LedgerError); ok && le.Cause != nil {
		return le.Cause.Error()
	}
	return err.Error()
}
