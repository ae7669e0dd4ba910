/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the workflow's internal state from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNT ENCODING:
  Amounts travel as strings ("150.00"), not JSON numbers. A JSON number
  round-trips through float64 and loses exactly the low decimal digits
  the ledger's two-decimal rounding depends on.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// CreateWithdrawalRequest starts a new exchange. Book is optional: when
// present and valid the book-selection step is skipped.
type CreateWithdrawalRequest struct {
	RequesterID string `json:"requester_id"`
	Amount      string `json:"amount"`
	Book        string `json:"book,omitempty"`
}

// PageTurnRequest moves the book page. Direction is "next" or "previous".
type PageTurnRequest struct {
	Direction string `json:"direction"`
}

// SelectBookRequest picks a book from the current page.
type SelectBookRequest struct {
	Book string `json:"book"`
}

// SelectMethodRequest picks a payment method and commits the request.
type SelectMethodRequest struct {
	Method string `json:"method"`
}

// PromptDTO is the rendered state of an in-flight exchange: what to show
// the requester next.
type PromptDTO struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Prompt    string `json:"prompt"`

	// Book-selection step
	Books       []string `json:"books,omitempty"`
	Page        int      `json:"page"`
	HasPrevious bool     `json:"has_previous"`
	HasNext     bool     `json:"has_next"`

	// Method-selection step
	Methods []string `json:"methods,omitempty"`
}

// ResultDTO is the terminal response: the confirmation or failure text
// intended for direct display to the requester.
type ResultDTO struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
