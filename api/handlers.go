/*
handlers.go - HTTP handlers for the withdrawal desk

PURPOSE:
  Exposes the selection workflow over REST. Handles HTTP request/response
  and JSON shapes; all selection semantics live in the withdraw package.

ENDPOINTS:
  POST /api/withdrawals              Start an exchange (amount, optional book)
  GET  /api/withdrawals/{id}         Current prompt state
  POST /api/withdrawals/{id}/page    Turn the book page (next/previous)
  POST /api/withdrawals/{id}/book    Select a book
  POST /api/withdrawals/{id}/method  Select a method and commit

ERROR HANDLING:
  - 400: Non-positive amount, invalid selection, malformed body
  - 404: Unknown or finished session
  - 502: The external ledger rejected the append; the body carries the
         failure message for display, and the session is gone - the
         record is lost and must be resubmitted.

REQUEST FLOW:
  1. Parse HTTP request
  2. Look up the session (events are serialized per session)
  3. Call the workflow
  4. Render the next prompt or the terminal result

SEE ALSO:
  - dto.go: Request/response shapes
  - sessions.go: Session registry
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/withdrawal-desk/withdraw"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Workflow *withdraw.Workflow
	Sessions *Sessions
	Log      zerolog.Logger
}

// NewHandler creates a handler around the given workflow.
func NewHandler(wf *withdraw.Workflow, log zerolog.Logger) *Handler {
	return &Handler{
		Workflow: wf,
		Sessions: NewSessions(DefaultSessionTTL),
		Log:      log,
	}
}

// =============================================================================
// EXCHANGE HANDLERS
// =============================================================================

// CreateWithdrawal starts a new exchange.
// POST /api/withdrawals
func (h *Handler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	var body CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, err := withdraw.ParseAmount(body.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	var req *withdraw.Request
	if body.Book != "" {
		req, err = h.Workflow.CreateWithBook(body.RequesterID, amount, body.Book)
	} else {
		req, err = h.Workflow.Create(body.RequesterID, amount)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, rejectionMessage(err), err)
		return
	}

	id := h.Sessions.Create(req)
	h.Log.Info().
		Str("session_id", id).
		Str("requester_id", req.RequesterID).
		Str("status", string(req.Status)).
		Msg("exchange started")

	writeJSON(w, http.StatusCreated, h.prompt(id, req))
}

// GetWithdrawal returns the current prompt state of an exchange.
// GET /api/withdrawals/{id}
func (h *Handler) GetWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto PromptDTO
	err := h.Sessions.With(id, func(req *withdraw.Request) (bool, error) {
		dto = h.prompt(id, req)
		return false, nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// TurnPage moves the book page forward or back.
// POST /api/withdrawals/{id}/page
func (h *Handler) TurnPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body PageTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Direction != "next" && body.Direction != "previous" {
		writeError(w, http.StatusBadRequest, `Direction must be "next" or "previous"`, nil)
		return
	}

	var dto PromptDTO
	err := h.Sessions.With(id, func(req *withdraw.Request) (bool, error) {
		if body.Direction == "next" {
			h.Workflow.NextPage(req)
		} else {
			h.Workflow.PreviousPage(req)
		}
		dto = h.prompt(id, req)
		return false, nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// SelectBook records the book selection.
// POST /api/withdrawals/{id}/book
func (h *Handler) SelectBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body SelectBookRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var dto PromptDTO
	err := h.Sessions.With(id, func(req *withdraw.Request) (bool, error) {
		if err := h.Workflow.SelectBook(req, body.Book); err != nil {
			return false, err
		}
		dto = h.prompt(id, req)
		return false, nil
	})
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// SelectMethod records the method selection and commits the request.
// POST /api/withdrawals/{id}/method
func (h *Handler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body SelectMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var result ResultDTO
	err := h.Sessions.With(id, func(req *withdraw.Request) (bool, error) {
		msg, err := h.Workflow.SelectMethod(r.Context(), req, body.Method)
		if err != nil && !withdraw.IsLedgerFailure(err) {
			// Invalid selection: the exchange stays alive.
			return false, err
		}

		result = ResultDTO{SessionID: id, Status: string(req.Status), Message: msg}
		return true, err
	})

	switch {
	case err == nil:
		h.Log.Info().
			Str("session_id", id).
			Str("status", result.Status).
			Msg("withdrawal logged")
		writeJSON(w, http.StatusOK, result)
	case withdraw.IsLedgerFailure(err):
		h.Log.Error().Err(err).Str("session_id", id).Msg("ledger append failed")
		writeJSON(w, http.StatusBadGateway, result)
	default:
		h.writeWorkflowError(w, err)
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// prompt renders the next thing to show the requester for an in-flight
// exchange.
func (h *Handler) prompt(id string, req *withdraw.Request) PromptDTO {
	dto := PromptDTO{
		SessionID: id,
		Status:    string(req.Status),
		Page:      req.CurrentPage,
	}

	switch req.Status {
	case withdraw.StatusAwaitingBook:
		dto.Prompt = "Please select a book:"
		dto.Books, dto.HasPrevious, dto.HasNext = h.Workflow.BookPage(req)
	case withdraw.StatusAwaitingMethod:
		dto.Prompt = "Please select a withdrawal method:"
		dto.Methods = h.Workflow.Methods
	}
	return dto
}

// rejectionMessage converts a workflow error into the text shown to the
// requester.
func rejectionMessage(err error) string {
	if errors.Is(err, withdraw.ErrNonPositiveAmount) {
		return "Error: The amount must be a positive number."
	}
	if errors.Is(err, withdraw.ErrInvalidSelection) {
		return "Error: That option is not available."
	}
	return "Error: Request rejected."
}

func (h *Handler) writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Session not found", nil)
	case withdraw.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, rejectionMessage(err), err)
	default:
		writeError(w, http.StatusInternalServerError, "Request failed", err)
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
