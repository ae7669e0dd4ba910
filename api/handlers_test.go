package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs/zerolog"

	"github.com/warp/withdrawal-desk/api"
	"github.com/warp/withdrawal-desk/ledger"
	"github.com/warp/withdrawal-desk/withdraw"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var testBooks = withdraw.Catalog{"FANDUEL", "BET365", "BODOG", "CAESARS", "PINNY", "RIVALRY", "WILDZ"}

func newTestServer(t *testing.T) (*httptest.Server, *ledger.Memory) {
	client := ledger.NewMemory()
	writer := withdraw.NewWriter(client)
	writer.Now = func() time.Time {
		return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	}

	wf := withdraw.NewWorkflow(testBooks, withdraw.DefaultPaymentMethods, 3, writer)
	handler := api.NewHandler(wf, zerolog.Nop())

	srv := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv, client
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// =============================================================================
// HAPPY PATH
// =============================================================================

func TestGateway_FullExchange(t *testing.T) {
	// GIVEN: A fresh exchange for $150
	// WHEN: Paging once, selecting a book, then a method
	// THEN: The ledger receives the exact row and the confirmation is
	// returned for display

	srv, client := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/withdrawals", api.CreateWithdrawalRequest{
		RequesterID: "user#42",
		Amount:      "150.0",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	prompt := decode[api.PromptDTO](t, resp)

	assert.Equal(t, "awaiting_book", prompt.Status)
	assert.Equal(t, []string{"FANDUEL", "BET365", "BODOG"}, prompt.Books)
	assert.False(t, prompt.HasPrevious)
	assert.True(t, prompt.HasNext)

	id := prompt.SessionID
	require.NotEmpty(t, id)

	// Page forward and back; the window follows.
	resp = postJSON(t, srv.URL+"/api/withdrawals/"+id+"/page", api.PageTurnRequest{Direction: "next"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prompt = decode[api.PromptDTO](t, resp)
	assert.Equal(t, 1, prompt.Page)
	assert.Equal(t, []string{"CAESARS", "PINNY", "RIVALRY"}, prompt.Books)
	assert.True(t, prompt.HasPrevious)

	resp = postJSON(t, srv.URL+"/api/withdrawals/"+id+"/page", api.PageTurnRequest{Direction: "previous"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prompt = decode[api.PromptDTO](t, resp)
	assert.Equal(t, 0, prompt.Page)

	// Select book
	resp = postJSON(t, srv.URL+"/api/withdrawals/"+id+"/book", api.SelectBookRequest{Book: "BET365"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prompt = decode[api.PromptDTO](t, resp)
	assert.Equal(t, "awaiting_method", prompt.Status)
	assert.Equal(t, []string(withdraw.DefaultPaymentMethods), prompt.Methods)

	// Select method -> commit
	resp = postJSON(t, srv.URL+"/api/withdrawals/"+id+"/method", api.SelectMethodRequest{Method: "Crypto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[api.ResultDTO](t, resp)

	assert.Equal(t, "completed", result.Status)
	assert.Contains(t, result.Message, "$150.00")
	assert.Contains(t, result.Message, "BET365")
	assert.Contains(t, result.Message, "Crypto")

	rows := client.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"", "user#42", "BET365", "$150.00", "", "Crypto", "", "03/10/2025",
	}, rows[0])

	// The session is gone once terminal.
	getResp, err := http.Get(srv.URL + "/api/withdrawals/" + id)
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestGateway_CreateWithBook_SkipsToMethod(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/withdrawals", api.CreateWithdrawalRequest{
		RequesterID: "user#42",
		Amount:      "25",
		Book:        "BODOG",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	prompt := decode[api.PromptDTO](t, resp)

	assert.Equal(t, "awaiting_method", prompt.Status)
	assert.Empty(t, prompt.Books)
	assert.NotEmpty(t, prompt.Methods)
}

// =============================================================================
// REJECTIONS
// =============================================================================

func TestGateway_NonPositiveAmount_Rejected(t *testing.T) {
	srv, client := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/withdrawals", api.CreateWithdrawalRequest{
		RequesterID: "user#42",
		Amount:      "-5",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[api.ErrorResponse](t, resp)

	assert.Equal(t, "Error: The amount must be a positive number.", errResp.Error)
	assert.Empty(t, client.Rows())
}

func TestGateway_MalformedAmount_Rejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/withdrawals", api.CreateWithdrawalRequest{
		Amount: "one hundred",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGateway_UnknownSession_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/withdrawals/no-such-id/book", api.SelectBookRequest{Book: "BET365"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGateway_InvalidBook_KeepsSessionAlive(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/withdrawals", api.CreateWithdrawalRequest{
		RequesterID: "user#42",
		Amount:      "150",
	})
	prompt := decode[api.PromptDTO](t, resp)
	id := prompt.SessionID

	resp = postJSON(t, srv.URL+"/api/withdrawals/"+id+"/book", api.SelectBookRequest{Book: "NOT-A-BOOK"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Exchange is still usable.
	resp2 := postJSON(t, srv.URL+"/api/withdrawals/"+id+"/book", api.SelectBookRequest{Book: "BET365"})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestGateway_LedgerFailure_ReturnsFailureMessage(t *testing.T) {
	// GIVEN: The external ledger rejects every append
	// THEN: 502 with the failure text, status failed, session discarded

	srv, client := newTestServer(t)
	client.Fail = errors.New("invalid_grant: account not found")

	resp := postJSON(t, srv.URL+"/api/withdrawals", api.CreateWithdrawalRequest{
		RequesterID: "user#42",
		Amount:      "150",
		Book:        "BET365",
	})
	prompt := decode[api.PromptDTO](t, resp)
	id := prompt.SessionID

	resp = postJSON(t, srv.URL+"/api/withdrawals/"+id+"/method", api.SelectMethodRequest{Method: "Crypto"})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	result := decode[api.ResultDTO](t, resp)

	assert.Equal(t, "failed", result.Status)
	assert.Contains(t, result.Message, "invalid_grant: account not found")
	assert.NotContains(t, result.Message, "Withdrawal logged")

	// Failed exchanges are not resumable.
	getResp, err := http.Get(srv.URL + "/api/withdrawals/" + id)
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}
