/*
handlers_test.go - HTTP tests for the lookup and admin endpoints

Exercises the full request path: router, handlers, SQLite store, and the
resolution engine, with a pinned clock so assessments are deterministic.
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inversionesmg/lending-engine/lending"
	"github.com/inversionesmg/lending-engine/store/sqlite"
)

// fixedToday is the pinned clock for all handler tests.
var fixedToday = lending.NewDate(2024, time.June, 1)

func newTestServer(t *testing.T, cfg lending.Config) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(store, cfg)
	handler.Now = func() lending.Date { return fixedToday }

	srv := httptest.NewServer(NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
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

func createClient(t *testing.T, srv *httptest.Server) ClientDTO {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/clients", CreateClientRequest{
		ID:             "cl-test",
		Name:           "Maria Lopez",
		DocumentNumber: "123456789",
		Phone:          "300 123 4567",
		Email:          "maria@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[ClientDTO](t, resp)
}

func createObligation(t *testing.T, srv *httptest.Server, clientID string, principal int64, created, due string) ObligationDTO {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/clients/"+clientID+"/obligations",
		CreateObligationRequest{Principal: principal, DueDate: due, CreatedDate: created})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[ObligationDTO](t, resp)
}

// =============================================================================
// CLIENT INTAKE
// =============================================================================

func TestCreateClient_ValidatesFields(t *testing.T) {
	srv := newTestServer(t, lending.DefaultConfig())

	cases := []struct {
		name string
		req  CreateClientRequest
	}{
		{"short document", CreateClientRequest{Name: "A", DocumentNumber: "12345", Phone: "3001234567"}},
		{"wrong phone prefix", CreateClientRequest{Name: "A", DocumentNumber: "123456", Phone: "2001234567"}},
		{"bad email", CreateClientRequest{Name: "A", DocumentNumber: "123456", Phone: "3001234567", Email: "not-an-email"}},
		{"missing name", CreateClientRequest{DocumentNumber: "123456", Phone: "3001234567"}},
	}

	for _, tc := range cases {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/clients", tc.req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.name)
		resp.Body.Close()
	}
}

func TestCreateClient_DuplicateDocumentConflicts(t *testing.T) {
	srv := newTestServer(t, lending.DefaultConfig())
	createClient(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/clients", CreateClientRequest{
		Name:           "Impostor",
		DocumentNumber: "123456789",
		Phone:          "3009999999",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// =============================================================================
// PUBLIC LOOKUP
// =============================================================================

func TestLookup_FullStanding(t *testing.T) {
	// GIVEN: a client with an overdue obligation and a partial payment
	srv := newTestServer(t, lending.DefaultConfig())
	client := createClient(t, srv)
	ob := createObligation(t, srv, client.ID, 100000, "2024-01-01", "2024-01-01")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/obligations/"+ob.ID+"/payments",
		RecordPaymentRequest{Amount: 40000, Date: "2024-01-05"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// WHEN: looked up by document 10 days past due
	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/lookup?document=123456789&as_of=2024-01-11", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lookup := decode[LookupResponse](t, resp)

	// THEN: the standing reflects remaining principal plus accrued penalty
	assert.Equal(t, "Maria Lopez", lookup.Client.Name)
	require.Len(t, lookup.Obligations, 1)

	got := lookup.Obligations[0].Assessment
	assert.Equal(t, string(lending.StatusOverdue), got.Status)
	assert.Equal(t, 10, got.DaysOverdue)
	assert.Equal(t, "50000", got.PenaltyOwed)
	assert.Equal(t, "60000", got.RemainingPrincipal)
	assert.Equal(t, "110000", got.TotalDue)
	assert.Equal(t, "110000", lookup.TotalDue)
}

func TestLookup_InvalidDocumentRejected(t *testing.T) {
	srv := newTestServer(t, lending.DefaultConfig())

	for _, doc := range []string{"", "12345", "abcdef"} {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/lookup?document="+doc, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "document %q", doc)
		resp.Body.Close()
	}
}

func TestLookup_UnknownDocumentIs404(t *testing.T) {
	srv := newTestServer(t, lending.DefaultConfig())

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/lookup?document=999999999", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// OBLIGATIONS AND PAYMENTS
// =============================================================================

func TestGetObligation_GraceWindow(t *testing.T) {
	// GIVEN: a 5-day grace window on the standard cycle
	cfg := lending.DefaultConfig()
	cfg.GraceWindowDays = 5
	srv := newTestServer(t, cfg)
	client := createClient(t, srv)
	ob := createObligation(t, srv, client.ID, 100000, "2024-01-01", "2024-01-01")

	// WHEN: viewed exactly one cycle after creation
	resp := doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/obligations/%s?as_of=2024-03-31", srv.URL, ob.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dto := decode[ObligationDTO](t, resp)

	// THEN: 2024-03-31 is day 90, the opening of the second cycle's window
	assert.Equal(t, string(lending.StatusInGrace), dto.Assessment.Status)
	assert.Equal(t, 0, dto.Assessment.DaysOverdue)
}

func TestRecordPayment_SettlesObligation(t *testing.T) {
	srv := newTestServer(t, lending.DefaultConfig())
	client := createClient(t, srv)
	ob := createObligation(t, srv, client.ID, 100000, "2024-01-01", "2024-07-01")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/obligations/"+ob.ID+"/payments",
		RecordPaymentRequest{Amount: 100000})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	dto := decode[ObligationDTO](t, resp)

	assert.Equal(t, string(lending.StatusPaid), dto.Assessment.Status)
	assert.Equal(t, "0", dto.Assessment.TotalDue)
	require.Len(t, dto.Payments, 1)
	assert.Equal(t, fixedToday.String(), dto.Payments[0].Date, "defaults to today")
}

func TestRecordPayment_Rejections(t *testing.T) {
	srv := newTestServer(t, lending.DefaultConfig())
	client := createClient(t, srv)
	ob := createObligation(t, srv, client.ID, 100000, "2024-01-01", "2024-07-01")

	cases := []struct {
		name string
		req  RecordPaymentRequest
		want int
	}{
		{"zero amount", RecordPaymentRequest{Amount: 0}, http.StatusBadRequest},
		{"negative amount", RecordPaymentRequest{Amount: -5}, http.StatusBadRequest},
		{"exceeds balance", RecordPaymentRequest{Amount: 100001}, http.StatusBadRequest},
		{"before created date", RecordPaymentRequest{Amount: 1000, Date: "2023-12-31"}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/obligations/"+ob.ID+"/payments", tc.req)
		assert.Equal(t, tc.want, resp.StatusCode, tc.name)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/obligations/ob-none/payments",
		RecordPaymentRequest{Amount: 1000})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateObligation_DueBeforeCreatedRejected(t *testing.T) {
	srv := newTestServer(t, lending.DefaultConfig())
	client := createClient(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/clients/"+client.ID+"/obligations",
		CreateObligationRequest{Principal: 1000, DueDate: "2024-01-01", CreatedDate: "2024-02-01"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteClient_RemovesLookup(t *testing.T) {
	srv := newTestServer(t, lending.DefaultConfig())
	client := createClient(t, srv)
	createObligation(t, srv, client.ID, 100000, "2024-01-01", "2024-07-01")

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/clients/"+client.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/lookup?document=123456789", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
