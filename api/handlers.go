/*
handlers.go - HTTP API handlers for the lending system

PURPOSE:
  Exposes the obligation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Public lookup:
    GET    /api/lookup?document=NNN       Client + obligations by document

  Clients (admin intake):
    GET    /api/clients                   List all clients
    POST   /api/clients                   Register client
    GET    /api/clients/{id}              Get client details
    DELETE /api/clients/{id}              Delete client (cascades)
    POST   /api/clients/{id}/obligations  Register obligation
    GET    /api/clients/{id}/obligations  List client's obligations

  Obligations:
    GET    /api/obligations/{id}          Record + assessment
    DELETE /api/obligations/{id}          Delete obligation
    POST   /api/obligations/{id}/payments Append payment
    GET    /api/obligations/{id}/payments Payment history

AS-OF DATES:
  Resolution endpoints accept ?as_of=YYYY-MM-DD. When absent, the
  handler's clock supplies today. The engine itself never reads the
  clock.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, impossible date orderings
  - 404: Record not found
  - 409: Conflict (duplicate document number)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/inversionesmg/lending-engine/lending"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  lending.Store
	Config lending.Config

	// Now supplies the default as-of date. Overridable in tests.
	Now func() lending.Date
}

// NewHandler creates a new handler with the given store and engine config.
func NewHandler(store lending.Store, cfg lending.Config) *Handler {
	return &Handler{
		Store:  store,
		Config: cfg,
		Now:    lending.Today,
	}
}

// asOf picks the evaluation date: the as_of query parameter when present,
// otherwise today.
func (h *Handler) asOf(r *http.Request) (lending.Date, error) {
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		return lending.ParseDate(raw)
	}
	return h.Now(), nil
}

// =============================================================================
// PUBLIC LOOKUP
// =============================================================================

// Lookup resolves a client's full standing by document number. This is
// the client-facing consultation: no IDs, just the document they know.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	document := r.URL.Query().Get("document")
	if !lending.ValidDocument(document) {
		writeError(w, http.StatusBadRequest, "Invalid document number", nil)
		return
	}

	asOf, err := h.asOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
		return
	}

	ctx := r.Context()
	client, err := h.Store.GetClientByDocument(ctx, document)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up client", err)
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	obligations, err := h.Store.ListObligationsByClient(ctx, client.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list obligations", err)
		return
	}

	resp := LookupResponse{
		Client:      toClientDTO(*client),
		AsOf:        asOf.String(),
		Obligations: make([]ObligationDTO, 0, len(obligations)),
	}

	total := lending.ZeroMoney()
	for _, o := range obligations {
		assessment, err := lending.Resolve(o, asOf, h.Config)
		if err != nil {
			writeResolveError(w, o.ID, err)
			return
		}
		total = total.Add(assessment.TotalDue)
		resp.Obligations = append(resp.Obligations, toObligationDTO(o, assessment))
	}
	resp.TotalDue = total.String()

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

// ListClients returns all clients.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}

	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = toClientDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetClient returns a single client.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id := lending.ClientID(chi.URLParam(r, "id"))

	client, err := h.Store.GetClient(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get client", err)
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toClientDTO(*client))
}

// CreateClient registers a debtor after structural validation.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if !lending.ValidDocument(req.DocumentNumber) {
		writeError(w, http.StatusBadRequest, "Invalid document number (6-10 digits)", nil)
		return
	}
	if !lending.ValidPhone(req.Phone) {
		writeError(w, http.StatusBadRequest, "Invalid phone (10 digits starting with 3)", nil)
		return
	}
	if req.Email != "" && !lending.ValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email address", nil)
		return
	}

	id := req.ID
	if id == "" {
		id = fmt.Sprintf("cl-%d", time.Now().UnixNano())
	}

	client := lending.Client{
		ID:             lending.ClientID(id),
		Name:           req.Name,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		Email:          req.Email,
	}

	if err := h.Store.SaveClient(r.Context(), client); err != nil {
		writeStoreError(w, "Failed to create client", err)
		return
	}
	writeJSON(w, http.StatusCreated, toClientDTO(client))
}

// DeleteClient removes a client and all of their obligations.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := lending.ClientID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteClient(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete client", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(id)})
}

// =============================================================================
// OBLIGATION HANDLERS
// =============================================================================

// CreateObligation registers a debt for an existing client.
func (h *Handler) CreateObligation(w http.ResponseWriter, r *http.Request) {
	clientID := lending.ClientID(chi.URLParam(r, "id"))

	var req CreateObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Principal <= 0 {
		writeError(w, http.StatusBadRequest, "Principal must be positive", nil)
		return
	}

	dueDate, err := lending.ParseDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid due_date format (use YYYY-MM-DD)", err)
		return
	}

	createdDate := h.Now()
	if req.CreatedDate != "" {
		if createdDate, err = lending.ParseDate(req.CreatedDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid created_date format (use YYYY-MM-DD)", err)
			return
		}
	}
	if dueDate.Before(createdDate) {
		writeError(w, http.StatusBadRequest, "Due date precedes created date", nil)
		return
	}

	ctx := r.Context()
	client, err := h.Store.GetClient(ctx, clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get client", err)
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	id := req.ID
	if id == "" {
		id = fmt.Sprintf("ob-%d", time.Now().UnixNano())
	}

	obligation := lending.Obligation{
		ID:          lending.ObligationID(id),
		ClientID:    clientID,
		Principal:   lending.NewMoney(req.Principal),
		DueDate:     dueDate,
		CreatedDate: createdDate,
	}

	if err := h.Store.SaveObligation(ctx, obligation); err != nil {
		writeStoreError(w, "Failed to create obligation", err)
		return
	}

	// A future-dated obligation is assessed at its created date so the
	// response never trips the engine's ordering check.
	asOf := h.Now()
	if asOf.Before(createdDate) {
		asOf = createdDate
	}
	assessment, err := lending.Resolve(obligation, asOf, h.Config)
	if err != nil {
		writeResolveError(w, obligation.ID, err)
		return
	}
	writeJSON(w, http.StatusCreated, toObligationDTO(obligation, assessment))
}

// ListObligations returns a client's obligations with assessments.
func (h *Handler) ListObligations(w http.ResponseWriter, r *http.Request) {
	clientID := lending.ClientID(chi.URLParam(r, "id"))

	asOf, err := h.asOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
		return
	}

	ctx := r.Context()
	client, err := h.Store.GetClient(ctx, clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get client", err)
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	obligations, err := h.Store.ListObligationsByClient(ctx, clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list obligations", err)
		return
	}

	dtos := make([]ObligationDTO, 0, len(obligations))
	for _, o := range obligations {
		assessment, err := lending.Resolve(o, asOf, h.Config)
		if err != nil {
			writeResolveError(w, o.ID, err)
			return
		}
		dtos = append(dtos, toObligationDTO(o, assessment))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetObligation returns an obligation with its assessment.
func (h *Handler) GetObligation(w http.ResponseWriter, r *http.Request) {
	id := lending.ObligationID(chi.URLParam(r, "id"))

	asOf, err := h.asOf(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
		return
	}

	obligation, err := h.Store.GetObligation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get obligation", err)
		return
	}
	if obligation == nil {
		writeError(w, http.StatusNotFound, "Obligation not found", nil)
		return
	}

	assessment, err := lending.Resolve(*obligation, asOf, h.Config)
	if err != nil {
		writeResolveError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, toObligationDTO(*obligation, assessment))
}

// DeleteObligation removes a debt and its payment history.
func (h *Handler) DeleteObligation(w http.ResponseWriter, r *http.Request) {
	id := lending.ObligationID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteObligation(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete obligation", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(id)})
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// RecordPayment appends a settlement against an obligation. Rejects
// non-positive amounts and payments that would push the balance below
// zero: over-payment is an intake mistake, not a valid financial state.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id := lending.ObligationID(chi.URLParam(r, "id"))

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Payment amount must be positive", nil)
		return
	}

	date := h.Now()
	if req.Date != "" {
		var err error
		if date, err = lending.ParseDate(req.Date); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
	}

	ctx := r.Context()
	obligation, err := h.Store.GetObligation(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get obligation", err)
		return
	}
	if obligation == nil {
		writeError(w, http.StatusNotFound, "Obligation not found", nil)
		return
	}

	if date.Before(obligation.CreatedDate) {
		writeError(w, http.StatusBadRequest, "Payment date precedes obligation created date", nil)
		return
	}

	payment := lending.Payment{Amount: lending.NewMoney(req.Amount), Date: date}
	if payment.Amount.GreaterThan(obligation.RemainingPrincipal()) {
		writeError(w, http.StatusBadRequest, "Payment exceeds remaining balance", nil)
		return
	}

	if err := h.Store.AppendPayment(ctx, id, payment); err != nil {
		writeStoreError(w, "Failed to record payment", err)
		return
	}

	obligation.Payments = append(obligation.Payments, payment)
	assessment, err := lending.Resolve(*obligation, h.Now(), h.Config)
	if err != nil {
		writeResolveError(w, id, err)
		return
	}
	writeJSON(w, http.StatusCreated, toObligationDTO(*obligation, assessment))
}

// ListPayments returns an obligation's payment history.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id := lending.ObligationID(chi.URLParam(r, "id"))

	obligation, err := h.Store.GetObligation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get obligation", err)
		return
	}
	if obligation == nil {
		writeError(w, http.StatusNotFound, "Obligation not found", nil)
		return
	}

	dtos := make([]PaymentDTO, len(obligation.Payments))
	for i, p := range obligation.Payments {
		dtos[i] = PaymentDTO{Amount: p.Amount.String(), Date: p.Date.String()}
	}
	writeJSON(w, http.StatusOK, dtos)
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

// writeStoreError maps store errors to HTTP status codes.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case lending.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case lending.IsClientError(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

// writeResolveError maps engine errors: ordering/config problems are bad
// data, not server faults.
func writeResolveError(w http.ResponseWriter, id lending.ObligationID, err error) {
	message := fmt.Sprintf("Failed to resolve obligation %s", id)
	if lending.IsClientError(err) {
		writeError(w, http.StatusBadRequest, message, err)
		return
	}
	writeError(w, http.StatusInternalServerError, message, err)
}
