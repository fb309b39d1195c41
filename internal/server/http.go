package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crmbase/crmdesk/internal/integrations"
	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/store"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// Requests other than POST /auth/login and GET /health must carry a bearer
// token issued by a prior login.
func (s *CRMServer) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/me", s.handleWhoAmI)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)

	mux.HandleFunc("POST /leads", s.handleCreateLead)
	mux.HandleFunc("GET /leads", s.handleListLeads)
	mux.HandleFunc("GET /leads/{id}", s.handleGetLead)
	mux.HandleFunc("PUT /leads/{id}", s.handleUpdateLead)
	mux.HandleFunc("DELETE /leads/{id}", s.handleDeleteLead)

	mux.HandleFunc("POST /payment-requests", s.handleCreatePaymentRequest)
	mux.HandleFunc("GET /payment-requests", s.handleListPaymentRequests)
	mux.HandleFunc("GET /payment-requests/{id}", s.handleGetPaymentRequest)
	mux.HandleFunc("PUT /payment-requests/{id}", s.handleUpdatePaymentRequest)
	mux.HandleFunc("DELETE /payment-requests/{id}", s.handleDeletePaymentRequest)

	mux.HandleFunc("GET /integrations", s.handleListIntegrations)
	mux.HandleFunc("POST /integrations/{id}/connect", s.handleConnectIntegration)
	mux.HandleFunc("POST /integrations/{id}/disconnect", s.handleDisconnectIntegration)
	mux.HandleFunc("POST /integrations/{id}/sync", s.handleSyncIntegration)

	mux.HandleFunc("GET /audit", s.handleListAudit)
	mux.HandleFunc("GET /stats", s.handleGetStats)
	mux.HandleFunc("GET /health", s.handleHealth)

	return RecoveryMiddleware(LoggingMiddleware(s.AuthMiddleware(mux)))
}

// handleHealth handles GET /health.
func (s *CRMServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetStats handles GET /stats.
func (s *CRMServer) handleGetStats(w http.ResponseWriter, r *http.Request) {
	leads, err := s.store.ListLeads(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	payments, err := s.store.ListPaymentRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payment requests")
		return
	}

	leadsByStatus := make(map[string]int)
	for _, l := range leads {
		leadsByStatus[string(l.Status)]++
	}
	paymentsByStatus := make(map[string]int)
	var pendingAmount float64
	for _, p := range payments {
		paymentsByStatus[string(p.Status)]++
		if p.Status != model.PaymentPaid && p.Status != model.PaymentCancelled {
			pendingAmount += p.Amount
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leads_total":        len(leads),
		"leads_by_status":    leadsByStatus,
		"payments_total":     len(payments),
		"payments_by_status": paymentsByStatus,
		"pending_amount":     pendingAmount,
	})
}

// handleListAudit handles GET /audit. An optional entity_id query parameter
// narrows the result to one record's history.
func (s *CRMServer) handleListAudit(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.ListAudit(r.Context(), r.URL.Query().Get("entity_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit log")
		return
	}
	if events == nil {
		events = []*model.AuditEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeRequestError maps a handler error onto the response: invalid input
// becomes 400, a missing record 404, anything else the fallback 500.
func writeRequestError(w http.ResponseWriter, err error, fallback string) {
	var in inputError
	switch {
	case errors.As(err, &in):
		writeError(w, http.StatusBadRequest, in.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, integrations.ErrUnknown):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads the request body into v, reporting malformed JSON as an
// input error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return inputError("invalid JSON body")
	}
	return nil
}
