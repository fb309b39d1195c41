package server

import (
	"net/http"
	"time"

	"github.com/crmbase/crmdesk/internal/events"
	"github.com/crmbase/crmdesk/internal/idgen"
	"github.com/crmbase/crmdesk/internal/model"
)

type createPaymentInput struct {
	VendorName     string    `json:"vendor_name"`
	Amount         float64   `json:"amount"`
	Program        string    `json:"program"`
	DueDate        time.Time `json:"due_date"`
	RequesterEmail string    `json:"requester_email"`
	Notes          string    `json:"notes"`
}

type updatePaymentInput struct {
	VendorName     *string              `json:"vendor_name"`
	Amount         *float64             `json:"amount"`
	Program        *string              `json:"program"`
	DueDate        *time.Time           `json:"due_date"`
	RequesterEmail *string              `json:"requester_email"`
	Notes          *string              `json:"notes"`
	Status         *model.PaymentStatus `json:"status"`
	ContainerID    *string              `json:"container_id"`
	AsanaTaskID    *string              `json:"asana_task_id"`
	QBOInvoiceID   *string              `json:"qbo_invoice_id"`
	DriveFolderID  *string              `json:"drive_folder_id"`
}

// handleCreatePaymentRequest handles POST /payment-requests. New requests
// always enter the staging status.
func (s *CRMServer) handleCreatePaymentRequest(w http.ResponseWriter, r *http.Request) {
	idemKey := r.Header.Get("X-Idempotency-Key")
	if idemKey != "" {
		if recordID, err := s.store.LookupIdempotencyKey(r.Context(), idemKey); err == nil {
			if pr, err := s.store.GetPaymentRequest(r.Context(), recordID); err == nil {
				writeJSON(w, http.StatusOK, pr)
				return
			}
		}
	}

	var in createPaymentInput
	if err := decodeJSON(r, &in); err != nil {
		writeRequestError(w, err, "failed to create payment request")
		return
	}

	id, err := idgen.NewPaymentID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}
	now := time.Now().UTC()
	pr := &model.PaymentRequest{
		ID:             id,
		VendorName:     in.VendorName,
		Amount:         in.Amount,
		Program:        in.Program,
		DueDate:        in.DueDate,
		RequesterEmail: in.RequesterEmail,
		Notes:          in.Notes,
		Status:         model.PaymentStaging,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := model.ValidatePaymentRequest(pr); err != nil {
		writeRequestError(w, inputError(err.Error()), "failed to create payment request")
		return
	}
	if err := s.store.CreatePaymentRequest(r.Context(), pr); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create payment request")
		return
	}
	if idemKey != "" {
		if err := s.store.SaveIdempotencyKey(r.Context(), idemKey, pr.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save idempotency key")
			return
		}
	}

	s.recordAndPublish(r.Context(), events.TopicPaymentCreated, "created", "payment_request", pr.ID,
		actorEmail(s, r), events.PaymentCreated{PaymentRequest: pr})

	writeJSON(w, http.StatusCreated, pr)
}

// handleListPaymentRequests handles GET /payment-requests.
func (s *CRMServer) handleListPaymentRequests(w http.ResponseWriter, r *http.Request) {
	payments, err := s.store.ListPaymentRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payment requests")
		return
	}
	if payments == nil {
		payments = []*model.PaymentRequest{}
	}
	writeJSON(w, http.StatusOK, payments)
}

// handleGetPaymentRequest handles GET /payment-requests/{id}.
func (s *CRMServer) handleGetPaymentRequest(w http.ResponseWriter, r *http.Request) {
	pr, err := s.store.GetPaymentRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeRequestError(w, err, "failed to get payment request")
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

// handleUpdatePaymentRequest handles PUT /payment-requests/{id}.
func (s *CRMServer) handleUpdatePaymentRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	pr, err := s.store.GetPaymentRequest(r.Context(), id)
	if err != nil {
		writeRequestError(w, err, "failed to get payment request")
		return
	}

	var in updatePaymentInput
	if err := decodeJSON(r, &in); err != nil {
		writeRequestError(w, err, "failed to update payment request")
		return
	}

	changes := make(map[string]any)
	if in.VendorName != nil {
		pr.VendorName = *in.VendorName
		changes["vendor_name"] = *in.VendorName
	}
	if in.Amount != nil {
		pr.Amount = *in.Amount
		changes["amount"] = *in.Amount
	}
	if in.Program != nil {
		pr.Program = *in.Program
		changes["program"] = *in.Program
	}
	if in.DueDate != nil {
		pr.DueDate = *in.DueDate
		changes["due_date"] = *in.DueDate
	}
	if in.RequesterEmail != nil {
		pr.RequesterEmail = *in.RequesterEmail
		changes["requester_email"] = *in.RequesterEmail
	}
	if in.Notes != nil {
		pr.Notes = *in.Notes
		changes["notes"] = *in.Notes
	}
	if in.Status != nil {
		pr.Status = *in.Status
		changes["status"] = string(*in.Status)
	}
	if in.ContainerID != nil {
		pr.ContainerID = *in.ContainerID
		changes["container_id"] = *in.ContainerID
	}
	if in.AsanaTaskID != nil {
		pr.AsanaTaskID = *in.AsanaTaskID
		changes["asana_task_id"] = *in.AsanaTaskID
	}
	if in.QBOInvoiceID != nil {
		pr.QBOInvoiceID = *in.QBOInvoiceID
		changes["qbo_invoice_id"] = *in.QBOInvoiceID
	}
	if in.DriveFolderID != nil {
		pr.DriveFolderID = *in.DriveFolderID
		changes["drive_folder_id"] = *in.DriveFolderID
	}
	pr.UpdatedAt = time.Now().UTC()

	if err := model.ValidatePaymentRequest(pr); err != nil {
		writeRequestError(w, inputError(err.Error()), "failed to update payment request")
		return
	}
	if err := s.store.UpdatePaymentRequest(r.Context(), pr); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update payment request")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicPaymentUpdated, "updated", "payment_request", pr.ID,
		actorEmail(s, r), events.PaymentUpdated{PaymentRequest: pr, Changes: changes})

	writeJSON(w, http.StatusOK, pr)
}

// handleDeletePaymentRequest handles DELETE /payment-requests/{id}.
func (s *CRMServer) handleDeletePaymentRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeletePaymentRequest(r.Context(), id); err != nil {
		writeRequestError(w, err, "failed to delete payment request")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicPaymentDeleted, "deleted", "payment_request", id,
		actorEmail(s, r), events.PaymentDeleted{PaymentRequestID: id})

	w.WriteHeader(http.StatusNoContent)
}
