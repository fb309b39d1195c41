package server

import (
	"net/http"
	"time"

	"github.com/crmbase/crmdesk/internal/events"
	"github.com/crmbase/crmdesk/internal/idgen"
	"github.com/crmbase/crmdesk/internal/model"
)

type createLeadInput struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Phone   string           `json:"phone"`
	Company string           `json:"company"`
	Status  model.LeadStatus `json:"status"`
	Notes   string           `json:"notes"`
}

type updateLeadInput struct {
	Name    *string           `json:"name"`
	Email   *string           `json:"email"`
	Phone   *string           `json:"phone"`
	Company *string           `json:"company"`
	Status  *model.LeadStatus `json:"status"`
	Notes   *string           `json:"notes"`
}

// handleCreateLead handles POST /leads. A repeated X-Idempotency-Key returns
// the record the first attempt produced instead of creating a duplicate.
func (s *CRMServer) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	idemKey := r.Header.Get("X-Idempotency-Key")
	if idemKey != "" {
		if recordID, err := s.store.LookupIdempotencyKey(r.Context(), idemKey); err == nil {
			if lead, err := s.store.GetLead(r.Context(), recordID); err == nil {
				writeJSON(w, http.StatusOK, lead)
				return
			}
		}
	}

	var in createLeadInput
	if err := decodeJSON(r, &in); err != nil {
		writeRequestError(w, err, "failed to create lead")
		return
	}
	if in.Status == "" {
		in.Status = model.LeadNew
	}

	id, err := idgen.NewLeadID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}
	now := time.Now().UTC()
	lead := &model.Lead{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Status:    in.Status,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := model.ValidateLead(lead); err != nil {
		writeRequestError(w, inputError(err.Error()), "failed to create lead")
		return
	}
	if err := s.store.CreateLead(r.Context(), lead); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create lead")
		return
	}
	if idemKey != "" {
		if err := s.store.SaveIdempotencyKey(r.Context(), idemKey, lead.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save idempotency key")
			return
		}
	}

	s.recordAndPublish(r.Context(), events.TopicLeadCreated, "created", "lead", lead.ID,
		actorEmail(s, r), events.LeadCreated{Lead: lead})

	writeJSON(w, http.StatusCreated, lead)
}

// handleListLeads handles GET /leads.
func (s *CRMServer) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.store.ListLeads(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	// Ensure leads is never null in JSON output.
	if leads == nil {
		leads = []*model.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

// handleGetLead handles GET /leads/{id}.
func (s *CRMServer) handleGetLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	lead, err := s.store.GetLead(r.Context(), id)
	if err != nil {
		writeRequestError(w, err, "failed to get lead")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// handleUpdateLead handles PUT /leads/{id}. Fields absent from the body are
// left unchanged.
func (s *CRMServer) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	lead, err := s.store.GetLead(r.Context(), id)
	if err != nil {
		writeRequestError(w, err, "failed to get lead")
		return
	}

	var in updateLeadInput
	if err := decodeJSON(r, &in); err != nil {
		writeRequestError(w, err, "failed to update lead")
		return
	}

	changes := make(map[string]any)
	if in.Name != nil {
		lead.Name = *in.Name
		changes["name"] = *in.Name
	}
	if in.Email != nil {
		lead.Email = *in.Email
		changes["email"] = *in.Email
	}
	if in.Phone != nil {
		lead.Phone = *in.Phone
		changes["phone"] = *in.Phone
	}
	if in.Company != nil {
		lead.Company = *in.Company
		changes["company"] = *in.Company
	}
	if in.Status != nil {
		lead.Status = *in.Status
		changes["status"] = string(*in.Status)
	}
	if in.Notes != nil {
		lead.Notes = *in.Notes
		changes["notes"] = *in.Notes
	}
	lead.UpdatedAt = time.Now().UTC()

	if err := model.ValidateLead(lead); err != nil {
		writeRequestError(w, inputError(err.Error()), "failed to update lead")
		return
	}
	if err := s.store.UpdateLead(r.Context(), lead); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update lead")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicLeadUpdated, "updated", "lead", lead.ID,
		actorEmail(s, r), events.LeadUpdated{Lead: lead, Changes: changes})

	writeJSON(w, http.StatusOK, lead)
}

// handleDeleteLead handles DELETE /leads/{id}.
func (s *CRMServer) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteLead(r.Context(), id); err != nil {
		writeRequestError(w, err, "failed to delete lead")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicLeadDeleted, "deleted", "lead", id,
		actorEmail(s, r), events.LeadDeleted{LeadID: id})

	w.WriteHeader(http.StatusNoContent)
}

// actorEmail resolves the acting user's email for audit entries.
func actorEmail(s *CRMServer, r *http.Request) string {
	if user := s.sessionUser(bearerToken(r)); user != nil {
		return user.Email
	}
	return ""
}
