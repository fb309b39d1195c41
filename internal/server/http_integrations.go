package server

import (
	"net/http"
)

// handleListIntegrations handles GET /integrations.
func (s *CRMServer) handleListIntegrations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.integrations.List())
}

// handleConnectIntegration handles POST /integrations/{id}/connect.
func (s *CRMServer) handleConnectIntegration(w http.ResponseWriter, r *http.Request) {
	it, err := s.integrations.Connect(r.PathValue("id"))
	if err != nil {
		writeRequestError(w, err, "failed to connect integration")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// handleDisconnectIntegration handles POST /integrations/{id}/disconnect.
func (s *CRMServer) handleDisconnectIntegration(w http.ResponseWriter, r *http.Request) {
	it, err := s.integrations.Disconnect(r.PathValue("id"))
	if err != nil {
		writeRequestError(w, err, "failed to disconnect integration")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// handleSyncIntegration handles POST /integrations/{id}/sync. The demo server
// has no real upstream, so a sync just stamps the clock.
func (s *CRMServer) handleSyncIntegration(w http.ResponseWriter, r *http.Request) {
	it, err := s.integrations.MarkSynced(r.PathValue("id"))
	if err != nil {
		writeRequestError(w, err, "failed to sync integration")
		return
	}
	writeJSON(w, http.StatusOK, it)
}
