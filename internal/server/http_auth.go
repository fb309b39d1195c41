package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/crmbase/crmdesk/internal/events"
	"github.com/crmbase/crmdesk/internal/model"
)

// handleLogin handles POST /auth/login.
func (s *CRMServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeRequestError(w, err, "failed to log in")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(in.Email), []byte(s.creds.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(s.creds.Password)) == 1
	if !emailOK || !passOK {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	user := &model.User{ID: "usr-demo", Email: s.creds.Email, Name: "Demo Admin"}
	token, err := s.issueSession(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	if err := s.publisher.Publish(r.Context(), events.TopicSessionLogin, events.SessionLogin{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		slog.Warn("failed to publish login event", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// handleWhoAmI handles GET /auth/me.
func (s *CRMServer) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	user := s.sessionUser(bearerToken(r))
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleLogout handles POST /auth/logout.
func (s *CRMServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.dropSession(bearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}
