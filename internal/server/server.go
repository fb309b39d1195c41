// Package server implements the HTTP backend for the CRM: auth, lead and
// payment-request CRUD, integrations, and the audit/event pipeline.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/crmbase/crmdesk/internal/events"
	"github.com/crmbase/crmdesk/internal/idgen"
	"github.com/crmbase/crmdesk/internal/integrations"
	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/store"
)

// Credentials is the single account the demo server accepts.
type Credentials struct {
	Email    string
	Password string
}

// CRMServer holds the backend state shared by all handlers.
type CRMServer struct {
	store        store.Store
	publisher    events.Publisher
	integrations *integrations.Registry
	creds        Credentials

	sessionMu sync.RWMutex
	sessions  map[string]*model.User // bearer token -> user
}

// NewCRMServer returns a server backed by the given store and publisher.
func NewCRMServer(s store.Store, p events.Publisher, creds Credentials) *CRMServer {
	return &CRMServer{
		store:        s,
		publisher:    p,
		integrations: integrations.NewRegistry(),
		creds:        creds,
		sessions:     make(map[string]*model.User),
	}
}

// issueSession creates a bearer token for the user and registers it.
func (s *CRMServer) issueSession(user *model.User) (string, error) {
	token, err := idgen.NewToken()
	if err != nil {
		return "", err
	}
	s.sessionMu.Lock()
	s.sessions[token] = user
	s.sessionMu.Unlock()
	return token, nil
}

// sessionUser returns the user a token belongs to, or nil.
func (s *CRMServer) sessionUser(token string) *model.User {
	s.sessionMu.RLock()
	defer s.sessionMu.RUnlock()
	return s.sessions[token]
}

// dropSession invalidates a token.
func (s *CRMServer) dropSession(token string) {
	s.sessionMu.Lock()
	delete(s.sessions, token)
	s.sessionMu.Unlock()
}

// recordAndPublish writes an audit entry and publishes the event to NATS.
// Both operations are best-effort; failures are logged but do not block the caller.
func (s *CRMServer) recordAndPublish(ctx context.Context, topic, action, entity, entityID, actor string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event", "topic", topic, "entity_id", entityID, "error", err)
		return
	}
	if err := s.store.RecordAudit(ctx, &model.AuditEvent{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Actor:     actor,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		slog.Warn("failed to record audit event", "topic", topic, "entity_id", entityID, "error", err)
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "entity_id", entityID, "error", err)
	}
}

// inputError indicates invalid user input.
// The transport layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
