package model

import (
	"encoding/json"
	"time"
)

// AuditEvent records one mutation of a CRM record.
type AuditEvent struct {
	ID       int64           `json:"id"`
	Action   string          `json:"action"` // created, updated, deleted
	Entity   string          `json:"entity"` // lead, payment_request
	EntityID string          `json:"entity_id"`
	Actor    string          `json:"actor,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
