package model

import "time"

// IntegrationStatus represents the connection state of an external integration.
type IntegrationStatus string

const (
	IntegrationConnected    IntegrationStatus = "connected"
	IntegrationDisconnected IntegrationStatus = "disconnected"
	IntegrationError        IntegrationStatus = "error"
)

// String returns the string representation of the status.
func (s IntegrationStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s IntegrationStatus) IsValid() bool {
	switch s {
	case IntegrationConnected, IntegrationDisconnected, IntegrationError:
		return true
	}
	return false
}

// Integration is an external integration entry. Connection state lives in
// the server's in-memory registry and is simulated; nothing reaches the
// actual third-party services.
type Integration struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Status       IntegrationStatus `json:"status"`
	LastSyncAt   *time.Time        `json:"last_sync_at,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
}
