// Package model defines the core CRM record types shared by the client,
// the server, and the store layer.
package model

import "time"

// LeadStatus represents the current state of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadLost      LeadStatus = "lost"
)

// String returns the string representation of the status.
func (s LeadStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadLost:
		return true
	}
	return false
}

// LeadStatuses lists all valid lead statuses in display order.
func LeadStatuses() []LeadStatus {
	return []LeadStatus{LeadNew, LeadContacted, LeadQualified, LeadLost}
}

// Lead is a sales contact record. Status transitions are unconstrained:
// any valid status may be set directly, there is no state machine.
type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Company   string     `json:"company,omitempty"`
	Status    LeadStatus `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
