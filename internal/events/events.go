package events

import (
	"context"

	"github.com/crmbase/crmdesk/internal/model"
)

// Event topic constants
const (
	TopicLeadCreated = "crm.lead.created"
	TopicLeadUpdated = "crm.lead.updated"
	TopicLeadDeleted = "crm.lead.deleted"

	TopicPaymentCreated = "crm.payment.created"
	TopicPaymentUpdated = "crm.payment.updated"
	TopicPaymentDeleted = "crm.payment.deleted"

	TopicSessionLogin = "crm.session.login"
)

// Event types

type LeadCreated struct {
	Lead *model.Lead `json:"lead"`
}

type LeadUpdated struct {
	Lead    *model.Lead    `json:"lead"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type LeadDeleted struct {
	LeadID string `json:"lead_id"`
}

type PaymentCreated struct {
	PaymentRequest *model.PaymentRequest `json:"payment_request"`
}

type PaymentUpdated struct {
	PaymentRequest *model.PaymentRequest `json:"payment_request"`
	Changes        map[string]any        `json:"changes"`
}

type PaymentDeleted struct {
	PaymentRequestID string `json:"payment_request_id"`
}

type SessionLogin struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
