package store

import (
	"context"
	"errors"

	"github.com/crmbase/crmdesk/internal/model"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence interface for the CRM backend.
type Store interface {
	// Lead CRUD
	CreateLead(ctx context.Context, lead *model.Lead) error
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context) ([]*model.Lead, error)
	UpdateLead(ctx context.Context, lead *model.Lead) error
	DeleteLead(ctx context.Context, id string) error

	// Payment request CRUD
	CreatePaymentRequest(ctx context.Context, pr *model.PaymentRequest) error
	GetPaymentRequest(ctx context.Context, id string) (*model.PaymentRequest, error)
	ListPaymentRequests(ctx context.Context) ([]*model.PaymentRequest, error)
	UpdatePaymentRequest(ctx context.Context, pr *model.PaymentRequest) error
	DeletePaymentRequest(ctx context.Context, id string) error

	// Idempotency keys map a client write attempt to the record it produced,
	// so a retried POST returns the original record instead of a duplicate.
	LookupIdempotencyKey(ctx context.Context, key string) (string, error)
	SaveIdempotencyKey(ctx context.Context, key, recordID string) error

	// Audit log
	RecordAudit(ctx context.Context, event *model.AuditEvent) error
	ListAudit(ctx context.Context, entityID string) ([]*model.AuditEvent, error)

	// Lifecycle
	Close() error
}
