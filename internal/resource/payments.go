package resource

import (
	"context"

	"github.com/crmbase/crmdesk/internal/api"
	"github.com/crmbase/crmdesk/internal/model"
)

// Payments mirrors the payment-request collection.
type Payments struct {
	*Mirror[model.PaymentRequest]
	client *api.Client
}

// NewPayments creates the payment-request mirror over the given client.
func NewPayments(client *api.Client) *Payments {
	return &Payments{
		Mirror: NewMirror(func(p model.PaymentRequest) string { return p.ID }, client.ListPaymentRequests),
		client: client,
	}
}

func (p *Payments) Create(ctx context.Context, req *api.CreatePaymentRequest) (*model.PaymentRequest, error) {
	return p.Mirror.Create(ctx, func(ctx context.Context) (*model.PaymentRequest, error) {
		return p.client.CreatePaymentRequest(ctx, req)
	})
}

func (p *Payments) Update(ctx context.Context, id string, req *api.UpdatePaymentRequest) (*model.PaymentRequest, error) {
	return p.Mirror.Update(ctx, func(ctx context.Context) (*model.PaymentRequest, error) {
		return p.client.UpdatePaymentRequest(ctx, id, req)
	})
}

func (p *Payments) Delete(ctx context.Context, id string) error {
	return p.Mirror.Delete(ctx, id, func(ctx context.Context) error {
		return p.client.DeletePaymentRequest(ctx, id)
	})
}

// Get fetches a single payment request directly from the backend.
func (p *Payments) Get(ctx context.Context, id string) (*model.PaymentRequest, error) {
	return p.client.GetPaymentRequest(ctx, id)
}
