package resource

import (
	"context"

	"github.com/crmbase/crmdesk/internal/api"
	"github.com/crmbase/crmdesk/internal/model"
)

// Leads mirrors the lead collection and routes writes through the backend.
type Leads struct {
	*Mirror[model.Lead]
	client *api.Client
}

// NewLeads creates the lead mirror over the given client.
func NewLeads(client *api.Client) *Leads {
	return &Leads{
		Mirror: NewMirror(func(l model.Lead) string { return l.ID }, client.ListLeads),
		client: client,
	}
}

func (l *Leads) Create(ctx context.Context, req *api.CreateLeadRequest) (*model.Lead, error) {
	return l.Mirror.Create(ctx, func(ctx context.Context) (*model.Lead, error) {
		return l.client.CreateLead(ctx, req)
	})
}

func (l *Leads) Update(ctx context.Context, id string, req *api.UpdateLeadRequest) (*model.Lead, error) {
	return l.Mirror.Update(ctx, func(ctx context.Context) (*model.Lead, error) {
		return l.client.UpdateLead(ctx, id, req)
	})
}

func (l *Leads) Delete(ctx context.Context, id string) error {
	return l.Mirror.Delete(ctx, id, func(ctx context.Context) error {
		return l.client.DeleteLead(ctx, id)
	})
}

// Get fetches a single lead directly from the backend, bypassing the mirror,
// so detail views always show current data.
func (l *Leads) Get(ctx context.Context, id string) (*model.Lead, error) {
	return l.client.GetLead(ctx, id)
}
