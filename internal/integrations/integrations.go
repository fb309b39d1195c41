// Package integrations tracks the external services wired into the CRM and
// their connection health.
package integrations

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/crmbase/crmdesk/internal/model"
)

// ErrUnknown is returned for integration IDs the registry does not hold.
var ErrUnknown = errors.New("unknown integration")

// Registry holds the known integrations. Safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	items map[string]*model.Integration
	now   func() time.Time
}

// NewRegistry creates a registry seeded with the stock integrations, all
// starting disconnected.
func NewRegistry() *Registry {
	r := &Registry{
		items: make(map[string]*model.Integration),
		now:   time.Now,
	}
	for _, name := range []string{"Asana", "QuickBooks", "Google Drive"} {
		id := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		r.items[id] = &model.Integration{
			ID:     id,
			Name:   name,
			Status: model.IntegrationDisconnected,
		}
	}
	return r
}

// List returns all integrations ordered by name.
func (r *Registry) List() []model.Integration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Integration, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	slices.SortFunc(out, func(a, b model.Integration) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Get returns a single integration by ID.
func (r *Registry) Get(id string) (*model.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	cp := *it
	return &cp, nil
}

// Connect marks the integration as connected and clears any recorded error.
func (r *Registry) Connect(id string) (*model.Integration, error) {
	return r.mutate(id, func(it *model.Integration) {
		it.Status = model.IntegrationConnected
		it.ErrorMessage = ""
	})
}

// Disconnect marks the integration as disconnected.
func (r *Registry) Disconnect(id string) (*model.Integration, error) {
	return r.mutate(id, func(it *model.Integration) {
		it.Status = model.IntegrationDisconnected
	})
}

// MarkSynced records a successful sync. A disconnected integration cannot
// sync, so its status flips to connected too.
func (r *Registry) MarkSynced(id string) (*model.Integration, error) {
	return r.mutate(id, func(it *model.Integration) {
		t := r.now()
		it.LastSyncAt = &t
		it.Status = model.IntegrationConnected
		it.ErrorMessage = ""
	})
}

// MarkError records a sync failure with its message.
func (r *Registry) MarkError(id, msg string) (*model.Integration, error) {
	return r.mutate(id, func(it *model.Integration) {
		it.Status = model.IntegrationError
		it.ErrorMessage = msg
	})
}

func (r *Registry) mutate(id string, fn func(*model.Integration)) (*model.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	fn(it)
	cp := *it
	return &cp, nil
}
