// Package memory implements store.Store with in-process maps. It backs the
// demo server when no database URL is configured.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/store"
)

// MemoryStore implements store.Store without external dependencies.
type MemoryStore struct {
	mu       sync.RWMutex
	leads    map[string]*model.Lead
	payments map[string]*model.PaymentRequest
	idemKeys map[string]string
	audit    []*model.AuditEvent
	auditSeq int64
}

// Compile-time check that MemoryStore implements store.Store.
var _ store.Store = (*MemoryStore)(nil)

// New creates an empty in-memory store.
func New() *MemoryStore {
	return &MemoryStore{
		leads:    make(map[string]*model.Lead),
		payments: make(map[string]*model.PaymentRequest),
		idemKeys: make(map[string]string),
	}
}

func (s *MemoryStore) CreateLead(ctx context.Context, lead *model.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *lead
	s.leads[lead.ID] = &cp
	return nil
}

func (s *MemoryStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lead, ok := s.leads[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *lead
	return &cp, nil
}

func (s *MemoryStore) ListLeads(ctx context.Context) ([]*model.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		cp := *lead
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *model.Lead) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *MemoryStore) UpdateLead(ctx context.Context, lead *model.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[lead.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *lead
	s.leads[lead.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteLead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.leads, id)
	return nil
}

func (s *MemoryStore) CreatePaymentRequest(ctx context.Context, pr *model.PaymentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *pr
	s.payments[pr.ID] = &cp
	return nil
}

func (s *MemoryStore) GetPaymentRequest(ctx context.Context, id string) (*model.PaymentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pr, ok := s.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *pr
	return &cp, nil
}

func (s *MemoryStore) ListPaymentRequests(ctx context.Context) ([]*model.PaymentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.PaymentRequest, 0, len(s.payments))
	for _, pr := range s.payments {
		cp := *pr
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *model.PaymentRequest) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *MemoryStore) UpdatePaymentRequest(ctx context.Context, pr *model.PaymentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[pr.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *pr
	s.payments[pr.ID] = &cp
	return nil
}

func (s *MemoryStore) DeletePaymentRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.payments, id)
	return nil
}

func (s *MemoryStore) LookupIdempotencyKey(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recordID, ok := s.idemKeys[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return recordID, nil
}

func (s *MemoryStore) SaveIdempotencyKey(ctx context.Context, key, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idemKeys[key] = recordID
	return nil
}

func (s *MemoryStore) RecordAudit(ctx context.Context, event *model.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditSeq++
	cp := *event
	cp.ID = s.auditSeq
	s.audit = append(s.audit, &cp)
	return nil
}

func (s *MemoryStore) ListAudit(ctx context.Context, entityID string) ([]*model.AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.AuditEvent
	for _, ev := range s.audit {
		if entityID == "" || ev.EntityID == entityID {
			cp := *ev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
