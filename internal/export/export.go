// Package export produces JSONL snapshots of the CRM data and ships them to
// configured destinations on a schedule.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/crmbase/crmdesk/internal/store"
)

// header is the first JSONL record written by SnapshotJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	LeadCount    int       `json:"lead_count"`
	PaymentCount int       `json:"payment_count"`
	AuditCount   int       `json:"audit_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// SnapshotJSONL writes all leads, payment requests, and audit events from the
// store as JSONL to w, sorted by ID.
func SnapshotJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	leads, err := s.ListLeads(ctx)
	if err != nil {
		return fmt.Errorf("list leads: %w", err)
	}
	payments, err := s.ListPaymentRequests(ctx)
	if err != nil {
		return fmt.Errorf("list payment requests: %w", err)
	}
	audit, err := s.ListAudit(ctx, "")
	if err != nil {
		return fmt.Errorf("list audit events: %w", err)
	}

	sort.Slice(leads, func(i, j int) bool { return leads[i].ID < leads[j].ID })
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	sort.Slice(audit, func(i, j int) bool { return audit[i].ID < audit[j].ID })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		LeadCount:    len(leads),
		PaymentCount: len(payments),
		AuditCount:   len(audit),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, l := range leads {
		if err := enc.Encode(record{Type: "lead", Data: l}); err != nil {
			return fmt.Errorf("encode lead %s: %w", l.ID, err)
		}
	}
	for _, p := range payments {
		if err := enc.Encode(record{Type: "payment_request", Data: p}); err != nil {
			return fmt.Errorf("encode payment request %s: %w", p.ID, err)
		}
	}
	for _, ev := range audit {
		if err := enc.Encode(record{Type: "audit_event", Data: ev}); err != nil {
			return fmt.Errorf("encode audit event %d: %w", ev.ID, err)
		}
	}

	return nil
}
