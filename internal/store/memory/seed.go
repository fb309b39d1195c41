package memory

import (
	"context"
	"time"

	"github.com/crmbase/crmdesk/internal/model"
)

// SeedDemo loads a small fixed dataset so the demo server has something to
// show before the first record is created.
func (s *MemoryStore) SeedDemo(ctx context.Context) error {
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	leads := []*model.Lead{
		{
			ID: "ld-seed000001", Name: "Dana Whitfield", Email: "dana@brightpath.io",
			Phone: "555-0134", Company: "Brightpath", Status: model.LeadQualified,
			Notes: "Referred by the Meridian account.", CreatedAt: base, UpdatedAt: base,
		},
		{
			ID: "ld-seed000002", Name: "Marcus Oyelaran", Email: "marcus@stonebridge.example",
			Company: "Stonebridge Partners", Status: model.LeadContacted,
			CreatedAt: base.Add(24 * time.Hour), UpdatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "ld-seed000003", Name: "Priya Raman", Email: "priya.raman@example.com",
			Phone: "555-0188", Status: model.LeadNew,
			CreatedAt: base.Add(48 * time.Hour), UpdatedAt: base.Add(48 * time.Hour),
		},
	}
	for _, lead := range leads {
		if err := s.CreateLead(ctx, lead); err != nil {
			return err
		}
	}

	payments := []*model.PaymentRequest{
		{
			ID: "pr-seed000001", VendorName: "Acme Print Co", Amount: 1250.00,
			Program: "Summer Outreach", DueDate: base.Add(30 * 24 * time.Hour),
			RequesterEmail: "dana@brightpath.io", Status: model.PaymentApproved,
			CreatedAt: base, UpdatedAt: base,
		},
		{
			ID: "pr-seed000002", VendorName: "Citywide Catering", Amount: 480.75,
			Program: "Donor Dinner", DueDate: base.Add(14 * 24 * time.Hour),
			RequesterEmail: "marcus@stonebridge.example", Status: model.PaymentStaging,
			Notes:     "Awaiting final headcount.",
			CreatedAt: base.Add(24 * time.Hour), UpdatedAt: base.Add(24 * time.Hour),
		},
	}
	for _, pr := range payments {
		if err := s.CreatePaymentRequest(ctx, pr); err != nil {
			return err
		}
	}

	return nil
}
