package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validLead() *Lead {
	return &Lead{
		ID:     "ld-abc123",
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Status: LeadNew,
	}
}

func validPayment() *PaymentRequest {
	return &PaymentRequest{
		ID:             "pr-abc123",
		VendorName:     "Acme Supplies",
		Amount:         1250.50,
		Program:        "operations",
		DueDate:        time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		RequesterEmail: "ops@example.com",
		Status:         PaymentStaging,
	}
}

func TestValidateLead_Valid(t *testing.T) {
	if err := ValidateLead(validLead()); err != nil {
		t.Fatalf("expected valid lead, got %v", err)
	}
}

func TestValidateLead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Lead)
		field   string
		message string
	}{
		{"missing name", func(l *Lead) { l.Name = "  " }, "name", "is required"},
		{"name too long", func(l *Lead) { l.Name = strings.Repeat("x", 201) }, "name", "must be 200 characters or fewer"},
		{"missing email", func(l *Lead) { l.Email = "" }, "email", "is required"},
		{"bad email", func(l *Lead) { l.Email = "not-an-email" }, "email", "is invalid"},
		{"bad status", func(l *Lead) { l.Status = "archived" }, "status", `invalid value "archived"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLead()
			tt.mutate(l)

			err := ValidateLead(l)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			found := false
			for _, fe := range ve.Errors {
				if fe.Field == tt.field && fe.Message == tt.message {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %q (%q), got %v", tt.field, tt.message, ve.Errors)
			}
		})
	}
}

func TestValidatePaymentRequest_Valid(t *testing.T) {
	if err := ValidatePaymentRequest(validPayment()); err != nil {
		t.Fatalf("expected valid payment request, got %v", err)
	}
}

func TestValidatePaymentRequest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PaymentRequest)
		field  string
	}{
		{"missing vendor", func(p *PaymentRequest) { p.VendorName = "" }, "vendor_name"},
		{"zero amount", func(p *PaymentRequest) { p.Amount = 0 }, "amount"},
		{"negative amount", func(p *PaymentRequest) { p.Amount = -10 }, "amount"},
		{"missing program", func(p *PaymentRequest) { p.Program = "" }, "program"},
		{"zero due date", func(p *PaymentRequest) { p.DueDate = time.Time{} }, "due_date"},
		{"missing requester", func(p *PaymentRequest) { p.RequesterEmail = "" }, "requester_email"},
		{"bad requester", func(p *PaymentRequest) { p.RequesterEmail = "nope" }, "requester_email"},
		{"bad status", func(p *PaymentRequest) { p.Status = "done" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayment()
			tt.mutate(p)

			err := ValidatePaymentRequest(p)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			found := false
			for _, fe := range ve.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.field, ve.Errors)
			}
		})
	}
}

func TestStatusValidity(t *testing.T) {
	for _, s := range LeadStatuses() {
		if !s.IsValid() {
			t.Errorf("lead status %q should be valid", s)
		}
	}
	if LeadStatus("unknown").IsValid() {
		t.Error("unknown lead status should be invalid")
	}

	for _, s := range PaymentStatuses() {
		if !s.IsValid() {
			t.Errorf("payment status %q should be valid", s)
		}
	}
	if PaymentStatus("unknown").IsValid() {
		t.Error("unknown payment status should be invalid")
	}

	if !IntegrationConnected.IsValid() || IntegrationStatus("meh").IsValid() {
		t.Error("integration status validity broken")
	}
}
