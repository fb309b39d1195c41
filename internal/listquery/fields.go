package listquery

import (
	"time"

	"github.com/crmbase/crmdesk/internal/model"
)

// LeadFields returns the field bindings for lead list views: search over
// name/email/company, sortable by name, email, company, status, and the
// timestamps.
func LeadFields() Fields[model.Lead] {
	return Fields[model.Lead]{
		Search: []func(model.Lead) string{
			func(l model.Lead) string { return l.Name },
			func(l model.Lead) string { return l.Email },
			func(l model.Lead) string { return l.Company },
		},
		Status: func(l model.Lead) string { return l.Status.String() },
		Sort: map[string]Compare[model.Lead]{
			"name":       ByString(func(l model.Lead) string { return l.Name }),
			"email":      ByString(func(l model.Lead) string { return l.Email }),
			"company":    ByString(func(l model.Lead) string { return l.Company }),
			"status":     ByString(func(l model.Lead) string { return l.Status.String() }),
			"created_at": ByTime(func(l model.Lead) time.Time { return l.CreatedAt }),
			"updated_at": ByTime(func(l model.Lead) time.Time { return l.UpdatedAt }),
		},
	}
}

// PaymentFields returns the field bindings for payment-request list views:
// search over vendor/program/requester email, with numeric ordering for the
// amount and chronological ordering for the due date.
func PaymentFields() Fields[model.PaymentRequest] {
	return Fields[model.PaymentRequest]{
		Search: []func(model.PaymentRequest) string{
			func(p model.PaymentRequest) string { return p.VendorName },
			func(p model.PaymentRequest) string { return p.Program },
			func(p model.PaymentRequest) string { return p.RequesterEmail },
		},
		Status: func(p model.PaymentRequest) string { return p.Status.String() },
		Sort: map[string]Compare[model.PaymentRequest]{
			"vendor":     ByString(func(p model.PaymentRequest) string { return p.VendorName }),
			"program":    ByString(func(p model.PaymentRequest) string { return p.Program }),
			"status":     ByString(func(p model.PaymentRequest) string { return p.Status.String() }),
			"amount":     ByNumber(func(p model.PaymentRequest) float64 { return p.Amount }),
			"due_date":   ByTime(func(p model.PaymentRequest) time.Time { return p.DueDate }),
			"created_at": ByTime(func(p model.PaymentRequest) time.Time { return p.CreatedAt }),
		},
	}
}
