package model

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateLead checks a Lead for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the lead is valid.
func ValidateLead(l *Lead) error {
	var ve ValidationError

	name := strings.TrimSpace(l.Name)
	if name == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	} else if len([]rune(name)) > 200 {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "must be 200 characters or fewer"})
	}

	if strings.TrimSpace(l.Email) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "email", Message: "is required"})
	} else if _, err := mail.ParseAddress(l.Email); err != nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "email", Message: "is invalid"})
	}

	// Status: must be a valid enum value (closed set).
	if !l.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", l.Status),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidatePaymentRequest checks a PaymentRequest for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the request is valid.
func ValidatePaymentRequest(p *PaymentRequest) error {
	var ve ValidationError

	if strings.TrimSpace(p.VendorName) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "vendor_name", Message: "is required"})
	}

	if p.Amount <= 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "amount",
			Message: fmt.Sprintf("must be greater than zero, got %v", p.Amount),
		})
	}

	if strings.TrimSpace(p.Program) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "program", Message: "is required"})
	}

	if p.DueDate.IsZero() {
		ve.Errors = append(ve.Errors, FieldError{Field: "due_date", Message: "is required"})
	}

	if strings.TrimSpace(p.RequesterEmail) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "requester_email", Message: "is required"})
	} else if _, err := mail.ParseAddress(p.RequesterEmail); err != nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "requester_email", Message: "is invalid"})
	}

	if !p.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", p.Status),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
