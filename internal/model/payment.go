package model

import "time"

// PaymentStatus represents the current state of a payment request.
type PaymentStatus string

const (
	PaymentStaging    PaymentStatus = "staging"
	PaymentApproved   PaymentStatus = "approved"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// String returns the string representation of the status.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStaging, PaymentApproved, PaymentProcessing, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// PaymentStatuses lists all valid payment-request statuses in lifecycle order.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentStaging, PaymentApproved, PaymentProcessing, PaymentPaid, PaymentCancelled}
}

// PaymentRequest is a request to pay a vendor. New requests start in
// "staging" and progress forward through the lifecycle or to "cancelled";
// no backward-transition guard is enforced at this layer.
type PaymentRequest struct {
	ID             string        `json:"id"`
	VendorName     string        `json:"vendor_name"`
	Amount         float64       `json:"amount"`
	Program        string        `json:"program"`
	DueDate        time.Time     `json:"due_date"`
	RequesterEmail string        `json:"requester_email"`
	Notes          string        `json:"notes,omitempty"`
	Status         PaymentStatus `json:"status"`

	// External integration references, set by back-office automation.
	ContainerID   string `json:"container_id,omitempty"`
	AsanaTaskID   string `json:"asana_task_id,omitempty"`
	QBOInvoiceID  string `json:"qbo_invoice_id,omitempty"`
	DriveFolderID string `json:"drive_folder_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
