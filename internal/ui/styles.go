package ui

import (
	"fmt"

	"github.com/crmbase/crmdesk/internal/model"
)

// ANSI256 color codes.
const (
	colorAccent  = 74  // blue
	colorMuted   = 245 // medium gray
	colorGood    = 114 // green
	colorWarn    = 179 // amber
	colorDanger  = 167 // red
	colorNeutral = 250 // light gray
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return render(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return render(colorMuted, s)
}

// RenderLeadStatus colors a lead status badge.
func RenderLeadStatus(status model.LeadStatus) string {
	switch status {
	case model.LeadNew:
		return render(colorAccent, string(status))
	case model.LeadContacted:
		return render(colorWarn, string(status))
	case model.LeadQualified:
		return render(colorGood, string(status))
	case model.LeadLost:
		return render(colorMuted, string(status))
	default:
		return string(status)
	}
}

// RenderPaymentStatus colors a payment-request status badge.
func RenderPaymentStatus(status model.PaymentStatus) string {
	switch status {
	case model.PaymentStaging:
		return render(colorNeutral, string(status))
	case model.PaymentApproved:
		return render(colorAccent, string(status))
	case model.PaymentProcessing:
		return render(colorWarn, string(status))
	case model.PaymentPaid:
		return render(colorGood, string(status))
	case model.PaymentCancelled:
		return render(colorDanger, string(status))
	default:
		return string(status)
	}
}

// RenderIntegrationStatus colors an integration status badge.
func RenderIntegrationStatus(status model.IntegrationStatus) string {
	switch status {
	case model.IntegrationConnected:
		return render(colorGood, string(status))
	case model.IntegrationDisconnected:
		return render(colorMuted, string(status))
	case model.IntegrationError:
		return render(colorDanger, string(status))
	default:
		return string(status)
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
