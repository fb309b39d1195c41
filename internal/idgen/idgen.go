// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Record ID prefixes.
const (
	LeadPrefix    = "ld-"
	PaymentPrefix = "pr-"
	IdemPrefix    = "idem-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// NewLeadID returns a new lead record ID.
func NewLeadID() (string, error) {
	return GenerateWithPrefix(LeadPrefix)
}

// NewPaymentID returns a new payment-request record ID.
func NewPaymentID() (string, error) {
	return GenerateWithPrefix(PaymentPrefix)
}

// NewIdempotencyKey returns a key identifying one client write attempt.
// The server treats repeated submissions of the same key as one write.
func NewIdempotencyKey() (string, error) {
	return GenerateWithPrefix(IdemPrefix)
}

// NewToken returns an opaque bearer token for issued sessions.
func NewToken() (string, error) {
	tok, err := nanoid.Generate(Alphabet, 32)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return tok, nil
}
