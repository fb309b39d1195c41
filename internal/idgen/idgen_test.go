package idgen

import (
	"strings"
	"testing"
)

func TestGenerateWithPrefix(t *testing.T) {
	id, err := GenerateWithPrefix(LeadPrefix)
	if err != nil {
		t.Fatalf("GenerateWithPrefix: %v", err)
	}
	if !strings.HasPrefix(id, "ld-") {
		t.Errorf("id %q missing prefix", id)
	}
	if len(id) != len(LeadPrefix)+Length {
		t.Errorf("id %q has length %d, want %d", id, len(id), len(LeadPrefix)+Length)
	}
}

func TestUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id, err := NewIdempotencyKey()
		if err != nil {
			t.Fatalf("NewIdempotencyKey: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNewToken(t *testing.T) {
	tok, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if len(tok) != 32 {
		t.Errorf("token length = %d, want 32", len(tok))
	}
	for _, r := range tok {
		if !strings.ContainsRune(Alphabet, r) {
			t.Errorf("token contains character %q outside the alphabet", r)
		}
	}
}
