package integrations

import (
	"errors"
	"testing"
	"time"

	"github.com/crmbase/crmdesk/internal/model"
)

func TestRegistrySeed(t *testing.T) {
	r := NewRegistry()
	items := r.List()
	if len(items) != 3 {
		t.Fatalf("seeded %d integrations, want 3", len(items))
	}
	for _, it := range items {
		if it.Status != model.IntegrationDisconnected {
			t.Errorf("%s starts %s, want disconnected", it.ID, it.Status)
		}
	}
	// Ordered by name.
	if items[0].Name != "Asana" || items[2].Name != "QuickBooks" {
		t.Errorf("unexpected order: %v, %v, %v", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestConnectDisconnect(t *testing.T) {
	r := NewRegistry()

	it, err := r.Connect("asana")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if it.Status != model.IntegrationConnected {
		t.Errorf("status = %s", it.Status)
	}

	it, err = r.Disconnect("asana")
	if err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if it.Status != model.IntegrationDisconnected {
		t.Errorf("status = %s", it.Status)
	}
}

func TestSyncLifecycle(t *testing.T) {
	r := NewRegistry()
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	it, err := r.MarkSynced("quickbooks")
	if err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	if it.LastSyncAt == nil || !it.LastSyncAt.Equal(fixed) {
		t.Errorf("LastSyncAt = %v", it.LastSyncAt)
	}
	if it.Status != model.IntegrationConnected {
		t.Errorf("status = %s, want connected after sync", it.Status)
	}

	it, err = r.MarkError("quickbooks", "token expired")
	if err != nil {
		t.Fatalf("MarkError: %v", err)
	}
	if it.Status != model.IntegrationError || it.ErrorMessage != "token expired" {
		t.Errorf("got %+v", it)
	}

	// Reconnecting clears the error.
	it, _ = r.Connect("quickbooks")
	if it.ErrorMessage != "" {
		t.Errorf("error message survived reconnect: %q", it.ErrorMessage)
	}
}

func TestUnknownIntegration(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("jira"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("err = %v, want ErrUnknown", err)
	}
	if _, err := r.Connect("jira"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("err = %v, want ErrUnknown", err)
	}
}
