package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/crmbase/crmdesk/internal/model"
)

type rec struct {
	ID   string
	Name string
}

func recID(r rec) string { return r.ID }

func TestRefreshReplacesItems(t *testing.T) {
	fetched := []rec{{ID: "a"}, {ID: "b"}}
	m := NewMirror(recID, func(context.Context) ([]rec, error) {
		return fetched, nil
	})

	if m.Loaded() {
		t.Fatal("mirror should start unloaded")
	}
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !m.Loaded() || m.Len() != 2 {
		t.Fatalf("loaded=%v len=%d", m.Loaded(), m.Len())
	}

	fetched = []rec{{ID: "c"}}
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	items := m.Items()
	if len(items) != 1 || items[0].ID != "c" {
		t.Errorf("items = %+v, want the second fetch only", items)
	}
}

func TestRefreshFailurePropagatesAndKeepsItems(t *testing.T) {
	fail := false
	m := NewMirror(recID, func(context.Context) ([]rec, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return []rec{{ID: "a"}}, nil
	})

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	fail = true
	if err := m.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if m.Len() != 1 {
		t.Errorf("failed refresh must not discard held items, len = %d", m.Len())
	}
}

func TestWritesMutateMirror(t *testing.T) {
	m := NewMirror(recID, func(context.Context) ([]rec, error) {
		return []rec{{ID: "a", Name: "one"}}, nil
	})
	ctx := context.Background()
	if err := m.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Create(ctx, func(context.Context) (*rec, error) {
		return &rec{ID: "b", Name: "two"}, nil
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("len after create = %d", m.Len())
	}

	if _, err := m.Update(ctx, func(context.Context) (*rec, error) {
		return &rec{ID: "a", Name: "renamed"}, nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	items := m.Items()
	if items[0].Name != "renamed" {
		t.Errorf("update not applied: %+v", items)
	}

	if err := m.Delete(ctx, "b", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("len after delete = %d", m.Len())
	}
}

func TestFailedWriteLeavesMirrorUnchanged(t *testing.T) {
	m := NewMirror(recID, func(context.Context) ([]rec, error) {
		return []rec{{ID: "a"}}, nil
	})
	ctx := context.Background()
	if err := m.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	_, err := m.Create(ctx, func(context.Context) (*rec, error) {
		return nil, errors.New("rejected")
	})
	if err == nil {
		t.Fatal("expected create error")
	}
	if m.Len() != 1 {
		t.Errorf("rejected create must not add an item, len = %d", m.Len())
	}
}

func TestSecondWriteRejectedWhileFirstInFlight(t *testing.T) {
	m := NewMirror(recID, func(context.Context) ([]rec, error) { return nil, nil })
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := m.Create(ctx, func(context.Context) (*rec, error) {
			close(started)
			<-release
			return &rec{ID: "a"}, nil
		})
		done <- err
	}()

	<-started
	_, err := m.Create(ctx, func(context.Context) (*rec, error) {
		return &rec{ID: "b"}, nil
	})
	if !errors.Is(err, ErrWriteInFlight) {
		t.Fatalf("err = %v, want ErrWriteInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first write: %v", err)
	}
	// Guard released: a new write proceeds.
	if _, err := m.Create(ctx, func(context.Context) (*rec, error) {
		return &rec{ID: "c"}, nil
	}); err != nil {
		t.Fatalf("write after release: %v", err)
	}
}

func TestUpdateOfUnseenRecordAppends(t *testing.T) {
	m := NewMirror(func(l model.Lead) string { return l.ID }, func(context.Context) ([]model.Lead, error) {
		return nil, nil
	})
	ctx := context.Background()

	if _, err := m.Update(ctx, func(context.Context) (*model.Lead, error) {
		return &model.Lead{ID: "ld-x", Name: "New"}, nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("len = %d, want 1", m.Len())
	}
}
