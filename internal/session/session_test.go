package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crmbase/crmdesk/internal/api"
)

func newManager(t *testing.T, handler http.Handler) (*Manager, *api.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, "")
	path := filepath.Join(t.TempDir(), "session.toml")
	m, err := NewManager(path, client)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, client
}

func authMux(token string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"` + token + `","user":{"id":"u1","email":"admin@example.com","name":"Admin"}}`))
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid token"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","email":"admin@example.com","name":"Admin"}`))
	})
	return mux
}

func TestLoginPersistsSession(t *testing.T) {
	m, client := newManager(t, authMux("tok-abc"))

	user, err := m.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("user email = %q", user.Email)
	}
	if client.Token() != "tok-abc" {
		t.Errorf("client token = %q, want tok-abc", client.Token())
	}
	if !m.IsAuthenticated() {
		t.Error("expected authenticated session after login")
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if want := `token = "tok-abc"`; !strings.Contains(string(data), want) {
		t.Errorf("session file missing %q:\n%s", want, data)
	}
}

func TestRestoreVerifiesToken(t *testing.T) {
	m, client := newManager(t, authMux("tok-abc"))
	if _, err := m.Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A fresh manager on the same path simulates a new process.
	m2, err := NewManager(m.path, client)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	client.SetToken("")

	user, err := m2.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("restored user = %+v", user)
	}
	if client.Token() != "tok-abc" {
		t.Errorf("client token = %q after restore", client.Token())
	}
}

func TestRestoreRejectedTokenClearsSession(t *testing.T) {
	m, client := newManager(t, authMux("tok-current"))

	// Persist a token the server no longer accepts.
	if err := m.save(State{Token: "tok-stale"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := m.Restore(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
	if client.Token() != "" {
		t.Errorf("stale token still held: %q", client.Token())
	}
	if _, err := os.Stat(m.path); !os.IsNotExist(err) {
		t.Error("session file should be removed after token rejection")
	}
}

func TestRestoreKeepsSessionWhenBackendDown(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1", "")
	path := filepath.Join(t.TempDir(), "session.toml")
	m, err := NewManager(path, client)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m.save(State{Token: "tok-abc"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err = m.Restore(context.Background())
	if !errors.Is(err, api.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if errors.Is(err, ErrNotAuthenticated) {
		t.Error("an outage must not report the user as logged out")
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("session file must survive a backend outage")
	}
}

func TestRestoreWithoutSession(t *testing.T) {
	m, _ := newManager(t, authMux("tok-abc"))
	if _, err := m.Restore(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestLogout(t *testing.T) {
	m, client := newManager(t, authMux("tok-abc"))
	if _, err := m.Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if client.Token() != "" || m.IsAuthenticated() {
		t.Error("logout should drop the token")
	}
	if _, err := os.Stat(m.path); !os.IsNotExist(err) {
		t.Error("logout should remove the session file")
	}
}
