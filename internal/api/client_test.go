package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method     string
	path       string
	authHeader string
	idemKey    string
	body       string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.authHeader = r.Header.Get("Authorization")
	h.idemKey = r.Header.Get("X-Idempotency-Key")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates a Client pointed at a test server with the given handler.
func newTestClient(h http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewClient(srv.URL, "")
	return c, srv
}

func TestDo_NotFoundUsesServerMessage(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNotFound, responseBody: `{"message":"not found"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	env := c.Do(context.Background(), http.MethodGet, "/leads/ld-missing", nil)
	if env.Success {
		t.Fatal("expected success=false for 404")
	}
	if env.Error != "not found" {
		t.Errorf("Error = %q, want %q", env.Error, "not found")
	}
}

func TestDo_NonJSONErrorFallsBackToHTTPStatus(t *testing.T) {
	h := &testHandler{statusCode: http.StatusBadGateway, responseBody: "upstream exploded"}
	c, srv := newTestClient(h)
	defer srv.Close()

	env := c.Do(context.Background(), http.MethodGet, "/leads", nil)
	if env.Success || env.Error != "HTTP 502" {
		t.Errorf("got %+v, want success=false error=HTTP 502", env)
	}
}

func TestDo_PlainBodyBecomesData(t *testing.T) {
	h := &testHandler{responseBody: `[{"id":"ld-1","name":"Ada","email":"ada@example.com","status":"new"}]`}
	c, srv := newTestClient(h)
	defer srv.Close()

	env := c.Do(context.Background(), http.MethodGet, "/leads", nil)
	if !env.Success {
		t.Fatalf("expected success, got %+v", env)
	}
	var leads []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &leads); err != nil || len(leads) != 1 || leads[0].ID != "ld-1" {
		t.Errorf("data not passed through: %s (err %v)", env.Data, err)
	}
}

func TestDo_AlternateEnvelopeIsUnwrapped(t *testing.T) {
	h := &testHandler{responseBody: `{"status":false,"data":null,"message":"quota exceeded"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	env := c.Do(context.Background(), http.MethodPost, "/leads", map[string]string{"name": "x"})
	if env.Success {
		t.Fatal("expected server status=false to propagate")
	}
	if env.Message != "quota exceeded" {
		t.Errorf("Message = %q, want %q", env.Message, "quota exceeded")
	}
}

func TestDo_TransportFailure(t *testing.T) {
	// Point at a server that is not listening.
	c := NewClient("http://127.0.0.1:1", "")
	env := c.Do(context.Background(), http.MethodGet, "/leads", nil)
	if env.Success {
		t.Fatal("expected failure")
	}
	if env.Error == "" {
		t.Error("expected a failure message in the envelope")
	}
}

func TestLogin_StoresTokenAndAttachesBearer(t *testing.T) {
	h := &testHandler{responseBody: `{"token":"tok-123","user":{"id":"u1","email":"admin@example.com"}}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "tok-123" || resp.User.Email != "admin@example.com" {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	// The very next request must carry the issued token.
	_, _ = c.ListLeads(context.Background())
	if h.authHeader != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", h.authHeader, "Bearer tok-123")
	}
}

func TestWritesCarryIdempotencyKey(t *testing.T) {
	h := &testHandler{responseBody: `{"id":"ld-1","name":"Ada","email":"ada@example.com","status":"new"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	if _, err := c.CreateLead(context.Background(), &CreateLeadRequest{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	first := h.idemKey
	if !strings.HasPrefix(first, "idem-") {
		t.Fatalf("X-Idempotency-Key = %q, want idem- prefix", first)
	}

	if _, err := c.CreateLead(context.Background(), &CreateLeadRequest{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if h.idemKey == first {
		t.Error("each write attempt should generate a fresh idempotency key")
	}
}

func TestCall_PreservesFailureTaxonomy(t *testing.T) {
	t.Run("unreachable wraps ErrUnavailable", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", "")
		_, err := c.ListLeads(context.Background())
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("err = %v, want ErrUnavailable", err)
		}
	})

	t.Run("404 is an APIError, not unavailable", func(t *testing.T) {
		h := &testHandler{statusCode: http.StatusNotFound, responseBody: `{"message":"not found"}`}
		c, srv := newTestClient(h)
		defer srv.Close()

		_, err := c.GetLead(context.Background(), "ld-missing")
		if errors.Is(err, ErrUnavailable) {
			t.Fatal("404 must not look like an outage")
		}
		if !IsNotFound(err) {
			t.Fatalf("err = %v, want a 404 APIError", err)
		}
	})

	t.Run("2xx business rejection is an APIError", func(t *testing.T) {
		h := &testHandler{responseBody: `{"status":false,"data":null,"message":"nope"}`}
		c, srv := newTestClient(h)
		defer srv.Close()

		_, err := c.CreateLead(context.Background(), &CreateLeadRequest{Name: "x", Email: "x@y.z"})
		var ae *APIError
		if !errors.As(err, &ae) || ae.Message != "nope" {
			t.Fatalf("err = %v, want APIError with message nope", err)
		}
	})
}

func TestCall_MissingPayloadIsAnError(t *testing.T) {
	t.Run("login with null data", func(t *testing.T) {
		h := &testHandler{responseBody: `{"status":true,"data":null,"message":"ok"}`}
		c, srv := newTestClient(h)
		defer srv.Close()

		resp, err := c.Login(context.Background(), "admin@example.com", "secret")
		if err == nil {
			t.Fatalf("expected an error for a success envelope without a payload, got %+v", resp)
		}
		if resp != nil {
			t.Errorf("resp = %+v, want nil alongside the error", resp)
		}
		if errors.Is(err, ErrUnavailable) {
			t.Error("a decoded server response must not look like an outage")
		}
	})

	t.Run("get with missing data", func(t *testing.T) {
		h := &testHandler{responseBody: `{"status":true,"message":"ok"}`}
		c, srv := newTestClient(h)
		defer srv.Close()

		lead, err := c.GetLead(context.Background(), "ld-1")
		if err == nil {
			t.Fatalf("expected an error, got lead %+v", lead)
		}
		if lead != nil {
			t.Errorf("lead = %+v, want nil alongside the error", lead)
		}
	})
}

func TestDelete_NoContent(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNoContent}
	c, srv := newTestClient(h)
	defer srv.Close()

	if err := c.DeleteLead(context.Background(), "ld-1"); err != nil {
		t.Fatalf("DeleteLead: %v", err)
	}
	if h.method != http.MethodDelete || h.path != "/leads/ld-1" {
		t.Errorf("unexpected request %s %s", h.method, h.path)
	}
}
