// Package api provides the HTTP JSON client for the CRM backend. Every call
// is normalized into a uniform Envelope: transport failures, non-2xx
// responses, and business rejections all collapse into {success, data,
// message, error} and never escape as panics or raw errors.
//
// A typed layer on top of the envelope preserves the distinction the envelope
// loses: transport failures wrap ErrUnavailable, server rejections surface as
// *APIError with the HTTP status code attached.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/crmbase/crmdesk/internal/idgen"
)

// ErrUnavailable marks failures where the backend could not be reached at
// all (DNS, refused connection, timeout). Callers can retry these; an
// *APIError is a definitive answer from the server and usually cannot.
var ErrUnavailable = errors.New("backend unavailable")

// APIError is a definitive rejection from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsNotFound reports whether err is a server-side 404.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// Envelope is the uniform result shape returned by Do.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client talks to the CRM backend over HTTP/JSON.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client targeting the given base URL
// (e.g. "http://localhost:8081"). When token is non-empty, an
// Authorization: Bearer header is set on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken replaces the bearer token used for subsequent requests.
// An empty token removes the Authorization header.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the bearer token currently held in memory.
func (c *Client) Token() string {
	return c.token
}

// Do performs an HTTP call and normalizes the outcome into an Envelope:
//
//   - transport or decode failure: success=false, error = the failure text
//     (or "Network error" when there is none);
//   - non-2xx status: success=false, error = the server's message/error
//     field, falling back to "HTTP <status>";
//   - 2xx body already shaped {status, data, message}: unwrapped, success
//     taken from the server's status field;
//   - any other 2xx JSON body: the whole body becomes data, success=true.
func (c *Client) Do(ctx context.Context, method, path string, body any) Envelope {
	env, _, err := c.exchange(ctx, method, path, body)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Network error"
		}
		return Envelope{Success: false, Error: msg}
	}
	return env
}

// altEnvelope is the alternate backend envelope some endpoints return.
type altEnvelope struct {
	Status  *bool           `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// exchange performs the request and returns the normalized envelope, the
// HTTP status code, and a transport-level error. Exactly one of env/err is
// meaningful: err is non-nil only when no HTTP response was obtained or the
// response body could not be read or decoded.
func (c *Client) exchange(ctx context.Context, method, path string, body any) (Envelope, int, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, 0, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return Envelope{}, 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method == http.MethodPost || method == http.MethodPut {
		// One key per write attempt; the server treats repeats as the
		// same submission.
		if key, err := idgen.NewIdempotencyKey(); err == nil {
			req.Header.Set("X-Idempotency-Key", key)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, 0, err
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return Envelope{Success: true}, resp.StatusCode, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Envelope{
			Success: false,
			Error:   errorMessage(respBody, resp.StatusCode),
		}, resp.StatusCode, nil
	}

	var alt altEnvelope
	if json.Unmarshal(respBody, &alt) == nil && alt.Status != nil {
		return Envelope{
			Success: *alt.Status,
			Data:    alt.Data,
			Message: alt.Message,
		}, resp.StatusCode, nil
	}

	if !json.Valid(respBody) {
		return Envelope{}, resp.StatusCode, fmt.Errorf("decoding response: invalid JSON")
	}

	return Envelope{Success: true, Data: respBody}, resp.StatusCode, nil
}

// errorMessage extracts the server-provided message from an error body,
// falling back to "HTTP <status>".
func errorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

// call runs an exchange and maps the outcome onto (T, error), preserving the
// failure taxonomy: ErrUnavailable for transport failures, *APIError for
// server rejections.
func call[T any](c *Client, ctx context.Context, method, path string, body any) (T, error) {
	var zero T

	env, status, err := c.exchange(ctx, method, path, body)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if status >= 200 && status <= 299 {
			// Business rejection inside a 2xx envelope.
			status = http.StatusUnprocessableEntity
		}
		return zero, &APIError{StatusCode: status, Message: msg}
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &zero); err != nil {
			return zero, fmt.Errorf("decoding response data: %w", err)
		}
	}
	// Only endpoints that return nothing may omit the payload. A success
	// envelope with a null or missing data field must not surface as a nil
	// pointer result.
	if rv := reflect.ValueOf(zero); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return zero, fmt.Errorf("decoding response data: missing payload")
	}
	return zero, nil
}
