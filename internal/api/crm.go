package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/crmbase/crmdesk/internal/model"
)

// LoginRequest holds the credentials for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload issued on successful login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates and, on success, stores the issued token in memory so
// it is attached to subsequent requests. Persisting the token is the session
// layer's responsibility.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := call[*LoginResponse](c, ctx, http.MethodPost, "/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp, nil
}

// WhoAmI verifies the held token and returns the user it belongs to.
func (c *Client) WhoAmI(ctx context.Context) (*model.User, error) {
	return call[*model.User](c, ctx, http.MethodGet, "/auth/me", nil)
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) (string, error) {
	resp, err := call[struct {
		Status string `json:"status"`
	}](c, ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- Leads ---

// CreateLeadRequest holds parameters for creating a lead.
type CreateLeadRequest struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Phone   string           `json:"phone,omitempty"`
	Company string           `json:"company,omitempty"`
	Status  model.LeadStatus `json:"status,omitempty"`
	Notes   string           `json:"notes,omitempty"`
}

// UpdateLeadRequest holds a partial update; nil fields are left unchanged.
type UpdateLeadRequest struct {
	Name    *string           `json:"name,omitempty"`
	Email   *string           `json:"email,omitempty"`
	Phone   *string           `json:"phone,omitempty"`
	Company *string           `json:"company,omitempty"`
	Status  *model.LeadStatus `json:"status,omitempty"`
	Notes   *string           `json:"notes,omitempty"`
}

func (c *Client) ListLeads(ctx context.Context) ([]model.Lead, error) {
	return call[[]model.Lead](c, ctx, http.MethodGet, "/leads", nil)
}

func (c *Client) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	return call[*model.Lead](c, ctx, http.MethodGet, "/leads/"+url.PathEscape(id), nil)
}

func (c *Client) CreateLead(ctx context.Context, req *CreateLeadRequest) (*model.Lead, error) {
	return call[*model.Lead](c, ctx, http.MethodPost, "/leads", req)
}

func (c *Client) UpdateLead(ctx context.Context, id string, req *UpdateLeadRequest) (*model.Lead, error) {
	return call[*model.Lead](c, ctx, http.MethodPut, "/leads/"+url.PathEscape(id), req)
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	_, err := call[struct{}](c, ctx, http.MethodDelete, "/leads/"+url.PathEscape(id), nil)
	return err
}

// --- Payment requests ---

// CreatePaymentRequest holds parameters for creating a payment request.
type CreatePaymentRequest struct {
	VendorName     string    `json:"vendor_name"`
	Amount         float64   `json:"amount"`
	Program        string    `json:"program"`
	DueDate        time.Time `json:"due_date"`
	RequesterEmail string    `json:"requester_email"`
	Notes          string    `json:"notes,omitempty"`
}

// UpdatePaymentRequest holds a partial update; nil fields are left unchanged.
type UpdatePaymentRequest struct {
	VendorName     *string              `json:"vendor_name,omitempty"`
	Amount         *float64             `json:"amount,omitempty"`
	Program        *string              `json:"program,omitempty"`
	DueDate        *time.Time           `json:"due_date,omitempty"`
	RequesterEmail *string              `json:"requester_email,omitempty"`
	Notes          *string              `json:"notes,omitempty"`
	Status         *model.PaymentStatus `json:"status,omitempty"`
}

func (c *Client) ListPaymentRequests(ctx context.Context) ([]model.PaymentRequest, error) {
	return call[[]model.PaymentRequest](c, ctx, http.MethodGet, "/payment-requests", nil)
}

func (c *Client) GetPaymentRequest(ctx context.Context, id string) (*model.PaymentRequest, error) {
	return call[*model.PaymentRequest](c, ctx, http.MethodGet, "/payment-requests/"+url.PathEscape(id), nil)
}

func (c *Client) CreatePaymentRequest(ctx context.Context, req *CreatePaymentRequest) (*model.PaymentRequest, error) {
	return call[*model.PaymentRequest](c, ctx, http.MethodPost, "/payment-requests", req)
}

func (c *Client) UpdatePaymentRequest(ctx context.Context, id string, req *UpdatePaymentRequest) (*model.PaymentRequest, error) {
	return call[*model.PaymentRequest](c, ctx, http.MethodPut, "/payment-requests/"+url.PathEscape(id), req)
}

func (c *Client) DeletePaymentRequest(ctx context.Context, id string) error {
	_, err := call[struct{}](c, ctx, http.MethodDelete, "/payment-requests/"+url.PathEscape(id), nil)
	return err
}

// --- Integrations ---

func (c *Client) ListIntegrations(ctx context.Context) ([]model.Integration, error) {
	return call[[]model.Integration](c, ctx, http.MethodGet, "/integrations", nil)
}

func (c *Client) ConnectIntegration(ctx context.Context, id string) (*model.Integration, error) {
	return call[*model.Integration](c, ctx, http.MethodPost, "/integrations/"+url.PathEscape(id)+"/connect", nil)
}

func (c *Client) DisconnectIntegration(ctx context.Context, id string) (*model.Integration, error) {
	return call[*model.Integration](c, ctx, http.MethodPost, "/integrations/"+url.PathEscape(id)+"/disconnect", nil)
}

func (c *Client) SyncIntegration(ctx context.Context, id string) (*model.Integration, error) {
	return call[*model.Integration](c, ctx, http.MethodPost, "/integrations/"+url.PathEscape(id)+"/sync", nil)
}

// Stats is the aggregate snapshot behind the dashboard.
type Stats struct {
	LeadsTotal       int            `json:"leads_total"`
	LeadsByStatus    map[string]int `json:"leads_by_status"`
	PaymentsTotal    int            `json:"payments_total"`
	PaymentsByStatus map[string]int `json:"payments_by_status"`
	PendingAmount    float64        `json:"pending_amount"`
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	return call[*Stats](c, ctx, http.MethodGet, "/stats", nil)
}
