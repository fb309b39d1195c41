// Package session persists the authenticated user's token between runs and
// restores it on startup. A restored token is never trusted blindly: it is
// verified against the backend before the session counts as authenticated.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/crmbase/crmdesk/internal/api"
	"github.com/crmbase/crmdesk/internal/model"
)

// ErrNotAuthenticated is returned when no valid session exists.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is the on-disk session file.
type State struct {
	Token     string    `toml:"token"`
	UserID    string    `toml:"user_id,omitempty"`
	Email     string    `toml:"email,omitempty"`
	Name      string    `toml:"name,omitempty"`
	CreatedAt time.Time `toml:"created_at,omitempty"`
}

// Manager loads, verifies, and saves the session, and keeps the API client's
// bearer token in sync with it.
type Manager struct {
	path   string
	client *api.Client
	user   *model.User
}

// NewManager creates a session manager storing state at path. An empty path
// selects the default location under the user config directory.
func NewManager(path string, client *api.Client) (*Manager, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Manager{path: path, client: client}, nil
}

func defaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "crmdesk", "session.toml"), nil
}

// Login authenticates with the backend and persists the issued token.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.user = &resp.User
	state := State{
		Token:     resp.Token,
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
		Name:      resp.User.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.save(state); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return &resp.User, nil
}

// Restore loads the persisted token and verifies it with the backend. An
// invalid or expired token clears the session file; an unreachable backend
// keeps the file intact so the user is not logged out by an outage.
func (m *Manager) Restore(ctx context.Context) (*model.User, error) {
	state, err := m.load()
	if err != nil {
		return nil, err
	}
	if state.Token == "" {
		return nil, ErrNotAuthenticated
	}

	m.client.SetToken(state.Token)
	user, err := m.client.WhoAmI(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			m.client.SetToken("")
			return nil, fmt.Errorf("verifying session: %w", err)
		}
		// Definitive rejection: the token is no longer good.
		m.client.SetToken("")
		_ = m.clear()
		return nil, fmt.Errorf("%w: session expired", ErrNotAuthenticated)
	}
	m.user = user
	return user, nil
}

// Logout clears the persisted session and the in-memory token.
func (m *Manager) Logout() error {
	m.client.SetToken("")
	m.user = nil
	return m.clear()
}

// User returns the user from the last successful Login or Restore, or nil.
func (m *Manager) User() *model.User {
	return m.user
}

// IsAuthenticated reports whether a verified session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.user != nil && m.client.Token() != ""
}

func (m *Manager) load() (State, error) {
	var state State
	if _, err := toml.DecodeFile(m.path, &state); err != nil {
		if os.IsNotExist(err) {
			return State{}, ErrNotAuthenticated
		}
		return State{}, fmt.Errorf("reading session file: %w", err)
	}
	return state, nil
}

func (m *Manager) save(state State) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(state)
}

func (m *Manager) clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
