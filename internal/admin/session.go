// Package admin implements the privileged side of the storefront: the admin
// session (bearer token holder) and the HTTP clients for review moderation
// and category management. All requests are gated on the session token.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/velostore/storefront/internal/store"
	apperrors "github.com/velostore/storefront/pkg/errors"
	"github.com/velostore/storefront/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// TokenSource yields the current bearer token, or empty when not
// authenticated. Session implements it; clients depend on the interface so
// tests can substitute a fixed token.
type TokenSource interface {
	Token() string
}

// User is the authenticated admin account as returned by the auth API.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Session holds the admin bearer token for privileged requests. The token is
// persisted through the same store as the cart (key "adminToken") so an
// admin stays signed in across restarts. Structurally this mirrors the cart
// manager's persistence pattern, for a single record instead of a list.
type Session struct {
	mu      sync.RWMutex
	token   string
	user    *User
	http    HTTPDoer
	baseURL string
	store   store.Store
	logger  *slog.Logger
}

// NewSession creates an admin session against the given API root.
func NewSession(doer HTTPDoer, baseURL string, st store.Store, logger *slog.Logger) *Session {
	return &Session{
		http:    doer,
		baseURL: baseURL,
		store:   st,
		logger:  logger,
	}
}

// Load restores a persisted token, if any. Like the cart, a missing or
// unreadable token degrades to "not signed in" rather than an error.
func (s *Session) Load(ctx context.Context) {
	data, err := s.store.Get(ctx, store.KeyAdminToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to read persisted admin token",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	s.mu.Lock()
	s.token = string(data)
	s.mu.Unlock()
	s.logger.DebugContext(ctx, "admin token restored")
}

// Token returns the current bearer token, or empty when not authenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// CurrentUser returns the cached admin account, or nil when unknown.
func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Login authenticates against POST /auth/admin/login and stores the returned
// token in memory and in durable storage.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/admin/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call auth api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "auth")
	}

	var out struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    User   `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if out.Token == "" {
		return nil, apperrors.Unauthorized("auth: login succeeded without a token")
	}

	s.mu.Lock()
	s.token = out.Token
	s.user = &out.User
	s.mu.Unlock()

	if err := s.store.Set(ctx, store.KeyAdminToken, []byte(out.Token)); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist admin token",
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "admin logged in",
		slog.String("email", out.User.Email),
	)

	return &out.User, nil
}

// Me validates the held token against GET /auth/admin/me and returns the
// account. A 401 invalidates the session.
func (s *Session) Me(ctx context.Context) (*User, error) {
	token := s.Token()
	if token == "" {
		return nil, apperrors.Unauthorized("not signed in")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/admin/me", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create me request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call auth api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		s.invalidate(ctx)
		return nil, httpclient.ParseResponseError(resp, "auth")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "auth")
	}

	var out struct {
		Success bool `json:"success"`
		User    User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode me response: %w", err)
	}

	s.mu.Lock()
	s.user = &out.User
	s.mu.Unlock()

	return &out.User, nil
}

// Logout clears the stored token and in-memory session. Logout is purely
// client-side; no backend call is made.
func (s *Session) Logout(ctx context.Context) {
	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "admin logged out")
}

func (s *Session) invalidate(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, store.KeyAdminToken); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete persisted admin token",
			slog.String("error", err.Error()),
		)
	}
}
