package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velostore/storefront/internal/store"
	apperrors "github.com/velostore/storefront/pkg/errors"
)

// --- Test helpers ---

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.data[key]
	if !ok {
		return nil, apperrors.NotFound("storage key", key)
	}
	return data, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type plainDoer struct {
	client *http.Client
}

func (d plainDoer) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return d.client.Do(req.WithContext(ctx))
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (HTTPDoer, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return plainDoer{client: srv.Client()}, srv.URL + "/api"
}

// fixedToken satisfies TokenSource with a constant value.
type fixedToken string

func (t fixedToken) Token() string { return string(t) }

// --- Session ---

func TestSessionLogin(t *testing.T) {
	doer, baseURL := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/admin/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@velostore.dev", body["email"])

		_, _ = w.Write([]byte(`{"success":true,"token":"tok-123","user":{"_id":"u1","email":"admin@velostore.dev","role":"admin"}}`))
	})
	st := newMemStore()
	s := NewSession(doer, baseURL, st, newTestLogger())

	user, err := s.Login(context.Background(), "admin@velostore.dev", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "tok-123", s.Token())
	assert.True(t, s.Authenticated())
	assert.Equal(t, []byte("tok-123"), st.data[store.KeyAdminToken])
}

func TestSessionLogin_BadCredentials(t *testing.T) {
	doer, baseURL := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})
	s := NewSession(doer, baseURL, newMemStore(), newTestLogger())

	_, err := s.Login(context.Background(), "admin@velostore.dev", "wrong")

	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.False(t, s.Authenticated())
}

func TestSessionLogin_MissingFields(t *testing.T) {
	s := NewSession(nil, "http://unused", newMemStore(), newTestLogger())

	_, err := s.Login(context.Background(), "", "pw")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = s.Login(context.Background(), "a@b.c", "")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSessionLoad_RestoresPersistedToken(t *testing.T) {
	st := newMemStore()
	st.data[store.KeyAdminToken] = []byte("tok-restored")

	s := NewSession(nil, "http://unused", st, newTestLogger())
	s.Load(context.Background())

	assert.Equal(t, "tok-restored", s.Token())
	assert.True(t, s.Authenticated())
}

func TestSessionLoad_NoTokenStaysSignedOut(t *testing.T) {
	s := NewSession(nil, "http://unused", newMemStore(), newTestLogger())
	s.Load(context.Background())

	assert.False(t, s.Authenticated())
}

func TestSessionMe(t *testing.T) {
	doer, baseURL := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/admin/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"user":{"_id":"u1","email":"admin@velostore.dev","role":"admin"}}`))
	})
	st := newMemStore()
	st.data[store.KeyAdminToken] = []byte("tok-123")
	s := NewSession(doer, baseURL, st, newTestLogger())
	s.Load(context.Background())

	user, err := s.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, user, s.CurrentUser())
}

func TestSessionMe_ExpiredTokenInvalidatesSession(t *testing.T) {
	doer, baseURL := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Token expired"}`))
	})
	st := newMemStore()
	st.data[store.KeyAdminToken] = []byte("tok-stale")
	s := NewSession(doer, baseURL, st, newTestLogger())
	s.Load(context.Background())

	_, err := s.Me(context.Background())

	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.False(t, s.Authenticated())
	_, ok := st.data[store.KeyAdminToken]
	assert.False(t, ok, "stale token must be purged from storage")
}

func TestSessionMe_NotSignedIn(t *testing.T) {
	s := NewSession(nil, "http://unused", newMemStore(), newTestLogger())

	_, err := s.Me(context.Background())
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionLogout(t *testing.T) {
	st := newMemStore()
	st.data[store.KeyAdminToken] = []byte("tok-123")
	s := NewSession(nil, "http://unused", st, newTestLogger())
	s.Load(context.Background())
	require.True(t, s.Authenticated())

	s.Logout(context.Background())

	assert.False(t, s.Authenticated())
	assert.Empty(t, st.data)
}
