package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannyhq/planny/internal/auth"
	"github.com/plannyhq/planny/internal/server/middleware"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

// identityEcho records the user identity the middleware put into the request
// context.
type identityEcho struct {
	called   bool
	userID   int64
	username string
}

func (e *identityEcho) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.called = true
	e.userID, _ = middleware.UserIDFromContext(r.Context())
	e.username, _ = middleware.UsernameFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestAuth_BearerHeader(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueToken(testSecret, 42, "ren", time.Hour)
	require.NoError(t, err)

	echo := &identityEcho{}
	handler := middleware.Auth(testSecret)(echo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/boards", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, echo.called)
	assert.Equal(t, int64(42), echo.userID)
	assert.Equal(t, "ren", echo.username)
}

func TestAuth_QueryToken(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueToken(testSecret, 7, "kim", time.Hour)
	require.NoError(t, err)

	echo := &identityEcho{}
	handler := middleware.Auth(testSecret)(echo)

	// Websocket clients cannot set headers; the token rides the query string.
	req := httptest.NewRequest(http.MethodGet, "/ws/events?token="+token, nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, echo.called)
	assert.Equal(t, int64(7), echo.userID)
}

func TestAuth_Rejects(t *testing.T) {
	t.Parallel()

	expired, err := auth.IssueToken(testSecret, 1, "ren", -time.Minute)
	require.NoError(t, err)

	foreign, err := auth.IssueToken("another-secret-key-also-32-chars-long!", 1, "ren", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
	}{
		{"no token", func(*http.Request) {}},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.token") }},
		{"expired token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+expired) }},
		{"wrong signing key", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreign) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			echo := &identityEcho{}
			handler := middleware.Auth(testSecret)(echo)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/boards", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, echo.called)

			// The problem body must parse like any other API error.
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var problem struct {
				Title  string `json:"title"`
				Status int    `json:"status"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, http.StatusUnauthorized, problem.Status)
		})
	}
}

func TestUserIDFromContext_Absent(t *testing.T) {
	t.Parallel()

	_, ok := middleware.UserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestRateLimitByIP(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitByIP(ctx, 1, 2)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	// Burst of 2 per address, then throttled.
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)

	throttled := send("10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, throttled.Code)
	assert.Equal(t, "application/json", throttled.Header().Get("Content-Type"))
	assert.True(t, json.Valid(throttled.Body.Bytes()))

	// A different address has its own budget.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code)
}

func TestRateLimit_PerUser(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID *int64) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/boards", nil)
		if userID != nil {
			req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUserID, *userID))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	alice := int64(1)
	assert.Equal(t, http.StatusOK, send(&alice))
	assert.Equal(t, http.StatusTooManyRequests, send(&alice))

	bob := int64(2)
	assert.Equal(t, http.StatusOK, send(&bob))

	// No identity in context: the limiter steps aside.
	assert.Equal(t, http.StatusOK, send(nil))
	assert.Equal(t, http.StatusOK, send(nil))
}
