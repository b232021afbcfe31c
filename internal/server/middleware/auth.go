package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/plannyhq/planny/internal/auth"
)

// Auth validates the session token and injects user identity into the
// request context. The token is taken from the Authorization header or, for
// websocket clients that cannot set headers, from the "token" query
// parameter.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractToken(r)
			if tok != "" {
				if ctx, ok := authenticate(r.Context(), tok, jwtSecret); ok {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			writeJSONError(w, http.StatusUnauthorized, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`)
		})
	}
}

// writeJSONError emits a problem body with the JSON content type, matching
// what the huma surface produces for its own errors.
func writeJSONError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return r.URL.Query().Get("token")
}

func authenticate(ctx context.Context, tokenStr, secret string) (context.Context, bool) {
	claims, err := auth.ValidateToken(secret, tokenStr)
	if err != nil {
		return ctx, false
	}

	ctx = context.WithValue(ctx, ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
	return ctx, true
}
