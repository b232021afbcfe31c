package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterTable is a mutex-guarded map of per-key limiters with background
// cleanup of stale entries to prevent unbounded memory growth.
type limiterTable[K comparable] struct {
	mu       sync.Mutex
	limiters map[K]*clientLimiter
	rps      float64
	burst    int
}

func newLimiterTable[K comparable](ctx context.Context, rps float64, burst int) *limiterTable[K] {
	t := &limiterTable[K]{
		limiters: make(map[K]*clientLimiter),
		rps:      rps,
		burst:    burst,
	}

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.mu.Lock()
				cutoff := time.Now().Add(-30 * time.Minute)
				for key, cl := range t.limiters {
					if cl.lastAccess.Before(cutoff) {
						delete(t.limiters, key)
					}
				}
				t.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return t
}

func (t *limiterTable[K]) allow(key K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cl, ok := t.limiters[key]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(t.rps), t.burst),
		}
		t.limiters[key] = cl
	}
	cl.lastAccess = time.Now()

	return cl.limiter.Allow()
}

// RateLimitByIP applies per-IP rate limiting for unauthenticated endpoints
// (e.g. login). Relies on chi's RealIP middleware for r.RemoteAddr.
func RateLimitByIP(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	table := newLimiterTable[string](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !table.allow(r.RemoteAddr) {
				writeJSONError(w, http.StatusTooManyRequests, `{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies per-user rate limiting on authenticated routes. Requests
// without a user in context pass through untouched.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	table := newLimiterTable[int64](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if !table.allow(userID) {
				writeJSONError(w, http.StatusTooManyRequests, `{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
