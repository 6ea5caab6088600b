package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = 10 * time.Minute
	limiterIdleCutoff    = 30 * time.Minute
)

type keyedLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterPool holds one token bucket per key (user id or client IP) and
// evicts buckets idle past the cutoff so the map cannot grow unbounded.
type limiterPool[K comparable] struct {
	mu       sync.Mutex
	rps      float64
	burst    int
	limiters map[K]*keyedLimiter
}

func newLimiterPool[K comparable](ctx context.Context, requestsPerSecond float64, burst int) *limiterPool[K] {
	p := &limiterPool[K]{
		rps:      requestsPerSecond,
		burst:    burst,
		limiters: make(map[K]*keyedLimiter),
	}
	go p.sweep(ctx)
	return p
}

func (p *limiterPool[K]) sweep(ctx context.Context) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.mu.Lock()
			cutoff := time.Now().Add(-limiterIdleCutoff)
			for key, kl := range p.limiters {
				if kl.lastAccess.Before(cutoff) {
					delete(p.limiters, key)
				}
			}
			p.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (p *limiterPool[K]) allow(key K) bool {
	p.mu.Lock()
	kl, ok := p.limiters[key]
	if !ok {
		kl = &keyedLimiter{limiter: rate.NewLimiter(rate.Limit(p.rps), p.burst)}
		p.limiters[key] = kl
	}
	kl.lastAccess = time.Now()
	p.mu.Unlock()

	return kl.limiter.Allow()
}

func tooManyRequests(w http.ResponseWriter) {
	http.Error(w, `{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`, http.StatusTooManyRequests)
}

// RateLimitByIP applies per-IP rate limiting for unauthenticated endpoints
// (e.g. auth routes). Uses chi's RealIP middleware value via r.RemoteAddr.
// ctx bounds the background eviction goroutine.
func RateLimitByIP(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	pool := newLimiterPool[string](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !pool.allow(r.RemoteAddr) {
				tooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies per-user rate limiting keyed on the authenticated user
// id. Requests with no user in context pass through untouched.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	pool := newLimiterPool[uuid.UUID](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if !pool.allow(userID) {
				tooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
