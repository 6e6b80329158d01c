package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/response"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
)

type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

// Limiter answers whether one more request fits into the window for key.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}

type FailureMode string

const (
	// FailOpen lets traffic through when the limiter backend is down;
	// FailClosed rejects it. Auth endpoints run closed.
	FailOpen   FailureMode = "fail_open"
	FailClosed FailureMode = "fail_closed"
)

// RateLimiter is the HTTP-facing wrapper around a Limiter backend.
type RateLimiter struct {
	limiter Limiter
	limit   int
	window  time.Duration
	mode    FailureMode
	scope   string
}

func NewRateLimiter(limiter Limiter, limit int, window time.Duration, mode FailureMode, scope string) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if scope == "" {
		scope = "api"
	}
	return &RateLimiter{limiter: limiter, limit: limit, window: window, mode: mode, scope: scope}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.scope + ":" + clientIPKey(r)
			decision, err := rl.limiter.Allow(r.Context(), key, rl.limit, rl.window)
			if err != nil {
				observability.RecordRateLimitDecision(r.Context(), rl.scope, "backend_error")
				if rl.mode == FailOpen {
					slog.Warn("rate limiter backend unavailable, allowing request",
						"scope", rl.scope, "error", err)
					next.ServeHTTP(w, r)
					return
				}
				w.Header().Set("Retry-After", retryAfterSeconds(rl.window))
				response.Error(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			writeRateLimitHeaders(w.Header(), rl.limit, decision)
			if !decision.Allowed {
				observability.RecordRateLimitDecision(r.Context(), rl.scope, "deny")
				w.Header().Set("Retry-After", retryAfterSeconds(decision.RetryAfter))
				response.Error(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			observability.RecordRateLimitDecision(r.Context(), rl.scope, "allow")
			next.ServeHTTP(w, r)
		})
	}
}

type localWindow struct {
	count   int
	resetAt time.Time
}

// LocalFixedWindowLimiter counts per key in process memory. Suitable for a
// single instance; multi-instance deployments use the redis backend.
type LocalFixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*localWindow
	sweepAt time.Time
}

func NewLocalFixedWindowLimiter() *LocalFixedWindowLimiter {
	return &LocalFixedWindowLimiter{
		windows: make(map[string]*localWindow),
		sweepAt: time.Now().Add(time.Minute),
	}
}

func (l *LocalFixedWindowLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Decision, error) {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.sweepAt) {
		for k, w := range l.windows {
			if now.After(w.resetAt) {
				delete(l.windows, k)
			}
		}
		l.sweepAt = now.Add(window)
	}

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &localWindow{resetAt: now.Add(window)}
		l.windows[key] = w
	}

	if w.count >= limit {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: time.Until(w.resetAt),
			ResetAt:    w.resetAt,
		}, nil
	}
	w.count++
	return Decision{
		Allowed:   true,
		Remaining: limit - w.count,
		ResetAt:   w.resetAt,
	}, nil
}

func clientIPKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func retryAfterSeconds(d time.Duration) string {
	seconds := int(d.Round(time.Second).Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}

func writeRateLimitHeaders(h http.Header, limit int, d Decision) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(d.Remaining, 0)))
	resetAt := d.ResetAt
	if resetAt.IsZero() {
		resetAt = time.Now().Add(time.Second)
	}
	h.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
}
