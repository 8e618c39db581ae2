package middleware

import (
	"net/http"
	"sync"
	"time"

	"clipbook/pkg/logger"
)

// PhoneRateLimiter enforces a per-phone sliding window limit on booking
// attempts. Entries are pruned by a background goroutine so abandoned
// phones do not pin memory.
type PhoneRateLimiter struct {
	mu          sync.Mutex
	requests    map[string][]time.Time
	limit       int
	window      time.Duration
	stopCleanup chan struct{}
}

func NewPhoneRateLimiter(limit int, window time.Duration) *PhoneRateLimiter {
	rl := &PhoneRateLimiter{
		requests:    make(map[string][]time.Time),
		limit:       limit,
		window:      window,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow records an attempt for phone and reports whether it is within
// the window limit.
func (rl *PhoneRateLimiter) Allow(phone string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	recent := rl.requests[phone][:0]
	for _, ts := range rl.requests[phone] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rl.limit {
		rl.requests[phone] = recent
		return false
	}

	rl.requests[phone] = append(recent, now)
	return true
}

func (rl *PhoneRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *PhoneRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	for phone, timestamps := range rl.requests {
		recent := timestamps[:0]
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				recent = append(recent, ts)
			}
		}
		if len(recent) == 0 {
			delete(rl.requests, phone)
		} else {
			rl.requests[phone] = recent
		}
	}
}

// Stop terminates the cleanup goroutine.
func (rl *PhoneRateLimiter) Stop() {
	close(rl.stopCleanup)
}

// PhoneExtractor pulls the rate limit key from a request. An empty
// return skips limiting for that request.
type PhoneExtractor func(r *http.Request) string

// DefaultPhoneExtractor reads the X-Customer-Phone header populated by
// clients ahead of booking submission.
func DefaultPhoneExtractor(r *http.Request) string {
	return r.Header.Get("X-Customer-Phone")
}

func PhoneRateLimit(limiter *PhoneRateLimiter, extract PhoneExtractor, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			phone := extract(r)
			if phone == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(phone) {
				log.Warn("rate limit exceeded",
					"phone", phone,
					"path", r.URL.Path,
					"method", r.Method,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"code":"RATE_LIMITED","message":"Rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
