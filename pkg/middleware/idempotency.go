package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"clipbook/pkg/logger"
)

type cachedResponse struct {
	status    int
	body      []byte
	headers   http.Header
	expiresAt time.Time
}

// IdempotencyStore retains responses keyed by client supplied
// idempotency keys so retried submissions replay the original outcome.
type IdempotencyStore interface {
	Get(key string) (cachedResponse, bool)
	Set(key string, resp cachedResponse)
}

type InMemoryIdempotencyStore struct {
	mu          sync.RWMutex
	entries     map[string]cachedResponse
	ttl         time.Duration
	stopCleanup chan struct{}
}

func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		entries:     make(map[string]cachedResponse),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

func (s *InMemoryIdempotencyStore) Get(key string) (cachedResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return cachedResponse{}, false
	}

	return entry, true
}

func (s *InMemoryIdempotencyStore) Set(key string, resp cachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp.expiresAt = time.Now().Add(s.ttl)
	s.entries[key] = resp
}

func (s *InMemoryIdempotencyStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (s *InMemoryIdempotencyStore) Stop() {
	close(s.stopCleanup)
}

type responseCapture struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (rc *responseCapture) WriteHeader(status int) {
	rc.status = status
	rc.ResponseWriter.WriteHeader(status)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays stored responses for repeated POSTs carrying the
// same Idempotency-Key header. Requests without the header pass through
// untouched.
func Idempotency(store IdempotencyStore, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := store.Get(key); ok {
				log.Debug("replaying idempotent response",
					"key", key,
					"path", r.URL.Path,
				)

				for name, values := range cached.headers {
					for _, v := range values {
						w.Header().Add(name, v)
					}
				}
				w.WriteHeader(cached.status)
				w.Write(cached.body)
				return
			}

			capture := &responseCapture{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(capture, r)

			// Only settled outcomes are worth replaying. Server errors
			// should be retried for real.
			if capture.status < http.StatusInternalServerError {
				store.Set(key, cachedResponse{
					status:  capture.status,
					body:    capture.body.Bytes(),
					headers: w.Header().Clone(),
				})
			}
		})
	}
}
