// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limit pairs a request ceiling with its fixed window.
type Limit struct {
	MaxRequests int
	Window      time.Duration
}

// Per-route limits.
var (
	RegisterLimit = Limit{MaxRequests: 5, Window: 300 * time.Second}
	LoginLimit    = Limit{MaxRequests: 10, Window: 60 * time.Second}
	ResendLimit   = Limit{MaxRequests: 3, Window: 300 * time.Second}
	ChatLimit     = Limit{MaxRequests: 30, Window: 60 * time.Second}
)

// counter tracks requests for one (client, operation) pair within the
// current fixed window.
type counter struct {
	Count     int
	ResetTime time.Time
}

// Info reports the outcome of an Allow call.
type Info struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// MemoryRateLimiter implements in-memory fixed-window rate limiting. State
// is process-local and non-distributed; counters whose window has passed
// are removed by a periodic sweep so key cardinality stays bounded.
type MemoryRateLimiter struct {
	counters map[string]*counter
	mu       sync.Mutex
	stopCh   chan struct{}
	now      func() time.Time
}

// NewMemoryRateLimiter creates a limiter and starts its sweep goroutine.
func NewMemoryRateLimiter(cleanupPeriod time.Duration) *MemoryRateLimiter {
	rl := &MemoryRateLimiter{
		counters: make(map[string]*counter),
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}

	if cleanupPeriod > 0 {
		go rl.cleanupLoop(cleanupPeriod)
	}

	return rl
}

// Allow checks one request for (clientKey, opKey) against limit. A counter
// whose reset time has passed is indistinguishable from a fresh one.
func (rl *MemoryRateLimiter) Allow(clientKey, opKey string, limit Limit) Info {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	key := clientKey + ":" + opKey

	c, exists := rl.counters[key]
	if !exists || !now.Before(c.ResetTime) {
		c = &counter{Count: 0, ResetTime: now.Add(limit.Window)}
		rl.counters[key] = c
	}

	if c.Count >= limit.MaxRequests {
		return Info{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: c.ResetTime.Sub(now),
		}
	}

	c.Count++
	return Info{
		Allowed:   true,
		Remaining: limit.MaxRequests - c.Count,
	}
}

func (rl *MemoryRateLimiter) cleanupLoop(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup removes counters whose window has already rolled over.
func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, c := range rl.counters {
		if !now.Before(c.ResetTime) {
			delete(rl.counters, key)
		}
	}
}

// Close stops the sweep goroutine.
func (rl *MemoryRateLimiter) Close() {
	close(rl.stopCh)
}

// GetClientIP extracts the real client IP from request.
func GetClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		if ip := parseFirstIP(forwarded); ip != "" {
			return ip
		}
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// parseFirstIP extracts the first valid IP from a comma-separated list.
func parseFirstIP(forwarded string) string {
	ips := strings.Split(forwarded, ",")
	if len(ips) > 0 {
		return strings.TrimSpace(ips[0])
	}
	return ""
}
