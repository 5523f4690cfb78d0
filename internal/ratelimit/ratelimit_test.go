// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(start time.Time) (*MemoryRateLimiter, *time.Time) {
	current := start
	rl := NewMemoryRateLimiter(0)
	rl.now = func() time.Time { return current }
	return rl, &current
}

func TestAllow_UpToLimitThenReject(t *testing.T) {
	rl, _ := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	limit := Limit{MaxRequests: 3, Window: time.Minute}

	for i := 0; i < 3; i++ {
		info := rl.Allow("1.2.3.4", "login", limit)
		assert.True(t, info.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3-(i+1), info.Remaining)
	}

	info := rl.Allow("1.2.3.4", "login", limit)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Minute, info.RetryAfter)
}

func TestAllow_WindowRollover(t *testing.T) {
	rl, current := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	limit := Limit{MaxRequests: 1, Window: time.Minute}

	require.True(t, rl.Allow("1.2.3.4", "login", limit).Allowed)
	require.False(t, rl.Allow("1.2.3.4", "login", limit).Allowed)

	// One second before the reset the request is still blocked.
	*current = current.Add(59 * time.Second)
	assert.False(t, rl.Allow("1.2.3.4", "login", limit).Allowed)

	// At the reset boundary the counter is fresh again.
	*current = current.Add(time.Second)
	assert.True(t, rl.Allow("1.2.3.4", "login", limit).Allowed)
}

func TestAllow_IndependentOperations(t *testing.T) {
	rl, _ := newTestLimiter(time.Now())
	limit := Limit{MaxRequests: 1, Window: time.Minute}

	require.True(t, rl.Allow("1.2.3.4", "login", limit).Allowed)
	require.False(t, rl.Allow("1.2.3.4", "login", limit).Allowed)

	// Exhausting login must not consume the chat budget.
	assert.True(t, rl.Allow("1.2.3.4", "chat", limit).Allowed)
}

func TestAllow_IndependentClients(t *testing.T) {
	rl, _ := newTestLimiter(time.Now())
	limit := Limit{MaxRequests: 1, Window: time.Minute}

	require.True(t, rl.Allow("1.2.3.4", "login", limit).Allowed)
	assert.True(t, rl.Allow("5.6.7.8", "login", limit).Allowed)
}

func TestAllow_RetryAfterShrinksWithinWindow(t *testing.T) {
	rl, current := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	limit := Limit{MaxRequests: 1, Window: time.Minute}

	require.True(t, rl.Allow("1.2.3.4", "chat", limit).Allowed)

	*current = current.Add(40 * time.Second)
	info := rl.Allow("1.2.3.4", "chat", limit)
	require.False(t, info.Allowed)
	assert.Equal(t, 20*time.Second, info.RetryAfter)
}

func TestCleanup_DropsExpiredCounters(t *testing.T) {
	rl, current := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	limit := Limit{MaxRequests: 5, Window: time.Minute}

	rl.Allow("1.2.3.4", "login", limit)
	rl.Allow("5.6.7.8", "chat", limit)
	require.Len(t, rl.counters, 2)

	*current = current.Add(2 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.counters)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.0.0.1:51234",
			want:       "10.0.0.1",
		},
		{
			name:       "x-forwarded-for takes first hop",
			remoteAddr: "10.0.0.1:51234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:51234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(r))
		})
	}
}
