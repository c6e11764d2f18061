package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestTokenBucket_TakeAndRefill(t *testing.T) {
	now := time.Now()
	bucket := newTokenBucket(3, 1, now)

	for i := 0; i < 3; i++ {
		allowed, remaining, _ := bucket.take(now)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, _, reset := bucket.take(now)
	assert.False(t, allowed)
	assert.Equal(t, now.Add(3*time.Second), reset)

	allowed, _, _ = bucket.take(now.Add(1100 * time.Millisecond))
	assert.True(t, allowed, "one token refilled after a second")
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/analysis", "GET")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/dashboard", "GET")
	assert.False(t, allowed, "default bucket is shared across unconfigured routes")
	assert.Positive(t, info.RetryAfter)

	allowed, _ = l.Allow("10.0.0.2", "/analysis", "GET")
	assert.True(t, allowed, "clients have separate buckets")

	clock.Advance(13 * time.Second)
	allowed, _ = l.Allow("10.0.0.1", "/analysis", "GET")
	assert.True(t, allowed)
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("1.2.3.4", "/login", "POST")
		require.True(t, allowed)
		assert.Equal(t, 10, info.Limit)
	}
	allowed, _ := l.Allow("1.2.3.4", "/login", "POST")
	assert.False(t, allowed, "login burst is 5")

	allowed, _ = l.Allow("1.2.3.4", "/login", "GET")
	assert.True(t, allowed, "GET /login uses the default limit")
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.9": true},
	})

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.9", "/", "GET")
	assert.False(t, allowed)

	disabled, _ := newTestLimiter(t, &Config{Enabled: false})
	for i := 0; i < 3; i++ {
		allowed, _ := disabled.Allow("10.0.0.2", "/", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/health", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	l.Allow("a", "/", "GET")
	clock.Advance(2 * time.Hour)
	l.Allow("b", "/", "GET")

	l.evictIdle(time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "b GET *")
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("client", "/analysis", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := append(DefaultEndpointConfigs(), EndpointConfig{Path: "/api/", Method: "GET", Limit: 1, Window: time.Second})

	tests := []struct {
		path, method string
		wantPath     string
		wantNil      bool
	}{
		{"/health", "GET", "", false},
		{"/login", "POST", "/login", false},
		{"/api/roles/1/candidates", "GET", "/api/", false},
		{"/dashboard", "GET", "", true},
		{"/upload", "GET", "", true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_BLACKLIST", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)
	assert.Len(t, cfg.EndpointConfigs, 3)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
