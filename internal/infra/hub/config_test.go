package hub

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, int64(1024*1024), cfg.MaxBodySize)
	assert.Equal(t, 5, cfg.MaxRedirects)
	assert.False(t, cfg.DenyPrivateIPs)
	assert.Equal(t, 1, cfg.RetryAttempts)
	assert.Zero(t, cfg.RequestsPerSecond)
	assert.Equal(t, "TKLabelsBlock/1.0", cfg.UserAgent)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }},
		{name: "timeout too long", modify: func(c *Config) { c.Timeout = time.Hour }},
		{name: "body too small", modify: func(c *Config) { c.MaxBodySize = 10 }},
		{name: "body too large", modify: func(c *Config) { c.MaxBodySize = 100 * 1024 * 1024 }},
		{name: "negative redirects", modify: func(c *Config) { c.MaxRedirects = -1 }},
		{name: "too many redirects", modify: func(c *Config) { c.MaxRedirects = 11 }},
		{name: "zero attempts", modify: func(c *Config) { c.RetryAttempts = 0 }},
		{name: "too many attempts", modify: func(c *Config) { c.RetryAttempts = 6 }},
		{name: "negative rate", modify: func(c *Config) { c.RequestsPerSecond = -1 }},
		{name: "rate without burst", modify: func(c *Config) { c.RequestsPerSecond = 2; c.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HUB_TIMEOUT", "3s")
	t.Setenv("HUB_MAX_BODY_SIZE", "2048")
	t.Setenv("HUB_DENY_PRIVATE_IPS", "true")
	t.Setenv("HUB_RETRY_ATTEMPTS", "3")
	t.Setenv("HUB_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("HUB_BURST", "4")
	t.Setenv("HUB_USER_AGENT", "Museum/2.0")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, int64(2048), cfg.MaxBodySize)
	assert.True(t, cfg.DenyPrivateIPs)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.InDelta(t, 2.5, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 4, cfg.Burst)
	assert.Equal(t, "Museum/2.0", cfg.UserAgent)
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	t.Setenv("HUB_RETRY_ATTEMPTS", "9")

	_, err := LoadConfigFromEnv()
	assert.Error(t, err)
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, limiter.Wait(ctx))
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "127.0.0.1", want: true},
		{ip: "10.1.2.3", want: true},
		{ip: "192.168.0.10", want: true},
		{ip: "169.254.1.1", want: true},
		{ip: "::1", want: true},
		{ip: "8.8.8.8", want: false},
		{ip: "2001:4860:4860::8888", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.want, isPrivateIP(parseIP(t, tt.ip)))
		})
	}
}

func parseIP(t *testing.T, s string) net.IP {
	t.Helper()
	ip := net.ParseIP(s)
	require.NotNil(t, ip)
	return ip
}
