package hub

import (
	"fmt"
	"time"

	"tk-labels/pkg/config"
)

// Config holds the settings of the outbound hub client.
//
// Security settings:
//   - DenyPrivateIPs: Blocks base URLs that resolve to private addresses
//   - MaxBodySize: Caps the size of a project response
//   - Timeout: Bounds a single request, so the page render cannot hang
//
// Resilience settings:
//   - RetryAttempts: Total attempts per request (1 disables retries)
//   - RequestsPerSecond / Burst: Outbound token bucket (0 disables it)
type Config struct {
	// Timeout is the maximum duration of one request including body read.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes.
	// Default: 1048576 (1MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of redirects followed.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs rejects base URLs resolving to loopback, private or link-local addresses.
	// The hub URL is set by administrators, so this is off unless the deployment asks for it.
	// Default: false
	DenyPrivateIPs bool

	// RetryAttempts is the total number of attempts for retryable failures.
	// Default: 1
	RetryAttempts int

	// RequestsPerSecond limits outbound requests. Zero means unlimited.
	// Default: 0
	RequestsPerSecond float64

	// Burst is the token bucket capacity when RequestsPerSecond is set.
	// Default: 5
	Burst int

	// UserAgent is sent with every request.
	// Default: "TKLabelsBlock/1.0"
	UserAgent string
}

// DefaultConfig returns the default hub client configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:           10 * time.Second,
		MaxBodySize:       1024 * 1024, // 1MB
		MaxRedirects:      5,
		DenyPrivateIPs:    false,
		RetryAttempts:     1,
		RequestsPerSecond: 0,
		Burst:             5,
		UserAgent:         "TKLabelsBlock/1.0",
	}
}

// Validate checks that the configuration values are usable.
//
// Validation rules:
//   - Timeout: 1ms-2m
//   - MaxBodySize: 1KB-10MB
//   - MaxRedirects: 0-10
//   - RetryAttempts: 1-5
//   - RequestsPerSecond: >= 0, and Burst >= 1 when it is set
func (c *Config) Validate() error {
	if err := config.ValidateDurationRange(c.Timeout, time.Millisecond, 2*time.Minute); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	minBodySize := int64(1024)             // 1KB
	maxBodySize := int64(10 * 1024 * 1024) // 10MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if c.RetryAttempts < 1 || c.RetryAttempts > 5 {
		return fmt.Errorf("retry attempts must be between 1 and 5, got %d", c.RetryAttempts)
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must be non-negative, got %v", c.RequestsPerSecond)
	}
	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1 when rate limiting, got %d", c.Burst)
	}

	return nil
}

// LoadConfigFromEnv loads the configuration from environment variables, falling back to
// defaults for unset or unparsable values, then validates it.
//
// Environment variables:
//   - HUB_TIMEOUT: duration string, e.g. "10s"
//   - HUB_MAX_BODY_SIZE: integer in bytes
//   - HUB_MAX_REDIRECTS: integer
//   - HUB_DENY_PRIVATE_IPS: boolean
//   - HUB_RETRY_ATTEMPTS: integer
//   - HUB_REQUESTS_PER_SECOND: float
//   - HUB_BURST: integer
//   - HUB_USER_AGENT: string
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		Timeout:           config.GetEnvDuration("HUB_TIMEOUT", def.Timeout),
		MaxBodySize:       int64(config.GetEnvInt("HUB_MAX_BODY_SIZE", int(def.MaxBodySize))),
		MaxRedirects:      config.GetEnvInt("HUB_MAX_REDIRECTS", def.MaxRedirects),
		DenyPrivateIPs:    config.GetEnvBool("HUB_DENY_PRIVATE_IPS", def.DenyPrivateIPs),
		RetryAttempts:     config.GetEnvInt("HUB_RETRY_ATTEMPTS", def.RetryAttempts),
		RequestsPerSecond: config.GetEnvFloat("HUB_REQUESTS_PER_SECOND", def.RequestsPerSecond),
		Burst:             config.GetEnvInt("HUB_BURST", def.Burst),
		UserAgent:         config.GetEnvString("HUB_USER_AGENT", def.UserAgent),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("hub configuration validation failed: %w", err)
	}
	return cfg, nil
}
