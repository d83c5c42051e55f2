package hub

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"tk-labels/internal/domain/entity"
	"tk-labels/internal/observability/metrics"
	"tk-labels/internal/observability/tracing"
	"tk-labels/internal/resilience/circuitbreaker"
	"tk-labels/internal/resilience/retry"
)

// Client fetches project notices from the hub.
//
// Features:
//   - URL validation with optional SSRF protection
//   - Circuit breaker shared by all projects
//   - Optional retry with backoff and outbound rate limit
//   - Coalescing of identical in-flight requests
//   - Size limiting and a per-request timeout
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	limiter *RateLimiter
	group   singleflight.Group
	config  Config
	budget  time.Duration
}

// NewClient creates a hub client from a validated configuration.
func NewClient(cfg Config) *Client {
	breakerCfg := circuitbreaker.HubAPIConfig()
	breakerCfg.IsSuccessful = func(err error) bool { return !isHubFailure(err) }

	c := &Client{
		breaker: circuitbreaker.New(breakerCfg),
		config:  cfg,
		budget:  fetchBudget(cfg),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst)
	}

	c.client = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= c.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), c.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return c
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// ProjectNotices GETs requestURL and returns the decoded notice list.
//
// Errors:
//   - ErrInvalidURL, ErrPrivateIP: the URL was rejected before any request
//   - ErrUnexpectedStatus: non-2xx response (wraps *retry.HTTPError)
//   - ErrTimeout, ErrBodyTooLarge, ErrTooManyRedirects: transport limits
//   - ErrInvalidJSON, ErrMissingNotice: the body was not a project document
//   - gobreaker.ErrOpenState: too many recent failures
func (c *Client) ProjectNotices(ctx context.Context, requestURL string) ([]entity.Notice, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "hub.ProjectNotices",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("hub.url", requestURL)),
	)
	defer span.End()

	start := time.Now()
	notices, err := c.projectNotices(ctx, requestURL)
	metrics.RecordHubRequest(resultLabel(err), time.Since(start), len(notices))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("hub.notices", len(notices)))
	return notices, nil
}

func (c *Client) projectNotices(ctx context.Context, requestURL string) ([]entity.Notice, error) {
	if err := validateURL(requestURL, c.config.DenyPrivateIPs); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The shared fetch outlives any single caller; each caller stops waiting on its own
	// cancellation.
	ch := c.group.DoChan(requestURL, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.budget)
		defer cancel()
		return c.breaker.Execute(func() (interface{}, error) {
			return c.fetch(fetchCtx, requestURL)
		})
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}

	// The slice is shared by every coalesced caller.
	shared := res.Val.([]entity.Notice)
	notices := make([]entity.Notice, len(shared))
	copy(notices, shared)
	return notices, nil
}

// fetchBudget bounds a shared fetch: every attempt may use the full timeout, plus the
// longest backoff between attempts.
func fetchBudget(cfg Config) time.Duration {
	attempts := max(cfg.RetryAttempts, 1)
	return time.Duration(attempts)*cfg.Timeout + time.Duration(attempts-1)*retry.HubAPIConfig().MaxDelay
}

func (c *Client) fetch(ctx context.Context, requestURL string) ([]entity.Notice, error) {
	if c.config.RetryAttempts <= 1 {
		return c.doFetch(ctx, requestURL)
	}

	cfg := retry.HubAPIConfig()
	cfg.MaxAttempts = c.config.RetryAttempts

	var notices []entity.Notice
	err := retry.WithBackoff(ctx, cfg, func() error {
		var err error
		notices, err = c.doFetch(ctx, requestURL)
		return err
	})
	if err != nil {
		return nil, err
	}
	return notices, nil
}

func (c *Client) doFetch(ctx context.Context, requestURL string) ([]entity.Notice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", errRateLimitWait, err)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("hub request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedStatus, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize+1))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("failed to read hub response: %w", err)
	}
	if int64(len(body)) > c.config.MaxBodySize {
		return nil, fmt.Errorf("%w: exceeds limit %d bytes", ErrBodyTooLarge, c.config.MaxBodySize)
	}

	return decodeNotices(body)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isHubFailure reports whether err says the hub is unhealthy: transport errors, timeouts and
// 408, 429 or 5xx responses. Answers specific to one project (4xx, malformed documents) and
// requests abandoned by the caller are not hub failures.
func isHubFailure(err error) bool {
	var httpErr *retry.HTTPError
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrTimeout):
		return true
	case errors.As(err, &httpErr):
		return retry.IsRetryable(httpErr)
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, errRateLimitWait),
		errors.Is(err, ErrInvalidJSON),
		errors.Is(err, ErrMissingNotice),
		errors.Is(err, ErrBodyTooLarge),
		errors.Is(err, ErrTooManyRedirects),
		errors.Is(err, ErrInvalidURL),
		errors.Is(err, ErrPrivateIP):
		return false
	default:
		return true
	}
}

// resultLabel maps an error to the result label of the hub metrics.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrUnexpectedStatus):
		return "status"
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrMissingNotice), errors.Is(err, ErrBodyTooLarge):
		return "malformed"
	case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrPrivateIP):
		return "rejected"
	case errors.Is(err, circuitbreaker.ErrOpen):
		return "circuit_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
