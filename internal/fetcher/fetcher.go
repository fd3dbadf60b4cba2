package fetcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/maltedev/amazon-price-notifier/internal/models"
	"github.com/maltedev/amazon-price-notifier/internal/result"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 1 * time.Second
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// maxBackoff caps the delay between attempts regardless of how far the
	// exponential schedule has grown.
	maxBackoff = 30 * time.Second

	maxRedirects = 10
)

// Config is an immutable per-client snapshot. MaxRetries bounds the total
// number of transport attempts, not the number of re-tries after the first.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
	UserAgent  string
}

func DefaultConfig() Config {
	return Config{
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		UserAgent:  DefaultUserAgent,
	}
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// Response is the outcome of a successful fetch.
type Response struct {
	Body       string
	StatusCode int
	FinalURL   string
}

// Client fetches product pages with bounded exponential-backoff retry.
// Retry policy is driven by Error.Retryable: connection errors, timeouts and
// 5xx statuses are retried, everything else is terminal on the first attempt.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	cfg = cfg.withDefaults()

	// Retrying is handled here, not by resty: the backoff schedule and the
	// retryability decision belong to the error taxonomy.
	http := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept-Language", "ja-JP,ja;q=0.9,en;q=0.8").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetRetryCount(0)

	return &Client{
		http:   http,
		cfg:    cfg,
		logger: logger.With("component", "fetcher"),
	}
}

// Fetch performs the logical "get page content" operation for a validated
// URL. After retries are exhausted the last classified error is returned
// unchanged, never a generic wrapper.
func (c *Client) Fetch(ctx context.Context, u models.URL) result.Result[*Response, *Error] {
	rawURL := u.String()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.BaseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = maxBackoff
	bo.MaxElapsedTime = 0

	// MaxRetries counts total attempts, so the policy allows MaxRetries-1
	// additional tries after the first.
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.cfg.MaxRetries-1)), ctx)

	var (
		lastErr *Error
		resp    *Response
		attempt int
	)

	operation := func() error {
		attempt++
		r, err := c.http.R().SetContext(ctx).Get(rawURL)
		if err != nil {
			lastErr = classify(err, rawURL, c.cfg.Timeout)
		} else if r.StatusCode() < 200 || r.StatusCode() >= 300 {
			lastErr = statusError(r.StatusCode(), rawURL)
		} else {
			resp = &Response{
				Body:       r.String(),
				StatusCode: r.StatusCode(),
				FinalURL:   finalURL(r, rawURL),
			}
			return nil
		}

		if lastErr.Retryable() {
			c.logger.Warn("fetch attempt failed, will retry",
				"url", rawURL,
				"attempt", attempt,
				"code", lastErr.Code,
				"error", lastErr.Error(),
			)
			return lastErr
		}
		return backoff.Permanent(error(lastErr))
	}

	if err := backoff.Retry(operation, policy); err != nil {
		if lastErr == nil {
			// Context ended before the first attempt ran.
			lastErr = classify(err, rawURL, c.cfg.Timeout)
		}
		c.logger.Error("fetch failed",
			"url", rawURL,
			"attempts", attempt,
			"code", lastErr.Code,
			"error", lastErr.Error(),
		)
		return result.Err[*Response](lastErr)
	}

	c.logger.Debug("fetch succeeded", "url", rawURL, "status", resp.StatusCode, "attempts", attempt)
	return result.Ok[*Response, *Error](resp)
}

func finalURL(r *resty.Response, fallback string) string {
	if r.RawResponse != nil && r.RawResponse.Request != nil && r.RawResponse.Request.URL != nil {
		return r.RawResponse.Request.URL.String()
	}
	return fallback
}
