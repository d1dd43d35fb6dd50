// Package gfw provides a resilient Global Fishing Watch v3 API client used
// as the registry and events collaborator
package gfw

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "trawlwatch/internal/platform/errors"
	"trawlwatch/internal/platform/logger"
)

const (
	baseURLDefault   = "https://gateway.api.globalfishingwatch.org/v3"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "trawlwatch-scan"
	defaultMaxRetry  = 4
	defaultRetryBase = 500 * time.Millisecond

	identityDataset = "public-global-vessel-identity:latest"
	eventsDataset   = "public-global-fishing-events:latest"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Token is the bearer token; required (ConfigFault when absent is the
	// caller's job, enforced at startup via config.MustString)
	Token string

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal GFW REST client with retries and rate limit handling
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("gfw"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// getJSON issues a GET with auth, retries, and rate limit handling, then
// decodes the response body into out
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.opts.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "gfw new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return perr.Wrapf(err, perr.ErrorCodeLookup, "gfw do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("gfw transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("gfw http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			defer func() { _ = resp.Body.Close() }()
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeLookup, "gfw malformed response")
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header, c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return perr.RateLimitedf("gfw rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("gfw rate limited backing off")
			c.sleep(wait)
			attempts++
			continue

		case resp.StatusCode == http.StatusBadGateway,
			resp.StatusCode == http.StatusServiceUnavailable,
			resp.StatusCode == http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return perr.Unavailablef("gfw transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("gfw transient error retrying")
			c.sleep(back)
			attempts++
			continue

		default:
			// diagnostics tail, then a lookup fault the cascade can absorb
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return perr.Lookupf("gfw unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase / time.Millisecond)
	ms = ms << uint(attempt)
	if lim := int64(30 * time.Second / time.Millisecond); ms > lim {
		ms = lim
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

// retryAfter honors Retry-After as seconds or an HTTP date
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		return t.Sub(now)
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<16))
	return rc.Close()
}
