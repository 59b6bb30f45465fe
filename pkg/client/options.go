package client

import (
	"time"

	"github.com/fyyur/venues-client/pkg/api"
)

// Options configures the client behavior.
type Options struct {
	timeout          time.Duration
	maxRetries       int
	retryWaitMin     time.Duration
	retryWaitMax     time.Duration
	retryOnRateLimit bool
	strictStatus     bool
	userAgent        string
	doer             api.HttpRequestDoer
}

func defaultOptions() *Options {
	return &Options{
		timeout:          30 * time.Second,
		maxRetries:       0,
		retryWaitMin:     1 * time.Second,
		retryWaitMax:     30 * time.Second,
		retryOnRateLimit: true,
		userAgent:        "fyyur-venues-client",
	}
}

// Option configures the client.
type Option func(*Options)

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.timeout = d
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
// Default is 0: a delete is sent exactly once. Only errors produced in
// strict status mode (5xx, 429) are ever retried.
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.maxRetries = n
	}
}

// WithRetryWait sets the min/max retry backoff duration.
// Default is 1s min, 30s max.
func WithRetryWait(min, max time.Duration) Option {
	return func(o *Options) {
		o.retryWaitMin = min
		o.retryWaitMax = max
	}
}

// WithoutRateLimitRetry disables automatic retry on rate limit errors.
func WithoutRateLimitRetry() Option {
	return func(o *Options) {
		o.retryOnRateLimit = false
	}
}

// WithStrictStatus makes non-2xx responses fail with a typed error.
//
// Without it any settled response counts as success and its status is only
// reported in the result.
func WithStrictStatus() Option {
	return func(o *Options) {
		o.strictStatus = true
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		o.userAgent = ua
	}
}

// WithHTTPDoer replaces the HTTP transport. The timeout option does not
// apply to a custom doer.
func WithHTTPDoer(doer api.HttpRequestDoer) Option {
	return func(o *Options) {
		o.doer = doer
	}
}
