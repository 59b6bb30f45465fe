package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fyyur/venues-client/pkg/api"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const (
	// maxMessageLen bounds the response excerpt carried in a ServiceError.
	maxMessageLen = 200
	// maxDrain bounds how much of an unread delete body is consumed.
	maxDrain = 64 << 10
)

// Client talks to the Fyyur venue endpoints.
//
// A Client is safe for concurrent use by multiple goroutines. It maintains
// an internal HTTP connection pool, shared across requests.
//
// Do not copy a Client after first use.
type Client struct {
	raw     *api.ClientWithResponses
	opts    *Options
	retrier *Retrier
	baseURL string
}

// New creates a new Fyyur client.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL must be absolute: %q", baseURL)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	// Validate options
	if options.timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}
	if options.maxRetries < 0 {
		return nil, errors.New("maxRetries cannot be negative")
	}
	if options.retryWaitMin <= 0 {
		return nil, errors.New("retryWaitMin must be positive")
	}
	if options.retryWaitMax <= 0 {
		return nil, errors.New("retryWaitMax must be positive")
	}
	if options.retryWaitMin >= options.retryWaitMax {
		return nil, errors.New("retryWaitMin must be less than retryWaitMax")
	}

	doer := options.doer
	if doer == nil {
		doer = &http.Client{
			Timeout: options.timeout,
		}
	}

	clientOpts := []api.ClientOption{
		api.WithHTTPClient(doer),
	}

	if options.userAgent != "" {
		ua := options.userAgent
		clientOpts = append(clientOpts, api.WithRequestEditorFn(func(_ context.Context, req *http.Request) error {
			req.Header.Set("User-Agent", ua)
			return nil
		}))
	}

	clientOpts = append(clientOpts, api.WithRequestEditorFn(setRequestID))

	rawClient, err := api.NewClientWithResponses(baseURL, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &Client{
		raw:     rawClient,
		opts:    options,
		retrier: newRetrier(options),
		baseURL: baseURL,
	}, nil
}

// setRequestID tags each outgoing request unless the caller already did.
func setRequestID(_ context.Context, req *http.Request) error {
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return nil
}

// DeleteVenue asks the backend to delete a venue.
//
// Every call sends its own request; nothing is cached or deduplicated. In
// the default mode the delete settles as soon as the status line and
// headers arrive, whatever the status. The body is then drained on a best
// effort basis and a failure to read it is reported in DeleteResult.BodyErr,
// not as an error. Only a request that never gets a response returns an
// error, always a *TransportError. With WithStrictStatus the body is read in
// full for the error message and non-2xx responses fail as well.
func (c *Client) DeleteVenue(ctx context.Context, id VenueID) (*DeleteResult, error) {
	if id == "" {
		return nil, &ValidationError{
			Code:    "INVALID_REQUEST",
			Message: "venue id cannot be empty",
		}
	}

	var result *DeleteResult
	err := c.retrier.Do(ctx, func() error {
		if c.opts.strictStatus {
			resp, execErr := c.raw.DeleteVenueWithResponse(ctx, string(id))
			if execErr != nil {
				return &TransportError{Method: http.MethodDelete, URL: c.venueURL(id), Err: execErr}
			}
			if err := mapStatus(resp.HTTPResponse, resp.Body, true); err != nil {
				return err
			}
			result = &DeleteResult{VenueID: id, StatusCode: resp.StatusCode(), Status: resp.Status()}
			return nil
		}

		rsp, execErr := c.raw.DeleteVenue(ctx, string(id))
		if execErr != nil {
			return &TransportError{Method: http.MethodDelete, URL: c.venueURL(id), Err: execErr}
		}
		result = &DeleteResult{
			VenueID:    id,
			StatusCode: rsp.StatusCode,
			Status:     rsp.Status,
			BodyErr:    discardBody(rsp.Body),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// discardBody drains at most maxDrain bytes so the connection can be reused,
// then closes the body.
func discardBody(body io.ReadCloser) error {
	_, err := io.Copy(io.Discard, io.LimitReader(body, maxDrain))
	if closeErr := body.Close(); err == nil {
		err = closeErr
	}
	return err
}

// ListingURL returns the absolute URL of the venue listing page.
func (c *Client) ListingURL() string {
	return c.ResolveURL(api.VenuesPath)
}

// ResolveURL resolves an absolute path against the client's base URL.
func (c *Client) ResolveURL(path string) string {
	u, err := api.ResolvePath(c.baseURL, path)
	if err != nil {
		// baseURL was validated in New.
		return path
	}
	return u.String()
}

// FetchListing loads the venue listing page.
func (c *Client) FetchListing(ctx context.Context) (*ListingPage, error) {
	var resp *api.GetVenuesResponse
	err := c.retrier.Do(ctx, func() error {
		var execErr error
		resp, execErr = c.raw.GetVenuesWithResponse(ctx)
		if execErr != nil {
			return &TransportError{Method: http.MethodGet, URL: c.ListingURL(), Err: execErr}
		}
		if c.opts.strictStatus {
			return mapStatus(resp.HTTPResponse, resp.Body, false)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ListingPage{
		URL:        c.ListingURL(),
		StatusCode: resp.StatusCode(),
		Body:       resp.Body,
	}, nil
}

func (c *Client) venueURL(id VenueID) string {
	return c.ResolveURL("/venues/" + url.PathEscape(string(id)))
}

// mapStatus converts a non-2xx response into a typed error. venueScoped
// marks requests addressing a single venue, where 404 means the venue is
// gone.
func mapStatus(resp *http.Response, body []byte, venueScoped bool) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	message := excerpt(body)
	if message == "" {
		message = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &AuthError{StatusCode: code, Message: message}
	case code == http.StatusTooManyRequests:
		return &RateLimitError{Message: message, RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case code == http.StatusNotFound && venueScoped:
		return newServiceError(ErrCodeNotFound, message, resp)
	case code >= 400 && code < 500:
		return newServiceError(ErrCodeRejected, message, resp)
	case code >= 500 && code < 600:
		return newServiceError(ErrCodeServer, message, resp)
	default:
		return newUnexpectedStatusError(code)
	}
}

// newServiceError prefers the id echoed by the backend and falls back to
// the one this client sent.
func newServiceError(code, message string, resp *http.Response) *ServiceError {
	requestID := resp.Header.Get(RequestIDHeader)
	if requestID == "" && resp.Request != nil {
		requestID = resp.Request.Header.Get(RequestIDHeader)
	}
	return &ServiceError{
		Code:       code,
		Message:    message,
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
	}
}

// excerpt returns the first non-blank line of body, truncated.
func excerpt(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > maxMessageLen {
			line = line[:maxMessageLen] + "..."
		}
		return line
	}
	return ""
}

// parseRetryAfter accepts both delay-seconds and HTTP-date forms.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
