package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// recordingServer answers every request with status and counts hits.
func recordingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	t.Helper()
	var hits atomic.Int32
	var last atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		last.Store(r.Method + " " + r.URL.EscapedPath())
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &hits, &last
}

// TestDeleteVenue tests the request shape and status-agnostic result
func TestDeleteVenue(t *testing.T) {
	tests := []struct {
		name   string
		id     VenueID
		status int
		path   string
	}{
		{name: "string id", id: "42", status: http.StatusOK, path: "/venues/42"},
		{name: "numeric id", id: VenueIDFromInt(7), status: http.StatusOK, path: "/venues/7"},
		{name: "escaped id", id: "a b", status: http.StatusOK, path: "/venues/a%20b"},
		{name: "server error still settles", id: "42", status: http.StatusInternalServerError, path: "/venues/42"},
		{name: "not found still settles", id: "42", status: http.StatusNotFound, path: "/venues/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, hits, last := recordingServer(t, tt.status, "<html></html>")

			c, err := New(server.URL)
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			result, err := c.DeleteVenue(context.Background(), tt.id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, result.StatusCode)
			}
			if result.OK() != (tt.status < 300) {
				t.Errorf("OK() = %v for status %d", result.OK(), tt.status)
			}
			if result.VenueID != tt.id {
				t.Errorf("expected venue id %s, got %s", tt.id, result.VenueID)
			}
			if hits.Load() != 1 {
				t.Errorf("expected 1 request, got %d", hits.Load())
			}
			if got := last.Load().(string); got != "DELETE "+tt.path {
				t.Errorf("expected DELETE %s, got %s", tt.path, got)
			}
		})
	}
}

// TestDeleteVenueTwiceSendsTwoRequests ensures no deduplication happens
func TestDeleteVenueTwiceSendsTwoRequests(t *testing.T) {
	server, hits, _ := recordingServer(t, http.StatusOK, "")

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := c.DeleteVenue(context.Background(), "42"); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 requests, got %d", hits.Load())
	}
}

// TestDeleteVenueValidation tests empty ids never reach the network
func TestDeleteVenueValidation(t *testing.T) {
	server, hits, _ := recordingServer(t, http.StatusOK, "")

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = c.DeleteVenue(context.Background(), "")
	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("expected no requests, got %d", hits.Load())
	}
}

// TestDeleteVenueWhitespaceID tests blank ids are sent as-is
func TestDeleteVenueWhitespaceID(t *testing.T) {
	server, hits, last := recordingServer(t, http.StatusOK, "")

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := c.DeleteVenue(context.Background(), " "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 request, got %d", hits.Load())
	}
	if got := last.Load(); got != "DELETE /venues/%20" {
		t.Errorf("expected DELETE /venues/%%20, got %v", got)
	}
}

// truncatingServer sends the status line and headers promising a longer
// body, writes part of it, then drops the connection.
func truncatingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(status)
		_, _ = w.Write([]byte("hello"))
		w.(http.Flusher).Flush()
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_ = conn.Close()
	}))
	t.Cleanup(server.Close)
	return server
}

// TestDeleteVenueTruncatedBody tests a response settles once headers arrive
func TestDeleteVenueTruncatedBody(t *testing.T) {
	server := truncatingServer(t, http.StatusOK)

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	result, err := c.DeleteVenue(context.Background(), "42")
	if err != nil {
		t.Fatalf("expected settled delete, got %v", err)
	}
	if result.StatusCode != http.StatusOK || !result.OK() {
		t.Errorf("expected status 200, got %d", result.StatusCode)
	}
	if result.BodyErr == nil {
		t.Error("expected body read failure to be reported")
	}
}

// TestDeleteVenueTruncatedBodyStrict tests strict mode still needs the full body
func TestDeleteVenueTruncatedBodyStrict(t *testing.T) {
	server := truncatingServer(t, http.StatusOK)

	c, err := New(server.URL, WithStrictStatus())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = c.DeleteVenue(context.Background(), "42")
	if !IsTransportError(err) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

// TestDeleteVenueTransportError tests a request that never settles
func TestDeleteVenueTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New(url, WithMaxRetries(3), WithRetryWait(time.Millisecond, 5*time.Millisecond))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	result, err := c.DeleteVenue(context.Background(), "42")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
	if !IsTransportError(err) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}

	var te *TransportError
	errors.As(err, &te)
	if te.Method != http.MethodDelete || !strings.HasSuffix(te.URL, "/venues/42") {
		t.Errorf("unexpected transport error fields: %+v", te)
	}
}

// TestDeleteVenueContextCancellation tests cancellation surfaces as transport failure
func TestDeleteVenueContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.DeleteVenue(ctx, "42")
	if !IsTransportError(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded in chain, got %v", err)
	}
}

// TestDeleteVenueStrictStatus tests typed errors in strict mode
func TestDeleteVenueStrictStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "404 is not found", status: http.StatusNotFound, check: IsNotFound},
		{name: "401 is auth", status: http.StatusUnauthorized, check: IsAuthError},
		{name: "403 is auth", status: http.StatusForbidden, check: IsAuthError},
		{name: "429 is rate limit", status: http.StatusTooManyRequests, check: IsRateLimitError},
		{name: "500 is service", status: http.StatusInternalServerError, check: IsServiceError},
		{name: "418 is rejected", status: http.StatusTeapot, check: func(err error) bool {
			var se *ServiceError
			return errors.As(err, &se) && se.Code == ErrCodeRejected
		}},
		{name: "304 is unexpected", status: http.StatusNotModified, check: func(err error) bool {
			return errors.Is(err, ErrUnexpectedStatus)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _, _ := recordingServer(t, tt.status, "")

			c, err := New(server.URL, WithStrictStatus(), WithoutRateLimitRetry())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			_, err = c.DeleteVenue(context.Background(), "42")
			if err == nil {
				t.Fatal("expected error in strict mode")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error type %T: %v", err, err)
			}
		})
	}
}

// TestDeleteVenueStrictSuccess tests 2xx passes in strict mode
func TestDeleteVenueStrictSuccess(t *testing.T) {
	server, _, _ := recordingServer(t, http.StatusNoContent, "")

	c, err := New(server.URL, WithStrictStatus())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	result, err := c.DeleteVenue(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", result.StatusCode)
	}
}

// TestDeleteVenueStrictRetries tests 5xx are retried when retries are enabled
func TestDeleteVenueStrictRetries(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.Header().Set("X-Request-ID", "req-1")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "\n  database unavailable  \nstack...")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := New(server.URL,
		WithStrictStatus(),
		WithMaxRetries(2),
		WithRetryWait(time.Millisecond, 5*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := c.DeleteVenue(context.Background(), "42"); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", hits.Load())
	}

	hits.Store(-10)
	_, err = c.DeleteVenue(context.Background(), "42")
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if se.Message != "database unavailable" || se.RequestID != "req-1" || se.Code != ErrCodeServer {
		t.Errorf("unexpected service error: %+v", se)
	}
}

// TestFetchListing tests listing page loading
func TestFetchListing(t *testing.T) {
	server, _, last := recordingServer(t, http.StatusOK, "<h1>Venues</h1>")

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	page, err := c.FetchListing(context.Background())
	if err != nil {
		t.Fatalf("FetchListing: %v", err)
	}
	if page.StatusCode != http.StatusOK || string(page.Body) != "<h1>Venues</h1>" {
		t.Errorf("unexpected page: %d %q", page.StatusCode, page.Body)
	}
	if page.URL != server.URL+"/venues" {
		t.Errorf("unexpected page url: %s", page.URL)
	}
	if got := last.Load().(string); got != "GET /venues" {
		t.Errorf("unexpected request: %s", got)
	}
}

// TestFetchListingStrictNotFound tests a missing listing is not a venue 404
func TestFetchListingStrictNotFound(t *testing.T) {
	server, _, _ := recordingServer(t, http.StatusNotFound, "")

	c, err := New(server.URL, WithStrictStatus())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = c.FetchListing(context.Background())
	var se *ServiceError
	if !errors.As(err, &se) || se.Code != ErrCodeRejected {
		t.Fatalf("expected rejected service error, got %v", err)
	}
	if se.Message != "Not Found" {
		t.Errorf("expected status text message, got %q", se.Message)
	}
}

// TestParseRetryAfter tests both Retry-After forms
func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 0 {
		t.Errorf("empty: got %v", d)
	}
	if d := parseRetryAfter("3"); d != 3*time.Second {
		t.Errorf("seconds: got %v", d)
	}
	if d := parseRetryAfter("-3"); d != 0 {
		t.Errorf("negative: got %v", d)
	}
	if d := parseRetryAfter("soon"); d != 0 {
		t.Errorf("garbage: got %v", d)
	}
	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	if d := parseRetryAfter(future); d <= 0 || d > time.Hour {
		t.Errorf("http date: got %v", d)
	}
}

// TestExcerpt tests message extraction from response bodies
func TestExcerpt(t *testing.T) {
	if got := excerpt([]byte("\n\n  first line \nsecond")); got != "first line" {
		t.Errorf("got %q", got)
	}
	if got := excerpt(nil); got != "" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("x", maxMessageLen+50)
	if got := excerpt([]byte(long)); len(got) != maxMessageLen+3 {
		t.Errorf("expected truncation, got length %d", len(got))
	}
}

// BenchmarkDeleteVenue benchmarks the delete operation
func BenchmarkDeleteVenue(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := New(server.URL)
	if err != nil {
		b.Fatalf("failed to create client: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.DeleteVenue(context.Background(), "42")
	}
}
