package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestServiceError tests ServiceError type
func TestServiceError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		statusCode int
		requestID  string
		wantError  string
	}{
		{
			name:       "service error with request ID",
			code:       ErrCodeServer,
			message:    "internal server error",
			statusCode: 500,
			requestID:  "req-123",
			wantError:  "SERVER_ERROR: internal server error (status 500, request req-123)",
		},
		{
			name:       "service error without request ID",
			code:       ErrCodeNotFound,
			message:    "Not Found",
			statusCode: 404,
			wantError:  "VENUE_NOT_FOUND: Not Found (status 404)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ServiceError{
				Code:       tt.code,
				Message:    tt.message,
				StatusCode: tt.statusCode,
				RequestID:  tt.requestID,
			}

			if errStr := err.Error(); errStr != tt.wantError {
				t.Errorf("expected error %q, got %q", tt.wantError, errStr)
			}
		})
	}
}

// TestTransportError tests TransportError formatting and unwrapping
func TestTransportError(t *testing.T) {
	err := &TransportError{Method: "DELETE", URL: "http://h/venues/42", Err: context.Canceled}

	if got := err.Error(); got != "DELETE http://h/venues/42: context canceled" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("expected TransportError to unwrap to its cause")
	}
}

// TestErrorMessages tests the remaining error types
func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", &AuthError{StatusCode: 401, Message: "login required"}, "authentication failed: login required"},
		{"rate limit with retry", &RateLimitError{Message: "slow down", RetryAfter: 2 * time.Second}, "rate limited: slow down (retry after 2s)"},
		{"rate limit without retry", &RateLimitError{Message: "slow down"}, "rate limited: slow down"},
		{"validation", &ValidationError{Code: "INVALID_REQUEST", Message: "venue id cannot be empty"}, "validation error: venue id cannot be empty"},
		{"unexpected status", newUnexpectedStatusError(304), "unexpected status code: 304"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestErrorPredicates tests the Is* helpers, including through wrapping
func TestErrorPredicates(t *testing.T) {
	serviceDown := &ServiceError{Code: ErrCodeServer, StatusCode: 503}
	notFound := &ServiceError{Code: ErrCodeNotFound, StatusCode: 404}
	rejected := &ServiceError{Code: ErrCodeRejected, StatusCode: 400}
	transport := &TransportError{Method: "DELETE", URL: "u", Err: errors.New("refused")}

	tests := []struct {
		name  string
		check func(error) bool
		yes   []error
		no    []error
	}{
		{"IsNotFound", IsNotFound, []error{notFound}, []error{serviceDown, rejected, transport, nil}},
		{"IsServiceError", IsServiceError, []error{serviceDown}, []error{notFound, rejected, transport, nil}},
		{"IsTransportError", IsTransportError, []error{transport}, []error{serviceDown, nil}},
		{"IsAuthError", IsAuthError, []error{&AuthError{}}, []error{transport, nil}},
		{"IsRateLimitError", IsRateLimitError, []error{&RateLimitError{}}, []error{serviceDown, nil}},
		{"IsValidationError", IsValidationError, []error{&ValidationError{}}, []error{transport, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, err := range tt.yes {
				if !tt.check(err) {
					t.Errorf("expected true for %T", err)
				}
				if !tt.check(fmt.Errorf("wrapped: %w", err)) {
					t.Errorf("expected true for wrapped %T", err)
				}
			}
			for _, err := range tt.no {
				if tt.check(err) {
					t.Errorf("expected false for %T", err)
				}
			}
		})
	}
}

// TestErrUnexpectedStatus tests ErrUnexpectedStatus constant
func TestErrUnexpectedStatus(t *testing.T) {
	if ErrUnexpectedStatus.Error() != "unexpected status code" {
		t.Errorf("expected 'unexpected status code', got %q", ErrUnexpectedStatus.Error())
	}
	if !errors.Is(newUnexpectedStatusError(101), ErrUnexpectedStatus) {
		t.Error("expected wrapped sentinel")
	}
}
