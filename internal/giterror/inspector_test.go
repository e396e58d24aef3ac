package giterror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	relerrors "github.com/sirseerhq/readme-rel/internal/errors"
)

func TestGitHubErrorInspector_IsAuthError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "401 unauthorized",
			err:  errors.New("non-200 OK status code: 401 Unauthorized body: \"\""),
			want: true,
		},
		{
			name: "bad credentials",
			err:  errors.New("Bad credentials"),
			want: true,
		},
		{
			name: "authentication required",
			err:  errors.New("Authentication required"),
			want: true,
		},
		{
			name: "wrapped auth error",
			err:  fmt.Errorf("failed to query: %w", errors.New("401 Unauthorized")),
			want: true,
		},
		{
			name: "not an auth error",
			err:  errors.New("something went wrong"),
			want: false,
		},
		{
			name: "port digits are not a status",
			err:  errors.New(`Post "http://127.0.0.1:34013/graphql": dial tcp 127.0.0.1:34013: connect: connection refused`),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsRateLimitError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "api rate limit exceeded",
			err:  errors.New("API rate limit exceeded for user ID 1"),
			want: true,
		},
		{
			name: "429 status",
			err:  errors.New("non-200 OK status code: 429 Too Many Requests body: \"\""),
			want: true,
		},
		{
			name: "not a rate limit error",
			err:  errors.New("Bad credentials"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsNetworkError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "connection refused",
			err:  errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			want: true,
		},
		{
			name: "no such host",
			err:  errors.New("dial tcp: lookup api.github.invalid: no such host"),
			want: true,
		},
		{
			name: "response header timeout",
			err:  errors.New("net/http: timeout awaiting response headers"),
			want: true,
		},
		{
			name: "tls handshake",
			err:  errors.New("net/http: TLS handshake timeout"),
			want: true,
		},
		{
			name: "not a network error",
			err:  errors.New("Could not resolve to a User"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Custom error types for testing ErrorChainInspector
type authError struct{}

func (authError) Error() string     { return "custom auth error" }
func (authError) IsAuthError() bool { return true }

type rateLimitError struct{}

func (rateLimitError) Error() string          { return "custom rate limit error" }
func (rateLimitError) IsRateLimitError() bool { return true }

func TestErrorChainInspector(t *testing.T) {
	baseInspector := NewInspector()
	chainInspector := NewErrorChainInspector(baseInspector)

	tests := []struct {
		name   string
		err    error
		method string
		want   bool
	}{
		{
			name:   "missing token sentinel",
			err:    fmt.Errorf("set PUBLIC_PAT: %w", relerrors.ErrMissingToken),
			method: "auth",
			want:   true,
		},
		{
			name:   "custom auth error type",
			err:    authError{},
			method: "auth",
			want:   true,
		},
		{
			name:   "wrapped custom auth error",
			err:    fmt.Errorf("operation failed: %w", authError{}),
			method: "auth",
			want:   true,
		},
		{
			name:   "custom rate limit error type",
			err:    rateLimitError{},
			method: "ratelimit",
			want:   true,
		},
		{
			name:   "deadline exceeded",
			err:    fmt.Errorf("search: %w", context.DeadlineExceeded),
			method: "network",
			want:   true,
		},
		{
			name:   "net.OpError in chain",
			err:    &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")},
			method: "network",
			want:   true,
		},
		{
			name:   "falls back to string checking",
			err:    errors.New("401 Unauthorized"),
			method: "auth",
			want:   true,
		},
		{
			name:   "no match in chain or string",
			err:    errors.New("some other error"),
			method: "auth",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			switch tt.method {
			case "auth":
				got = chainInspector.IsAuthError(tt.err)
			case "ratelimit":
				got = chainInspector.IsRateLimitError(tt.err)
			case "network":
				got = chainInspector.IsNetworkError(tt.err)
			}
			if got != tt.want {
				t.Errorf("ErrorChainInspector.%s() = %v, want %v", tt.method, got, tt.want)
			}
		})
	}
}
