package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrInvalidArgument", ErrInvalidArgument, "invalid argument"},
		{"ErrRateLimited", ErrRateLimited, "rate limited"},
		{"ErrTimeout", ErrTimeout, "operation timed out"},
		{"ErrUnknownSource", ErrUnknownSource, "unknown source"},
		{"ErrDuplicateSource", ErrDuplicateSource, "source already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "bucket",
				Field:  "capacity",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "bucket: invalid capacity=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "bucket",
				Field:  "refill_rate",
				Value:  0,
				Reason: "must be positive",
				Hint:   "use a value greater than 0",
			},
			want: "bucket: invalid refill_rate=0 (must be positive) - use a value greater than 0",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "registry",
				Field:  "source",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "registry: invalid source= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	cfgErr := NewValidationError("bucket", "capacity", 0, "must be positive")
	if !errors.Is(cfgErr, ErrInvalidConfiguration) {
		t.Error("configuration error should wrap ErrInvalidConfiguration")
	}
	if errors.Is(cfgErr, ErrInvalidArgument) {
		t.Error("configuration error should not wrap ErrInvalidArgument")
	}

	argErr := NewArgumentError("bucket", "tokens", 0, "must be at least 1")
	if !errors.Is(argErr, ErrInvalidArgument) {
		t.Error("argument error should wrap ErrInvalidArgument")
	}
	if errors.Is(argErr, ErrRateLimited) {
		t.Error("argument error must not look like a rate limit error")
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}

	// Should return same instance for chaining
	result := err.WithHint("new hint")
	if result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestTimeoutError(t *testing.T) {
	err := &TimeoutError{Timeout: 5 * time.Second, Requested: 10, Waited: 1200 * time.Millisecond}

	msg := err.Error()
	for _, part := range []string{"10 tokens", "5s", "1.2s"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error message should contain %q, got %q", part, msg)
		}
	}

	if !errors.Is(err, ErrRateLimited) {
		t.Error("TimeoutError should wrap ErrRateLimited")
	}
	if !errors.Is(err, ErrTimeout) {
		t.Error("TimeoutError should wrap ErrTimeout")
	}

	wrapped := fmt.Errorf("fetch quotes: %w", err)
	var te *TimeoutError
	if !errors.As(wrapped, &te) {
		t.Fatal("errors.As should find TimeoutError through wrapping")
	}
	if te.Requested != 10 {
		t.Errorf("Requested = %d, want 10", te.Requested)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout error", ErrTimeout, true},
		{"rate limited error", ErrRateLimited, true},
		{"wait timeout", &TimeoutError{Requested: 1}, true},
		{"validation error", NewValidationError("m", "f", 0, "r"), false},
		{"random error", errors.New("random"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"wait timeout", &TimeoutError{}, true},
		{"wrapped wait timeout", fmt.Errorf("x: %w", &TimeoutError{}), true},
		{"bare sentinel", ErrTimeout, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.want {
				t.Errorf("IsTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation error", NewValidationError("test", "field", 0, "test"), true},
		{"argument error", NewArgumentError("test", "n", 0, "test"), true},
		{"wrapped validation error", fmt.Errorf("ctx: %w", NewValidationError("test", "field", 0, "test")), true},
		{"standard error", errors.New("test"), false},
		{"timeout error", &TimeoutError{}, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}
