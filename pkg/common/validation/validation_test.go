package validation

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/vnykmshr/finflow/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		module    string
		field     string
		value     int
		wantError bool
	}{
		{"positive value", "test", "capacity", 10, false},
		{"positive value 1", "test", "capacity", 1, false},
		{"zero value", "test", "capacity", 0, true},
		{"negative value", "test", "capacity", -1, true},
		{"large positive", "test", "capacity", 1000000, false},
		{"large negative", "test", "capacity", -1000000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive(tt.module, tt.field, tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			}
		})
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	tests := []struct {
		name      string
		value     time.Duration
		wantError bool
	}{
		{"one second", time.Second, false},
		{"one nanosecond", time.Nanosecond, false},
		{"zero", 0, true},
		{"negative", -time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveDuration("bucket", "wait_timeout", tt.value)

			if tt.wantError {
				var verr *errors.ValidationError
				if !stderrors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if verr.Field != "wait_timeout" {
					t.Errorf("Field = %q, want wait_timeout", verr.Field)
				}
				if verr.Hint == "" {
					t.Error("expected a hint on duration errors")
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("registry", "source", "quotes"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	err := ValidateNotEmpty("registry", "source", "")
	if !errors.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !stderrors.Is(err, errors.ErrInvalidConfiguration) {
		t.Error("empty value should be reported as invalid configuration")
	}
}
