package bucket

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// Waiting callers must never leave timers or goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
