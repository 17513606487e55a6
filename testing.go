package consolecaptor

import (
	"fmt"
	"testing"
)

// Capture opens a Captor with DefaultOptions for the duration of tb.
func Capture(tb testing.TB) *Captor {
	tb.Helper()
	return CaptureWithOptions(tb, DefaultOptions())
}

// CaptureWithOptions opens a Captor and closes it in tb.Cleanup, so the
// original streams come back even when the test fails, calls FailNow or
// panics. If the test has failed by then, the captured output is written to
// the original standard error first; otherwise it would be lost.
func CaptureWithOptions(tb testing.TB, opts Options) *Captor {
	tb.Helper()
	c, err := NewWithOptions(opts)
	if err != nil {
		tb.Fatalf("starting console capture: %v", err)
	}
	tb.Cleanup(func() {
		if c.closed {
			return
		}
		if tb.Failed() {
			realStderr := c.slot.Saved().Stderr
			if err := c.WriteReport(realStderr); err != nil {
				fmt.Fprintln(realStderr, "Warning: writing captured output report:", err)
			}
		}
		if err := c.Close(); err != nil {
			tb.Errorf("closing console capture: %v", err)
		}
	})
	return c
}
