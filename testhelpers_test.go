package consolecaptor

import (
	"fmt"
	"io"
	"os"
	"testing"
)

// captureStdout redirects os.Stdout to a pipe, runs fn, and returns
// everything fn wrote to stdout. Tests use it as the "real console" a
// Captor must restore, so they can see what reaches it after Close.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stdout, fn)
}

// captureStderr is captureStdout for os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stderr, fn)
}

func captureFile(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	old := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe(): %v", err)
	}
	defer func() { _ = r.Close() }()

	// Drain concurrently so a chatty fn cannot fill the pipe and block.
	done := make(chan []byte, 1)
	go func() {
		out, _ := io.ReadAll(r)
		done <- out
	}()

	*target = w
	func() {
		defer func() { *target = old }()
		fn()
	}()
	_ = w.Close()

	return string(<-done)
}

// greet prints the way typical code under test does: straight to the
// process streams, with stray whitespace and a blank line.
func greet() {
	fmt.Println("Hello there friend!")
	fmt.Println()
	fmt.Println("How are you doing?  ")
	fmt.Fprintln(os.Stderr, "Congratrats!")
}

// openCaptor opens a Captor and makes sure it is closed when the test ends,
// even if the test closes it itself.
func openCaptor(t *testing.T, opts Options) *Captor {
	t.Helper()
	c, err := NewWithOptions(opts)
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}
