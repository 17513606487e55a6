// Package consolecaptor captures what code under test prints to standard
// output and standard error, and hands it back as lines.
//
// A Captor replaces os.Stdout and os.Stderr (and the writers fatih/color
// prints through) with in-memory buffers for as long as it is open:
//
//	c, err := consolecaptor.New()
//	if err != nil {
//		t.Fatal(err)
//	}
//	defer c.Close()
//
//	greet()
//	got := c.StandardOutput()
//
// In tests, Capture does the same and closes the captor in t.Cleanup.
//
// The streams are process-wide, so only one Captor may be open at a time
// and tests that capture must not run in parallel with tests that print.
// Output written through a writer saved before the capture started, such
// as the standard log package's default logger, is not captured.
package consolecaptor

import (
	"errors"
	"fmt"

	"github.com/nethoundsh/consolecaptor/internal/buffer"
	"github.com/nethoundsh/consolecaptor/internal/lines"
	"github.com/nethoundsh/consolecaptor/internal/sink"
)

var (
	ErrClosed = errors.New("console captor is closed")
	ErrBusy   = sink.ErrBusy
)

// Stream selects one of the two captured streams.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	switch s {
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return fmt.Sprintf("Stream(%d)", int(s))
	}
}

// Captor is an open capture session. It is not safe for concurrent use.
type Captor struct {
	opts   Options
	slot   *sink.Slot
	stdout *buffer.Buffer
	stderr *buffer.Buffer
	closed bool
}

// New starts capturing with DefaultOptions.
func New() (*Captor, error) {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions starts capturing. It fails with ErrBusy if another Captor
// is still open.
func NewWithOptions(opts Options) (*Captor, error) {
	slot, err := sink.Acquire()
	if err != nil {
		return nil, err
	}
	c := &Captor{opts: opts, slot: slot}
	if err := c.install(); err != nil {
		slot.Release()
		return nil, fmt.Errorf("starting capture: %w", err)
	}
	return c, nil
}

// install allocates a fresh pair of buffers and routes both streams into
// them. On failure the previously installed buffers stay in place.
func (c *Captor) install() error {
	stdout, err := buffer.New("consolecaptor-stdout")
	if err != nil {
		return err
	}
	stderr, err := buffer.New("consolecaptor-stderr")
	if err != nil {
		_ = stdout.Close()
		return err
	}
	c.slot.Install(stdout.File(), stderr.File())
	c.stdout, c.stderr = stdout, stderr
	return nil
}

// Options returns the configuration the captor was opened with.
func (c *Captor) Options() Options {
	return c.opts
}

func (c *Captor) bufferFor(s Stream) (*buffer.Buffer, error) {
	if c.closed {
		return nil, ErrClosed
	}
	switch s {
	case Stdout:
		return c.stdout, nil
	case Stderr:
		return c.stderr, nil
	default:
		return nil, fmt.Errorf("unknown stream %v", s)
	}
}

// Text returns everything written to s since the last Clear, unmodified.
func (c *Captor) Text(s Stream) (string, error) {
	b, err := c.bufferFor(s)
	if err != nil {
		return "", err
	}
	data, err := b.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Lines returns the captured lines of s, split on "\n" and filtered by the
// captor's options. The slice is a snapshot owned by the caller; later
// writes, clears and closes do not change it.
func (c *Captor) Lines(s Stream) ([]string, error) {
	text, err := c.Text(s)
	if err != nil {
		return nil, err
	}
	return lines.Split(text, c.opts.policy()), nil
}

// StandardOutput returns the captured standard output lines. It panics if
// the captor is closed or its buffer cannot be read; use Lines to get the
// error instead.
func (c *Captor) StandardOutput() []string {
	return c.mustLines(Stdout)
}

// ErrorOutput is StandardOutput for standard error.
func (c *Captor) ErrorOutput() []string {
	return c.mustLines(Stderr)
}

func (c *Captor) mustLines(s Stream) []string {
	out, err := c.Lines(s)
	if err != nil {
		panic(fmt.Errorf("consolecaptor: reading %v: %w", s, err))
	}
	return out
}

// Clear discards everything captured so far and keeps capturing into empty
// buffers. The streams Close restores are not affected.
func (c *Captor) Clear() error {
	if c.closed {
		return ErrClosed
	}
	oldOut, oldErr := c.stdout, c.stderr
	if err := c.install(); err != nil {
		return fmt.Errorf("clearing output: %w", err)
	}
	if err := closeBuffers(oldOut, oldErr); err != nil {
		return fmt.Errorf("clearing output: %w", err)
	}
	return nil
}

// Close restores the streams that were installed when the captor was
// opened and releases the buffers. Lines captured before Close remain
// valid; the captor itself cannot be used afterwards.
func (c *Captor) Close() error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	c.slot.Release()
	err := closeBuffers(c.stdout, c.stderr)
	c.stdout, c.stderr = nil, nil
	return err
}

func closeBuffers(bufs ...*buffer.Buffer) error {
	var errs []error
	for _, b := range bufs {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
