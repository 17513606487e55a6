// Package sink owns the process-wide output targets: os.Stdout, os.Stderr
// and the writers fatih/color prints through.
//
// Only one Slot can be held at a time. Holding it is what entitles a caller
// to swap the targets; the swap itself is not synchronized against code that
// is writing, so sessions must not overlap with concurrently running tests
// that print.
package sink

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var ErrBusy = errors.New("another capture session is active")

var (
	mu     sync.Mutex
	active bool
)

// Targets is a snapshot of every writer a session replaces.
type Targets struct {
	Stdout      *os.File
	Stderr      *os.File
	ColorOutput io.Writer
	ColorError  io.Writer
}

// Current reads the targets that are installed right now.
func Current() Targets {
	return Targets{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		ColorOutput: color.Output,
		ColorError:  color.Error,
	}
}

func apply(t Targets) {
	os.Stdout = t.Stdout
	os.Stderr = t.Stderr
	color.Output = t.ColorOutput
	color.Error = t.ColorError
}

// Slot is an exclusive claim on the process-wide targets.
type Slot struct {
	saved    Targets
	released bool
}

// Acquire claims the slot and snapshots the current targets. The snapshot
// is taken once and is what Release restores, however many times Install
// runs in between.
func Acquire() (*Slot, error) {
	mu.Lock()
	defer mu.Unlock()
	if active {
		return nil, ErrBusy
	}
	active = true
	return &Slot{saved: Current()}, nil
}

// Saved returns the targets that were installed when the slot was acquired.
func (s *Slot) Saved() Targets {
	return s.saved
}

// Install routes standard output and error, including colored output, to
// the given files.
func (s *Slot) Install(stdout, stderr *os.File) {
	mu.Lock()
	defer mu.Unlock()
	if s.released {
		return
	}
	apply(Targets{
		Stdout:      stdout,
		Stderr:      stderr,
		ColorOutput: stdout,
		ColorError:  stderr,
	})
}

// Release restores the saved targets and frees the slot. Calling it again
// is a no-op.
func (s *Slot) Release() {
	mu.Lock()
	defer mu.Unlock()
	if s.released {
		return
	}
	apply(s.saved)
	s.released = true
	active = false
}
