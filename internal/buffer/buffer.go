// Package buffer provides the append-only byte accumulators a capture
// session installs in place of the process's standard streams.
//
// A Buffer is backed by a real *os.File so it can be assigned to os.Stdout
// and os.Stderr directly. Writes land in the buffer synchronously, with no
// pipe to drain, and reads use positional I/O so they never move the write
// offset.
package buffer

import (
	"errors"
	"fmt"
	"io"
	"os"
)

type Buffer struct {
	f      *os.File
	name   string
	remove string // temp file path to delete on Close, empty for memory backends
}

// New allocates an empty buffer. name labels the underlying file and shows
// up in error messages.
func New(name string) (*Buffer, error) {
	b, err := open(name)
	if err != nil {
		return nil, fmt.Errorf("allocating %s buffer: %w", name, err)
	}
	return b, nil
}

// openTemp backs a buffer with a temporary file. It is the portable
// backend and the fallback when no anonymous memory file is available.
func openTemp(name string) (*Buffer, error) {
	f, err := os.CreateTemp("", name+"-*")
	if err != nil {
		return nil, err
	}
	return &Buffer{f: f, name: name, remove: f.Name()}, nil
}

// File returns the file to install as a process-wide stream.
func (b *Buffer) File() *os.File {
	return b.f
}

// Len reports how many bytes have been written so far.
func (b *Buffer) Len() (int64, error) {
	fi, err := b.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s buffer: %w", b.name, err)
	}
	return fi.Size(), nil
}

// Bytes returns a copy of everything written so far without consuming it.
func (b *Buffer) Bytes() ([]byte, error) {
	size, err := b.Len()
	if err != nil {
		return nil, err
	}
	data := make([]byte, size)
	n, err := b.f.ReadAt(data, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading %s buffer: %w", b.name, err)
	}
	return data[:n], nil
}

// Close releases the buffer. Its contents are gone afterwards.
func (b *Buffer) Close() error {
	var errs []error
	if err := b.f.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing %s buffer: %w", b.name, err))
	}
	if b.remove != "" {
		if err := os.Remove(b.remove); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing %s buffer file: %w", b.name, err))
		}
		b.remove = ""
	}
	return errors.Join(errs...)
}
