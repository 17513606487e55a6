//go:build linux

package buffer

import (
	"os"

	"golang.org/x/sys/unix"
)

// open prefers an anonymous memory file so captured output never touches
// disk. Kernels without memfd_create fall back to a temp file.
func open(name string) (*Buffer, error) {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		return openTemp(name)
	}
	return &Buffer{f: os.NewFile(uintptr(fd), name), name: name}, nil
}
