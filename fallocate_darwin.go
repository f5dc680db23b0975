//go:build darwin

package keysweep

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves size bytes for a report before it is mapped.
// On macOS, uses fcntl F_PREALLOCATE, falling back to ftruncate.
func fallocateFile(file *os.File, size int64) error {
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Length:  size,
	}
	fd := int(file.Fd())
	if err := unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &fst); err != nil {
		return unix.Ftruncate(fd, size)
	}
	// F_PREALLOCATE only reserves space; the length still has to be set.
	return unix.Ftruncate(fd, size)
}
