//go:build linux

package keysweep

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves size bytes for a report before it is mapped, so a
// full disk fails here instead of raising SIGBUS on a write through the map.
// Falls back to ftruncate on filesystems without fallocate (NFS, tmpfs on
// old kernels).
func fallocateFile(file *os.File, size int64) error {
	fd := int(file.Fd())
	if err := unix.Fallocate(fd, 0, 0, size); err != nil {
		return unix.Ftruncate(fd, size)
	}
	// Fallocate reserves blocks without extending the file length.
	return unix.Ftruncate(fd, size)
}
