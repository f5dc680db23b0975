//go:build linux

package keysweep

import "golang.org/x/sys/unix"

// fadviseSequential hints that a report is about to be read front to back
// (Verify hashes the whole file). Best-effort: errors are ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}
