//go:build !linux && !darwin

package keysweep

import "os"

// fallocateFile sizes a report before it is mapped. Without a native
// fallocate this only sets the length; blocks may still be allocated lazily.
func fallocateFile(file *os.File, size int64) error {
	return file.Truncate(size)
}
