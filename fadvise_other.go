//go:build !linux

package keysweep

// fadviseSequential is a no-op outside Linux.
func fadviseSequential(fd int, offset, length int64) {}
