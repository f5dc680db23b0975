//go:build !linux

package keysweep

// prefaultRegion is a no-op outside Linux.
func prefaultRegion(data []byte) {}
