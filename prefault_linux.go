//go:build linux

package keysweep

import "golang.org/x/sys/unix"

// MADV_POPULATE_WRITE was added in Linux 5.14.
const madvPopulateWrite = 23

// prefaultRegion asks the kernel to populate a freshly mapped report for
// writing. Best-effort: older kernels return EINVAL, which is ignored.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, madvPopulateWrite)
}
