package lanes

import "unsafe"

// Alignment is the byte boundary every lane buffer starts on. 64 covers
// both 32-byte vector loads and cache-line separation between lanes.
const Alignment = 64

// NewBuffers returns n buffers of size bytes carved from one allocation.
// Each buffer starts on an Alignment boundary and owns its stride, so writes
// to one lane never touch a cache line of another. The backing array is
// allocated oversize and aligned upward at runtime.
func NewBuffers(n, size int) [][]byte {
	stride := (size + Alignment - 1) &^ (Alignment - 1)
	raw := make([]byte, n*stride+Alignment)

	off := 0
	if r := int(uintptr(unsafe.Pointer(&raw[0])) & (Alignment - 1)); r != 0 {
		off = Alignment - r
	}

	bufs := make([][]byte, n)
	for i := range bufs {
		start := off + i*stride
		bufs[i] = raw[start : start+size : start+size]
	}
	return bufs
}

// NewLanes returns a Lanes set backed by NewBuffers(Width, size).
func NewLanes(size int) *Lanes {
	var l Lanes
	copy(l[:], NewBuffers(Width, size))
	return &l
}
