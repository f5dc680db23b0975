// Package lanes provides the 8-lane hash primitives consumed by the sweep
// engine, plus the lane buffer layout they expect.
//
// A Hasher takes exactly Width formatted input blocks and writes Width
// digests in one synchronous call. The implementations here run the lanes
// through vetted library hash functions one after another; a vectorized
// implementation only has to satisfy the same interface.
package lanes

// Width is the number of lanes processed by a single Sum8 call.
const Width = 8

// Lanes holds one buffer per lane. Lane i of an output set receives the
// digest of lane i of the matching input set.
type Lanes [Width][]byte

// Hasher is a vector-width-8 hash primitive.
//
// # Thread Safety
//
// A Hasher is NOT safe for concurrent use. Each worker creates its own.
type Hasher interface {
	// Name returns the algorithm name.
	Name() string

	// Shape returns the input block layout Sum8 expects.
	Shape() Shape

	// BlockSize returns the size in bytes of every input lane buffer.
	BlockSize() int

	// DigestSize returns the size in bytes of every output lane buffer.
	DigestSize() int

	// Sum8 hashes the Width input blocks in `in` and writes the digests to
	// `out`. Every in[i] must be BlockSize bytes formatted per Shape, and
	// every out[i] must hold at least DigestSize bytes. There are no partial
	// calls: all Width lanes are always hashed.
	Sum8(out, in *Lanes)
}
