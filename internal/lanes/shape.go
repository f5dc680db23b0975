package lanes

import "encoding/binary"

// Shape describes how a key is laid out inside an input block.
type Shape uint8

const (
	// ShapeRaw copies the key to the start of a zeroed block. The primitive
	// applies the standard padding itself.
	ShapeRaw Shape = iota

	// ShapePrePadded copies the key, appends 0x80, zero-fills and stores the
	// key length in bits as a big-endian uint64 in the last 8 bytes. This is
	// the single-block Merkle-Damgard padding for primitives that do not pad.
	ShapePrePadded
)

// lengthFieldSize is the width of the big-endian bit-length suffix.
const lengthFieldSize = 8

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeRaw:
		return "raw"
	case ShapePrePadded:
		return "pre-padded"
	default:
		return "unknown"
	}
}

// MaxKeySize returns the largest key that fits a block of blockSize bytes
// in this shape.
func (s Shape) MaxKeySize(blockSize int) int {
	if s == ShapePrePadded {
		return blockSize - 1 - lengthFieldSize
	}
	return blockSize
}

// Format writes key into dst using the shape's layout. The whole block is
// rewritten, so dst may hold a previous lane's bytes.
// Precondition: len(key) <= s.MaxKeySize(len(dst)).
func (s Shape) Format(dst, key []byte) {
	n := copy(dst, key)
	clear(dst[n:])
	if s == ShapePrePadded {
		dst[n] = 0x80
		binary.BigEndian.PutUint64(dst[len(dst)-lengthFieldSize:], uint64(len(key))*8)
	}
}
