package lanes

import (
	"encoding/binary"
	"fmt"

	sha256 "github.com/minio/sha256-simd"
)

// sha256BlockSize is the SHA-256 compression block size.
const sha256BlockSize = 64

type sha256Block struct{}

// NewSHA256Block returns a pre-padded SHA-256 primitive. Every input lane is
// one complete 64-byte block whose padding was written by the caller; the
// message is recovered from the length suffix and digested.
func NewSHA256Block() Hasher {
	return sha256Block{}
}

func (sha256Block) Name() string    { return "sha256" }
func (sha256Block) Shape() Shape    { return ShapePrePadded }
func (sha256Block) BlockSize() int  { return sha256BlockSize }
func (sha256Block) DigestSize() int { return sha256.Size }

func (sha256Block) Sum8(out, in *Lanes) {
	for i := range Width {
		n := paddedMessageLen(in[i])
		sum := sha256.Sum256(in[i][:n])
		copy(out[i], sum[:])
	}
}

// paddedMessageLen validates a pre-padded block and returns the message
// length in bytes. A malformed block means the assembler is broken, so it
// panics rather than returning an error from the hot path.
func paddedMessageLen(block []byte) int {
	if len(block) != sha256BlockSize {
		panic(fmt.Sprintf("lanes: pre-padded block is %d bytes, want %d", len(block), sha256BlockSize))
	}
	bitLen := binary.BigEndian.Uint64(block[sha256BlockSize-lengthFieldSize:])
	maxLen := uint64(ShapePrePadded.MaxKeySize(sha256BlockSize))
	if bitLen%8 != 0 || bitLen/8 > maxLen {
		panic(fmt.Sprintf("lanes: pre-padded block has invalid bit length %d", bitLen))
	}
	n := int(bitLen / 8)
	if block[n] != 0x80 {
		panic(fmt.Sprintf("lanes: pre-padded block is missing the 0x80 marker at %d", n))
	}
	return n
}
