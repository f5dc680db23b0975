package lanes

import (
	"fmt"
	"hash"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // deprecated package, still the digest we need
)

// ripemd160BlockSize is the RIPEMD-160 compression block size.
const ripemd160BlockSize = 64

type ripemd160Lanes struct {
	msgLen int
	h      hash.Hash
}

// NewRIPEMD160 returns a raw-shape RIPEMD-160 primitive that hashes the first
// msgLen bytes of every 64-byte input block. Panics if msgLen does not fit a
// block.
func NewRIPEMD160(msgLen int) Hasher {
	if msgLen < 0 || msgLen > ripemd160BlockSize {
		panic(fmt.Sprintf("lanes.NewRIPEMD160: invalid message length %d", msgLen))
	}
	return &ripemd160Lanes{msgLen: msgLen, h: ripemd160.New()}
}

func (r *ripemd160Lanes) Name() string    { return "ripemd160" }
func (r *ripemd160Lanes) Shape() Shape    { return ShapeRaw }
func (r *ripemd160Lanes) BlockSize() int  { return ripemd160BlockSize }
func (r *ripemd160Lanes) DigestSize() int { return ripemd160.Size }

func (r *ripemd160Lanes) Sum8(out, in *Lanes) {
	for i := range Width {
		r.h.Reset()
		r.h.Write(in[i][:r.msgLen])
		r.h.Sum(out[i][:0])
	}
}
