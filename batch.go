package keysweep

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	intbits "github.com/tamirms/keysweep/internal/bits"
	"github.com/tamirms/keysweep/internal/lanes"
)

// batch holds one worker's lane buffers. It is allocated once per worker and
// reused for every group of eight keys; nothing in it is shared.
//
// keys[i] is the raw key hashed in lane i, in[i] its formatted block and
// out[i] its digest. Lane 0 holds the earliest key of the batch.
type batch struct {
	hasher lanes.Hasher
	shape  lanes.Shape
	keys   lanes.Lanes
	in     *lanes.Lanes
	out    *lanes.Lanes
}

// newBatch allocates aligned key, input and output buffers sized for h.
// Precondition: keySize <= h.Shape().MaxKeySize(h.BlockSize()).
func newBatch(h lanes.Hasher, keySize int) *batch {
	b := &batch{
		hasher: h,
		shape:  h.Shape(),
		in:     lanes.NewLanes(h.BlockSize()),
		out:    lanes.NewLanes(h.DigestSize()),
	}
	copy(b.keys[:], lanes.NewBuffers(lanes.Width, keySize))
	return b
}

// fill lays out the next eight keys starting at running, then leaves running
// advanced by eight. Every block is formatted in full on every call; the
// pre-padded shape depends on its padding being present before each hash.
func (b *batch) fill(running []byte) {
	for i := range lanes.Width {
		copy(b.keys[i], running)
		b.shape.Format(b.in[i], running)
		intbits.Add(running, 1)
	}
}

// hash runs the 8-lane primitive over the filled batch.
func (b *batch) hash() {
	b.hasher.Sum8(b.out, b.in)
}

// fold appends the batch's digests to d in lane order. Folding every batch
// of a share yields a checksum over all of that share's output.
func (b *batch) fold(d *xxhash.Digest) {
	for i := range lanes.Width {
		if _, err := d.Write(b.out[i]); err != nil {
			panic("hash.Hash.Write returned unexpected error: " + err.Error())
		}
	}
}

// last returns copies of lane 7's key and digest.
func (b *batch) last() (key, digest []byte) {
	key = append([]byte(nil), b.keys[lanes.Width-1]...)
	digest = append([]byte(nil), b.out[lanes.Width-1]...)
	return key, digest
}

// foldUint64 writes v to d as 8 little-endian bytes.
func foldUint64(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := d.Write(buf[:]); err != nil {
		panic("hash.Hash.Write returned unexpected error: " + err.Error())
	}
}
