package keysweep

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/tamirms/keysweep/internal/lanes"
)

func newTestBatch(t *testing.T, v VariantID) *batch {
	t.Helper()
	h, err := newHasher(v)
	if err != nil {
		t.Fatal(err)
	}
	return newBatch(h, v.KeySize())
}

func TestBatchFillLaysOutConsecutiveKeys(t *testing.T) {
	for _, v := range []VariantID{VariantRIPEMD160, VariantSHA256} {
		t.Run(v.String(), func(t *testing.T) {
			b := newTestBatch(t, v)
			running := keyFromUint(v.KeySize(), 0xFE)
			b.fill(running)

			for i := range lanes.Width {
				want := keyFromUint(v.KeySize(), 0xFE+uint64(i))
				if !bytes.Equal(b.keys[i], want) {
					t.Errorf("lane %d key %x, want %x", i, b.keys[i], want)
				}
				if !bytes.Equal(b.in[i][:v.KeySize()], want) {
					t.Errorf("lane %d block does not start with its key", i)
				}
			}
			if want := keyFromUint(v.KeySize(), 0xFE+lanes.Width); !bytes.Equal(running, want) {
				t.Errorf("running key %x, want %x", running, want)
			}
		})
	}
}

func TestBatchRawShapeIsZeroFilled(t *testing.T) {
	b := newTestBatch(t, VariantRIPEMD160)
	b.fill(keyFromUint(32, 1))
	for i := range lanes.Width {
		if len(b.in[i]) != 64 {
			t.Fatalf("lane %d block is %d bytes", i, len(b.in[i]))
		}
		if !bytes.Equal(b.in[i][32:], make([]byte, 32)) {
			t.Fatalf("lane %d tail not zero: %x", i, b.in[i][32:])
		}
	}
}

func TestBatchPrePaddedShape(t *testing.T) {
	b := newTestBatch(t, VariantSHA256)
	b.fill(keyFromUint(33, 1))
	for i := range lanes.Width {
		blk := b.in[i]
		if blk[33] != 0x80 {
			t.Fatalf("lane %d marker %#x", i, blk[33])
		}
		if !bytes.Equal(blk[34:56], make([]byte, 22)) {
			t.Fatalf("lane %d padding not zero", i)
		}
		if got := binary.BigEndian.Uint64(blk[56:]); got != 264 {
			t.Fatalf("lane %d bit length %d, want 264", i, got)
		}
	}
}

// TestBatchRewritesPaddingEveryFill scribbles over the blocks between calls;
// fill must restore the full layout.
func TestBatchRewritesPaddingEveryFill(t *testing.T) {
	b := newTestBatch(t, VariantSHA256)
	running := keyFromUint(33, 1)
	b.fill(running)
	for i := range lanes.Width {
		for j := range b.in[i] {
			b.in[i][j] = 0xAA
		}
	}
	b.fill(running)
	b.hash()

	if got, want := hex.EncodeToString(b.out[0]), "dd88ef4e7faeb459c3bcd307e806ee912ac258fcf9156716f0b5174791bbb0fb"; got != want {
		t.Fatalf("key 9 digest %s, want %s", got, want)
	}
}

// TestBatchFirstLaneKnownAnswer enumerates keys 1..8 and checks lane 0
// against the reference digest of key 1 and lane 7 against key 8.
func TestBatchFirstLaneKnownAnswer(t *testing.T) {
	tests := []struct {
		v           VariantID
		first, last string
	}{
		{VariantRIPEMD160, "ae387fcfeb723c3f5964509af111cf5a67f30661", "d8f3ae709c7ca61a4da4640b2145b362e31eae2c"},
		{VariantSHA256, "1fd4247443c9440cb3c48c28851937196bc156032d70a96c98e127ecb347e45f", "6b147d6de4e63bbe31ecdd88f064b863dbe86de062a8262fca36ef7993851a05"},
	}
	for _, tc := range tests {
		t.Run(tc.v.String(), func(t *testing.T) {
			b := newTestBatch(t, tc.v)
			b.fill(keyFromUint(tc.v.KeySize(), 1))
			b.hash()
			if got := hex.EncodeToString(b.out[0]); got != tc.first {
				t.Errorf("lane 0: got %s, want %s", got, tc.first)
			}
			key, digest := b.last()
			if want := keyFromUint(tc.v.KeySize(), 8); !bytes.Equal(key, want) {
				t.Errorf("last key %x, want %x", key, want)
			}
			if got := hex.EncodeToString(digest); got != tc.last {
				t.Errorf("lane 7: got %s, want %s", got, tc.last)
			}
		})
	}
}

func TestBatchLastReturnsCopies(t *testing.T) {
	b := newTestBatch(t, VariantRIPEMD160)
	running := keyFromUint(32, 1)
	b.fill(running)
	b.hash()
	key, digest := b.last()

	b.fill(running)
	b.hash()
	if !bytes.Equal(key, keyFromUint(32, 8)) {
		t.Fatal("last key aliases the lane buffer")
	}
	if hex.EncodeToString(digest) != "d8f3ae709c7ca61a4da4640b2145b362e31eae2c" {
		t.Fatal("last digest aliases the lane buffer")
	}
}
