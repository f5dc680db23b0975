package bits

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/big"
	"math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// addOracle computes (buf + delta) mod 2^(8*len(buf)) with math/big.
func addOracle(buf []byte, delta uint64) []byte {
	n := new(big.Int).SetBytes(buf)
	n.Add(n, new(big.Int).SetUint64(delta))
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(buf)))
	n.Mod(n, mod)
	out := make([]byte, len(buf))
	return n.FillBytes(out)
}

func TestAddSmall(t *testing.T) {
	buf := make([]byte, 4)
	Add(buf, 1)
	if !bytes.Equal(buf, []byte{0, 0, 0, 1}) {
		t.Fatalf("Add(0, 1) = %x", buf)
	}
	Add(buf, 0xFF)
	if !bytes.Equal(buf, []byte{0, 0, 1, 0}) {
		t.Fatalf("Add(1, 0xFF) = %x", buf)
	}
}

// TestAddIsBigEndian pins the canonical byte order: the last byte is the
// least significant and carries move toward index 0.
func TestAddIsBigEndian(t *testing.T) {
	buf := []byte{0x00, 0x00, 0xFF, 0xFF}
	Add(buf, 1)
	if !bytes.Equal(buf, []byte{0x00, 0x01, 0x00, 0x00}) {
		t.Fatalf("carry went the wrong way: %x", buf)
	}
}

func TestAddNoOps(t *testing.T) {
	Add(nil, 12345)
	Add([]byte{}, math.MaxUint64)

	buf := []byte{1, 2, 3}
	Add(buf, 0)
	if !bytes.Equal(buf, []byte{1, 2, 3}) {
		t.Fatalf("Add(x, 0) changed value: %x", buf)
	}
}

func TestAddWraps(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	Add(buf, 3)
	if !bytes.Equal(buf, []byte{0x00, 0x02}) {
		t.Fatalf("wrap: got %x", buf)
	}
}

// TestAddLargeDelta exercises deltas wider than the buffer and deltas whose
// higher bytes are consumed after the running carry has cleared.
func TestAddLargeDelta(t *testing.T) {
	buf := make([]byte, 32)
	Add(buf, math.MaxUint64)
	want := addOracle(make([]byte, 32), math.MaxUint64)
	if !bytes.Equal(buf, want) {
		t.Fatalf("got %x, want %x", buf, want)
	}

	short := make([]byte, 3)
	Add(short, 0x0102030405)
	if !bytes.Equal(short, []byte{0x03, 0x04, 0x05}) {
		t.Fatalf("truncated delta: got %x", short)
	}
}

func TestAddMatchesBigInt(t *testing.T) {
	rng := newTestRNG(t)
	const iterations = 5000

	for i := 0; i < iterations; i++ {
		width := 1 + rng.IntN(40)
		buf := make([]byte, width)
		for j := range buf {
			buf[j] = byte(rng.Uint32())
		}
		// Bias toward long carry chains.
		if rng.IntN(4) == 0 {
			for j := width / 2; j < width; j++ {
				buf[j] = 0xFF
			}
		}
		delta := rng.Uint64() >> rng.UintN(64)

		want := addOracle(buf, delta)
		Add(buf, delta)
		if !bytes.Equal(buf, want) {
			t.Fatalf("iter %d: width %d delta %d: got %x, want %x", i, width, delta, buf, want)
		}
	}
}

// TestAddRoundTrip adds delta and then 2^(8L)-delta to a zeroed buffer, which
// must wrap back to zero.
func TestAddRoundTrip(t *testing.T) {
	rng := newTestRNG(t)
	for _, width := range []int{1, 2, 7, 8} {
		for i := 0; i < 200; i++ {
			buf := make([]byte, width)
			var delta uint64
			if width == 8 {
				delta = rng.Uint64()
			} else {
				delta = rng.Uint64N(uint64(1) << (8 * width))
			}
			complement := uint64(0) - delta
			if width < 8 {
				complement &= uint64(1)<<(8*width) - 1
			}

			Add(buf, delta)
			Add(buf, complement)
			if !bytes.Equal(buf, make([]byte, width)) {
				t.Fatalf("width %d delta %d: round trip left %x", width, delta, buf)
			}
		}
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b []byte
		want int
	}{
		{[]byte{0, 1}, []byte{0, 1}, 0},
		{[]byte{0, 1}, []byte{0, 2}, -1},
		{[]byte{1, 0}, []byte{0, 0xFF}, 1},
		{nil, nil, 0},
	}
	for _, tc := range tests {
		if got := Cmp(tc.a, tc.b); got != tc.want {
			t.Errorf("Cmp(%x, %x) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCmpWidthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Cmp([]byte{1}, []byte{1, 2})
}

func TestSubInvertsAdd(t *testing.T) {
	rng := newTestRNG(t)
	for i := 0; i < 2000; i++ {
		width := 9 + rng.IntN(25)
		base := make([]byte, width)
		for j := range base {
			base[j] = byte(rng.Uint32())
		}
		base[0] = 0 // keep clear of wraparound
		delta := rng.Uint64()

		sum := append([]byte(nil), base...)
		Add(sum, delta)
		got, ok := Sub(sum, base)
		if !ok || got != delta {
			t.Fatalf("iter %d: Sub = (%d, %v), want (%d, true)", i, got, ok, delta)
		}
	}
}

func TestSubRejects(t *testing.T) {
	if _, ok := Sub([]byte{0, 1}, []byte{0, 2}); ok {
		t.Error("negative difference accepted")
	}
	a := make([]byte, 16)
	a[7] = 1 // 2^64
	if _, ok := Sub(a, make([]byte, 16)); ok {
		t.Error("difference wider than 64 bits accepted")
	}
}
