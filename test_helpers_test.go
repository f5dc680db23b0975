package keysweep

import (
	"encoding/binary"
	"encoding/hex"
	"hash/fnv"
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

// keyFromUint returns n as a big-endian key of the given width.
func keyFromUint(width int, n uint64) []byte {
	key := make([]byte, width)
	binary.BigEndian.PutUint64(key[width-8:], n)
	return key
}

// keyPlus returns base+delta computed with math/big.
func keyPlus(base []byte, delta uint64) []byte {
	n := new(big.Int).SetBytes(base)
	n.Add(n, new(big.Int).SetUint64(delta))
	return n.FillBytes(make([]byte, len(base)))
}

// randomKey returns a key with a zero top byte so additions within a test
// cannot wrap.
func randomKey(rng *rand.Rand, width int) []byte {
	key := make([]byte, width)
	for i := 1; i < width; i++ {
		key[i] = byte(rng.Uint32())
	}
	return key
}

func mustParseKey(t testing.TB, v VariantID, s string) []byte {
	t.Helper()
	key, err := ParseKey(v, s)
	if err != nil {
		t.Fatalf("ParseKey(%s, %q): %v", v, s, err)
	}
	return key
}

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
