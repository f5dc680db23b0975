package keysweep

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// runIDPrefixSize is variant (2) + workers (4) + total hashes (8).
const runIDPrefixSize = 14

// RunID fingerprints the parameters that fully determine a run's output:
// variant, start key, total hash count and worker count. Runs with equal
// RunIDs hash the same keys in the same shares and so must agree on every
// WorkerResult except timing.
func (r *Result) RunID() uint64 {
	return computeRunID(r.Variant, r.StartKey, r.TotalHashes, len(r.Workers))
}

// computeRunID applies xxHash3-64 to the little-endian encoding of the run
// parameters followed by the start key bytes.
func computeRunID(v VariantID, startKey []byte, total uint64, workers int) uint64 {
	buf := make([]byte, runIDPrefixSize+len(startKey))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(v))
	binary.LittleEndian.PutUint32(buf[2:6], uint32(workers))
	binary.LittleEndian.PutUint64(buf[6:14], total)
	copy(buf[runIDPrefixSize:], startKey)
	return xxh3.Hash(buf)
}
