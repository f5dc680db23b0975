package keysweep

import (
	"fmt"

	kserrors "github.com/tamirms/keysweep/errors"
	intbits "github.com/tamirms/keysweep/internal/bits"
	"github.com/tamirms/keysweep/internal/lanes"
)

// Share is one worker's contiguous slice of the key range:
// [Start, Start+Count) in counter order.
type Share struct {
	Worker int
	Start  []byte // private copy, owned by the worker
	Count  uint64
}

// validateCounts checks the hash count and worker count preconditions.
func validateCounts(total uint64, workers int) error {
	if total == 0 || total%lanes.Width != 0 {
		return fmt.Errorf("%w: got %d", kserrors.ErrInvalidHashCount, total)
	}
	if workers <= 0 {
		return fmt.Errorf("%w: got %d", kserrors.ErrInvalidWorkerCount, workers)
	}
	if total%uint64(workers) != 0 {
		return fmt.Errorf("%w: %d hashes over %d workers", kserrors.ErrUnevenShares, total, workers)
	}
	if per := total / uint64(workers); per%lanes.Width != 0 {
		return fmt.Errorf("%w: %d hashes per worker", kserrors.ErrShareNotAligned, per)
	}
	return nil
}

// Partition splits [base, base+total) into workers equal, disjoint,
// contiguous shares, returned in worker index order. Share w starts at
// base + w*(total/workers). base is not modified.
//
// total must be a positive multiple of 8, divisible by workers, and leave a
// per-worker share that is itself a multiple of 8. Violations return a
// configuration error and no shares.
func Partition(base []byte, total uint64, workers int) ([]Share, error) {
	if err := validateCounts(total, workers); err != nil {
		return nil, err
	}

	per := total / uint64(workers)
	shares := make([]Share, workers)
	for w := range shares {
		start := append([]byte(nil), base...)
		intbits.Add(start, uint64(w)*per)
		shares[w] = Share{Worker: w, Start: start, Count: per}
	}
	return shares, nil
}
