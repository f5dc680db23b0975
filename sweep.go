package keysweep

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	kserrors "github.com/tamirms/keysweep/errors"
	"github.com/tamirms/keysweep/internal/lanes"
	"golang.org/x/sync/errgroup"
)

const (
	// contextCheckInterval is how many batches a worker hashes between
	// cancellation checks. A batch itself is never interrupted.
	contextCheckInterval = 4096

	// cacheLineSize separates per-worker result slots.
	cacheLineSize = 64
)

// resultSlot is one worker's pre-allocated output. Slots are written by
// exactly one worker each and padded so neighbours never share a line.
type resultSlot struct {
	WorkerResult
	_ [cacheLineSize]byte
}

// Run hashes totalHashes consecutive keys and returns every worker's last
// key and digest plus timing.
//
// The key range [start, start+totalHashes) is split by Partition into one
// share per worker. Workers run in parallel on private buffers, each walking
// its share in increasing key order eight keys per primitive call. Run
// returns once all workers have finished; no partial result is ever visible.
//
// Configuration errors (hash count, worker count, key width, variant) are
// returned before any worker starts. If ctx is cancelled, workers stop at
// their next batch boundary check and Run returns the context error.
//
// Example:
//
//	res, err := keysweep.Run(ctx, 1024,
//	    keysweep.WithVariant(keysweep.VariantSHA256),
//	    keysweep.WithWorkers(4))
func Run(ctx context.Context, totalHashes uint64, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	size := cfg.variant.KeySize()
	if size == 0 {
		return nil, fmt.Errorf("%w: ID %d", kserrors.ErrUnknownVariant, cfg.variant)
	}
	start := cfg.startKey
	if start == nil {
		start = DefaultStartKey(cfg.variant)
	}
	if len(start) != size {
		return nil, fmt.Errorf("%w: got %d bytes, %s keys are %d", kserrors.ErrKeySize, len(start), cfg.variant, size)
	}

	shares, err := Partition(start, totalHashes, cfg.workers)
	if err != nil {
		return nil, err
	}

	slots := make([]resultSlot, len(shares))
	g, gctx := errgroup.WithContext(ctx)

	began := time.Now()
	for i := range shares {
		g.Go(func() error {
			return runWorker(gctx, cfg.variant, shares[i], &slots[i].WorkerResult)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	elapsed := time.Since(began)

	workers := make([]WorkerResult, len(slots))
	for i := range slots {
		workers[i] = slots[i].WorkerResult
	}
	return &Result{
		Variant:     cfg.variant,
		StartKey:    start,
		TotalHashes: totalHashes,
		Workers:     workers,
		Duration:    elapsed,
	}, nil
}

// runWorker hashes one share to completion and records its final lane.
func runWorker(ctx context.Context, v VariantID, s Share, out *WorkerResult) error {
	h, err := newHasher(v)
	if err != nil {
		return err
	}
	b := newBatch(h, len(s.Start))
	running := append([]byte(nil), s.Start...)
	sum := xxhash.New()

	batches := 0
	for done := uint64(0); done < s.Count; done += lanes.Width {
		if batches%contextCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		batches++

		b.fill(running)
		b.hash()
		b.fold(sum)

		if done+lanes.Width >= s.Count {
			key, digest := b.last()
			*out = WorkerResult{
				Worker:     s.Worker,
				Start:      s.Start,
				Count:      s.Count,
				LastKey:    key,
				LastDigest: digest,
				DigestSum:  sum.Sum64(),
			}
		}
	}
	return nil
}
