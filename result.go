package keysweep

import (
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
)

// WorkerResult is what one worker observed over its share.
type WorkerResult struct {
	Worker int
	Start  []byte // first key of the share
	Count  uint64 // keys hashed by this worker

	// LastKey and LastDigest are lane 7 of the worker's final batch: the
	// highest key of the share and its digest.
	LastKey    []byte
	LastDigest []byte

	// DigestSum is the xxHash64 of every digest the worker produced,
	// concatenated in key order.
	DigestSum uint64
}

// Result is the outcome of a completed Run.
type Result struct {
	Variant     VariantID
	StartKey    []byte
	TotalHashes uint64
	Workers     []WorkerResult // indexed by worker
	Duration    time.Duration
}

// NsPerHash returns the average wall-clock nanoseconds per hash.
func (r *Result) NsPerHash() float64 {
	if r.TotalHashes == 0 {
		return 0
	}
	return float64(r.Duration.Nanoseconds()) / float64(r.TotalHashes)
}

// HashesPerSecond returns the aggregate throughput of the run.
func (r *Result) HashesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.TotalHashes) / r.Duration.Seconds()
}

// Checksum folds the workers' DigestSums in worker order. Two runs with the
// same RunID produce the same Checksum.
func (r *Result) Checksum() uint64 {
	d := xxhash.New()
	for _, w := range r.Workers {
		foldUint64(d, w.DigestSum)
	}
	return d.Sum64()
}

// WriteText writes the last key and digest of every worker, two lines per
// worker:
//
//	Thread 0 last key: <hex>
//	Thread 0 last hash: <hex>
func (r *Result) WriteText(w io.Writer) error {
	for _, wr := range r.Workers {
		if _, err := fmt.Fprintf(w, "Thread %d last key: %s\n", wr.Worker, FormatKey(wr.LastKey)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Thread %d last hash: %s\n", wr.Worker, FormatKey(wr.LastDigest)); err != nil {
			return err
		}
	}
	return nil
}
