package keysweep

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	kserrors "github.com/tamirms/keysweep/errors"
	intbits "github.com/tamirms/keysweep/internal/bits"
)

// minReportSize is the smallest possible report: header, the narrowest
// start key, one entry and the footer.
const minReportSize = reportHeaderSize + 32 + (32 + 20 + digestSumSize) + reportFooterSize

// Report is a read-only view of a report file written by WriteReport.
//
// Thread Safety:
// - Read methods are safe for concurrent use
// - Close must only be called after all reads have completed
type Report struct {
	mmap mmap.MMap
	data []byte

	header *reportHeader

	closed atomic.Bool
}

// OpenReport opens a report file, memory-maps it and closes the descriptor.
// The header, sizes and run fingerprint are checked; call Verify to check
// the file checksum.
func OpenReport(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat report file: %w", err)
	}
	if stat.Size() < minReportSize {
		return nil, kserrors.ErrTruncatedFile
	}
	fadviseSequential(int(file.Fd()), 0, stat.Size())

	mm, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap report file: %w", err)
	}

	rep := &Report{mmap: mm, data: []byte(mm)}
	if err := rep.init(); err != nil {
		return nil, errors.Join(err, rep.Close())
	}
	return rep, nil
}

// OpenReportBytes reads a report from an in-memory byte slice.
// Close is a no-op. data must not be modified while the Report is in use.
func OpenReportBytes(data []byte) (*Report, error) {
	if len(data) < minReportSize {
		return nil, kserrors.ErrTruncatedFile
	}
	rep := &Report{data: data}
	if err := rep.init(); err != nil {
		return nil, err
	}
	return rep, nil
}

// init parses the header and validates sizes and the run fingerprint.
func (rep *Report) init() error {
	hdr, err := decodeReportHeader(rep.data[:reportHeaderSize])
	if err != nil {
		return err
	}

	want := hdr.fileSize()
	switch {
	case uint64(len(rep.data)) < want:
		return kserrors.ErrTruncatedFile
	case uint64(len(rep.data)) > want:
		return kserrors.ErrCorruptedReport
	}
	rep.header = hdr

	if computeRunID(hdr.Variant, rep.startKey(), hdr.TotalHashes, int(hdr.Workers)) != hdr.RunID {
		return fmt.Errorf("%w: run fingerprint mismatch", kserrors.ErrCorruptedReport)
	}
	return nil
}

// Close releases the memory map.
func (rep *Report) Close() error {
	if rep.closed.Swap(true) {
		return nil // Already closed
	}
	if rep.mmap != nil {
		return rep.mmap.Unmap()
	}
	return nil
}

// Variant returns the hash variant of the run.
func (rep *Report) Variant() VariantID {
	return rep.header.Variant
}

// RunID returns the stored run fingerprint.
func (rep *Report) RunID() uint64 {
	return rep.header.RunID
}

// NumWorkers returns the worker count of the run.
func (rep *Report) NumWorkers() int {
	return int(rep.header.Workers)
}

func (rep *Report) startKey() []byte {
	return rep.data[reportHeaderSize : reportHeaderSize+int(rep.header.KeySize)]
}

// entry returns the raw bytes of worker w's entry.
func (rep *Report) entry(w int) []byte {
	start := reportHeaderSize + int(rep.header.KeySize) + w*rep.header.entrySize()
	return rep.data[start : start+rep.header.entrySize()]
}

// Result rebuilds the Result the report was written from. Worker start keys
// are re-derived from the start key; slices are copies.
func (rep *Report) Result() (*Result, error) {
	if rep.closed.Load() {
		return nil, kserrors.ErrReportClosed
	}

	hdr := rep.header
	startKey := append([]byte(nil), rep.startKey()...)
	shares, err := Partition(startKey, hdr.TotalHashes, int(hdr.Workers))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kserrors.ErrCorruptedReport, err)
	}

	workers := make([]WorkerResult, hdr.Workers)
	keySize, digestSize := int(hdr.KeySize), int(hdr.DigestSize)
	for w := range workers {
		e := rep.entry(w)
		workers[w] = WorkerResult{
			Worker:     w,
			Start:      shares[w].Start,
			Count:      shares[w].Count,
			LastKey:    append([]byte(nil), e[:keySize]...),
			LastDigest: append([]byte(nil), e[keySize:keySize+digestSize]...),
			DigestSum:  binary.LittleEndian.Uint64(e[keySize+digestSize:]),
		}
	}

	return &Result{
		Variant:     hdr.Variant,
		StartKey:    startKey,
		TotalHashes: hdr.TotalHashes,
		Workers:     workers,
		Duration:    time.Duration(hdr.DurationNs),
	}, nil
}

// Verify checks the footer hash over the whole file and that the stored
// run checksum matches the per-worker digest sums.
//
// The footer is decoded on each Verify call rather than at open time.
func (rep *Report) Verify() error {
	if rep.closed.Load() {
		return kserrors.ErrReportClosed
	}

	footerOffset := uint64(len(rep.data)) - reportFooterSize
	ftr, err := decodeReportFooter(rep.data[footerOffset:])
	if err != nil {
		return err
	}
	if xxhash.Sum64(rep.data[:footerOffset]) != ftr.FileHash {
		return kserrors.ErrChecksumFailed
	}

	res, err := rep.Result()
	if err != nil {
		return err
	}
	if res.Checksum() != rep.header.Checksum {
		return kserrors.ErrChecksumFailed
	}

	// Every worker's last key is the top of its share.
	for _, w := range res.Workers {
		if span, ok := intbits.Sub(w.LastKey, w.Start); !ok || span != w.Count-1 {
			return fmt.Errorf("%w: worker %d last key %s is not the end of its share",
				kserrors.ErrCorruptedReport, w.Worker, FormatKey(w.LastKey))
		}
	}
	return nil
}
