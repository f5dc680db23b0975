package keysweep

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	kserrors "github.com/tamirms/keysweep/errors"
)

// WriteReport persists r as a binary report at path, replacing any existing
// file. The file is pre-allocated, written through a memory map and sealed
// with an xxHash64 footer. On error the partial file is removed.
//
// File layout: [Header 64B][StartKey][Entry x Workers][Footer 16B]
func WriteReport(path string, r *Result) error {
	hdr, err := newReportHeader(r)
	if err != nil {
		return err
	}
	size := hdr.fileSize()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	// Pre-allocate disk blocks to prevent SIGBUS on disk full
	if err := fallocateFile(file, int64(size)); err != nil {
		primaryErr := fmt.Errorf("allocate report file: %w", err)
		return errors.Join(primaryErr, file.Close(), os.Remove(path))
	}

	mm, err := mmap.MapRegion(file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		primaryErr := fmt.Errorf("mmap report file: %w", err)
		return errors.Join(primaryErr, file.Close(), os.Remove(path))
	}
	prefaultRegion(mm)

	encodeReport([]byte(mm), hdr, r)

	if err := mm.Flush(); err != nil {
		primaryErr := fmt.Errorf("mmap flush failed: %w", err)
		return errors.Join(primaryErr, mm.Unmap(), file.Close(), os.Remove(path))
	}
	if err := mm.Unmap(); err != nil {
		primaryErr := fmt.Errorf("mmap unmap failed: %w", err)
		return errors.Join(primaryErr, file.Close(), os.Remove(path))
	}
	if err := file.Close(); err != nil {
		return errors.Join(err, os.Remove(path))
	}
	return nil
}

// newReportHeader builds the header for r and checks that every worker entry
// has the variant's key and digest widths.
func newReportHeader(r *Result) (*reportHeader, error) {
	keySize, digestSize := r.Variant.KeySize(), r.Variant.DigestSize()
	if keySize == 0 {
		return nil, fmt.Errorf("%w: ID %d", kserrors.ErrUnknownVariant, r.Variant)
	}
	if len(r.Workers) == 0 {
		return nil, fmt.Errorf("%w: result has no workers", kserrors.ErrInvalidWorkerCount)
	}
	if len(r.StartKey) != keySize {
		return nil, fmt.Errorf("%w: start key is %d bytes", kserrors.ErrKeySize, len(r.StartKey))
	}
	for _, w := range r.Workers {
		if len(w.LastKey) != keySize || len(w.LastDigest) != digestSize {
			return nil, fmt.Errorf("%w: worker %d has a %d-byte key and %d-byte digest",
				kserrors.ErrKeySize, w.Worker, len(w.LastKey), len(w.LastDigest))
		}
	}

	return &reportHeader{
		Magic:       reportMagic,
		Version:     reportVersion,
		Variant:     r.Variant,
		KeySize:     uint16(keySize),
		DigestSize:  uint16(digestSize),
		Workers:     uint32(len(r.Workers)),
		TotalHashes: r.TotalHashes,
		DurationNs:  uint64(r.Duration.Nanoseconds()),
		RunID:       r.RunID(),
		Checksum:    r.Checksum(),
	}, nil
}

// encodeReport writes the full report into buf, which must be exactly
// hdr.fileSize() bytes.
func encodeReport(buf []byte, hdr *reportHeader, r *Result) {
	hdr.encodeTo(buf[:reportHeaderSize])

	offset := reportHeaderSize
	offset += copy(buf[offset:], r.StartKey)
	for _, w := range r.Workers {
		offset += copy(buf[offset:], w.LastKey)
		offset += copy(buf[offset:], w.LastDigest)
		binary.LittleEndian.PutUint64(buf[offset:], w.DigestSum)
		offset += digestSumSize
	}

	ftr := reportFooter{FileHash: xxhash.Sum64(buf[:offset])}
	ftr.encodeTo(buf[offset:])
}
