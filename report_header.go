package keysweep

import (
	"encoding/binary"

	kserrors "github.com/tamirms/keysweep/errors"
)

const (
	// reportMagic identifies keysweep report files.
	// "KSWP" in little-endian
	reportMagic = uint32(0x5057534B)

	// reportVersion is the current report format version
	reportVersion = uint16(0x0001)

	// reportHeaderSize is the exact size of the serialized header (64 bytes)
	reportHeaderSize = 64

	// reportFooterSize is the exact size of the serialized footer (16 bytes)
	reportFooterSize = 16

	// digestSumSize is the trailing DigestSum of every worker entry
	digestSumSize = 8
)

// reportHeader is the 64-byte report header.
//
// Layout:
//
//	Offset  Size  Field        Type
//	0       4     Magic        0x5057534B ("KSWP")
//	4       2     Version      0x0001
//	6       2     Variant      uint16_le (0=RIPEMD-160, 1=SHA-256)
//	8       2     KeySize      uint16_le
//	10      2     DigestSize   uint16_le
//	12      4     Workers      uint32_le
//	16      8     TotalHashes  uint64_le
//	24      8     DurationNs   uint64_le
//	32      8     RunID        uint64_le (xxHash3 of run parameters)
//	40      8     Checksum     uint64_le (Result.Checksum)
//	48      16    Reserved     [16]byte (zero)
//
// The header is followed by the start key, one entry per worker
// ([LastKey][LastDigest][DigestSum uint64_le]) and the footer.
type reportHeader struct {
	Magic       uint32
	Version     uint16
	Variant     VariantID
	KeySize     uint16
	DigestSize  uint16
	Workers     uint32
	TotalHashes uint64
	DurationNs  uint64
	RunID       uint64
	Checksum    uint64
	Reserved    [16]byte
}

// encodeTo serializes the header to an existing buffer.
func (h *reportHeader) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(h.Variant))
	binary.LittleEndian.PutUint16(buf[8:10], h.KeySize)
	binary.LittleEndian.PutUint16(buf[10:12], h.DigestSize)
	binary.LittleEndian.PutUint32(buf[12:16], h.Workers)
	binary.LittleEndian.PutUint64(buf[16:24], h.TotalHashes)
	binary.LittleEndian.PutUint64(buf[24:32], h.DurationNs)
	binary.LittleEndian.PutUint64(buf[32:40], h.RunID)
	binary.LittleEndian.PutUint64(buf[40:48], h.Checksum)
	copy(buf[48:64], h.Reserved[:])
}

// decodeReportHeader parses a 64-byte header.
func decodeReportHeader(buf []byte) (*reportHeader, error) {
	if len(buf) < reportHeaderSize {
		return nil, kserrors.ErrTruncatedFile
	}

	h := &reportHeader{
		Magic:       binary.LittleEndian.Uint32(buf[0:4]),
		Version:     binary.LittleEndian.Uint16(buf[4:6]),
		Variant:     VariantID(binary.LittleEndian.Uint16(buf[6:8])),
		KeySize:     binary.LittleEndian.Uint16(buf[8:10]),
		DigestSize:  binary.LittleEndian.Uint16(buf[10:12]),
		Workers:     binary.LittleEndian.Uint32(buf[12:16]),
		TotalHashes: binary.LittleEndian.Uint64(buf[16:24]),
		DurationNs:  binary.LittleEndian.Uint64(buf[24:32]),
		RunID:       binary.LittleEndian.Uint64(buf[32:40]),
		Checksum:    binary.LittleEndian.Uint64(buf[40:48]),
	}
	copy(h.Reserved[:], buf[48:64])

	if h.Magic != reportMagic {
		return nil, kserrors.ErrInvalidMagic
	}
	if h.Version != reportVersion {
		return nil, kserrors.ErrInvalidVersion
	}
	if int(h.KeySize) != h.Variant.KeySize() || int(h.DigestSize) != h.Variant.DigestSize() {
		return nil, kserrors.ErrCorruptedReport
	}
	if h.Workers == 0 {
		return nil, kserrors.ErrCorruptedReport
	}

	return h, nil
}

// entrySize returns the bytes stored per worker.
func (h *reportHeader) entrySize() int {
	return int(h.KeySize) + int(h.DigestSize) + digestSumSize
}

// fileSize returns the exact size of a report described by h.
func (h *reportHeader) fileSize() uint64 {
	return reportHeaderSize + uint64(h.KeySize) + uint64(h.Workers)*uint64(h.entrySize()) + reportFooterSize
}

// reportFooter is the 16-byte report footer.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       8     FileHash  uint64_le (xxHash64 of every preceding byte)
//	8       8     Reserved  [8]byte (zero)
type reportFooter struct {
	FileHash uint64
	Reserved [8]byte
}

// encodeTo serializes the footer into an existing buffer.
func (f *reportFooter) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.FileHash)
	copy(buf[8:16], f.Reserved[:])
}

// decodeReportFooter parses a 16-byte footer.
func decodeReportFooter(buf []byte) (*reportFooter, error) {
	if len(buf) < reportFooterSize {
		return nil, kserrors.ErrTruncatedFile
	}
	f := &reportFooter{
		FileHash: binary.LittleEndian.Uint64(buf[0:8]),
	}
	copy(f.Reserved[:], buf[8:16])
	return f, nil
}
