// Package errors defines all exported error sentinels for the keysweep library.
//
// This is the single source of truth for error values. Both the top-level
// keysweep package and internal packages import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Configuration errors. All of these are reported before any worker starts.
var (
	ErrInvalidHashCount   = errors.New("keysweep: hash count must be a positive multiple of 8")
	ErrInvalidWorkerCount = errors.New("keysweep: worker count must be positive")
	ErrUnevenShares       = errors.New("keysweep: hash count is not divisible by the worker count")
	ErrShareNotAligned    = errors.New("keysweep: per-worker share is not a multiple of the batch width")
	ErrUnknownVariant     = errors.New("keysweep: unknown hash variant")
	ErrKeySize            = errors.New("keysweep: key width does not match the hash variant")
	ErrInvalidKey         = errors.New("keysweep: invalid hex key")
)

// Self-test errors
var (
	ErrKnownAnswerMismatch = errors.New("keysweep: known-answer digest mismatch")
)

// Report errors
var (
	ErrInvalidMagic    = errors.New("keysweep: invalid report magic number")
	ErrInvalidVersion  = errors.New("keysweep: unsupported report version")
	ErrTruncatedFile   = errors.New("keysweep: report file is truncated")
	ErrCorruptedReport = errors.New("keysweep: report data is corrupted")
	ErrChecksumFailed  = errors.New("keysweep: report checksum verification failed")
	ErrReportClosed    = errors.New("keysweep: report is closed")
)
