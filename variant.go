package keysweep

import (
	"fmt"
	"strings"

	kserrors "github.com/tamirms/keysweep/errors"
	"github.com/tamirms/keysweep/internal/lanes"
)

// VariantID identifies the hash algorithm and key layout of a sweep.
// This is stored in report headers.
type VariantID uint16

const (
	// VariantRIPEMD160 hashes raw 32-byte keys into 20-byte RIPEMD-160 digests.
	VariantRIPEMD160 VariantID = 0

	// VariantSHA256 hashes 33-byte keys, pre-padded into one 64-byte block,
	// into 32-byte SHA-256 digests.
	VariantSHA256 VariantID = 1
)

// String returns the variant name.
func (v VariantID) String() string {
	switch v {
	case VariantRIPEMD160:
		return "ripemd160"
	case VariantSHA256:
		return "sha256"
	default:
		return "unknown"
	}
}

// ParseVariant maps a variant name, as returned by String, to its ID.
func ParseVariant(name string) (VariantID, error) {
	switch strings.ToLower(name) {
	case "ripemd160", "ripemd-160":
		return VariantRIPEMD160, nil
	case "sha256", "sha-256":
		return VariantSHA256, nil
	}
	return 0, fmt.Errorf("%w: %q", kserrors.ErrUnknownVariant, name)
}

// KeySize returns the key width in bytes, or 0 for an unknown variant.
func (v VariantID) KeySize() int {
	switch v {
	case VariantRIPEMD160:
		return 32
	case VariantSHA256:
		return 33
	}
	return 0
}

// DigestSize returns the digest width in bytes, or 0 for an unknown variant.
func (v VariantID) DigestSize() int {
	switch v {
	case VariantRIPEMD160:
		return 20
	case VariantSHA256:
		return 32
	}
	return 0
}

// newHasher creates the 8-lane primitive for a variant.
// Called once per worker: hashers are not safe for concurrent use.
func newHasher(v VariantID) (lanes.Hasher, error) {
	switch v {
	case VariantRIPEMD160:
		return lanes.NewRIPEMD160(v.KeySize()), nil
	case VariantSHA256:
		return lanes.NewSHA256Block(), nil
	}
	return nil, fmt.Errorf("%w: ID %d", kserrors.ErrUnknownVariant, v)
}
