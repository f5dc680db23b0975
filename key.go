package keysweep

import (
	"encoding/hex"
	"fmt"
	"strings"

	kserrors "github.com/tamirms/keysweep/errors"
)

// defaultStartKeyHex is the start key used when none is configured,
// left-padded to the variant width.
const defaultStartKeyHex = "11111"

// ParseKey decodes a hex key for variant v. An optional 0x prefix is
// accepted and shorter input is zero-padded on the left, so "1" is key 1.
// Empty input and input longer than 2*KeySize digits are rejected.
func ParseKey(v VariantID, s string) ([]byte, error) {
	size := v.KeySize()
	if size == 0 {
		return nil, fmt.Errorf("%w: ID %d", kserrors.ErrUnknownVariant, v)
	}

	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, fmt.Errorf("%w: no hex digits", kserrors.ErrInvalidKey)
	}
	if len(s) > 2*size {
		return nil, fmt.Errorf("%w: %d hex digits, %s keys take at most %d", kserrors.ErrInvalidKey, len(s), v, 2*size)
	}
	s = strings.Repeat("0", 2*size-len(s)) + s

	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kserrors.ErrInvalidKey, err)
	}
	return key, nil
}

// DefaultStartKey returns the start key used when WithStartKey is not given.
func DefaultStartKey(v VariantID) []byte {
	key, err := ParseKey(v, defaultStartKeyHex)
	if err != nil {
		return nil
	}
	return key
}

// FormatKey returns the lower-case hex form of a key or digest.
func FormatKey(key []byte) string {
	return hex.EncodeToString(key)
}
