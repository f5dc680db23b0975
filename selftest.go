package keysweep

import (
	"errors"
	"fmt"

	kserrors "github.com/tamirms/keysweep/errors"
	"github.com/tamirms/keysweep/internal/lanes"
)

// KnownAnswer is a key and its expected digest, both hex.
type KnownAnswer struct {
	Key    string
	Digest string
}

var ripemd160KnownAnswers = []KnownAnswer{
	{"0000000000000000000000000000000000000000000000000000000000000001", "ae387fcfeb723c3f5964509af111cf5a67f30661"},
	{"0000000000000000000000000000000000000000000000000000000000000010", "89aab4a6e25ba092cc701e6394e975748c195de9"},
	{"0000000000000000000000000000000000000000000000000000000000000100", "63374a012d674b221e1a04b552f0dc433ef68394"},
	{"0000000000000000000000000000000000000000000000000000000000001000", "66afe0607ffc7fd5281d191e81098acf5c738d05"},
	{"1000000000000000000000000000000000000000000000000000000000000000", "7147350ea8019b764d6d235807033fbcddbddb25"},
	{"0100000000000000000000000000000000000000000000000000000000000000", "01b5ab36cb024c433beed66bee022f63af5df20a"},
	{"0010000000000000000000000000000000000000000000000000000000000000", "3ad8e38bf6d0a4d417ab8f91a66f31ab571729ce"},
	{"0001000000000000000000000000000000000000000000000000000000000000", "269d582dffd8b8edb67a298a678aea3d09d27ba6"},
}

var sha256KnownAnswers = []KnownAnswer{
	{"000000000000000000000000000000000000000000000000000000000000000001", "1fd4247443c9440cb3c48c28851937196bc156032d70a96c98e127ecb347e45f"},
	{"000000000000000000000000000000000000000000000000000000000000000010", "65074aa3a766c6973ac3de47f82f3acabb999b36202ce6edcd6b348ea227c00f"},
	{"000000000000000000000000000000000000000000000000000000000000000100", "e65b66499024a7a2f732fc71a035ef70b6eb493445a6cfb708f69bff18fd7eb5"},
	{"000000000000000000000000000000000000000000000000000000000000001000", "58ba123afbfa01d0ab579910e3c71707804db829410c38d132d9f9ceaccc455f"},
	{"100000000000000000000000000000000000000000000000000000000000000000", "a9deba97c5a6ecfff3bd534250e4d43e44732733254e794ca53727344f5522eb"},
	{"010000000000000000000000000000000000000000000000000000000000000000", "1a7dfdeaffeedac489287e85be5e9c049a2ff6470f55cf30260f55395ac1b159"},
	{"001000000000000000000000000000000000000000000000000000000000000000", "cd6a3ca0edecc51cce376f20c24705f61767c0724ab5dc6ba9f97476cf913231"},
	{"000100000000000000000000000000000000000000000000000000000000000000", "1b7c643b049c11a4fb6b65822e4a5e2a3da54223366c5f453cf376536f9bf42a"},
}

// KnownAnswers returns the reference vectors for a variant. The returned
// slice is a copy.
func KnownAnswers(v VariantID) []KnownAnswer {
	switch v {
	case VariantRIPEMD160:
		return append([]KnownAnswer(nil), ripemd160KnownAnswers...)
	case VariantSHA256:
		return append([]KnownAnswer(nil), sha256KnownAnswers...)
	}
	return nil
}

// HashKey hashes a single key with the variant's primitive. The key is
// placed in every lane of one 8-lane call and lane 0's digest returned.
func HashKey(v VariantID, key []byte) ([]byte, error) {
	h, err := newHasher(v)
	if err != nil {
		return nil, err
	}
	if len(key) != v.KeySize() {
		return nil, fmt.Errorf("%w: got %d bytes, %s keys are %d", kserrors.ErrKeySize, len(key), v, v.KeySize())
	}

	in := lanes.NewLanes(h.BlockSize())
	out := lanes.NewLanes(h.DigestSize())
	for i := range in {
		h.Shape().Format(in[i], key)
	}
	h.Sum8(out, in)
	return append([]byte(nil), out[0]...), nil
}

// SelfTest checks the variant's primitive against every known answer.
// All mismatches are reported, each wrapping ErrKnownAnswerMismatch.
func SelfTest(v VariantID) error {
	answers := KnownAnswers(v)
	if answers == nil {
		return fmt.Errorf("%w: ID %d", kserrors.ErrUnknownVariant, v)
	}

	var errs []error
	for _, ka := range answers {
		key, err := ParseKey(v, ka.Key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		digest, err := HashKey(v, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if got := FormatKey(digest); got != ka.Digest {
			errs = append(errs, fmt.Errorf("%w: key %s: got %s, want %s", kserrors.ErrKnownAnswerMismatch, ka.Key, got, ka.Digest))
		}
	}
	return errors.Join(errs...)
}
