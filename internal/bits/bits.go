// Package bits provides fixed-width big-number arithmetic over byte slices.
//
// A key is an unsigned integer stored big-endian: buf[0] is the most
// significant byte and buf[len(buf)-1] the least significant.
package bits

// Add adds delta to the big-endian number in buf, propagating carries toward
// buf[0]. Overflow past the most significant byte is dropped, so the result
// wraps modulo 2^(8*len(buf)). Callers size keys so that wrapping cannot
// happen within a run; it is a precondition, not a feature.
func Add(buf []byte, delta uint64) {
	carry := delta
	for i := len(buf) - 1; i >= 0 && carry != 0; i-- {
		sum := uint64(buf[i]) + (carry & 0xFF)
		buf[i] = byte(sum)
		carry = (carry >> 8) + (sum >> 8)
	}
}

// Cmp compares two equal-width big-endian numbers and returns -1, 0 or +1.
// Panics if the widths differ.
func Cmp(a, b []byte) int {
	if len(a) != len(b) {
		panic("bits.Cmp: width mismatch")
	}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Sub returns a-b when a >= b and the difference fits in 64 bits.
// ok is false otherwise.
func Sub(a, b []byte) (diff uint64, ok bool) {
	if Cmp(a, b) < 0 {
		return 0, false
	}
	var borrow uint64
	for i := len(a) - 1; i >= 0; i-- {
		d := int(a[i]) - int(b[i]) - int(borrow)
		borrow = 0
		if d < 0 {
			d += 256
			borrow = 1
		}
		shift := len(a) - 1 - i
		if shift >= 8 {
			if d != 0 {
				return 0, false
			}
			continue
		}
		diff |= uint64(d) << (8 * shift)
	}
	return diff, true
}
