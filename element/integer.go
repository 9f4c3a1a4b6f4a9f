package element

import "strconv"

// Int is a sign-preserving union of an unsigned and a signed 64-bit integer.
// Two integers with the same bit pattern but different signedness (e.g. the
// unsigned value 2^63 and the signed value -2^63 reinterpreted) are distinct
// values with distinct canonical encodings; Int keeps them apart instead of
// collapsing to a single machine word.
type Int struct {
	u      uint64
	i      int64
	signed bool
}

// Uint wraps a non-negative integer. Canonical encoding always treats
// non-negative magnitudes as unsigned, regardless of how the value was
// constructed in-memory.
func Uint(v uint64) Int {
	return Int{u: v, signed: false}
}

// Signed wraps a signed integer. Negative values keep the signed form;
// non-negative values are normalized to the same unsigned form Uint
// produces, so the shortest-form encoder picks the unsigned marker family.
func Signed(v int64) Int {
	if v >= 0 {
		return Int{u: uint64(v), signed: false}
	}

	return Int{i: v, signed: true}
}

// IsSigned reports whether the value was constructed as negative.
func (n Int) IsSigned() bool {
	return n.signed
}

// AsUint64 returns the value's bit pattern reinterpreted as an unsigned
// 64-bit integer, as used by bit-mask validators (bits_set/bits_clr).
func (n Int) AsUint64() uint64 {
	if n.signed {
		return uint64(n.i)
	}

	return n.u
}

// AsInt64 returns the value as a signed 64-bit integer. For unsigned
// magnitudes greater than math.MaxInt64 this wraps, matching Go's defined
// conversion semantics; callers needing the full unsigned range should use
// AsUint64 instead.
func (n Int) AsInt64() int64 {
	if n.signed {
		return n.i
	}

	return int64(n.u)
}

// Cmp implements the total order required by §3: negatives precede all
// non-negatives, and within each class values compare numerically.
func (n Int) Cmp(other Int) int {
	switch {
	case n.signed && !other.signed:
		return -1
	case !n.signed && other.signed:
		return 1
	case n.signed && other.signed:
		switch {
		case n.i < other.i:
			return -1
		case n.i > other.i:
			return 1
		default:
			return 0
		}
	default:
		switch {
		case n.u < other.u:
			return -1
		case n.u > other.u:
			return 1
		default:
			return 0
		}
	}
}

// Equal reports whether n and other represent the same logical integer.
func (n Int) Equal(other Int) bool {
	return n.Cmp(other) == 0
}

// String renders the integer in its natural signed or unsigned form.
func (n Int) String() string {
	if n.signed {
		return strconv.FormatInt(n.i, 10)
	}

	return strconv.FormatUint(n.u, 10)
}
