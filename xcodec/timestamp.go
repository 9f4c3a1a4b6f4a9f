package xcodec

import "fmt"

// leapNanoBit marks the upper half of the nanosecond field as encoding a
// leap second, per §3: nanos in [1_000_000_000, 1_999_999_999] represent a
// leap second at the given second-of-epoch.
const leapNanoBit = 1_000_000_000

// MaxNanos is the largest legal value of a Timestamp's nanosecond field.
const MaxNanos = 1_999_999_999

// Timestamp is a standard-byte-qualified (seconds, nanoseconds) pair. The
// standard byte is always 0 for this version of the format; it exists so a
// future revision can vary the epoch or resolution without colliding with
// the current wire layout. It lives in xcodec rather than element because
// its wire encoding (EncodeTimestamp/DecodeTimestamp, below) is itself an
// ext-type codec, same as the other crypto token types in this package.
type Timestamp struct {
	Seconds int64
	Nanos   uint32
}

// FromUnix builds a Timestamp from seconds-since-epoch and a nanosecond
// offset. Nanos must be in [0, MaxNanos]; out-of-range values are rejected
// by Validate, not silently clamped here, so zero-value construction stays
// cheap.
func FromUnix(seconds int64, nanos uint32) Timestamp {
	return Timestamp{Seconds: seconds, Nanos: nanos}
}

// Validate reports whether the nanosecond field is within its legal range.
func (t Timestamp) Validate() error {
	if t.Nanos > MaxNanos {
		return fmt.Errorf("timestamp nanos %d exceeds maximum %d", t.Nanos, MaxNanos)
	}

	return nil
}

// IsLeapSecond reports whether the nanosecond field's upper half is set,
// i.e. this timestamp names a leap second.
func (t Timestamp) IsLeapSecond() bool {
	return t.Nanos >= leapNanoBit
}

// WireSize returns the number of bytes (5, 9, or 13) of the ext body the
// shortest-form encoder selects for this timestamp: the standard byte plus
// the seconds/nanos fields. The ext marker, length and type tag are
// handled by the caller.
//
//   - 5 bytes: nanos == 0 and seconds fits in an unsigned 32-bit value.
//   - 9 bytes: nanos == 0 with wider or negative seconds.
//   - 13 bytes: any nonzero nanos field, plus full 64-bit seconds.
func (t Timestamp) WireSize() int {
	switch {
	case t.Nanos != 0:
		return 13
	case t.Seconds >= 0 && t.Seconds <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// Cmp orders timestamps by seconds, then by nanoseconds.
func (t Timestamp) Cmp(other Timestamp) int {
	switch {
	case t.Seconds < other.Seconds:
		return -1
	case t.Seconds > other.Seconds:
		return 1
	case t.Nanos < other.Nanos:
		return -1
	case t.Nanos > other.Nanos:
		return 1
	default:
		return 0
	}
}

// Equal reports whether t and other name the same instant.
func (t Timestamp) Equal(other Timestamp) bool {
	return t.Cmp(other) == 0
}
