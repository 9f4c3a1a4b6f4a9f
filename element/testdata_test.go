package element_test

// Golden-vector tests mirroring spec.md §8's concrete scenarios and the
// original implementation's test fixtures (spec/raw_data.rs): exact byte
// sequences for canonical integers, not-shortest rejection, and the three
// Timestamp wire sizes.

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/parser"
	"github.com/fogpack/fogpack/xcodec"
)

func encodeInt(t *testing.T, n element.Int) []byte {
	t.Helper()

	e := emitter.New()
	defer e.Finish()
	require.NoError(t, e.WriteInt(n))

	return append([]byte(nil), e.Bytes()...)
}

// TestCanonicalIntegerEncoding checks spec.md §8 scenario 1's exact byte
// sequences.
func TestCanonicalIntegerEncoding(t *testing.T) {
	cases := []struct {
		name string
		n    element.Int
		want []byte
	}{
		{"zero", element.Uint(0), []byte{0x00}},
		{"posFixIntMax", element.Uint(127), []byte{0x7f}},
		{"firstUint8", element.Uint(128), []byte{0xcc, 0x80}},
		{"negFixIntMax", element.Signed(-1), []byte{0xff}},
		{"firstInt8", element.Signed(-33), []byte{0xd0, 0xdf}},
		{"i64Min", element.Signed(-9223372036854775808), []byte{
			0xd3, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, encodeInt(t, tc.n))

			p := parser.New(tc.want)
			el, err := p.Next()
			require.NoError(t, err)
			require.True(t, el.Int.Equal(tc.n))
		})
	}
}

// TestNotShortestIntegerRejected checks spec.md §8 scenario 2: a uint8
// encoding of 0 (which fits in a positive fixint) must fail decode.
func TestNotShortestIntegerRejected(t *testing.T) {
	p := parser.New([]byte{0xcc, 0x00})
	_, err := p.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "not shortest")
}

// TestTimestampWireSizes checks spec.md §8 scenario 4: the three timestamp
// body widths (5/9/13 bytes) selected by FromUnix's shortest-fit rule.
func TestTimestampWireSizes(t *testing.T) {
	cases := []struct {
		name string
		ts   xcodec.Timestamp
		size int
	}{
		{"epoch", xcodec.FromUnix(0, 0), 5},
		{"pastUint32Seconds", xcodec.FromUnix(int64(1)<<32, 0), 9},
		{"withNanos", xcodec.FromUnix(0, 1), 13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.size, tc.ts.WireSize())
			body := xcodec.EncodeTimestamp(tc.ts)
			require.Len(t, body, tc.size)

			decoded, err := xcodec.DecodeTimestamp(body)
			require.NoError(t, err)
			require.True(t, decoded.Equal(tc.ts))

			e := emitter.New()
			defer e.Finish()
			require.NoError(t, e.WriteTimestamp(tc.ts))

			p := parser.New(e.Bytes())
			el, err := p.Next()
			require.NoError(t, err)
			require.Equal(t, element.KindTimestamp, el.Kind)
			require.True(t, el.Time.Equal(tc.ts))
		})
	}
}
