package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/parser"
)

func TestNewMapSortsKeys(t *testing.T) {
	m := NewMap([]string{"b", "a", "c"}, []Value{NewInt(element.Uint(2)), NewInt(element.Uint(1)), NewInt(element.Uint(3))})

	require.Equal(t, []string{"a", "b", "c"}, m.Keys())
	require.True(t, m.Field("a").Equal(NewInt(element.Uint(1))))
	require.True(t, m.Field("b").Equal(NewInt(element.Uint(2))))
}

func TestFieldMissingReturnsNull(t *testing.T) {
	m := NewMapSorted([]string{"a"}, []Value{NewInt(element.Uint(1))})

	require.True(t, m.Field("missing").Equal(Null))
}

func TestIndexOutOfBoundsReturnsNull(t *testing.T) {
	arr := NewArray([]Value{NewBool(true)})

	require.True(t, arr.Index(5).Equal(Null))
	require.True(t, arr.Index(-1).Equal(Null))
}

func TestEqualAcrossKinds(t *testing.T) {
	require.False(t, NewInt(element.Uint(1)).Equal(NewStr("1")))
	require.True(t, NewStr("widget").Equal(NewStr("widget")))
	require.False(t, NewStr("widget").Equal(NewStr("gadget")))
}

func TestEqualNaNIsBitExact(t *testing.T) {
	nan := NewF64(nanF64())
	require.True(t, nan.Equal(NewF64(nanF64())))
}

func nanF64() float64 {
	var z float64
	return z / z
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := NewMapSorted(
		[]string{"count", "flags", "name"},
		[]Value{
			NewInt(element.Signed(-5)),
			NewArray([]Value{NewBool(true), NewBool(false)}),
			NewStr("widget"),
		},
	)

	e := emitter.New()
	require.NoError(t, original.Encode(e))
	defer e.Finish()

	decoded, err := Decode(parser.New(e.Bytes()))
	require.NoError(t, err)

	require.True(t, original.Equal(decoded.ToOwned()))
}

func TestFromOwnedRoundTripsThroughValueRef(t *testing.T) {
	original := NewArray([]Value{NewStr("a"), NewStr("b")})

	ref := FromOwned(original)
	require.Equal(t, 2, ref.Len())
	require.Equal(t, "a", ref.Index(0).Str())

	require.True(t, original.Equal(ref.ToOwned()))
}

func TestDecodeRejectsUnorderedMapKeys(t *testing.T) {
	e := emitter.New()
	require.NoError(t, e.WriteMapHeader(2))
	require.NoError(t, e.WriteStr("z"))
	require.NoError(t, e.WriteBool(true))
	require.NoError(t, e.WriteStr("a"))
	require.NoError(t, e.WriteBool(false))
	defer e.Finish()

	_, err := Decode(parser.New(e.Bytes()))
	require.Error(t, err)
}

func TestPairsVisitsInKeyOrder(t *testing.T) {
	m := NewMap([]string{"b", "a"}, []Value{NewInt(element.Uint(2)), NewInt(element.Uint(1))})

	var seen []string
	m.Pairs(func(key string, val Value) { seen = append(seen, key) })

	require.Equal(t, []string{"a", "b"}, seen)
}
