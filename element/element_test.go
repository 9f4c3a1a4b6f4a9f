package element

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindIsContainer(t *testing.T) {
	require.True(t, KindArray.IsContainer())
	require.True(t, KindMap.IsContainer())
	require.False(t, KindInt.IsContainer())
	require.False(t, KindStr.IsContainer())
}

func TestKindStringKnownAndUnknown(t *testing.T) {
	require.Equal(t, "Int", KindInt.String())
	require.Equal(t, "Map", KindMap.String())
	require.Contains(t, Kind(255).String(), "Kind(255)")
}

func TestNewConstructorsSetKindAndPayload(t *testing.T) {
	require.Equal(t, KindBool, NewBool(true).Kind)
	require.True(t, NewBool(true).Bool)

	require.Equal(t, KindStr, NewStr("hi").Kind)
	require.Equal(t, "hi", NewStr("hi").Str)

	require.Equal(t, KindArray, NewArray(3).Kind)
	require.Equal(t, 3, NewArray(3).Len)

	require.Equal(t, KindMap, NewMap(2).Kind)
	require.Equal(t, 2, NewMap(2).Len)
}

func TestNewUintVsNewIntChooseEncodingFamily(t *testing.T) {
	require.False(t, NewUint(7).Int.IsSigned())
	require.False(t, NewInt(7).Int.IsSigned(), "non-negative values always encode as unsigned")
	require.True(t, NewInt(-7).Int.IsSigned())
}

func TestIntTotalOrder(t *testing.T) {
	neg := Signed(-5)
	posSmall := Uint(3)
	posLarge := Uint(10)

	require.Equal(t, -1, neg.Cmp(posSmall), "negatives must precede all non-negatives")
	require.Equal(t, -1, posSmall.Cmp(posLarge))
	require.Equal(t, 1, posLarge.Cmp(posSmall))
	require.Equal(t, 0, posSmall.Cmp(Uint(3)))
}

func TestIntEqualIgnoresConstructionPath(t *testing.T) {
	require.True(t, Uint(5).Equal(Signed(5)), "Signed(5) normalizes to the unsigned family")
}

func TestIntAsUint64AndAsInt64(t *testing.T) {
	n := Signed(-1)
	require.Equal(t, int64(-1), n.AsInt64())
	require.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), n.AsUint64())

	u := Uint(42)
	require.Equal(t, int64(42), u.AsInt64())
	require.Equal(t, uint64(42), u.AsUint64())
}

func TestIntString(t *testing.T) {
	require.Equal(t, "42", Uint(42).String())
	require.Equal(t, "-3", Signed(-3).String())
}
