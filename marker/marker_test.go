package marker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLengthWidthBoundaries(t *testing.T) {
	require.Equal(t, 1, LengthWidth(0))
	require.Equal(t, 1, LengthWidth(MaxLen8))
	require.Equal(t, 2, LengthWidth(MaxLen8+1))
	require.Equal(t, 2, LengthWidth(MaxLen16))
	require.Equal(t, 3, LengthWidth(MaxLen16+1))
}

func TestUintMarkerShortestForm(t *testing.T) {
	require.Equal(t, Byte(0), UintMarker(0))
	require.Equal(t, Byte(0), UintMarker(uint64(PosFixIntMax)))
	require.Equal(t, Uint8, UintMarker(uint64(PosFixIntMax)+1))
	require.Equal(t, Uint8, UintMarker(0xff))
	require.Equal(t, Uint16, UintMarker(0x100))
	require.Equal(t, Uint32, UintMarker(0x10000))
	require.Equal(t, Uint64, UintMarker(0x100000000))
}

func TestIntMarkerShortestForm(t *testing.T) {
	require.Equal(t, Byte(0), IntMarker(-1))
	require.Equal(t, Byte(0), IntMarker(-32))
	require.Equal(t, Int8, IntMarker(-33))
	require.Equal(t, Int8, IntMarker(-128))
	require.Equal(t, Int16, IntMarker(-129))
	require.Equal(t, Int32, IntMarker(-32769))
	require.Equal(t, Int64, IntMarker(-2147483649))
}

func TestStrMarkerFixStrBoundary(t *testing.T) {
	require.Equal(t, Byte(0), StrMarker(MaxFixStrLen))
	require.Equal(t, Str8, StrMarker(MaxFixStrLen+1))
	require.Equal(t, Str16, StrMarker(MaxLen8+1))
	require.Equal(t, Str24, StrMarker(MaxLen16+1))
}

func TestArrayAndMapMarkerFixBoundary(t *testing.T) {
	require.Equal(t, Byte(0), ArrayMarker(MaxFixArrayLen))
	require.Equal(t, Array8, ArrayMarker(MaxFixArrayLen+1))

	require.Equal(t, Byte(0), MapMarker(MaxFixMapLen))
	require.Equal(t, Map8, MapMarker(MaxFixMapLen+1))
}

func TestExtMarkerWidthProgression(t *testing.T) {
	require.Equal(t, Ext8, ExtMarker(1))
	require.Equal(t, Ext16, ExtMarker(MaxLen8+1))
	require.Equal(t, Ext24, ExtMarker(MaxLen16+1))
}

func TestIsReserved(t *testing.T) {
	require.True(t, IsReserved(Invalid))
	require.True(t, IsReserved(Reserved1))
	require.False(t, IsReserved(Null))
}

func TestExtTypeStringAndIsKnown(t *testing.T) {
	require.True(t, ExtHash.IsKnown())
	require.Equal(t, "Hash", ExtHash.String())
	require.False(t, ExtType(200).IsKnown())
	require.Contains(t, ExtType(200).String(), "Unknown")
}
