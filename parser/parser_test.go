package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/parser"
)

func encodeOneInt(t *testing.T, n int64) []byte {
	t.Helper()

	e := emitter.New()
	defer e.Finish()
	require.NoError(t, e.WriteInt(element.Signed(n)))

	return append([]byte(nil), e.Bytes()...)
}

func TestNextDecodesFixintRoundTrip(t *testing.T) {
	p := parser.New(encodeOneInt(t, 7))
	el, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, element.KindInt, el.Kind)
	require.Equal(t, int64(7), el.Int.AsInt64())
}

func TestNextIsStickyAfterFirstError(t *testing.T) {
	p := parser.New([]byte{0xc1}) // reserved marker, always fails
	_, err1 := p.Next()
	require.Error(t, err1)

	_, err2 := p.Next()
	require.Error(t, err2)
	require.Equal(t, err1, err2, "parser must latch and return the same error for every subsequent Next call")
}

func TestNextRejectsDepthBeyondMax(t *testing.T) {
	// MaxDepth+1 nested one-element fixarrays (marker 0x91 each), followed
	// by a leaf fixint, built directly from raw marker bytes rather than
	// through the emitter (which refuses to construct this at all).
	raw := make([]byte, 0, parser.MaxDepth+2)
	for i := 0; i < parser.MaxDepth+1; i++ {
		raw = append(raw, 0x91)
	}
	raw = append(raw, 0x00)

	p := parser.New(raw)
	var err error
	for i := 0; i <= parser.MaxDepth+1 && err == nil; i++ {
		_, err = p.Next()
	}
	require.Error(t, err)
	require.Contains(t, err.Error(), "depth")
}

func TestArrayHeaderThenChildrenAdvanceCursor(t *testing.T) {
	e := emitter.New()
	defer e.Finish()
	require.NoError(t, e.WriteArrayHeader(2))
	require.NoError(t, e.WriteInt(element.Signed(1)))
	require.NoError(t, e.WriteInt(element.Signed(2)))

	p := parser.New(e.Bytes())
	hdr, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, element.KindArray, hdr.Kind)
	require.Equal(t, 2, hdr.Len)

	first, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Int.AsInt64())

	second, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, int64(2), second.Int.AsInt64())

	require.Empty(t, p.Remaining())
}

func TestMapHeaderAnnouncesTwiceLenChildren(t *testing.T) {
	e := emitter.New()
	defer e.Finish()
	require.NoError(t, e.WriteMapHeader(1))
	require.NoError(t, e.WriteStr("a"))
	require.NoError(t, e.WriteInt(element.Signed(1)))

	p := parser.New(e.Bytes())
	hdr, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, element.KindMap, hdr.Kind)
	require.Equal(t, 1, hdr.Len)

	key, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, "a", key.Str)

	val, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, int64(1), val.Int.AsInt64())
}

func TestCloneIsIndependentOfOriginalCursor(t *testing.T) {
	e := emitter.New()
	defer e.Finish()
	require.NoError(t, e.WriteInt(element.Signed(1)))
	require.NoError(t, e.WriteInt(element.Signed(2)))

	p := parser.New(e.Bytes())
	clone := p.Clone()

	_, err := clone.Next()
	require.NoError(t, err)
	_, err = clone.Next()
	require.NoError(t, err)

	// The original cursor must be untouched by the clone's advancement.
	first, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Int.AsInt64())
}

func TestTruncatedInputFails(t *testing.T) {
	p := parser.New([]byte{0xcc}) // Uint8 marker with no payload byte
	_, err := p.Next()
	require.Error(t, err)
}

func TestInvalidUtf8StringFails(t *testing.T) {
	// fixstr marker (length 1) followed by an invalid UTF-8 continuation byte.
	p := parser.New([]byte{0xa1, 0x80})
	_, err := p.Next()
	require.Error(t, err)
}

func TestSkipValueConsumesWholeSubtree(t *testing.T) {
	e := emitter.New()
	defer e.Finish()
	require.NoError(t, e.WriteArrayHeader(2))
	require.NoError(t, e.WriteArrayHeader(1))
	require.NoError(t, e.WriteInt(element.Signed(1)))
	require.NoError(t, e.WriteInt(element.Signed(2)))
	require.NoError(t, e.WriteInt(element.Signed(3))) // trailing value outside the array

	p := parser.New(e.Bytes())
	require.NoError(t, p.SkipValue())

	next, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, int64(3), next.Int.AsInt64())
}
