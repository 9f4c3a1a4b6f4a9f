package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fogpack/fogpack/crypto"
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/value"
)

func testValue() value.Value {
	return value.NewMapSorted([]string{"a"}, []value.Value{value.NewInt(element.Signed(1))})
}

// TestNewDocumentHashIsSumOfRawBytes checks the zero-signature case of
// §4.5's hash discipline directly: with no signatures attached, a
// Document's hash is exactly BLAKE2b-256 of its raw canonical bytes.
func TestNewDocumentHashIsSumOfRawBytes(t *testing.T) {
	d, err := NewDocument(testValue())
	require.NoError(t, err)

	want := crypto.Sum(d.raw)
	require.Equal(t, want, d.DataHash())
	require.Equal(t, want, d.Hash())
}

// TestSignAdvancesContinuousDigestNotHashOfHash is a regression test for
// §4.5/§8's hash discipline: "the running hash state is updated with... the
// raw canonical bytes, then separately with each appended signature" means
// one continuous digest over raw || sig1 || sig2 || ..., never a hash of a
// hash (H(H(raw) || sig1)). A prior implementation computed
// crypto.Sum(d.hash.Bytes() || sig.Bytes()) per signature, which produces a
// different, spec-incompatible value from what every other compliant peer
// (and the original Rust implementation's persistent HashState) computes.
func TestSignAdvancesContinuousDigestNotHashOfHash(t *testing.T) {
	d, err := NewDocument(testValue())
	require.NoError(t, err)

	key1, err := crypto.GenerateSigningKey()
	require.NoError(t, err)
	require.NoError(t, d.Sign(key1))

	wantAfterOne := crypto.Sum(append(append([]byte(nil), d.raw...), sigWireBytes(d.signatures[0])...))
	require.Equal(t, wantAfterOne, d.Hash())

	// The hash-of-hash bug would compute Sum(Sum(raw) || sig) here instead.
	wrongAfterOne := crypto.Sum(append(append([]byte(nil), d.dataHash.Bytes()...), sigWireBytes(d.signatures[0])...))
	require.NotEqual(t, wrongAfterOne, d.Hash(), "hash must not be computed as a hash-of-hash")

	key2, err := crypto.GenerateSigningKey()
	require.NoError(t, err)
	require.NoError(t, d.Sign(key2))

	wantAfterTwo := crypto.Sum(append(
		append(append([]byte(nil), d.raw...), sigWireBytes(d.signatures[0])...),
		sigWireBytes(d.signatures[1])...,
	))
	require.Equal(t, wantAfterTwo, d.Hash(), "second signature must extend one continuous digest over raw||sig1||sig2")
}

// TestSignThenDecodeAgreeOnHash exercises Sign and DecodeDocument's
// independent hash computations together: a signed document's wire bytes
// must decode to exactly the hash Sign produced.
func TestSignThenDecodeAgreeOnHash(t *testing.T) {
	d, err := NewDocument(testValue())
	require.NoError(t, err)

	key, err := crypto.GenerateSigningKey()
	require.NoError(t, err)
	require.NoError(t, d.Sign(key))

	wire, err := d.Bytes(EncodeOptions{})
	require.NoError(t, err)

	decoded, err := DecodeDocument(wire, Validated, nil)
	require.NoError(t, err)
	require.True(t, decoded.Hash().Equal(d.Hash()))
	require.True(t, decoded.DataHash().Equal(d.DataHash()))
}

func TestSigningPastMaxSizeRollsBack(t *testing.T) {
	d, err := NewDocument(testValue())
	require.NoError(t, err)
	d.raw = make([]byte, MaxDocumentSize) // force any further signature over budget

	key, err := crypto.GenerateSigningKey()
	require.NoError(t, err)

	err = d.Sign(key)
	require.Error(t, err)
	require.Empty(t, d.signatures, "a rejected Sign must leave the document unchanged")
}
