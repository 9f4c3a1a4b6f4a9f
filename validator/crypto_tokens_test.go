package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/parser"
	"github.com/fogpack/fogpack/xcodec"
)

func encodeHashElement(t *testing.T, h xcodec.Hash) []byte {
	t.Helper()
	e := emitter.New()
	require.NoError(t, e.WriteHash(h))

	return append([]byte(nil), e.Bytes()...)
}

func TestHashValidatorInNin(t *testing.T) {
	allowed := testHash(1)
	v := &HashValidator{In: []xcodec.Hash{allowed}}

	require.NoError(t, v.Validate(nil, parser.New(encodeHashElement(t, allowed)), NewChecklist()))
	require.Error(t, v.Validate(nil, parser.New(encodeHashElement(t, testHash(2))), NewChecklist()))
}

func TestHashValidatorRegistersChecklistEntry(t *testing.T) {
	linked := strValidator(t)
	v := &HashValidator{Link: linked}

	target := testHash(9)
	cl := NewChecklist()
	require.NoError(t, v.Validate(nil, parser.New(encodeHashElement(t, target)), cl))

	require.False(t, cl.Complete())
	entries := cl.EntriesFor(target)
	require.Len(t, entries, 1)
	require.Same(t, linked, entries[0].Link)
}

func TestHashValidatorWithoutLinkOrSchemaDoesNotDefer(t *testing.T) {
	v := &HashValidator{}
	cl := NewChecklist()

	require.NoError(t, v.Validate(nil, parser.New(encodeHashElement(t, testHash(10))), cl))
	require.True(t, cl.Complete())
}

func TestIdentityValidatorInNin(t *testing.T) {
	var key [xcodec.IdentitySize]byte
	key[0] = 1
	id := xcodec.NewIdentity(key)

	v := &IdentityValidator{In: []xcodec.Identity{id}}

	e := emitter.New()
	require.NoError(t, e.WriteIdentity(id))
	require.NoError(t, v.Validate(nil, parser.New(e.Bytes()), nil))

	var otherKey [xcodec.IdentitySize]byte
	otherKey[0] = 2
	other := xcodec.NewIdentity(otherKey)

	e2 := emitter.New()
	require.NoError(t, e2.WriteIdentity(other))
	require.Error(t, v.Validate(nil, parser.New(e2.Bytes()), nil))
}

func TestLockboxValidatorPayloadLenBounds(t *testing.T) {
	minLen, maxLen := 1, 16
	v := NewDataLockboxValidator()
	v.MinLen, v.MaxLen = &minLen, &maxLen

	var signingKey, ephemeralKey [xcodec.IdentitySize]byte
	var nonce [24]byte
	lbox := xcodec.NewPublicKeyLockbox(signingKey, ephemeralKey, nonce, make([]byte, 24)) // 8-byte payload + 16-byte tag

	e := emitter.New()
	require.NoError(t, e.WriteDataLockbox(lbox))
	require.NoError(t, v.Validate(nil, parser.New(e.Bytes()), nil))

	tooBig := xcodec.NewPublicKeyLockbox(signingKey, ephemeralKey, nonce, make([]byte, 80)) // 64-byte payload
	e2 := emitter.New()
	require.NoError(t, e2.WriteDataLockbox(tooBig))
	require.Error(t, v.Validate(nil, parser.New(e2.Bytes()), nil))
}

func TestLockboxValidatorKindMismatch(t *testing.T) {
	v := NewIdentityLockboxValidator()

	var signingKey, ephemeralKey [xcodec.IdentitySize]byte
	var nonce [24]byte
	lbox := xcodec.NewPublicKeyLockbox(signingKey, ephemeralKey, nonce, []byte("x"))

	e := emitter.New()
	require.NoError(t, e.WriteDataLockbox(lbox)) // wrong ext kind for v

	require.Error(t, v.Validate(nil, parser.New(e.Bytes()), nil))
}
