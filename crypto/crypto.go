// Package crypto is the narrow interface over cryptographic primitives that
// §2 treats as an external service: update/finalize hashing and
// sign/verify. Lockbox sealing and opening are not implemented here;
// xcodec.Lockbox only carries lockbox wire bytes. fog-pack's own packages never call
// golang.org/x/crypto directly outside this package, so the primitive
// backend can be swapped without touching the codec, validator, or
// document layers — the same boundary compress.Codec draws around
// compression backends.
package crypto

import (
	"crypto/rand"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ed25519"

	"github.com/fogpack/fogpack/xcodec"
)

// Hasher incrementally computes a BLAKE2b-256 digest, mirroring the
// update(bytes)/finalize -> Hash shape §2 specifies. A Hasher is not safe
// for concurrent use.
type Hasher struct {
	inner hash.Hash
}

// NewHasher creates a Hasher ready to accept Update calls.
func NewHasher() *Hasher {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("crypto: blake2b.New256 failed: %v", err))
	}

	return &Hasher{inner: h}
}

// Update folds additional bytes into the running digest state.
func (h *Hasher) Update(b []byte) {
	_, _ = h.inner.Write(b)
}

// Finalize returns the accumulated digest as a version-1 Hash. The Hasher
// may continue to be updated afterward (blake2b.Sum does not reset state):
// document/entry hashing calls Finalize once for the data hash, before any
// signature is folded in, and again for the full hash after the
// signatures, mirroring §4.5's "data hash is the intermediate state before
// signatures" discipline.
func (h *Hasher) Finalize() xcodec.Hash {
	var digest [xcodec.HashSize]byte
	copy(digest[:], h.inner.Sum(nil))

	return xcodec.NewHash(digest)
}

// Sum computes a one-shot BLAKE2b-256 Hash over data without constructing a
// Hasher, for callers that already have the complete byte run in hand.
func Sum(data []byte) xcodec.Hash {
	return xcodec.NewHash(blake2b.Sum256(data))
}

// SigningKey is an Ed25519 private key paired with its public Identity.
type SigningKey struct {
	Identity xcodec.Identity
	private  ed25519.PrivateKey
}

// GenerateSigningKey creates a fresh Ed25519 keypair.
func GenerateSigningKey() (SigningKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return SigningKey{}, fmt.Errorf("crypto: generate signing key: %w", err)
	}

	var idKey [xcodec.IdentitySize]byte
	copy(idKey[:], pub)

	return SigningKey{Identity: xcodec.NewIdentity(idKey), private: priv}, nil
}

// SignatureSize is the byte width of a raw Ed25519 signature.
const SignatureSize = ed25519.SignatureSize

// Signature is a detached Ed25519 signature together with the Identity of
// its signer, matching the shape a Document attaches to its signature list
// (§4.5).
type Signature struct {
	Signer    xcodec.Identity
	signature [ed25519.SignatureSize]byte
}

// Bytes returns the raw signature bytes.
func (s Signature) Bytes() []byte { return s.signature[:] }

// NewSignatureFromBytes wraps raw signature bytes produced elsewhere (e.g.
// decoded from an envelope) together with the claimed signer.
func NewSignatureFromBytes(signer xcodec.Identity, raw []byte) (Signature, error) {
	if len(raw) != ed25519.SignatureSize {
		return Signature{}, fmt.Errorf("crypto: signature must be %d bytes, got %d", ed25519.SignatureSize, len(raw))
	}

	var sig [ed25519.SignatureSize]byte
	copy(sig[:], raw)

	return Signature{Signer: signer, signature: sig}, nil
}

// Sign signs dataHash's digest bytes with key and returns a Signature
// carrying key's public Identity. Per §4.5, documents sign the "data hash"
// — the hash state before any signatures are appended — never the overall
// hash.
func Sign(key SigningKey, dataHash xcodec.Hash) Signature {
	digest := dataHash.Bytes()
	raw := ed25519.Sign(key.private, digest)

	var sig [ed25519.SignatureSize]byte
	copy(sig[:], raw)

	return Signature{Signer: key.Identity, signature: sig}
}

// Verify reports whether sig is a valid signature over dataHash's digest
// under sig.Signer's public key — and, per §8's "only under that key" law,
// returns false for any other key.
func Verify(sig Signature, dataHash xcodec.Hash) bool {
	return ed25519.Verify(ed25519.PublicKey(sig.Signer.Bytes()), dataHash.Bytes(), sig.signature[:])
}
