// Package xcodec defines the closed set of cryptographic ext-type payloads
// fog-pack embeds in its element stream — hashes, identities, lock/stream
// ids, the four lockbox variants, and the opaque BareIdKey — along with
// their fixed wire layouts (§6).
//
// The package does not perform cryptography itself; it only owns the byte
// shapes. Primitive operations (digest, sign, verify) live in the sibling
// crypto package, which produces and consumes these types; lockbox sealing
// and opening are not implemented in this module.
package xcodec

import (
	"bytes"
	"fmt"
)

// HashSize is the digest width of a version-1 Hash (BLAKE2b-256).
const HashSize = 32

// IdentitySize is the public-key width of a version-1 Identity (Ed25519).
const IdentitySize = 32

// StreamIdSize is the width of a version-1 StreamId (a KDF-derived key).
const StreamIdSize = 32

// Hash is a content digest token. Version 0 is the reserved "no hash" /
// self-reference marker (§3); version 1 is a 32-byte BLAKE2b digest.
// Unrecognized versions fail decoding before a Hash value is ever
// constructed, so every in-memory Hash is well-formed by construction.
type Hash struct {
	version uint8
	digest  [HashSize]byte
}

// NoHash is the version-0 placeholder used by a schema to reference itself.
var NoHash = Hash{version: 0}

// NewHash wraps a 32-byte BLAKE2b digest as a version-1 Hash.
func NewHash(digest [HashSize]byte) Hash {
	return Hash{version: 1, digest: digest}
}

// Version returns the Hash's version byte (0 or 1).
func (h Hash) Version() uint8 { return h.version }

// IsSelf reports whether h is the version-0 self-reference marker.
func (h Hash) IsSelf() bool { return h.version == 0 }

// Digest returns the 32-byte digest. It is the zero value for a version-0
// Hash.
func (h Hash) Digest() [HashSize]byte { return h.digest }

// Bytes returns the digest as a slice, for hashing/comparison convenience.
func (h Hash) Bytes() []byte { return h.digest[:] }

// Equal reports whether h and other are the same version and digest.
func (h Hash) Equal(other Hash) bool {
	return h.version == other.version && h.digest == other.digest
}

// Cmp orders hashes by version, then by digest bytes.
func (h Hash) Cmp(other Hash) int {
	if h.version != other.version {
		if h.version < other.version {
			return -1
		}

		return 1
	}

	return bytes.Compare(h.digest[:], other.digest[:])
}

func (h Hash) String() string {
	if h.version == 0 {
		return "Hash(self)"
	}

	return fmt.Sprintf("Hash(v1:%x)", h.digest)
}

// Identity is an Ed25519 public key token (version 1 only).
type Identity struct {
	version uint8
	key     [IdentitySize]byte
}

// NewIdentity wraps a 32-byte Ed25519 public key as a version-1 Identity.
func NewIdentity(key [IdentitySize]byte) Identity {
	return Identity{version: 1, key: key}
}

func (id Identity) Version() uint8               { return id.version }
func (id Identity) Key() [IdentitySize]byte       { return id.key }
func (id Identity) Bytes() []byte                 { return id.key[:] }
func (id Identity) Equal(other Identity) bool     { return id.version == other.version && id.key == other.key }
func (id Identity) Cmp(other Identity) int        { return bytes.Compare(id.key[:], other.key[:]) }
func (id Identity) String() string                { return fmt.Sprintf("Identity(v1:%x)", id.key) }

// LockId identifies the public-key recipient of a DataLockbox/IdentityLockbox
// (the long-term X25519 key an ephemeral key is sealed against).
type LockId struct {
	version uint8
	key     [IdentitySize]byte
}

func NewLockId(key [IdentitySize]byte) LockId { return LockId{version: 1, key: key} }
func (l LockId) Version() uint8               { return l.version }
func (l LockId) Key() [IdentitySize]byte      { return l.key }
func (l LockId) Bytes() []byte                { return l.key[:] }
func (l LockId) Equal(other LockId) bool      { return l.version == other.version && l.key == other.key }
func (l LockId) Cmp(other LockId) int         { return bytes.Compare(l.key[:], other.key[:]) }
func (l LockId) String() string               { return fmt.Sprintf("LockId(v1:%x)", l.key) }

// StreamId identifies the symmetric recipient of a StreamLockbox/LockLockbox
// (a key derived by the sender's KDF, context "fogpack", subkey-id 1).
type StreamId struct {
	version uint8
	key     [StreamIdSize]byte
}

func NewStreamId(key [StreamIdSize]byte) StreamId { return StreamId{version: 1, key: key} }
func (s StreamId) Version() uint8                 { return s.version }
func (s StreamId) Key() [StreamIdSize]byte        { return s.key }
func (s StreamId) Bytes() []byte                  { return s.key[:] }
func (s StreamId) Equal(other StreamId) bool      { return s.version == other.version && s.key == other.key }
func (s StreamId) Cmp(other StreamId) int         { return bytes.Compare(s.key[:], other.key[:]) }
func (s StreamId) String() string                 { return fmt.Sprintf("StreamId(v1:%x)", s.key) }

// LockboxKind distinguishes the interior payload wrapped by a lockbox: a
// private signing key, a secret symmetric key, or raw application data.
type LockboxKind uint8

const (
	LockboxPrivateKey LockboxKind = 0x01
	LockboxSecretKey  LockboxKind = 0x02
	LockboxRawData    LockboxKind = 0x03
)

// RecipientKind distinguishes how a lockbox's nonce/key material was
// derived: sealed to a public identity (0x01) or to a symmetric stream key
// (0x02), per §6.
type RecipientKind uint8

const (
	RecipientPublicKey RecipientKind = 0x01
	RecipientSymmetric RecipientKind = 0x02
)

// Lockbox is the common shape of all four lockbox ext-type variants
// (DataLockbox, IdentityLockbox, StreamLockbox, LockLockbox). They differ
// only in what interior payload the sealed plaintext carries; the sealing
// envelope — version, recipient kind, key material, nonce, ciphertext, tag
// — is identical across all four, so a single struct represents them all
// and the ext type tag alone distinguishes which one is on the wire.
type Lockbox struct {
	version   uint8
	recipient RecipientKind

	// SigningKey is populated only for RecipientPublicKey: the sender's
	// long-term Ed25519/X25519 signing key.
	signingKey [IdentitySize]byte
	// EphemeralKey is the sender's ephemeral X25519 public key
	// (RecipientPublicKey) — absent (zero) for RecipientSymmetric.
	ephemeralKey [IdentitySize]byte
	// streamID is the derived StreamId (RecipientSymmetric only).
	streamID [StreamIdSize]byte

	nonce      [24]byte
	ciphertext []byte // includes the trailing 16-byte Poly1305 tag
}

// NewPublicKeyLockbox builds a lockbox sealed to a public identity.
func NewPublicKeyLockbox(signingKey, ephemeralKey [IdentitySize]byte, nonce [24]byte, ciphertext []byte) Lockbox {
	return Lockbox{
		version:      1,
		recipient:    RecipientPublicKey,
		signingKey:   signingKey,
		ephemeralKey: ephemeralKey,
		nonce:        nonce,
		ciphertext:   ciphertext,
	}
}

// NewSymmetricLockbox builds a lockbox sealed to a derived stream key.
func NewSymmetricLockbox(streamID [StreamIdSize]byte, nonce [24]byte, ciphertext []byte) Lockbox {
	return Lockbox{
		version:    1,
		recipient:  RecipientSymmetric,
		streamID:   streamID,
		nonce:      nonce,
		ciphertext: ciphertext,
	}
}

func (l Lockbox) Version() uint8                  { return l.version }
func (l Lockbox) Recipient() RecipientKind         { return l.recipient }
func (l Lockbox) SigningKey() [IdentitySize]byte   { return l.signingKey }
func (l Lockbox) EphemeralKey() [IdentitySize]byte { return l.ephemeralKey }
func (l Lockbox) StreamID() [StreamIdSize]byte     { return l.streamID }
func (l Lockbox) Nonce() [24]byte                  { return l.nonce }
func (l Lockbox) Ciphertext() []byte               { return l.ciphertext }

// PayloadLen returns the size of the sealed interior payload (ciphertext
// minus the trailing 16-byte Poly1305 tag), used by Lockbox validators'
// length bounds.
func (l Lockbox) PayloadLen() int {
	const tagSize = 16
	if len(l.ciphertext) < tagSize {
		return 0
	}

	return len(l.ciphertext) - tagSize
}

func (l Lockbox) String() string {
	return fmt.Sprintf("Lockbox(recipient=%d, payload=%d bytes)", l.recipient, l.PayloadLen())
}

// BareIdKey is an opaque cryptographic token. It appears in the ext type
// table but §9 leaves its layout undocumented beyond length; fog-pack
// treats it as an opaque byte string with length-only validation.
type BareIdKey struct {
	Data []byte
}
