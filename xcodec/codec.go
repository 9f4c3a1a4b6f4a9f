package xcodec

import (
	"encoding/binary"
	"fmt"

	"github.com/fogpack/fogpack/marker"
)

// EncodeHash returns the ext payload body for h (everything after the type
// tag byte): a single version byte for the self-reference marker, or the
// version byte followed by the 32-byte digest for a real hash.
func EncodeHash(h Hash) []byte {
	if h.IsSelf() {
		return []byte{0}
	}

	out := make([]byte, 1+HashSize)
	out[0] = 1
	copy(out[1:], h.digest[:])

	return out
}

// DecodeHash parses a Hash ext payload body, rejecting any version other
// than 0 or 1 and any length that does not match that version's layout.
func DecodeHash(body []byte) (Hash, error) {
	if len(body) == 0 {
		return Hash{}, fmt.Errorf("xcodec: empty hash payload")
	}

	switch body[0] {
	case 0:
		if len(body) != 1 {
			return Hash{}, fmt.Errorf("xcodec: hash v0 must be exactly 1 byte, got %d", len(body))
		}

		return NoHash, nil
	case 1:
		if len(body) != 1+HashSize {
			return Hash{}, fmt.Errorf("xcodec: hash v1 must be %d bytes, got %d", 1+HashSize, len(body))
		}

		var digest [HashSize]byte
		copy(digest[:], body[1:])

		return NewHash(digest), nil
	default:
		return Hash{}, fmt.Errorf("xcodec: unrecognized hash version %d", body[0])
	}
}

// EncodeIdentity returns the ext payload body for id.
func EncodeIdentity(id Identity) []byte {
	out := make([]byte, 1+IdentitySize)
	out[0] = 1
	copy(out[1:], id.key[:])

	return out
}

// DecodeIdentity parses an Identity ext payload body.
func DecodeIdentity(body []byte) (Identity, error) {
	if len(body) != 1+IdentitySize || body[0] != 1 {
		return Identity{}, fmt.Errorf("xcodec: malformed identity payload (len=%d, ver=%v)", len(body), firstByte(body))
	}

	var key [IdentitySize]byte
	copy(key[:], body[1:])

	return NewIdentity(key), nil
}

// EncodeLockId returns the ext payload body for l.
func EncodeLockId(l LockId) []byte {
	out := make([]byte, 1+IdentitySize)
	out[0] = 1
	copy(out[1:], l.key[:])

	return out
}

// DecodeLockId parses a LockId ext payload body.
func DecodeLockId(body []byte) (LockId, error) {
	if len(body) != 1+IdentitySize || body[0] != 1 {
		return LockId{}, fmt.Errorf("xcodec: malformed lock id payload (len=%d, ver=%v)", len(body), firstByte(body))
	}

	var key [IdentitySize]byte
	copy(key[:], body[1:])

	return NewLockId(key), nil
}

// EncodeStreamId returns the ext payload body for s.
func EncodeStreamId(s StreamId) []byte {
	out := make([]byte, 1+StreamIdSize)
	out[0] = 1
	copy(out[1:], s.key[:])

	return out
}

// DecodeStreamId parses a StreamId ext payload body.
func DecodeStreamId(body []byte) (StreamId, error) {
	if len(body) != 1+StreamIdSize || body[0] != 1 {
		return StreamId{}, fmt.Errorf("xcodec: malformed stream id payload (len=%d, ver=%v)", len(body), firstByte(body))
	}

	var key [StreamIdSize]byte
	copy(key[:], body[1:])

	return NewStreamId(key), nil
}

// EncodeLockbox returns the ext payload body for a lockbox, following the
// recipient-specific layout of §6.
func EncodeLockbox(l Lockbox) []byte {
	switch l.recipient {
	case RecipientPublicKey:
		out := make([]byte, 0, 2+IdentitySize*2+24+len(l.ciphertext))
		out = append(out, l.version, byte(RecipientPublicKey))
		out = append(out, l.signingKey[:]...)
		out = append(out, l.ephemeralKey[:]...)
		out = append(out, l.nonce[:]...)
		out = append(out, l.ciphertext...)

		return out
	case RecipientSymmetric:
		out := make([]byte, 0, 2+StreamIdSize+24+len(l.ciphertext))
		out = append(out, l.version, byte(RecipientSymmetric))
		out = append(out, l.streamID[:]...)
		out = append(out, l.nonce[:]...)
		out = append(out, l.ciphertext...)

		return out
	default:
		return nil
	}
}

// DecodeLockbox parses a lockbox ext payload body.
func DecodeLockbox(body []byte) (Lockbox, error) {
	if len(body) < 2 {
		return Lockbox{}, fmt.Errorf("xcodec: lockbox payload too short")
	}

	version, recipient := body[0], RecipientKind(body[1])
	if version != 1 {
		return Lockbox{}, fmt.Errorf("xcodec: unrecognized lockbox version %d", version)
	}

	rest := body[2:]

	switch recipient {
	case RecipientPublicKey:
		const headerLen = IdentitySize*2 + 24
		if len(rest) < headerLen {
			return Lockbox{}, fmt.Errorf("xcodec: public-key lockbox payload too short")
		}

		var signingKey, ephemeralKey [IdentitySize]byte
		var nonce [24]byte
		copy(signingKey[:], rest[:IdentitySize])
		copy(ephemeralKey[:], rest[IdentitySize:2*IdentitySize])
		copy(nonce[:], rest[2*IdentitySize:headerLen])
		ciphertext := append([]byte(nil), rest[headerLen:]...)

		return NewPublicKeyLockbox(signingKey, ephemeralKey, nonce, ciphertext), nil
	case RecipientSymmetric:
		const headerLen = StreamIdSize + 24
		if len(rest) < headerLen {
			return Lockbox{}, fmt.Errorf("xcodec: symmetric lockbox payload too short")
		}

		var streamID [StreamIdSize]byte
		var nonce [24]byte
		copy(streamID[:], rest[:StreamIdSize])
		copy(nonce[:], rest[StreamIdSize:headerLen])
		ciphertext := append([]byte(nil), rest[headerLen:]...)

		return NewSymmetricLockbox(streamID, nonce, ciphertext), nil
	default:
		return Lockbox{}, fmt.Errorf("xcodec: unrecognized lockbox recipient kind %d", recipient)
	}
}

// EncodeTimestamp returns the ext payload body for t, choosing the 5/9/13
// byte layout per Timestamp.WireSize.
func EncodeTimestamp(t Timestamp) []byte {
	switch t.WireSize() {
	case 5:
		out := make([]byte, 5)
		out[0] = 0
		binary.LittleEndian.PutUint32(out[1:], uint32(t.Seconds))

		return out
	case 9:
		out := make([]byte, 9)
		out[0] = 0
		binary.LittleEndian.PutUint64(out[1:], uint64(t.Seconds))

		return out
	default:
		out := make([]byte, 13)
		out[0] = 0
		binary.LittleEndian.PutUint64(out[1:9], uint64(t.Seconds))
		binary.LittleEndian.PutUint32(out[9:13], t.Nanos)

		return out
	}
}

// DecodeTimestamp parses a Timestamp ext payload body, enforcing that the
// length matches one of the three legal shortest forms and that the
// standard byte is zero.
func DecodeTimestamp(body []byte) (Timestamp, error) {
	if len(body) == 0 || body[0] != 0 {
		return Timestamp{}, fmt.Errorf("xcodec: bad timestamp standard byte")
	}

	switch len(body) {
	case 5:
		seconds := binary.LittleEndian.Uint32(body[1:5])

		return FromUnix(int64(seconds), 0), nil
	case 9:
		seconds := binary.LittleEndian.Uint64(body[1:9])

		return FromUnix(int64(seconds), 0), nil
	case 13:
		seconds := binary.LittleEndian.Uint64(body[1:9])
		nanos := binary.LittleEndian.Uint32(body[9:13])
		ts := FromUnix(int64(seconds), nanos)
		if err := ts.Validate(); err != nil {
			return Timestamp{}, err
		}

		return ts, nil
	default:
		return Timestamp{}, fmt.Errorf("xcodec: bad timestamp payload length %d", len(body))
	}
}

// EncodeBareIdKey returns the ext payload body for an opaque BareIdKey.
func EncodeBareIdKey(k BareIdKey) []byte {
	return k.Data
}

// DecodeBareIdKey wraps the raw payload bytes as an opaque BareIdKey.
func DecodeBareIdKey(body []byte) (BareIdKey, error) {
	return BareIdKey{Data: append([]byte(nil), body...)}, nil
}

// Decode dispatches on the ext type tag and returns the decoded value as an
// `any`, boxed by the caller into the matching element.Element field.
// Unknown tags are rejected before this function is ever reached by the
// parser (see parser.readExt); Decode itself still validates defensively.
func Decode(t marker.ExtType, body []byte) (any, error) {
	switch t {
	case marker.ExtTimestamp:
		return DecodeTimestamp(body)
	case marker.ExtHash:
		return DecodeHash(body)
	case marker.ExtIdentity:
		return DecodeIdentity(body)
	case marker.ExtLockId:
		return DecodeLockId(body)
	case marker.ExtStreamId:
		return DecodeStreamId(body)
	case marker.ExtDataLockbox, marker.ExtIdentityLockbox, marker.ExtStreamLockbox, marker.ExtLockLockbox:
		return DecodeLockbox(body)
	case marker.ExtBareIdKey:
		return DecodeBareIdKey(body)
	default:
		return nil, fmt.Errorf("xcodec: unknown ext type %d", t)
	}
}

func firstByte(b []byte) int {
	if len(b) == 0 {
		return -1
	}

	return int(b[0])
}
