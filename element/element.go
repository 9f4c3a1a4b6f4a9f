// Package element defines the canonical codec's unit of work: a tagged
// Element variant plus the supporting Int and Timestamp value types. Arrays
// and Maps are headers only — their children follow as later elements in
// the stream, which is why Element carries a Len field for them instead of
// nested children.
package element

import (
	"fmt"

	"github.com/fogpack/fogpack/xcodec"
)

// Kind discriminates the variant an Element holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindF32
	KindF64
	KindStr
	KindBin
	KindArray
	KindMap
	KindTimestamp
	KindHash
	KindIdentity
	KindLockId
	KindStreamId
	KindDataLockbox
	KindIdentityLockbox
	KindStreamLockbox
	KindLockLockbox
	KindBareIdKey
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindF32:
		return "F32"
	case KindF64:
		return "F64"
	case KindStr:
		return "Str"
	case KindBin:
		return "Bin"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindTimestamp:
		return "Timestamp"
	case KindHash:
		return "Hash"
	case KindIdentity:
		return "Identity"
	case KindLockId:
		return "LockId"
	case KindStreamId:
		return "StreamId"
	case KindDataLockbox:
		return "DataLockbox"
	case KindIdentityLockbox:
		return "IdentityLockbox"
	case KindStreamLockbox:
		return "StreamLockbox"
	case KindLockLockbox:
		return "LockLockbox"
	case KindBareIdKey:
		return "BareIdKey"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsContainer reports whether the element is an Array or Map header, i.e.
// whether it introduces Len subsequent child elements (2*Len for a Map) in
// the stream rather than carrying a complete payload itself.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindMap
}

// Element is the parser's and emitter's unit of work: one decoded (or
// about-to-be-encoded) value from the canonical stream. Exactly one payload
// field is meaningful for a given Kind; the rest are zero.
type Element struct {
	Kind Kind

	Bool bool
	Int  Int
	F32  float32
	F64  float64
	Str  string
	Bin  []byte

	// Len is the child count for Array (Len elements follow) and Map (2*Len
	// elements follow, alternating key/value).
	Len int

	Time            xcodec.Timestamp
	Hash            xcodec.Hash
	Identity        xcodec.Identity
	LockId          xcodec.LockId
	StreamId        xcodec.StreamId
	DataLockbox     xcodec.Lockbox
	IdentityLockbox xcodec.Lockbox
	StreamLockbox   xcodec.Lockbox
	LockLockbox     xcodec.Lockbox
	BareIdKey       xcodec.BareIdKey
}

// Null is the shared Null element value.
var Null = Element{Kind: KindNull}

// NewBool wraps a boolean as an Element.
func NewBool(v bool) Element { return Element{Kind: KindBool, Bool: v} }

// NewUint wraps a non-negative integer as an Element.
func NewUint(v uint64) Element { return Element{Kind: KindInt, Int: Uint(v)} }

// NewInt wraps a signed integer as an Element. Non-negative values are
// normalized to the unsigned form (see Signed), so NewInt(5) and
// NewUint(5) produce equal Elements.
func NewInt(v int64) Element { return Element{Kind: KindInt, Int: Signed(v)} }

// NewF32 wraps a 32-bit float as an Element.
func NewF32(v float32) Element { return Element{Kind: KindF32, F32: v} }

// NewF64 wraps a 64-bit float as an Element.
func NewF64(v float64) Element { return Element{Kind: KindF64, F64: v} }

// NewStr wraps a UTF-8 string as an Element.
func NewStr(v string) Element { return Element{Kind: KindStr, Str: v} }

// NewBin wraps a byte slice as an Element.
func NewBin(v []byte) Element { return Element{Kind: KindBin, Bin: v} }

// NewArray returns an Array header element announcing n child elements.
func NewArray(n int) Element { return Element{Kind: KindArray, Len: n} }

// NewMap returns a Map header element announcing n key/value pairs (2*n
// subsequent elements).
func NewMap(n int) Element { return Element{Kind: KindMap, Len: n} }

// NewTimestamp wraps a Timestamp as an Element.
func NewTimestamp(t xcodec.Timestamp) Element { return Element{Kind: KindTimestamp, Time: t} }

// NewHash wraps a Hash as an Element.
func NewHash(h xcodec.Hash) Element { return Element{Kind: KindHash, Hash: h} }

// NewIdentity wraps an Identity as an Element.
func NewIdentity(id xcodec.Identity) Element { return Element{Kind: KindIdentity, Identity: id} }

// NewLockId wraps a LockId as an Element.
func NewLockId(l xcodec.LockId) Element { return Element{Kind: KindLockId, LockId: l} }

// NewStreamId wraps a StreamId as an Element.
func NewStreamId(s xcodec.StreamId) Element { return Element{Kind: KindStreamId, StreamId: s} }

// NewDataLockbox wraps a lockbox as a DataLockbox Element.
func NewDataLockbox(l xcodec.Lockbox) Element { return Element{Kind: KindDataLockbox, DataLockbox: l} }

// NewIdentityLockbox wraps a lockbox as an IdentityLockbox Element.
func NewIdentityLockbox(l xcodec.Lockbox) Element {
	return Element{Kind: KindIdentityLockbox, IdentityLockbox: l}
}

// NewStreamLockbox wraps a lockbox as a StreamLockbox Element.
func NewStreamLockbox(l xcodec.Lockbox) Element {
	return Element{Kind: KindStreamLockbox, StreamLockbox: l}
}

// NewLockLockbox wraps a lockbox as a LockLockbox Element.
func NewLockLockbox(l xcodec.Lockbox) Element {
	return Element{Kind: KindLockLockbox, LockLockbox: l}
}

// NewBareIdKey wraps an opaque BareIdKey as an Element.
func NewBareIdKey(k xcodec.BareIdKey) Element { return Element{Kind: KindBareIdKey, BareIdKey: k} }
