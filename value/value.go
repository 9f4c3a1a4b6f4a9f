// Package value provides the owned (Value) and borrowed (ValueRef) tree
// forms of a decoded fog-pack document, the same owned/view split used
// elsewhere in this module between a type that owns nothing and views an
// encoded buffer versus one built up from it. Value fully owns its
// subtrees (including string/binary contents); ValueRef is the form Decode
// produces, and its string and binary contents are copies the parser made,
// so it does not reference the original input slice.
package value

import (
	"math"
	"sort"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/xcodec"
)

// Null is the shared value returned by Map/Array lookups that miss, per
// §4.3 ("a shared static NULL returned for missing keys").
var Null = Value{kind: element.KindNull}

// Value is an owned tree node. The zero Value is Null.
type Value struct {
	kind element.Kind

	b    bool
	i    element.Int
	f32  float32
	f64  float64
	str  string
	bin  []byte
	arr  []Value
	keys []string
	vals []Value

	ts   xcodec.Timestamp
	hash xcodec.Hash
	id   xcodec.Identity
	lkid xcodec.LockId
	stid xcodec.StreamId
	lbox xcodec.Lockbox
	bare xcodec.BareIdKey
}

// Kind returns the value's element kind.
func (v Value) Kind() element.Kind { return v.kind }

func NewNull() Value        { return Value{kind: element.KindNull} }
func NewBool(b bool) Value  { return Value{kind: element.KindBool, b: b} }
func NewInt(n element.Int) Value { return Value{kind: element.KindInt, i: n} }
func NewF32(f float32) Value { return Value{kind: element.KindF32, f32: f} }
func NewF64(f float64) Value { return Value{kind: element.KindF64, f64: f} }
func NewStr(s string) Value  { return Value{kind: element.KindStr, str: s} }
func NewBin(b []byte) Value  { return Value{kind: element.KindBin, bin: b} }

// NewArray wraps a slice of Values, taking ownership of the slice.
func NewArray(items []Value) Value { return Value{kind: element.KindArray, arr: items} }

// NewMap builds a Map value from keys/vals, sorting pairs into canonical
// (ascending UTF-8 byte order) key order. keys must not contain duplicates;
// callers constructing maps from validated documents can rely on the
// key-ordering checks of Decode and the validators instead and use
// NewMapSorted.
func NewMap(keys []string, vals []Value) Value {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })

	sortedKeys := make([]string, len(keys))
	sortedVals := make([]Value, len(vals))
	for i, j := range idx {
		sortedKeys[i] = keys[j]
		sortedVals[i] = vals[j]
	}

	return Value{kind: element.KindMap, keys: sortedKeys, vals: sortedVals}
}

// NewMapSorted wraps already-sorted, deduplicated key/value slices without
// re-sorting them.
func NewMapSorted(keys []string, vals []Value) Value {
	return Value{kind: element.KindMap, keys: keys, vals: vals}
}

func NewTimestamp(t xcodec.Timestamp) Value  { return Value{kind: element.KindTimestamp, ts: t} }
func NewHash(h xcodec.Hash) Value             { return Value{kind: element.KindHash, hash: h} }
func NewIdentity(id xcodec.Identity) Value    { return Value{kind: element.KindIdentity, id: id} }
func NewLockId(l xcodec.LockId) Value         { return Value{kind: element.KindLockId, lkid: l} }
func NewStreamId(s xcodec.StreamId) Value     { return Value{kind: element.KindStreamId, stid: s} }
func NewBareIdKey(k xcodec.BareIdKey) Value   { return Value{kind: element.KindBareIdKey, bare: k} }

func NewDataLockbox(l xcodec.Lockbox) Value {
	return Value{kind: element.KindDataLockbox, lbox: l}
}
func NewIdentityLockbox(l xcodec.Lockbox) Value {
	return Value{kind: element.KindIdentityLockbox, lbox: l}
}
func NewStreamLockbox(l xcodec.Lockbox) Value {
	return Value{kind: element.KindStreamLockbox, lbox: l}
}
func NewLockLockbox(l xcodec.Lockbox) Value {
	return Value{kind: element.KindLockLockbox, lbox: l}
}

// Bool, Int, F32, F64, Str, Bin, Timestamp, Hash, Identity, LockId,
// StreamId, Lockbox, and BareIdKey return the value's payload; each is the
// zero value unless Kind() matches.
func (v Value) Bool() bool                   { return v.b }
func (v Value) Int() element.Int             { return v.i }
func (v Value) F32() float32                 { return v.f32 }
func (v Value) F64() float64                 { return v.f64 }
func (v Value) Str() string                  { return v.str }
func (v Value) Bin() []byte                  { return v.bin }
func (v Value) Timestamp() xcodec.Timestamp { return v.ts }
func (v Value) Hash() xcodec.Hash            { return v.hash }
func (v Value) Identity() xcodec.Identity    { return v.id }
func (v Value) LockId() xcodec.LockId        { return v.lkid }
func (v Value) StreamId() xcodec.StreamId    { return v.stid }
func (v Value) Lockbox() xcodec.Lockbox      { return v.lbox }
func (v Value) BareIdKey() xcodec.BareIdKey  { return v.bare }

// Len returns the element count of an Array or the pair count of a Map, and
// 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case element.KindArray:
		return len(v.arr)
	case element.KindMap:
		return len(v.keys)
	default:
		return 0
	}
}

// Index returns the i-th element of an Array Value, or Null if out of
// bounds or v is not an Array.
func (v Value) Index(i int) Value {
	if v.kind != element.KindArray || i < 0 || i >= len(v.arr) {
		return Null
	}

	return v.arr[i]
}

// Items returns the backing slice of an Array Value (nil otherwise). The
// caller must not mutate the returned slice.
func (v Value) Items() []Value {
	if v.kind != element.KindArray {
		return nil
	}

	return v.arr
}

// Field looks up key in a Map Value using binary search over its sorted
// keys, returning Null if absent or v is not a Map.
func (v Value) Field(key string) Value {
	if v.kind != element.KindMap {
		return Null
	}

	i := sort.SearchStrings(v.keys, key)
	if i < len(v.keys) && v.keys[i] == key {
		return v.vals[i]
	}

	return Null
}

// Keys returns the Map's sorted key list (nil otherwise). The caller must
// not mutate the returned slice.
func (v Value) Keys() []string {
	if v.kind != element.KindMap {
		return nil
	}

	return v.keys
}

// Pairs invokes fn for every key/value pair of a Map Value, in ascending
// key order; it is a no-op for non-Map values.
func (v Value) Pairs(fn func(key string, val Value)) {
	if v.kind != element.KindMap {
		return
	}

	for i, k := range v.keys {
		fn(k, v.vals[i])
	}
}

// Encode writes v to e in canonical form, recursing through Array/Map
// children; e picks the shortest marker and length field for each node the
// same way it would for any other caller.
func (v Value) Encode(e *emitter.Emitter) error {
	switch v.kind {
	case element.KindNull:
		return e.WriteNull()
	case element.KindBool:
		return e.WriteBool(v.b)
	case element.KindInt:
		return e.WriteInt(v.i)
	case element.KindF32:
		return e.WriteF32(v.f32)
	case element.KindF64:
		return e.WriteF64(v.f64)
	case element.KindStr:
		return e.WriteStr(v.str)
	case element.KindBin:
		return e.WriteBin(v.bin)
	case element.KindArray:
		if err := e.WriteArrayHeader(len(v.arr)); err != nil {
			return err
		}
		for _, item := range v.arr {
			if err := item.Encode(e); err != nil {
				return err
			}
		}

		return nil
	case element.KindMap:
		if err := e.WriteMapHeader(len(v.keys)); err != nil {
			return err
		}
		for i, k := range v.keys {
			if err := e.WriteStr(k); err != nil {
				return err
			}
			if err := v.vals[i].Encode(e); err != nil {
				return err
			}
		}

		return nil
	case element.KindTimestamp:
		return e.WriteTimestamp(v.ts)
	case element.KindHash:
		return e.WriteHash(v.hash)
	case element.KindIdentity:
		return e.WriteIdentity(v.id)
	case element.KindLockId:
		return e.WriteLockId(v.lkid)
	case element.KindStreamId:
		return e.WriteStreamId(v.stid)
	case element.KindDataLockbox:
		return e.WriteDataLockbox(v.lbox)
	case element.KindIdentityLockbox:
		return e.WriteIdentityLockbox(v.lbox)
	case element.KindStreamLockbox:
		return e.WriteStreamLockbox(v.lbox)
	case element.KindLockLockbox:
		return e.WriteLockLockbox(v.lbox)
	case element.KindBareIdKey:
		return e.WriteBareIdKey(v.bare)
	default:
		return e.WriteNull()
	}
}

// Equal reports semantic equality: bit-exact float comparison, ordered-key
// map equality, and positional array equality, per §4.3.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case element.KindNull:
		return true
	case element.KindBool:
		return v.b == other.b
	case element.KindInt:
		return v.i.Equal(other.i)
	case element.KindF32:
		return math.Float32bits(v.f32) == math.Float32bits(other.f32)
	case element.KindF64:
		return math.Float64bits(v.f64) == math.Float64bits(other.f64)
	case element.KindStr:
		return v.str == other.str
	case element.KindBin:
		return string(v.bin) == string(other.bin)
	case element.KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	case element.KindMap:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for i := range v.keys {
			if v.keys[i] != other.keys[i] || !v.vals[i].Equal(other.vals[i]) {
				return false
			}
		}

		return true
	case element.KindTimestamp:
		return v.ts.Equal(other.ts)
	case element.KindHash:
		return v.hash.Equal(other.hash)
	case element.KindIdentity:
		return v.id.Equal(other.id)
	case element.KindLockId:
		return v.lkid.Equal(other.lkid)
	case element.KindStreamId:
		return v.stid.Equal(other.stid)
	case element.KindDataLockbox, element.KindIdentityLockbox, element.KindStreamLockbox, element.KindLockLockbox:
		return string(v.lbox.Ciphertext()) == string(other.lbox.Ciphertext()) && v.lbox.Nonce() == other.lbox.Nonce()
	case element.KindBareIdKey:
		return string(v.bare.Data) == string(other.bare.Data)
	default:
		return false
	}
}
