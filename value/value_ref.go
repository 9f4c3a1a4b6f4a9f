package value

import (
	"sort"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
	"github.com/fogpack/fogpack/xcodec"
)

// ValueRef is the decoded counterpart to Value. Its Str and Bin payloads
// are copies the parser made while decoding; they do not alias the
// Parser's input buffer, so decoding allocates once per string and binary
// payload and a ValueRef does not reference the byte slice it was parsed
// from.
type ValueRef struct {
	kind element.Kind

	b    bool
	i    element.Int
	f32  float32
	f64  float64
	str  string // copied out of the source bytes by the parser
	bin  []byte // copied out of the source bytes by the parser
	arr  []ValueRef
	keys []string
	vals []ValueRef

	ts   xcodec.Timestamp
	hash xcodec.Hash
	id   xcodec.Identity
	lkid xcodec.LockId
	stid xcodec.StreamId
	lbox xcodec.Lockbox
	bare xcodec.BareIdKey
}

// NullRef is the shared ValueRef returned for missing Map/Array lookups.
var NullRef = ValueRef{kind: element.KindNull}

func (v ValueRef) Kind() element.Kind          { return v.kind }
func (v ValueRef) Bool() bool                  { return v.b }
func (v ValueRef) Int() element.Int            { return v.i }
func (v ValueRef) F32() float32                { return v.f32 }
func (v ValueRef) F64() float64                { return v.f64 }
func (v ValueRef) Str() string                 { return v.str }
func (v ValueRef) Bin() []byte                 { return v.bin }
func (v ValueRef) Timestamp() xcodec.Timestamp { return v.ts }
func (v ValueRef) Hash() xcodec.Hash           { return v.hash }
func (v ValueRef) Identity() xcodec.Identity   { return v.id }
func (v ValueRef) LockId() xcodec.LockId       { return v.lkid }
func (v ValueRef) StreamId() xcodec.StreamId   { return v.stid }
func (v ValueRef) Lockbox() xcodec.Lockbox     { return v.lbox }
func (v ValueRef) BareIdKey() xcodec.BareIdKey { return v.bare }

func (v ValueRef) Len() int {
	switch v.kind {
	case element.KindArray:
		return len(v.arr)
	case element.KindMap:
		return len(v.keys)
	default:
		return 0
	}
}

func (v ValueRef) Index(i int) ValueRef {
	if v.kind != element.KindArray || i < 0 || i >= len(v.arr) {
		return NullRef
	}

	return v.arr[i]
}

func (v ValueRef) Items() []ValueRef {
	if v.kind != element.KindArray {
		return nil
	}

	return v.arr
}

func (v ValueRef) Field(key string) ValueRef {
	if v.kind != element.KindMap {
		return NullRef
	}

	i := sort.SearchStrings(v.keys, key)
	if i < len(v.keys) && v.keys[i] == key {
		return v.vals[i]
	}

	return NullRef
}

func (v ValueRef) Keys() []string {
	if v.kind != element.KindMap {
		return nil
	}

	return v.keys
}

// ToOwned converts v (and its whole subtree) into an independent Value that
// no longer references the source buffer.
func (v ValueRef) ToOwned() Value {
	switch v.kind {
	case element.KindNull:
		return NewNull()
	case element.KindBool:
		return NewBool(v.b)
	case element.KindInt:
		return NewInt(v.i)
	case element.KindF32:
		return NewF32(v.f32)
	case element.KindF64:
		return NewF64(v.f64)
	case element.KindStr:
		return NewStr(v.str)
	case element.KindBin:
		return NewBin(append([]byte(nil), v.bin...))
	case element.KindArray:
		items := make([]Value, len(v.arr))
		for i, c := range v.arr {
			items[i] = c.ToOwned()
		}

		return NewArray(items)
	case element.KindMap:
		keys := append([]string(nil), v.keys...)
		vals := make([]Value, len(v.vals))
		for i, c := range v.vals {
			vals[i] = c.ToOwned()
		}

		return NewMapSorted(keys, vals)
	case element.KindTimestamp:
		return NewTimestamp(v.ts)
	case element.KindHash:
		return NewHash(v.hash)
	case element.KindIdentity:
		return NewIdentity(v.id)
	case element.KindLockId:
		return NewLockId(v.lkid)
	case element.KindStreamId:
		return NewStreamId(v.stid)
	case element.KindDataLockbox:
		return NewDataLockbox(v.lbox)
	case element.KindIdentityLockbox:
		return NewIdentityLockbox(v.lbox)
	case element.KindStreamLockbox:
		return NewStreamLockbox(v.lbox)
	case element.KindLockLockbox:
		return NewLockLockbox(v.lbox)
	case element.KindBareIdKey:
		return NewBareIdKey(v.bare)
	default:
		return Null
	}
}

// FromOwned converts a Value into a ValueRef that shares its (already
// owned) backing slices. Conversion Value <-> ValueRef is total per §4.3.
func FromOwned(v Value) ValueRef {
	switch v.Kind() {
	case element.KindArray:
		items := v.Items()
		out := make([]ValueRef, len(items))
		for i, c := range items {
			out[i] = FromOwned(c)
		}

		return ValueRef{kind: element.KindArray, arr: out}
	case element.KindMap:
		keys := v.Keys()
		vals := make([]ValueRef, len(keys))
		for i, k := range keys {
			vals[i] = FromOwned(v.Field(k))
		}

		return ValueRef{kind: element.KindMap, keys: keys, vals: vals}
	default:
		return ValueRef{
			kind: v.Kind(), b: v.Bool(), i: v.Int(), f32: v.F32(), f64: v.F64(),
			str: v.Str(), bin: v.Bin(), ts: v.Timestamp(), hash: v.Hash(),
			id: v.Identity(), lkid: v.LockId(), stid: v.StreamId(),
			lbox: derefLockbox(v), bare: v.BareIdKey(),
		}
	}
}

func derefLockbox(v Value) xcodec.Lockbox {
	switch v.Kind() {
	case element.KindDataLockbox, element.KindIdentityLockbox, element.KindStreamLockbox, element.KindLockLockbox:
		return v.Lockbox()
	default:
		return xcodec.Lockbox{}
	}
}

// Decode parses one complete value (and, for containers, every descendant)
// from p into a ValueRef tree, enforcing the map key-ordering invariant
// that the parser itself does not check (§4.2): every Map encountered here
// has its keys read and compared by Decode, not skipped.
func Decode(p *parser.Parser) (ValueRef, error) {
	el, err := p.Next()
	if err != nil {
		return ValueRef{}, err
	}

	return decodeFrom(p, el)
}

func decodeFrom(p *parser.Parser, el element.Element) (ValueRef, error) {
	switch el.Kind {
	case element.KindArray:
		items := make([]ValueRef, el.Len)
		for i := range items {
			child, err := Decode(p)
			if err != nil {
				return ValueRef{}, err
			}
			items[i] = child
		}

		return ValueRef{kind: element.KindArray, arr: items}, nil
	case element.KindMap:
		keys := make([]string, el.Len)
		vals := make([]ValueRef, el.Len)
		prev := ""
		for i := 0; i < el.Len; i++ {
			keyEl, err := p.Next()
			if err != nil {
				return ValueRef{}, err
			}
			if keyEl.Kind != element.KindStr {
				return ValueRef{}, errNonStringKey
			}
			if i > 0 && keyEl.Str <= prev {
				return ValueRef{}, errUnorderedKeys
			}
			prev = keyEl.Str
			keys[i] = keyEl.Str

			val, err := Decode(p)
			if err != nil {
				return ValueRef{}, err
			}
			vals[i] = val
		}

		return ValueRef{kind: element.KindMap, keys: keys, vals: vals}, nil
	default:
		return leafFromElement(el), nil
	}
}

func leafFromElement(el element.Element) ValueRef {
	switch el.Kind {
	case element.KindNull:
		return NullRef
	case element.KindBool:
		return ValueRef{kind: element.KindBool, b: el.Bool}
	case element.KindInt:
		return ValueRef{kind: element.KindInt, i: el.Int}
	case element.KindF32:
		return ValueRef{kind: element.KindF32, f32: el.F32}
	case element.KindF64:
		return ValueRef{kind: element.KindF64, f64: el.F64}
	case element.KindStr:
		return ValueRef{kind: element.KindStr, str: el.Str}
	case element.KindBin:
		return ValueRef{kind: element.KindBin, bin: el.Bin}
	case element.KindTimestamp:
		return ValueRef{kind: element.KindTimestamp, ts: el.Time}
	case element.KindHash:
		return ValueRef{kind: element.KindHash, hash: el.Hash}
	case element.KindIdentity:
		return ValueRef{kind: element.KindIdentity, id: el.Identity}
	case element.KindLockId:
		return ValueRef{kind: element.KindLockId, lkid: el.LockId}
	case element.KindStreamId:
		return ValueRef{kind: element.KindStreamId, stid: el.StreamId}
	case element.KindDataLockbox:
		return ValueRef{kind: element.KindDataLockbox, lbox: el.DataLockbox}
	case element.KindIdentityLockbox:
		return ValueRef{kind: element.KindIdentityLockbox, lbox: el.IdentityLockbox}
	case element.KindStreamLockbox:
		return ValueRef{kind: element.KindStreamLockbox, lbox: el.StreamLockbox}
	case element.KindLockLockbox:
		return ValueRef{kind: element.KindLockLockbox, lbox: el.LockLockbox}
	case element.KindBareIdKey:
		return ValueRef{kind: element.KindBareIdKey, bare: el.BareIdKey}
	default:
		return NullRef
	}
}
