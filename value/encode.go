package value

import (
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/emitter"
)

// Encode writes v (and its whole subtree) to e as canonical bytes. Because
// Value's Map form is always constructed pre-sorted (NewMap sorts; decoded
// Maps are already ordered by Decode's key-ordering check), Encode never
// needs to re-sort — it only needs to write keys in the order already
// stored.
func Encode(e *emitter.Emitter, v Value) error {
	switch v.Kind() {
	case element.KindArray:
		if err := e.WriteArrayHeader(len(v.arr)); err != nil {
			return err
		}
		for _, item := range v.arr {
			if err := Encode(e, item); err != nil {
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
			if err := Encode(e, v.vals[i]); err != nil {
				return err
			}
		}

		return nil
	default:
		return e.WriteElement(leafElement(v))
	}
}

func leafElement(v Value) element.Element {
	switch v.Kind() {
	case element.KindNull:
		return element.Null
	case element.KindBool:
		return element.NewBool(v.b)
	case element.KindInt:
		return element.Element{Kind: element.KindInt, Int: v.i}
	case element.KindF32:
		return element.NewF32(v.f32)
	case element.KindF64:
		return element.NewF64(v.f64)
	case element.KindStr:
		return element.NewStr(v.str)
	case element.KindBin:
		return element.NewBin(v.bin)
	case element.KindTimestamp:
		return element.NewTimestamp(v.ts)
	case element.KindHash:
		return element.NewHash(v.hash)
	case element.KindIdentity:
		return element.NewIdentity(v.id)
	case element.KindLockId:
		return element.NewLockId(v.lkid)
	case element.KindStreamId:
		return element.NewStreamId(v.stid)
	case element.KindDataLockbox:
		return element.NewDataLockbox(v.lbox)
	case element.KindIdentityLockbox:
		return element.NewIdentityLockbox(v.lbox)
	case element.KindStreamLockbox:
		return element.NewStreamLockbox(v.lbox)
	case element.KindLockLockbox:
		return element.NewLockLockbox(v.lbox)
	case element.KindBareIdKey:
		return element.NewBareIdKey(v.bare)
	default:
		return element.Null
	}
}
