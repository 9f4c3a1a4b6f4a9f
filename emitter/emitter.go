// Package emitter writes Elements as canonical fog-pack bytes. Every Write*
// method selects the unique shortest-form marker and length field for its
// argument — the emitter is the other half of the canonical-form law
// alongside the parser, and the two must never disagree about which
// encoding is "the" encoding for a value.
//
// A pooled internal/pool.ByteBuffer backs incremental Write methods, with a
// Finish/Bytes pair to retrieve the accumulated output.
package emitter

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/internal/pool"
	"github.com/fogpack/fogpack/marker"
	"github.com/fogpack/fogpack/xcodec"
)

// MaxDepth is the maximum nesting depth of Array/Map headers the emitter
// will accept, mirroring the parser's limit (§3: "Nesting depth ≤ 100").
const MaxDepth = 100

// Emitter accumulates canonical bytes for a sequence of Elements. It is not
// safe for concurrent use; callers needing concurrency should use one
// Emitter per goroutine.
type Emitter struct {
	buf   *pool.ByteBuffer
	depth []int // remaining-children stack, mirrors the parser.Parser depth stack
}

// New creates an Emitter backed by a pooled buffer.
func New() *Emitter {
	return &Emitter{buf: pool.GetElementBuffer()}
}

// Bytes returns the canonical bytes written so far. The returned slice is
// valid until the next Write call or Finish.
func (e *Emitter) Bytes() []byte { return e.buf.Bytes() }

// Len returns the number of bytes written so far.
func (e *Emitter) Len() int { return e.buf.Len() }

// Finish releases the Emitter's pooled buffer. The Emitter must not be used
// afterward.
func (e *Emitter) Finish() {
	pool.PutElementBuffer(e.buf)
	e.buf = nil
}

// Reset clears accumulated bytes and depth state, keeping the backing
// buffer for reuse.
func (e *Emitter) Reset() {
	e.buf.Reset()
	e.depth = e.depth[:0]
}

func (e *Emitter) pushChildren(n int) error {
	e.depth = append(e.depth, n)
	if len(e.depth) > MaxDepth {
		return fmt.Errorf("emitter: nesting depth exceeds %d", MaxDepth)
	}

	return nil
}

// decrementParent consumes one unit from the innermost open container, and
// pops any container whose children are now exhausted; popping a container
// counts it as one child of its own parent. It is called after every
// non-container element (and every empty container header) is written.
func (e *Emitter) decrementParent() error {
	for len(e.depth) > 0 {
		top := len(e.depth) - 1
		if e.depth[top] <= 0 {
			return fmt.Errorf("emitter: wrote more children than container header declared")
		}

		e.depth[top]--
		if e.depth[top] > 0 {
			return nil
		}

		e.depth = e.depth[:top]
	}

	return nil
}

func (e *Emitter) afterLeaf() error {
	if len(e.depth) == 0 {
		return nil
	}

	return e.decrementParent()
}

func (e *Emitter) writeByte(b byte) { e.buf.ExtendOrGrow(1); e.buf.B[e.buf.Len()-1] = b }

func (e *Emitter) writeBytes(b []byte) { e.buf.B = append(e.buf.B, b...) }

// WriteNull emits a Null element.
func (e *Emitter) WriteNull() error {
	e.writeByte(marker.Null)

	return e.afterLeaf()
}

// WriteBool emits a Bool element.
func (e *Emitter) WriteBool(v bool) error {
	if v {
		e.writeByte(marker.True)
	} else {
		e.writeByte(marker.False)
	}

	return e.afterLeaf()
}

// WriteInt emits an Int element, selecting the shortest-form marker per
// §4.1: positives never use a negative marker, and the width is the
// narrowest that fits.
func (e *Emitter) WriteInt(n element.Int) error {
	if !n.IsSigned() {
		v := n.AsUint64()
		m := marker.UintMarker(v)
		switch m {
		case 0:
			e.writeByte(byte(v))
		case marker.Uint8:
			e.writeByte(m)
			e.writeByte(byte(v))
		case marker.Uint16:
			e.writeByte(m)
			e.writeUint(uint64(v), 2)
		case marker.Uint32:
			e.writeByte(m)
			e.writeUint(uint64(v), 4)
		default:
			e.writeByte(m)
			e.writeUint(v, 8)
		}
	} else {
		v := n.AsInt64()
		m := marker.IntMarker(v)
		switch m {
		case 0:
			e.writeByte(byte(int8(v)))
		case marker.Int8:
			e.writeByte(m)
			e.writeByte(byte(int8(v)))
		case marker.Int16:
			e.writeByte(m)
			e.writeUint(uint64(uint16(int16(v))), 2)
		case marker.Int32:
			e.writeByte(m)
			e.writeUint(uint64(uint32(int32(v))), 4)
		default:
			e.writeByte(m)
			e.writeUint(uint64(v), 8)
		}
	}

	return e.afterLeaf()
}

func (e *Emitter) writeUint(v uint64, width int) {
	e.buf.ExtendOrGrow(width)
	dst := e.buf.B[e.buf.Len()-width:]
	switch width {
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(dst, v)
	}
}

// WriteF32 emits an F32 element.
func (e *Emitter) WriteF32(v float32) error {
	e.writeByte(marker.F32)
	e.writeUint(uint64(math.Float32bits(v)), 4)

	return e.afterLeaf()
}

// WriteF64 emits an F64 element.
func (e *Emitter) WriteF64(v float64) error {
	e.writeByte(marker.F64)
	e.writeUint(math.Float64bits(v), 8)

	return e.afterLeaf()
}

// WriteStr emits a Str element, rejecting invalid UTF-8.
func (e *Emitter) WriteStr(v string) error {
	if !utf8.ValidString(v) {
		return fmt.Errorf("emitter: string is not valid UTF-8")
	}

	n := len(v)
	m := marker.StrMarker(n)
	if m == 0 {
		e.writeByte(marker.FixStrMin | byte(n))
	} else {
		e.writeByte(m)
		e.writeLength(n, marker.LengthWidth(n))
	}

	e.writeBytes([]byte(v))

	return e.afterLeaf()
}

// WriteBin emits a Bin element.
func (e *Emitter) WriteBin(v []byte) error {
	n := len(v)
	m := marker.BinMarker(n)
	e.writeByte(m)
	e.writeLength(n, marker.LengthWidth(n))
	e.writeBytes(v)

	return e.afterLeaf()
}

func (e *Emitter) writeLength(n int, width int) {
	e.buf.ExtendOrGrow(width)
	dst := e.buf.B[e.buf.Len()-width:]

	switch width {
	case 1:
		dst[0] = byte(n)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(n))
	default:
		dst[0] = byte(n)
		dst[1] = byte(n >> 8)
		dst[2] = byte(n >> 16)
	}
}

// WriteArrayHeader emits an Array header of n elements and pushes n onto the
// depth tracker; the caller must subsequently write exactly n child
// elements.
func (e *Emitter) WriteArrayHeader(n int) error {
	m := marker.ArrayMarker(n)
	if m == 0 {
		e.writeByte(marker.FixArrayMin | byte(n))
	} else {
		e.writeByte(m)
		e.writeLength(n, marker.LengthWidth(n))
	}

	if n == 0 {
		return e.afterLeaf()
	}

	return e.pushChildren(n)
}

// WriteMapHeader emits a Map header of n pairs and pushes 2*n onto the depth
// tracker; the caller must subsequently write exactly n key/value pairs,
// with keys in strictly ascending UTF-8 byte order and no duplicates. The
// emitter does not itself check ordering — see parser's key-ordering note
// in §4.2; callers constructing canonical bytes from a Value tree are
// responsible for sorting keys before calling this method.
func (e *Emitter) WriteMapHeader(n int) error {
	m := marker.MapMarker(n)
	if m == 0 {
		e.writeByte(marker.FixMapMin | byte(n))
	} else {
		e.writeByte(m)
		e.writeLength(n, marker.LengthWidth(n))
	}

	if n == 0 {
		return e.afterLeaf()
	}

	return e.pushChildren(2 * n)
}

func (e *Emitter) writeExt(tag marker.ExtType, body []byte) error {
	m := marker.ExtMarker(len(body))
	e.writeByte(m)
	e.writeLength(len(body), marker.LengthWidth(len(body)))
	e.writeByte(byte(tag))
	e.writeBytes(body)

	return e.afterLeaf()
}

// WriteTimestamp emits a Timestamp ext element.
func (e *Emitter) WriteTimestamp(t xcodec.Timestamp) error {
	if err := t.Validate(); err != nil {
		return err
	}

	return e.writeExt(marker.ExtTimestamp, xcodec.EncodeTimestamp(t))
}

// WriteHash emits a Hash ext element.
func (e *Emitter) WriteHash(h xcodec.Hash) error {
	return e.writeExt(marker.ExtHash, xcodec.EncodeHash(h))
}

// WriteIdentity emits an Identity ext element.
func (e *Emitter) WriteIdentity(id xcodec.Identity) error {
	return e.writeExt(marker.ExtIdentity, xcodec.EncodeIdentity(id))
}

// WriteLockId emits a LockId ext element.
func (e *Emitter) WriteLockId(l xcodec.LockId) error {
	return e.writeExt(marker.ExtLockId, xcodec.EncodeLockId(l))
}

// WriteStreamId emits a StreamId ext element.
func (e *Emitter) WriteStreamId(s xcodec.StreamId) error {
	return e.writeExt(marker.ExtStreamId, xcodec.EncodeStreamId(s))
}

// WriteDataLockbox emits a DataLockbox ext element.
func (e *Emitter) WriteDataLockbox(l xcodec.Lockbox) error {
	return e.writeExt(marker.ExtDataLockbox, xcodec.EncodeLockbox(l))
}

// WriteIdentityLockbox emits an IdentityLockbox ext element.
func (e *Emitter) WriteIdentityLockbox(l xcodec.Lockbox) error {
	return e.writeExt(marker.ExtIdentityLockbox, xcodec.EncodeLockbox(l))
}

// WriteStreamLockbox emits a StreamLockbox ext element.
func (e *Emitter) WriteStreamLockbox(l xcodec.Lockbox) error {
	return e.writeExt(marker.ExtStreamLockbox, xcodec.EncodeLockbox(l))
}

// WriteLockLockbox emits a LockLockbox ext element.
func (e *Emitter) WriteLockLockbox(l xcodec.Lockbox) error {
	return e.writeExt(marker.ExtLockLockbox, xcodec.EncodeLockbox(l))
}

// WriteBareIdKey emits a BareIdKey ext element.
func (e *Emitter) WriteBareIdKey(k xcodec.BareIdKey) error {
	return e.writeExt(marker.ExtBareIdKey, xcodec.EncodeBareIdKey(k))
}

// WriteElement dispatches to the matching Write* method for el.Kind.
func (e *Emitter) WriteElement(el element.Element) error {
	switch el.Kind {
	case element.KindNull:
		return e.WriteNull()
	case element.KindBool:
		return e.WriteBool(el.Bool)
	case element.KindInt:
		return e.WriteInt(el.Int)
	case element.KindF32:
		return e.WriteF32(el.F32)
	case element.KindF64:
		return e.WriteF64(el.F64)
	case element.KindStr:
		return e.WriteStr(el.Str)
	case element.KindBin:
		return e.WriteBin(el.Bin)
	case element.KindArray:
		return e.WriteArrayHeader(el.Len)
	case element.KindMap:
		return e.WriteMapHeader(el.Len)
	case element.KindTimestamp:
		return e.WriteTimestamp(el.Time)
	case element.KindHash:
		return e.WriteHash(el.Hash)
	case element.KindIdentity:
		return e.WriteIdentity(el.Identity)
	case element.KindLockId:
		return e.WriteLockId(el.LockId)
	case element.KindStreamId:
		return e.WriteStreamId(el.StreamId)
	case element.KindDataLockbox:
		return e.WriteDataLockbox(el.DataLockbox)
	case element.KindIdentityLockbox:
		return e.WriteIdentityLockbox(el.IdentityLockbox)
	case element.KindStreamLockbox:
		return e.WriteStreamLockbox(el.StreamLockbox)
	case element.KindLockLockbox:
		return e.WriteLockLockbox(el.LockLockbox)
	case element.KindBareIdKey:
		return e.WriteBareIdKey(el.BareIdKey)
	default:
		return fmt.Errorf("emitter: unknown element kind %v", el.Kind)
	}
}
