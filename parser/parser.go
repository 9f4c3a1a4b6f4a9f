// Package parser implements the lazy element iterator over a canonical byte
// slice: depth tracking, shortest-form verification, and ext-type dispatch.
// It follows the same streaming-decoder shape as this module's other
// binary decoders — a cursor over a byte slice with a Next-style advancing
// method — generalized to a self-describing, recursively nested element
// stream instead of a fixed columnar layout.
package parser

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/marker"
	"github.com/fogpack/fogpack/xcodec"
)

// MaxDepth is the maximum container nesting depth a Parser accepts (§3).
const MaxDepth = 100

// ErrDone is returned by Next once the input is exhausted.
var ErrDone = errors.New("parser: no more elements")

// Parser is a single-threaded, synchronous, lazy iterator over canonical
// bytes. Once any error occurs it latches into a sticky failed state and
// returns that same error for every subsequent Next call (§4.2).
type Parser struct {
	data  []byte
	pos   int
	depth []int
	err   error
}

// New creates a Parser over data. data is not copied; it must outlive the
// Parser and any ValueRef derived from it.
func New(data []byte) *Parser {
	return &Parser{data: data}
}

// Pos returns the current byte offset into the input.
func (p *Parser) Pos() int { return p.pos }

// Remaining returns the unconsumed tail of the input.
func (p *Parser) Remaining() []byte { return p.data[p.pos:] }

// Err returns the sticky error, if the parser has latched into a failed
// state.
func (p *Parser) Err() error { return p.err }

// Clone returns an independent Parser positioned identically to p, sharing
// the same backing slice. Used by validators that need speculative lookahead
// (Array.contains, Multi) without disturbing the caller's cursor.
func (p *Parser) Clone() *Parser {
	c := &Parser{data: p.data, pos: p.pos, err: p.err}
	c.depth = append(c.depth[:0:0], p.depth...)

	return c
}

func (p *Parser) fail(err error) error {
	if p.err == nil {
		p.err = err
	}

	return p.err
}

func (p *Parser) need(n int) error {
	if p.pos+n > len(p.data) {
		return fmt.Errorf("parser: truncated input: need %d bytes at offset %d, have %d", n, p.pos, len(p.data)-p.pos)
	}

	return nil
}

// pushChildren registers a new container frame expecting n subsequent
// elements (2*n for a map), mirroring the emitter's depth tracker exactly:
// the header counts as one child of its parent frame once its own frame is
// exhausted and popped, and an empty container counts immediately.
func (p *Parser) pushChildren(n int) error {
	if n == 0 {
		return p.decrementParent()
	}

	p.depth = append(p.depth, n)
	if len(p.depth) > MaxDepth {
		return fmt.Errorf("parser: nesting depth exceeds %d", MaxDepth)
	}

	return nil
}

func (p *Parser) decrementParent() error {
	for len(p.depth) > 0 {
		top := len(p.depth) - 1
		p.depth[top]--
		if p.depth[top] > 0 {
			return nil
		}

		p.depth = p.depth[:top]
	}

	return nil
}

// Next decodes and returns the next Element from the stream, advancing the
// cursor past it. For Array/Map headers, the header itself is returned
// immediately; the Len subsequent (or 2*Len for Map) child elements are
// retrieved by further Next calls. Next enforces shortest-form encoding on
// every integer, length, and ext header, and UTF-8 validity on every
// string.
func (p *Parser) Next() (element.Element, error) {
	if p.err != nil {
		return element.Element{}, p.err
	}

	el, err := p.next()
	if err != nil {
		return element.Element{}, p.fail(err)
	}

	if el.Kind.IsContainer() {
		if err := p.pushChildren(childCount(el)); err != nil {
			return element.Element{}, p.fail(err)
		}
	} else if err := p.decrementParent(); err != nil {
		return element.Element{}, p.fail(err)
	}

	return el, nil
}

func childCount(el element.Element) int {
	if el.Kind == element.KindMap {
		return 2 * el.Len
	}

	return el.Len
}

func (p *Parser) next() (element.Element, error) {
	if err := p.need(1); err != nil {
		return element.Element{}, err
	}

	b := p.data[p.pos]
	p.pos++

	switch {
	case b <= marker.PosFixIntMax:
		return element.NewUint(uint64(b)), nil
	case b >= marker.NegFixIntMin:
		return element.NewInt(int64(int8(b))), nil
	case b >= marker.FixMapMin && b <= marker.FixMapMax:
		return element.NewMap(int(b & 0x0f)), nil
	case b >= marker.FixArrayMin && b <= marker.FixArrayMax:
		return element.NewArray(int(b & 0x0f)), nil
	case b >= marker.FixStrMin && b <= marker.FixStrMax:
		n := int(b & 0x1f)

		return p.readStrBody(n)
	}

	switch b {
	case marker.Null:
		return element.Null, nil
	case marker.Invalid, marker.Reserved1, marker.Reserved2, marker.Reserved3:
		return element.Element{}, fmt.Errorf("parser: reserved marker 0x%02x", b)
	case marker.False:
		return element.NewBool(false), nil
	case marker.True:
		return element.NewBool(true), nil
	case marker.Bin8, marker.Bin16, marker.Bin24:
		return p.readBin(b)
	case marker.Ext8, marker.Ext16, marker.Ext24:
		return p.readExt(b)
	case marker.F32:
		return p.readF32()
	case marker.F64:
		return p.readF64()
	case marker.Uint8, marker.Uint16, marker.Uint32, marker.Uint64:
		return p.readUint(b)
	case marker.Int8, marker.Int16, marker.Int32, marker.Int64:
		return p.readInt(b)
	case marker.Str8, marker.Str16, marker.Str24:
		return p.readStr(b)
	case marker.Array8, marker.Array16, marker.Array24:
		n, err := p.readLength(b, marker.Array8)
		if err != nil {
			return element.Element{}, err
		}
		if n <= marker.MaxFixArrayLen {
			return element.Element{}, fmt.Errorf("parser: not shortest encoding: array length %d should use fixarray", n)
		}

		return element.NewArray(n), nil
	case marker.Map8, marker.Map16, marker.Map24:
		n, err := p.readLength(b, marker.Map8)
		if err != nil {
			return element.Element{}, err
		}
		if n <= marker.MaxFixMapLen {
			return element.Element{}, fmt.Errorf("parser: not shortest encoding: map length %d should use fixmap", n)
		}

		return element.NewMap(n), nil
	default:
		return element.Element{}, fmt.Errorf("parser: unhandled marker 0x%02x", b)
	}
}

// readLength reads the 1/2/3-byte little-endian length field following a
// markerBase+{0,1,2} family marker (e.g. Array8/16/24) and enforces
// shortest-form: the decoded length must not fit in a narrower sibling of
// the same family.
func (p *Parser) readLength(b, base byte) (int, error) {
	width := int(b-base) + 1
	if err := p.need(width); err != nil {
		return 0, err
	}

	var n int
	switch width {
	case 1:
		n = int(p.data[p.pos])
	case 2:
		n = int(binary.LittleEndian.Uint16(p.data[p.pos:]))
	case 3:
		n = int(p.data[p.pos]) | int(p.data[p.pos+1])<<8 | int(p.data[p.pos+2])<<16
	}
	p.pos += width

	if marker.LengthWidth(n) < width {
		return 0, fmt.Errorf("parser: not shortest encoding: length %d encoded with %d-byte field", n, width)
	}

	return n, nil
}

func (p *Parser) readStr(b byte) (element.Element, error) {
	n, err := p.readLength(b, marker.Str8)
	if err != nil {
		return element.Element{}, err
	}
	if n <= marker.MaxFixStrLen {
		return element.Element{}, fmt.Errorf("parser: not shortest encoding: str length %d should use fixstr", n)
	}

	return p.readStrBody(n)
}

func (p *Parser) readStrBody(n int) (element.Element, error) {
	if err := p.need(n); err != nil {
		return element.Element{}, err
	}

	raw := p.data[p.pos : p.pos+n]
	p.pos += n

	if !utf8.Valid(raw) {
		return element.Element{}, fmt.Errorf("parser: invalid UTF-8 in string")
	}

	return element.NewStr(string(raw)), nil
}

func (p *Parser) readBin(b byte) (element.Element, error) {
	n, err := p.readLength(b, marker.Bin8)
	if err != nil {
		return element.Element{}, err
	}

	if err := p.need(n); err != nil {
		return element.Element{}, err
	}

	raw := append([]byte(nil), p.data[p.pos:p.pos+n]...)
	p.pos += n

	return element.NewBin(raw), nil
}

func (p *Parser) readUint(b byte) (element.Element, error) {
	var width int
	switch b {
	case marker.Uint8:
		width = 1
	case marker.Uint16:
		width = 2
	case marker.Uint32:
		width = 4
	default:
		width = 8
	}

	if err := p.need(width); err != nil {
		return element.Element{}, err
	}

	var v uint64
	switch width {
	case 1:
		v = uint64(p.data[p.pos])
	case 2:
		v = uint64(binary.LittleEndian.Uint16(p.data[p.pos:]))
	case 4:
		v = uint64(binary.LittleEndian.Uint32(p.data[p.pos:]))
	case 8:
		v = binary.LittleEndian.Uint64(p.data[p.pos:])
	}
	p.pos += width

	if marker.UintMarker(v) != b {
		return element.Element{}, fmt.Errorf("parser: not shortest encoding: uint %d encoded as 0x%02x", v, b)
	}

	return element.NewUint(v), nil
}

func (p *Parser) readInt(b byte) (element.Element, error) {
	var width int
	switch b {
	case marker.Int8:
		width = 1
	case marker.Int16:
		width = 2
	case marker.Int32:
		width = 4
	default:
		width = 8
	}

	if err := p.need(width); err != nil {
		return element.Element{}, err
	}

	var v int64
	switch width {
	case 1:
		v = int64(int8(p.data[p.pos]))
	case 2:
		v = int64(int16(binary.LittleEndian.Uint16(p.data[p.pos:])))
	case 4:
		v = int64(int32(binary.LittleEndian.Uint32(p.data[p.pos:])))
	case 8:
		v = int64(binary.LittleEndian.Uint64(p.data[p.pos:]))
	}
	p.pos += width

	if v >= 0 {
		return element.Element{}, fmt.Errorf("parser: non-negative value %d encoded with signed marker 0x%02x", v, b)
	}

	if marker.IntMarker(v) != b {
		return element.Element{}, fmt.Errorf("parser: not shortest encoding: int %d encoded as 0x%02x", v, b)
	}

	return element.NewInt(v), nil
}

func (p *Parser) readF32() (element.Element, error) {
	if err := p.need(4); err != nil {
		return element.Element{}, err
	}

	bits := binary.LittleEndian.Uint32(p.data[p.pos:])
	p.pos += 4

	return element.NewF32(math.Float32frombits(bits)), nil
}

func (p *Parser) readF64() (element.Element, error) {
	if err := p.need(8); err != nil {
		return element.Element{}, err
	}

	bits := binary.LittleEndian.Uint64(p.data[p.pos:])
	p.pos += 8

	return element.NewF64(math.Float64frombits(bits)), nil
}

func (p *Parser) readExt(b byte) (element.Element, error) {
	n, err := p.readLength(b, marker.Ext8)
	if err != nil {
		return element.Element{}, err
	}

	if err := p.need(1); err != nil {
		return element.Element{}, err
	}
	tag := marker.ExtType(p.data[p.pos])
	p.pos++

	if err := p.need(n); err != nil {
		return element.Element{}, err
	}
	body := p.data[p.pos : p.pos+n]
	p.pos += n

	if !tag.IsKnown() {
		return element.Element{}, fmt.Errorf("parser: unknown ext type %d", tag)
	}

	decoded, err := xcodec.Decode(tag, body)
	if err != nil {
		return element.Element{}, err
	}

	switch tag {
	case marker.ExtTimestamp:
		return element.NewTimestamp(decoded.(xcodec.Timestamp)), nil
	case marker.ExtHash:
		return element.NewHash(decoded.(xcodec.Hash)), nil
	case marker.ExtIdentity:
		return element.NewIdentity(decoded.(xcodec.Identity)), nil
	case marker.ExtLockId:
		return element.NewLockId(decoded.(xcodec.LockId)), nil
	case marker.ExtStreamId:
		return element.NewStreamId(decoded.(xcodec.StreamId)), nil
	case marker.ExtDataLockbox:
		return element.NewDataLockbox(decoded.(xcodec.Lockbox)), nil
	case marker.ExtIdentityLockbox:
		return element.NewIdentityLockbox(decoded.(xcodec.Lockbox)), nil
	case marker.ExtStreamLockbox:
		return element.NewStreamLockbox(decoded.(xcodec.Lockbox)), nil
	case marker.ExtLockLockbox:
		return element.NewLockLockbox(decoded.(xcodec.Lockbox)), nil
	default: // marker.ExtBareIdKey
		return element.NewBareIdKey(decoded.(xcodec.BareIdKey)), nil
	}
}

// SkipValue consumes and discards one complete element subtree (a container
// header plus all of its descendants, or a single leaf element). It does
// not perform map-key ordering checks — per §4.2, only the caller
// traversing a Map's own pairs is responsible for that; a caller that skips
// a map entirely just needs its bytes to be well-formed.
func (p *Parser) SkipValue() error {
	el, err := p.Next()
	if err != nil {
		return err
	}

	remaining := childCount(el)
	for remaining > 0 {
		child, err := p.Next()
		if err != nil {
			return err
		}

		if child.Kind.IsContainer() {
			remaining += childCount(child)
		}

		remaining--
	}

	return nil
}
