package validator

import (
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
	"github.com/fogpack/fogpack/xcodec"
)

// HashValidator constrains Hash elements. Validating a Hash value defers
// its real check by inserting (hash, schema-list, link) into the
// checklist rather than resolving it immediately, per §4.4.
type HashValidator struct {
	In, Nin []xcodec.Hash

	// Link is the validator the referenced document's root must satisfy
	// once fetched; Schema, if non-empty, restricts which schema Hashes
	// the referenced document may declare.
	Link   Validator
	Schema []xcodec.Hash

	Query bool
}

func (v *HashValidator) Kind() Kind { return KindHash }

func (v *HashValidator) Validate(_ *Context, p *parser.Parser, cl *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindHash {
		return fail("expected hash, got %v", el.Kind)
	}

	if err := checkTokenList(el.Hash, v.In, v.Nin, func(a, b xcodec.Hash) bool { return a.Equal(b) }); err != nil {
		return err
	}

	if !el.Hash.IsSelf() && (v.Link != nil || len(v.Schema) > 0) {
		cl.Add(el.Hash, ChecklistEntry{Schemas: v.Schema, Link: v.Link})
	}

	return nil
}

func (v *HashValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindHash, other) {
		return false
	}
	o, ok := other.(*HashValidator)
	if !ok {
		return true
	}
	if (len(o.In) > 0 || len(o.Nin) > 0) && !v.Query {
		return false
	}

	return true
}

// IdentityValidator constrains Identity elements.
type IdentityValidator struct {
	In, Nin []xcodec.Identity
	Query   bool
}

func (v *IdentityValidator) Kind() Kind { return KindIdentity }

func (v *IdentityValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindIdentity {
		return fail("expected identity, got %v", el.Kind)
	}

	return checkTokenList(el.Identity, v.In, v.Nin, func(a, b xcodec.Identity) bool { return a.Equal(b) })
}

func (v *IdentityValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindIdentity, other) {
		return false
	}
	o, ok := other.(*IdentityValidator)
	if !ok {
		return true
	}

	return !(len(o.In) > 0 || len(o.Nin) > 0) || v.Query
}

// LockIdValidator constrains LockId elements.
type LockIdValidator struct {
	In, Nin []xcodec.LockId
	Query   bool
}

func (v *LockIdValidator) Kind() Kind { return KindLockId }

func (v *LockIdValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindLockId {
		return fail("expected lock id, got %v", el.Kind)
	}

	return checkTokenList(el.LockId, v.In, v.Nin, func(a, b xcodec.LockId) bool { return a.Equal(b) })
}

func (v *LockIdValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindLockId, other) {
		return false
	}
	o, ok := other.(*LockIdValidator)
	if !ok {
		return true
	}

	return !(len(o.In) > 0 || len(o.Nin) > 0) || v.Query
}

// StreamIdValidator constrains StreamId elements.
type StreamIdValidator struct {
	In, Nin []xcodec.StreamId
	Query   bool
}

func (v *StreamIdValidator) Kind() Kind { return KindStreamId }

func (v *StreamIdValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindStreamId {
		return fail("expected stream id, got %v", el.Kind)
	}

	return checkTokenList(el.StreamId, v.In, v.Nin, func(a, b xcodec.StreamId) bool { return a.Equal(b) })
}

func (v *StreamIdValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindStreamId, other) {
		return false
	}
	o, ok := other.(*StreamIdValidator)
	if !ok {
		return true
	}

	return !(len(o.In) > 0 || len(o.Nin) > 0) || v.Query
}

// LockboxValidator constrains one of the four Lockbox element kinds
// (DataLockbox/IdentityLockbox/StreamLockbox/LockLockbox); lockboxKind
// says which, since they share one wire layout and only the ext tag
// distinguishes them (see xcodec.Lockbox).
type LockboxValidator struct {
	lockboxKind    Kind
	MinLen, MaxLen *int // ciphertext payload length bounds

	Query, Size bool
}

func NewDataLockboxValidator() *LockboxValidator     { return &LockboxValidator{lockboxKind: KindDataLockbox} }
func NewIdentityLockboxValidator() *LockboxValidator { return &LockboxValidator{lockboxKind: KindIdentityLockbox} }
func NewStreamLockboxValidator() *LockboxValidator   { return &LockboxValidator{lockboxKind: KindStreamLockbox} }
func NewLockLockboxValidator() *LockboxValidator     { return &LockboxValidator{lockboxKind: KindLockLockbox} }

func (v *LockboxValidator) Kind() Kind { return v.lockboxKind }

func (v *LockboxValidator) expectedElementKind() element.Kind {
	switch v.lockboxKind {
	case KindIdentityLockbox:
		return element.KindIdentityLockbox
	case KindStreamLockbox:
		return element.KindStreamLockbox
	case KindLockLockbox:
		return element.KindLockLockbox
	default:
		return element.KindDataLockbox
	}
}

func (v *LockboxValidator) lockboxOf(el element.Element) xcodec.Lockbox {
	switch v.lockboxKind {
	case KindIdentityLockbox:
		return el.IdentityLockbox
	case KindStreamLockbox:
		return el.StreamLockbox
	case KindLockLockbox:
		return el.LockLockbox
	default:
		return el.DataLockbox
	}
}

func (v *LockboxValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	want := v.expectedElementKind()
	if el.Kind != want {
		return fail("expected %v, got %v", want, el.Kind)
	}

	n := v.lockboxOf(el).PayloadLen()
	if v.MinLen != nil && n < *v.MinLen {
		return fail("lockbox payload length %d is below minimum %d", n, *v.MinLen)
	}
	if v.MaxLen != nil && n > *v.MaxLen {
		return fail("lockbox payload length %d exceeds maximum %d", n, *v.MaxLen)
	}

	return nil
}

func (v *LockboxValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, v.lockboxKind, other) {
		return false
	}
	o, ok := other.(*LockboxValidator)
	if !ok {
		return true
	}

	return !(o.MinLen != nil || o.MaxLen != nil) || v.Size
}

func checkTokenList[T any](v T, in, nin []T, eq func(a, b T) bool) error {
	if len(in) > 0 {
		found := false
		for _, allowed := range in {
			if eq(v, allowed) {
				found = true

				break
			}
		}
		if !found {
			return fail("token is not in the allowed set")
		}
	}
	for _, denied := range nin {
		if eq(v, denied) {
			return fail("token is in the denied set")
		}
	}

	return nil
}
