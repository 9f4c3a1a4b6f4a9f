// Package validator implements the constraint tree that enforces a schema
// against decoded fog-pack values: per-type constraint validators,
// reference resolution through a shared types map, query-time compatibility
// checks, and checklist accumulation for deferred cross-document hash
// validation.
//
// Every concrete validator type implements Validator. Validate consumes
// exactly one value from the parser and either succeeds (advancing the
// parser past that value) or returns a *ValidationError; QueryCheck decides
// whether a query-time validator proposed by a reader is admissible given
// this schema-side validator's gate flags.
package validator

import (
	"fmt"

	"github.com/fogpack/fogpack/parser"
)

// Kind discriminates the concrete validator behind the Validator interface,
// mirroring element.Kind's role for Elements.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindF32
	KindF64
	KindBin
	KindStr
	KindArray
	KindMap
	KindTime
	KindHash
	KindIdentity
	KindStreamId
	KindLockId
	KindDataLockbox
	KindIdentityLockbox
	KindStreamLockbox
	KindLockLockbox
	KindRef
	KindMulti
	KindEnum
	KindAny
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
	case KindBin:
		return "Bin"
	case KindStr:
		return "Str"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindTime:
		return "Time"
	case KindHash:
		return "Hash"
	case KindIdentity:
		return "Identity"
	case KindStreamId:
		return "StreamId"
	case KindLockId:
		return "LockId"
	case KindDataLockbox:
		return "DataLockbox"
	case KindIdentityLockbox:
		return "IdentityLockbox"
	case KindStreamLockbox:
		return "StreamLockbox"
	case KindLockLockbox:
		return "LockLockbox"
	case KindRef:
		return "Ref"
	case KindMulti:
		return "Multi"
	case KindEnum:
		return "Enum"
	case KindAny:
		return "Any"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Validator is the common surface every constraint type implements.
type Validator interface {
	Kind() Kind

	// Validate consumes exactly one value from p, enforcing this
	// validator's constraints, possibly adding entries to cl for deferred
	// discharge. A failure leaves p in whatever state the parser itself
	// reached (it may have consumed bytes); callers must abandon p on
	// error rather than attempt to resume.
	Validate(ctx *Context, p *parser.Parser, cl *Checklist) error

	// QueryCheck reports whether other, proposed as a query-time
	// validator, is admissible given this schema-side validator.
	QueryCheck(ctx *Context, other Validator) bool
}

// Context carries the shared types map used to resolve Ref(name), per
// §4.4 ("ctx carries the types map used to resolve Ref(name)").
type Context struct {
	types map[string]Validator
}

// NewContext builds a Context over a named-type table. The map is not
// copied; callers must not mutate it concurrently with validation.
func NewContext(types map[string]Validator) *Context {
	if types == nil {
		types = map[string]Validator{}
	}

	return &Context{types: types}
}

// Resolve looks up name in the context's types map.
func (c *Context) Resolve(name string) (Validator, bool) {
	if c == nil {
		return nil, false
	}

	v, ok := c.types[name]

	return v, ok
}

// sameKindForQuery reports whether other is admissible as "the same kind"
// as want for query-compatibility purposes: an exact kind match, Any, or a
// Multi every one of whose branches passes the same check (§4.4 rule 1).
func sameKindForQuery(ctx *Context, want Kind, other Validator) bool {
	switch o := other.(type) {
	case *AnyValidator:
		return true
	case *MultiValidator:
		for _, branch := range o.List {
			if !sameKindForQuery(ctx, want, branch) {
				return false
			}
		}

		return len(o.List) > 0
	case *RefValidator:
		resolved, ok := ctx.Resolve(o.Name)
		if !ok {
			return false
		}

		return sameKindForQuery(ctx, want, resolved)
	default:
		return other.Kind() == want
	}
}
