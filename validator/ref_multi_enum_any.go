package validator

import (
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
)

// RefValidator resolves name in the Context's types map and delegates to
// the resolved validator, permitting recursive schemas (§9).
type RefValidator struct {
	Name string
}

func (v *RefValidator) Kind() Kind { return KindRef }

func (v *RefValidator) Validate(ctx *Context, p *parser.Parser, cl *Checklist) error {
	resolved, ok := ctx.Resolve(v.Name)
	if !ok {
		return fail("unresolved type reference %q", v.Name)
	}

	return resolved.Validate(ctx, p, cl)
}

func (v *RefValidator) QueryCheck(ctx *Context, other Validator) bool {
	resolved, ok := ctx.Resolve(v.Name)
	if !ok {
		return false
	}

	return resolved.QueryCheck(ctx, other)
}

// MultiValidator tries each validator in List in order on a cloned parser,
// succeeding on the first match. To prevent cycles, Multi-of-Multi and
// Multi-of-Ref-of-{Multi,Ref} branches are skipped during validation, per
// §9.
type MultiValidator struct {
	List []Validator
}

func (v *MultiValidator) Kind() Kind { return KindMulti }

func (v *MultiValidator) Validate(ctx *Context, p *parser.Parser, cl *Checklist) error {
	var lastErr error

	for _, candidate := range v.List {
		if isCyclicMultiBranch(ctx, candidate) {
			continue
		}

		trial := p.Clone()
		trialCl := NewChecklist()
		err := candidate.Validate(ctx, trial, trialCl)
		if err != nil {
			lastErr = err

			continue
		}

		// Commit: replay against the real parser/checklist so p advances
		// for real; the trial run only probed feasibility.
		return candidate.Validate(ctx, p, cl)
	}

	if lastErr == nil {
		lastErr = fail("no branch to try")
	}

	return fail("no Multi branch matched: %v", lastErr)
}

func (v *MultiValidator) QueryCheck(ctx *Context, other Validator) bool {
	for _, candidate := range v.List {
		if candidate.QueryCheck(ctx, other) {
			return true
		}
	}

	return false
}

// isCyclicMultiBranch reports whether candidate is itself a Multi, or a
// Ref resolving (possibly through further Refs) to a Multi or back to a
// Ref, either of which §9 requires skipping to guarantee termination.
func isCyclicMultiBranch(ctx *Context, candidate Validator) bool {
	switch c := candidate.(type) {
	case *MultiValidator:
		return true
	case *RefValidator:
		resolved, ok := ctx.Resolve(c.Name)
		if !ok {
			return false
		}
		switch resolved.(type) {
		case *MultiValidator, *RefValidator:
			return true
		default:
			return false
		}
	default:
		return false
	}
}

// EnumValidator reads either a single Str (unit variant) or a one-entry
// Map whose key is the variant name, and applies that variant's validator
// (nil meaning a unit variant with no payload) to the associated value.
type EnumValidator struct {
	Variants map[string]Validator // nil entry value means a unit variant
}

func (v *EnumValidator) Kind() Kind { return KindEnum }

func (v *EnumValidator) Validate(ctx *Context, p *parser.Parser, cl *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}

	switch el.Kind {
	case element.KindStr:
		inner, ok := v.Variants[el.Str]
		if !ok {
			return fail("unknown enum variant %q", el.Str)
		}
		if inner != nil {
			return fail("enum variant %q requires a value, got unit form", el.Str)
		}

		return nil
	case element.KindMap:
		if el.Len != 1 {
			return fail("enum map form must have exactly one entry, got %d", el.Len)
		}
		keyEl, err := p.Next()
		if err != nil {
			return err
		}
		if keyEl.Kind != element.KindStr {
			return fail("enum variant key must be a string")
		}
		inner, ok := v.Variants[keyEl.Str]
		if !ok {
			return fail("unknown enum variant %q", keyEl.Str)
		}
		if inner == nil {
			return fail("enum variant %q is a unit variant, got value form", keyEl.Str)
		}

		return inner.Validate(ctx, p, cl)
	default:
		return fail("expected enum (str or single-entry map), got %v", el.Kind)
	}
}

func (v *EnumValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindEnum, other) {
		return false
	}
	o, ok := other.(*EnumValidator)
	if !ok {
		return true
	}
	for name, qv := range o.Variants {
		schemaInner, ok := v.Variants[name]
		if !ok {
			return false
		}
		if qv == nil || schemaInner == nil {
			if qv != nil || schemaInner != nil {
				return false
			}

			continue
		}
		if !schemaInner.QueryCheck(ctx, qv) {
			return false
		}
	}

	return true
}

// AnyValidator consumes one well-formed element tree of unbounded shape.
// Map-key ordering is still enforced by recursively traversing Map
// children through the parser rather than via SkipValue, per §4.4 ("still
// enforcing map-key ordering").
type AnyValidator struct{}

func (v *AnyValidator) Kind() Kind { return KindAny }

func (v *AnyValidator) Validate(ctx *Context, p *parser.Parser, cl *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}

	switch el.Kind {
	case element.KindArray:
		for i := 0; i < el.Len; i++ {
			if err := v.Validate(ctx, p, cl); err != nil {
				return withPath(i, err)
			}
		}

		return nil
	case element.KindMap:
		prev := ""
		for i := 0; i < el.Len; i++ {
			keyEl, err := p.Next()
			if err != nil {
				return err
			}
			if keyEl.Kind != element.KindStr {
				return fail("map key is not a string")
			}
			if i > 0 && keyEl.Str <= prev {
				return fail("unordered or duplicate map keys")
			}
			prev = keyEl.Str

			if err := v.Validate(ctx, p, cl); err != nil {
				return withPath(keyEl.Str, err)
			}
		}

		return nil
	default:
		return nil
	}
}

func (v *AnyValidator) QueryCheck(_ *Context, _ Validator) bool { return true }
