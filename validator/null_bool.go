package validator

import (
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
)

// NullValidator accepts only Null elements.
type NullValidator struct{}

func (v *NullValidator) Kind() Kind { return KindNull }

func (v *NullValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindNull {
		return fail("expected null, got %v", el.Kind)
	}

	return nil
}

func (v *NullValidator) QueryCheck(ctx *Context, other Validator) bool {
	return sameKindForQuery(ctx, KindNull, other)
}

// BoolValidator accepts Bool elements, optionally pinned to a single
// allowed value via Const.
type BoolValidator struct {
	Const *bool

	// Query permits a query-time validator to set Const.
	Query bool
}

func (v *BoolValidator) Kind() Kind { return KindBool }

func (v *BoolValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindBool {
		return fail("expected bool, got %v", el.Kind)
	}
	if v.Const != nil && el.Bool != *v.Const {
		return fail("bool %v does not equal required constant %v", el.Bool, *v.Const)
	}

	return nil
}

func (v *BoolValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindBool, other) {
		return false
	}
	o, ok := other.(*BoolValidator)
	if !ok {
		return true
	}
	if o.Const != nil && !v.Query {
		return false
	}

	return true
}
