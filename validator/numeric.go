package validator

import (
	"math"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
)

// IntValidator constrains Int elements by range, membership, and bitmask,
// per §4.4's numeric validator fields.
type IntValidator struct {
	rangeConstraint[element.Int]

	BitsSet uint64 // all of these bits must be set in the u64 reinterpretation
	BitsClr uint64 // all of these bits must be clear

	// Gate flags control what a query-time IntValidator may set.
	Ord, Query, Bit bool
}

func (v *IntValidator) Kind() Kind { return KindInt }

func intCmp(a, b element.Int) int { return a.Cmp(b) }
func intEq(a, b element.Int) bool { return a.Equal(b) }

func (v *IntValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindInt {
		return fail("expected int, got %v", el.Kind)
	}

	if err := checkRange(v.rangeConstraint, el.Int, intCmp); err != nil {
		return err
	}
	if err := checkList(v.rangeConstraint, el.Int, intEq); err != nil {
		return err
	}

	bits := el.Int.AsUint64()
	if v.BitsSet != 0 && bits&v.BitsSet != v.BitsSet {
		return fail("integer is missing required bits 0x%x", v.BitsSet)
	}
	if v.BitsClr != 0 && bits&v.BitsClr != 0 {
		return fail("integer has forbidden bits 0x%x set", v.BitsClr)
	}

	return nil
}

func (v *IntValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindInt, other) {
		return false
	}
	o, ok := other.(*IntValidator)
	if !ok {
		return true
	}
	if (o.Min != nil || o.Max != nil) && !v.Ord {
		return false
	}
	if (len(o.In) > 0 || len(o.Nin) > 0) && !v.Query {
		return false
	}
	if (o.BitsSet != 0 || o.BitsClr != 0) && !v.Bit {
		return false
	}

	return true
}

// F32Validator constrains F32 elements.
type F32Validator struct {
	rangeConstraint[float32]

	Ord, Query bool
}

func (v *F32Validator) Kind() Kind { return KindF32 }

func f32OrdinaryCmp(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func f32TotalOrderEq(a, b float32) bool {
	return math.Float32bits(a) == math.Float32bits(b)
}

func (v *F32Validator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindF32 {
		return fail("expected f32, got %v", el.Kind)
	}

	if f := el.F32; f != f { // NaN
		if v.Min != nil || v.Max != nil {
			return fail("NaN does not satisfy a configured range")
		}
	}

	if err := checkRange(v.rangeConstraint, el.F32, f32OrdinaryCmp); err != nil {
		return err
	}

	return checkList(v.rangeConstraint, el.F32, f32TotalOrderEq)
}

func (v *F32Validator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindF32, other) {
		return false
	}
	o, ok := other.(*F32Validator)
	if !ok {
		return true
	}
	if (o.Min != nil || o.Max != nil) && !v.Ord {
		return false
	}
	if (len(o.In) > 0 || len(o.Nin) > 0) && !v.Query {
		return false
	}

	return true
}

// F64Validator constrains F64 elements. Deliberately parallel to
// F32Validator rather than merged with it — the two wire kinds stay
// distinct types, sharing only rangeConstraint/checkRange/checkList.
type F64Validator struct {
	rangeConstraint[float64]

	Ord, Query bool
}

func (v *F64Validator) Kind() Kind { return KindF64 }

func f64OrdinaryCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func f64TotalOrderEq(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

func (v *F64Validator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindF64 {
		return fail("expected f64, got %v", el.Kind)
	}

	if f := el.F64; f != f { // NaN
		if v.Min != nil || v.Max != nil {
			return fail("NaN does not satisfy a configured range")
		}
	}

	if err := checkRange(v.rangeConstraint, el.F64, f64OrdinaryCmp); err != nil {
		return err
	}

	return checkList(v.rangeConstraint, el.F64, f64TotalOrderEq)
}

func (v *F64Validator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindF64, other) {
		return false
	}
	o, ok := other.(*F64Validator)
	if !ok {
		return true
	}
	if (o.Min != nil || o.Max != nil) && !v.Ord {
		return false
	}
	if (len(o.In) > 0 || len(o.Nin) > 0) && !v.Query {
		return false
	}

	return true
}
