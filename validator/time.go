package validator

import (
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
	"github.com/fogpack/fogpack/xcodec"
)

// TimeValidator constrains Timestamp elements.
type TimeValidator struct {
	rangeConstraint[xcodec.Timestamp]

	Ord, Query bool
}

func (v *TimeValidator) Kind() Kind { return KindTime }

func timeCmp(a, b xcodec.Timestamp) int { return a.Cmp(b) }
func timeEq(a, b xcodec.Timestamp) bool { return a.Equal(b) }

func (v *TimeValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindTimestamp {
		return fail("expected timestamp, got %v", el.Kind)
	}

	if err := checkRange(v.rangeConstraint, el.Time, timeCmp); err != nil {
		return err
	}

	return checkList(v.rangeConstraint, el.Time, timeEq)
}

func (v *TimeValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindTime, other) {
		return false
	}
	o, ok := other.(*TimeValidator)
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
