package validator

import (
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
)

// ArrayValidator constrains Array elements.
type ArrayValidator struct {
	Items    Validator   // applied to every position at or past len(Prefix)
	Prefix   []Validator // per-index validators for the first N positions
	Contains []Validator // each must match at least one element

	MinLen, MaxLen *int
	Unique         bool

	// In/Nin hold canonical-encoded whole arrays (header + every child,
	// in wire order); canonical uniqueness means byte equality of the
	// array's own span is exactly value equality, so no decode step is
	// needed to test membership.
	In, Nin [][]byte

	Query, Size, ContainsOk, UniqueOk, ArrayOk bool
}

func (v *ArrayValidator) Kind() Kind { return KindArray }

func (v *ArrayValidator) Validate(ctx *Context, p *parser.Parser, cl *Checklist) error {
	spanStart := p.Remaining()

	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindArray {
		return fail("expected array, got %v", el.Kind)
	}
	n := el.Len

	if v.MinLen != nil && n < *v.MinLen {
		return fail("array length %d is below minimum %d", n, *v.MinLen)
	}
	if v.MaxLen != nil && n > *v.MaxLen {
		return fail("array length %d exceeds maximum %d", n, *v.MaxLen)
	}

	matched := make([]bool, len(v.Contains))
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		itemValidator := v.Items
		if i < len(v.Prefix) {
			itemValidator = v.Prefix[i]
		}
		if itemValidator == nil {
			return withPath(i, fail("array has no validator for position %d", i))
		}

		before := p.Remaining()

		if err := itemValidator.Validate(ctx, p, cl); err != nil {
			return withPath(i, err)
		}

		span := elementSpan(before, p.Remaining())

		if v.Unique {
			key := string(span)
			if seen[key] {
				return withPath(i, fail("array elements must be unique"))
			}
			seen[key] = true
		}

		for j, c := range v.Contains {
			if matched[j] {
				continue
			}
			sub := parser.New(span)
			if err := c.Validate(ctx, sub, cl); err == nil {
				matched[j] = true
			}
		}
	}

	for j, ok := range matched {
		if !ok {
			return fail("array is missing a required element for contains[%d]", j)
		}
	}

	if len(v.In) > 0 || len(v.Nin) > 0 {
		fullSpan := elementSpan(spanStart, p.Remaining())
		if err := checkByteMembership(fullSpan, v.In, v.Nin); err != nil {
			return err
		}
	}

	return nil
}

func (v *ArrayValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindArray, other) {
		return false
	}
	o, ok := other.(*ArrayValidator)
	if !ok {
		return true
	}
	if (len(o.In) > 0 || len(o.Nin) > 0) && !v.Query {
		return false
	}
	if (o.MinLen != nil || o.MaxLen != nil) && !v.Size {
		return false
	}
	if len(o.Contains) > 0 && !v.ContainsOk {
		return false
	}
	if o.Unique && !v.UniqueOk {
		return false
	}

	if o.Items != nil {
		want := v.Items
		if want == nil {
			want = &AnyValidator{}
		}
		if !want.QueryCheck(ctx, o.Items) {
			return false
		}
	}
	for i, p := range o.Prefix {
		var want Validator
		if i < len(v.Prefix) {
			want = v.Prefix[i]
		} else {
			want = v.Items
		}
		if want == nil {
			want = &AnyValidator{}
		}
		if !want.QueryCheck(ctx, p) {
			return false
		}
	}

	return true
}

// elementSpan returns the bytes consumed between before and after, two
// Remaining() slices of the same Parser taken at different cursor
// positions; both alias the same backing array, so their length
// difference identifies the consumed span without copying.
func elementSpan(before, after []byte) []byte {
	return before[:len(before)-len(after)]
}

// checkByteMembership applies in/nin membership over canonical byte spans,
// valid for any element kind whose canonical encoding is being tested.
func checkByteMembership(span []byte, in, nin [][]byte) error {
	if len(in) > 0 {
		found := false
		for _, cand := range in {
			if string(cand) == string(span) {
				found = true

				break
			}
		}
		if !found {
			return fail("value is not in the allowed set")
		}
	}
	for _, cand := range nin {
		if string(cand) == string(span) {
			return fail("value is in the denied set")
		}
	}

	return nil
}
