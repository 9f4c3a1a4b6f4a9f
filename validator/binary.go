package validator

import (
	"bytes"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
)

// BinValidator constrains Bin elements.
type BinValidator struct {
	rangeConstraint[string] // Bin payloads compared as strings for In/Nin membership

	MinLen, MaxLen   *int
	BitsSet, BitsClr []byte // applied byte-wise with implicit zero padding
	Min, Max         []byte // big-endian magnitude bounds, trailing-zero normalized

	Query, Size, Bit, Ord bool
}

func (v *BinValidator) Kind() Kind { return KindBin }

func (v *BinValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindBin {
		return fail("expected bin, got %v", el.Kind)
	}

	b := el.Bin

	if v.MinLen != nil && len(b) < *v.MinLen {
		return fail("binary length %d is below minimum %d", len(b), *v.MinLen)
	}
	if v.MaxLen != nil && len(b) > *v.MaxLen {
		return fail("binary length %d exceeds maximum %d", len(b), *v.MaxLen)
	}

	if v.Min != nil && compareMagnitude(b, v.Min) < 0 {
		return fail("binary value is below the minimum magnitude")
	}
	if v.Max != nil && compareMagnitude(b, v.Max) > 0 {
		return fail("binary value exceeds the maximum magnitude")
	}

	if v.BitsSet != nil && !bitsSetBytewise(b, v.BitsSet) {
		return fail("binary value is missing required bits")
	}
	if v.BitsClr != nil && !bitsClrBytewise(b, v.BitsClr) {
		return fail("binary value has forbidden bits set")
	}

	return checkList(v.rangeConstraint, string(b), func(a, c string) bool { return a == c })
}

func (v *BinValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindBin, other) {
		return false
	}
	o, ok := other.(*BinValidator)
	if !ok {
		return true
	}
	if (len(o.In) > 0 || len(o.Nin) > 0) && !v.Query {
		return false
	}
	if (o.MinLen != nil || o.MaxLen != nil) && !v.Size {
		return false
	}
	if (o.BitsSet != nil || o.BitsClr != nil) && !v.Bit {
		return false
	}
	if (o.Min != nil || o.Max != nil) && !v.Ord {
		return false
	}

	return true
}

// compareMagnitude compares a and b as big-endian unsigned magnitudes of
// possibly differing lengths, after stripping leading zero bytes.
func compareMagnitude(a, b []byte) int {
	a = bytes.TrimLeft(a, "\x00")
	b = bytes.TrimLeft(b, "\x00")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}

		return 1
	}

	return bytes.Compare(a, b)
}

// bitsSetBytewise reports whether every bit set in mask is also set in b,
// treating a shorter operand as implicitly zero-padded on the left (most
// significant end) to match the longer one.
func bitsSetBytewise(b, mask []byte) bool {
	b, mask = padLeft(b, mask)
	for i := range b {
		if b[i]&mask[i] != mask[i] {
			return false
		}
	}

	return true
}

// bitsClrBytewise reports whether none of the bits in mask are set in b.
func bitsClrBytewise(b, mask []byte) bool {
	b, mask = padLeft(b, mask)
	for i := range b {
		if b[i]&mask[i] != 0 {
			return false
		}
	}

	return true
}

func padLeft(a, b []byte) ([]byte, []byte) {
	if len(a) < len(b) {
		padded := make([]byte, len(b))
		copy(padded[len(b)-len(a):], a)
		a = padded
	} else if len(b) < len(a) {
		padded := make([]byte, len(a))
		copy(padded[len(a)-len(b):], b)
		b = padded
	}

	return a, b
}
