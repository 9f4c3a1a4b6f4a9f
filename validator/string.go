package validator

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/parser"
)

// MaxRegexPatternBytes approximates §5's regex compilation cap (2 MiB
// total size, 1 MiB DFA). Go's regexp package compiles to RE2 automata
// with no catastrophic-backtracking blowup, so pattern source length is
// used as the practical proxy budget rather than measuring compiled
// program size.
const MaxRegexPatternBytes = 2 << 20

// NormMode selects the Unicode normalization form applied to a Str value
// before comparisons and list lookups, per §4.4.
type NormMode uint8

const (
	NormNone NormMode = iota
	NormNFC
	NormNFKC
)

// Apply normalizes s under m.
func (m NormMode) Apply(s string) string {
	switch m {
	case NormNFC:
		return norm.NFC.String(s)
	case NormNFKC:
		return norm.NFKC.String(s)
	default:
		return s
	}
}

// StrValidator constrains Str elements.
type StrValidator struct {
	rangeConstraint[string] // Min/Max unused for Str; In/Nin hold allowed/denied strings

	MinLen, MaxLen   *int // byte length bounds
	MinChar, MaxChar *int // UTF-8 scalar count bounds
	Matches          []*regexp.Regexp
	Normalize        NormMode

	// brokenPattern, when set, marks this validator as permanently
	// failing: one of its Matches patterns failed to compile or exceeded
	// MaxRegexPatternBytes, per §4.4.
	brokenPattern bool

	Query, Size, Regex bool
}

func (v *StrValidator) Kind() Kind { return KindStr }

// NewStrValidator builds a StrValidator whose Matches patterns are
// compiled from raw regex source; a pattern that fails to compile or
// exceeds MaxRegexPatternBytes marks the validator permanently broken
// rather than returning a construction error, mirroring §4.4's
// "a regex that fails to compile...marks the validator as a permanent
// failure."
func NewStrValidator(patterns ...string) *StrValidator {
	v := &StrValidator{}
	for _, p := range patterns {
		if len(p) > MaxRegexPatternBytes {
			v.brokenPattern = true

			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			v.brokenPattern = true

			continue
		}
		v.Matches = append(v.Matches, re)
	}

	return v
}

func (v *StrValidator) Validate(_ *Context, p *parser.Parser, _ *Checklist) error {
	if v.brokenPattern {
		return fail("string validator has an invalid or oversized regex pattern")
	}

	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindStr {
		return fail("expected str, got %v", el.Kind)
	}

	s := v.Normalize.Apply(el.Str)

	if v.MinLen != nil && len(s) < *v.MinLen {
		return fail("string byte length %d is below minimum %d", len(s), *v.MinLen)
	}
	if v.MaxLen != nil && len(s) > *v.MaxLen {
		return fail("string byte length %d exceeds maximum %d", len(s), *v.MaxLen)
	}

	if v.MinChar != nil || v.MaxChar != nil {
		n := utf8.RuneCountInString(s)
		if v.MinChar != nil && n < *v.MinChar {
			return fail("string scalar count %d is below minimum %d", n, *v.MinChar)
		}
		if v.MaxChar != nil && n > *v.MaxChar {
			return fail("string scalar count %d exceeds maximum %d", n, *v.MaxChar)
		}
	}

	for _, re := range v.Matches {
		if !re.MatchString(s) {
			return fail("string does not match required pattern %q", re.String())
		}
	}

	return checkList(v.rangeConstraint, s, func(a, b string) bool { return a == b })
}

func (v *StrValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindStr, other) {
		return false
	}
	o, ok := other.(*StrValidator)
	if !ok {
		return true
	}
	if (len(o.In) > 0 || len(o.Nin) > 0) && !v.Query {
		return false
	}
	if (o.MinLen != nil || o.MaxLen != nil || o.MinChar != nil || o.MaxChar != nil) && !v.Size {
		return false
	}
	if len(o.Matches) > 0 && !v.Regex {
		return false
	}

	return true
}
