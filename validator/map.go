package validator

import (
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/parser"
)

// MapValidator constrains Map elements.
type MapValidator struct {
	Req map[string]Validator // keys that must appear
	Opt map[string]Validator // keys that may appear
	Keys   Validator          // applied to each unknown key's Str element
	Values Validator          // applied to each unknown key's value; nil means no unknowns allowed

	MinLen, MaxLen *int     // pair count bounds
	SameLen        []string // keys whose Array values must share one length, or all be absent

	In, Nin [][]byte // canonical-encoded whole maps, see ArrayValidator.In

	Query, Size, MapOk, SameLenOk bool
}

func (v *MapValidator) Kind() Kind { return KindMap }

func (v *MapValidator) Validate(ctx *Context, p *parser.Parser, cl *Checklist) error {
	spanStart := p.Remaining()

	el, err := p.Next()
	if err != nil {
		return err
	}
	if el.Kind != element.KindMap {
		return fail("expected map, got %v", el.Kind)
	}
	n := el.Len

	if v.MinLen != nil && n < *v.MinLen {
		return fail("map length %d is below minimum %d", n, *v.MinLen)
	}
	if v.MaxLen != nil && n > *v.MaxLen {
		return fail("map length %d exceeds maximum %d", n, *v.MaxLen)
	}

	seenReq := make(map[string]bool, len(v.Req))
	sameLenSeen := make(map[string]int, len(v.SameLen))
	prevKey := ""

	for i := 0; i < n; i++ {
		keyEl, err := p.Next()
		if err != nil {
			return err
		}
		if keyEl.Kind != element.KindStr {
			return fail("map key at pair %d is not a string", i)
		}
		key := keyEl.Str
		if i > 0 && key <= prevKey {
			return fail("map keys out of order at %q", key)
		}
		prevKey = key

		valValidator, isReq := v.Req[key]
		if isReq {
			seenReq[key] = true
		} else if opt, ok := v.Opt[key]; ok {
			valValidator = opt
		} else {
			if v.Keys != nil {
				keyBytes, err := encodeKeyForCheck(key)
				if err != nil {
					return withPath(key, err)
				}
				sub := parser.New(keyBytes)
				if err := v.Keys.Validate(ctx, sub, cl); err != nil {
					return withPath(key, err)
				}
			}
			if v.Values == nil {
				return withPath(key, fail("unrecognized map key %q", key))
			}
			valValidator = v.Values
		}

		before := p.Remaining()
		if err := valValidator.Validate(ctx, p, cl); err != nil {
			return withPath(key, err)
		}

		if containsString(v.SameLen, key) {
			span := elementSpan(before, p.Remaining())
			sub := parser.New(span)
			arrEl, err := sub.Next()
			if err != nil || arrEl.Kind != element.KindArray {
				return withPath(key, fail("same_len key %q must hold an array", key))
			}
			sameLenSeen[key] = arrEl.Len
		}
	}

	for key := range v.Req {
		if !seenReq[key] {
			return withPath(key, fail("missing required field %q", key))
		}
	}

	if len(v.SameLen) > 0 && len(sameLenSeen) != 0 && len(sameLenSeen) != len(v.SameLen) {
		return fail("had some, but not all, of the keys listed in same_len")
	}

	if len(sameLenSeen) > 1 {
		var want int
		first := true
		for _, key := range v.SameLen {
			length, ok := sameLenSeen[key]
			if !ok {
				continue
			}
			if first {
				want = length
				first = false

				continue
			}
			if length != want {
				return fail("same_len keys do not share a common array length")
			}
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

func (v *MapValidator) QueryCheck(ctx *Context, other Validator) bool {
	if !sameKindForQuery(ctx, KindMap, other) {
		return false
	}
	o, ok := other.(*MapValidator)
	if !ok {
		return true
	}
	if (len(o.In) > 0 || len(o.Nin) > 0) && !v.Query {
		return false
	}
	if (o.MinLen != nil || o.MaxLen != nil) && !v.Size {
		return false
	}
	if len(o.SameLen) > 0 && !v.SameLenOk {
		return false
	}
	if o.Keys != nil && !v.MapOk {
		return false
	}

	lookup := func(key string) (Validator, bool) {
		if val, ok := v.Req[key]; ok {
			return val, true
		}
		if val, ok := v.Opt[key]; ok {
			return val, true
		}
		if v.Values != nil {
			return v.Values, true
		}

		return nil, false
	}

	for key, qv := range o.Req {
		want, ok := lookup(key)
		if !ok || !want.QueryCheck(ctx, qv) {
			return false
		}
	}
	for key, qv := range o.Opt {
		want, ok := lookup(key)
		if !ok || !want.QueryCheck(ctx, qv) {
			return false
		}
	}
	if o.Values != nil {
		if v.Values == nil || !v.Values.QueryCheck(ctx, o.Values) {
			return false
		}
	}

	return true
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}

	return false
}

// encodeKeyForCheck builds a standalone canonical Str encoding of a map
// key so Keys (a Str validator) can run against it through the normal
// Validator.Validate(parser) surface.
func encodeKeyForCheck(key string) ([]byte, error) {
	e := emitter.New()
	defer e.Finish()

	if err := e.WriteStr(key); err != nil {
		return nil, err
	}

	return append([]byte(nil), e.Bytes()...), nil
}
