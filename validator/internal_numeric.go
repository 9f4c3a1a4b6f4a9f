package validator

// rangeConstraint holds the shared min/max/exclusivity/in/nin shape that
// Int, F32, and F64 validators all carry: each stays a separately typed
// struct, but the range/list comparison logic collapses into one generic
// helper instead of being copy-pasted per numeric kind.
type rangeConstraint[T any] struct {
	Min, Max     *T
	ExMin, ExMax bool
	In, Nin      []T
}

// checkRange reports whether v satisfies the constraint's min/max bounds,
// using cmp(a, b) < 0 / == 0 / > 0 semantics.
func checkRange[T any](r rangeConstraint[T], v T, cmp func(a, b T) int) error {
	if r.Min != nil {
		c := cmp(v, *r.Min)
		if c < 0 || (c == 0 && r.ExMin) {
			return fail("value is below the minimum bound")
		}
	}
	if r.Max != nil {
		c := cmp(v, *r.Max)
		if c > 0 || (c == 0 && r.ExMax) {
			return fail("value is above the maximum bound")
		}
	}

	return nil
}

// checkList reports whether v is permitted by the constraint's in/nin
// lists (an empty In list means "no restriction").
func checkList[T any](r rangeConstraint[T], v T, eq func(a, b T) bool) error {
	if len(r.In) > 0 {
		found := false
		for _, allowed := range r.In {
			if eq(v, allowed) {
				found = true

				break
			}
		}
		if !found {
			return fail("value is not in the allowed set")
		}
	}
	for _, denied := range r.Nin {
		if eq(v, denied) {
			return fail("value is in the denied set")
		}
	}

	return nil
}
