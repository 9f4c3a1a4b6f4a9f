package validator

import (
	"github.com/fogpack/fogpack/element"
	"github.com/fogpack/fogpack/internal/options"
	"github.com/fogpack/fogpack/xcodec"
)

// IntOption, StrOption, and friends follow the internal/options.Option[T]
// generic pattern used elsewhere in this module, generalized from
// configuring binary encoders to configuring validators.
type IntOption = options.Option[*IntValidator]

func NewIntValidator(opts ...IntOption) (*IntValidator, error) {
	v := &IntValidator{}
	if err := options.Apply(v, opts...); err != nil {
		return nil, err
	}

	return v, nil
}

func WithIntRange(min, max *element.Int, exMin, exMax bool) IntOption {
	return options.NoError(func(v *IntValidator) {
		v.Min, v.Max, v.ExMin, v.ExMax = min, max, exMin, exMax
	})
}

func WithIntIn(values ...element.Int) IntOption {
	return options.NoError(func(v *IntValidator) { v.In = values })
}

func WithIntNin(values ...element.Int) IntOption {
	return options.NoError(func(v *IntValidator) { v.Nin = values })
}

func WithIntBits(set, clr uint64) IntOption {
	return options.NoError(func(v *IntValidator) { v.BitsSet, v.BitsClr = set, clr })
}

func WithIntGates(ord, query, bit bool) IntOption {
	return options.NoError(func(v *IntValidator) { v.Ord, v.Query, v.Bit = ord, query, bit })
}

type StrOption = options.Option[*StrValidator]

func NewStrValidatorWithOptions(opts ...StrOption) (*StrValidator, error) {
	v := &StrValidator{}
	if err := options.Apply(v, opts...); err != nil {
		return nil, err
	}

	return v, nil
}

func WithStrLen(minLen, maxLen *int) StrOption {
	return options.NoError(func(v *StrValidator) { v.MinLen, v.MaxLen = minLen, maxLen })
}

func WithStrCharCount(minChar, maxChar *int) StrOption {
	return options.NoError(func(v *StrValidator) { v.MinChar, v.MaxChar = minChar, maxChar })
}

func WithStrIn(values ...string) StrOption {
	return options.NoError(func(v *StrValidator) { v.In = values })
}

func WithStrNin(values ...string) StrOption {
	return options.NoError(func(v *StrValidator) { v.Nin = values })
}

func WithStrNormalize(mode NormMode) StrOption {
	return options.NoError(func(v *StrValidator) { v.Normalize = mode })
}

func WithStrMatches(patterns ...string) StrOption {
	return options.New(func(v *StrValidator) error {
		built := NewStrValidator(patterns...)
		v.Matches = built.Matches
		v.brokenPattern = built.brokenPattern

		return nil
	})
}

func WithStrGates(query, size, regex bool) StrOption {
	return options.NoError(func(v *StrValidator) { v.Query, v.Size, v.Regex = query, size, regex })
}

type ArrayOption = options.Option[*ArrayValidator]

func NewArrayValidator(opts ...ArrayOption) (*ArrayValidator, error) {
	v := &ArrayValidator{}
	if err := options.Apply(v, opts...); err != nil {
		return nil, err
	}

	return v, nil
}

func WithArrayItems(item Validator) ArrayOption {
	return options.NoError(func(v *ArrayValidator) { v.Items = item })
}

func WithArrayPrefix(prefix ...Validator) ArrayOption {
	return options.NoError(func(v *ArrayValidator) { v.Prefix = prefix })
}

func WithArrayContains(contains ...Validator) ArrayOption {
	return options.NoError(func(v *ArrayValidator) { v.Contains = contains })
}

func WithArrayLen(minLen, maxLen *int) ArrayOption {
	return options.NoError(func(v *ArrayValidator) { v.MinLen, v.MaxLen = minLen, maxLen })
}

func WithArrayUnique(unique bool) ArrayOption {
	return options.NoError(func(v *ArrayValidator) { v.Unique = unique })
}

type MapOption = options.Option[*MapValidator]

func NewMapValidator(opts ...MapOption) (*MapValidator, error) {
	v := &MapValidator{Req: map[string]Validator{}, Opt: map[string]Validator{}}
	if err := options.Apply(v, opts...); err != nil {
		return nil, err
	}

	return v, nil
}

func WithMapReq(req map[string]Validator) MapOption {
	return options.NoError(func(v *MapValidator) { v.Req = req })
}

func WithMapOpt(opt map[string]Validator) MapOption {
	return options.NoError(func(v *MapValidator) { v.Opt = opt })
}

func WithMapUnknown(keys, values Validator) MapOption {
	return options.NoError(func(v *MapValidator) { v.Keys, v.Values = keys, values })
}

func WithMapSameLen(keys ...string) MapOption {
	return options.NoError(func(v *MapValidator) { v.SameLen = keys })
}

func WithHashLink(link Validator, schemas ...xcodec.Hash) func(*HashValidator) {
	return func(v *HashValidator) { v.Link, v.Schema = link, schemas }
}
