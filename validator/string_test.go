package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/parser"
)

func encodeStr(t *testing.T, s string) []byte {
	t.Helper()
	e := emitter.New()
	require.NoError(t, e.WriteStr(s))

	return append([]byte(nil), e.Bytes()...)
}

func TestStrValidatorLenBounds(t *testing.T) {
	minLen, maxLen := 2, 5
	v, err := NewStrValidatorWithOptions(WithStrLen(&minLen, &maxLen))
	require.NoError(t, err)

	require.NoError(t, v.Validate(nil, parser.New(encodeStr(t, "abc")), nil))
	require.Error(t, v.Validate(nil, parser.New(encodeStr(t, "a")), nil))
	require.Error(t, v.Validate(nil, parser.New(encodeStr(t, "abcdef")), nil))
}

func TestStrValidatorCharCountVsByteLength(t *testing.T) {
	// "é" is 2 bytes in UTF-8 but a single scalar; bound by scalar
	// count rather than byte length.
	maxChar := 3
	v, err := NewStrValidatorWithOptions(WithStrCharCount(nil, &maxChar))
	require.NoError(t, err)

	require.NoError(t, v.Validate(nil, parser.New(encodeStr(t, "éé")), nil))
	require.Error(t, v.Validate(nil, parser.New(encodeStr(t, "éééé")), nil))
}

func TestStrValidatorInNin(t *testing.T) {
	v, err := NewStrValidatorWithOptions(WithStrIn("red", "green", "blue"))
	require.NoError(t, err)

	require.NoError(t, v.Validate(nil, parser.New(encodeStr(t, "green")), nil))
	require.Error(t, v.Validate(nil, parser.New(encodeStr(t, "purple")), nil))
}

func TestStrValidatorMatches(t *testing.T) {
	v, err := NewStrValidatorWithOptions(WithStrMatches(`^[a-z]+$`))
	require.NoError(t, err)

	require.NoError(t, v.Validate(nil, parser.New(encodeStr(t, "widget")), nil))
	require.Error(t, v.Validate(nil, parser.New(encodeStr(t, "Widget1")), nil))
}

func TestStrValidatorBrokenPatternAlwaysFails(t *testing.T) {
	v, err := NewStrValidatorWithOptions(WithStrMatches("("))
	require.NoError(t, err)

	require.Error(t, v.Validate(nil, parser.New(encodeStr(t, "anything")), nil))
}

func TestStrValidatorOversizedPatternMarksBroken(t *testing.T) {
	huge := strings.Repeat("a", MaxRegexPatternBytes+1)
	v := NewStrValidator(huge)
	require.True(t, v.brokenPattern)
}

func TestStrValidatorNormalize(t *testing.T) {
	// composed is the precomposed U+00E9 "e with acute accent"; decomposed
	// is plain "e" (U+0065) followed by a combining acute accent
	// (U+0301): distinct byte sequences NFC folds to the same form.
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	v, err := NewStrValidatorWithOptions(WithStrNormalize(NormNFC), WithStrIn(composed))
	require.NoError(t, err)

	require.NoError(t, v.Validate(nil, parser.New(encodeStr(t, decomposed)), nil))
}

func TestStrValidatorQueryCheckGates(t *testing.T) {
	schemaSide, err := NewStrValidatorWithOptions()
	require.NoError(t, err)

	queryWithPattern, err := NewStrValidatorWithOptions(WithStrMatches("^x"))
	require.NoError(t, err)

	require.False(t, schemaSide.QueryCheck(nil, queryWithPattern))

	schemaSide.Regex = true
	require.True(t, schemaSide.QueryCheck(nil, queryWithPattern))
}
