package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fogpack/fogpack/emitter"
	"github.com/fogpack/fogpack/parser"
)

func TestNullValidatorAcceptsOnlyNull(t *testing.T) {
	v := &NullValidator{}

	e := emitter.New()
	require.NoError(t, e.WriteNull())
	require.NoError(t, v.Validate(nil, parser.New(e.Bytes()), nil))

	require.Error(t, v.Validate(nil, parser.New(encodeStr(t, "not null")), nil))
}

func TestBoolValidatorConst(t *testing.T) {
	want := true
	v := &BoolValidator{Const: &want}

	e := emitter.New()
	require.NoError(t, e.WriteBool(true))
	require.NoError(t, v.Validate(nil, parser.New(e.Bytes()), nil))

	e2 := emitter.New()
	require.NoError(t, e2.WriteBool(false))
	require.Error(t, v.Validate(nil, parser.New(e2.Bytes()), nil))
}

func TestBoolValidatorQueryCheckGate(t *testing.T) {
	schemaSide := &BoolValidator{}
	want := true
	querySide := &BoolValidator{Const: &want}

	require.False(t, schemaSide.QueryCheck(nil, querySide))

	schemaSide.Query = true
	require.True(t, schemaSide.QueryCheck(nil, querySide))
}
