package params

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IObundle/versat-ai/internal/core"
)

func axiParams() []core.Parameter {
	return []core.Parameter{
		{Name: "AXI_ID_W", Kind: core.ParamKindD, Value: "4", Min: Bound(1), Max: Bound(32)},
		{Name: "AXI_ADDR_W", Kind: core.ParamKindD, Value: "30", Min: Bound(1), Max: Bound(32)},
		{Name: "MEM_ADDR_W", Kind: core.ParamKindD, Value: "AXI_ADDR_W - 2"},
		{Name: "NAME", Type: core.TypeString, Value: "iob_system"},
	}
}

func TestResolve_LeftToRight(t *testing.T) {
	env, err := Resolve("top", axiParams(), nil)
	require.NoError(t, err)

	v, ok := env.Lookup("MEM_ADDR_W")
	require.True(t, ok)
	assert.Equal(t, int64(28), v)
	assert.Equal(t, []string{"AXI_ID_W", "AXI_ADDR_W", "MEM_ADDR_W", "NAME"}, env.Names())

	name, ok := env.Get("NAME")
	require.True(t, ok)
	assert.Equal(t, "iob_system", name.Str)
	_, visible := env.Lookup("NAME")
	assert.False(t, visible, "string parameters are not usable in expressions")
}

func TestResolve_Override(t *testing.T) {
	env, err := Resolve("top", axiParams(), map[string]string{"AXI_ADDR_W": "20"})
	require.NoError(t, err)

	v, _ := env.Lookup("MEM_ADDR_W")
	assert.Equal(t, int64(18), v, "override applies before later parameters are evaluated")
}

func TestResolve_ForwardReferenceFails(t *testing.T) {
	decls := []core.Parameter{
		{Name: "A", Value: "B + 1"},
		{Name: "B", Value: "1"},
	}

	_, err := Resolve("top", decls, nil)
	var e *core.UnknownParameterReferenceError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "A", e.Parameter)
	assert.Equal(t, "B", e.Reference)
}

func TestResolve_UnknownOverride(t *testing.T) {
	_, err := Resolve("top", axiParams(), map[string]string{"NOPE": "1"})
	var e *core.UnknownParameterReferenceError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "NOPE", e.Reference)
}

func TestResolve_Bounds(t *testing.T) {
	decls := []core.Parameter{{Name: "W", Value: "8", Min: Bound(1), Max: Bound(32)}}

	for _, bad := range []string{"0", "33", "-1", "1000"} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, err := Resolve("top", decls, map[string]string{"W": bad})
			var e *core.BoundsViolationError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, "W", e.Parameter)
		})
	}

	for v := int64(1); v <= 32; v++ {
		env, err := Resolve("top", decls, map[string]string{"W": strconv.FormatInt(v, 10)})
		require.NoError(t, err, "value %d", v)
		got, _ := env.Lookup("W")
		assert.Equal(t, v, got)
	}
}

func TestResolve_DuplicateParameter(t *testing.T) {
	decls := []core.Parameter{{Name: "W", Value: "1"}, {Name: "W", Value: "2"}}

	_, err := Resolve("top", decls, nil)
	assert.Equal(t, core.KindDuplicateParameter, core.KindOf(err))
}

func TestResolve_InvalidExpression(t *testing.T) {
	decls := []core.Parameter{{Name: "W", Value: "8 *"}}

	_, err := Resolve("top", decls, nil)
	var e *core.InvalidExpressionError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "8 *", e.Expr)
}

func TestResolve_DivisionByZero(t *testing.T) {
	decls := []core.Parameter{{Name: "Z", Value: "0"}, {Name: "W", Value: "8 / Z"}}

	_, err := Resolve("top", decls, nil)
	assert.Equal(t, core.KindInvalidExpression, core.KindOf(err))
}

func TestResolve_OverflowIsNotWrapped(t *testing.T) {
	decls := []core.Parameter{
		{Name: "W", Value: "9223372036854775807 + 9223372036854775807 + 4", Min: Bound(1), Max: Bound(32)},
	}

	_, err := Resolve("top", decls, nil)
	var e *core.InvalidExpressionError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "W", e.Parameter)
	assert.ErrorContains(t, err, "integer overflow")
}

func TestResolve_ZeroPaddedLiteralIsDecimal(t *testing.T) {
	decls := []core.Parameter{{Name: "W", Value: "010"}, {Name: "V", Value: "W + 010"}}

	env, err := Resolve("top", decls, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"W": 10, "V": 20}, env.Values())
}

func TestResolve_KeepsMetadata(t *testing.T) {
	decls := []core.Parameter{{Name: "BAUD", Descr: "UART baud rate", Kind: core.ParamKindD, Value: "115200"}}

	env, err := Resolve("top", decls, nil)
	require.NoError(t, err)

	got := env.Resolved()
	require.Len(t, got, 1)
	assert.Equal(t, core.ResolvedParameter{
		Name: "BAUD", Descr: "UART baud rate", Kind: core.ParamKindD, Type: core.TypeNumeric, Int: 115200,
	}, got[0])
}

func TestParseBound(t *testing.T) {
	b, err := ParseBound("")
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = ParseBound("32")
	require.NoError(t, err)
	assert.Equal(t, int64(32), *b)

	_, err = ParseBound("x")
	assert.Error(t, err)
}
