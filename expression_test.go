package evalx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndEvaluateAddition(t *testing.T) {
	expr, err := New("51 + 49")
	require.NoError(t, err)

	result, err := expr.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, NewFloat(100), result)
}

func TestEvaluateAgainstParameters(t *testing.T) {
	expr, err := New("(requests_made * requests_succeeded / 100) >= 90")
	require.NoError(t, err)

	result, err := expr.Evaluate(Parameters{
		"requests_made":      NewFloat(99.0),
		"requests_succeeded": NewFloat(90.0),
	})
	require.NoError(t, err)
	assert.Equal(t, NewBool(false), result)
}

func TestEvaluateSamePreparedExpressionMultipleTimes(t *testing.T) {
	expr, err := New("response_time < threshold")
	require.NoError(t, err)

	fast, err := expr.Evaluate(Parameters{"response_time": NewFloat(10), "threshold": NewFloat(100)})
	require.NoError(t, err)
	assert.Equal(t, NewBool(true), fast)

	slow, err := expr.Evaluate(Parameters{"response_time": NewFloat(200), "threshold": NewFloat(100)})
	require.NoError(t, err)
	assert.Equal(t, NewBool(false), slow)
}

func TestNewWithFunctions(t *testing.T) {
	expr, err := NewWithFunctions("upper(name)", DefaultFunctions())
	require.NoError(t, err)

	result, err := expr.Evaluate(Parameters{"name": NewString("alice")})
	require.NoError(t, err)
	assert.Equal(t, NewString("ALICE"), result)
}

func TestAccessorDottedPath(t *testing.T) {
	expr, err := New("foo.Nested.Funk == 'funkalicious'")
	require.NoError(t, err)

	result, err := expr.Evaluate(Parameters{
		"foo": NewMap(map[string]Value{
			"Nested": NewMap(map[string]Value{
				"Funk": NewString("funkalicious"),
			}),
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, NewBool(true), result)
}

func TestStringPlusNumberConcatenates(t *testing.T) {
	expr, err := New("'foo' + 123 == 'foo123'")
	require.NoError(t, err)

	result, err := expr.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, NewBool(true), result)
}

func TestTokensReturnsIndependentCopy(t *testing.T) {
	expr, err := New("1 + 2")
	require.NoError(t, err)

	tokens := expr.Tokens()
	require.Len(t, tokens, 3)
	tokens[0] = Token{}

	again := expr.Tokens()
	assert.NotEqual(t, tokens[0], again[0])
}

func TestStringReturnsTrimmedSource(t *testing.T) {
	expr, err := New("  1 + 2  ")
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", expr.String())
}

func TestUnbalancedParenthesisIsError(t *testing.T) {
	_, err := New("(1 + 2")
	assert.Error(t, err)
}

func TestUnknownVariableIsNameErrorAtEvaluation(t *testing.T) {
	expr, err := New("unknown_var + 1")
	require.NoError(t, err)

	_, err = expr.Evaluate(nil)
	assert.Error(t, err)
}

func TestTypeMismatchIsTypeError(t *testing.T) {
	expr, err := New("true + 1")
	require.NoError(t, err)

	_, err = expr.Evaluate(nil)
	assert.Error(t, err)
}

func TestEmptyExpressionEvaluatesToNone(t *testing.T) {
	expr, err := New("")
	require.NoError(t, err)

	result, err := expr.Evaluate(nil)
	require.NoError(t, err)
	assert.True(t, result.IsNone())
}
