package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPrepare(t *testing.T, expression string, functions map[string]Function) *EvaluationStage {
	t.Helper()
	_, stage, err := Prepare(expression, functions)
	require.NoError(t, err)
	return stage
}

func TestScenarioAddition(t *testing.T) {
	stage := mustPrepare(t, "51 + 49", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(100), result)
}

func TestScenarioSubtraction(t *testing.T) {
	stage := mustPrepare(t, "100 - 51", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(49), result)
}

func TestScenarioComparatorAgainstParameters(t *testing.T) {
	stage := mustPrepare(t, "(requests_made * requests_succeeded / 100) >= 90", nil)
	params := MapParameters{
		"requests_made":      NewFloat(99.0),
		"requests_succeeded": NewFloat(90.0),
	}
	result, err := Evaluate(stage, params)
	require.NoError(t, err)
	assert.Equal(t, NewBool(false), result)
}

func TestScenarioStringConcatenation(t *testing.T) {
	stage := mustPrepare(t, "'foo' + 123 == 'foo123'", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewBool(true), result)
}

func TestScenarioNonCommutativeChainMatchesLeftToRight(t *testing.T) {
	stage := mustPrepare(t, "1 - 2 - 4 - 8", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(-13), result)
}

func TestScenarioNestedAccessor(t *testing.T) {
	stage := mustPrepare(t, "foo.Nested.Funk", nil)
	params := MapParameters{
		"foo": NewMap(map[string]Value{
			"Nested": NewMap(map[string]Value{
				"Funk": NewString("funkalicious"),
			}),
		}),
	}
	result, err := Evaluate(stage, params)
	require.NoError(t, err)
	assert.Equal(t, NewString("funkalicious"), result)
}

func TestScenarioFunctionCall(t *testing.T) {
	functions := map[string]Function{
		"passthrough": func(args Value) (Value, error) {
			items := args.Array()
			left, _ := items[0].AsNumeric()
			right, _ := items[1].AsNumeric()
			return NewFloat(left + right), nil
		},
	}
	stage := mustPrepare(t, "passthrough(1, 2)", functions)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(3), result)
}

func TestScenarioLogicalPrecedence(t *testing.T) {
	stage := mustPrepare(t, "true && true || false && false", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewBool(true), result)
}

func TestEmptyExpressionEvaluatesToNone(t *testing.T) {
	stage := mustPrepare(t, "", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.True(t, result.IsNone())
}

func TestVariableNotInParamsIsNameError(t *testing.T) {
	stage := mustPrepare(t, "missing_var", nil)
	_, err := Evaluate(stage, MapParameters{})
	require.Error(t, err)
	var nameErr *NameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestTernaryShortCircuitsUnusedBranch(t *testing.T) {
	calls := 0
	functions := map[string]Function{
		"explode": func(Value) (Value, error) {
			calls++
			return None, newEvalError("should never be called")
		},
	}
	stage := mustPrepare(t, "true ? 1 : explode()", functions)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(1), result)
	assert.Equal(t, 0, calls, "false branch of a taken ternary must not evaluate")
}

func TestCoalesceReturnsFirstNonNone(t *testing.T) {
	stage := mustPrepare(t, "missing_var ?? 7", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(7), result)
}

func TestRegexStage(t *testing.T) {
	stage := mustPrepare(t, `'hello world' =~ 'wor.d'`, nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewBool(true), result)
}

func TestBitwiseAndShift(t *testing.T) {
	stage := mustPrepare(t, "(6 & 3) + (1 << 3)", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(10), result)
}

func TestInOperator(t *testing.T) {
	stage := mustPrepare(t, "2 in (1, 2, 3)", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewBool(true), result)
}

func TestParenthesizedGroupIsNotFlattenedIntoOuterChain(t *testing.T) {
	stage := mustPrepare(t, "1 - (2 - 3)", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(2), result)
}

func TestParenthesizedChainStillGetsItsOwnAssociativityFix(t *testing.T) {
	stage := mustPrepare(t, "10 - (5 - 2 - 1)", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(8), result)
}

func TestBareNumericLiteralKeepsFloatKind(t *testing.T) {
	stage := mustPrepare(t, "true ? 1 : 2", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(1), result)
	assert.True(t, result.IsFloat())
}

func TestUnaryPrecedence(t *testing.T) {
	stage := mustPrepare(t, "-2 ** 2", nil)
	result, err := Evaluate(stage, MapParameters{})
	require.NoError(t, err)
	assert.Equal(t, NewFloat(4), result)
}
