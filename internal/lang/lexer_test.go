package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexEmptyExpression(t *testing.T) {
	tokens, err := Lex("", nil)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestLexArithmetic(t *testing.T) {
	tokens, err := Lex("51 + 49", nil)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, KindNumeric, tokens[0].Kind)
	assert.Equal(t, float64(51), tokens[0].Value)
	assert.Equal(t, KindModifier, tokens[1].Kind)
	assert.Equal(t, "+", tokens[1].Value)
	assert.Equal(t, float64(49), tokens[2].Value)
}

func TestLexHexLiteral(t *testing.T) {
	tokens, err := Lex("0xFF", nil)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, int64(255), tokens[0].Value)
}

func TestLexHexWithNoDigitsIsLexError(t *testing.T) {
	_, err := Lex("0x", nil)
	require.Error(t, err)
	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestLexUnbalancedParenIsLexError(t *testing.T) {
	_, err := Lex("(1 + 2", nil)
	assert.Error(t, err)
}

func TestLexUnbalancedBracketIsLexError(t *testing.T) {
	_, err := Lex("[unclosed", nil)
	assert.Error(t, err)
}

func TestLexHangingAccessorIsLexError(t *testing.T) {
	_, err := Lex("foo.bar.", nil)
	assert.Error(t, err)
}

func TestLexAccessorPath(t *testing.T) {
	tokens, err := Lex("foo.Nested.Funk", nil)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, KindAccessor, tokens[0].Kind)
	assert.Equal(t, []string{"foo", "Nested", "Funk"}, tokens[0].Value)
}

func TestLexQuotedStringAndBooleans(t *testing.T) {
	tokens, err := Lex(`'foo' + true`, nil)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, KindString, tokens[0].Kind)
	assert.Equal(t, "foo", tokens[0].Value)
	assert.Equal(t, KindBoolean, tokens[2].Kind)
	assert.Equal(t, true, tokens[2].Value)
}

func TestLexIllegalTrailingTokenIsRejected(t *testing.T) {
	_, err := Lex("1 +", nil)
	assert.Error(t, err)
}

func TestLexFunctionCall(t *testing.T) {
	functions := map[string]Function{
		"passthrough": func(v Value) (Value, error) { return v, nil },
	}
	tokens, err := Lex("passthrough(1, 2)", functions)
	require.NoError(t, err)
	require.Len(t, tokens, 6)
	assert.Equal(t, KindFunction, tokens[0].Kind)
	assert.Equal(t, KindClause, tokens[1].Kind)
	assert.Equal(t, KindSeparator, tokens[3].Kind)
	assert.Equal(t, KindClauseClose, tokens[5].Kind)
}
