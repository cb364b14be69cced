package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAsNumericCoercions(t *testing.T) {
	f, err := NewInt(7).AsNumeric()
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	_, err = NewString("nope").AsNumeric()
	assert.Error(t, err)
}

func TestValueAsStringCoercions(t *testing.T) {
	s, err := NewFloat(1.5).AsString()
	require.NoError(t, err)
	assert.Equal(t, "1.5", s)

	s, err = NewBool(true).AsString()
	require.NoError(t, err)
	assert.Equal(t, "true", s)
}

func TestValueEqual(t *testing.T) {
	assert.True(t, NewInt(3).Equal(NewFloat(3.0)), "int and float compare numerically")
	assert.False(t, NewInt(3).Equal(NewString("3")), "no cross-tag string/number equality")
	assert.True(t, None.Equal(None))

	arr1 := NewArray([]Value{NewInt(1), NewString("a")})
	arr2 := NewArray([]Value{NewInt(1), NewString("a")})
	arr3 := NewArray([]Value{NewInt(1), NewString("b")})
	assert.True(t, arr1.Equal(arr2))
	assert.False(t, arr1.Equal(arr3))
}

func TestValueCompareOrdering(t *testing.T) {
	cmp, err := NewInt(1).compareOrdering(NewInt(2))
	require.NoError(t, err)
	assert.Negative(t, cmp)

	cmp, err = NewString("b").compareOrdering(NewString("a"))
	require.NoError(t, err)
	assert.Positive(t, cmp)

	_, err = NewBool(true).compareOrdering(NewInt(1))
	assert.Error(t, err)
}

func TestContainsValue(t *testing.T) {
	haystack := []Value{NewInt(1), NewString("x"), NewBool(true)}
	assert.True(t, containsValue(haystack, NewString("x")))
	assert.False(t, containsValue(haystack, NewString("y")))
}
