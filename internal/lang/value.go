package lang

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/samber/lo"
)

// Kind tags the dynamic type carried by a Value. A Value carries
// exactly one Kind at a time.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindPath     // an ordered sequence of strings: an accessor path
	KindArray    // an ordered sequence of Values
	KindMap      // a mapping from string to Value, a nested parameter object
	KindFunction // an opaque callable reference

	// KindPattern holds a precompiled regular expression. It is not one
	// of the tags named by the data model, but REQ/NREQ's right operand
	// needs some way to carry a pattern compiled once at plan time
	// rather than recompiled on every evaluation (see DESIGN.md); giving
	// it a Kind of its own lets it flow through the same stage-typed
	// plumbing as every other operand instead of a side channel.
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindPath:
		return "path"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindFunction:
		return "function"
	case KindPattern:
		return "pattern"
	}
	return "none"
}

// Function is the shape a host-supplied callable takes: one dynamically
// typed argument (frequently an array built up by repeated SEPARATE
// stages), one dynamically typed result.
type Function func(Value) (Value, error)

// Value is a tagged union over the eight concrete shapes described in
// the data model: 64-bit integer, floating point, boolean, string,
// accessor path, array, map, and function. The zero Value is the
// "none" sentinel used as the left/right operand of a stage that has
// no corresponding child.
//
// Open question resolved: the spec's "32-bit float"
// tag is implemented as float64. Storing the tag as float32 would
// lose precision on every arithmetic stage for no behavioral benefit,
// and every literal expected result in spec §8 is exactly
// representable either way.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	path []string
	arr  []Value
	m    map[string]Value
	fn   Function
	re   *regexp.Regexp
}

// None is the sentinel value used where the evaluator's contract calls
// for ⊥: a node with no left or no right child.
var None = Value{kind: KindNone}

func NewInt(v int64) Value           { return Value{kind: KindInt, i: v} }
func NewFloat(v float64) Value       { return Value{kind: KindFloat, f: v} }
func NewBool(v bool) Value           { return Value{kind: KindBool, b: v} }
func NewString(v string) Value       { return Value{kind: KindString, s: v} }
func NewPath(v []string) Value       { return Value{kind: KindPath, path: v} }
func NewArray(v []Value) Value       { return Value{kind: KindArray, arr: v} }
func NewMap(v map[string]Value) Value { return Value{kind: KindMap, m: v} }
func NewFunction(v Function) Value   { return Value{kind: KindFunction, fn: v} }
func NewPattern(v *regexp.Regexp) Value { return Value{kind: KindPattern, re: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNone() bool     { return v.kind == KindNone }
func (v Value) IsInt() bool      { return v.kind == KindInt }
func (v Value) IsFloat() bool    { return v.kind == KindFloat }
func (v Value) IsBool() bool     { return v.kind == KindBool }
func (v Value) IsString() bool   { return v.kind == KindString }
func (v Value) IsPath() bool     { return v.kind == KindPath }
func (v Value) IsArray() bool    { return v.kind == KindArray }
func (v Value) IsMap() bool      { return v.kind == KindMap }
func (v Value) IsFunction() bool { return v.kind == KindFunction }
func (v Value) IsPattern() bool  { return v.kind == KindPattern }
func (v Value) IsNumeric() bool  { return v.kind == KindInt || v.kind == KindFloat }
func (v Value) IsRegexOrString() bool { return v.kind == KindString || v.kind == KindPattern }

func (v Value) Path() []string         { return v.path }
func (v Value) Array() []Value         { return v.arr }
func (v Value) Map() map[string]Value  { return v.m }
func (v Value) Function() Function     { return v.fn }
func (v Value) Bool() bool             { return v.b }
func (v Value) Pattern() *regexp.Regexp { return v.re }

// AsString renders the canonical textual form of the value. Strings
// pass through unchanged; integers, floats and booleans are rendered
// in their canonical textual form; every other kind is a TypeError.
func (v Value) AsString() (string, error) {
	switch v.kind {
	case KindString:
		return v.s, nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64), nil
	case KindBool:
		return strconv.FormatBool(v.b), nil
	}
	return "", newTypeError("cannot coerce %v to string", v.kind)
}

// AsNumeric coerces an int or float value to float64. Any other kind
// is a TypeError.
func (v Value) AsNumeric() (float64, error) {
	switch v.kind {
	case KindInt:
		return float64(v.i), nil
	case KindFloat:
		return v.f, nil
	}
	return 0, newTypeError("cannot coerce %v to a number", v.kind)
}

// AsBool coerces a bool value. Any other kind is a TypeError.
func (v Value) AsBool() (bool, error) {
	if v.kind == KindBool {
		return v.b, nil
	}
	return false, newTypeError("cannot coerce %v to bool", v.kind)
}

// Equal implements EQ/NEQ equality: same-tag element comparison,
// cross-tag numeric comparison for int vs float, false for every other
// cross-tag pairing.
func (v Value) Equal(other Value) bool {
	if v.kind == other.kind {
		switch v.kind {
		case KindNone:
			return true
		case KindInt:
			return v.i == other.i
		case KindFloat:
			return v.f == other.f
		case KindBool:
			return v.b == other.b
		case KindString:
			return v.s == other.s
		case KindPath:
			if len(v.path) != len(other.path) {
				return false
			}
			for i := range v.path {
				if v.path[i] != other.path[i] {
					return false
				}
			}
			return true
		case KindArray:
			if len(v.arr) != len(other.arr) {
				return false
			}
			for i := range v.arr {
				if !v.arr[i].Equal(other.arr[i]) {
					return false
				}
			}
			return true
		case KindMap:
			if len(v.m) != len(other.m) {
				return false
			}
			for key, item := range v.m {
				otherItem, ok := other.m[key]
				if !ok || !item.Equal(otherItem) {
					return false
				}
			}
			return true
		case KindFunction:
			return fmt.Sprintf("%p", v.fn) == fmt.Sprintf("%p", other.fn)
		}
		return false
	}

	if v.IsNumeric() && other.IsNumeric() {
		left, _ := v.AsNumeric()
		right, _ := other.AsNumeric()
		return left == right
	}

	return false
}

// compareOrdering implements <, <=, >, >=: lexicographic for two
// strings, numeric for two numbers, a TypeError otherwise. Returns a
// negative, zero, or positive int the way strings.Compare does.
func (v Value) compareOrdering(other Value) (int, error) {
	if v.IsString() && other.IsString() {
		switch {
		case v.s < other.s:
			return -1, nil
		case v.s > other.s:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if v.IsNumeric() && other.IsNumeric() {
		left, _ := v.AsNumeric()
		right, _ := other.AsNumeric()
		switch {
		case left < right:
			return -1, nil
		case left > right:
			return 1, nil
		default:
			return 0, nil
		}
	}

	return 0, newTypeError("cannot compare %v with %v", v.kind, other.kind)
}

// containsValue implements the scan performed by the IN operator: does
// the haystack array contain an element structurally equal to needle?
func containsValue(haystack []Value, needle Value) bool {
	return lo.ContainsBy(haystack, func(candidate Value) bool {
		return candidate.Equal(needle)
	})
}
