package lang

import (
	"math"
	"regexp"
)

// stageTypeCheck validates a single operand's Kind before an operator
// runs. Expressed as a method expression (Value.IsBool and friends
// already have exactly this shape), so most stages need no wrapper.
type stageTypeCheck func(Value) bool

// stageCombinedTypeCheck validates both operands together, for
// operators like + whose legal type combinations aren't expressible as
// two independent per-side checks.
type stageCombinedTypeCheck func(left, right Value) bool

// evaluationOperator is the function an evaluationStage carries out
// once its children (if any) have been evaluated.
type evaluationOperator func(left, right Value, parameters Parameters) (Value, error)

// evaluationStage is one node of the plan tree: a symbol, an operator
// closure, the type checks that must pass before the operator runs,
// and up to two children. Leaf stages (LITERAL, VALUE, ACCESS) have no
// children; their operator ignores both arguments.
type evaluationStage struct {
	symbol Symbol
	left   *evaluationStage
	right  *evaluationStage

	operator evaluationOperator

	leftTypeCheck     stageTypeCheck
	rightTypeCheck    stageTypeCheck
	combinedTypeCheck stageCombinedTypeCheck
	typeErrorFormat   string
}

// isShortCircuitable reports whether this stage's right child may be
// skipped depending on the left operand's value. Only the ternary
// family qualifies: AND/OR are specified to always evaluate both
// sides (see DESIGN.md), since the post-order walk has no other
// mechanism for suppressing a child's side effects.
func (s *evaluationStage) isShortCircuitable() bool {
	switch s.symbol {
	case SymTernaryTrue, SymTernaryFalse, SymCoalesce:
		return true
	}
	return false
}

const (
	modifierErrorFormat   = "value %v cannot be used with the modifier operator %v"
	logicalErrorFormat    = "value %v cannot be used with the logical operator %v"
	comparatorErrorFormat = "value %v cannot be used with the comparator %v"
	ternaryErrorFormat    = "value %v cannot be used with the ternary operator %v"
	prefixErrorFormat     = "value %v cannot be used with the prefix operator %v"
	bitwiseErrorFormat    = "value %v cannot be used with the bitwise operator %v"
)

func additionTypeCheck(left, right Value) bool {
	if left.IsNumeric() && right.IsNumeric() {
		return true
	}
	return left.IsString() || right.IsString()
}

func comparatorTypeCheck(left, right Value) bool {
	return (left.IsNumeric() && right.IsNumeric()) || (left.IsString() && right.IsString())
}

// --- leaf operators -------------------------------------------------

// literalToValue converts a token's raw payload (as produced by the
// lexer, possibly rewritten by optimizeTokens) into a Value.
func literalToValue(raw any) Value {
	switch v := raw.(type) {
	case int64:
		return NewInt(v)
	case float64:
		return NewFloat(v)
	case bool:
		return NewBool(v)
	case string:
		return NewString(v)
	case *regexp.Regexp:
		return NewPattern(v)
	}
	return None
}

func makeLiteralStage(raw any) evaluationOperator {
	return makeLiteralStageValue(literalToValue(raw))
}

// makeLiteralStageValue wraps an already-constructed Value, used both
// for plain literals and for the folded result of constant-elision
// (see optimize.go).
func makeLiteralStageValue(value Value) evaluationOperator {
	return func(left, right Value, parameters Parameters) (Value, error) {
		return value, nil
	}
}

func makeParameterStage(name string) evaluationOperator {
	return func(left, right Value, parameters Parameters) (Value, error) {
		value, found := parameters.get(name)
		if !found {
			return None, newNameError("no parameter %q found", name)
		}
		return value, nil
	}
}

func makeFunctionStage(fn Function) evaluationOperator {
	return func(left, right Value, parameters Parameters) (Value, error) {
		result, err := fn(right)
		if err != nil {
			return None, newEvalError("function call failed: %v", err)
		}
		return result, nil
	}
}

// --- arithmetic -------------------------------------------------------

func addStage(left, right Value, parameters Parameters) (Value, error) {
	if left.IsString() || right.IsString() {
		ls, err := left.AsString()
		if err != nil {
			return None, err
		}
		rs, err := right.AsString()
		if err != nil {
			return None, err
		}
		return NewString(ls + rs), nil
	}

	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	return NewFloat(lf + rf), nil
}

func subtractStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	return NewFloat(lf - rf), nil
}

func multiplyStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	return NewFloat(lf * rf), nil
}

// divideStage leaves division by zero to Go's native float semantics
// (±Inf or NaN) rather than raising an EvalError — the host can test
// the result with math.IsInf/IsNaN if it cares.
func divideStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	return NewFloat(lf / rf), nil
}

func modulusStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	ri := int64(rf)
	if ri == 0 {
		return None, newEvalError("division by zero in modulus")
	}
	return NewFloat(float64(int64(lf) % ri)), nil
}

func exponentStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	return NewFloat(math.Pow(lf, rf)), nil
}

// --- comparators ------------------------------------------------------

func equalStage(left, right Value, parameters Parameters) (Value, error) {
	return NewBool(left.Equal(right)), nil
}

func notEqualStage(left, right Value, parameters Parameters) (Value, error) {
	return NewBool(!left.Equal(right)), nil
}

func gtStage(left, right Value, parameters Parameters) (Value, error) {
	cmp, err := left.compareOrdering(right)
	if err != nil {
		return None, err
	}
	return NewBool(cmp > 0), nil
}

func ltStage(left, right Value, parameters Parameters) (Value, error) {
	cmp, err := left.compareOrdering(right)
	if err != nil {
		return None, err
	}
	return NewBool(cmp < 0), nil
}

func gteStage(left, right Value, parameters Parameters) (Value, error) {
	cmp, err := left.compareOrdering(right)
	if err != nil {
		return None, err
	}
	return NewBool(cmp >= 0), nil
}

func lteStage(left, right Value, parameters Parameters) (Value, error) {
	cmp, err := left.compareOrdering(right)
	if err != nil {
		return None, err
	}
	return NewBool(cmp <= 0), nil
}

// regexStage accepts either a precompiled pattern (when optimizeTokens
// has run) or a plain string (compiled here, once per call).
func regexStage(left, right Value, parameters Parameters) (Value, error) {
	ls, err := left.AsString()
	if err != nil {
		return None, err
	}

	re := right.Pattern()
	if re == nil {
		rs, err := right.AsString()
		if err != nil {
			return None, err
		}
		re, err = regexp.Compile(rs)
		if err != nil {
			return None, newEvalError("invalid regex %q: %v", rs, err)
		}
	}

	return NewBool(re.MatchString(ls)), nil
}

func notRegexStage(left, right Value, parameters Parameters) (Value, error) {
	result, err := regexStage(left, right, parameters)
	if err != nil {
		return None, err
	}
	return NewBool(!result.Bool()), nil
}

func inStage(left, right Value, parameters Parameters) (Value, error) {
	return NewBool(containsValue(right.Array(), left)), nil
}

// --- logical ------------------------------------------------------

func andStage(left, right Value, parameters Parameters) (Value, error) {
	lb, _ := left.AsBool()
	rb, _ := right.AsBool()
	return NewBool(lb && rb), nil
}

func orStage(left, right Value, parameters Parameters) (Value, error) {
	lb, _ := left.AsBool()
	rb, _ := right.AsBool()
	return NewBool(lb || rb), nil
}

// --- bitwise --------------------------------------------------------

func bitwiseAndStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	return NewFloat(float64(int64(lf) & int64(rf))), nil
}

func bitwiseOrStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	return NewFloat(float64(int64(lf) | int64(rf))), nil
}

func bitwiseXorStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	return NewFloat(float64(int64(lf) ^ int64(rf))), nil
}

func leftShiftStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	if rf < 0 {
		return None, newEvalError("negative shift count %v", rf)
	}
	return NewFloat(float64(int64(lf) << uint64(int64(rf)))), nil
}

func rightShiftStage(left, right Value, parameters Parameters) (Value, error) {
	lf, _ := left.AsNumeric()
	rf, _ := right.AsNumeric()
	if rf < 0 {
		return None, newEvalError("negative shift count %v", rf)
	}
	return NewFloat(float64(int64(lf) >> uint64(int64(rf)))), nil
}

// --- prefix ---------------------------------------------------------

func negateStage(left, right Value, parameters Parameters) (Value, error) {
	rf, _ := right.AsNumeric()
	return NewFloat(-rf), nil
}

func invertStage(left, right Value, parameters Parameters) (Value, error) {
	rb, _ := right.AsBool()
	return NewBool(!rb), nil
}

func bitwiseNotStage(left, right Value, parameters Parameters) (Value, error) {
	rf, _ := right.AsNumeric()
	return NewFloat(float64(^int64(rf))), nil
}

// --- ternary / coalesce ------------------------------------------------

// ternaryIfStage backs the TERNARY_TRUE stage produced for "cond ? a".
// When the condition is false the right child was never evaluated (see
// evaluator.go), so right is still None; returning None here lets the
// enclosing TERNARY_FALSE stage know its left branch wasn't taken.
func ternaryIfStage(left, right Value, parameters Parameters) (Value, error) {
	cond, _ := left.AsBool()
	if cond {
		return right, nil
	}
	return None, nil
}

// ternaryElseStage backs both TERNARY_FALSE ("a : b") and COALESCE
// ("a ?? b"): whichever side produced a real value wins.
func ternaryElseStage(left, right Value, parameters Parameters) (Value, error) {
	if !left.IsNone() {
		return left, nil
	}
	return right, nil
}

// --- structural -------------------------------------------------------

func noopStageRight(left, right Value, parameters Parameters) (Value, error) {
	return right, nil
}

// separatorStage accumulates comma-joined operands into a single array,
// appending to a copy of a left-hand array rather than nesting one
// array inside another.
func separatorStage(left, right Value, parameters Parameters) (Value, error) {
	if left.IsArray() {
		merged := append(append([]Value{}, left.Array()...), right)
		return NewArray(merged), nil
	}
	return NewArray([]Value{left, right}), nil
}

// stageSymbolMap resolves a Symbol to its operator once the planner
// knows a stage isn't a leaf (LITERAL/VALUE/ACCESS carry their own
// closures built by the make*Stage constructors above).
var stageSymbolMap = map[Symbol]evaluationOperator{
	SymEQ:            equalStage,
	SymNEQ:           notEqualStage,
	SymGT:            gtStage,
	SymLT:            ltStage,
	SymGTE:           gteStage,
	SymLTE:           lteStage,
	SymREQ:           regexStage,
	SymNREQ:          notRegexStage,
	SymIN:            inStage,
	SymAND:           andStage,
	SymOR:            orStage,
	SymBitwiseAnd:    bitwiseAndStage,
	SymBitwiseOr:     bitwiseOrStage,
	SymBitwiseXor:    bitwiseXorStage,
	SymBitwiseLShift: leftShiftStage,
	SymBitwiseRShift: rightShiftStage,
	SymPlus:          addStage,
	SymMinus:         subtractStage,
	SymMultiply:      multiplyStage,
	SymDivide:        divideStage,
	SymModulus:       modulusStage,
	SymExponent:      exponentStage,
	SymNegate:        negateStage,
	SymInvert:        invertStage,
	SymBitwiseNot:    bitwiseNotStage,
	SymTernaryTrue:   ternaryIfStage,
	SymTernaryFalse:  ternaryElseStage,
	SymCoalesce:      ternaryElseStage,
	SymSeparate:      separatorStage,
}

func typeCheck(check stageTypeCheck, value Value, symbol Symbol, format string) error {
	if check == nil || check(value) {
		return nil
	}
	return newTypeError(format, value.Kind(), symbol)
}
