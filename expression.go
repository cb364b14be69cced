// Package evalx evaluates small arithmetic, logical, and relational
// expressions against a caller-supplied parameter bag. An
// EvaluableExpression is prepared once (lexed, optimized, and planned
// into a stage tree) and can then be evaluated many times against
// different parameter bags without repeating that work.
package evalx

import (
	"strings"

	"github.com/myfstd/evalx/internal/lang"
)

// Value, Kind and Function are re-exported from internal/lang so
// callers never need to import it directly; internal/lang in turn
// never imports this package, avoiding an import cycle.
type (
	Value    = lang.Value
	Kind     = lang.Kind
	Function = lang.Function
	Token    = lang.Token
)

const (
	KindNone     = lang.KindNone
	KindInt      = lang.KindInt
	KindFloat    = lang.KindFloat
	KindBool     = lang.KindBool
	KindString   = lang.KindString
	KindPath     = lang.KindPath
	KindArray    = lang.KindArray
	KindMap      = lang.KindMap
	KindFunction = lang.KindFunction
)

var (
	NewInt      = lang.NewInt
	NewFloat    = lang.NewFloat
	NewBool     = lang.NewBool
	NewString   = lang.NewString
	NewPath     = lang.NewPath
	NewArray    = lang.NewArray
	NewMap      = lang.NewMap
	NewFunction = lang.NewFunction
	None        = lang.None

	// DefaultFunctions returns a small illustrative set of callables
	// (len, upper, lower) ready to pass to NewWithFunctions.
	DefaultFunctions = lang.DefaultFunctions
)

// Parameters is the parameter bag an EvaluableExpression is evaluated
// against: a flat mapping of name to Value. Dotted accessor paths
// (`request.user.id`) are resolved by walking nested KindMap Values
// under the leading component.
type Parameters map[string]Value

// EvaluableExpression is a parsed, plan-ready expression. The zero
// value is not usable; construct one with New or NewWithFunctions.
type EvaluableExpression struct {
	source string
	tokens []lang.Token
	stage  *lang.EvaluationStage
}

// New prepares expression with no callable functions available to it.
func New(expression string) (*EvaluableExpression, error) {
	return NewWithFunctions(expression, nil)
}

// NewWithFunctions prepares expression, making the given named
// functions available to FUNCTIONAL stages within it.
func NewWithFunctions(expression string, functions map[string]Function) (*EvaluableExpression, error) {
	tokens, stage, err := lang.Prepare(expression, functions)
	if err != nil {
		return nil, err
	}

	return &EvaluableExpression{
		source: expression,
		tokens: tokens,
		stage:  stage,
	}, nil
}

// Evaluate walks the prepared stage tree against parameters. A nil
// bag behaves like an empty one: every VARIABLE or ACCESSOR lookup
// fails with a NameError. Evaluating the same *EvaluableExpression
// concurrently from multiple goroutines is safe as long as no caller
// mutates the Parameters bag passed to a given call while it runs.
func (e *EvaluableExpression) Evaluate(parameters Parameters) (Value, error) {
	return lang.Evaluate(e.stage, lang.MapParameters(parameters))
}

// Tokens returns a copy of the token vector produced by lexing, safe
// for a caller to inspect or mutate without affecting future
// evaluations.
func (e *EvaluableExpression) Tokens() []Token {
	out := make([]Token, len(e.tokens))
	copy(out, e.tokens)
	return out
}

// String renders the original source text with surrounding whitespace
// trimmed, for diagnostics.
func (e *EvaluableExpression) String() string {
	return strings.TrimSpace(e.source)
}
