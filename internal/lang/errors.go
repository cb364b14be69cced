package lang

import "fmt"

// LexError reports a failure to turn the source text into tokens:
// an unclosed bracket or quote, a hanging accessor, or an unsupported
// symbol.
type LexError struct {
	Message string
}

func (e *LexError) Error() string { return e.Message }

func newLexError(format string, args ...any) error {
	return &LexError{Message: fmt.Sprintf(format, args...)}
}

// ParseError reports a failure to build a stage tree from a token
// stream: an empty stage where one was required, an un-plannable
// token, or an unsupported construct such as a method call after an
// accessor.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

func newParseError(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// TypeError reports that an operand failed a per-symbol type check
// during evaluation.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }

func newTypeError(format string, args ...any) error {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

// NameError reports that a variable name or accessor root was not
// found in the parameter bag.
type NameError struct {
	Message string
}

func (e *NameError) Error() string { return e.Message }

func newNameError(format string, args ...any) error {
	return &NameError{Message: fmt.Sprintf(format, args...)}
}

// EvalError reports a domain failure at evaluation time that isn't a
// type mismatch: division by zero, a callable that returned an error,
// or an operator explicitly marked unimplemented.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string { return e.Message }

func newEvalError(format string, args ...any) error {
	return &EvalError{Message: fmt.Sprintf(format, args...)}
}
