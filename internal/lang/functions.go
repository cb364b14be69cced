package lang

import "strings"

// DefaultFunctions returns a small set of illustrative callables: not
// part of the language itself, but a convenience registry the façade
// and the CLI can hand to NewWithFunctions so FUNCTIONAL stages have
// something to call without every caller hand-rolling the same three
// functions.
func DefaultFunctions() map[string]Function {
	return map[string]Function{
		"len":   lenFunction,
		"upper": caseFunction(strings.ToUpper),
		"lower": caseFunction(strings.ToLower),
	}
}

func lenFunction(arg Value) (Value, error) {
	switch {
	case arg.IsString():
		s, _ := arg.AsString()
		return NewInt(int64(len(s))), nil
	case arg.IsArray():
		return NewInt(int64(len(arg.Array()))), nil
	}
	return None, newTypeError("len() expects a string or array, got %v", arg.Kind())
}

func caseFunction(transform func(string) string) Function {
	return func(arg Value) (Value, error) {
		s, err := arg.AsString()
		if err != nil {
			return None, err
		}
		return NewString(transform(s)), nil
	}
}
