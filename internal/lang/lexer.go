package lang

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Lex turns an expression's source text into a token vector, rejecting
// illegal kind-to-kind transitions as soon as they're seen (rather than
// silently truncating the token vector, which is what the reference
// implementation this design is adapted from does — see DESIGN.md).
func Lex(source string, functions map[string]Function) ([]Token, error) {
	var tokens []Token

	stream := newCharStream(source)
	state := lexerStates[0]

	for stream.canRead() {
		token, found, err := readToken(stream, state, functions)
		if err != nil {
			return nil, err
		}
		if !found {
			break
		}

		if !state.canTransitionTo(token.Kind) {
			return nil, newLexError("cannot transition token types from %s to %s", state.kind, token.Kind)
		}

		state, err = lookupState(token.Kind)
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}

	// An expression that lexes to zero tokens is valid — it evaluates
	// to the "none" sentinel (see Evaluate in evaluator.go) rather than
	// failing outright.
	if len(tokens) > 0 && !state.isTerminal {
		return nil, newLexError("unexpected end of expression")
	}

	if err := checkBalance(tokens); err != nil {
		return nil, err
	}

	return tokens, nil
}

func readToken(stream *charStream, state tokenState, functions map[string]Function) (Token, bool, error) {
	for stream.canRead() {
		character := stream.readCharacter()

		if unicode.IsSpace(character) {
			continue
		}

		switch {
		case isNumericStart(character):
			return readNumeric(stream, character)

		case character == ',':
			return Token{Kind: KindSeparator, Value: ","}, true, nil

		case character == '[':
			value, completed := readUntilFalse(stream, true, false, true, isNotClosingBracket)
			if !completed {
				return Token{}, false, newLexError("unclosed parameter bracket")
			}
			stream.rewind(-1)
			return Token{Kind: KindVariable, Value: value}, true, nil

		case unicode.IsLetter(character):
			return readWord(stream, character, functions)

		case character == '\'' || character == '"':
			return readQuoted(stream, character)

		case character == '(':
			return Token{Kind: KindClause, Value: character}, true, nil

		case character == ')':
			return Token{Kind: KindClauseClose, Value: character}, true, nil

		default:
			return readSymbol(stream, character, state)
		}
	}

	return Token{}, false, nil
}

func readNumeric(stream *charStream, first rune) (Token, bool, error) {
	if first == '0' && stream.canRead() {
		next := stream.readCharacter()
		if next == 'x' {
			body, _ := readUntilFalse(stream, false, true, true, isHexDigit)
			value, err := strconv.ParseUint(body, 16, 64)
			if err != nil {
				return Token{}, false, newLexError("unable to parse hex value %q to uint64", body)
			}
			return Token{Kind: KindNumeric, Value: int64(value)}, true, nil
		}
		stream.rewind(1)
	}

	stream.rewind(1)
	body, _ := readUntilFalse(stream, false, true, true, isNumeric)

	// Every non-hex numeric literal parses as a float, regardless of
	// whether its text contains a ".". KindInt is reserved for the
	// hex-prefixed branch above.
	value, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return Token{}, false, newLexError("unable to parse numeric value %q to float64", body)
	}
	return Token{Kind: KindNumeric, Value: value}, true, nil
}

func readWord(stream *charStream, first rune, functions map[string]Function) (Token, bool, error) {
	stream.rewind(1)
	name, _ := readUntilFalse(stream, false, true, true, isVariableName)

	switch name {
	case "true":
		return Token{Kind: KindBoolean, Value: true}, true, nil
	case "false":
		return Token{Kind: KindBoolean, Value: false}, true, nil
	}

	if lowered := strings.ToLower(name); lowered == "in" {
		return Token{Kind: KindComparator, Value: "in"}, true, nil
	}

	if fn, found := functions[name]; found {
		return Token{Kind: KindFunction, Value: fn}, true, nil
	}

	if idx := strings.Index(name, "."); idx > 0 {
		if name[len(name)-1] == '.' {
			return Token{}, false, newLexError("hanging accessor on token %q", name)
		}
		return Token{Kind: KindAccessor, Value: strings.Split(name, ".")}, true, nil
	}

	return Token{Kind: KindVariable, Value: name}, true, nil
}

func readQuoted(stream *charStream, quote rune) (Token, bool, error) {
	notQuote := func(c rune) bool { return c != quote }
	value, completed := readUntilFalse(stream, true, false, true, notQuote)
	if !completed {
		return Token{}, false, newLexError("unclosed string literal")
	}
	stream.rewind(-1)

	if when, ok := tryParseTime(value); ok {
		return Token{Kind: KindTime, Value: when}, true, nil
	}
	return Token{Kind: KindString, Value: value}, true, nil
}

func readSymbol(stream *charStream, first rune, state tokenState) (Token, bool, error) {
	stream.rewind(1)
	symbol, _ := readUntilFalse(stream, false, true, true, isNotDelimiter)

	if state.canTransitionTo(KindPrefix) {
		if _, found := prefixSymbols[symbol]; found {
			return Token{Kind: KindPrefix, Value: symbol}, true, nil
		}
	}
	if _, found := modifierSymbols[symbol]; found {
		return Token{Kind: KindModifier, Value: symbol}, true, nil
	}
	if _, found := logicalSymbols[symbol]; found {
		return Token{Kind: KindLogicalOp, Value: symbol}, true, nil
	}
	if _, found := comparatorSymbols[symbol]; found {
		return Token{Kind: KindComparator, Value: symbol}, true, nil
	}
	if _, found := ternarySymbols[symbol]; found {
		return Token{Kind: KindTernary, Value: symbol}, true, nil
	}

	return Token{}, false, newLexError("invalid token: %q", symbol)
}

// readUntilFalse reads characters from stream until condition returns
// false (or whitespace breaks the run, if breakWhitespace is set),
// honoring backslash escaping. Returns the accumulated string and
// whether the run ended on its own (true) rather than the stream
// simply running out (false).
func readUntilFalse(stream *charStream, includeWhitespace, breakWhitespace, allowEscaping bool, condition func(rune) bool) (string, bool) {
	var sb strings.Builder

	for stream.canRead() {
		character := stream.readCharacter()

		if allowEscaping && character == '\\' {
			character = stream.readCharacter()
			sb.WriteRune(character)
			continue
		}

		if unicode.IsSpace(character) {
			if breakWhitespace && sb.Len() > 0 {
				return sb.String(), true
			}
			if !includeWhitespace {
				continue
			}
		}

		if condition(character) {
			sb.WriteRune(character)
		} else {
			stream.rewind(1)
			return sb.String(), true
		}
	}

	return sb.String(), false
}

func isNumericStart(c rune) bool { return unicode.IsDigit(c) || c == '.' }
func isNumeric(c rune) bool      { return unicode.IsDigit(c) || c == '.' }

func isHexDigit(c rune) bool {
	c = unicode.ToLower(c)
	return unicode.IsDigit(c) || (c >= 'a' && c <= 'f')
}

func isVariableName(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.'
}

func isNotClosingBracket(c rune) bool { return c != ']' }

// isNotDelimiter reports whether c can be part of a run of symbol
// characters: anything that isn't alphanumeric, a paren, a bracket, or
// a quote.
func isNotDelimiter(c rune) bool {
	switch {
	case unicode.IsDigit(c), unicode.IsLetter(c):
		return false
	case c == '(', c == ')', c == '[', c == ']', c == '\'', c == '"':
		return false
	default:
		return true
	}
}

func checkBalance(tokens []Token) error {
	depth := 0
	for _, token := range tokens {
		switch token.Kind {
		case KindClause:
			depth++
		case KindClauseClose:
			depth--
		}
	}
	if depth != 0 {
		return newLexError("unbalanced parenthesis")
	}
	return nil
}

var timeLayouts = []string{
	time.ANSIC,
	time.UnixDate,
	time.RubyDate,
	time.Kitchen,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02T15Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
}

// tryParseTime attempts to parse candidate as one of a fixed battery of
// standardized layouts, grounded on original_source/cvaluate's time
// recognition (see SPEC_FULL.md §3).
func tryParseTime(candidate string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if when, err := time.ParseInLocation(layout, candidate, time.Local); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}
