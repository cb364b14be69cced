package lang

import "regexp"

// optimizeTokens runs once, between lexing and planning. Today it has
// one job: a STRING token sitting immediately to the right of a REQ or
// NREQ comparator is the source text of a pattern that regexStage will
// otherwise recompile on every evaluation, so compile it once here and
// rewrite the token to KindPattern. A pattern that fails to compile is
// left as a plain string — the error is more useful raised by
// regexStage at evaluation time, in the context of the actual
// mismatched operand, than eagerly during prepare.
func optimizeTokens(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)

	for i := 1; i < len(out); i++ {
		if out[i].Kind != KindString {
			continue
		}
		prev := out[i-1]
		if prev.Kind != KindComparator {
			continue
		}
		symbolStr, _ := prev.Value.(string)
		if symbolStr != "=~" && symbolStr != "!~" {
			continue
		}

		source, ok := out[i].Value.(string)
		if !ok {
			continue
		}
		compiled, err := regexp.Compile(source)
		if err != nil {
			continue
		}
		out[i] = Token{Kind: KindPattern, Value: compiled}
	}

	return out
}

// elideLiterals folds any subtree whose every leaf is a LITERAL (no
// VARIABLE, ACCESS, or FUNCTIONAL leaf feeding it) into a single
// precomputed LITERAL stage, evaluating it once here rather than once
// per call to Evaluate. A subtree that fails to evaluate (e.g. "1" +
// true is legal, but 1 / 0 style host-defined failures could exist for
// a future operator) is left unfolded so the ordinary evaluation path
// surfaces the error at the usual place.
func elideLiterals(stage *evaluationStage) *evaluationStage {
	if stage == nil {
		return nil
	}

	stage.left = elideLiterals(stage.left)
	stage.right = elideLiterals(stage.right)

	if !isConstantStage(stage) {
		return stage
	}

	value, err := Evaluate(stage, emptyParameters)
	if err != nil {
		return stage
	}

	return &evaluationStage{symbol: SymLiteral, operator: makeLiteralStageValue(value)}
}

func isConstantStage(stage *evaluationStage) bool {
	switch stage.symbol {
	case SymLiteral:
		return true
	case SymValue, SymAccess, SymFunctional:
		return false
	}

	hasChild := false
	if stage.left != nil {
		hasChild = true
		if stage.left.symbol != SymLiteral {
			return false
		}
	}
	if stage.right != nil {
		hasChild = true
		if stage.right.symbol != SymLiteral {
			return false
		}
	}
	return hasChild
}
