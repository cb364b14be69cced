package lang

// EvaluationStage is the opaque handle the façade package holds onto
// between Prepare and Evaluate. Its fields are unexported; callers
// outside this package can only pass it back to Evaluate.
type EvaluationStage = evaluationStage

// Prepare runs the full front end once: lex, precompile regex literals,
// plan, then fold constant subtrees. The returned token vector is what
// Tokens() on the façade hands back a copy of; the returned stage is
// what every subsequent Evaluate call walks.
func Prepare(expression string, functions map[string]Function) ([]Token, *EvaluationStage, error) {
	tokens, err := Lex(expression, functions)
	if err != nil {
		return nil, nil, err
	}

	tokens = optimizeTokens(tokens)

	stage, err := Plan(tokens)
	if err != nil {
		return nil, nil, err
	}

	stage = elideLiterals(stage)

	return tokens, stage, nil
}
