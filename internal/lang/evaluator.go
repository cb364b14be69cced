package lang

import "errors"

// Evaluate walks a plan tree in post order: both children are
// evaluated (left before right) before the stage's own operator runs,
// then the operator's result becomes this stage's contribution to its
// parent. The one deviation from strict post-order is the ternary
// family (TERNARY_TRUE, TERNARY_FALSE, COALESCE): their right child is
// skipped when the left operand already determined the outcome, since
// there would otherwise be no way to give "cond ? a : b" its ordinary
// meaning of evaluating exactly one of a, b. AND/OR are not given this
// treatment — both operands are always evaluated, matching the
// reference behavior's lack of short-circuiting (see DESIGN.md).
func Evaluate(stage *evaluationStage, parameters Parameters) (Value, error) {
	if stage == nil {
		return None, nil
	}

	left := None
	right := None
	var err error

	if stage.left != nil {
		left, err = Evaluate(stage.left, parameters)
		if err != nil {
			// COALESCE treats an undefined left operand the same as an
			// explicit "none": `missing_var ?? 7` falls through to the
			// right operand rather than surfacing the NameError a bare
			// `missing_var` would.
			var nameErr *NameError
			if stage.symbol == SymCoalesce && errors.As(err, &nameErr) {
				left, err = None, nil
			} else {
				return None, err
			}
		}
	}

	skipRight := false
	if stage.isShortCircuitable() {
		switch stage.symbol {
		case SymTernaryTrue:
			if cond, convErr := left.AsBool(); convErr == nil && !cond {
				skipRight = true
			}
		case SymTernaryFalse, SymCoalesce:
			if !left.IsNone() {
				skipRight = true
			}
		}
	}

	if !skipRight && stage.right != nil {
		right, err = Evaluate(stage.right, parameters)
		if err != nil {
			return None, err
		}
	}

	if err := typeCheck(stage.leftTypeCheck, left, stage.symbol, stage.typeErrorFormat); err != nil {
		return None, err
	}
	if err := typeCheck(stage.rightTypeCheck, right, stage.symbol, stage.typeErrorFormat); err != nil {
		return None, err
	}
	if stage.combinedTypeCheck != nil && !stage.combinedTypeCheck(left, right) {
		return None, newTypeError(stage.typeErrorFormat, left.Kind(), stage.symbol)
	}

	return stage.operator(left, right, parameters)
}
