package lang

// tokenState is the token-state record described in the data model:
// one per kind, recording whether the kind may end an expression
// (isTerminal), whether it may carry a nil value (isNullable), and the
// set of kinds legally allowed to follow it.
type tokenState struct {
	kind           TokenKind
	isTerminal     bool
	isNullable     bool
	validNextKinds []TokenKind
}

// lexerStates is the constant transition table, one record per kind.
// The initial state is the UNKNOWN record, whose validNextKinds are
// the kinds that may legally start an expression.
var lexerStates = []tokenState{
	{
		kind:       KindUnknown,
		isTerminal: false,
		isNullable: true,
		validNextKinds: []TokenKind{
			KindPrefix, KindNumeric, KindBoolean, KindVariable, KindPattern,
			KindFunction, KindAccessor, KindString, KindTime, KindClause,
		},
	},
	{
		kind:       KindClause,
		isTerminal: false,
		isNullable: true,
		validNextKinds: []TokenKind{
			KindPrefix, KindNumeric, KindBoolean, KindVariable, KindPattern,
			KindFunction, KindAccessor, KindString, KindTime, KindClause,
			KindClauseClose,
		},
	},
	{
		kind:       KindClauseClose,
		isTerminal: true,
		isNullable: true,
		validNextKinds: []TokenKind{
			KindComparator, KindModifier, KindNumeric, KindBoolean,
			KindVariable, KindString, KindPattern, KindTime, KindClause,
			KindClauseClose, KindLogicalOp, KindTernary, KindSeparator,
		},
	},
	{
		kind:       KindNumeric,
		isTerminal: true,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindModifier, KindComparator, KindLogicalOp, KindClauseClose,
			KindTernary, KindSeparator,
		},
	},
	{
		kind:       KindBoolean,
		isTerminal: true,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindModifier, KindComparator, KindLogicalOp, KindClauseClose,
			KindTernary, KindSeparator,
		},
	},
	{
		kind:       KindString,
		isTerminal: true,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindModifier, KindComparator, KindLogicalOp, KindClauseClose,
			KindTernary, KindSeparator,
		},
	},
	{
		kind:       KindTime,
		isTerminal: true,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindModifier, KindComparator, KindLogicalOp, KindClauseClose,
			KindSeparator,
		},
	},
	{
		kind:       KindPattern,
		isTerminal: true,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindModifier, KindComparator, KindLogicalOp, KindClauseClose,
			KindSeparator,
		},
	},
	{
		kind:       KindVariable,
		isTerminal: true,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindModifier, KindComparator, KindLogicalOp, KindClauseClose,
			KindTernary, KindSeparator,
		},
	},
	{
		kind:       KindModifier,
		isTerminal: false,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindPrefix, KindNumeric, KindVariable, KindFunction,
			KindAccessor, KindString, KindBoolean, KindClause, KindClauseClose,
		},
	},
	{
		kind:       KindComparator,
		isTerminal: false,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindPrefix, KindNumeric, KindBoolean, KindVariable, KindFunction,
			KindAccessor, KindString, KindTime, KindClause, KindClauseClose,
			KindPattern,
		},
	},
	{
		kind:       KindLogicalOp,
		isTerminal: false,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindPrefix, KindNumeric, KindBoolean, KindVariable, KindFunction,
			KindAccessor, KindString, KindTime, KindClause, KindClauseClose,
		},
	},
	{
		kind:       KindPrefix,
		isTerminal: false,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindNumeric, KindBoolean, KindVariable, KindFunction,
			KindAccessor, KindClause, KindClauseClose,
		},
	},
	{
		kind:       KindTernary,
		isTerminal: false,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindPrefix, KindNumeric, KindBoolean, KindString, KindTime,
			KindVariable, KindFunction, KindAccessor, KindClause, KindSeparator,
		},
	},
	{
		kind:       KindFunction,
		isTerminal: false,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindClause,
		},
	},
	{
		kind:       KindAccessor,
		isTerminal: true,
		isNullable: false,
		validNextKinds: []TokenKind{
			KindClause, KindModifier, KindComparator, KindLogicalOp,
			KindClauseClose, KindTernary, KindSeparator,
		},
	},
	{
		kind:       KindSeparator,
		isTerminal: false,
		isNullable: true,
		validNextKinds: []TokenKind{
			KindPrefix, KindNumeric, KindBoolean, KindString, KindTime,
			KindVariable, KindFunction, KindAccessor, KindClause,
		},
	},
}

func (s tokenState) canTransitionTo(kind TokenKind) bool {
	for _, valid := range s.validNextKinds {
		if valid == kind {
			return true
		}
	}
	return false
}

func lookupState(kind TokenKind) (tokenState, error) {
	for _, state := range lexerStates {
		if state.kind == kind {
			return state, nil
		}
	}
	return lexerStates[0], newLexError("no lexer state for token kind %q", kind)
}
