package lang

// makeAccessorStage builds the operator for an ACCESS leaf: resolve
// the first path component against the parameter bag, then walk every
// remaining dotted component into nested KindMap Values. Unlike the
// reference implementation this design is adapted from (which walks
// exported struct fields via reflection), parameters here are already
// Values, so the walk is a plain map lookup at each step rather than a
// reflective field lookup — see DESIGN.md.
func makeAccessorStage(path []string) evaluationOperator {
	return func(left, right Value, parameters Parameters) (Value, error) {
		value, found := parameters.get(path[0])
		if !found {
			return None, newNameError("no parameter %q found", path[0])
		}

		for _, field := range path[1:] {
			var err error
			value, err = resolveField(value, field)
			if err != nil {
				return None, err
			}
		}

		return value, nil
	}
}

// resolveField looks up field on value, which must be a KindMap.
func resolveField(value Value, field string) (Value, error) {
	if !value.IsMap() {
		return None, newTypeError("cannot access field %q of a %v", field, value.Kind())
	}
	next, ok := value.Map()[field]
	if !ok {
		return None, newNameError("no field %q found", field)
	}
	return next, nil
}
