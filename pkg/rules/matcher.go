package rules

// Match returns the first operation that applies to specifier.
func Match(ops []Operation, specifier string) (Operation, bool) {
	for _, op := range ops {
		if op.Matches(specifier) {
			return op, true
		}
	}
	return Operation{}, false
}

// Decide returns the policy of the first matching operation. The second
// result is false when nothing matched and the bundler's own default applies.
func Decide(ops []Operation, specifier string) (Policy, bool) {
	op, ok := Match(ops, specifier)
	if !ok {
		return "", false
	}
	return op.Policy, true
}
