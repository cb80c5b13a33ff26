package rules

import "strings"

// Operator is the comparison a primitive operation applies to a specifier.
type Operator string

const (
	// StartsWith matches specifiers beginning with the pattern.
	StartsWith Operator = "startsWith"
	// Is matches the pattern exactly.
	Is Operator = "is"
)

// Policy decides what the bundler does with a matched import.
type Policy string

const (
	// Inline copies the dependency into the build output.
	Inline Policy = "inline"
	// External leaves the import for the consumer's module system.
	External Policy = "external"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, bool) {
	switch Policy(s) {
	case Inline, External:
		return Policy(s), true
	}
	return "", false
}

// Operation is one normalized rule: (operator, pattern, policy).
type Operation struct {
	Operator Operator `json:"operator" yaml:"operator" toml:"operator"`
	Pattern  string   `json:"pattern" yaml:"pattern" toml:"pattern"`
	Policy   Policy   `json:"policy" yaml:"policy" toml:"policy"`
}

// Matches reports whether the operation applies to specifier.
func (o Operation) Matches(specifier string) bool {
	switch o.Operator {
	case StartsWith:
		return strings.HasPrefix(specifier, o.Pattern)
	case Is:
		return specifier == o.Pattern
	}
	return false
}

// DeclarationPattern is the author-facing pattern that normalizes back to
// this operation.
func (o Operation) DeclarationPattern() string {
	if o.Operator == StartsWith {
		return o.Pattern + "*"
	}
	return o.Pattern
}

func (o Operation) String() string {
	return string(o.Operator) + " " + o.Pattern + " -> " + string(o.Policy)
}
