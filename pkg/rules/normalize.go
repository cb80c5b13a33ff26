package rules

import (
	"regexp"
	"slices"
	"strings"

	"github.com/arthur-debert/pkgbundle/pkg/manifest"
)

// helpers are the runtime helper packages that compiled code imports on its
// own. They are inlined unless the author says otherwise.
var helpers = []string{"@babel/runtime/*", "tslib", "@swc/core"}

// Helpers returns the patterns the (helpers) macro expands to.
func Helpers() []string {
	return slices.Clone(helpers)
}

const (
	helpersMacro = "(helpers)"
	scopeMacro   = "(scope)"
)

// PatternKind classifies an author-facing pattern.
type PatternKind int

const (
	Exact PatternKind = iota
	Prefix
	HelpersMacro
	ScopeMacro
)

// Classify returns the kind of pattern. A trailing star wins over the macro
// names, so "(scope)*" is a plain prefix.
func Classify(pattern string) PatternKind {
	switch {
	case strings.HasSuffix(pattern, "*"):
		return Prefix
	case pattern == helpersMacro:
		return HelpersMacro
	case pattern == scopeMacro:
		return ScopeMacro
	default:
		return Exact
	}
}

var scopePattern = regexp.MustCompile(`^(@[^/]+/)`)

// ScopeOf returns the "@scope/" prefix of a scoped package name, or "".
func ScopeOf(packageName string) string {
	m := scopePattern.FindStringSubmatch(packageName)
	if m == nil {
		return ""
	}
	return m[1]
}

// Normalize converts a declaration into primitive operations, in
// declaration order with macros expanded in place.
//
// An undefined declaration yields the defaults: every helper inlined, then
// the package's own scope external. Shapes that are not understood
// contribute no operations.
func Normalize(decl manifest.Value, packageName string) []Operation {
	ops := []Operation{}

	switch decl.Kind() {
	case manifest.Undefined:
		for _, helper := range helpers {
			ops = append(ops, expand(helper, Inline, packageName)...)
		}
		ops = append(ops, expand(scopeMacro, External, packageName)...)
	case manifest.String:
		pattern, _ := decl.AsString()
		ops = append(ops, expand(pattern, Inline, packageName)...)
	case manifest.Array:
		for _, rule := range decl.Items() {
			ops = append(ops, normalizeRule(rule, packageName)...)
		}
	case manifest.Object:
		ops = append(ops, normalizeMembers(decl, packageName)...)
	}

	return ops
}

func normalizeRule(rule manifest.Value, packageName string) []Operation {
	switch rule.Kind() {
	case manifest.String:
		pattern, _ := rule.AsString()
		return expand(pattern, Inline, packageName)
	case manifest.Object:
		return normalizeMembers(rule, packageName)
	}
	return nil
}

func normalizeMembers(rules manifest.Value, packageName string) []Operation {
	var ops []Operation
	for _, m := range rules.Members() {
		name, ok := m.Value.AsString()
		if !ok {
			continue
		}
		policy, ok := ParsePolicy(name)
		if !ok {
			continue
		}
		ops = append(ops, expand(m.Key, policy, packageName)...)
	}
	return ops
}

// expand resolves one (pattern, policy) leaf.
func expand(pattern string, policy Policy, packageName string) []Operation {
	switch Classify(pattern) {
	case Prefix:
		return []Operation{{Operator: StartsWith, Pattern: strings.TrimSuffix(pattern, "*"), Policy: policy}}
	case HelpersMacro:
		var ops []Operation
		for _, helper := range helpers {
			ops = append(ops, expand(helper, policy, packageName)...)
		}
		return ops
	case ScopeMacro:
		scope := ScopeOf(packageName)
		if scope == "" {
			return nil
		}
		return []Operation{{Operator: StartsWith, Pattern: scope, Policy: policy}}
	default:
		return []Operation{{Operator: Is, Pattern: pattern, Policy: policy}}
	}
}

// Declaration renders operations as an array of single-entry maps, which
// normalizes back to the same operations.
func Declaration(ops []Operation) manifest.Value {
	items := make([]manifest.Value, len(ops))
	for i, op := range ops {
		items[i] = manifest.Obj(manifest.M(op.DeclarationPattern(), manifest.Str(string(op.Policy))))
	}
	return manifest.List(items...)
}
