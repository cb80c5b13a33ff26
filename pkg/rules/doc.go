// Package rules turns a package author's inline/external declaration into an
// ordered list of primitive match operations, and evaluates that list for
// import specifiers.
//
// # Declaration Syntax
//
// A declaration is a single pattern, a map of pattern to policy, or an array
// mixing both. Bare patterns default to the "inline" policy:
//
//	"starbeam:inline": ["tslib", { "lodash-es/*": "external" }, "(helpers)"]
//	"starbeam:inline": { "(scope)": "inline", "react": "external" }
//
// # Pattern Conventions
//
//   - `tslib` - exact specifier match
//   - `lodash-es/*` - prefix match (trailing star)
//   - `(helpers)` - every built-in runtime helper package
//   - `(scope)` - the package's own `@scope/` prefix, nothing when unscoped
//
// # Evaluation
//
// Operations are evaluated in order and the first match wins. When no
// declaration is given, the helpers are inlined and the package's own scope
// is kept external.
package rules
