// Package strict resolves a package's strictness declaration into a policy
// with a level for every known dimension.
//
// Invalid levels never fail the build: they are logged and fall back to
// "allow". Result.Defaulted records every such substitution.
package strict

import (
	"github.com/arthur-debert/pkgbundle/pkg/logging"
	"github.com/arthur-debert/pkgbundle/pkg/manifest"
)

// Level is how strictly a dimension is enforced.
type Level string

const (
	Allow Level = "allow"
	Warn  Level = "warn"
	Error Level = "error"
)

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case Allow, Warn, Error:
		return Level(s), true
	}
	return "", false
}

// Externals requires imports left external to be covered by an explicit
// inline/external rule.
const Externals = "externals"

// Dimensions lists every recognized dimension, in resolution order.
var Dimensions = []string{Externals}

// DefaultCatchAll is the key applying a level to every dimension not yet set.
const DefaultCatchAll = "all.v1"

// Policy holds a level for each dimension.
type Policy struct {
	Externals Level `json:"externals" yaml:"externals" toml:"externals"`
}

// ForDimension returns the level for a dimension name.
func (p Policy) ForDimension(name string) (Level, bool) {
	switch name {
	case Externals:
		return p.Externals, true
	}
	return "", false
}

func (p *Policy) set(name string, level Level) {
	switch name {
	case Externals:
		p.Externals = level
	}
}

// Substitution records a dimension that fell back to "allow" because its
// declared value was invalid.
type Substitution struct {
	Dimension string `json:"dimension" yaml:"dimension" toml:"dimension"`
	Value     string `json:"value" yaml:"value" toml:"value"`
}

// Result is a resolved policy plus the substitutions made on the way.
type Result struct {
	Policy    Policy
	Defaulted []Substitution
}

// Clean reports whether every declared value was valid.
func (r Result) Clean() bool {
	return len(r.Defaulted) == 0
}

// Resolver resolves strictness declarations.
type Resolver struct {
	// CatchAll overrides DefaultCatchAll when set.
	CatchAll string
}

// Resolve is Resolver{}.Resolve.
func Resolve(root string, decl manifest.Value) Result {
	return Resolver{}.Resolve(root, decl)
}

// Resolve expands decl for the package at root.
//
// Entries apply in declaration order. The catch-all assigns every dimension
// not assigned so far, so a specific entry placed after it still wins. An
// invalid value leaves its dimension unassigned, and unassigned dimensions
// resolve to "allow".
func (r Resolver) Resolve(root string, decl manifest.Value) Result {
	catchAll := r.CatchAll
	if catchAll == "" {
		catchAll = DefaultCatchAll
	}

	result := Result{}
	levels := map[string]Level{}
	leftover := map[string]bool{}
	for _, dim := range Dimensions {
		leftover[dim] = true
	}

	for _, entry := range decl.Members() {
		if entry.Key == catchAll {
			for _, dim := range Dimensions {
				if !leftover[dim] {
					continue
				}
				if level, ok := r.verify(root, &result, dim, entry.Value); ok {
					levels[dim] = level
					delete(leftover, dim)
				}
			}
			continue
		}

		if _, known := (Policy{}).ForDimension(entry.Key); !known {
			continue
		}
		if level, ok := r.verify(root, &result, entry.Key, entry.Value); ok {
			levels[entry.Key] = level
			delete(leftover, entry.Key)
		} else {
			delete(levels, entry.Key)
			leftover[entry.Key] = true
		}
	}

	for _, dim := range Dimensions {
		level, ok := levels[dim]
		if !ok {
			level = Allow
		}
		result.Policy.set(dim, level)
	}

	return result
}

func (r Resolver) verify(root string, result *Result, dim string, value manifest.Value) (Level, bool) {
	if s, ok := value.AsString(); ok {
		if level, ok := ParseLevel(s); ok {
			return level, true
		}
	}

	logger := logging.GetLogger("strict")
	logger.Warn().
		Str("root", root).
		Str("dimension", dim).
		Str("value", display(value)).
		Msgf(`Invalid value for strictness:%s (%s), falling back to "allow". Strictness values should be one of "allow", "warn", or "error".`,
			dim, display(value))

	result.Defaulted = append(result.Defaulted, Substitution{Dimension: dim, Value: display(value)})
	return "", false
}

func display(value manifest.Value) string {
	if s, ok := value.AsString(); ok {
		return s
	}
	return value.String()
}
