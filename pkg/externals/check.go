package externals

import (
	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/logging"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	"github.com/arthur-debert/pkgbundle/pkg/rules"
	"github.com/arthur-debert/pkgbundle/pkg/strict"
)

// Outcome classifies an import.
type Outcome string

const (
	// Declared imports match an inline rule.
	Declared Outcome = "declared"
	// Builtin imports name a Node.js core module.
	Builtin Outcome = "builtin"
	// Local imports are relative or absolute file paths.
	Local Outcome = "local"
	// Undeclared imports match no rule and are left external.
	Undeclared Outcome = "undeclared"
)

// Verdict is the decision for one import of a package.
type Verdict struct {
	Specifier string           `json:"specifier" yaml:"specifier" toml:"specifier"`
	Outcome   Outcome          `json:"outcome" yaml:"outcome" toml:"outcome"`
	Policy    rules.Policy     `json:"policy" yaml:"policy" toml:"policy"`
	Rule      *rules.Operation `json:"rule,omitempty" yaml:"rule,omitempty" toml:"rule,omitempty"`
	// Level is the externals strictness applied to an undeclared import.
	Level strict.Level `json:"level,omitempty" yaml:"level,omitempty" toml:"level,omitempty"`
}

// Decide classifies specifier without enforcing strictness.
func Decide(desc *packages.Descriptor, specifier string) Verdict {
	switch {
	case IsLocal(specifier):
		return Verdict{Specifier: specifier, Outcome: Local, Policy: rules.Inline}
	case IsBuiltin(specifier):
		return Verdict{Specifier: specifier, Outcome: Builtin, Policy: rules.External}
	}

	if op, ok := rules.Match(desc.Inline(), specifier); ok {
		return Verdict{Specifier: specifier, Outcome: Declared, Policy: op.Policy, Rule: &op}
	}

	return Verdict{
		Specifier: specifier,
		Outcome:   Undeclared,
		Policy:    rules.External,
		Level:     desc.Strict().Externals,
	}
}

// Check classifies specifier and applies the package's externals
// strictness to an undeclared import: "warn" logs a warning, "error" also
// returns an UNDECLARED_EXTERNAL error.
func Check(desc *packages.Descriptor, specifier string) (Verdict, error) {
	v := Decide(desc, specifier)
	if v.Outcome != Undeclared {
		return v, nil
	}
	return v, enforce(desc, v)
}

func enforce(desc *packages.Descriptor, v Verdict) error {
	logger := logging.GetLogger("externals")

	switch v.Level {
	case strict.Warn:
		logger.Warn().
			Str("package", desc.Name()).
			Str("specifier", v.Specifier).
			Msgf("%s imports %s, which no inline rule declares; it is left external", desc.Name(), v.Specifier)
	case strict.Error:
		return errors.Newf(errors.ErrUndeclaredExternal,
			"%s imports %s, which no inline rule declares (strictness:externals is \"error\")", desc.Name(), v.Specifier).
			WithDetail("package", desc.Name()).
			WithDetail("root", desc.Root()).
			WithDetail("specifier", v.Specifier)
	}
	return nil
}
