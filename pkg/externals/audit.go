package externals

import (
	"sort"

	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/logging"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	"github.com/arthur-debert/pkgbundle/pkg/rules"
	"github.com/arthur-debert/pkgbundle/pkg/strict"
)

// Report is the result of auditing a bundle's external imports.
type Report struct {
	Package string       `json:"package" yaml:"package" toml:"package"`
	Root    string       `json:"root" yaml:"root" toml:"root"`
	Level   strict.Level `json:"level" yaml:"level" toml:"level"`
	Imports []Verdict    `json:"imports" yaml:"imports" toml:"imports"`
	// Conflicts are imports an inline rule declares inline but the bundle
	// left external.
	Conflicts []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty" toml:"conflicts,omitempty"`
	// Undeclared are external imports no rule covers.
	Undeclared []string `json:"undeclared,omitempty" yaml:"undeclared,omitempty" toml:"undeclared,omitempty"`
}

// Failed reports whether undeclared imports violate an "error" level.
func (r Report) Failed() bool {
	return r.Level == strict.Error && len(r.Undeclared) > 0
}

// Audit checks every external import recorded in the metafile's outputs,
// once per specifier, in sorted order.
//
// With externals strictness "error", a report with undeclared imports is
// returned together with an UNDECLARED_EXTERNAL error listing them.
func Audit(desc *packages.Descriptor, m *Metafile) (Report, error) {
	logger := logging.GetLogger("externals.audit")

	report := Report{
		Package: desc.Name(),
		Root:    desc.Root(),
		Level:   desc.Strict().Externals,
	}

	seen := map[string]bool{}
	var specifiers []string
	for _, output := range m.Outputs {
		for _, imp := range output.Imports {
			if !imp.External {
				continue
			}
			s := imp.Specifier()
			if !seen[s] {
				seen[s] = true
				specifiers = append(specifiers, s)
			}
		}
	}
	sort.Strings(specifiers)

	for _, s := range specifiers {
		v := Decide(desc, s)
		report.Imports = append(report.Imports, v)

		switch {
		case v.Outcome == Declared && v.Policy == rules.Inline:
			report.Conflicts = append(report.Conflicts, s)
			logger.Warn().
				Str("package", desc.Name()).
				Str("specifier", s).
				Str("rule", v.Rule.String()).
				Msg("Import declared inline was left external by the bundler")
		case v.Outcome == Undeclared:
			report.Undeclared = append(report.Undeclared, s)
			if v.Level == strict.Warn {
				_ = enforce(desc, v)
			}
		}
	}

	logger.Debug().
		Str("package", desc.Name()).
		Int("imports", len(report.Imports)).
		Int("undeclared", len(report.Undeclared)).
		Msg("Audit complete")

	if report.Failed() {
		return report, errors.Newf(errors.ErrUndeclaredExternal,
			"%s leaves %d undeclared import(s) external (strictness:externals is \"error\")",
			desc.Name(), len(report.Undeclared)).
			WithDetail("package", desc.Name()).
			WithDetail("root", desc.Root()).
			WithDetail("specifiers", report.Undeclared)
	}
	return report, nil
}
