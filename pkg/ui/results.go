package ui

import (
	"github.com/arthur-debert/pkgbundle/pkg/externals"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	"github.com/arthur-debert/pkgbundle/pkg/workspace"
)

// DescribeResult lists package descriptors.
type DescribeResult struct {
	Packages []packages.View `json:"packages" yaml:"packages" toml:"packages"`
	// Skipped lists roots without an entry point.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
}

// MatchResult is the decision for one import of one package.
type MatchResult struct {
	Package string            `json:"package" yaml:"package" toml:"package"`
	Root    string            `json:"root" yaml:"root" toml:"root"`
	Verdict externals.Verdict `json:"verdict" yaml:"verdict" toml:"verdict"`
}

// AuditResult is an externals audit of one bundle.
type AuditResult struct {
	Metafile string           `json:"metafile" yaml:"metafile" toml:"metafile"`
	Report   externals.Report `json:"report" yaml:"report" toml:"report"`
}

// Package build statuses.
const (
	StatusBuilt   = "built"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// WorkspacePackage is the outcome for one workspace member.
type WorkspacePackage struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Root   string `json:"root" yaml:"root" toml:"root"`
	Status string `json:"status" yaml:"status" toml:"status"`
	Entry  string `json:"entry,omitempty" yaml:"entry,omitempty" toml:"entry,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// WorkspaceResult summarizes a workspace build.
type WorkspaceResult struct {
	Root     string             `json:"root" yaml:"root" toml:"root"`
	Packages []WorkspacePackage `json:"packages" yaml:"packages" toml:"packages"`
	Summary  workspace.Summary  `json:"summary" yaml:"summary" toml:"summary"`
}

// NewWorkspaceResult pairs members with their build results, which must be
// in the same order.
func NewWorkspaceResult(root string, members []workspace.Member, results []workspace.Result) *WorkspaceResult {
	out := &WorkspaceResult{
		Root:     root,
		Packages: make([]WorkspacePackage, 0, len(results)),
		Summary:  workspace.Summarize(results),
	}
	for i, r := range results {
		pkg := WorkspacePackage{Root: r.Root}
		if i < len(members) {
			pkg.Name = members[i].Name
		}
		switch {
		case r.Err != nil:
			pkg.Status = StatusFailed
			pkg.Error = r.Err.Error()
		case r.Descriptor == nil:
			pkg.Status = StatusSkipped
		default:
			pkg.Status = StatusBuilt
			pkg.Name = r.Descriptor.Name()
			pkg.Entry = r.Descriptor.Entry()
		}
		out.Packages = append(out.Packages, pkg)
	}
	return out
}
