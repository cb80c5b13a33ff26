package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/pkgbundle/pkg/externals"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	"github.com/arthur-debert/pkgbundle/pkg/strict"
	"github.com/arthur-debert/pkgbundle/pkg/style"
	"github.com/charmbracelet/lipgloss"
)

// textRenderer lays results out for reading. Styling is applied only when
// styled is set.
type textRenderer struct {
	output io.Writer
	styled bool
}

func newTextRenderer(output io.Writer, styled bool) *textRenderer {
	return &textRenderer{output: output, styled: styled}
}

func (r *textRenderer) paint(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *textRenderer) indicator(status string) string {
	if r.styled {
		switch status {
		case StatusBuilt:
			return style.SuccessIndicator
		case StatusFailed:
			return style.ErrorIndicator
		case "warn":
			return style.WarningIndicator
		default:
			return style.PendingIndicator
		}
	}
	switch status {
	case StatusBuilt:
		return "+"
	case StatusFailed:
		return "x"
	case "warn":
		return "!"
	default:
		return "-"
	}
}

func (r *textRenderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *DescribeResult:
		r.describe(&b, v)
	case *MatchResult:
		r.match(&b, v)
	case *AuditResult:
		r.audit(&b, v)
	case *WorkspaceResult:
		r.workspace(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", r.paint(style.ErrorStyle, "Error:"), err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *textRenderer) describe(b *strings.Builder, res *DescribeResult) {
	for i, view := range res.Packages {
		if i > 0 {
			b.WriteString("\n")
		}
		r.pkg(b, view)
	}
	for _, root := range res.Skipped {
		fmt.Fprintf(b, "%s %s %s\n", r.indicator(StatusSkipped), r.paint(style.PathStyle, root),
			r.paint(style.MutedStyle, "(no entry point)"))
	}
	if len(res.Packages) == 0 && len(res.Skipped) == 0 {
		b.WriteString("No packages found.\n")
	}
}

func (r *textRenderer) field(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "  %-8s %s\n", name, value)
}

func (r *textRenderer) pkg(b *strings.Builder, view packages.View) {
	fmt.Fprintf(b, "%s  %s\n", r.paint(style.TitleStyle, view.Name), r.paint(style.PathStyle, view.Root))

	s := view.Settings
	r.field(b, "entry", r.paint(style.CodeStyle, view.Entry))
	for _, name := range extraEntries(s.Entry) {
		r.field(b, "", fmt.Sprintf("%s: %s", name, s.Entry[name]))
	}
	r.field(b, "type", s.Type)
	r.field(b, "strict", "externals="+r.paint(style.ForLevel(string(s.Strict.Externals)), string(s.Strict.Externals)))
	for _, sub := range s.StrictDefaults {
		r.field(b, "", r.paint(style.WarningStyle, fmt.Sprintf("%s: %q replaced by allow", sub.Dimension, sub.Value)))
	}
	if jsx, ok := s.JSXImportSource(); ok {
		r.field(b, "jsx", jsx)
	}
	if src, ok := s.SourceDir(); ok {
		r.field(b, "source", src)
	}

	if len(s.Inline) == 0 {
		r.field(b, "inline", r.paint(style.MutedStyle, "(none)"))
		return
	}
	r.field(b, "inline", "")
	for _, op := range s.Inline {
		fmt.Fprintf(b, "    %-10s %s -> %s\n", op.Operator, op.Pattern,
			r.paint(style.ForPolicy(string(op.Policy)), string(op.Policy)))
	}
}

// extraEntries returns the names of entries other than the index one, sorted.
func extraEntries(entry map[string]string) []string {
	names := make([]string, 0, len(entry))
	for name := range entry {
		if name != packages.IndexEntry {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (r *textRenderer) verdict(v externals.Verdict) string {
	policy := r.paint(style.ForPolicy(string(v.Policy)), string(v.Policy))
	switch v.Outcome {
	case externals.Declared:
		return fmt.Sprintf("%s -> %s (%s)", v.Specifier, policy, v.Rule.String())
	case externals.Undeclared:
		level := r.paint(style.ForLevel(string(v.Level)), string(v.Level))
		return fmt.Sprintf("%s -> %s (undeclared, strictness %s)", v.Specifier, policy, level)
	default:
		return fmt.Sprintf("%s -> %s (%s)", v.Specifier, policy, v.Outcome)
	}
}

func (r *textRenderer) match(b *strings.Builder, res *MatchResult) {
	fmt.Fprintf(b, "%s  %s\n", r.paint(style.TitleStyle, res.Package), r.paint(style.PathStyle, res.Root))
	fmt.Fprintf(b, "  %s\n", r.verdict(res.Verdict))
}

func (r *textRenderer) audit(b *strings.Builder, res *AuditResult) {
	report := res.Report
	fmt.Fprintf(b, "%s  %s\n", r.paint(style.TitleStyle, report.Package), r.paint(style.PathStyle, res.Metafile))

	undeclared := map[string]bool{}
	for _, s := range report.Undeclared {
		undeclared[s] = true
	}
	conflicts := map[string]bool{}
	for _, s := range report.Conflicts {
		conflicts[s] = true
	}

	for _, v := range report.Imports {
		status := StatusBuilt
		switch {
		case undeclared[v.Specifier] && report.Level == strict.Error:
			status = StatusFailed
		case undeclared[v.Specifier] && report.Level == strict.Warn, conflicts[v.Specifier]:
			status = "warn"
		case undeclared[v.Specifier]:
			status = StatusSkipped
		}
		line := r.verdict(v)
		if conflicts[v.Specifier] {
			line += r.paint(style.WarningStyle, " but left external by the bundler")
		}
		fmt.Fprintf(b, "  %s %s\n", r.indicator(status), line)
	}

	fmt.Fprintf(b, "%d external import(s), %d undeclared, %d conflicting\n",
		len(report.Imports), len(report.Undeclared), len(report.Conflicts))
}

func (r *textRenderer) workspace(b *strings.Builder, res *WorkspaceResult) {
	fmt.Fprintf(b, "%s\n", r.paint(style.TitleStyle, res.Root))
	for _, p := range res.Packages {
		line := fmt.Sprintf("%s %s", r.indicator(p.Status), p.Name)
		switch p.Status {
		case StatusBuilt:
			line += "  " + r.paint(style.CodeStyle, p.Entry)
		case StatusSkipped:
			line += "  " + r.paint(style.MutedStyle, "(no entry point)")
		case StatusFailed:
			line += "  " + r.paint(style.ErrorStyle, p.Error)
		}
		fmt.Fprintf(b, "  %s\n", line)
	}
	fmt.Fprintf(b, "%d built, %d skipped, %d failed\n",
		res.Summary.Built, res.Summary.Skipped, res.Summary.Failed)
}
