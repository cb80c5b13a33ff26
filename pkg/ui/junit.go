package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/arthur-debert/pkgbundle/pkg/strict"
	"github.com/beevik/etree"
)

// junitRenderer writes results as JUnit XML for CI systems. Audits become
// one test case per external import, workspace builds one per package.
type junitRenderer struct {
	output io.Writer
}

func newJUnitRenderer(output io.Writer) *junitRenderer {
	return &junitRenderer{output: output}
}

func newSuites() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement("testsuites")
}

func (r *junitRenderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.output)
	return err
}

func suite(parent *etree.Element, name string) *etree.Element {
	s := parent.CreateElement("testsuite")
	s.CreateAttr("name", name)
	return s
}

func finishSuite(s *etree.Element, tests, failures, skipped int) {
	s.CreateAttr("tests", strconv.Itoa(tests))
	s.CreateAttr("failures", strconv.Itoa(failures))
	s.CreateAttr("skipped", strconv.Itoa(skipped))
}

func (r *junitRenderer) RenderResult(result interface{}) error {
	doc, root := newSuites()

	switch v := result.(type) {
	case *AuditResult:
		r.audit(root, v)
	case *WorkspaceResult:
		r.workspace(root, v)
	default:
		return fmt.Errorf("junit output is not available for %T", result)
	}

	return r.write(doc)
}

func (r *junitRenderer) audit(root *etree.Element, res *AuditResult) {
	report := res.Report
	s := suite(root, report.Package)
	s.CreateAttr("file", res.Metafile)

	undeclared := map[string]bool{}
	for _, spec := range report.Undeclared {
		undeclared[spec] = true
	}

	failures := 0
	for _, v := range report.Imports {
		tc := s.CreateElement("testcase")
		tc.CreateAttr("classname", report.Package)
		tc.CreateAttr("name", v.Specifier)

		if !undeclared[v.Specifier] {
			continue
		}
		msg := fmt.Sprintf("%s is left external but no inline rule declares it", v.Specifier)
		if report.Level == strict.Error {
			failures++
			f := tc.CreateElement("failure")
			f.CreateAttr("type", "UNDECLARED_EXTERNAL")
			f.CreateAttr("message", msg)
			continue
		}
		tc.CreateElement("system-out").SetText(msg)
	}
	finishSuite(s, len(report.Imports), failures, 0)
}

func (r *junitRenderer) workspace(root *etree.Element, res *WorkspaceResult) {
	s := suite(root, res.Root)

	for _, p := range res.Packages {
		tc := s.CreateElement("testcase")
		tc.CreateAttr("classname", "workspace")
		tc.CreateAttr("name", p.Name)

		switch p.Status {
		case StatusFailed:
			f := tc.CreateElement("failure")
			f.CreateAttr("message", p.Error)
		case StatusSkipped:
			tc.CreateElement("skipped").CreateAttr("message", "no entry point")
		}
	}
	finishSuite(s, len(res.Packages), res.Summary.Failed, res.Summary.Skipped)
}

func (r *junitRenderer) RenderError(err error) error {
	doc, root := newSuites()
	s := suite(root, "pkgbundle")
	tc := s.CreateElement("testcase")
	tc.CreateAttr("name", "pkgbundle")
	f := tc.CreateElement("failure")
	f.CreateAttr("message", err.Error())
	f.CreateAttr("type", string(viewError(err).Code))
	finishSuite(s, 1, 1, 0)
	return r.write(doc)
}

func (r *junitRenderer) RenderMessage(msg string) error {
	doc := etree.NewDocument()
	doc.CreateComment(" " + msg + " ")
	return r.write(doc)
}
