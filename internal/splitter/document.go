// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"encoding/xml"
	"strconv"

	"github.com/logchunks/logchunks/internal/robotxml"
)

// BuildDocument assembles a standalone document holding only test. The new
// root copies root's attributes; the new suite copies suite's attributes
// followed by copies of its source, setup, the test, its teardown and its
// documentation, in that order. The suite status is left out so that the
// renderer recomputes it from the test. Nothing in the result aliases the
// input tree.
func BuildDocument(root, suite, test *robotxml.Element) *robotxml.Element {
	doc := robotxml.NewElement(root.Name, root.CopyAttrs()...)

	s := doc.AddChild("suite", suite.CopyAttrs()...)
	for _, src := range suite.ChildrenNamed("source") {
		s.Append(src.Clone())
	}
	for _, setup := range robotxml.SetupActions(suite) {
		s.Append(setup.Clone())
	}
	s.Append(test.Clone())
	for _, teardown := range robotxml.TeardownActions(suite) {
		s.Append(teardown.Clone())
	}
	for _, d := range suite.ChildrenNamed("doc") {
		s.Append(d.Clone())
	}

	doc.Append(Statistics(suite, test))
	doc.AddChild("errors")
	return doc
}

// Counts is a pass/fail/skip triple.
type Counts struct {
	Pass, Fail, Skip int
}

// CountsFor returns the triple for a single test with the given status.
// Statuses other than PASS, FAIL and SKIP count as nothing.
func CountsFor(status string) Counts {
	switch status {
	case robotxml.StatusPass:
		return Counts{Pass: 1}
	case robotxml.StatusFail:
		return Counts{Fail: 1}
	case robotxml.StatusSkip:
		return Counts{Skip: 1}
	}
	return Counts{}
}

func (c Counts) attrs() []xml.Attr {
	return []xml.Attr{
		robotxml.A("pass", strconv.Itoa(c.Pass)),
		robotxml.A("fail", strconv.Itoa(c.Fail)),
		robotxml.A("skip", strconv.Itoa(c.Skip)),
	}
}

// Statistics builds the <statistics> element for a one-test document: the
// total, one entry per tag of test and one suite entry, all carrying the
// same triple.
func Statistics(suite, test *robotxml.Element) *robotxml.Element {
	c := CountsFor(robotxml.Status(test))
	stats := robotxml.NewElement("statistics")

	total := stats.AddChild("total")
	total.AddChild("stat", c.attrs()...).Text = "All Tests"

	tags := stats.AddChild("tag")
	for _, tag := range test.ChildrenNamed("tag") {
		tags.AddChild("stat", c.attrs()...).Text = tag.Text
	}

	suites := stats.AddChild("suite")
	attrs := append([]xml.Attr{
		robotxml.A("name", suite.Attr("name")),
		robotxml.A("id", suite.Attr("id")),
	}, c.attrs()...)
	suites.AddChild("stat", attrs...)

	return stats
}
