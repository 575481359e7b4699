// SPDX-License-Identifier: Apache-2.0

package robotxml

// Test statuses as written by Robot Framework.
const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusSkip    = "SKIP"
	StatusUnknown = "UNKNOWN"
)

// SetupActions returns the suite-level setup actions directly under suite,
// written either as <kw type="SETUP"> or as <setup>.
func SetupActions(suite *Element) []*Element {
	return actionsOfType(suite, "SETUP", "setup")
}

// TeardownActions is the teardown counterpart of SetupActions.
func TeardownActions(suite *Element) []*Element {
	return actionsOfType(suite, "TEARDOWN", "teardown")
}

func actionsOfType(suite *Element, kwType, element string) []*Element {
	var out []*Element
	for _, c := range suite.Children {
		if (c.Name == "kw" && c.Attr("type") == kwType) || c.Name == element {
			out = append(out, c)
		}
	}
	return out
}

// Status returns the status attribute of the <status> child of el, or
// StatusUnknown when there is none.
func Status(el *Element) string {
	st := el.Child("status")
	if st == nil {
		return StatusUnknown
	}
	v, ok := st.LookupAttr("status")
	if !ok || v == "" {
		return StatusUnknown
	}
	return v
}

// Doc returns the text of the <doc> child of el, or "".
func Doc(el *Element) string {
	if d := el.Child("doc"); d != nil {
		return d.Text
	}
	return ""
}

// Source returns the suite source path, taken from the source attribute or,
// failing that, a <source> child.
func Source(suite *Element) string {
	if v, ok := suite.LookupAttr("source"); ok {
		return v
	}
	if s := suite.Child("source"); s != nil {
		return s.Text
	}
	return ""
}

// Pair is a test together with the suite that directly contains it.
type Pair struct {
	Suite *Element
	Test  *Element
}

// TestPairs enumerates every (suite, test) pair under root in document order:
// suites in pre-order, then tests within each suite.
func TestPairs(root *Element) []Pair {
	var pairs []Pair
	suites := root.Descendants("suite")
	if root.Name == "suite" {
		suites = append([]*Element{root}, suites...)
	}
	for _, suite := range suites {
		for _, test := range suite.ChildrenNamed("test") {
			pairs = append(pairs, Pair{Suite: suite, Test: test})
		}
	}
	return pairs
}
