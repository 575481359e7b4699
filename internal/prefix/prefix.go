// SPDX-License-Identifier: Apache-2.0

// Package prefix mines a short classification tag for a test case from log
// messages in its suite ancestry, e.g. the interface name passed to a
// session-opening keyword in a suite setup.
package prefix

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/logchunks/logchunks/internal/robotxml"
)

// ErrInvalidPattern is returned for patterns without exactly one capture group.
var ErrInvalidPattern = errors.New("prefix pattern must contain exactly one capture group")

// Resolver finds classification prefixes. A nil *Resolver, or one built from
// an empty pattern, never finds anything.
type Resolver struct {
	pattern *regexp.Regexp
}

// New compiles pattern. An empty pattern yields a disabled resolver.
func New(pattern string) (*Resolver, error) {
	if pattern == "" {
		return &Resolver{}, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile prefix pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("%w: %q has %d", ErrInvalidPattern, pattern, re.NumSubexp())
	}
	return &Resolver{pattern: re}, nil
}

// Enabled reports whether a pattern is configured.
func (r *Resolver) Enabled() bool {
	return r != nil && r.pattern != nil
}

// Resolve searches, in order: the setup of suite, the setups of its ancestor
// suites from nearest to outermost, then every message under test. The first
// capture is returned uppercased; "" means no match. root may be nil, in which
// case ancestors are not searched.
func (r *Resolver) Resolve(test, suite, root *robotxml.Element) string {
	if !r.Enabled() {
		return ""
	}

	if suite != nil {
		if p := r.searchSetup(suite); p != "" {
			return p
		}
		if root != nil {
			for _, id := range AncestorIDs(suite.Attr("id")) {
				parent := findSuite(root, id)
				if parent == nil {
					continue
				}
				if p := r.searchSetup(parent); p != "" {
					return p
				}
			}
		}
	}

	if test != nil {
		return r.searchMessages(test)
	}
	return ""
}

// AncestorIDs derives ancestor suite ids by cutting the dash-joined id from
// the right: "s1-s2-s3" gives ["s1-s2", "s1"].
func AncestorIDs(id string) []string {
	if id == "" {
		return nil
	}
	parts := strings.Split(id, "-")
	ids := make([]string, 0, len(parts)-1)
	for i := len(parts) - 1; i > 0; i-- {
		ids = append(ids, strings.Join(parts[:i], "-"))
	}
	return ids
}

func findSuite(root *robotxml.Element, id string) *robotxml.Element {
	return root.FindFunc(func(e *robotxml.Element) bool {
		return e.Name == "suite" && e.Attr("id") == id
	})
}

func (r *Resolver) searchSetup(suite *robotxml.Element) string {
	for _, setup := range robotxml.SetupActions(suite) {
		if p := r.searchMessages(setup); p != "" {
			return p
		}
	}
	return ""
}

func (r *Resolver) searchMessages(el *robotxml.Element) string {
	for _, msg := range el.Descendants("msg") {
		if msg.Text == "" {
			continue
		}
		if m := r.pattern.FindStringSubmatch(msg.Text); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}
