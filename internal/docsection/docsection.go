// SPDX-License-Identifier: Apache-2.0

// Package docsection mines structured lists out of free-text test
// documentation. Documentation without a recognisable section yields empty
// results, never an error.
package docsection

import (
	"regexp"
	"strings"
)

// DefaultExpected is the expected behaviour of a step written without a '/'.
const DefaultExpected = "pass"

var (
	// The trailing \*? consumes the closing marker of "*Steps:*".
	stepsHeader        = regexp.MustCompile(`(?i)\*?steps(?:\s*/\s*\w+)?\*?:?\*?`)
	requirementsHeader = regexp.MustCompile(`(?i)\*?requirements\*?:?\*?`)

	numberedItem = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	bulletedItem = regexp.MustCompile(`^[-*]\s+(.+)$`)

	// labelLine matches prose labels such as "Notes:" or "Expected result: ok".
	// A label ends a plain-text list unless a list item follows it.
	labelLine = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*:(\s|$)`)
)

// Section describes one labelled list inside documentation text.
type Section struct {
	Name   string
	header *regexp.Regexp
	// plain accepts unmarked non-empty lines as items.
	plain bool
}

var (
	// StepsSection matches "Steps", "*Steps*", "*Steps:*", "Steps / Expected:" and similar.
	StepsSection = Section{Name: "steps", header: stepsHeader}
	// RequirementsSection matches "Requirements", "*Requirements*" and "Requirements:".
	RequirementsSection = Section{Name: "requirements", header: requirementsHeader, plain: true}
)

// Items returns the list items of the section in source order. Only the first
// header occurrence is honoured.
func (s Section) Items(doc string) []string {
	if doc == "" {
		return nil
	}
	loc := s.header.FindStringIndex(doc)
	if loc == nil {
		return nil
	}

	lines := strings.Split(doc[loc[1]:], "\n")
	var items []string
	for i, line := range lines {
		line = cleanLine(line)

		if isHeaderLine(line) {
			break
		}
		if line == "" {
			continue
		}

		if item, ok := listItem(line); ok {
			items = append(items, item)
			continue
		}
		if s.plain && (!labelLine.MatchString(line) || nextIsListItem(lines[i+1:])) {
			items = append(items, line)
			continue
		}
		if len(items) > 0 && !looksLikeItem(line) {
			break
		}
	}
	return items
}

// cleanLine trims line and drops a Robot Framework continuation marker.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "...") {
		line = strings.TrimSpace(line[3:])
	}
	return line
}

// nextIsListItem reports whether the first non-blank line is a list item.
func nextIsListItem(lines []string) bool {
	for _, line := range lines {
		if line = cleanLine(line); line == "" {
			continue
		}
		_, ok := listItem(line)
		return ok
	}
	return false
}

// isHeaderLine reports whether line opens a new emphasised section,
// e.g. "*Expected*" or "*Results:*".
func isHeaderLine(line string) bool {
	if !strings.HasPrefix(line, "*") {
		return false
	}
	return strings.HasSuffix(line, "*") || strings.Contains(line, ":")
}

// listItem recognises numbered items before bulleted ones.
func listItem(line string) (string, bool) {
	if m := numberedItem.FindStringSubmatch(line); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			return text, true
		}
	}
	if m := bulletedItem.FindStringSubmatch(line); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			return text, true
		}
	}
	return "", false
}

func looksLikeItem(line string) bool {
	if line == "" {
		return false
	}
	switch c := line[0]; {
	case c >= '1' && c <= '9', c == '-', c == '*':
		return true
	}
	return false
}

// ExtractRequirements returns the items of the Requirements section. Lines
// without a list marker count as requirements unless they read like a new
// prose label ("Notes: ...") with no list item after them.
func ExtractRequirements(doc string) []string {
	items := RequirementsSection.Items(doc)
	if items == nil {
		return []string{}
	}
	return items
}
