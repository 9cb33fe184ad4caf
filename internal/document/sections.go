// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"

	"github.com/pdiddy/docgarden/pkg/types"
)

// SplitSections breaks a document body into its title and ordered sections.
//
// The title is the text of the first first-level heading. Every second-level
// heading opens a new section; third-level-and-deeper headings belong to the
// content of the enclosing section. offset is the 1-indexed file line number
// of the first body line, so recorded line positions stay exact across the
// frontmatter boundary.
func SplitSections(body string, offset int) (title string, titleLine int, sections []types.Section) {
	lines := strings.Split(body, "\n")

	var current *types.Section
	var content []string

	flush := func(endLine int) {
		if current == nil {
			return
		}
		current.Content = strings.Join(content, "\n")
		current.LineEnd = endLine
		sections = append(sections, *current)
		current = nil
		content = nil
	}

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		abs := offset + i

		switch {
		case strings.HasPrefix(line, "## ") || line == "##":
			flush(abs - 1)
			name := strings.TrimSpace(strings.TrimPrefix(line, "##"))
			current = &types.Section{Name: name, LineStart: abs}

		case strings.HasPrefix(line, "# ") && title == "" && titleLine == 0:
			title = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			titleLine = abs

		default:
			if current != nil {
				content = append(content, line)
			}
		}
	}

	flush(offset + len(lines) - 1)
	return title, titleLine, sections
}

// headingLevel returns the level of a markdown heading line, or 0 when the
// line is not a heading.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n == len(line) || line[n] == ' ' {
		return n
	}
	return 0
}

// Headings returns the level of every markdown heading in text, in order.
func Headings(text string) []int {
	var levels []int
	for _, line := range strings.Split(text, "\n") {
		if lvl := headingLevel(strings.TrimRight(line, "\r")); lvl > 0 {
			levels = append(levels, lvl)
		}
	}
	return levels
}
