// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fix rewrites nonconforming document text. Every candidate rewrite
// is reparsed in full before it is returned; a transform whose output does
// not reparse reports no fix rather than emitting unverified text.
package fix

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/internal/header"
	"github.com/pdiddy/docgarden/pkg/types"
)

// fixer computes a candidate replacement for one issue. ok is false when no
// fix applies.
type fixer func(path, text string, issue types.Issue) (candidate, desc string, ok bool)

// table wires validator ids to transforms. Only section presence and
// ordering are fixable mechanically; everything else needs a human.
var table = map[string]fixer{
	"section-presence": insertMissingSection,
	"section-order":    reorderSections,
}

// Fixable reports whether any transform is wired for the validator id.
func Fixable(validatorID string) bool {
	_, ok := table[validatorID]
	return ok
}

// Apply attempts to fix one issue. It returns the rewritten text and a
// human-readable description of the change, or ok=false when no transform
// is wired, the transform declines, or the candidate fails to reparse.
func Apply(path, text string, issue types.Issue) (newText, desc string, ok bool) {
	transform, wired := table[issue.Validator]
	if !wired {
		return "", "", false
	}
	candidate, desc, ok := transform(path, text, issue)
	if !ok {
		return "", "", false
	}
	if _, err := document.Parse(path, candidate); err != nil {
		return "", "", false
	}
	return candidate, desc, true
}

// block is one verbatim section chunk: the heading line plus everything up
// to the next second-level heading.
type block struct {
	name  string
	lines []string
}

// splitBlocks divides body lines into the preamble (title and any text
// before the first section) and the ordered section blocks.
func splitBlocks(bodyLines []string) (preamble []string, blocks []block) {
	current := -1
	for _, line := range bodyLines {
		trimmed := strings.TrimRight(line, "\r")
		if strings.HasPrefix(trimmed, "## ") || trimmed == "##" {
			blocks = append(blocks, block{
				name: strings.TrimSpace(strings.TrimPrefix(trimmed, "##")),
			})
			current = len(blocks) - 1
		}
		if current < 0 {
			preamble = append(preamble, line)
		} else {
			blocks[current].lines = append(blocks[current].lines, line)
		}
	}
	return preamble, blocks
}

// reorderSections sorts the canonical sections present into canonical
// position order. Non-canonical extras keep their relative order and follow
// the canonical run. Applying the transform to its own output is a no-op.
func reorderSections(path, text string, issue types.Issue) (string, string, bool) {
	doc, err := document.Parse(path, text)
	if err != nil {
		return "", "", false
	}

	lines := strings.Split(text, "\n")
	_, _, consumed, err := header.Parse(text)
	if err != nil {
		return "", "", false
	}
	headerLines := lines[:consumed]
	preamble, blocks := splitBlocks(lines[consumed:])

	canonicalPos := make(map[string]int)
	for i, name := range doc.RequiredSections() {
		canonicalPos[name] = i
	}

	var canonical, extras []block
	for _, b := range blocks {
		if _, ok := canonicalPos[b.name]; ok {
			canonical = append(canonical, b)
		} else {
			extras = append(extras, b)
		}
	}
	// Stable: blocks with equal names keep document order.
	for i := 1; i < len(canonical); i++ {
		for j := i; j > 0 && canonicalPos[canonical[j-1].name] > canonicalPos[canonical[j].name]; j-- {
			canonical[j-1], canonical[j] = canonical[j], canonical[j-1]
		}
	}

	out := append([]string(nil), headerLines...)
	out = append(out, preamble...)
	for _, b := range canonical {
		out = append(out, b.lines...)
	}
	for _, b := range extras {
		out = append(out, b.lines...)
	}

	return strings.Join(out, "\n"), "reordered sections into canonical order", true
}

// insertMissingSection adds a heading plus placeholder block for the section
// named by the issue. The block lands immediately after the nearest present
// canonical predecessor, or right after the title line when none precedes.
func insertMissingSection(path, text string, issue types.Issue) (string, string, bool) {
	if issue.Section == "" {
		return "", "", false
	}
	doc, err := document.Parse(path, text)
	if err != nil {
		return "", "", false
	}
	if doc.HasSection(issue.Section) {
		return "", "", false
	}

	required := doc.RequiredSections()
	missingAt := -1
	for i, name := range required {
		if name == issue.Section {
			missingAt = i
			break
		}
	}
	if missingAt < 0 {
		return "", "", false
	}

	lines := strings.Split(text, "\n")
	_, _, consumed, err := header.Parse(text)
	if err != nil {
		return "", "", false
	}
	preamble, blocks := splitBlocks(lines[consumed:])

	// Nearest canonical predecessor actually present in the document.
	predecessor := ""
	for i := missingAt - 1; i >= 0; i-- {
		if doc.HasSection(required[i]) {
			predecessor = required[i]
			break
		}
	}

	newBlock := []string{
		"",
		"## " + issue.Section,
		"",
		fmt.Sprintf("<!-- TODO: write %s -->", issue.Section),
	}

	out := append([]string(nil), lines[:consumed]...)
	if predecessor == "" {
		// Insert right after the title line inside the preamble, or at
		// the end of the preamble when no title exists.
		at := len(preamble)
		for i, line := range preamble {
			if strings.HasPrefix(strings.TrimRight(line, "\r"), "# ") {
				at = i + 1
				break
			}
		}
		out = append(out, preamble[:at]...)
		out = append(out, newBlock...)
		out = append(out, preamble[at:]...)
		for _, b := range blocks {
			out = append(out, b.lines...)
		}
	} else {
		out = append(out, preamble...)
		for _, b := range blocks {
			out = append(out, b.lines...)
			if b.name == predecessor {
				out = append(out, newBlock...)
				predecessor = "" // insert after the first occurrence only
			}
		}
	}

	desc := fmt.Sprintf("inserted missing section %q", issue.Section)
	return strings.Join(out, "\n"), desc, true
}
