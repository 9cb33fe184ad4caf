// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest renders the generated index region embedded in a
// companion file between sentinel comments. The core only reads companion
// files for drift detection; writing is an explicit CLI action.
package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/docgarden/internal/document"
)

// BeginMarker and EndMarker delimit the generated region.
const (
	BeginMarker = "<!-- docgarden:begin -->"
	EndMarker   = "<!-- docgarden:end -->"
)

// Render derives the manifest region for the given documents. Output is
// deterministic: one table row per document, sorted by path, so drift
// detection can compare byte-for-byte.
func Render(docs []document.Document) string {
	sorted := append([]document.Document(nil), docs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path() < sorted[j].Path() })

	var b strings.Builder
	b.WriteString("| Path | Type | Title | Updated |\n")
	b.WriteString("|------|------|-------|---------|\n")
	for _, doc := range sorted {
		title := doc.Title()
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			doc.Path(), doc.Type(), title, doc.Header().LastUpdated.Format("2006-01-02"))
	}
	return b.String()
}

// ExtractRegion returns the text between the sentinel markers, exclusive,
// and whether a complete region was found.
func ExtractRegion(text string) (string, bool) {
	start := strings.Index(text, BeginMarker)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(BeginMarker):]
	end := strings.Index(rest, EndMarker)
	if end < 0 {
		return "", false
	}
	return strings.TrimPrefix(rest[:end], "\n"), true
}

// Inject replaces the sentinel-delimited region with region, or appends a
// new delimited region when the markers are absent.
func Inject(text, region string) string {
	start := strings.Index(text, BeginMarker)
	if start >= 0 {
		rest := text[start+len(BeginMarker):]
		if end := strings.Index(rest, EndMarker); end >= 0 {
			return text[:start] + BeginMarker + "\n" + region + EndMarker + rest[end+len(EndMarker):]
		}
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + BeginMarker + "\n" + region + EndMarker + "\n"
}
