// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"

	"github.com/pdiddy/docgarden/internal/header"
	"github.com/pdiddy/docgarden/pkg/types"
)

// RenderHeader serializes a typed header into a frontmatter block with a
// fixed field order: type, description, last-updated, last-validated,
// status, tags, related, sources. Zero-valued optional fields are omitted;
// sources render as "url | title" list entries.
func RenderHeader(h types.Header) string {
	var b strings.Builder
	b.WriteString(header.Delimiter + "\n")
	b.WriteString("type: " + string(h.Type) + "\n")
	b.WriteString("description: " + h.Description + "\n")
	b.WriteString("last-updated: " + h.LastUpdated.Format(dateLayout) + "\n")
	if !h.LastValidated.IsZero() {
		b.WriteString("last-validated: " + h.LastValidated.Format(dateLayout) + "\n")
	}
	if h.Status != "" {
		b.WriteString("status: " + string(h.Status) + "\n")
	}
	if len(h.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range h.Tags {
			b.WriteString("- " + tag + "\n")
		}
	}
	if len(h.Related) > 0 {
		b.WriteString("related:\n")
		for _, rel := range h.Related {
			b.WriteString("- " + rel + "\n")
		}
	}
	if len(h.Sources) > 0 {
		b.WriteString("sources:\n")
		for _, src := range h.Sources {
			b.WriteString("- " + src.URL + " | " + src.Title + "\n")
		}
	}
	b.WriteString(header.Delimiter + "\n")
	return b.String()
}

func (b *base) Render() string {
	var out strings.Builder
	out.WriteString(RenderHeader(b.header))
	out.WriteString("\n# " + b.title + "\n")
	for _, s := range b.sections {
		out.WriteString("\n## " + s.Name + "\n")
		content := strings.Trim(s.Content, "\n")
		if content != "" {
			out.WriteString(content + "\n")
		}
	}
	return out.String()
}

// PlainText strips markdown heading markers from the document body and
// returns title plus section text, for word counting and previews.
func PlainText(doc Document) string {
	var b strings.Builder
	b.WriteString(doc.Title() + "\n")
	for _, s := range doc.Sections() {
		b.WriteString(s.Name + "\n")
		for _, line := range strings.Split(s.Content, "\n") {
			b.WriteString(strings.TrimLeft(line, "# ") + "\n")
		}
	}
	return b.String()
}
