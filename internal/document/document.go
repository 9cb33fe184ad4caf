// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document turns raw text into strongly-typed garden documents.
//
// Documents are created only by parsing; an edited document is a brand-new
// value produced by reparsing rewritten text. The fix engine relies on that
// to prove its rewrites valid before they are accepted.
package document

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docgarden/internal/header"
	"github.com/pdiddy/docgarden/pkg/types"
)

// Document is the shared contract of the five document variants.
type Document interface {
	// Path is the file location relative to the garden root.
	Path() string

	// Type is the discriminator value of this variant.
	Type() types.DocType

	// Header is the typed frontmatter.
	Header() types.Header

	// Title is the text of the first first-level heading; empty when the
	// document has none.
	Title() string

	// TitleLine is the 1-indexed line of the title heading, 0 when absent.
	TitleLine() int

	// Sections returns the second-level sections in document order.
	Sections() []types.Section

	// Section looks up a section by exact heading text.
	Section(name string) (types.Section, bool)

	// HasSection reports whether a section with the given name exists.
	HasSection(name string) bool

	// Raw is the verbatim parsed text.
	Raw() string

	// Body is the text following the frontmatter block.
	Body() string

	// FrontmatterEnd is the 1-indexed line of the closing delimiter.
	FrontmatterEnd() int

	// RequiredSections is this type's canonical section list in canonical
	// order.
	RequiredSections() []string

	// SizeBounds returns this type's line-count bounds; max 0 means
	// unbounded.
	SizeBounds() (min, max int)

	// Render re-serializes the document to markdown with a deterministic
	// frontmatter layout.
	Render() string

	// EstimateTokens is a crude length/4 cost heuristic over the title,
	// description, and section names and content. Not a tokenizer.
	EstimateTokens() int
}

// base carries the fields and behavior shared by every variant.
type base struct {
	path      string
	header    types.Header
	title     string
	titleLine int
	sections  []types.Section
	raw       string
	body      string
	fmEnd     int
}

func (b *base) Path() string             { return b.path }
func (b *base) Type() types.DocType      { return b.header.Type }
func (b *base) Header() types.Header     { return b.header }
func (b *base) Title() string            { return b.title }
func (b *base) TitleLine() int           { return b.titleLine }
func (b *base) Raw() string              { return b.raw }
func (b *base) Body() string             { return b.body }
func (b *base) FrontmatterEnd() int      { return b.fmEnd }
func (b *base) RequiredSections() []string {
	return RequiredSections(b.header.Type)
}

func (b *base) SizeBounds() (int, int) {
	return SizeBounds(b.header.Type)
}

func (b *base) Sections() []types.Section {
	return append([]types.Section(nil), b.sections...)
}

func (b *base) Section(name string) (types.Section, bool) {
	for _, s := range b.sections {
		if s.Name == name {
			return s, true
		}
	}
	return types.Section{}, false
}

func (b *base) HasSection(name string) bool {
	_, ok := b.Section(name)
	return ok
}

func (b *base) EstimateTokens() int {
	chars := len(b.title) + len(b.header.Description)
	for _, s := range b.sections {
		chars += len(s.Name) + len(s.Content)
	}
	return chars / 4
}

// Note is the minimal kind: no required sections beyond the common header.
type Note struct{ base }

// Topic is an area-scoped document with tracked freshness and sources.
type Topic struct{ base }

// Sources returns the cited (url, title) pairs.
func (t *Topic) Sources() []types.Source {
	return append([]types.Source(nil), t.header.Sources...)
}

// Overview is the per-area summary listing the area's topics.
type Overview struct{ base }

// TopicListing returns the content of the Topics section, or "" when the
// section is missing.
func (o *Overview) TopicListing() string {
	s, _ := o.Section("Topics")
	return s.Content
}

// Research is a dated artifact answering one question, with sources and
// tracked freshness.
type Research struct{ base }

// Plan is a dated artifact with a lifecycle status.
type Plan struct{ base }

// Status returns the plan's lifecycle state.
func (p *Plan) Status() types.PlanStatus {
	return p.header.Status
}

// Parse builds the concrete document variant from raw text. It never
// returns a partially-built document: any header, schema, or structural
// failure yields a nil document and a structured error.
func Parse(path, text string) (Document, error) {
	raw, body, consumed, err := header.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	h, err := BuildHeader(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	title, titleLine, sections := SplitSections(body, consumed+1)

	b := base{
		path:      strings.ReplaceAll(path, "\\", "/"),
		header:    h,
		title:     title,
		titleLine: titleLine,
		sections:  sections,
		raw:       text,
		body:      body,
		fmEnd:     consumed,
	}
	return registry[h.Type].construct(b), nil
}

// LineCount returns the total number of lines in the document's raw text.
func LineCount(doc Document) int {
	return strings.Count(doc.Raw(), "\n") + 1
}
