// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docgarden tool.
package types

import "time"

// DocType discriminates the five document kinds. The frontmatter "type"
// field selects which schema and section layout applies.
type DocType string

const (
	DocNote     DocType = "note"
	DocTopic    DocType = "topic"
	DocOverview DocType = "overview"
	DocResearch DocType = "research"
	DocPlan     DocType = "plan"
)

// PlanStatus is the lifecycle state of a plan document.
type PlanStatus string

const (
	StatusDraft     PlanStatus = "draft"
	StatusActive    PlanStatus = "active"
	StatusComplete  PlanStatus = "complete"
	StatusAbandoned PlanStatus = "abandoned"
)

// Source is one cited source: a URL and the title the document claims for it.
// In frontmatter a source is a single list entry "<url> | <title>".
type Source struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

// Header is the typed frontmatter of a document. It is built only by the
// schema registry and never mutated afterward; edits go through a full
// reparse of the rewritten text.
//
// Which fields are required depends on the DocType: description and
// last-updated always; last-validated and sources for topic and research;
// status for plan. Optional fields are zero-valued when absent.
type Header struct {
	// Type is the discriminator selecting the schema.
	Type DocType `json:"type" yaml:"type"`

	// Description is a short summary (minimum 10 characters).
	Description string `json:"description" yaml:"description"`

	// LastUpdated is the declared last-edit date. Never in the future.
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`

	// LastValidated is when the content was last checked against reality.
	// Zero when the type does not track freshness.
	LastValidated time.Time `json:"last_validated,omitempty" yaml:"last_validated,omitempty"`

	// Status is the plan lifecycle state; empty for other types.
	Status PlanStatus `json:"status,omitempty" yaml:"status,omitempty"`

	// Tags are lowercase-hyphenated labels.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Related lists paths (relative to the garden root) or URLs.
	Related []string `json:"related,omitempty" yaml:"related,omitempty"`

	// Sources lists cited (url, title) pairs; required non-empty for
	// topic and research documents.
	Sources []Source `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Section is one second-level unit of a document body. Content includes
// everything up to the next second-level heading; deeper headings fold in.
type Section struct {
	// Name is the heading text. Blank names are a soft warning, not a
	// parse failure.
	Name string `json:"name" yaml:"name"`

	// Content is the section body, heading line excluded.
	Content string `json:"content" yaml:"content"`

	// LineStart and LineEnd are 1-indexed positions in the full file,
	// heading line included. Zero when unknown.
	LineStart int `json:"line_start,omitempty" yaml:"line_start,omitempty"`
	LineEnd   int `json:"line_end,omitempty" yaml:"line_end,omitempty"`
}
