// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/docgarden/internal/header"
	"github.com/pdiddy/docgarden/pkg/types"
)

// minDescriptionLen is the shortest acceptable description field.
const minDescriptionLen = 10

// dateLayout is the ISO date format used by all frontmatter date fields.
const dateLayout = "2006-01-02"

// tagPattern matches lowercase-hyphenated tag values.
var tagPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// slug is the shared path component pattern for the placement regexps.
const slug = `[a-z0-9]+(?:-[a-z0-9]+)*`

// typeSpec describes the structural contract of one document type. The
// registry below is built once and never mutated.
type typeSpec struct {
	// requiredSections is the canonical section list in canonical order.
	requiredSections []string

	// minLines and maxLines bound the total line count; maxLines 0 means
	// unbounded.
	minLines int
	maxLines int

	// pathPattern is the expected location relative to the garden root.
	pathPattern *regexp.Regexp

	// needsValidated, needsSources, and needsStatus select the
	// variant-specific required header fields.
	needsValidated bool
	needsSources   bool
	needsStatus    bool

	// construct wraps a parsed base in its concrete variant.
	construct func(base) Document
}

var registry = map[types.DocType]typeSpec{
	types.DocNote: {
		minLines:    8,
		pathPattern: regexp.MustCompile(`^notes/` + slug + `\.md$`),
		construct:   func(b base) Document { return &Note{b} },
	},
	types.DocTopic: {
		requiredSections: []string{"Guidance", "Context", "In Practice", "Pitfalls", "Go Deeper"},
		minLines:         30,
		maxLines:         400,
		pathPattern:      regexp.MustCompile(`^areas/` + slug + `/` + slug + `\.md$`),
		needsValidated:   true,
		needsSources:     true,
		construct:        func(b base) Document { return &Topic{b} },
	},
	types.DocOverview: {
		requiredSections: []string{"Coverage", "Topics"},
		minLines:         20,
		maxLines:         240,
		pathPattern:      regexp.MustCompile(`^areas/` + slug + `/overview\.md$`),
		construct:        func(b base) Document { return &Overview{b} },
	},
	types.DocResearch: {
		requiredSections: []string{"Question", "Context", "Findings", "Implications"},
		minLines:         30,
		maxLines:         600,
		pathPattern:      regexp.MustCompile(`^research/\d{4}-\d{2}-\d{2}-` + slug + `\.md$`),
		needsValidated:   true,
		needsSources:     true,
		construct:        func(b base) Document { return &Research{b} },
	},
	types.DocPlan: {
		requiredSections: []string{"Objective", "Approach", "Steps", "Risks"},
		minLines:         20,
		maxLines:         500,
		pathPattern:      regexp.MustCompile(`^plans/\d{4}-\d{2}-\d{2}-` + slug + `\.md$`),
		needsStatus:      true,
		construct:        func(b base) Document { return &Plan{b} },
	},
}

// RequiredSections returns the canonical section list for a document type.
// The result is a copy; callers may not mutate the registry.
func RequiredSections(dt types.DocType) []string {
	spec, ok := registry[dt]
	if !ok {
		return nil
	}
	return append([]string(nil), spec.requiredSections...)
}

// SizeBounds returns the line-count bounds for a document type. max is 0
// when unbounded.
func SizeBounds(dt types.DocType) (min, max int) {
	spec := registry[dt]
	return spec.minLines, spec.maxLines
}

// PathPattern returns the expected path pattern for a document type.
func PathPattern(dt types.DocType) *regexp.Regexp {
	return registry[dt].pathPattern
}

// FieldError records one schema violation, attributed to the frontmatter
// field that caused it.
type FieldError struct {
	Field string
	Msg   string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Msg
}

// SchemaError aggregates every field violation found while typing a raw
// header. All violations are collected in one pass rather than stopping at
// the first.
type SchemaError struct {
	Fields []FieldError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid frontmatter: " + strings.Join(msgs, "; ")
}

// BuildHeader validates a raw header mapping against the schema selected by
// its type field and returns the typed, immutable header. An unknown or
// missing type fails with a document-type error; all other violations are
// collected into a single SchemaError naming each offending field.
func BuildHeader(raw header.RawHeader) (types.Header, error) {
	typeValue, _ := raw["type"].(string)
	dt := types.DocType(typeValue)
	spec, ok := registry[dt]
	if !ok {
		return types.Header{}, fmt.Errorf("unknown document type %q", typeValue)
	}

	h := types.Header{Type: dt}
	var errs []FieldError
	fail := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Msg: msg})
	}

	h.Description, _ = raw["description"].(string)
	if len(h.Description) < minDescriptionLen {
		fail("description", fmt.Sprintf("must be at least %d characters", minDescriptionLen))
	}

	h.LastUpdated = parseDateField(raw, "last-updated", true, fail)
	h.LastValidated = parseDateField(raw, "last-validated", spec.needsValidated, fail)

	if tags, ok := raw["tags"].([]string); ok {
		for _, tag := range tags {
			if !tagPattern.MatchString(tag) {
				fail("tags", fmt.Sprintf("tag %q is not lowercase-hyphenated", tag))
			}
		}
		h.Tags = append([]string(nil), tags...)
	}

	if related, ok := raw["related"].([]string); ok {
		h.Related = append([]string(nil), related...)
	}

	if spec.needsSources {
		entries, _ := raw["sources"].([]string)
		if len(entries) == 0 {
			fail("sources", "at least one source is required")
		}
		for _, entry := range entries {
			src, err := parseSource(entry)
			if err != nil {
				fail("sources", err.Error())
				continue
			}
			h.Sources = append(h.Sources, src)
		}
	}

	if spec.needsStatus {
		status, _ := raw["status"].(string)
		switch types.PlanStatus(status) {
		case types.StatusDraft, types.StatusActive, types.StatusComplete, types.StatusAbandoned:
			h.Status = types.PlanStatus(status)
		default:
			fail("status", fmt.Sprintf("%q is not one of draft, active, complete, abandoned", status))
		}
	}

	if len(errs) > 0 {
		return types.Header{}, &SchemaError{Fields: errs}
	}
	return h, nil
}

// parseDateField reads an ISO date from raw, reporting a missing, malformed,
// or future value through fail. Dates must not be in the future.
func parseDateField(raw header.RawHeader, field string, required bool, fail func(field, msg string)) time.Time {
	value, _ := raw[field].(string)
	if value == "" {
		if required {
			fail(field, "required date is missing")
		}
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		fail(field, fmt.Sprintf("%q is not a valid date (want YYYY-MM-DD)", value))
		return time.Time{}
	}
	if t.After(today()) {
		fail(field, fmt.Sprintf("%s is in the future", value))
		return time.Time{}
	}
	return t
}

// parseSource splits a "url | title" list entry into a Source.
func parseSource(entry string) (types.Source, error) {
	url, title, ok := strings.Cut(entry, " | ")
	url = strings.TrimSpace(url)
	title = strings.TrimSpace(title)
	if !ok || url == "" || title == "" {
		return types.Source{}, fmt.Errorf("source entry %q must be \"url | title\"", entry)
	}
	return types.Source{URL: url, Title: title}, nil
}

// Now is the clock used for future-date and staleness checks. Tests
// override it for deterministic dates.
var Now = time.Now

// today returns the end of the current day, so a last-updated stamp of
// today's date never counts as future.
func today() time.Time {
	y, m, d := Now().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
