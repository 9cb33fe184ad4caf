package document

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/docgarden/pkg/types"
)

// --- test helpers ---

func topicText() string {
	return `---
type: topic
description: Connection pooling behavior under sustained load
last-updated: 2026-08-01
last-validated: 2026-08-01
tags:
- databases
sources:
- https://example.com/pool | Pooling Guide
---

# Connection Pooling

## Guidance
Use a bounded pool.

## Context
Pools amortize handshake cost.

### Sizing
Deeper heading folds into Context.

## In Practice
Set max_open and max_idle together.

## Pitfalls
Leaked connections exhaust the pool.

## Go Deeper
- [Driver docs](https://example.com/driver)
`
}

func planText(status string) string {
	return `---
type: plan
description: Migrate the index to a new schema
last-updated: 2026-08-01
status: ` + status + `
---

# Index Migration

## Objective
Move without downtime.

## Approach
Dual-write then backfill.

## Steps
1. Add new tables.

## Risks
Backfill lag.
`
}

func mustParse(t *testing.T, path, text string) Document {
	t.Helper()
	doc, err := Parse(path, text)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// --- parsing ---

func TestParseTopic(t *testing.T) {
	doc := mustParse(t, "areas/databases/connection-pooling.md", topicText())

	if doc.Type() != types.DocTopic {
		t.Errorf("type = %s", doc.Type())
	}
	if doc.Title() != "Connection Pooling" {
		t.Errorf("title = %q", doc.Title())
	}

	var names []string
	for _, s := range doc.Sections() {
		names = append(names, s.Name)
	}
	want := []string{"Guidance", "Context", "In Practice", "Pitfalls", "Go Deeper"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("sections = %v, want %v", names, want)
	}

	// Deeper headings fold into the enclosing section.
	ctx, ok := doc.Section("Context")
	if !ok || !strings.Contains(ctx.Content, "### Sizing") {
		t.Errorf("Context = %+v", ctx)
	}

	if topic, ok := doc.(*Topic); !ok {
		t.Errorf("concrete type = %T", doc)
	} else if len(topic.Sources()) != 1 || topic.Sources()[0].Title != "Pooling Guide" {
		t.Errorf("sources = %+v", topic.Sources())
	}
}

func TestParseLineNumbers(t *testing.T) {
	doc := mustParse(t, "areas/databases/connection-pooling.md", topicText())

	// Frontmatter spans lines 1-10; blank separator is line 11, title 12.
	if doc.FrontmatterEnd() != 10 {
		t.Errorf("frontmatter end = %d, want 10", doc.FrontmatterEnd())
	}
	if doc.TitleLine() != 12 {
		t.Errorf("title line = %d, want 12", doc.TitleLine())
	}

	guidance, _ := doc.Section("Guidance")
	if guidance.LineStart != 14 {
		t.Errorf("Guidance line_start = %d, want 14", guidance.LineStart)
	}
}

func TestParseNeverPartial(t *testing.T) {
	_, err := Parse("notes/x.md", "no frontmatter at all\n")
	if err == nil {
		t.Fatal("expected error")
	}

	_, err = Parse("notes/x.md", "---\ntype: sermon\ndescription: long enough here\nlast-updated: 2026-01-01\n---\n# T\n")
	if err == nil || !strings.Contains(err.Error(), "document type") {
		t.Errorf("err = %v, want document type error", err)
	}
}

// --- schema completeness ---

func TestSchemaMissingFieldNamesField(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		field string
	}{
		{
			"topic missing sources",
			"---\ntype: topic\ndescription: long enough here\nlast-updated: 2026-01-01\nlast-validated: 2026-01-01\n---\n# T\n",
			"sources",
		},
		{
			"topic missing last-validated",
			"---\ntype: topic\ndescription: long enough here\nlast-updated: 2026-01-01\nsources:\n- https://e.com | E\n---\n# T\n",
			"last-validated",
		},
		{
			"research missing sources",
			"---\ntype: research\ndescription: long enough here\nlast-updated: 2026-01-01\nlast-validated: 2026-01-01\n---\n# T\n",
			"sources",
		},
		{
			"plan missing status",
			"---\ntype: plan\ndescription: long enough here\nlast-updated: 2026-01-01\n---\n# T\n",
			"status",
		},
		{
			"note missing description",
			"---\ntype: note\nlast-updated: 2026-01-01\n---\n# T\n",
			"description",
		},
		{
			"overview missing last-updated",
			"---\ntype: overview\ndescription: long enough here\n---\n# T\n",
			"last-updated",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("x.md", tc.text)
			if err == nil {
				t.Fatal("expected schema error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("err %q does not name field %q", err, tc.field)
			}
		})
	}
}

func TestSchemaCollectsAllViolations(t *testing.T) {
	_, err := Parse("x.md",
		"---\ntype: topic\ndescription: short\nlast-updated: 2199-01-01\n---\n# T\n")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}

	var fields []string
	for _, f := range schemaErr.Fields {
		fields = append(fields, f.Field)
	}
	for _, want := range []string{"description", "last-updated", "last-validated", "sources"} {
		found := false
		for _, f := range fields {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing violation for %s in %v", want, fields)
		}
	}
}

func TestSchemaRejectsBadTag(t *testing.T) {
	_, err := Parse("x.md",
		"---\ntype: note\ndescription: long enough here\nlast-updated: 2026-01-01\ntags:\n- Not_Valid\n---\n# T\n")
	if err == nil || !strings.Contains(err.Error(), "tags") {
		t.Errorf("err = %v, want tags violation", err)
	}
}

func TestSchemaRejectsBadStatus(t *testing.T) {
	_, err := Parse("x.md", planText("paused"))
	if err == nil || !strings.Contains(err.Error(), "status") {
		t.Errorf("err = %v, want status violation", err)
	}
}

// --- round trip ---

func TestRenderRoundTrip(t *testing.T) {
	texts := map[string]string{
		"areas/databases/connection-pooling.md": topicText(),
		"plans/2026-08-01-index-migration.md":   planText("draft"),
	}

	for path, text := range texts {
		doc := mustParse(t, path, text)
		again := mustParse(t, path, doc.Render())

		if again.Title() != doc.Title() {
			t.Errorf("%s: title %q != %q", path, again.Title(), doc.Title())
		}

		var a, b []string
		for _, s := range doc.Sections() {
			a = append(a, s.Name)
		}
		for _, s := range again.Sections() {
			b = append(b, s.Name)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: sections %v != %v", path, b, a)
		}

		if !reflect.DeepEqual(again.Header(), doc.Header()) {
			t.Errorf("%s: header %+v != %+v", path, again.Header(), doc.Header())
		}
	}
}

func TestRenderIsStable(t *testing.T) {
	doc := mustParse(t, "areas/databases/connection-pooling.md", topicText())
	once := doc.Render()
	again := mustParse(t, doc.Path(), once).Render()
	if once != again {
		t.Error("render of reparsed output differs")
	}
}

func TestEstimateTokens(t *testing.T) {
	doc := mustParse(t, "areas/databases/connection-pooling.md", topicText())
	chars := len(doc.Title()) + len(doc.Header().Description)
	for _, s := range doc.Sections() {
		chars += len(s.Name) + len(s.Content)
	}
	if doc.EstimateTokens() != chars/4 {
		t.Errorf("tokens = %d, want %d", doc.EstimateTokens(), chars/4)
	}
}

// --- splitter edge cases ---

func TestSplitSectionsBlankName(t *testing.T) {
	_, _, sections := SplitSections("# T\n\n##\ncontent\n", 1)
	if len(sections) != 1 || sections[0].Name != "" {
		t.Errorf("sections = %+v", sections)
	}
}

func TestHeadings(t *testing.T) {
	levels := Headings("# a\ntext\n### b\n## c\n#notaheading\n")
	if !reflect.DeepEqual(levels, []int{1, 3, 2}) {
		t.Errorf("levels = %v", levels)
	}
}
