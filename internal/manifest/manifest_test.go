package manifest

import (
	"strings"
	"testing"

	"github.com/pdiddy/docgarden/internal/document"
)

func sampleDocs(t *testing.T) []document.Document {
	t.Helper()
	texts := map[string]string{
		"notes/scratch.md": "---\ntype: note\ndescription: scratch note here\nlast-updated: 2026-08-01\n---\n\n# Scratch\n\nbody\n",
		"areas/databases/overview.md": "---\ntype: overview\ndescription: database area overview\nlast-updated: 2026-08-02\n---\n\n# Databases\n\n## Coverage\nx\n\n## Topics\n- pooling\n",
	}
	var docs []document.Document
	for path, text := range texts {
		doc, err := document.Parse(path, text)
		if err != nil {
			t.Fatal(err)
		}
		docs = append(docs, doc)
	}
	return docs
}

func TestRenderDeterministic(t *testing.T) {
	docs := sampleDocs(t)
	a := Render(docs)
	b := Render([]document.Document{docs[len(docs)-1], docs[0]})
	if a != b {
		t.Error("render depends on input order")
	}
	if !strings.Contains(a, "| areas/databases/overview.md | overview | Databases | 2026-08-02 |") {
		t.Errorf("render = %q", a)
	}
	// Sorted by path: areas/ before notes/.
	if strings.Index(a, "areas/") > strings.Index(a, "notes/") {
		t.Error("rows not sorted by path")
	}
}

func TestExtractAndInjectRoundTrip(t *testing.T) {
	region := Render(sampleDocs(t))
	companion := "# Garden Index\n\nIntro text.\n\n" + BeginMarker + "\nstale\n" + EndMarker + "\n\nOutro.\n"

	updated := Inject(companion, region)
	got, ok := ExtractRegion(updated)
	if !ok {
		t.Fatal("no region found")
	}
	if got != region {
		t.Errorf("region = %q, want %q", got, region)
	}
	if !strings.Contains(updated, "Intro text.") || !strings.Contains(updated, "Outro.") {
		t.Error("text outside the region was modified")
	}
}

func TestInjectAppendsWhenMarkersAbsent(t *testing.T) {
	updated := Inject("# Plain file\n", "row\n")
	got, ok := ExtractRegion(updated)
	if !ok || got != "row\n" {
		t.Errorf("region = %q ok=%v", got, ok)
	}
}

func TestExtractRegionMissing(t *testing.T) {
	if _, ok := ExtractRegion("no markers here\n"); ok {
		t.Error("found a region in marker-free text")
	}
	if _, ok := ExtractRegion(BeginMarker + "\nunclosed\n"); ok {
		t.Error("found a region without end marker")
	}
}
