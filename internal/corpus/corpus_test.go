package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/docgarden/internal/manifest"
	"github.com/pdiddy/docgarden/pkg/types"
)

// --- test helpers ---

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func overviewText(topicsListing string) string {
	return "---\ntype: overview\ndescription: database area overview\nlast-updated: 2026-08-01\n---\n\n# Databases\n\n## Coverage\nEverything about databases.\n\n## Topics\n" + topicsListing + "\n"
}

func topicText(related string) string {
	text := "---\ntype: topic\ndescription: connection pooling topic\nlast-updated: 2026-08-01\nlast-validated: 2026-08-01\n"
	if related != "" {
		text += "related:\n- " + related + "\n"
	}
	text += "sources:\n- https://example.com/pool | Pooling Guide\n---\n\n# Connection Pooling\n\n## Guidance\nx\n"
	return text
}

func noteText() string {
	return "---\ntype: note\ndescription: a passing thought\nlast-updated: 2026-08-01\n---\n\n# Scratch\n\nbody\n"
}

func testGarden(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "areas/databases/overview.md", overviewText("- connection-pooling"))
	writeFile(t, root, "areas/databases/connection-pooling.md", topicText(""))
	writeFile(t, root, "notes/scratch.md", noteText())
	return root
}

func byValidator(issues []types.Issue, id string) []types.Issue {
	var out []types.Issue
	for _, is := range issues {
		if is.Validator == id {
			out = append(out, is)
		}
	}
	return out
}

// --- loading ---

func TestLoadGroupsAreas(t *testing.T) {
	c, err := Load(testGarden(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Docs) != 3 {
		t.Fatalf("docs = %d", len(c.Docs))
	}
	if len(c.Areas) != 1 || c.Areas[0].Name != "databases" {
		t.Fatalf("areas = %+v", c.Areas)
	}
	area := c.Areas[0]
	if area.Overview == nil || len(area.Topics) != 1 {
		t.Errorf("area = %+v", area)
	}
}

func TestLoadContinuesPastBadFiles(t *testing.T) {
	root := testGarden(t)
	writeFile(t, root, "notes/broken.md", "missing frontmatter entirely\n")
	writeFile(t, root, "notes/bad-schema.md", "---\ntype: note\ndescription: x\nlast-updated: 2026-08-01\n---\n")

	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.ParseIssues) != 2 {
		t.Fatalf("parse issues = %+v", c.ParseIssues)
	}
	for _, is := range c.ParseIssues {
		if is.Severity != types.SeverityFail {
			t.Errorf("issue = %+v", is)
		}
	}
	// Healthy files still parsed.
	if len(c.Docs) != 3 {
		t.Errorf("docs = %d", len(c.Docs))
	}
}

func TestLoadSkipsRootCompanionFiles(t *testing.T) {
	root := testGarden(t)
	writeFile(t, root, "INDEX.md", "# Index\nnot a document\n")
	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.ParseIssues) != 0 {
		t.Errorf("parse issues = %+v", c.ParseIssues)
	}
}

// --- link graph ---

func TestRelatedLinks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "areas/databases/overview.md", overviewText("- connection-pooling"))
	writeFile(t, root, "areas/databases/connection-pooling.md", topicText("notes/missing.md"))

	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	issues := byValidator(c.Validate(""), "related-links")
	if len(issues) != 1 || issues[0].Severity != types.SeverityFail {
		t.Fatalf("issues = %+v", issues)
	}
	if !strings.Contains(issues[0].Message, "notes/missing.md") {
		t.Errorf("message = %q", issues[0].Message)
	}
}

func TestRelatedLinksURLWellFormedOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "areas/databases/overview.md", overviewText("- connection-pooling"))
	// Unreachable URL is fine; only shape is checked.
	writeFile(t, root, "areas/databases/connection-pooling.md", topicText("https://definitely-unreachable.example/page"))

	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if issues := byValidator(c.Validate(""), "related-links"); len(issues) != 0 {
		t.Errorf("issues = %+v", issues)
	}
}

// --- area sync ---

func TestAreaSyncUnlistedTopic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "areas/databases/overview.md", overviewText("- some-other-topic"))
	writeFile(t, root, "areas/databases/connection-pooling.md", topicText(""))

	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	issues := byValidator(c.Validate(""), "area-sync")
	if len(issues) != 1 {
		t.Fatalf("issues = %+v", issues)
	}
	is := issues[0]
	if is.Severity != types.SeverityFail || is.File != "areas/databases/overview.md" {
		t.Errorf("issue = %+v", is)
	}
}

func TestAreaSyncMatchesByTitle(t *testing.T) {
	root := t.TempDir()
	// Listed by title text rather than filename stem.
	writeFile(t, root, "areas/databases/overview.md", overviewText("- Connection Pooling"))
	writeFile(t, root, "areas/databases/connection-pooling.md", topicText(""))

	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if issues := byValidator(c.Validate(""), "area-sync"); len(issues) != 0 {
		t.Errorf("issues = %+v", issues)
	}
}

func TestAreaSyncNoOverview(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "areas/databases/connection-pooling.md", topicText(""))
	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if issues := byValidator(c.Validate(""), "area-sync"); len(issues) != 0 {
		t.Errorf("issues = %+v", issues)
	}
}

// --- naming ---

func TestNaming(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "areas/Data_Bases/overview.md", overviewText("- Bad_Name"))
	writeFile(t, root, "areas/Data_Bases/Bad_Name.md", topicText(""))

	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	issues := byValidator(c.Validate(""), "naming")
	if len(issues) != 2 {
		t.Fatalf("issues = %+v", issues)
	}
	for _, is := range issues {
		if is.Severity != types.SeverityWarn {
			t.Errorf("issue = %+v", is)
		}
	}
}

// --- manifest drift ---

func TestManifestDrift(t *testing.T) {
	root := testGarden(t)
	c, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}

	// In-sync region: no issues.
	region := manifest.Render(c.Docs)
	writeFile(t, root, "INDEX.md", manifest.Inject("# Index\n", region))
	if issues := byValidator(c.Validate("INDEX.md"), "manifest-drift"); len(issues) != 0 {
		t.Errorf("issues = %+v", issues)
	}

	// Stale region: one warn.
	writeFile(t, root, "INDEX.md", manifest.Inject("# Index\n", "| old |\n"))
	issues := byValidator(c.Validate("INDEX.md"), "manifest-drift")
	if len(issues) != 1 || issues[0].Severity != types.SeverityWarn {
		t.Errorf("issues = %+v", issues)
	}
}

func TestManifestMissingFileSkipped(t *testing.T) {
	c, err := Load(testGarden(t))
	if err != nil {
		t.Fatal(err)
	}
	if issues := byValidator(c.Validate("INDEX.md"), "manifest-drift"); len(issues) != 0 {
		t.Errorf("issues = %+v", issues)
	}
}
