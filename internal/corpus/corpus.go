// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads the full document tree and runs the cross-corpus
// validators: checks that need every parsed document and the file system
// rather than a single document.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/pkg/types"
)

// Area groups one directory under areas/: an optional overview document
// plus the topic documents sharing the directory.
type Area struct {
	// Name is the directory name (expected to be a slug).
	Name string

	// Overview is the area's overview.md, nil when absent.
	Overview *document.Overview

	// Topics lists the area's other documents in path order.
	Topics []document.Document
}

// Corpus is the fully parsed document set.
type Corpus struct {
	// Root is the garden root directory.
	Root string

	// Docs holds every successfully parsed document, sorted by path.
	Docs []document.Document

	// Areas groups area-scoped documents, sorted by area name.
	Areas []Area

	// ParseIssues holds one fail issue per file that could not be read or
	// parsed. Loading continues past such files.
	ParseIssues []types.Issue
}

// Load walks root, parses every markdown document, and groups areas.
// Unreadable or unparseable files become fail issues; they never abort the
// walk. Directories starting with "." and the root-level companion files
// are skipped.
func Load(root string) (*Corpus, error) {
	c := &Corpus{Root: root}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		// Companion files at the root are manifests, not documents.
		if !strings.Contains(rel, "/") {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			c.ParseIssues = append(c.ParseIssues, types.Issue{
				File:      rel,
				Message:   fmt.Sprintf("unreadable: %v", readErr),
				Severity:  types.SeverityFail,
				Validator: "parse",
			})
			return nil
		}

		doc, parseErr := document.Parse(rel, string(data))
		if parseErr != nil {
			c.ParseIssues = append(c.ParseIssues, types.Issue{
				File:      rel,
				Message:   parseErr.Error(),
				Severity:  types.SeverityFail,
				Validator: "parse",
			})
			return nil
		}
		c.Docs = append(c.Docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Slice(c.Docs, func(i, j int) bool { return c.Docs[i].Path() < c.Docs[j].Path() })
	c.groupAreas()
	return c, nil
}

// groupAreas buckets documents under areas/ by directory.
func (c *Corpus) groupAreas() {
	byName := make(map[string]*Area)
	var names []string

	for _, doc := range c.Docs {
		parts := strings.Split(doc.Path(), "/")
		if len(parts) != 3 || parts[0] != "areas" {
			continue
		}
		name := parts[1]
		area, ok := byName[name]
		if !ok {
			area = &Area{Name: name}
			byName[name] = area
			names = append(names, name)
		}
		if overview, isOverview := doc.(*document.Overview); isOverview {
			area.Overview = overview
		} else {
			area.Topics = append(area.Topics, doc)
		}
	}

	sort.Strings(names)
	for _, name := range names {
		c.Areas = append(c.Areas, *byName[name])
	}
}

// TotalTokens sums the token estimate across all documents.
func (c *Corpus) TotalTokens() int {
	total := 0
	for _, doc := range c.Docs {
		total += doc.EstimateTokens()
	}
	return total
}

// ByPath returns the document at a root-relative path, or nil.
func (c *Corpus) ByPath(path string) document.Document {
	for _, doc := range c.Docs {
		if doc.Path() == path {
			return doc
		}
	}
	return nil
}
