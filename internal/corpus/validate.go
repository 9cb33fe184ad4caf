// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/docgarden/internal/manifest"
	"github.com/pdiddy/docgarden/pkg/types"
)

// slugRE matches lowercase-hyphenated directory and file stems.
var slugRE = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// dateStemRE strips the leading ISO date from dated artifact stems.
var dateStemRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// Validate runs every cross-corpus check: link integrity, area/topic sync,
// naming conventions, and manifest drift. manifestFile may be "" to skip
// the drift check. Parse failures recorded at load time are included first.
func (c *Corpus) Validate(manifestFile string) []types.Issue {
	issues := append([]types.Issue(nil), c.ParseIssues...)
	issues = append(issues, c.checkRelatedLinks()...)
	issues = append(issues, c.checkAreaSync()...)
	issues = append(issues, c.checkNaming()...)
	if manifestFile != "" {
		issues = append(issues, c.checkManifestDrift(manifestFile)...)
	}
	return issues
}

// checkRelatedLinks verifies every related reference. URL-shaped values
// need only be well-formed (scheme and host); path-shaped values must exist
// on disk relative to the garden root.
func (c *Corpus) checkRelatedLinks() []types.Issue {
	var issues []types.Issue
	for _, doc := range c.Docs {
		for _, ref := range doc.Header().Related {
			if strings.Contains(ref, "://") {
				u, err := url.Parse(ref)
				if err != nil || u.Scheme == "" || u.Host == "" {
					issues = append(issues, types.Issue{
						File:      doc.Path(),
						Message:   fmt.Sprintf("related URL %q is malformed", ref),
						Severity:  types.SeverityFail,
						Validator: "related-links",
					})
				}
				continue
			}
			if _, err := os.Stat(filepath.Join(c.Root, filepath.FromSlash(ref))); err != nil {
				issues = append(issues, types.Issue{
					File:      doc.Path(),
					Message:   fmt.Sprintf("related path %q does not exist", ref),
					Severity:  types.SeverityFail,
					Validator: "related-links",
				})
			}
		}
	}
	return issues
}

// checkAreaSync verifies that every on-disk topic is registered in its
// area overview's Topics section, by filename stem or exact title. The
// issue is attributed to the overview file.
func (c *Corpus) checkAreaSync() []types.Issue {
	var issues []types.Issue
	for _, area := range c.Areas {
		if area.Overview == nil {
			continue
		}
		listing := area.Overview.TopicListing()
		for _, topic := range area.Topics {
			stem := strings.TrimSuffix(filepath.Base(topic.Path()), ".md")
			if strings.Contains(listing, stem) {
				continue
			}
			if topic.Title() != "" && strings.Contains(listing, topic.Title()) {
				continue
			}
			issues = append(issues, types.Issue{
				File:      area.Overview.Path(),
				Message:   fmt.Sprintf("topic %q is not listed in the Topics section", topic.Path()),
				Severity:  types.SeverityFail,
				Validator: "area-sync",
				Section:   "Topics",
				Suggestion: fmt.Sprintf("add %q to the Topics section", stem),
			})
		}
	}
	return issues
}

// checkNaming enforces slug naming on area directories and topic filenames.
func (c *Corpus) checkNaming() []types.Issue {
	var issues []types.Issue
	warn := func(file, msg string) {
		issues = append(issues, types.Issue{
			File:      file,
			Message:   msg,
			Severity:  types.SeverityWarn,
			Validator: "naming",
		})
	}

	seenArea := make(map[string]bool)
	for _, area := range c.Areas {
		if !slugRE.MatchString(area.Name) && !seenArea[area.Name] {
			seenArea[area.Name] = true
			warn("areas/"+area.Name, fmt.Sprintf("area directory %q is not a lowercase-hyphenated slug", area.Name))
		}
		for _, topic := range area.Topics {
			stem := strings.TrimSuffix(filepath.Base(topic.Path()), ".md")
			stem = dateStemRE.ReplaceAllString(stem, "")
			if !slugRE.MatchString(stem) {
				warn(topic.Path(), fmt.Sprintf("topic filename %q is not a lowercase-hyphenated slug", filepath.Base(topic.Path())))
			}
		}
	}
	return issues
}

// checkManifestDrift re-derives the manifest region from the corpus and
// compares it byte-for-byte against the region embedded in the companion
// file. Drift is a warning, not corruption; the file is never written here.
func (c *Corpus) checkManifestDrift(manifestFile string) []types.Issue {
	path := filepath.Join(c.Root, manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		// No companion file means nothing to drift against.
		return nil
	}

	embedded, found := manifest.ExtractRegion(string(data))
	if !found {
		return []types.Issue{{
			File:      manifestFile,
			Message:   "companion file has no generated region markers",
			Severity:  types.SeverityWarn,
			Validator: "manifest-drift",
		}}
	}

	expected := manifest.Render(c.Docs)
	if embedded == expected {
		return nil
	}
	return []types.Issue{{
		File:       manifestFile,
		Message:    "generated region is out of date with the corpus",
		Severity:   types.SeverityWarn,
		Validator:  "manifest-drift",
		Suggestion: "run \"docgarden manifest --write\"",
	}}
}
