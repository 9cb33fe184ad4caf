// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint is the structural validator suite: pure checks over one
// constructed document. Every validator returns zero or more issues and
// never panics; severity is a taxonomy, not an exception hierarchy.
package lint

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/pkg/types"
)

// Validator checks one structural invariant of a document.
type Validator func(doc document.Document) []types.Issue

// Suite maps validator ids to their checks. Built once; never mutated.
var Suite = map[string]Validator{
	"section-presence":  checkSectionPresence,
	"section-order":     checkSectionOrder,
	"size-bounds":       checkSizeBounds,
	"placement":         checkPlacement,
	"title":             checkTitle,
	"heading-hierarchy": checkHeadingHierarchy,
	"placeholders":      checkPlaceholders,
	"date-consistency":  checkDateConsistency,
	"staleness":         checkStaleness,
	"source-diversity":  checkSourceDiversity,
	"go-deeper-links":   checkGoDeeperLinks,
	"coverage-length":   checkCoverageLength,
	"question-mark":     checkQuestionMark,
	"filename-date":     checkFilenameDate,
}

// sharedOrder lists the checks applied to every document type, in run order.
var sharedOrder = []string{
	"section-presence",
	"section-order",
	"size-bounds",
	"placement",
	"title",
	"heading-hierarchy",
	"placeholders",
	"date-consistency",
}

// extraOrder lists the type-specific checks appended after the shared ones.
var extraOrder = map[types.DocType][]string{
	types.DocTopic:    {"staleness", "source-diversity", "go-deeper-links"},
	types.DocResearch: {"staleness", "source-diversity", "question-mark", "filename-date"},
	types.DocOverview: {"coverage-length"},
	types.DocPlan:     {"filename-date"},
}

// Run applies the shared checks and then the type-specific checks for the
// document's variant, in a fixed order.
func Run(doc document.Document) []types.Issue {
	var issues []types.Issue
	for _, id := range sharedOrder {
		issues = append(issues, Suite[id](doc)...)
	}
	for _, id := range extraOrder[doc.Type()] {
		issues = append(issues, Suite[id](doc)...)
	}
	return issues
}

func issue(doc document.Document, id string, sev types.Severity, msg string) types.Issue {
	return types.Issue{
		File:      doc.Path(),
		Message:   msg,
		Severity:  sev,
		Validator: id,
	}
}

// --- shared checks ---

func checkSectionPresence(doc document.Document) []types.Issue {
	var issues []types.Issue
	for _, s := range doc.Sections() {
		if s.Name == "" {
			is := issue(doc, "section-presence", types.SeverityWarn,
				fmt.Sprintf("section heading at line %d has no text", s.LineStart))
			issues = append(issues, is)
		}
	}
	for _, name := range doc.RequiredSections() {
		if doc.HasSection(name) {
			continue
		}
		is := issue(doc, "section-presence", types.SeverityWarn,
			fmt.Sprintf("missing required section %q", name))
		is.Section = name
		is.Suggestion = fmt.Sprintf("add a \"## %s\" section", name)
		issues = append(issues, is)
	}
	return issues
}

func checkSectionOrder(doc document.Document) []types.Issue {
	position := make(map[string]int)
	for i, s := range doc.Sections() {
		if _, seen := position[s.Name]; !seen {
			position[s.Name] = i
		}
	}

	// Canonical sections actually present, in canonical order. Only the
	// first inversion between adjacent present pairs is reported.
	var present []string
	for _, name := range doc.RequiredSections() {
		if _, ok := position[name]; ok {
			present = append(present, name)
		}
	}
	for i := 1; i < len(present); i++ {
		before, after := present[i-1], present[i]
		if position[before] > position[after] {
			is := issue(doc, "section-order", types.SeverityWarn,
				fmt.Sprintf("section %q appears before %q; canonical order puts it after", after, before))
			is.Section = after
			is.Suggestion = "run the section-ordering auto-fix"
			return []types.Issue{is}
		}
	}
	return nil
}

func checkSizeBounds(doc document.Document) []types.Issue {
	var issues []types.Issue
	lines := document.LineCount(doc)
	min, max := doc.SizeBounds()
	if lines < min {
		issues = append(issues, issue(doc, "size-bounds", types.SeverityWarn,
			fmt.Sprintf("document has %d lines, below the %s minimum of %d", lines, doc.Type(), min)))
	}
	if max > 0 && lines > max {
		issues = append(issues, issue(doc, "size-bounds", types.SeverityWarn,
			fmt.Sprintf("document has %d lines, above the %s maximum of %d", lines, doc.Type(), max)))
	}
	return issues
}

func checkPlacement(doc document.Document) []types.Issue {
	pattern := document.PathPattern(doc.Type())
	if pattern == nil || pattern.MatchString(doc.Path()) {
		return nil
	}
	return []types.Issue{issue(doc, "placement", types.SeverityWarn,
		fmt.Sprintf("path does not match the %s convention %s", doc.Type(), pattern))}
}

func checkTitle(doc document.Document) []types.Issue {
	if doc.Title() != "" {
		return nil
	}
	is := issue(doc, "title", types.SeverityWarn, "document has no first-level title heading")
	is.Suggestion = "add a \"# Title\" line after the frontmatter"
	return []types.Issue{is}
}

func checkHeadingHierarchy(doc document.Document) []types.Issue {
	levels := document.Headings(doc.Body())
	prev := 0
	for _, lvl := range levels {
		if prev > 0 && lvl > prev+1 {
			return []types.Issue{issue(doc, "heading-hierarchy", types.SeverityInfo,
				fmt.Sprintf("heading level jumps from %d to %d", prev, lvl))}
		}
		prev = lvl
	}
	return nil
}

var commentRE = regexp.MustCompile(`(?s)<!--.*?-->`)

// placeholderMarkers are scanned case-insensitively inside HTML comments.
var placeholderMarkers = []string{"TODO", "FIXME", "XXX", "HACK"}

func checkPlaceholders(doc document.Document) []types.Issue {
	found := make(map[string]bool)
	for _, comment := range commentRE.FindAllString(doc.Raw(), -1) {
		upper := strings.ToUpper(comment)
		for _, marker := range placeholderMarkers {
			if strings.Contains(upper, marker) {
				found[marker] = true
			}
		}
	}
	if len(found) == 0 {
		return nil
	}
	var markers []string
	for _, marker := range placeholderMarkers {
		if found[marker] {
			markers = append(markers, marker)
		}
	}
	return []types.Issue{issue(doc, "placeholders", types.SeverityInfo,
		"placeholder comments present: "+strings.Join(markers, ", "))}
}

func checkDateConsistency(doc document.Document) []types.Issue {
	h := doc.Header()
	if h.LastValidated.IsZero() || !h.LastValidated.After(h.LastUpdated) {
		return nil
	}
	return []types.Issue{issue(doc, "date-consistency", types.SeverityWarn,
		fmt.Sprintf("last-validated (%s) is later than last-updated (%s)",
			h.LastValidated.Format("2006-01-02"), h.LastUpdated.Format("2006-01-02")))}
}

// --- type-specific checks ---

// Staleness tiers for freshness-tracked types. The top tier stays at warn;
// a stale document never blocks a passing verdict on freshness alone.
const (
	staleInfoDays = 30
	staleWarnDays = 60
	staleBadDays  = 90
)

func checkStaleness(doc document.Document) []types.Issue {
	validated := doc.Header().LastValidated
	if validated.IsZero() {
		return nil
	}
	days := int(document.Now().Sub(validated).Hours() / 24)
	var sev types.Severity
	var tier string
	switch {
	case days >= staleBadDays:
		sev, tier = types.SeverityWarn, "badly stale"
	case days >= staleWarnDays:
		sev, tier = types.SeverityWarn, "stale"
	case days >= staleInfoDays:
		sev, tier = types.SeverityInfo, "aging"
	default:
		return nil
	}
	is := issue(doc, "staleness", sev,
		fmt.Sprintf("last validated %d days ago (%s)", days, tier))
	is.NeedsReview = true
	return []types.Issue{is}
}

func checkSourceDiversity(doc document.Document) []types.Issue {
	sources := doc.Header().Sources
	if len(sources) < 2 {
		return nil
	}
	byDomain := make(map[string]int)
	for _, src := range sources {
		u, err := url.Parse(src.URL)
		if err != nil || u.Hostname() == "" {
			continue
		}
		byDomain[u.Hostname()]++
	}
	var repeated []string
	for domain, n := range byDomain {
		if n >= 2 {
			repeated = append(repeated, domain)
		}
	}
	if len(repeated) == 0 {
		return nil
	}
	sort.Strings(repeated)
	return []types.Issue{issue(doc, "source-diversity", types.SeverityInfo,
		"multiple sources share a domain: "+strings.Join(repeated, ", "))}
}

var markdownLinkRE = regexp.MustCompile(`\[[^\]]*\]\([^)]+\)`)

func checkGoDeeperLinks(doc document.Document) []types.Issue {
	section, ok := doc.Section("Go Deeper")
	if !ok || markdownLinkRE.MatchString(section.Content) {
		return nil
	}
	is := issue(doc, "go-deeper-links", types.SeverityInfo,
		"Go Deeper section has no markdown links")
	is.Section = "Go Deeper"
	return []types.Issue{is}
}

// minCoverageWords is the shortest acceptable overview Coverage section.
const minCoverageWords = 40

func checkCoverageLength(doc document.Document) []types.Issue {
	section, ok := doc.Section("Coverage")
	if !ok {
		return nil
	}
	words := len(strings.Fields(section.Content))
	if words >= minCoverageWords {
		return nil
	}
	is := issue(doc, "coverage-length", types.SeverityWarn,
		fmt.Sprintf("Coverage section has %d words, below the minimum of %d", words, minCoverageWords))
	is.Section = "Coverage"
	return []types.Issue{is}
}

func checkQuestionMark(doc document.Document) []types.Issue {
	section, ok := doc.Section("Question")
	if !ok || strings.Contains(section.Content, "?") {
		return nil
	}
	is := issue(doc, "question-mark", types.SeverityInfo,
		"Question section does not pose a question")
	is.Section = "Question"
	return []types.Issue{is}
}

var filenameDateRE = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

func checkFilenameDate(doc document.Document) []types.Issue {
	match := filenameDateRE.FindString(doc.Path())
	if match == "" {
		return nil
	}
	updated := doc.Header().LastUpdated.Format("2006-01-02")
	if match == updated {
		return nil
	}
	return []types.Issue{issue(doc, "filename-date", types.SeverityInfo,
		fmt.Sprintf("filename date %s does not match last-updated %s", match, updated))}
}
