// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package budget estimates the context cost of the garden and flags
// documents that have outgrown their share of it.
package budget

import (
	"fmt"
	"sort"

	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/pkg/types"
)

// Report summarizes token usage across a set of documents.
type Report struct {
	// Total is the summed token estimate for every document.
	Total int

	// ByType breaks the total down per document type.
	ByType map[types.DocType]int

	// Issues holds warn-severity findings: documents over the per-document
	// cap and, when the corpus-wide budget is exceeded, one garden-level
	// issue naming the overage.
	Issues []types.Issue
}

// Evaluate computes the token report for docs under cfg. A zero budget
// disables the corresponding check, so an empty config yields a report
// with totals only.
func Evaluate(docs []document.Document, cfg types.BudgetConfig) Report {
	report := Report{ByType: make(map[types.DocType]int)}

	sorted := make([]document.Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path() < sorted[j].Path() })

	for _, doc := range sorted {
		tokens := doc.EstimateTokens()
		report.Total += tokens
		report.ByType[doc.Type()] += tokens

		if cfg.PerDocumentTokens > 0 && tokens > cfg.PerDocumentTokens {
			report.Issues = append(report.Issues, types.Issue{
				File: doc.Path(),
				Message: fmt.Sprintf("estimated %d tokens, per-document cap is %d; consider splitting",
					tokens, cfg.PerDocumentTokens),
				Severity:  types.SeverityWarn,
				Validator: "document-budget",
			})
		}
	}

	if cfg.TotalTokens > 0 && report.Total > cfg.TotalTokens {
		report.Issues = append(report.Issues, types.Issue{
			Message: fmt.Sprintf("corpus estimated at %d tokens, budget is %d; trim or archive",
				report.Total, cfg.TotalTokens),
			Severity:  types.SeverityWarn,
			Validator: "corpus-budget",
		})
	}
	return report
}
