// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docgarden/internal/budget"
	"github.com/pdiddy/docgarden/internal/corpus"
	"github.com/pdiddy/docgarden/pkg/types"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Estimate the garden's context cost against its budget",
	Long: `Budget sums a crude token estimate across every document, breaks it
down by document type, and warns when the corpus budget or a per-document
cap is exceeded. The estimate is a length heuristic, not a tokenizer;
budgets of zero disable the corresponding check.`,
	RunE: runBudget,
}

func runBudget(cmd *cobra.Command, args []string) error {
	total, _ := cmd.Flags().GetInt("total")
	perDoc, _ := cmd.Flags().GetInt("per-doc")
	if total == 0 {
		total = viper.GetInt("budget.total_tokens")
	}
	if perDoc == 0 {
		perDoc = viper.GetInt("budget.per_document_tokens")
	}

	root := gardenRoot(cmd)
	c, err := corpus.Load(root)
	if err != nil {
		return err
	}

	report := budget.Evaluate(c.Docs, types.BudgetConfig{
		TotalTokens:       total,
		PerDocumentTokens: perDoc,
	})

	docTypes := make([]types.DocType, 0, len(report.ByType))
	for dt := range report.ByType {
		docTypes = append(docTypes, dt)
	}
	sort.Slice(docTypes, func(i, j int) bool { return docTypes[i] < docTypes[j] })

	for _, dt := range docTypes {
		fmt.Printf("%-10s  %8d tokens\n", dt, report.ByType[dt])
	}
	fmt.Printf("%-10s  %8d tokens (%d documents)\n", "total", report.Total, len(c.Docs))

	if len(report.Issues) > 0 {
		fmt.Println()
		if err := printIssues(report.Issues, false); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	budgetCmd.Flags().Int("total", 0, "corpus token budget (0 = from config, else disabled)")
	budgetCmd.Flags().Int("per-doc", 0, "per-document token cap (0 = from config, else disabled)")

	rootCmd.AddCommand(budgetCmd)
}
