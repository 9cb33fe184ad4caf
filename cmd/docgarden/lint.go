// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docgarden/internal/corpus"
	"github.com/pdiddy/docgarden/internal/lint"
	"github.com/pdiddy/docgarden/pkg/types"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Validate document structure and cross-document consistency",
	Long: `Lint parses every document under the garden root, runs the structural
validator suite on each one, and the cross-corpus validators over the set.
With path arguments, per-document checks are restricted to those files;
cross-corpus checks always see the full garden.

Exit status is non-zero when any fail-severity issue is found (or any
warning, with --fail-on warn).`,
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	failOn, _ := cmd.Flags().GetString("fail-on")
	skip, _ := cmd.Flags().GetStringSlice("skip")

	issues, err := collectIssues(cmd, args)
	if err != nil {
		return err
	}
	issues = dropSkipped(issues, skip)

	if err := printIssues(issues, jsonOutput); err != nil {
		return err
	}
	return verdict(issues, types.Severity(failOn))
}

// collectIssues runs parse, per-document, and cross-corpus validation.
// With paths, per-document issues are filtered to those files.
func collectIssues(cmd *cobra.Command, paths []string) ([]types.Issue, error) {
	root := gardenRoot(cmd)
	c, err := corpus.Load(root)
	if err != nil {
		return nil, err
	}

	var issues []types.Issue
	for _, doc := range c.Docs {
		issues = append(issues, lint.Run(doc)...)
	}
	// Validate includes the parse failures recorded at load time.
	issues = append(issues, c.Validate(manifestFile())...)

	if len(paths) > 0 {
		keep := make(map[string]bool, len(paths))
		for _, p := range paths {
			keep[p] = true
		}
		filtered := issues[:0]
		for _, issue := range issues {
			if issue.File == "" || keep[issue.File] {
				filtered = append(filtered, issue)
			}
		}
		issues = filtered
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		return issues[i].Validator < issues[j].Validator
	})
	return issues, nil
}

func dropSkipped(issues []types.Issue, skip []string) []types.Issue {
	if len(skip) == 0 {
		return issues
	}
	skipped := make(map[string]bool, len(skip))
	for _, id := range skip {
		skipped[id] = true
	}
	kept := issues[:0]
	for _, issue := range issues {
		if !skipped[issue.Validator] {
			kept = append(kept, issue)
		}
	}
	return kept
}

func printIssues(issues []types.Issue, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(issues)
	}

	if len(issues) == 0 {
		fmt.Println("No issues found.")
		return nil
	}

	for _, issue := range issues {
		file := issue.File
		if file == "" {
			file = "(garden)"
		}
		fmt.Printf("%-4s  %-20s  %s: %s\n", issue.Severity, issue.Validator, file, issue.Message)
		if issue.Suggestion != "" {
			fmt.Printf("      %-20s  suggestion: %s\n", "", issue.Suggestion)
		}
	}
	fmt.Printf("\n%d issue(s)\n", len(issues))
	return nil
}

// verdict turns the issue list into the command's exit status.
func verdict(issues []types.Issue, failOn types.Severity) error {
	failed := types.HasFailure(issues)
	if failOn == types.SeverityWarn {
		for _, issue := range issues {
			if issue.Severity == types.SeverityWarn {
				failed = true
				break
			}
		}
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func init() {
	lintCmd.Flags().Bool("json", false, "output issues as JSON")
	lintCmd.Flags().String("fail-on", "fail", "severity that fails the run: fail or warn")
	lintCmd.Flags().StringSlice("skip", nil, "validator ids to suppress")

	rootCmd.AddCommand(lintCmd)
}
