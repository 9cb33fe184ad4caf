// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docgarden/internal/corpus"
	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/internal/fix"
	"github.com/pdiddy/docgarden/internal/lint"
	"github.com/pdiddy/docgarden/pkg/types"
)

// maxFixPasses bounds the lint-fix loop per document; each pass applies
// one repair, so the bound only matters for pathological inputs.
const maxFixPasses = 10

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Apply safe structural repairs to documents",
	Long: `Fix repairs the mechanical subset of lint findings: missing canonical
sections are inserted with placeholder bodies, and misordered sections are
moved into canonical order. Every candidate rewrite is reparsed before it
is accepted; anything that would not survive a reparse is left alone and
reported for manual attention.

With --dry-run the repairs are described but no file is written.`,
	RunE: runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	root := gardenRoot(cmd)

	c, err := corpus.Load(root)
	if err != nil {
		return err
	}

	docs := c.Docs
	if len(args) > 0 {
		docs = nil
		for _, p := range args {
			doc := c.ByPath(p)
			if doc == nil {
				return fmt.Errorf("no parseable document at %q", p)
			}
			docs = append(docs, doc)
		}
	}

	var applied, manual int
	for _, doc := range docs {
		a, m, err := fixDocument(root, doc, dryRun)
		if err != nil {
			return err
		}
		applied += a
		manual += m
	}

	fmt.Printf("\n%d repair(s) applied, %d issue(s) need manual attention\n", applied, manual)
	return nil
}

// fixDocument repeatedly lints and repairs one document until no fixable
// issue remains, then reports what it could not touch.
func fixDocument(root string, doc document.Document, dryRun bool) (applied, manual int, err error) {
	path := doc.Path()
	text := doc.Raw()

	for pass := 0; pass < maxFixPasses; pass++ {
		issues := lint.Run(doc)

		var next *types.Issue
		for i := range issues {
			if fix.Fixable(issues[i].Validator) {
				next = &issues[i]
				break
			}
		}
		if next == nil {
			for _, issue := range issues {
				if issue.NeedsReview || issue.Severity == types.SeverityFail {
					manual++
					fmt.Printf("manual  %s: %s\n", path, issue.Message)
				}
			}
			break
		}

		newText, desc, ok := fix.Apply(path, text, *next)
		if !ok {
			manual++
			fmt.Printf("manual  %s: %s (automatic repair rejected)\n", path, next.Message)
			break
		}

		applied++
		fmt.Printf("fixed   %s: %s\n", path, desc)
		text = newText

		doc, err = document.Parse(path, text)
		if err != nil {
			// Apply already reparsed; this cannot normally happen.
			return applied, manual, fmt.Errorf("repaired %s no longer parses: %w", path, err)
		}
	}

	if !dryRun && applied > 0 {
		full := filepath.Join(root, filepath.FromSlash(path))
		if err := os.WriteFile(full, []byte(text), 0o644); err != nil {
			return applied, manual, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return applied, manual, nil
}

// --- status subcommand ---

var fixStatusCmd = &cobra.Command{
	Use:   "status <path> <new-status>",
	Short: "Move a plan document to a new lifecycle status",
	Long: `Status rewrites the status field of a plan document, enforcing the
lifecycle graph (draft -> active -> complete, with abandonment and
revival), and stamps last-updated with today's date.`,
	Args: cobra.ExactArgs(2),
	RunE: runFixStatus,
}

func runFixStatus(cmd *cobra.Command, args []string) error {
	root := gardenRoot(cmd)
	rel := args[0]
	to := types.PlanStatus(args[1])

	full := filepath.Join(root, filepath.FromSlash(rel))
	data, err := os.ReadFile(full)
	if err != nil {
		return fmt.Errorf("reading %s: %w", rel, err)
	}

	newText, err := fix.TransitionStatus(rel, string(data), to)
	if err != nil {
		return err
	}
	if err := os.WriteFile(full, []byte(newText), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	fmt.Printf("%s is now %s\n", rel, to)
	return nil
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "describe repairs without writing files")

	fixCmd.AddCommand(fixStatusCmd)
	rootCmd.AddCommand(fixCmd)
}
