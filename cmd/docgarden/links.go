// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docgarden/internal/corpus"
	"github.com/pdiddy/docgarden/internal/linkcheck"
	"github.com/pdiddy/docgarden/pkg/types"
)

var linksCmd = &cobra.Command{
	Use:   "links [paths...]",
	Short: "Verify source URLs are reachable and titles still match",
	Long: `Links fetches every source URL declared in document frontmatter and
reports unreachable or malformed links, plus title drift when --verify-titles
is set. Requests to the same host are paced; tokens from .secrets/ are sent
as bearer auth per hostname.

Findings are advisory (warn or info, flagged for review) and never fail the
run: network state is not a property of the documents.`,
	RunE: runLinks,
}

func runLinks(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")
	verifyTitles, _ := cmd.Flags().GetBool("verify-titles")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	root := gardenRoot(cmd)
	c, err := corpus.Load(root)
	if err != nil {
		return err
	}

	docs := c.Docs
	if len(args) > 0 {
		docs = nil
		for _, p := range args {
			if doc := c.ByPath(p); doc != nil {
				docs = append(docs, doc)
			}
		}
	}

	checker := linkcheck.New(types.LinkCheckConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "docgarden/" + version,
		},
		RequestDelay: delay,
		VerifyTitles: verifyTitles,
	}, loadedSecrets)

	ctx := context.Background()
	var issues []types.Issue
	for _, doc := range docs {
		issues = append(issues, checker.CheckSources(ctx, doc)...)
	}
	return printIssues(issues, jsonOutput)
}

func init() {
	linksCmd.Flags().Duration("timeout", 15*time.Second, "HTTP request timeout")
	linksCmd.Flags().Duration("delay", time.Second, "pause between requests to the same host")
	linksCmd.Flags().Bool("verify-titles", false, "compare fetched page titles against declared titles")
	linksCmd.Flags().Bool("json", false, "output findings as JSON")

	rootCmd.AddCommand(linksCmd)
}
