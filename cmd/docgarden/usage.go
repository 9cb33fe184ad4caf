// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docgarden/internal/corpus"
	"github.com/pdiddy/docgarden/internal/lint"
	"github.com/pdiddy/docgarden/internal/usage"
	"github.com/pdiddy/docgarden/pkg/types"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Track document access and surface maintenance candidates",
	Long: `Usage maintains an append-only access log and a derived SQLite stats
index. Subcommands record accesses, aggregate them per document, and rank
documents worth attention: heavily-used stale documents to revalidate and
never-accessed documents to archive.`,
}

// --- log subcommand ---

var usageLogCmd = &cobra.Command{
	Use:   "log <path>",
	Short: "Append one access event to the usage log",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsageLog,
}

func runUsageLog(cmd *cobra.Command, args []string) error {
	action, _ := cmd.Flags().GetString("action")
	session, _ := cmd.Flags().GetString("session")

	log, _ := usageLogAndConfig(cmd)
	entry := types.UsageEntry{
		Time:    time.Now().UTC(),
		Path:    args[0],
		Action:  types.UsageAction(action),
		Session: session,
	}
	if err := os.MkdirAll(filepath.Dir(log.Path()), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	return log.Append(entry)
}

// --- stats subcommand ---

var usageStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-document access counts, most recent first",
	RunE:  runUsageStats,
}

func runUsageStats(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	stats, err := ingestedStats(cmd)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	if len(stats) == 0 {
		fmt.Println("No usage recorded.")
		return nil
	}
	fmt.Printf("%-50s  %6s  %6s  %s\n", "Path", "Reads", "Edits", "Last access")
	for _, st := range stats {
		fmt.Printf("%-50s  %6d  %6d  %s\n",
			st.Path, st.Reads, st.Edits, st.LastAccess.Format("2006-01-02"))
	}
	return nil
}

// --- recommend subcommand ---

var usageRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank documents worth maintenance attention",
	Long: `Recommend combines usage stats with the staleness validator: documents
that are both heavily used and stale rank first (revalidate them), and
documents no one has ever accessed are listed last (archive candidates).`,
	RunE: runUsageRecommend,
}

func runUsageRecommend(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	max, _ := cmd.Flags().GetInt("limit")

	stats, err := ingestedStats(cmd)
	if err != nil {
		return err
	}

	root := gardenRoot(cmd)
	c, err := corpus.Load(root)
	if err != nil {
		return err
	}

	stale := make(map[string]bool)
	var allPaths []string
	for _, doc := range c.Docs {
		allPaths = append(allPaths, doc.Path())
		for _, issue := range lint.Run(doc) {
			if issue.Validator == "staleness" {
				stale[doc.Path()] = true
				break
			}
		}
	}

	_, cfg := usageLogAndConfig(cmd)
	recs := usage.Recommend(stats, usage.RecommendOptions{
		StalePaths:   stale,
		AllPaths:     allPaths,
		HalfLifeDays: cfg.HalfLifeDays,
		Max:          max,
	})

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Println("Nothing to recommend.")
		return nil
	}
	for i, rec := range recs {
		fmt.Printf("%2d. %-50s  %s\n", i+1, rec.Path, rec.Reason)
	}
	return nil
}

// --- shared helpers ---

// usageLogAndConfig resolves the log and index locations: flags, then
// config, then the .docgarden/ defaults under the garden root.
func usageLogAndConfig(cmd *cobra.Command) (*usage.Log, types.UsageConfig) {
	root := gardenRoot(cmd)

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile == "" {
		logFile = viper.GetString("usage.log_file")
	}
	if logFile == "" {
		logFile = filepath.Join(root, ".docgarden", "usage.jsonl")
	}

	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = viper.GetString("usage.index_dir")
	}
	if indexDir == "" {
		indexDir = filepath.Join(root, ".docgarden", "index")
	}

	cfg := types.UsageConfig{
		LogFile:      logFile,
		IndexDir:     indexDir,
		HalfLifeDays: viper.GetInt("usage.half_life_days"),
	}
	return usage.OpenLog(logFile), cfg
}

// ingestedStats opens the store, folds in any new log entries, and returns
// the aggregated stats.
func ingestedStats(cmd *cobra.Command) ([]types.UsageStats, error) {
	log, cfg := usageLogAndConfig(cmd)

	store, err := usage.NewStore(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.Ingest(ctx, log, os.Stderr); err != nil {
		return nil, err
	}
	return store.Stats(ctx)
}

func init() {
	usageCmd.PersistentFlags().String("log-file", "", "usage log path (default: <root>/.docgarden/usage.jsonl)")
	usageCmd.PersistentFlags().String("index-dir", "", "stats index directory (default: <root>/.docgarden/index)")

	usageLogCmd.Flags().String("action", "read", "access kind: read, edit, or search")
	usageLogCmd.Flags().String("session", "", "opaque session identifier")

	usageStatsCmd.Flags().Bool("json", false, "output stats as JSON")

	usageRecommendCmd.Flags().Bool("json", false, "output recommendations as JSON")
	usageRecommendCmd.Flags().Int("limit", 0, "maximum recommendations (0 = default)")

	usageCmd.AddCommand(usageLogCmd)
	usageCmd.AddCommand(usageStatsCmd)
	usageCmd.AddCommand(usageRecommendCmd)

	rootCmd.AddCommand(usageCmd)
}
