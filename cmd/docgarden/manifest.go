// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docgarden/internal/corpus"
	"github.com/pdiddy/docgarden/internal/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Render or refresh the generated index in the companion file",
	Long: `Manifest renders the document index table from the parsed corpus. By
default the table is printed to stdout. With --write the sentinel-delimited
region of the companion file is replaced in place (the file and markers are
created when absent); text outside the markers is never touched. With
--check the command fails when the recorded region differs from a fresh
render.`,
	RunE: runManifest,
}

func runManifest(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")
	if write && check {
		return fmt.Errorf("--write and --check are mutually exclusive")
	}

	root := gardenRoot(cmd)
	c, err := corpus.Load(root)
	if err != nil {
		return err
	}
	rendered := manifest.Render(c.Docs)

	if !write && !check {
		fmt.Print(rendered)
		return nil
	}

	path := filepath.Join(root, manifestFile())
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)

	if check {
		region, found := manifest.ExtractRegion(text)
		switch {
		case !found:
			return fmt.Errorf("%s has no manifest markers; run manifest --write", manifestFile())
		case region != rendered:
			return fmt.Errorf("%s is out of date; run manifest --write", manifestFile())
		}
		fmt.Printf("%s is up to date (%d documents)\n", manifestFile(), len(c.Docs))
		return nil
	}

	updated := manifest.Inject(text, rendered)
	if updated == text {
		fmt.Printf("%s unchanged\n", manifestFile())
		return nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Updated %s (%d documents)\n", manifestFile(), len(c.Docs))
	return nil
}

func init() {
	manifestCmd.Flags().Bool("write", false, "rewrite the companion file's generated region")
	manifestCmd.Flags().Bool("check", false, "fail when the recorded region is stale")

	rootCmd.AddCommand(manifestCmd)
}
