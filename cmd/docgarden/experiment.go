// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docgarden/internal/experiment"
	"github.com/pdiddy/docgarden/pkg/types"
)

var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Track experiments through their research phases",
	Long: `Experiment records named experiments in a YAML state file under the
garden root and moves them through a fixed lifecycle: planned, running,
analyzing, written-up, with abandonment and revival. Illegal phase jumps
are rejected.`,
}

var experimentAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new experiment in the planned phase",
	Args:  cobra.ExactArgs(1),
	RunE:  runExperimentAdd,
}

func runExperimentAdd(cmd *cobra.Command, args []string) error {
	doc, _ := cmd.Flags().GetString("doc")

	exp, err := experimentTracker(cmd).Add(args[0], doc)
	if err != nil {
		return err
	}
	fmt.Printf("%s added (%s)\n", exp.Name, exp.Phase)
	return nil
}

var experimentAdvanceCmd = &cobra.Command{
	Use:   "advance <name> <phase>",
	Short: "Move an experiment to its next phase",
	Args:  cobra.ExactArgs(2),
	RunE:  runExperimentAdvance,
}

func runExperimentAdvance(cmd *cobra.Command, args []string) error {
	exp, err := experimentTracker(cmd).Advance(args[0], types.Phase(args[1]))
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", exp.Name, exp.Phase)
	return nil
}

var experimentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked experiments and their phases",
	RunE:  runExperimentList,
}

func runExperimentList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	state, err := experimentTracker(cmd).Load()
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state.Experiments)
	}

	if len(state.Experiments) == 0 {
		fmt.Println("No experiments tracked.")
		return nil
	}
	for _, exp := range state.Experiments {
		line := fmt.Sprintf("%-30s  %-10s  %s", exp.Name, exp.Phase, exp.Updated)
		if exp.Doc != "" {
			line += "  " + exp.Doc
		}
		fmt.Println(line)
	}
	return nil
}

func experimentTracker(cmd *cobra.Command) *experiment.Tracker {
	stateFile, _ := cmd.Flags().GetString("state-file")
	if stateFile == "" {
		stateFile = viper.GetString("experiment.state_file")
	}
	return experiment.NewTracker(gardenRoot(cmd), types.ExperimentConfig{StateFile: stateFile})
}

func init() {
	experimentCmd.PersistentFlags().String("state-file", "", "state file name (default: experiments.yaml)")

	experimentAddCmd.Flags().String("doc", "", "research document path to link")

	experimentListCmd.Flags().Bool("json", false, "output experiments as JSON")

	experimentCmd.AddCommand(experimentAddCmd)
	experimentCmd.AddCommand(experimentAdvanceCmd)
	experimentCmd.AddCommand(experimentListCmd)

	rootCmd.AddCommand(experimentCmd)
}
