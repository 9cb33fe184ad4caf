// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package experiment tracks named experiments through a fixed phase
// lifecycle, persisted as a YAML state file in the garden root.
package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/pkg/types"
)

// DefaultStateFile is used when the config leaves the path empty.
const DefaultStateFile = "experiments.yaml"

// transitions is the complete phase graph. written-up is terminal;
// abandoned experiments can be revived back to planned.
var transitions = map[types.Phase][]types.Phase{
	types.PhasePlanned:   {types.PhaseRunning},
	types.PhaseRunning:   {types.PhaseAnalyzing, types.PhaseAbandoned},
	types.PhaseAnalyzing: {types.PhaseWrittenUp, types.PhaseRunning},
	types.PhaseAbandoned: {types.PhasePlanned},
	types.PhaseWrittenUp: nil,
}

// ValidPhase reports whether p is one of the five known phases.
func ValidPhase(p types.Phase) bool {
	_, ok := transitions[p]
	return ok
}

// CanTransition reports whether the phase graph allows from -> to.
func CanTransition(from, to types.Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Tracker reads and writes the experiment state file.
type Tracker struct {
	path string
}

// NewTracker resolves the state file under root, falling back to
// DefaultStateFile when cfg leaves it unset.
func NewTracker(root string, cfg types.ExperimentConfig) *Tracker {
	file := cfg.StateFile
	if file == "" {
		file = DefaultStateFile
	}
	return &Tracker{path: filepath.Join(root, file)}
}

// Load reads the state file. A missing file is an empty state, not an
// error.
func (t *Tracker) Load() (*types.ExperimentState, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &types.ExperimentState{}, nil
		}
		return nil, fmt.Errorf("reading experiment state: %w", err)
	}
	var state types.ExperimentState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing experiment state: %w", err)
	}
	return &state, nil
}

// Save writes the state file, experiments sorted by name so the YAML is
// stable under repeated saves.
func (t *Tracker) Save(state *types.ExperimentState) error {
	sort.Slice(state.Experiments, func(i, j int) bool {
		return state.Experiments[i].Name < state.Experiments[j].Name
	})
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling experiment state: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("writing experiment state: %w", err)
	}
	return nil
}

// Add registers a new experiment in the planned phase.
func (t *Tracker) Add(name, doc string) (types.Experiment, error) {
	state, err := t.Load()
	if err != nil {
		return types.Experiment{}, err
	}
	for _, exp := range state.Experiments {
		if exp.Name == name {
			return types.Experiment{}, fmt.Errorf("experiment %q already exists (phase %s)", name, exp.Phase)
		}
	}
	exp := types.Experiment{
		Name:    name,
		Phase:   types.PhasePlanned,
		Updated: document.Now().Format("2006-01-02"),
		Doc:     doc,
	}
	state.Experiments = append(state.Experiments, exp)
	if err := t.Save(state); err != nil {
		return types.Experiment{}, err
	}
	return exp, nil
}

// Advance moves the named experiment to a new phase, enforcing the phase
// graph. The updated date is stamped on success.
func (t *Tracker) Advance(name string, to types.Phase) (types.Experiment, error) {
	if !ValidPhase(to) {
		return types.Experiment{}, fmt.Errorf("unknown phase %q", to)
	}
	state, err := t.Load()
	if err != nil {
		return types.Experiment{}, err
	}
	for i, exp := range state.Experiments {
		if exp.Name != name {
			continue
		}
		if !CanTransition(exp.Phase, to) {
			return types.Experiment{}, fmt.Errorf("experiment %q cannot move from %s to %s", name, exp.Phase, to)
		}
		state.Experiments[i].Phase = to
		state.Experiments[i].Updated = document.Now().Format("2006-01-02")
		if err := t.Save(state); err != nil {
			return types.Experiment{}, err
		}
		return state.Experiments[i], nil
	}
	return types.Experiment{}, fmt.Errorf("no experiment named %q", name)
}
