// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Phase is the lifecycle stage of an experiment.
type Phase string

const (
	PhasePlanned   Phase = "planned"
	PhaseRunning   Phase = "running"
	PhaseAnalyzing Phase = "analyzing"
	PhaseWrittenUp Phase = "written-up"
	PhaseAbandoned Phase = "abandoned"
)

// Experiment tracks one named experiment through its phases.
type Experiment struct {
	// Name identifies the experiment; unique within the state file.
	Name string `json:"name" yaml:"name"`

	// Phase is the current lifecycle stage.
	Phase Phase `json:"phase" yaml:"phase"`

	// Updated is the date of the last phase change (YYYY-MM-DD).
	Updated string `json:"updated" yaml:"updated"`

	// Doc optionally links the experiment to a research document path.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`
}

// ExperimentState is the on-disk record of every tracked experiment.
type ExperimentState struct {
	Experiments []Experiment `json:"experiments" yaml:"experiments"`
}
