// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests (link checking only; the core never touches the network).
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docgarden/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GardenConfig locates the document tree and its conventional roots.
type GardenConfig struct {
	// Root is the garden root directory; all document paths are relative
	// to it.
	Root string `json:"root" yaml:"root"`

	// ManifestFile is the companion file carrying the generated index
	// region (default "INDEX.md", relative to Root).
	ManifestFile string `json:"manifest_file" yaml:"manifest_file"`
}

// LintConfig holds settings for structural and cross-corpus validation.
type LintConfig struct {
	// FailOn escalates the verdict: "fail" (default) passes unless a
	// fail-severity issue exists; "warn" also fails the run on warnings.
	FailOn Severity `json:"fail_on" yaml:"fail_on"`

	// SkipValidators lists validator ids to suppress.
	SkipValidators []string `json:"skip_validators,omitempty" yaml:"skip_validators,omitempty"`
}

// LinkCheckConfig holds settings for the URL reachability collaborator.
type LinkCheckConfig struct {
	HTTPConfig `yaml:",inline"`

	// RequestDelay is the pause between consecutive requests to the same
	// host (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// VerifyTitles enables comparing fetched page titles against the
	// titles declared in source entries.
	VerifyTitles bool `json:"verify_titles" yaml:"verify_titles"`
}

// UsageConfig holds settings for the usage log and stats index.
type UsageConfig struct {
	// LogFile is the append-only JSONL usage log (default
	// ".docgarden/usage.jsonl", relative to the garden root).
	LogFile string `json:"log_file" yaml:"log_file"`

	// IndexDir is the directory holding the SQLite stats index (default
	// ".docgarden/index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of recommendation results
	// (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// HalfLifeDays is the decay half-life in days for recency-weighted
	// access counts (default 30).
	HalfLifeDays int `json:"half_life_days" yaml:"half_life_days"`
}

// BudgetConfig holds settings for the token-budget heuristic.
type BudgetConfig struct {
	// TotalTokens is the corpus-wide token budget; zero disables the
	// overall check.
	TotalTokens int `json:"total_tokens" yaml:"total_tokens"`

	// PerDocumentTokens caps any single document; zero disables.
	PerDocumentTokens int `json:"per_document_tokens" yaml:"per_document_tokens"`
}

// ExperimentConfig locates the experiment phase-tracking state.
type ExperimentConfig struct {
	// StateFile is the YAML file recording experiment phases (default
	// "experiments.yaml", relative to the garden root).
	StateFile string `json:"state_file" yaml:"state_file"`
}

// Config groups all component configurations.
type Config struct {
	Garden     GardenConfig     `json:"garden" yaml:"garden"`
	Lint       LintConfig       `json:"lint" yaml:"lint"`
	LinkCheck  LinkCheckConfig  `json:"link_check" yaml:"link_check"`
	Usage      UsageConfig      `json:"usage" yaml:"usage"`
	Budget     BudgetConfig     `json:"budget" yaml:"budget"`
	Experiment ExperimentConfig `json:"experiment" yaml:"experiment"`
}
