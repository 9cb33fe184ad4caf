// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Severity classifies a validation issue. Fail blocks a passing verdict;
// warn and info do not.
type Severity string

const (
	SeverityFail Severity = "fail"
	SeverityWarn Severity = "warn"
	SeverityInfo Severity = "info"
)

// Issue is one finding produced by a validator. Issues are values; a
// validator returns zero or more of them and never mutates its input.
type Issue struct {
	// File is the path of the document the issue applies to, relative to
	// the garden root.
	File string `json:"file" yaml:"file"`

	// Message is the human-readable description of the problem.
	Message string `json:"message" yaml:"message"`

	// Severity is fail, warn, or info.
	Severity Severity `json:"severity" yaml:"severity"`

	// Validator is the identifier of the check that produced this issue
	// (e.g. "section-order"). The fix engine keys on it.
	Validator string `json:"validator" yaml:"validator"`

	// Section names the document section involved, when the issue is
	// section-scoped.
	Section string `json:"section,omitempty" yaml:"section,omitempty"`

	// Suggestion is an optional remedy hint.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`

	// NeedsReview marks issues that require human or external judgment
	// (semantic drift, unreachable URLs) rather than a mechanical fix.
	NeedsReview bool `json:"needs_review,omitempty" yaml:"needs_review,omitempty"`
}

// HasFailure reports whether any issue in the list is fail severity.
func HasFailure(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityFail {
			return true
		}
	}
	return false
}
