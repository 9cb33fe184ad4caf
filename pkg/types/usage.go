// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// UsageAction classifies one usage-log event.
type UsageAction string

const (
	ActionRead   UsageAction = "read"
	ActionEdit   UsageAction = "edit"
	ActionSearch UsageAction = "search"
)

// UsageEntry is one line of the append-only usage log.
type UsageEntry struct {
	// Time is when the access happened.
	Time time.Time `json:"time" yaml:"time"`

	// Path is the accessed document, relative to the garden root.
	Path string `json:"path" yaml:"path"`

	// Action is read, edit, or search.
	Action UsageAction `json:"action" yaml:"action"`

	// Session is an opaque session identifier grouping related accesses.
	Session string `json:"session,omitempty" yaml:"session,omitempty"`
}

// UsageStats aggregates log entries for one document.
type UsageStats struct {
	Path       string    `json:"path" yaml:"path"`
	Reads      int       `json:"reads" yaml:"reads"`
	Edits      int       `json:"edits" yaml:"edits"`
	LastAccess time.Time `json:"last_access" yaml:"last_access"`
}

// Recommendation pairs a document with a reason it deserves attention.
type Recommendation struct {
	Path   string  `json:"path" yaml:"path"`
	Reason string  `json:"reason" yaml:"reason"`
	Score  float64 `json:"score" yaml:"score"`
}
