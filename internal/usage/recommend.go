// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usage

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pdiddy/docgarden/pkg/types"
)

// RecommendOptions feeds the recommendation heuristic.
type RecommendOptions struct {
	// StalePaths marks documents whose last-validated date has aged past
	// a staleness tier (from the lint suite).
	StalePaths map[string]bool

	// AllPaths lists every document in the corpus, so documents with no
	// usage at all can be surfaced for archive review.
	AllPaths []string

	// HalfLifeDays controls the recency decay (default 30).
	HalfLifeDays int

	// Max caps the result count (default 10).
	Max int

	// Now anchors the decay; zero means time.Now().
	Now time.Time
}

// Recommend ranks documents worth attention: heavily-used stale documents
// first (revalidate), then unused documents (archive review). The heuristic
// is a recency-weighted access count: reads count once, edits twice,
// decayed by a half-life over days since last access.
func Recommend(stats []types.UsageStats, opts RecommendOptions) []types.Recommendation {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	halfLife := float64(opts.HalfLifeDays)
	if halfLife <= 0 {
		halfLife = 30
	}
	max := opts.Max
	if max <= 0 {
		max = 10
	}

	used := make(map[string]bool, len(stats))
	var recs []types.Recommendation

	for _, st := range stats {
		used[st.Path] = true
		days := now.Sub(st.LastAccess).Hours() / 24
		if days < 0 {
			days = 0
		}
		weight := float64(st.Reads+2*st.Edits) * math.Pow(0.5, days/halfLife)

		if opts.StalePaths[st.Path] && weight > 0 {
			recs = append(recs, types.Recommendation{
				Path:   st.Path,
				Reason: fmt.Sprintf("frequently used but stale; revalidate (%d reads, %d edits)", st.Reads, st.Edits),
				Score:  weight,
			})
		}
	}

	for _, path := range opts.AllPaths {
		if used[path] {
			continue
		}
		recs = append(recs, types.Recommendation{
			Path:   path,
			Reason: "never accessed; consider archiving or linking from an overview",
			Score:  0,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Path < recs[j].Path
	})
	if len(recs) > max {
		recs = recs[:max]
	}
	return recs
}
