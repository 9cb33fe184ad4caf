// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fix

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/internal/header"
	"github.com/pdiddy/docgarden/pkg/types"
)

// transitions is the legal plan-status adjacency table. complete→active
// reopens a plan; abandoned→draft resurrects one.
var transitions = map[types.PlanStatus][]types.PlanStatus{
	types.StatusDraft:     {types.StatusActive, types.StatusAbandoned},
	types.StatusActive:    {types.StatusComplete, types.StatusAbandoned},
	types.StatusComplete:  {types.StatusActive},
	types.StatusAbandoned: {types.StatusDraft},
}

// CanTransition reports whether from→to is a legal plan-status move.
func CanTransition(from, to types.PlanStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionStatus rewrites a plan document's status field and stamps
// last-updated with the current date. Non-plan documents and non-adjacent
// transitions are rejected. The rewritten text is verified by reparse
// before it is returned.
func TransitionStatus(path, text string, to types.PlanStatus) (string, error) {
	doc, err := document.Parse(path, text)
	if err != nil {
		return "", err
	}
	plan, ok := doc.(*document.Plan)
	if !ok {
		return "", fmt.Errorf("%s: status transitions apply to plan documents only", path)
	}

	from := plan.Status()
	if !CanTransition(from, to) {
		return "", fmt.Errorf("%s: illegal status transition %s -> %s", path, from, to)
	}

	_, _, consumed, err := header.Parse(text)
	if err != nil {
		return "", err
	}

	today := document.Now().Format("2006-01-02")
	lines := strings.Split(text, "\n")
	for i := 1; i < consumed-1; i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, "status:"):
			lines[i] = "status: " + string(to)
		case strings.HasPrefix(trimmed, "last-updated:"):
			lines[i] = "last-updated: " + today
		}
	}

	candidate := strings.Join(lines, "\n")
	if _, err := document.Parse(path, candidate); err != nil {
		return "", fmt.Errorf("%s: rewritten text failed to reparse: %w", path, err)
	}
	return candidate, nil
}
