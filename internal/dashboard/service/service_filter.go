package service

import (
	"strings"

	"github.com/impactlab/aiboard/internal/dashboard/model"
)

// FilterProjects returns the projects matching every set criterion,
// preserving input order. Empty criteria match everything, so the
// filter is idempotent: filtering its own output changes nothing.
func FilterProjects(projects []model.Project, query model.ProjectQueryReq) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if MatchProject(p, query) {
			out = append(out, p)
		}
	}
	return out
}

// MatchProject reports whether a single project satisfies the query.
// Team, status and priority are exact matches; search is a
// case-insensitive substring match over name and description.
func MatchProject(p model.Project, query model.ProjectQueryReq) bool {
	if query.Team != "" && p.Team != query.Team {
		return false
	}
	if query.Status != "" && p.Status != query.Status {
		return false
	}
	if query.Priority != "" && p.Priority != query.Priority {
		return false
	}
	if query.Search != "" {
		needle := strings.ToLower(strings.TrimSpace(query.Search))
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}
