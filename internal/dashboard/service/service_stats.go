package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/impactlab/aiboard/internal/dashboard/model"
	"github.com/impactlab/aiboard/internal/dashboard/repo"
	"github.com/impactlab/aiboard/pkg/log"
)

type StatsService struct {
	projectRepo repo.IProjectRepository
	cacheTTL    time.Duration
}

func NewStatsService(projectRepo repo.IProjectRepository, cacheTTL time.Duration) *StatsService {
	return &StatsService{
		projectRepo: projectRepo,
		cacheTTL:    cacheTTL,
	}
}

// TeamStats returns per-team aggregates, serving from cache when a
// fresh copy exists.
func (s *StatsService) TeamStats(ctx context.Context) ([]model.TeamStats, error) {
	if stats, ok := s.projectRepo.GetCachedTeamStats(ctx); ok {
		return stats, nil
	}

	projects, err := s.projectRepo.ListProjects("")
	if err != nil {
		log.Errorw("list projects for stats failed", "error", err)
		return nil, fmt.Errorf("aggregate team stats failed: %w", err)
	}

	stats := ComputeTeamStats(projects)
	s.projectRepo.SetCachedTeamStats(ctx, stats, s.cacheTTL)
	return stats, nil
}

// WarmCache recomputes the aggregate ahead of demand. Run periodically.
func (s *StatsService) WarmCache(ctx context.Context) error {
	projects, err := s.projectRepo.ListProjects("")
	if err != nil {
		return fmt.Errorf("warm team stats cache failed: %w", err)
	}
	s.projectRepo.SetCachedTeamStats(ctx, ComputeTeamStats(projects), s.cacheTTL)
	return nil
}

// ComputeTeamStats groups projects by exact team name and aggregates
// status counts. Impact metrics count completed projects only: work
// still in flight has not delivered its savings yet. Output is sorted
// by team name so repeated calls over the same input are identical.
func ComputeTeamStats(projects []model.Project) []model.TeamStats {
	byTeam := make(map[string]*model.TeamStats)
	for _, p := range projects {
		st, ok := byTeam[p.Team]
		if !ok {
			st = &model.TeamStats{Team: p.Team}
			byTeam[p.Team] = st
		}
		st.TotalProjects++
		switch p.Status {
		case model.StatusNotStarted:
			st.NotStarted++
		case model.StatusInProgress:
			st.InProgress++
		case model.StatusCompleted:
			st.Completed++
			st.AhtImpact += p.AhtImpact
			st.CostSaving += p.CostSaving
			st.QualityImpact += p.QualityImpact
		}
	}

	stats := make([]model.TeamStats, 0, len(byTeam))
	for _, st := range byTeam {
		st.Progress = model.CalcProgress(st.Completed, st.TotalProjects)
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Team < stats[j].Team })
	return stats
}
