package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactlab/aiboard/internal/dashboard/model"
)

func project(team, status string, aht, cost, quality float64) model.Project {
	return model.Project{
		Team:          team,
		Status:        status,
		AhtImpact:     aht,
		CostSaving:    cost,
		QualityImpact: quality,
	}
}

func TestComputeTeamStatsSingleTeam(t *testing.T) {
	projects := []model.Project{
		project("X", model.StatusNotStarted, 1, 10, 1),
		project("X", model.StatusInProgress, 2, 20, 2),
		project("X", model.StatusCompleted, 10, 100, 5),
		project("X", model.StatusOnHold, 4, 40, 4),
	}

	stats := ComputeTeamStats(projects)
	require.Len(t, stats, 1)

	x := stats[0]
	assert.Equal(t, "X", x.Team)
	assert.Equal(t, 4, x.TotalProjects)
	assert.Equal(t, 1, x.NotStarted)
	assert.Equal(t, 1, x.InProgress)
	assert.Equal(t, 1, x.Completed)

	// only the completed project contributes impact metrics
	assert.Equal(t, 10.0, x.AhtImpact)
	assert.Equal(t, 100.0, x.CostSaving)
	assert.Equal(t, 5.0, x.QualityImpact)

	assert.Equal(t, 25, x.Progress)
}

func TestComputeTeamStatsTotalsMatchInput(t *testing.T) {
	projects := []model.Project{
		project("A", model.StatusCompleted, 1, 1, 1),
		project("B", model.StatusInProgress, 1, 1, 1),
		project("A", model.StatusNotStarted, 1, 1, 1),
		project("C", model.StatusOnHold, 1, 1, 1),
		project("B", model.StatusCompleted, 1, 1, 1),
	}

	stats := ComputeTeamStats(projects)

	total := 0
	for _, st := range stats {
		total += st.TotalProjects
	}
	assert.Equal(t, len(projects), total)
}

func TestComputeTeamStatsSortedByTeam(t *testing.T) {
	projects := []model.Project{
		project("zeta", model.StatusCompleted, 0, 0, 0),
		project("alpha", model.StatusCompleted, 0, 0, 0),
		project("mid", model.StatusCompleted, 0, 0, 0),
	}

	stats := ComputeTeamStats(projects)
	require.Len(t, stats, 3)
	assert.Equal(t, "alpha", stats[0].Team)
	assert.Equal(t, "mid", stats[1].Team)
	assert.Equal(t, "zeta", stats[2].Team)
}

func TestComputeTeamStatsEmptyInput(t *testing.T) {
	stats := ComputeTeamStats(nil)
	assert.Empty(t, stats)
}

func TestComputeTeamStatsExactTeamGrouping(t *testing.T) {
	// team names differing in case are distinct teams
	projects := []model.Project{
		project("Ops", model.StatusCompleted, 0, 0, 0),
		project("ops", model.StatusCompleted, 0, 0, 0),
	}

	stats := ComputeTeamStats(projects)
	assert.Len(t, stats, 2)
}

func TestCalcProgress(t *testing.T) {
	assert.Equal(t, 0, model.CalcProgress(0, 0))
	assert.Equal(t, 0, model.CalcProgress(0, 7))
	assert.Equal(t, 100, model.CalcProgress(7, 7))
	assert.Equal(t, 33, model.CalcProgress(1, 3))
	assert.Equal(t, 67, model.CalcProgress(2, 3))
	assert.Equal(t, 50, model.CalcProgress(1, 2))
}
