package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactlab/aiboard/internal/dashboard/model"
)

func filterFixture() []model.Project {
	return []model.Project{
		{Name: "Call Deflection Bot", Description: "chat assistant", Team: "Support", Status: model.StatusCompleted, Priority: model.PriorityHigh},
		{Name: "Invoice Matching", Description: "AP automation", Team: "Finance", Status: model.StatusInProgress, Priority: model.PriorityMedium},
		{Name: "Churn Model", Description: "predict churn from usage", Team: "Support", Status: model.StatusNotStarted, Priority: model.PriorityLow},
	}
}

func TestFilterProjectsEmptyCriteriaMatchEverything(t *testing.T) {
	projects := filterFixture()
	got := FilterProjects(projects, model.ProjectQueryReq{})
	assert.Equal(t, projects, got)
}

func TestFilterProjectsByTeamAndStatus(t *testing.T) {
	got := FilterProjects(filterFixture(), model.ProjectQueryReq{Team: "Support", Status: model.StatusCompleted})
	require.Len(t, got, 1)
	assert.Equal(t, "Call Deflection Bot", got[0].Name)
}

func TestFilterProjectsSearchIsCaseInsensitive(t *testing.T) {
	got := FilterProjects(filterFixture(), model.ProjectQueryReq{Search: "CHURN"})
	require.Len(t, got, 1)
	assert.Equal(t, "Churn Model", got[0].Name)

	// search also matches descriptions
	got = FilterProjects(filterFixture(), model.ProjectQueryReq{Search: "automation"})
	require.Len(t, got, 1)
	assert.Equal(t, "Invoice Matching", got[0].Name)
}

func TestFilterProjectsIsIdempotent(t *testing.T) {
	query := model.ProjectQueryReq{Team: "Support"}
	once := FilterProjects(filterFixture(), query)
	twice := FilterProjects(once, query)
	assert.Equal(t, once, twice)
}

func TestFilterProjectsNoMatchReturnsEmptyNotNil(t *testing.T) {
	got := FilterProjects(filterFixture(), model.ProjectQueryReq{Team: "Nobody"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatchProjectPriority(t *testing.T) {
	p := model.Project{Team: "Ops", Status: model.StatusOnHold, Priority: model.PriorityCritical}
	assert.True(t, MatchProject(p, model.ProjectQueryReq{Priority: model.PriorityCritical}))
	assert.False(t, MatchProject(p, model.ProjectQueryReq{Priority: model.PriorityLow}))
}
