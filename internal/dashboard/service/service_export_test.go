package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactlab/aiboard/internal/dashboard/model"
)

func TestRenderCSVQuotesEveryField(t *testing.T) {
	out := string(RenderCSV([]model.Project{
		{
			Name:          "Simple",
			Description:   "plain",
			Team:          "Ops",
			Status:        model.StatusCompleted,
			Priority:      model.PriorityHigh,
			AhtImpact:     12.5,
			CostSaving:    20000,
			QualityImpact: 3,
		},
	}))

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	require.Len(t, lines, 2)

	assert.Equal(t, `"Project Name","Description","Team","Status","Priority","AHT Impact","Cost Saving","Quality Impact"`, lines[0])
	assert.Equal(t, `"Simple","plain","Ops","Completed","High","12.5","20000","3"`, lines[1])
}

func TestRenderCSVEscapesQuotesAndCommas(t *testing.T) {
	out := string(RenderCSV([]model.Project{
		{
			Name:        `Say "hello", world`,
			Description: "a, b, c",
			Team:        "Ops",
			Status:      model.StatusNotStarted,
			Priority:    model.PriorityLow,
		},
	}))

	assert.Contains(t, out, `"Say ""hello"", world"`)
	assert.Contains(t, out, `"a, b, c"`)
}

// A rendered export must survive a trip back through the importer.
func TestExportImportRoundTrip(t *testing.T) {
	projects := []model.Project{
		{
			Name:          `Quote "Bot"`,
			Description:   "handles, commas\nand newlines",
			Team:          "Support",
			Status:        model.StatusInProgress,
			Priority:      model.PriorityCritical,
			AhtImpact:     1.25,
			CostSaving:    98765.5,
			QualityImpact: 4,
		},
		{
			Name:     "Plain",
			Team:     "Finance",
			Status:   model.StatusCompleted,
			Priority: model.PriorityMedium,
		},
	}

	payload := RenderCSV(projects)

	svc := NewImportService(nil)
	preview, err := svc.ParsePreview("roundtrip.csv", payload)
	require.NoError(t, err)
	require.Len(t, preview.Rows, len(projects))
	assert.Zero(t, preview.Skipped)

	for i, row := range preview.Rows {
		assert.Equal(t, projects[i].Name, row.Name)
		assert.Equal(t, projects[i].Team, row.Team)
		assert.Equal(t, projects[i].Status, row.Status)
		assert.Equal(t, projects[i].Priority, row.Priority)
		assert.Equal(t, projects[i].AhtImpact, row.AhtImpact)
		assert.Equal(t, projects[i].CostSaving, row.CostSaving)
		assert.Equal(t, projects[i].QualityImpact, row.QualityImpact)
	}
}

func TestRenderCSVEmptyStillHasHeader(t *testing.T) {
	out := string(RenderCSV(nil))
	assert.True(t, strings.HasPrefix(out, `"Project Name"`))
	assert.Equal(t, 1, strings.Count(out, "\r\n"))
}
