package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactlab/aiboard/internal/dashboard/event"
	"github.com/impactlab/aiboard/internal/dashboard/model"
)

func TestParsePreviewHeaderSynonyms(t *testing.T) {
	svc := NewImportService(nil)
	data := []byte("Project,Owner,Cost\nWidget,TeamA,1500\n")

	preview, err := svc.ParsePreview("upload.csv", data)
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)

	row := preview.Rows[0]
	assert.Equal(t, "Widget", row.Name)
	assert.Equal(t, "TeamA", row.Team)
	assert.Equal(t, 1500.0, row.CostSaving)

	// unset columns fall back to defaults
	assert.Equal(t, model.StatusNotStarted, row.Status)
	assert.Equal(t, model.PriorityMedium, row.Priority)
	assert.Equal(t, 0.0, row.AhtImpact)
	assert.Equal(t, 0.0, row.QualityImpact)
}

func TestParsePreviewFullHeader(t *testing.T) {
	svc := NewImportService(nil)
	data := []byte(strings.Join([]string{
		`"Project Name","Description","Team","Status","Priority","AHT Impact","Cost Saving","Quality Impact"`,
		`"Bot","deflects calls","Support","In Progress","High","12.5","20000","3"`,
	}, "\r\n"))

	preview, err := svc.ParsePreview("projects.csv", data)
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)

	row := preview.Rows[0]
	assert.Equal(t, "Bot", row.Name)
	assert.Equal(t, "deflects calls", row.Description)
	assert.Equal(t, "Support", row.Team)
	assert.Equal(t, model.StatusInProgress, row.Status)
	assert.Equal(t, model.PriorityHigh, row.Priority)
	assert.Equal(t, 12.5, row.AhtImpact)
	assert.Equal(t, 20000.0, row.CostSaving)
	assert.Equal(t, 3.0, row.QualityImpact)
}

func TestParsePreviewDropsRowsWithoutNameOrTeam(t *testing.T) {
	svc := NewImportService(nil)
	data := []byte("name,team\nValid,Ops\n,Ops\nNoTeam,\n   ,   \n")

	preview, err := svc.ParsePreview("rows.csv", data)
	require.NoError(t, err)

	assert.Len(t, preview.Rows, 1)
	assert.Equal(t, "Valid", preview.Rows[0].Name)
	assert.Equal(t, 3, preview.TotalRows)
	assert.Equal(t, 2, preview.Skipped)
}

func TestParsePreviewTabSeparatedTxt(t *testing.T) {
	svc := NewImportService(nil)
	data := []byte("name\tteam\tpriority\nBatch Job\tData\tcritical\n")

	preview, err := svc.ParsePreview("export.txt", data)
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)
	assert.Equal(t, "Batch Job", preview.Rows[0].Name)
	assert.Equal(t, model.PriorityCritical, preview.Rows[0].Priority)
}

func TestParsePreviewStatusIsCanonicalized(t *testing.T) {
	svc := NewImportService(nil)
	data := []byte("name,team,status\nA,Ops,completed\nB,Ops,bogus\n")

	preview, err := svc.ParsePreview("s.csv", data)
	require.NoError(t, err)
	require.Len(t, preview.Rows, 2)
	assert.Equal(t, model.StatusCompleted, preview.Rows[0].Status)
	// unrecognized values import with the default instead of failing
	assert.Equal(t, model.StatusNotStarted, preview.Rows[1].Status)
}

func TestParsePreviewUnsupportedExtension(t *testing.T) {
	svc := NewImportService(nil)
	_, err := svc.ParsePreview("projects.pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParsePreviewMissingRequiredColumns(t *testing.T) {
	svc := NewImportService(nil)
	_, err := svc.ParsePreview("projects.csv", []byte("status,priority\nCompleted,High\n"))
	assert.ErrorIs(t, err, ErrImportParse)
}

func TestParsePreviewEmptyFile(t *testing.T) {
	svc := NewImportService(nil)
	_, err := svc.ParsePreview("empty.csv", []byte(""))
	assert.ErrorIs(t, err, ErrImportParse)
}

func TestCommitImportRejectsEmptyBatch(t *testing.T) {
	svc := NewImportService(nil)
	_, err := svc.CommitImport(nil)
	assert.ErrorIs(t, err, ErrNoRowsAccepted)
}

// stubProjectRepo lets a commit run against a store that rejects a
// chosen row.
type stubProjectRepo struct {
	failName string
	created  []string
}

func (s *stubProjectRepo) CreateProject(p *model.Project) error {
	if p.Name == s.failName {
		return errors.New("duplicate name")
	}
	s.created = append(s.created, p.Name)
	return nil
}

func (s *stubProjectRepo) GetProjectByProjectId(string) (*model.Project, error) {
	return nil, errors.New("not found")
}

func (s *stubProjectRepo) UpdateProject(*model.Project) error { return nil }

func (s *stubProjectRepo) DeleteProject(string) (int64, error) { return 0, nil }

func (s *stubProjectRepo) ListProjects(string) ([]model.Project, error) { return nil, nil }

func (s *stubProjectRepo) GetCachedTeamStats(context.Context) ([]model.TeamStats, bool) {
	return nil, false
}

func (s *stubProjectRepo) SetCachedTeamStats(context.Context, []model.TeamStats, time.Duration) {}

func (s *stubProjectRepo) InvalidateTeamStats(context.Context) {}

func TestCommitImportContinuesPastFailingRow(t *testing.T) {
	store := &stubProjectRepo{failName: "Broken"}
	bus := event.NewBus(nil)
	defer bus.Close()
	svc := NewImportService(NewProjectService(store, bus))

	result, err := svc.CommitImport([]model.CreateProjectReq{
		{Name: "First", Team: "Ops"},
		{Name: "Broken", Team: "Ops"},
		{Name: "Last", Team: "Ops"},
	})
	require.NoError(t, err)

	// one bad row is counted, not fatal: rows after it still land
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.FirstError, "duplicate name")
	assert.Equal(t, []string{"First", "Last"}, store.created)
}

func TestCommitImportReportsFirstErrorOnly(t *testing.T) {
	store := &stubProjectRepo{}
	bus := event.NewBus(nil)
	defer bus.Close()
	svc := NewImportService(NewProjectService(store, bus))

	// both rows fail validation before reaching the store
	result, err := svc.CommitImport([]model.CreateProjectReq{
		{Name: "", Team: "Ops"},
		{Name: "NoTeam", Team: ""},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, ErrNameEmpty.Error(), result.FirstError)
	assert.Empty(t, store.created)
}

func TestParsePreviewLegacyXlsIsParseError(t *testing.T) {
	svc := NewImportService(nil)
	// OLE compound-file magic, the legacy binary .xls container
	data := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}

	_, err := svc.ParsePreview("projects.xls", data)
	assert.ErrorIs(t, err, ErrImportParse)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParsePreviewBareCRLineEndings(t *testing.T) {
	svc := NewImportService(nil)
	data := []byte("name,team\rLegacy,Ops\r")

	preview, err := svc.ParsePreview("legacy.csv", data)
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)
	assert.Equal(t, "Legacy", preview.Rows[0].Name)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, '\t', sniffDelimiter([]byte("a\tb\nc\td\n")))
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b\nc,d\n")))
}

func TestToleratesThousandsSeparators(t *testing.T) {
	svc := NewImportService(nil)
	data := []byte("name,team,cost saving\nBig,Ops,\"1,500,000\"\n")

	preview, err := svc.ParsePreview("big.csv", data)
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)
	assert.Equal(t, 1500000.0, preview.Rows[0].CostSaving)
}
