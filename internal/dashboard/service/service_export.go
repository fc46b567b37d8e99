package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/impactlab/aiboard/internal/dashboard/metrics"
	"github.com/impactlab/aiboard/internal/dashboard/model"
	"github.com/impactlab/aiboard/internal/dashboard/repo"
	"github.com/impactlab/aiboard/pkg/log"
)

var exportHeader = []string{
	"Project Name", "Description", "Team", "Status", "Priority",
	"AHT Impact", "Cost Saving", "Quality Impact",
}

type ExportService struct {
	projectRepo repo.IProjectRepository
}

func NewExportService(projectRepo repo.IProjectRepository) *ExportService {
	return &ExportService{projectRepo: projectRepo}
}

// ExportCSV renders every project as CSV. Returns the payload and the
// suggested download filename.
func (s *ExportService) ExportCSV() ([]byte, string, error) {
	projects, err := s.projectRepo.ListProjects("")
	if err != nil {
		log.Errorw("list projects for export failed", "error", err)
		return nil, "", fmt.Errorf("export projects failed: %w", err)
	}

	metrics.ExportsTotal.Inc()
	filename := fmt.Sprintf("ai-projects-export-%s.csv", time.Now().Format("2006-01-02"))
	return RenderCSV(projects), filename, nil
}

// RenderCSV writes the export with every field quoted, so consumers
// never have to guess whether a comma splits a column or sits inside a
// project description. encoding/csv only quotes when forced to, which
// is why the quoting is done by hand here.
func RenderCSV(projects []model.Project) []byte {
	var b strings.Builder
	writeCSVRow(&b, exportHeader)
	for _, p := range projects {
		writeCSVRow(&b, []string{
			p.Name,
			p.Description,
			p.Team,
			p.Status,
			p.Priority,
			formatMetric(p.AhtImpact),
			formatMetric(p.CostSaving),
			formatMetric(p.QualityImpact),
		})
	}
	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

func formatMetric(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
