// Copyright 2025 Aiboard Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/impactlab/aiboard/internal/dashboard/metrics"
	"github.com/impactlab/aiboard/internal/dashboard/model"
	"github.com/impactlab/aiboard/pkg/log"
	"github.com/impactlab/aiboard/pkg/num"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported import file format")
	ErrImportParse       = errors.New("import file could not be parsed")
	ErrNoRowsAccepted    = errors.New("no importable rows found")
)

// ImportPreview is the parsed upload before the user confirms it.
type ImportPreview struct {
	Rows      []model.CreateProjectReq `json:"rows"`
	TotalRows int                      `json:"totalRows"`
	Skipped   int                      `json:"skipped"`
}

// ImportResult summarizes a committed import. FirstError carries the
// first per-row failure when Failed > 0.
type ImportResult struct {
	Imported   int    `json:"imported"`
	Failed     int    `json:"failed"`
	FirstError string `json:"firstError,omitempty"`
}

type ImportService struct {
	projects *ProjectService
}

func NewImportService(projects *ProjectService) *ImportService {
	return &ImportService{projects: projects}
}

// ParsePreview parses an uploaded file into candidate project rows
// without writing anything. The format is chosen by file extension:
// .csv and .txt are delimited text, .xlsx and .xls are spreadsheets.
func (s *ImportService) ParsePreview(filename string, data []byte) (*ImportPreview, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseDelimited(data, ',')
	case ".txt":
		rows, err = parseDelimited(data, sniffDelimiter(data))
	case ".xlsx", ".xls":
		rows, err = parseWorkbook(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		log.Warnw("import file parse failed", "filename", filename, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrImportParse, err)
	}

	header, dataRows := splitHeader(rows)
	if header == nil {
		return nil, fmt.Errorf("%w: file has no rows", ErrImportParse)
	}
	cols := mapColumns(header)
	if cols.name < 0 || cols.team < 0 {
		return nil, fmt.Errorf("%w: header has no name or team column", ErrImportParse)
	}

	preview := &ImportPreview{Rows: []model.CreateProjectReq{}}
	for _, row := range dataRows {
		if emptyRow(row) {
			continue
		}
		preview.TotalRows++
		req, ok := cols.buildRow(row)
		if !ok {
			preview.Skipped++
			continue
		}
		preview.Rows = append(preview.Rows, req)
	}
	return preview, nil
}

// CommitImport writes the previewed rows. A failing row is skipped and
// counted so one bad record never aborts the batch.
func (s *ImportService) CommitImport(rows []model.CreateProjectReq) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, ErrNoRowsAccepted
	}

	result := &ImportResult{}
	for i := range rows {
		if _, err := s.projects.CreateProject(&rows[i]); err != nil {
			log.Warnw("import row rejected", "name", rows[i].Name, "error", err)
			result.Failed++
			if result.FirstError == "" {
				result.FirstError = err.Error()
			}
			metrics.ImportRows.WithLabelValues("rejected").Inc()
			continue
		}
		result.Imported++
		metrics.ImportRows.WithLabelValues("imported").Inc()
	}

	log.Infow("import committed", "imported", result.Imported, "failed", result.Failed)
	return result, nil
}

func parseDelimited(data []byte, delim rune) ([][]string, error) {
	// old spreadsheet tools still emit bare-CR line endings, which
	// encoding/csv does not split on
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	normalized = bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))

	r := csv.NewReader(bytes.NewReader(normalized))
	r.Comma = delim
	// uploads often have ragged rows, tolerate them
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// sniffDelimiter picks tab over comma for .txt uploads when the first
// line is tab separated.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.ContainsRune(line, '\t') {
		return '\t'
	}
	return ','
}

func parseWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// splitHeader returns the first non-empty row as the header and the
// remainder as data.
func splitHeader(rows [][]string) ([]string, [][]string) {
	for i, row := range rows {
		if !emptyRow(row) {
			return row, rows[i+1:]
		}
	}
	return nil, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// columnMap holds the index of each recognized field, -1 when absent.
type columnMap struct {
	name, description, team, status, priority, aht, cost, quality int
}

// mapColumns matches header cells to fields by case-insensitive
// substring, so "Project Name", "name" and "Owner Team" all resolve.
// The first matching column wins.
func mapColumns(header []string) columnMap {
	cols := columnMap{name: -1, description: -1, team: -1, status: -1, priority: -1, aht: -1, cost: -1, quality: -1}
	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case cols.description < 0 && strings.Contains(h, "desc"):
			cols.description = i
		case cols.name < 0 && (strings.Contains(h, "name") || strings.Contains(h, "project")):
			cols.name = i
		case cols.team < 0 && (strings.Contains(h, "team") || strings.Contains(h, "owner")):
			cols.team = i
		case cols.status < 0 && strings.Contains(h, "status"):
			cols.status = i
		case cols.priority < 0 && strings.Contains(h, "priority"):
			cols.priority = i
		case cols.aht < 0 && strings.Contains(h, "aht"):
			cols.aht = i
		case cols.cost < 0 && strings.Contains(h, "cost"):
			cols.cost = i
		case cols.quality < 0 && strings.Contains(h, "quality"):
			cols.quality = i
		}
	}
	return cols
}

func (c columnMap) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// buildRow converts one data row into a create request. Rows without a
// name and a team are not importable. Unrecognized status or priority
// values fall back to the defaults rather than failing the row.
func (c columnMap) buildRow(row []string) (model.CreateProjectReq, bool) {
	name := c.cell(row, c.name)
	team := c.cell(row, c.team)
	if name == "" || team == "" {
		return model.CreateProjectReq{}, false
	}

	status := model.CanonicalStatus(c.cell(row, c.status))
	if status == "" {
		status = model.StatusNotStarted
	}
	priority := model.CanonicalPriority(c.cell(row, c.priority))
	if priority == "" {
		priority = model.PriorityMedium
	}

	return model.CreateProjectReq{
		Name:          name,
		Description:   c.cell(row, c.description),
		Team:          team,
		Status:        status,
		Priority:      priority,
		AhtImpact:     num.ToFloat64(c.cell(row, c.aht)),
		CostSaving:    num.ToFloat64(c.cell(row, c.cost)),
		QualityImpact: num.ToFloat64(c.cell(row, c.quality)),
	}, true
}
