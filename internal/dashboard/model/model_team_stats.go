package model

import "math"

// TeamStats is the per-team aggregate shown on the dashboard. Impact
// metrics are summed over completed projects only.
type TeamStats struct {
	Team          string  `json:"team"`
	TotalProjects int     `json:"totalProjects"`
	NotStarted    int     `json:"notStarted"`
	InProgress    int     `json:"inProgress"`
	Completed     int     `json:"completed"`
	AhtImpact     float64 `json:"ahtImpact"`
	CostSaving    float64 `json:"costSaving"`
	QualityImpact float64 `json:"qualityImpact"`
	Progress      int     `json:"progress"`
}

// CalcProgress returns the completion percentage, rounded to the
// nearest integer. A team with no projects is at 0.
func CalcProgress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
