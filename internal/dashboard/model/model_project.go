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

package model

import "strings"

// Project is a tracked initiative on the dashboard.
type Project struct {
	BaseModel
	ProjectId     string  `gorm:"column:project_id;uniqueIndex" json:"projectId"`
	Name          string  `gorm:"column:name" json:"name"`
	Description   string  `gorm:"column:description" json:"description"`
	Team          string  `gorm:"column:team;index" json:"team"`
	Status        string  `gorm:"column:status" json:"status"`
	Priority      string  `gorm:"column:priority" json:"priority"`
	AhtImpact     float64 `gorm:"column:aht_impact" json:"ahtImpact"`
	CostSaving    float64 `gorm:"column:cost_saving" json:"costSaving"`
	QualityImpact float64 `gorm:"column:quality_impact" json:"qualityImpact"`
}

func (Project) TableName() string {
	return "t_project"
}

// ProjectStatus enum
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusOnHold     = "On Hold"
)

// ProjectPriority enum
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

var statuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold}

var priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p string) bool {
	for _, v := range priorities {
		if v == p {
			return true
		}
	}
	return false
}

// CanonicalStatus maps a free-form value to a known status,
// case-insensitively. Returns "" when no match.
func CanonicalStatus(s string) string {
	t := strings.TrimSpace(s)
	for _, v := range statuses {
		if strings.EqualFold(v, t) {
			return v
		}
	}
	return ""
}

// CanonicalPriority maps a free-form value to a known priority,
// case-insensitively. Returns "" when no match.
func CanonicalPriority(p string) string {
	t := strings.TrimSpace(p)
	for _, v := range priorities {
		if strings.EqualFold(v, t) {
			return v
		}
	}
	return ""
}

// CreateProjectReq is the create request body.
type CreateProjectReq struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Team          string  `json:"team"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	AhtImpact     float64 `json:"ahtImpact"`
	CostSaving    float64 `json:"costSaving"`
	QualityImpact float64 `json:"qualityImpact"`
}

// UpdateProjectReq is the update request body. Nil fields keep the
// stored value.
type UpdateProjectReq struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Team          *string  `json:"team,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Priority      *string  `json:"priority,omitempty"`
	AhtImpact     *float64 `json:"ahtImpact,omitempty"`
	CostSaving    *float64 `json:"costSaving,omitempty"`
	QualityImpact *float64 `json:"qualityImpact,omitempty"`
}

// ProjectQueryReq narrows list results.
type ProjectQueryReq struct {
	Team     string `json:"team" query:"team"`
	Status   string `json:"status" query:"status"`
	Priority string `json:"priority" query:"priority"`
	Search   string `json:"search" query:"search"`
}
