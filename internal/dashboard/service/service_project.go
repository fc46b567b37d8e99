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
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/impactlab/aiboard/internal/dashboard/event"
	"github.com/impactlab/aiboard/internal/dashboard/metrics"
	"github.com/impactlab/aiboard/internal/dashboard/model"
	"github.com/impactlab/aiboard/internal/dashboard/repo"
	"github.com/impactlab/aiboard/pkg/id"
	"github.com/impactlab/aiboard/pkg/log"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNameEmpty       = errors.New("project name cannot be empty")
	ErrTeamEmpty       = errors.New("project team cannot be empty")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidPriority = errors.New("invalid priority value")
)

type ProjectService struct {
	projectRepo repo.IProjectRepository
	bus         *event.Bus
}

func NewProjectService(projectRepo repo.IProjectRepository, bus *event.Bus) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		bus:         bus,
	}
}

// CreateProject validates the request, stores the record and notifies
// live subscribers.
func (s *ProjectService) CreateProject(req *model.CreateProjectReq) (*model.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}
	team := strings.TrimSpace(req.Team)
	if team == "" {
		return nil, ErrTeamEmpty
	}

	status := model.StatusNotStarted
	if strings.TrimSpace(req.Status) != "" {
		status = model.CanonicalStatus(req.Status)
		if status == "" {
			return nil, ErrInvalidStatus
		}
	}
	priority := model.PriorityMedium
	if strings.TrimSpace(req.Priority) != "" {
		priority = model.CanonicalPriority(req.Priority)
		if priority == "" {
			return nil, ErrInvalidPriority
		}
	}

	project := &model.Project{
		ProjectId:     id.GetUlid(),
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		Team:          team,
		Status:        status,
		Priority:      priority,
		AhtImpact:     req.AhtImpact,
		CostSaving:    req.CostSaving,
		QualityImpact: req.QualityImpact,
	}
	if err := s.projectRepo.CreateProject(project); err != nil {
		log.Errorw("create project failed", "name", name, "error", err)
		return nil, fmt.Errorf("create project failed: %w", err)
	}

	log.Infow("project created", "projectId", project.ProjectId, "name", project.Name, "team", project.Team)
	metrics.ProjectWrites.WithLabelValues("create").Inc()
	s.bus.Publish(event.ProjectEvent{Type: event.EventCreated, Project: *project})
	return project, nil
}

// UpdateProject applies the non-nil fields of the request to an
// existing project.
func (s *ProjectService) UpdateProject(projectId string, req *model.UpdateProjectReq) (*model.Project, error) {
	project, err := s.projectRepo.GetProjectByProjectId(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project failed: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameEmpty
		}
		project.Name = name
	}
	if req.Team != nil {
		team := strings.TrimSpace(*req.Team)
		if team == "" {
			return nil, ErrTeamEmpty
		}
		project.Team = team
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		status := model.CanonicalStatus(*req.Status)
		if status == "" {
			return nil, ErrInvalidStatus
		}
		project.Status = status
	}
	if req.Priority != nil {
		priority := model.CanonicalPriority(*req.Priority)
		if priority == "" {
			return nil, ErrInvalidPriority
		}
		project.Priority = priority
	}
	if req.AhtImpact != nil {
		project.AhtImpact = *req.AhtImpact
	}
	if req.CostSaving != nil {
		project.CostSaving = *req.CostSaving
	}
	if req.QualityImpact != nil {
		project.QualityImpact = *req.QualityImpact
	}

	if err := s.projectRepo.UpdateProject(project); err != nil {
		log.Errorw("update project failed", "projectId", projectId, "error", err)
		return nil, fmt.Errorf("update project failed: %w", err)
	}

	metrics.ProjectWrites.WithLabelValues("update").Inc()
	s.bus.Publish(event.ProjectEvent{Type: event.EventUpdated, Project: *project})
	return project, nil
}

// DeleteProject removes a project by its public id.
func (s *ProjectService) DeleteProject(projectId string) error {
	project, err := s.projectRepo.GetProjectByProjectId(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("get project failed: %w", err)
	}

	rows, err := s.projectRepo.DeleteProject(projectId)
	if err != nil {
		log.Errorw("delete project failed", "projectId", projectId, "error", err)
		return fmt.Errorf("delete project failed: %w", err)
	}
	if rows == 0 {
		return ErrProjectNotFound
	}

	log.Infow("project deleted", "projectId", projectId, "name", project.Name)
	metrics.ProjectWrites.WithLabelValues("delete").Inc()
	s.bus.Publish(event.ProjectEvent{Type: event.EventDeleted, Project: *project})
	return nil
}

// ListProjects returns projects matching the query, newest first.
func (s *ProjectService) ListProjects(query model.ProjectQueryReq) ([]model.Project, error) {
	query.Team = strings.TrimSpace(query.Team)
	projects, err := s.projectRepo.ListProjects(query.Team)
	if err != nil {
		log.Errorw("list projects failed", "error", err)
		return nil, fmt.Errorf("list projects failed: %w", err)
	}
	return FilterProjects(projects, query), nil
}
