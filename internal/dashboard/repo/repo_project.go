package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/impactlab/aiboard/internal/dashboard/consts"
	"github.com/impactlab/aiboard/internal/dashboard/model"
	"github.com/impactlab/aiboard/pkg/cache"
	"github.com/impactlab/aiboard/pkg/database"
	"github.com/impactlab/aiboard/pkg/log"
)

type IProjectRepository interface {
	CreateProject(project *model.Project) error
	GetProjectByProjectId(projectId string) (*model.Project, error)
	UpdateProject(project *model.Project) error
	DeleteProject(projectId string) (int64, error)
	ListProjects(team string) ([]model.Project, error)
	GetCachedTeamStats(ctx context.Context) ([]model.TeamStats, bool)
	SetCachedTeamStats(ctx context.Context, stats []model.TeamStats, ttl time.Duration)
	InvalidateTeamStats(ctx context.Context)
}

type ProjectRepo struct {
	database.IDatabase
	cache.ICache
}

func NewProjectRepo(db database.IDatabase, cache cache.ICache) IProjectRepository {
	if cache == nil {
		log.Warnw("ProjectRepo initialized without cache, stats caching will be disabled")
	}
	return &ProjectRepo{
		IDatabase: db,
		ICache:    cache,
	}
}

// CreateProject creates a new project
func (pr *ProjectRepo) CreateProject(project *model.Project) error {
	if err := pr.Database().Table(project.TableName()).Create(project).Error; err != nil {
		return err
	}
	pr.InvalidateTeamStats(context.Background())
	return nil
}

func (pr *ProjectRepo) GetProjectByProjectId(projectId string) (*model.Project, error) {
	var project model.Project
	if err := pr.Database().Table(project.TableName()).
		Where("project_id = ?", projectId).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (pr *ProjectRepo) UpdateProject(project *model.Project) error {
	if err := pr.Database().Table(project.TableName()).
		Where("project_id = ?", project.ProjectId).
		Select("name", "description", "team", "status", "priority",
			"aht_impact", "cost_saving", "quality_impact").
		Updates(project).Error; err != nil {
		return err
	}
	pr.InvalidateTeamStats(context.Background())
	return nil
}

// DeleteProject removes a project, returning the number of rows deleted.
func (pr *ProjectRepo) DeleteProject(projectId string) (int64, error) {
	res := pr.Database().Table(model.Project{}.TableName()).
		Where("project_id = ?", projectId).Delete(&model.Project{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		pr.InvalidateTeamStats(context.Background())
	}
	return res.RowsAffected, nil
}

// ListProjects returns projects newest first, optionally narrowed to a
// team. Finer criteria (status, priority, search) are applied in the
// service layer so one matcher serves both queries and live views.
func (pr *ProjectRepo) ListProjects(team string) ([]model.Project, error) {
	var projects []model.Project
	tx := pr.Database().Table(model.Project{}.TableName())
	if team != "" {
		tx = tx.Where("team = ?", team)
	}
	if err := tx.Order("created_at DESC, id DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetCachedTeamStats returns the cached aggregate if present.
func (pr *ProjectRepo) GetCachedTeamStats(ctx context.Context) ([]model.TeamStats, bool) {
	if pr.ICache == nil {
		return nil, false
	}
	cached, err := pr.ICache.Get(ctx, consts.TeamStatsKey).Result()
	if err != nil || cached == "" {
		return nil, false
	}
	var stats []model.TeamStats
	if err := json.Unmarshal([]byte(cached), &stats); err != nil {
		log.Warnw("failed to unmarshal cached team stats", "error", err)
		return nil, false
	}
	return stats, true
}

// SetCachedTeamStats stores the aggregate, best effort.
func (pr *ProjectRepo) SetCachedTeamStats(ctx context.Context, stats []model.TeamStats, ttl time.Duration) {
	if pr.ICache == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		log.Warnw("failed to marshal team stats for caching", "error", err)
		return
	}
	if err := pr.ICache.Set(ctx, consts.TeamStatsKey, string(payload), ttl).Err(); err != nil {
		log.Warnw("failed to cache team stats", "error", err)
	}
}

// InvalidateTeamStats drops the cached aggregate after any write.
func (pr *ProjectRepo) InvalidateTeamStats(ctx context.Context) {
	if pr.ICache == nil {
		return
	}
	if err := pr.ICache.Del(ctx, consts.TeamStatsKey).Err(); err != nil {
		log.Warnw("failed to invalidate team stats cache", "error", err)
	}
}
