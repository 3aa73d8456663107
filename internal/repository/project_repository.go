package repository

import (
	"context"

	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]ProjectListItem, error) {
	db := r.db.WithContext(ctx)

	query := db.Model(&models.Project{}).
		Select("projects.id", "projects.title", "projects.progress", "projects.is_public", "projects.created_at", "projects.updated_at")

	if filter.VisibleTo != nil {
		memberSubQuery := db.Model(&models.ProjectMember{}).
			Select("1").
			Where("project_members.project_id = projects.id").
			Where("project_members.user_id = ?", *filter.VisibleTo)
		query = query.Where("projects.is_public = ? OR EXISTS (?)", true, memberSubQuery)
	}

	var projects []models.Project
	err := query.
		Preload("Members").
		Preload("Members.User", preloadUserSummary).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	counts, err := r.taskCounts(db, projects)
	if err != nil {
		return nil, err
	}

	items := make([]ProjectListItem, len(projects))
	for i, p := range projects {
		items[i] = ProjectListItem{Project: p, TaskCount: counts[p.ID]}
	}
	return items, nil
}

func (r *GormProjectRepository) taskCounts(db *gorm.DB, projects []models.Project) (map[string]int64, error) {
	counts := make(map[string]int64, len(projects))
	if len(projects) == 0 {
		return counts, nil
	}

	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	var rows []struct {
		ProjectID string
		Count     int64
	}
	err := db.Model(&models.Task{}).
		Select("project_id, COUNT(*) AS count").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ProjectID] = row.Count
	}
	return counts, nil
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.User", preloadUserSummary).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "status", "priority", "project_id").Order("created_at DESC")
		}).
		Preload("Tasks.Assignments").
		Preload("Tasks.Assignments.User", preloadUserSummary).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project, memberIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return insertMembers(tx, project.ID, memberIDs)
	})
}

func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project, memberIDs *[]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}
		if memberIDs == nil {
			return nil
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, project.ID, *memberIDs)
	})
}

func insertMembers(tx *gorm.DB, projectID string, userIDs []string) error {
	userIDs = dedupe(userIDs)
	if len(userIDs) == 0 {
		return nil
	}
	members := make([]models.ProjectMember, len(userIDs))
	for i, userID := range userIDs {
		members[i] = models.ProjectMember{ProjectID: projectID, UserID: userID}
	}
	return tx.Omit(clause.Associations).Create(&members).Error
}

func (r *GormProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// dedupe drops repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
