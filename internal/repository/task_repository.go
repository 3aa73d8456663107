package repository

import (
	"context"

	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func preloadTaskRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Project", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "progress")
		}).
		Preload("Assignments").
		Preload("Assignments.User", preloadUserSummary)
}

// List retrieves tasks with filtering, newest first
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Classified != nil {
		query = query.Where("tasks.classified = ?", *filter.Classified)
	}
	if !filter.IncludeDrafts {
		query = query.Where("tasks.is_draft = ?", false)
	}

	var tasks []models.Task
	err := query.
		Scopes(preloadTaskRelations).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Scopes(preloadTaskRelations).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task, assigneeIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return insertAssignments(tx, task.ID, assigneeIDs)
	})
}

func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task, assigneeIDs *[]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if assigneeIDs == nil {
			return nil
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		return insertAssignments(tx, task.ID, *assigneeIDs)
	})
}

func insertAssignments(tx *gorm.DB, taskID string, userIDs []string) error {
	userIDs = dedupe(userIDs)
	if len(userIDs) == 0 {
		return nil
	}
	assignments := make([]models.TaskAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.TaskAssignment{TaskID: taskID, UserID: userID}
	}
	return tx.Omit(clause.Associations).Create(&assignments).Error
}

func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
