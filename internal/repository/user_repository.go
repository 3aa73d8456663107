package repository

import (
	"context"

	"github.com/tasknity/tasknity-api/internal/database"
	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User, role models.Role) error {
	user.Role = role
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select(userProfileColumns).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *GormUserRepository) FindDetail(ctx context.Context, id string) (*UserDetail, error) {
	db := r.db.WithContext(ctx)

	var detail UserDetail
	if err := db.Select(userProfileColumns).Where("id = ?", id).First(&detail.User).Error; err != nil {
		return nil, err
	}

	err := db.Model(&models.Project{}).
		Select("projects.id", "projects.title", "projects.progress").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", id).
		Order("projects.created_at DESC").
		Find(&detail.Projects).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Task{}).
		Select("tasks.id", "tasks.title", "tasks.status", "tasks.priority").
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
		Where("task_assignments.user_id = ?", id).
		Order("tasks.created_at DESC").
		Find(&detail.Tasks).Error
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// Delete removes the user in one transaction. Join rows are detached; the
// user's own attendance, requests and kudos go with them, as do the meetings
// they organized and the invoices they created.
func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model any
			where string
			args  []any
		}{
			{&models.ProjectMember{}, "user_id = ?", []any{id}},
			{&models.TaskAssignment{}, "user_id = ?", []any{id}},
			{&models.MeetingAttendee{}, "user_id = ?", []any{id}},
			{&models.MeetingAttendee{}, "meeting_id IN (?)", []any{tx.Model(&models.Meeting{}).Select("id").Where("organizer_id = ?", id)}},
			{&models.Meeting{}, "organizer_id = ?", []any{id}},
			{&models.InvoiceItem{}, "invoice_id IN (?)", []any{tx.Model(&models.Invoice{}).Select("id").Where("creator_id = ?", id)}},
			{&models.Invoice{}, "creator_id = ?", []any{id}},
			{&models.Attendance{}, "user_id = ?", []any{id}},
			{&models.Leave{}, "user_id = ?", []any{id}},
			{&models.Expense{}, "user_id = ?", []any{id}},
			{&models.Kudos{}, "from_user_id = ? OR to_user_id = ?", []any{id, id}},
		}
		for _, s := range steps {
			if err := tx.Where(s.where, s.args...).Delete(s.model).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormUserRepository) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// preloadUserSummary restricts a Preload of a user relation to summary columns.
var preloadUserSummary = database.SelectColumns(userSummaryColumns...)
