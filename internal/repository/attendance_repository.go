package repository

import (
	"context"
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAttendanceRepository is a GORM implementation of AttendanceRepository
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// Create relies on the (user_id, date) unique index; there is no
// existence check before the insert.
func (r *GormAttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(record).Error; err != nil {
		return err
	}
	return db.Select(userSummaryColumns).Where("id = ?", record.UserID).First(&record.User).Error
}

func (r *GormAttendanceRepository) List(ctx context.Context) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Preload("User", preloadUserSummary).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *GormAttendanceRepository) ListByUser(ctx context.Context, userID string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *GormAttendanceRepository) ListByDate(ctx context.Context, day time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Preload("User", preloadUserSummary).
		Where("date = ?", day).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
