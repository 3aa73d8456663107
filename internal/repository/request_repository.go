package repository

import (
	"context"
	"errors"

	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRequestNotPending is returned by Decide when the leave or expense has
// already been approved or rejected.
var ErrRequestNotPending = errors.New("request is not pending")

// decide flips status from PENDING in a single conditional UPDATE, so two
// concurrent decisions cannot both succeed.
func decide(ctx context.Context, db *gorm.DB, model any, id string, status models.RequestStatus) error {
	result := db.WithContext(ctx).Model(model).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrRequestNotPending
}

// GormLeaveRepository is a GORM implementation of LeaveRepository
type GormLeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &GormLeaveRepository{db: db}
}

func (r *GormLeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(leave).Error
}

func (r *GormLeaveRepository) FindByID(ctx context.Context, id string) (*models.Leave, error) {
	var leave models.Leave
	err := r.db.WithContext(ctx).
		Preload("User", preloadUserSummary).
		Where("id = ?", id).
		First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *GormLeaveRepository) List(ctx context.Context) ([]models.Leave, error) {
	var leaves []models.Leave
	err := r.db.WithContext(ctx).
		Preload("User", preloadUserSummary).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *GormLeaveRepository) ListByUser(ctx context.Context, userID string) ([]models.Leave, error) {
	var leaves []models.Leave
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *GormLeaveRepository) Decide(ctx context.Context, id string, status models.RequestStatus) (*models.Leave, error) {
	if err := decide(ctx, r.db, &models.Leave{}, id, status); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// GormExpenseRepository is a GORM implementation of ExpenseRepository
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(expense).Error
}

func (r *GormExpenseRepository) FindByID(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Preload("User", preloadUserSummary).
		Where("id = ?", id).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *GormExpenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Preload("User", preloadUserSummary).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *GormExpenseRepository) ListByUser(ctx context.Context, userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *GormExpenseRepository) Decide(ctx context.Context, id string, status models.RequestStatus) (*models.Expense, error) {
	if err := decide(ctx, r.db, &models.Expense{}, id, status); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
