package repository

import (
	"context"

	"github.com/tasknity/tasknity-api/internal/database"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKudosRepository is a GORM implementation of KudosRepository
type GormKudosRepository struct {
	db *gorm.DB
}

// NewKudosRepository creates a new KudosRepository
func NewKudosRepository(db *gorm.DB) KudosRepository {
	return &GormKudosRepository{db: db}
}

func preloadKudosUsers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("FromUser", preloadUserSummary).
		Preload("ToUser", preloadUserSummary)
}

func (r *GormKudosRepository) Create(ctx context.Context, kudos *models.Kudos) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(kudos).Error
}

func (r *GormKudosRepository) FindByID(ctx context.Context, id string) (*models.Kudos, error) {
	var kudos models.Kudos
	err := r.db.WithContext(ctx).
		Scopes(preloadKudosUsers).
		Where("id = ?", id).
		First(&kudos).Error
	if err != nil {
		return nil, err
	}
	return &kudos, nil
}

func (r *GormKudosRepository) ListRecent(ctx context.Context, page utils.PaginationParams) ([]models.Kudos, error) {
	var kudos []models.Kudos
	err := r.db.WithContext(ctx).
		Scopes(preloadKudosUsers, database.Paginate(page)).
		Order("created_at DESC").
		Find(&kudos).Error
	return kudos, err
}

func (r *GormKudosRepository) ListByUser(ctx context.Context, userID string) ([]models.Kudos, error) {
	var kudos []models.Kudos
	err := r.db.WithContext(ctx).
		Scopes(preloadKudosUsers).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&kudos).Error
	return kudos, err
}

// Leaderboard ranks users by kudos received. Users with no kudos are
// included with a zero count when fewer than limit users have any.
func (r *GormKudosRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.name, users.email, users.team, COUNT(kudos.id) AS kudos_count").
		Joins("LEFT JOIN kudos ON kudos.to_user_id = users.id").
		Group("users.id, users.name, users.email, users.team").
		Order("kudos_count DESC, users.name ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
