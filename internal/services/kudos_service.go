package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/utils"
	"gorm.io/gorm"
)

type KudosService struct {
	kudosRepo repository.KudosRepository
	userRepo  repository.UserRepository
}

func NewKudosService(kudosRepo repository.KudosRepository, userRepo repository.UserRepository) *KudosService {
	return &KudosService{
		kudosRepo: kudosRepo,
		userRepo:  userRepo,
	}
}

type GiveKudosInput struct {
	FromUserID string
	ToUserID   string
	Message    string
	Emoji      string
}

func (s *KudosService) Give(ctx context.Context, input GiveKudosInput) (*models.Kudos, error) {
	if input.FromUserID == input.ToUserID {
		return nil, ErrSelfKudos
	}
	if _, err := s.userRepo.FindByID(ctx, input.ToUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}

	emoji := strings.TrimSpace(input.Emoji)
	if emoji == "" {
		emoji = constants.DefaultKudosEmoji
	}

	kudos := &models.Kudos{
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		Message:    strings.TrimSpace(input.Message),
		Emoji:      emoji,
	}
	if err := s.kudosRepo.Create(ctx, kudos); err != nil {
		return nil, fmt.Errorf("failed to give kudos: %w", err)
	}
	return s.kudosRepo.FindByID(ctx, kudos.ID)
}

// Recent returns one page of the kudos feed, newest first.
func (s *KudosService) Recent(ctx context.Context, page utils.PaginationParams) ([]models.Kudos, error) {
	kudos, err := s.kudosRepo.ListRecent(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list kudos: %w", err)
	}
	return kudos, nil
}

func (s *KudosService) ForUser(ctx context.Context, userID string) ([]models.Kudos, error) {
	kudos, err := s.kudosRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list kudos: %w", err)
	}
	return kudos, nil
}

func (s *KudosService) Leaderboard(ctx context.Context) ([]repository.LeaderboardEntry, error) {
	entries, err := s.kudosRepo.Leaderboard(ctx, constants.LeaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	return entries, nil
}
