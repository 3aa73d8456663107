package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"gorm.io/gorm"
)

// UserService manages team member profiles.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput holds optional profile changes. Nil fields are left as is.
type UpdateUserInput struct {
	Name    *string
	Team    *string
	Phone   *string
	Address *string
	Role    *string
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*repository.UserDetail, error) {
	detail, err := s.userRepo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return detail, nil
}

// Update applies input to the user. A role change does not affect tokens
// that were already issued.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < constants.MinNameLength {
			return nil, ErrNameTooShort
		}
		user.Name = name
	}
	if input.Team != nil {
		user.Team = strings.TrimSpace(*input.Team)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}
	if input.Role != nil {
		role, ok := models.ParseRole(*input.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ensureUsersExist fails with ErrUnknownUsers unless every id names a user.
func ensureUsersExist(ctx context.Context, users repository.UserRepository, ids []string) error {
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return nil
	}

	keys := make([]string, 0, len(unique))
	for id := range unique {
		keys = append(keys, id)
	}

	count, err := users.CountByIDs(ctx, keys)
	if err != nil {
		return fmt.Errorf("failed to validate users: %w", err)
	}
	if count != int64(len(keys)) {
		return ErrUnknownUsers
	}
	return nil
}
