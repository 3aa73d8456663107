package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tasknity/tasknity-api/internal/auth"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

type CreateProjectInput struct {
	Title     string
	IsPublic  *bool
	MemberIDs []string
}

type UpdateProjectInput struct {
	Title     *string
	Progress  *int
	IsPublic  *bool
	MemberIDs *[]string
}

// List returns the projects visible to the caller. Owners and admins see
// every project; everyone else sees public projects and the ones they are
// a member of.
func (s *ProjectService) List(ctx context.Context, caller auth.Principal) ([]repository.ProjectListItem, error) {
	filter := repository.ProjectFilter{}
	if !caller.IsStaff() {
		filter.VisibleTo = &caller.UserID
	}

	items, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return items, nil
}

// Get loads a project by id. There is no visibility check here: anyone who
// knows the id can read it.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}
	if err := ensureUsersExist(ctx, s.userRepo, input.MemberIDs); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:    title,
		IsPublic: true,
	}
	if input.IsPublic != nil {
		project.IsPublic = *input.IsPublic
	}

	if err := s.projectRepo.Create(ctx, project, input.MemberIDs); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return s.Get(ctx, project.ID)
}

func (s *ProjectService) Update(ctx context.Context, id string, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		project.Title = title
	}
	if input.Progress != nil {
		if *input.Progress < 0 || *input.Progress > 100 {
			return nil, ErrProgressOutOfRange
		}
		project.Progress = *input.Progress
	}
	if input.IsPublic != nil {
		project.IsPublic = *input.IsPublic
	}
	if input.MemberIDs != nil {
		if err := ensureUsersExist(ctx, s.userRepo, *input.MemberIDs); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.Update(ctx, project, input.MemberIDs); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
