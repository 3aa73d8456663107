package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasknity/tasknity-api/internal/auth"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/rbac"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/utils"
	"gorm.io/gorm"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   string
	Status      string
	Priority    string
	Deadline    *string
	Classified  bool
	IsDraft     bool
	AssigneeIDs []string
}

// UpdateTaskInput represents input for updating a task. Nil fields are left as is.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Deadline    *string
	Classified  *bool
	IsDraft     *bool
	AssigneeIDs *[]string
}

func parseStatus(s string) (models.TaskStatus, error) {
	switch status := models.TaskStatus(strings.ToUpper(s)); status {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
		return status, nil
	}
	return "", ErrInvalidStatus
}

func parsePriority(s string) (models.Priority, error) {
	switch priority := models.Priority(strings.ToUpper(s)); priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return priority, nil
	}
	return "", ErrInvalidPriority
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(*s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// ListBoard returns the default task board: never classified, never drafts,
// whatever the caller's role.
func (s *TaskService) ListBoard(ctx context.Context, projectID *string) ([]models.Task, error) {
	classified := false
	return s.list(ctx, repository.TaskFilter{ProjectID: projectID, Classified: &classified})
}

// ListClassified returns only classified tasks, drafts included.
func (s *TaskService) ListClassified(ctx context.Context) ([]models.Task, error) {
	classified := true
	return s.list(ctx, repository.TaskFilter{Classified: &classified, IncludeDrafts: true})
}

// ListByProject returns every task of a project, drafts included. Classified
// tasks are only included for callers allowed to see them.
func (s *TaskService) ListByProject(ctx context.Context, caller auth.Principal, projectID string) ([]models.Task, error) {
	filter := repository.TaskFilter{ProjectID: &projectID, IncludeDrafts: true}
	if !rbac.Can(caller.Role, rbac.ViewClassified) {
		classified := false
		filter.Classified = &classified
	}
	return s.list(ctx, filter)
}

func (s *TaskService) list(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task. A classified task looks missing to callers who may
// not see classified work.
func (s *TaskService) Get(ctx context.Context, caller auth.Principal, id string) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Classified && !rbac.Can(caller.Role, rbac.ViewClassified) {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) find(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Create creates a new task in an existing project
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		Status:      models.TaskStatusTodo,
		Priority:    models.PriorityMedium,
		Classified:  input.Classified,
		IsDraft:     input.IsDraft,
	}

	var err error
	if input.Status != "" {
		if task.Status, err = parseStatus(input.Status); err != nil {
			return nil, err
		}
	}
	if input.Priority != "" {
		if task.Priority, err = parsePriority(input.Priority); err != nil {
			return nil, err
		}
	}
	if task.Deadline, err = parseOptionalDate(input.Deadline); err != nil {
		return nil, err
	}

	exists, err := s.projectRepo.Exists(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return nil, ErrProjectNotFound
	}
	if err := ensureUsersExist(ctx, s.userRepo, input.AssigneeIDs); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task, input.AssigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.find(ctx, task.ID)
}

// Update updates an existing task
func (s *TaskService) Update(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if task.Status, err = parseStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Priority != nil {
		if task.Priority, err = parsePriority(*input.Priority); err != nil {
			return nil, err
		}
	}
	if input.Deadline != nil {
		if task.Deadline, err = parseOptionalDate(input.Deadline); err != nil {
			return nil, err
		}
	}
	if input.Classified != nil {
		task.Classified = *input.Classified
	}
	if input.IsDraft != nil {
		task.IsDraft = *input.IsDraft
	}
	if input.AssigneeIDs != nil {
		if err := ensureUsersExist(ctx, s.userRepo, *input.AssigneeIDs); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(ctx, task, input.AssigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.find(ctx, id)
}

// Delete deletes a task
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
