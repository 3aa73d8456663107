package dto

import (
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Priority    models.Priority   `json:"priority"`
	Deadline    *time.Time        `json:"deadline"`
	ProjectID   string            `json:"projectId"`
	Classified  bool              `json:"classified"`
	IsDraft     bool              `json:"isDraft"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Project     *ProjectRefDTO    `json:"project,omitempty"`
	Assignees   []UserSummaryDTO  `json:"assignees"`
}

func assigneeUsers(assignments []models.TaskAssignment) []models.User {
	users := make([]models.User, len(assignments))
	for i, a := range assignments {
		users[i] = a.User
	}
	return users
}

func ToTaskDTO(task models.Task) TaskDTO {
	out := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Deadline:    task.Deadline,
		ProjectID:   task.ProjectID,
		Classified:  task.Classified,
		IsDraft:     task.IsDraft,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Assignees:   toUserSummaries(assigneeUsers(task.Assignments)),
	}

	// Include project if preloaded
	if task.Project.ID != "" {
		out.Project = &ProjectRefDTO{
			ID:       task.Project.ID,
			Title:    task.Project.Title,
			Progress: task.Project.Progress,
		}
	}

	return out
}

func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}
