package dto

import (
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
)

type ProjectDTO struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Progress  int              `json:"progress"`
	IsPublic  bool             `json:"isPublic"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Members   []UserSummaryDTO `json:"members"`
	TaskCount *int64           `json:"taskCount,omitempty"`
}

type ProjectTaskDTO struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Status    models.TaskStatus `json:"status"`
	Priority  models.Priority   `json:"priority"`
	Assignees []UserSummaryDTO  `json:"assignees"`
}

type ProjectDetailDTO struct {
	ProjectDTO
	Tasks []ProjectTaskDTO `json:"tasks"`
}

func memberUsers(members []models.ProjectMember) []models.User {
	users := make([]models.User, len(members))
	for i, m := range members {
		users[i] = m.User
	}
	return users
}

func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:        project.ID,
		Title:     project.Title,
		Progress:  project.Progress,
		IsPublic:  project.IsPublic,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
		Members:   toUserSummaries(memberUsers(project.Members)),
	}
}

// ToProjectListItemDTO adds the task count shown on project cards.
func ToProjectListItemDTO(project models.Project, taskCount int64) ProjectDTO {
	out := ToProjectDTO(project)
	out.TaskCount = &taskCount
	return out
}

func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	detail := ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Tasks:      make([]ProjectTaskDTO, len(project.Tasks)),
	}
	for i, t := range project.Tasks {
		detail.Tasks[i] = ProjectTaskDTO{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			Assignees: toUserSummaries(assigneeUsers(t.Assignments)),
		}
	}
	return detail
}
