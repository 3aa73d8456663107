package dto

import (
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
)

// UserDTO represents a user in API responses. It has no password field.
type UserDTO struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	Team      string      `json:"team,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Address   string      `json:"address,omitempty"`
	JoinedAt  time.Time   `json:"joinedAt"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UserSummaryDTO is the user shape nested inside other resources.
type UserSummaryDTO struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email,omitempty"`
	Role  models.Role `json:"role,omitempty"`
	Team  string      `json:"team,omitempty"`
}

type ProjectRefDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Progress int    `json:"progress"`
}

type TaskRefDTO struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Status   models.TaskStatus `json:"status"`
	Priority models.Priority   `json:"priority"`
}

// UserDetailDTO is a user with the projects they belong to and the tasks assigned to them.
type UserDetailDTO struct {
	UserDTO
	Projects []ProjectRefDTO `json:"projects"`
	Tasks    []TaskRefDTO    `json:"tasks"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message     string  `json:"message"`
	User        UserDTO `json:"user"`
	AccessToken string  `json:"accessToken"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Team:      user.Team,
		Phone:     user.Phone,
		Address:   user.Address,
		JoinedAt:  user.JoinedAt,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

// ToUserSummaryDTO returns nil when the relation was not loaded.
func ToUserSummaryDTO(user models.User) *UserSummaryDTO {
	if user.ID == "" {
		return nil
	}
	return &UserSummaryDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Team:  user.Team,
	}
}

func toUserSummaries(users []models.User) []UserSummaryDTO {
	out := make([]UserSummaryDTO, 0, len(users))
	for _, u := range users {
		if s := ToUserSummaryDTO(u); s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func ToUserDetailDTO(user models.User, projects []models.Project, tasks []models.Task) UserDetailDTO {
	detail := UserDetailDTO{
		UserDTO:  ToUserDTO(user),
		Projects: make([]ProjectRefDTO, len(projects)),
		Tasks:    make([]TaskRefDTO, len(tasks)),
	}
	for i, p := range projects {
		detail.Projects[i] = ProjectRefDTO{ID: p.ID, Title: p.Title, Progress: p.Progress}
	}
	for i, t := range tasks {
		detail.Tasks[i] = TaskRefDTO{ID: t.ID, Title: t.Title, Status: t.Status, Priority: t.Priority}
	}
	return detail
}
