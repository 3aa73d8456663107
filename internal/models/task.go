package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type Task struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	Priority    Priority   `gorm:"type:varchar(20);not null" json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	ProjectID   string     `gorm:"type:varchar(36);not null;index" json:"projectId"`
	Classified  bool       `gorm:"not null" json:"classified"`
	IsDraft     bool       `gorm:"not null" json:"isDraft"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Project     Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}
