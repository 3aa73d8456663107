package models

import "time"

type TaskAssignment struct {
	TaskID    string    `gorm:"type:varchar(36);primaryKey" json:"taskId"`
	UserID    string    `gorm:"type:varchar(36);primaryKey;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
