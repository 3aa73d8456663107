package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Progress  int       `gorm:"not null" json:"progress"`
	IsPublic  bool      `gorm:"not null;index" json:"isPublic"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// ProjectMember links a user to a project they belong to.
type ProjectMember struct {
	ProjectID string    `gorm:"type:varchar(36);primaryKey" json:"projectId"`
	UserID    string    `gorm:"type:varchar(36);primaryKey;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
