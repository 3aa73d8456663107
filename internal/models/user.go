package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Role      Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Team      string    `gorm:"type:varchar(100)" json:"team,omitempty"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address   string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	JoinedAt  time.Time `json:"joinedAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	ProjectMemberships []ProjectMember   `gorm:"foreignKey:UserID" json:"-"`
	TaskAssignments    []TaskAssignment  `gorm:"foreignKey:UserID" json:"-"`
	MeetingAttendances []MeetingAttendee `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now()
	}
	return nil
}
