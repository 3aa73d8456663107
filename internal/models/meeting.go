package models

import (
	"time"

	"gorm.io/gorm"
)

type Meeting struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null;index" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	Link        string    `gorm:"type:varchar(512)" json:"link"`
	OrganizerID string    `gorm:"type:varchar(36);not null;index" json:"organizerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Organizer User              `gorm:"foreignKey:OrganizerID" json:"-"`
	Attendees []MeetingAttendee `gorm:"foreignKey:MeetingID" json:"-"`
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}

type MeetingAttendee struct {
	MeetingID string    `gorm:"type:varchar(36);primaryKey" json:"meetingId"`
	UserID    string    `gorm:"type:varchar(36);primaryKey;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Meeting Meeting `gorm:"foreignKey:MeetingID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}
