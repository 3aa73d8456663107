package models

import (
	"time"

	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
)

// Attendance is one mark per user per calendar day. Date is always midnight UTC.
type Attendance struct {
	ID        string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_attendance_user_date" json:"userId"`
	Date      time.Time        `gorm:"not null;uniqueIndex:idx_attendance_user_date;index" json:"date"`
	Status    AttendanceStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time        `json:"createdAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}
