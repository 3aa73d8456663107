package models

import (
	"time"

	"gorm.io/gorm"
)

// RequestStatus is the approval state shared by leave and expense requests.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

type Leave struct {
	ID        string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string        `gorm:"type:varchar(36);not null;index" json:"userId"`
	Reason    string        `gorm:"type:text;not null" json:"reason"`
	Date      time.Time     `gorm:"not null" json:"date"`
	Status    RequestStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (l *Leave) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}

type Expense struct {
	ID        string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string        `gorm:"type:varchar(36);not null;index" json:"userId"`
	Title     string        `gorm:"type:varchar(255);not null" json:"title"`
	Category  string        `gorm:"type:varchar(100);not null" json:"category"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Date      time.Time     `gorm:"not null" json:"date"`
	Status    RequestStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}
