package models

import (
	"time"

	"gorm.io/gorm"
)

type Kudos struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FromUserID string    `gorm:"type:varchar(36);not null;index" json:"fromUserId"`
	ToUserID   string    `gorm:"type:varchar(36);not null;index" json:"toUserId"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Emoji      string    `gorm:"type:varchar(16);not null" json:"emoji"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`

	// Relations
	FromUser User `gorm:"foreignKey:FromUserID" json:"-"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"-"`
}

func (Kudos) TableName() string {
	return "kudos"
}

func (k *Kudos) BeforeCreate(tx *gorm.DB) error {
	assignID(&k.ID)
	return nil
}
