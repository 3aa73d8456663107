package models

import (
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

type Invoice struct {
	ID            string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"invoiceNumber"`
	ClientName    string        `gorm:"type:varchar(255);not null" json:"clientName"`
	ClientEmail   string        `gorm:"type:varchar(255);not null" json:"clientEmail"`
	ClientAddress string        `gorm:"type:varchar(255)" json:"clientAddress"`
	IssueDate     time.Time     `gorm:"not null" json:"issueDate"`
	DueDate       time.Time     `gorm:"not null" json:"dueDate"`
	Status        InvoiceStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	SubTotal      float64       `gorm:"not null" json:"subTotal"`
	TaxRate       float64       `gorm:"not null" json:"taxRate"`
	TaxAmount     float64       `gorm:"not null" json:"taxAmount"`
	Discount      float64       `gorm:"not null" json:"discount"`
	TotalAmount   float64       `gorm:"not null" json:"totalAmount"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatorID     string        `gorm:"type:varchar(36);not null;index" json:"creatorId"`
	CreatedAt     time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	// Relations
	Creator User          `gorm:"foreignKey:CreatorID" json:"-"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

type InvoiceItem struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvoiceID   string  `gorm:"type:varchar(36);not null;index" json:"invoiceId"`
	Description string  `gorm:"type:varchar(255);not null" json:"description"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unitPrice"`
	Amount      float64 `gorm:"not null" json:"amount"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}
