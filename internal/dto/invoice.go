package dto

import (
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
)

type InvoiceItemDTO struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

type InvoiceDTO struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoiceNumber"`
	ClientName    string               `json:"clientName"`
	ClientEmail   string               `json:"clientEmail"`
	ClientAddress string               `json:"clientAddress"`
	IssueDate     time.Time            `json:"issueDate"`
	DueDate       time.Time            `json:"dueDate"`
	Status        models.InvoiceStatus `json:"status"`
	SubTotal      float64              `json:"subTotal"`
	TaxRate       float64              `json:"taxRate"`
	TaxAmount     float64              `json:"taxAmount"`
	Discount      float64              `json:"discount"`
	TotalAmount   float64              `json:"totalAmount"`
	Notes         string               `json:"notes"`
	CreatorID     string               `json:"creatorId"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	Creator       *UserSummaryDTO      `json:"creator,omitempty"`
	Items         []InvoiceItemDTO     `json:"items"`
}

func ToInvoiceDTO(inv models.Invoice) InvoiceDTO {
	out := InvoiceDTO{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		ClientAddress: inv.ClientAddress,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		SubTotal:      inv.SubTotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Discount:      inv.Discount,
		TotalAmount:   inv.TotalAmount,
		Notes:         inv.Notes,
		CreatorID:     inv.CreatorID,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Creator:       ToUserSummaryDTO(inv.Creator),
		Items:         make([]InvoiceItemDTO, len(inv.Items)),
	}
	for i, item := range inv.Items {
		out.Items[i] = InvoiceItemDTO{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return out
}

func ToInvoiceDTOs(invoices []models.Invoice) []InvoiceDTO {
	out := make([]InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		out[i] = ToInvoiceDTO(inv)
	}
	return out
}
