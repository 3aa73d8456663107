package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/utils"
	"gorm.io/gorm"
)

type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

type InvoiceItemInput struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	// Amount defaults to Quantity * UnitPrice when zero.
	Amount float64
}

type CreateInvoiceInput struct {
	CreatorID     string
	InvoiceNumber string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	IssueDate     string
	DueDate       string
	Status        string
	SubTotal      float64
	TaxRate       float64
	TaxAmount     float64
	Discount      float64
	TotalAmount   float64
	Notes         string
	Items         []InvoiceItemInput
}

type UpdateInvoiceInput struct {
	InvoiceNumber *string
	ClientName    *string
	ClientEmail   *string
	ClientAddress *string
	IssueDate     *string
	DueDate       *string
	Status        *string
	SubTotal      *float64
	TaxRate       *float64
	TaxAmount     *float64
	Discount      *float64
	TotalAmount   *float64
	Notes         *string
	Items         *[]InvoiceItemInput
}

func parseInvoiceStatus(s string) (models.InvoiceStatus, error) {
	switch status := models.InvoiceStatus(strings.ToUpper(s)); status {
	case models.InvoiceDraft, models.InvoiceSent, models.InvoicePaid, models.InvoiceOverdue, models.InvoiceCancelled:
		return status, nil
	}
	return "", ErrInvalidStatus
}

func toInvoiceItems(in []InvoiceItemInput) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(in))
	for _, it := range in {
		amount := it.Amount
		if amount == 0 {
			amount = it.Quantity * it.UnitPrice
		}
		items = append(items, models.InvoiceItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      amount,
		})
	}
	return items
}

func mapInvoiceWriteError(err error, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrInvoiceNumberTaken
	}
	return fmt.Errorf("failed to %s invoice: %w", action, err)
}

func (s *InvoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	issue, err := parseTime(input.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := parseTime(input.DueDate)
	if err != nil {
		return nil, err
	}

	status := models.InvoiceDraft
	if input.Status != "" {
		if status, err = parseInvoiceStatus(input.Status); err != nil {
			return nil, err
		}
	}

	number := strings.TrimSpace(input.InvoiceNumber)
	if number == "" {
		if number, err = utils.GenerateInvoiceNumber(); err != nil {
			return nil, fmt.Errorf("failed to generate invoice number: %w", err)
		}
	}

	invoice := &models.Invoice{
		InvoiceNumber: number,
		ClientName:    strings.TrimSpace(input.ClientName),
		ClientEmail:   strings.TrimSpace(input.ClientEmail),
		ClientAddress: input.ClientAddress,
		IssueDate:     issue,
		DueDate:       due,
		Status:        status,
		SubTotal:      input.SubTotal,
		TaxRate:       input.TaxRate,
		TaxAmount:     input.TaxAmount,
		Discount:      input.Discount,
		TotalAmount:   input.TotalAmount,
		Notes:         input.Notes,
		CreatorID:     input.CreatorID,
		Items:         toInvoiceItems(input.Items),
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, mapInvoiceWriteError(err, "create")
	}
	return s.Get(ctx, invoice.ID)
}

func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return invoice, nil
}

// Update applies the non-nil fields. A non-nil Items replaces every line item.
func (s *InvoiceService) Update(ctx context.Context, id string, input UpdateInvoiceInput) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	if input.InvoiceNumber != nil && strings.TrimSpace(*input.InvoiceNumber) != "" {
		invoice.InvoiceNumber = strings.TrimSpace(*input.InvoiceNumber)
	}
	setString(&invoice.ClientName, input.ClientName)
	setString(&invoice.ClientEmail, input.ClientEmail)
	setString(&invoice.ClientAddress, input.ClientAddress)
	setString(&invoice.Notes, input.Notes)
	setFloat(&invoice.SubTotal, input.SubTotal)
	setFloat(&invoice.TaxRate, input.TaxRate)
	setFloat(&invoice.TaxAmount, input.TaxAmount)
	setFloat(&invoice.Discount, input.Discount)
	setFloat(&invoice.TotalAmount, input.TotalAmount)

	for _, d := range []struct {
		src *string
		dst *time.Time
	}{
		{input.IssueDate, &invoice.IssueDate},
		{input.DueDate, &invoice.DueDate},
	} {
		if d.src == nil {
			continue
		}
		if *d.dst, err = parseTime(*d.src); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if invoice.Status, err = parseInvoiceStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	var items *[]models.InvoiceItem
	if input.Items != nil {
		replaced := toInvoiceItems(*input.Items)
		items = &replaced
	}

	if err := s.invoiceRepo.Update(ctx, invoice, items); err != nil {
		return nil, mapInvoiceWriteError(err, "update")
	}
	return s.Get(ctx, id)
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}
