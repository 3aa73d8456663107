package repository

import (
	"context"

	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository is a GORM implementation of InvoiceRepository
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func preloadInvoiceRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items").
		Preload("Creator", preloadUserSummary)
}

// Create inserts the invoice and its items in one transaction.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := invoice.Items
		if err := tx.Omit(clause.Associations).Create(invoice).Error; err != nil {
			return err
		}
		return insertItems(tx, invoice.ID, items)
	})
}

func insertItems(tx *gorm.DB, invoiceID string, items []models.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = ""
		items[i].InvoiceID = invoiceID
	}
	return tx.Create(&items).Error
}

func (r *GormInvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Scopes(preloadInvoiceRelations).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *GormInvoiceRepository) FindByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Scopes(preloadInvoiceRelations).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice, items *[]models.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(invoice).Error; err != nil {
			return err
		}
		if items == nil {
			return nil
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return insertItems(tx, invoice.ID, *items)
	})
}

func (r *GormInvoiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
