package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/domain"
	"gorm.io/gorm"
)

// InvoiceFilters holds the optional list filters for invoices
type InvoiceFilters struct {
	ClientID       *uuid.UUID
	Status         *domain.InvoiceStatus
	IssuingCompany *domain.IssuingCompany
}

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts the invoice together with its items
func (r *InvoiceRepository) Create(ctx context.Context, tx *gorm.DB, invoice *domain.Invoice) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Omit("Client").Create(invoice).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber returns every invoice that carries number, oldest first
func (r *InvoiceRepository) FindByNumber(ctx context.Context, number string) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("invoice_number = ?", number).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) List(ctx context.Context, page, pageSize int, filters *InvoiceFilters) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Invoice{})

	if filters != nil {
		if filters.ClientID != nil {
			query = query.Where("client_id = ?", *filters.ClientID)
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.IssuingCompany != nil {
			query = query.Where("issuing_company = ?", *filters.IssuingCompany)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Offset(offset).Limit(pageSize).
		Order("invoice_date DESC").
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}
