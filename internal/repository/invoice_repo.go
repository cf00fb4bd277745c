package repository

import (
	"context"

	"accounting/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceListFilter narrows List. Zero values mean "no filter".
type InvoiceListFilter struct {
	Status   string
	DocType  string
	IssuedBy *uuid.UUID
	Page     int
	Limit    int
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	CreateItems(ctx context.Context, items []model.InvoiceItem) error
	FindByID(ctx context.Context, id uint64) (*model.Invoice, error)
	FindByIDWithItems(ctx context.Context, id uint64) (*model.Invoice, error)
	FindByIDForUpdate(ctx context.Context, id uint64) (*model.Invoice, error)
	List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	DeleteItems(ctx context.Context, invoiceID uint64) error
	Delete(ctx context.Context, id uint64) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create inserts the header only; lines go through CreateItems.
func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Omit("Items", "Issuer").Create(invoice).Error
}

func (r *invoiceRepository) CreateItems(ctx context.Context, items []model.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&items).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uint64) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByIDWithItems(ctx context.Context, id uint64) (*model.Invoice, error) {
	var invoice model.Invoice
	err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("item_no ASC") }).
		Preload("Issuer").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate row-locks the header until the surrounding transaction ends.
func (r *invoiceRepository) FindByIDForUpdate(ctx context.Context, id uint64) (*model.Invoice, error) {
	if !InTx(ctx) {
		return nil, ErrNoTransaction
	}
	var invoice model.Invoice
	err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.DocType != "" {
			q = q.Where("doc_type = ?", filter.DocType)
		}
		if filter.IssuedBy != nil {
			q = q.Where("issued_by = ?", *filter.IssuedBy)
		}
		return q
	}

	if err := db.Model(&model.Invoice{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := db.Scopes(scope).Preload("Issuer").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// Update saves header columns; the line set is replaced separately.
func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Omit("Items", "Issuer").Save(invoice).Error
}

func (r *invoiceRepository) DeleteItems(ctx context.Context, invoiceID uint64) error {
	return GetDB(ctx, r.db).Where("invoice_id = ?", invoiceID).Delete(&model.InvoiceItem{}).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uint64) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Invoice{}).Error
}
