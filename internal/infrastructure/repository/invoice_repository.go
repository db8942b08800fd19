package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(Scoped(scope)).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByInvoiceNumber(ctx context.Context, scope entity.Scope, invoiceNumber string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		First(&invoice, "invoice_number = ?", invoiceNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Preload("Items").
		Preload("Items.InventoryItem").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error {
	return conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, scope entity.Scope, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := conn(ctx, r.db).Model(&entity.Invoice{}).Scopes(Scoped(scope))

	if params.Search != "" {
		query = query.Where("invoice_number LIKE ? OR customer_name LIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.DueBefore != nil {
		query = query.Where("due_date <= ?", *params.DueBefore)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

type invoiceItemRepository struct {
	db *gorm.DB
}

// NewInvoiceItemRepository creates a new invoice item repository
func NewInvoiceItemRepository(db *gorm.DB) domainRepo.InvoiceItemRepository {
	return &invoiceItemRepository{db: db}
}

func (r *invoiceItemRepository) CreateBatch(ctx context.Context, items []entity.InvoiceItem) error {
	return conn(ctx, r.db).Create(&items).Error
}

func (r *invoiceItemRepository) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error) {
	var items []entity.InvoiceItem
	err := conn(ctx, r.db).
		Preload("InventoryItem").
		Where("invoice_id = ?", invoiceID).
		Find(&items).Error
	return items, err
}

type supplierInvoiceRepository struct {
	db *gorm.DB
}

// NewSupplierInvoiceRepository creates a new supplier invoice repository
func NewSupplierInvoiceRepository(db *gorm.DB) domainRepo.SupplierInvoiceRepository {
	return &supplierInvoiceRepository{db: db}
}

func (r *supplierInvoiceRepository) Create(ctx context.Context, invoice *entity.SupplierInvoice) error {
	return conn(ctx, r.db).Create(invoice).Error
}

func (r *supplierInvoiceRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.SupplierInvoice, error) {
	var invoice entity.SupplierInvoice
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Preload("Supplier").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *supplierInvoiceRepository) GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.SupplierInvoice, error) {
	var invoice entity.SupplierInvoice
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(Scoped(scope)).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *supplierInvoiceRepository) Update(ctx context.Context, invoice *entity.SupplierInvoice) error {
	return conn(ctx, r.db).Save(invoice).Error
}

func (r *supplierInvoiceRepository) List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, supplierID *uuid.UUID) ([]entity.SupplierInvoice, int64, error) {
	var invoices []entity.SupplierInvoice
	var total int64

	query := conn(ctx, r.db).Model(&entity.SupplierInvoice{}).Scopes(Scoped(scope))
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Supplier").
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}
