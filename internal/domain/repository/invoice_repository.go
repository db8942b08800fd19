package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// InvoiceRepository defines the interface for customer invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Invoice, error)
	GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Invoice, error)
	GetByInvoiceNumber(ctx context.Context, scope entity.Scope, invoiceNumber string) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error
	List(ctx context.Context, scope entity.Scope, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	DueBefore  *time.Time
}

// InvoiceItemRepository defines the interface for invoice line data operations
type InvoiceItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.InvoiceItem) error
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error)
}

// SupplierInvoiceRepository defines the interface for supplier bill data
// operations
type SupplierInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.SupplierInvoice) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.SupplierInvoice, error)
	GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.SupplierInvoice, error)
	Update(ctx context.Context, invoice *entity.SupplierInvoice) error
	List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, supplierID *uuid.UUID) ([]entity.SupplierInvoice, int64, error)
}
