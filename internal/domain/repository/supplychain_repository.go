package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error
	List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error)
}

// ProductSupplierRepository defines the interface for item-supplier links
type ProductSupplierRepository interface {
	Create(ctx context.Context, link *entity.ProductSupplier) error
	GetByProductAndSupplier(ctx context.Context, scope entity.Scope, productID, supplierID uuid.UUID) (*entity.ProductSupplier, error)
	ListByProduct(ctx context.Context, scope entity.Scope, productID uuid.UUID) ([]entity.ProductSupplier, error)
	Update(ctx context.Context, link *entity.ProductSupplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplyRequestRepository defines the interface for branch stock requests
type SupplyRequestRepository interface {
	Create(ctx context.Context, request *entity.SupplyRequest) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.SupplyRequest, error)
	Update(ctx context.Context, request *entity.SupplyRequest) error
	List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, status string) ([]entity.SupplyRequest, int64, error)
}

// PurchaseOrderRepository defines the interface for purchase order data
// operations
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetWithItems(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, status string) ([]entity.PurchaseOrder, int64, error)

	CreateItems(ctx context.Context, items []entity.PurchaseOrderItem) error
	GetItemByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrderItem, error)
	UpdateItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	ListItems(ctx context.Context, purchaseOrderID uuid.UUID) ([]entity.PurchaseOrderItem, error)
}
