package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// InventoryRepository defines the interface for stock item data operations
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.InventoryItem, error)
	GetByBarcode(ctx context.Context, scope entity.Scope, barcode string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error
	List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.InventoryItem, int64, error)

	// AdjustQuantity applies a signed delta to the item's quantity in one
	// conditional statement. A negative delta that would push the quantity
	// below zero affects no rows; the second return value reports whether
	// the adjustment landed.
	AdjustQuantity(ctx context.Context, scope entity.Scope, id uuid.UUID, delta int) (bool, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error
	List(ctx context.Context, scope entity.Scope) ([]entity.Category, error)
}

// InventoryLogRepository defines the interface for stock movement audit rows
type InventoryLogRepository interface {
	Create(ctx context.Context, log *entity.InventoryLog) error
	ListByItem(ctx context.Context, scope entity.Scope, itemID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error)
}
