package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Order, error)
	GetByIDForUpdate(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, scope entity.Scope, orderNumber string) (*entity.Order, error)
	GetWithItems(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error
	List(ctx context.Context, scope entity.Scope, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	OrderType  *enum.OrderType
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderItemRepository defines the interface for order line data operations
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	Update(ctx context.Context, item *entity.OrderItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
