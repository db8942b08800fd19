package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// InventoryService owns stock mutations. Quantity moves only through signed
// adjustments guarded against underflow at the database level.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	logRepo       repository.InventoryLogRepository
	categoryRepo  repository.CategoryRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	logRepo repository.InventoryLogRepository,
	categoryRepo repository.CategoryRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		logRepo:       logRepo,
		categoryRepo:  categoryRepo,
	}
}

// Adjust applies a signed quantity delta to a stock item. Negative deltas
// that would underflow fail with InsufficientStock and change nothing. A
// failed audit log write is logged and swallowed rather than returned, but
// when Adjust runs inside an enclosing transaction the failed insert still
// poisons that transaction, so the adjustment only survives a log failure
// for standalone calls.
func (s *InventoryService) Adjust(ctx context.Context, scope entity.Scope, itemID uuid.UUID, delta int, actionedBy *uuid.UUID) (*entity.InventoryItem, error) {
	if delta == 0 {
		return nil, apperror.NewBadRequestError("Adjustment delta must be non-zero")
	}

	ok, err := s.inventoryRepo.AdjustQuantity(ctx, scope, itemID, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		item, err := s.inventoryRepo.GetByID(ctx, scope, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperror.NewNotFoundError("Inventory item")
		}
		return nil, apperror.NewInsufficientStock(
			fmt.Sprintf("Insufficient stock for %s: have %d, requested %d", item.Name, item.Quantity, -delta))
	}

	action := enum.StockActionAdd
	quantity := delta
	if delta < 0 {
		action = enum.StockActionRemove
		quantity = -delta
	}
	logEntry := &entity.InventoryLog{
		BusinessID: scope.BusinessID,
		BranchID:   scope.BranchID,
		ItemID:     itemID,
		Action:     action,
		Quantity:   quantity,
		ActionedBy: actionedBy,
	}
	if err := s.logRepo.Create(ctx, logEntry); err != nil {
		log.Printf("Warning: failed to write inventory log for item %s: %v", itemID, err)
	}

	return s.inventoryRepo.GetByID(ctx, scope, itemID)
}

// RestockOrSell resolves a stock action to a signed delta and applies it
func (s *InventoryService) RestockOrSell(ctx context.Context, scope entity.Scope, itemID uuid.UUID, action enum.StockAction, quantity int, actionedBy *uuid.UUID) (*entity.InventoryItem, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}
	return s.Adjust(ctx, scope, itemID, action.Delta(quantity), actionedBy)
}

// CreateItemInput describes a new stock item
type CreateItemInput struct {
	CategoryID   *uuid.UUID
	Barcode      string
	Name         string
	Quantity     int
	BuyingPrice  int64 // cents
	SellingPrice int64 // cents
}

// CreateItem creates a stock item
func (s *InventoryService) CreateItem(ctx context.Context, scope entity.Scope, input *CreateItemInput) (*entity.InventoryItem, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, scope, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	item := &entity.InventoryItem{
		BusinessID:   scope.BusinessID,
		BranchID:     scope.BranchID,
		CategoryID:   input.CategoryID,
		Barcode:      input.Barcode,
		Name:         input.Name,
		Quantity:     input.Quantity,
		BuyingPrice:  input.BuyingPrice,
		SellingPrice: input.SellingPrice,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem returns one stock item
func (s *InventoryService) GetItem(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}
	return item, nil
}

// ListItems returns stock items for the scope
func (s *InventoryService) ListItems(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.InventoryItem, int64, error) {
	return s.inventoryRepo.List(ctx, scope, params, search)
}

// ListLogs returns the stock movement audit trail for an item
func (s *InventoryService) ListLogs(ctx context.Context, scope entity.Scope, itemID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error) {
	return s.logRepo.ListByItem(ctx, scope, itemID, params)
}

// CreateCategory creates an item category
func (s *InventoryService) CreateCategory(ctx context.Context, scope entity.Scope, name string) (*entity.Category, error) {
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}
	category := &entity.Category{BusinessID: scope.BusinessID, Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns categories for the scope
func (s *InventoryService) ListCategories(ctx context.Context, scope entity.Scope) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx, scope)
}
