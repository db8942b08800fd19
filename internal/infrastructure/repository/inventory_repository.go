package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return conn(ctx, r.db).Create(item).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Preload("Category").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) GetByBarcode(ctx context.Context, scope entity.Scope, barcode string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		First(&item, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return conn(ctx, r.db).Save(item).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error {
	return conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Delete(&entity.InventoryItem{}, "id = ?", id).Error
}

func (r *inventoryRepository) List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := conn(ctx, r.db).Model(&entity.InventoryItem{}).Scopes(Scoped(scope))
	if search != "" {
		query = query.Where("name LIKE ? OR barcode LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Category").
		Order("name ASC").
		Find(&items).Error

	return items, total, err
}

// AdjustQuantity applies the delta in one conditional UPDATE so concurrent
// sales cannot drive the quantity negative. RowsAffected of zero means the
// guard rejected the adjustment (or the item does not exist in scope).
func (r *inventoryRepository) AdjustQuantity(ctx context.Context, scope entity.Scope, id uuid.UUID, delta int) (bool, error) {
	query := conn(ctx, r.db).Model(&entity.InventoryItem{}).
		Scopes(Scoped(scope)).
		Where("id = ?", id)
	if delta < 0 {
		query = query.Where("quantity >= ?", -delta)
	}
	res := query.Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return conn(ctx, r.db).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return conn(ctx, r.db).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error {
	return conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, scope entity.Scope) ([]entity.Category, error) {
	var categories []entity.Category
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

type inventoryLogRepository struct {
	db *gorm.DB
}

// NewInventoryLogRepository creates a new inventory log repository
func NewInventoryLogRepository(db *gorm.DB) domainRepo.InventoryLogRepository {
	return &inventoryLogRepository{db: db}
}

func (r *inventoryLogRepository) Create(ctx context.Context, log *entity.InventoryLog) error {
	return conn(ctx, r.db).Create(log).Error
}

func (r *inventoryLogRepository) ListByItem(ctx context.Context, scope entity.Scope, itemID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error) {
	var logs []entity.InventoryLog
	var total int64

	query := conn(ctx, r.db).Model(&entity.InventoryLog{}).
		Scopes(Scoped(scope)).
		Where("item_id = ?", itemID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&logs).Error

	return logs, total, err
}
