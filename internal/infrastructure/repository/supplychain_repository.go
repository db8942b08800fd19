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

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return conn(ctx, r.db).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return conn(ctx, r.db).Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, scope entity.Scope, id uuid.UUID) error {
	return conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Delete(&entity.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepository) List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := conn(ctx, r.db).Model(&entity.Supplier{}).Scopes(BusinessScoped(scope))
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&suppliers).Error

	return suppliers, total, err
}

type productSupplierRepository struct {
	db *gorm.DB
}

// NewProductSupplierRepository creates a new product-supplier link repository
func NewProductSupplierRepository(db *gorm.DB) domainRepo.ProductSupplierRepository {
	return &productSupplierRepository{db: db}
}

func (r *productSupplierRepository) Create(ctx context.Context, link *entity.ProductSupplier) error {
	return conn(ctx, r.db).Create(link).Error
}

func (r *productSupplierRepository) GetByProductAndSupplier(ctx context.Context, scope entity.Scope, productID, supplierID uuid.UUID) (*entity.ProductSupplier, error) {
	var link entity.ProductSupplier
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Where("product_id = ? AND supplier_id = ?", productID, supplierID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &link, err
}

func (r *productSupplierRepository) ListByProduct(ctx context.Context, scope entity.Scope, productID uuid.UUID) ([]entity.ProductSupplier, error) {
	var links []entity.ProductSupplier
	err := conn(ctx, r.db).
		Scopes(BusinessScoped(scope)).
		Preload("Supplier").
		Where("product_id = ?", productID).
		Find(&links).Error
	return links, err
}

func (r *productSupplierRepository) Update(ctx context.Context, link *entity.ProductSupplier) error {
	return conn(ctx, r.db).Save(link).Error
}

func (r *productSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.ProductSupplier{}, "id = ?", id).Error
}

type supplyRequestRepository struct {
	db *gorm.DB
}

// NewSupplyRequestRepository creates a new supply request repository
func NewSupplyRequestRepository(db *gorm.DB) domainRepo.SupplyRequestRepository {
	return &supplyRequestRepository{db: db}
}

func (r *supplyRequestRepository) Create(ctx context.Context, request *entity.SupplyRequest) error {
	return conn(ctx, r.db).Create(request).Error
}

func (r *supplyRequestRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.SupplyRequest, error) {
	var request entity.SupplyRequest
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Preload("Product").
		First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &request, err
}

func (r *supplyRequestRepository) Update(ctx context.Context, request *entity.SupplyRequest) error {
	return conn(ctx, r.db).Save(request).Error
}

func (r *supplyRequestRepository) List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, status string) ([]entity.SupplyRequest, int64, error) {
	var requests []entity.SupplyRequest
	var total int64

	query := conn(ctx, r.db).Model(&entity.SupplyRequest{}).Scopes(Scoped(scope))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Product").
		Order("created_at DESC").
		Find(&requests).Error

	return requests, total, err
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	return conn(ctx, r.db).Create(order).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Preload("Supplier").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) GetWithItems(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := conn(ctx, r.db).
		Scopes(Scoped(scope)).
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	return conn(ctx, r.db).Save(order).Error
}

func (r *purchaseOrderRepository) List(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, status string) ([]entity.PurchaseOrder, int64, error) {
	var orders []entity.PurchaseOrder
	var total int64

	query := conn(ctx, r.db).Model(&entity.PurchaseOrder{}).Scopes(Scoped(scope))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Supplier").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *purchaseOrderRepository) CreateItems(ctx context.Context, items []entity.PurchaseOrderItem) error {
	return conn(ctx, r.db).Create(&items).Error
}

func (r *purchaseOrderRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrderItem, error) {
	var item entity.PurchaseOrderItem
	err := conn(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *purchaseOrderRepository) UpdateItem(ctx context.Context, item *entity.PurchaseOrderItem) error {
	return conn(ctx, r.db).Save(item).Error
}

func (r *purchaseOrderRepository) ListItems(ctx context.Context, purchaseOrderID uuid.UUID) ([]entity.PurchaseOrderItem, error) {
	var items []entity.PurchaseOrderItem
	err := conn(ctx, r.db).
		Preload("Product").
		Where("purchase_order_id = ?", purchaseOrderID).
		Find(&items).Error
	return items, err
}
