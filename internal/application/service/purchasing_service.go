package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// PurchasingService manages supplier purchase orders. Goods receipts restock
// inventory through the stock adjuster so the audit trail stays intact.
type PurchasingService struct {
	txManager       repository.TxManager
	supplierRepo    repository.SupplierRepository
	linkRepo        repository.ProductSupplierRepository
	requestRepo     repository.SupplyRequestRepository
	poRepo          repository.PurchaseOrderRepository
	supplierInvRepo repository.SupplierInvoiceRepository
	inventoryRepo   repository.InventoryRepository
	inventory       *InventoryService
	clock           Clock
}

// NewPurchasingService creates a new purchasing service
func NewPurchasingService(
	txManager repository.TxManager,
	supplierRepo repository.SupplierRepository,
	linkRepo repository.ProductSupplierRepository,
	requestRepo repository.SupplyRequestRepository,
	poRepo repository.PurchaseOrderRepository,
	supplierInvRepo repository.SupplierInvoiceRepository,
	inventoryRepo repository.InventoryRepository,
	inventory *InventoryService,
	clock Clock,
) *PurchasingService {
	return &PurchasingService{
		txManager:       txManager,
		supplierRepo:    supplierRepo,
		linkRepo:        linkRepo,
		requestRepo:     requestRepo,
		poRepo:          poRepo,
		supplierInvRepo: supplierInvRepo,
		inventoryRepo:   inventoryRepo,
		inventory:       inventory,
		clock:           clock,
	}
}

// CreateSupplier registers a supplier
func (s *PurchasingService) CreateSupplier(ctx context.Context, scope entity.Scope, supplier *entity.Supplier) (*entity.Supplier, error) {
	if supplier.Name == "" {
		return nil, apperror.NewBadRequestError("Supplier name is required")
	}
	supplier.BusinessID = scope.BusinessID
	supplier.BranchID = scope.BranchID
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// ListSuppliers returns suppliers for the scope
func (s *PurchasingService) ListSuppliers(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, scope, params, search)
}

// CreatePurchaseOrder opens a purchase order with a supplier
func (s *PurchasingService) CreatePurchaseOrder(ctx context.Context, scope entity.Scope, supplierID uuid.UUID, expectedDelivery *time.Time) (*entity.PurchaseOrder, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, scope, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	order := &entity.PurchaseOrder{
		BusinessID:           scope.BusinessID,
		BranchID:             scope.BranchID,
		SupplierID:           supplierID,
		OrderDate:            s.clock.Now(),
		ExpectedDeliveryDate: expectedDelivery,
		Status:               "Pending",
	}
	if err := s.poRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddItem appends a line to a purchase order. Unit cost comes from the
// product-supplier link when one exists, otherwise the item's buying price.
func (s *PurchasingService) AddItem(ctx context.Context, scope entity.Scope, purchaseOrderID, productID uuid.UUID, quantity int) (*entity.PurchaseOrder, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}

	var order *entity.PurchaseOrder
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.poRepo.GetByID(ctx, scope, purchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Purchase order")
		}

		product, err := s.inventoryRepo.GetByID(ctx, scope, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Inventory item")
		}

		unitCost := product.BuyingPrice
		link, err := s.linkRepo.GetByProductAndSupplier(ctx, scope, productID, order.SupplierID)
		if err != nil {
			return err
		}
		if link != nil {
			unitCost = link.CostPrice
		}

		line := entity.PurchaseOrderItem{
			BusinessID:      scope.BusinessID,
			PurchaseOrderID: order.ID,
			ProductID:       productID,
			Quantity:        quantity,
			UnitCost:        unitCost,
			ItemTotal:       unitCost * int64(quantity),
			Status:          "Pending",
		}
		if err := s.poRepo.CreateItems(ctx, []entity.PurchaseOrderItem{line}); err != nil {
			return err
		}

		order.TotalAmount += line.ItemTotal
		return s.poRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateItem amends a purchase order line and adjusts the order total
func (s *PurchasingService) UpdateItem(ctx context.Context, scope entity.Scope, purchaseOrderID, itemID uuid.UUID, action enum.ItemUpdateAction, quantity int) (*entity.PurchaseOrder, error) {
	var order *entity.PurchaseOrder
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.poRepo.GetByID(ctx, scope, purchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Purchase order")
		}

		line, err := s.poRepo.GetItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		if line == nil || line.PurchaseOrderID != order.ID {
			return apperror.NewNotFoundError("Purchase order item")
		}

		before := line.ItemTotal
		switch action {
		case enum.ItemUpdateActionIncrease:
			if quantity <= 0 {
				return apperror.NewBadRequestError("Quantity must be positive")
			}
			line.Quantity += quantity
		case enum.ItemUpdateActionDecrease:
			if quantity <= 0 {
				return apperror.NewBadRequestError("Quantity must be positive")
			}
			if quantity >= line.Quantity {
				return apperror.NewBadRequestError("Decrease would empty the line; use remove instead")
			}
			line.Quantity -= quantity
		case enum.ItemUpdateActionRemove:
			line.Quantity = 0
			line.Status = "Cancelled"
		default:
			return apperror.NewBadRequestError("Unknown item update action")
		}

		line.ItemTotal = line.UnitCost * int64(line.Quantity)
		if err := s.poRepo.UpdateItem(ctx, line); err != nil {
			return err
		}

		order.TotalAmount += line.ItemTotal - before
		return s.poRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ReceiveGoods records a goods receipt against a purchase order line and
// restocks inventory through the stock adjuster
func (s *PurchasingService) ReceiveGoods(ctx context.Context, scope entity.Scope, itemID uuid.UUID, quantity int, receivedBy *uuid.UUID) (*entity.PurchaseOrderItem, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Received quantity must be positive")
	}

	var line *entity.PurchaseOrderItem
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		line, err = s.poRepo.GetItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		if line == nil {
			return apperror.NewNotFoundError("Purchase order item")
		}
		if line.ReceivedQuantity+quantity > line.Quantity {
			return apperror.NewBadRequestError(
				fmt.Sprintf("Receipt of %d exceeds outstanding %d", quantity, line.Quantity-line.ReceivedQuantity))
		}

		if _, err := s.inventory.Adjust(ctx, scope, line.ProductID, quantity, receivedBy); err != nil {
			return err
		}

		line.ReceivedQuantity += quantity
		if line.ReceivedQuantity == line.Quantity {
			line.Status = "Received"
		} else {
			line.Status = "Partially Received"
		}
		return s.poRepo.UpdateItem(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// CreateSupplierInvoice records a bill from a supplier, optionally tied to a
// purchase order
func (s *PurchasingService) CreateSupplierInvoice(ctx context.Context, scope entity.Scope, invoice *entity.SupplierInvoice) (*entity.SupplierInvoice, error) {
	if invoice.TotalAmount <= 0 {
		return nil, apperror.NewBadRequestError("Invoice total must be positive")
	}
	supplier, err := s.supplierRepo.GetByID(ctx, scope, invoice.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	invoice.BusinessID = scope.BusinessID
	invoice.BranchID = scope.BranchID
	if invoice.InvoiceDate.IsZero() {
		invoice.InvoiceDate = s.clock.Now()
	}
	invoice.Status = "Unpaid"
	if err := s.supplierInvRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// CreateSupplyRequest records a branch's ask for stock
func (s *PurchasingService) CreateSupplyRequest(ctx context.Context, scope entity.Scope, productID uuid.UUID, quantity int, requestedBy *uuid.UUID) (*entity.SupplyRequest, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}
	product, err := s.inventoryRepo.GetByID(ctx, scope, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}

	request := &entity.SupplyRequest{
		BusinessID:  scope.BusinessID,
		BranchID:    scope.BranchID,
		ProductID:   productID,
		Quantity:    quantity,
		RequestedBy: requestedBy,
		Status:      "Pending",
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// UpdateSupplyRequestStatus moves a supply request through its flow
func (s *PurchasingService) UpdateSupplyRequestStatus(ctx context.Context, scope entity.Scope, requestID uuid.UUID, status string) (*entity.SupplyRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, scope, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Supply request")
	}
	request.Status = status
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetPurchaseOrder returns a purchase order with its lines
func (s *PurchasingService) GetPurchaseOrder(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.poRepo.GetWithItems(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return order, nil
}

// ListPurchaseOrders returns purchase orders for the scope
func (s *PurchasingService) ListPurchaseOrders(ctx context.Context, scope entity.Scope, params *pagination.PaginationParams, status string) ([]entity.PurchaseOrder, int64, error) {
	return s.poRepo.List(ctx, scope, params, status)
}
