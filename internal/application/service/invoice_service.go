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
	"github.com/dukahub/dukapos-api/pkg/utils"
)

// InvoiceService creates and amends customer invoices. Settlement goes
// through the payment allocator.
type InvoiceService struct {
	txManager     repository.TxManager
	invoiceRepo   repository.InvoiceRepository
	itemRepo      repository.InvoiceItemRepository
	inventoryRepo repository.InventoryRepository
	clock         Clock
	taxRate       float64
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	txManager repository.TxManager,
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.InvoiceItemRepository,
	inventoryRepo repository.InventoryRepository,
	clock Clock,
	taxRate float64,
) *InvoiceService {
	return &InvoiceService{
		txManager:     txManager,
		invoiceRepo:   invoiceRepo,
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
		clock:         clock,
		taxRate:       taxRate,
	}
}

// CreateInvoiceInput describes a new customer invoice
type CreateInvoiceInput struct {
	CustomerName string
	Email        string
	PhoneNumber  string
	Address      string
	DueDate      time.Time
	Items        []CartItem
}

// CreateInvoice creates an invoice with its lines, priced at the current
// selling prices
func (s *InvoiceService) CreateInvoice(ctx context.Context, scope entity.Scope, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if input.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Invoice requires at least one item")
	}

	var invoice *entity.Invoice
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var subTotal int64
		lines := make([]entity.InvoiceItem, 0, len(input.Items))
		for _, line := range input.Items {
			if line.Quantity <= 0 {
				return apperror.NewBadRequestError("Item quantity must be positive")
			}
			item, err := s.inventoryRepo.GetByID(ctx, scope, line.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return apperror.NewNotFoundError(fmt.Sprintf("Inventory item %s", line.ItemID))
			}
			itemTotal := item.SellingPrice * int64(line.Quantity)
			subTotal += itemTotal
			lines = append(lines, entity.InvoiceItem{
				InventoryItemID: item.ID,
				Quantity:        line.Quantity,
				ItemTotal:       itemTotal,
			})
		}

		tax := taxOn(subTotal, s.taxRate)
		invoice = &entity.Invoice{
			BusinessID:    scope.BusinessID,
			BranchID:      scope.BranchID,
			InvoiceNumber: utils.GenerateReceiptNo("INV"),
			CustomerName:  input.CustomerName,
			Email:         input.Email,
			PhoneNumber:   input.PhoneNumber,
			Address:       input.Address,
			DueDate:       input.DueDate,
			SubTotal:      subTotal,
			Tax:           tax,
			TotalAmount:   subTotal + tax,
			Status:        enum.InvoiceStatusPending,
		}
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}

		for i := range lines {
			lines[i].InvoiceID = invoice.ID
		}
		return s.itemRepo.CreateBatch(ctx, lines)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// RefreshTotals recomputes an invoice's totals from its lines and re-derives
// its status
func (s *InvoiceService) RefreshTotals(ctx context.Context, scope entity.Scope, invoiceID uuid.UUID) (*entity.Invoice, error) {
	var invoice *entity.Invoice
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.GetByIDForUpdate(ctx, scope, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}

		lines, err := s.itemRepo.GetByInvoiceID(ctx, invoice.ID)
		if err != nil {
			return err
		}

		var subTotal int64
		for _, line := range lines {
			subTotal += line.ItemTotal
		}
		invoice.SubTotal = subTotal
		invoice.Tax = taxOn(subTotal, s.taxRate)
		invoice.TotalAmount = invoice.SubTotal + invoice.Tax
		invoice.Status = DeriveInvoiceStatus(invoice.AmountPaid, invoice.TotalAmount)
		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice returns an invoice with its lines
func (s *InvoiceService) GetInvoice(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices returns invoices for the scope
func (s *InvoiceService) ListInvoices(ctx context.Context, scope entity.Scope, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, scope, params)
}
