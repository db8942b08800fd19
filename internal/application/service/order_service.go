package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/utils"
)

// OrderService is the sale orchestrator. PlaceSale creates the order, its
// lines, the payment, the inventory decrements and the loyalty/BNPL side
// effects in one transaction; a failure anywhere leaves no trace of the sale.
type OrderService struct {
	txManager       repository.TxManager
	orderRepo       repository.OrderRepository
	orderItemRepo   repository.OrderItemRepository
	inventoryRepo   repository.InventoryRepository
	paymentRepo     repository.PaymentRepository
	providerRepo    repository.BNPLProviderRepository
	purchaseRepo    repository.BNPLPurchaseRepository
	installmentRepo repository.BNPLInstallmentRepository
	cardRepo        repository.LoyaltyCardRepository
	inventory       *InventoryService
	loyalty         *LoyaltyService
	ledger          *LedgerService
	clock           Clock
	taxRate         float64
}

// NewOrderService creates a new order service
func NewOrderService(
	txManager repository.TxManager,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	inventoryRepo repository.InventoryRepository,
	paymentRepo repository.PaymentRepository,
	providerRepo repository.BNPLProviderRepository,
	purchaseRepo repository.BNPLPurchaseRepository,
	installmentRepo repository.BNPLInstallmentRepository,
	cardRepo repository.LoyaltyCardRepository,
	inventory *InventoryService,
	loyalty *LoyaltyService,
	ledger *LedgerService,
	clock Clock,
	taxRate float64,
) *OrderService {
	return &OrderService{
		txManager:       txManager,
		orderRepo:       orderRepo,
		orderItemRepo:   orderItemRepo,
		inventoryRepo:   inventoryRepo,
		paymentRepo:     paymentRepo,
		providerRepo:    providerRepo,
		purchaseRepo:    purchaseRepo,
		installmentRepo: installmentRepo,
		cardRepo:        cardRepo,
		inventory:       inventory,
		loyalty:         loyalty,
		ledger:          ledger,
		clock:           clock,
		taxRate:         taxRate,
	}
}

// CartItem is one line of an incoming sale
type CartItem struct {
	ItemID   uuid.UUID
	Quantity int
}

// BNPLTerms carries the financing parameters of a BNPL sale
type BNPLTerms struct {
	ProviderID           uuid.UUID
	DownPayment          int64 // cents
	NumberOfInstallments int
	PaymentIntervalDays  int
}

// PlaceSaleInput describes one sale
type PlaceSaleInput struct {
	Items             []CartItem
	PaymentMethod     enum.PaymentMethod
	AmountReceived    int64 // cents
	SplitCashAmount   int64 // cents
	SplitMobileAmount int64 // cents
	CustomerName      string
	LoyaltyCardNumber string
	RedeemPoints      float64
	MobileNumber      string
	BNPL              *BNPLTerms
	SoldBy            *uuid.UUID
}

// PlaceSale runs the full sale orchestration atomically
func (s *OrderService) PlaceSale(ctx context.Context, scope entity.Scope, input *PlaceSaleInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale requires at least one item")
	}
	if input.PaymentMethod == enum.PaymentMethodBNPL && input.BNPL == nil {
		return nil, apperror.NewBadRequestError("BNPL terms are required for a BNPL sale")
	}

	var order *entity.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		subTotal, orderItems, err := s.priceCart(ctx, scope, input.Items)
		if err != nil {
			return err
		}
		tax := taxOn(subTotal, s.taxRate)
		total := subTotal + tax

		if input.PaymentMethod == enum.PaymentMethodBNPL {
			order, err = s.placeBNPLSale(ctx, scope, input, subTotal, tax, total, orderItems)
		} else {
			order, err = s.placeDirectSale(ctx, scope, input, subTotal, tax, total, orderItems)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// placeDirectSale handles cash, mobile, split and store-credit sales
func (s *OrderService) placeDirectSale(ctx context.Context, scope entity.Scope, input *PlaceSaleInput, subTotal, tax, total int64, orderItems []entity.OrderItem) (*entity.Order, error) {
	// Loyalty first: accrue on the total spend, then redeem if asked.
	// Accrual is a soft no-op without a resolvable card.
	if _, err := s.loyalty.Accrue(ctx, scope, input.LoyaltyCardNumber, total); err != nil {
		return nil, err
	}
	if input.RedeemPoints > 0 {
		if err := s.loyalty.Redeem(ctx, scope, input.LoyaltyCardNumber, input.RedeemPoints); err != nil {
			return nil, err
		}
	}

	received := input.AmountReceived
	var change int64
	if received > total {
		change = received - total
	}
	paid := received - change

	order := &entity.Order{
		BusinessID:     scope.BusinessID,
		BranchID:       scope.BranchID,
		OrderNumber:    utils.GenerateReceiptNo("ORD"),
		CustomerName:   input.CustomerName,
		SubTotal:       subTotal,
		Tax:            tax,
		TotalAmount:    total,
		AmountReceived: received,
		AmountPaid:     paid,
		Change:         change,
		Status:         DeriveOrderStatus(received, total),
		OrderType:      enum.OrderTypePaid,
		SoldBy:         input.SoldBy,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.writeSaleLines(ctx, scope, order, orderItems, input.SoldBy); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		BusinessID:        scope.BusinessID,
		BranchID:          scope.BranchID,
		OrderID:           &order.ID,
		CustomerName:      input.CustomerName,
		SubTotal:          subTotal,
		Tax:               tax,
		Total:             total,
		AmountReceived:    received,
		Change:            change,
		SplitCashAmount:   input.SplitCashAmount,
		SplitMobileAmount: input.SplitMobileAmount,
		PaymentMethod:     input.PaymentMethod,
		Direction:         enum.PaymentDirectionIncoming,
		Status:            "Completed",
		PaymentDate:       s.clock.Now(),
		ReceiptNumber:     utils.GenerateReceiptNo("RCP"),
		MobileNumber:      input.MobileNumber,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if input.PaymentMethod == enum.PaymentMethodStoreCredit {
		if input.LoyaltyCardNumber == "" {
			return nil, apperror.NewBadRequestError("Store credit sales require a loyalty card")
		}
		if _, err := s.loyalty.IssueStoreCredit(ctx, scope, input.LoyaltyCardNumber, total, input.SoldBy); err != nil {
			return nil, err
		}
	}

	if paid > 0 {
		_, err := s.ledger.Record(ctx, scope, &RecordInput{
			RecordType:  enum.RecordTypeDebit,
			Amount:      paid,
			Reason:      "sale",
			Description: fmt.Sprintf("Sale %s", order.OrderNumber),
			Reference:   payment.ReceiptNumber,
		})
		if err != nil {
			return nil, err
		}
	}
	return order, nil
}

// placeBNPLSale creates the down-payment order, the purchase record and the
// installment schedule for the financed remainder
func (s *OrderService) placeBNPLSale(ctx context.Context, scope entity.Scope, input *PlaceSaleInput, subTotal, tax, total int64, orderItems []entity.OrderItem) (*entity.Order, error) {
	terms := input.BNPL

	provider, err := s.providerRepo.GetByID(ctx, scope, terms.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.NewNotFoundError("BNPL provider")
	}

	if input.LoyaltyCardNumber == "" {
		return nil, apperror.NewBadRequestError("BNPL sales require a loyalty card")
	}
	card, err := s.cardRepo.GetByCardNumber(ctx, scope, input.LoyaltyCardNumber)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Loyalty card")
	}

	if terms.DownPayment < 0 || terms.DownPayment > total {
		return nil, apperror.NewBadRequestError("Down payment must be between zero and the sale total")
	}

	order := &entity.Order{
		BusinessID:     scope.BusinessID,
		BranchID:       scope.BranchID,
		OrderNumber:    utils.GenerateReceiptNo("ORD"),
		CustomerName:   card.CustomerName,
		SubTotal:       subTotal,
		Tax:            tax,
		TotalAmount:    total,
		AmountReceived: terms.DownPayment,
		AmountPaid:     terms.DownPayment,
		Status:         DeriveOrderStatus(terms.DownPayment, total),
		OrderType:      enum.OrderTypeBNPL,
		SoldBy:         input.SoldBy,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.writeSaleLines(ctx, scope, order, orderItems, input.SoldBy); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		BusinessID:     scope.BusinessID,
		BranchID:       scope.BranchID,
		OrderID:        &order.ID,
		CustomerName:   card.CustomerName,
		SubTotal:       subTotal,
		Tax:            tax,
		Total:          total,
		AmountReceived: terms.DownPayment,
		PaymentMethod:  enum.PaymentMethodBNPL,
		Direction:      enum.PaymentDirectionIncoming,
		Status:         "Completed",
		PaymentDate:    s.clock.Now(),
		ReceiptNumber:  utils.GenerateReceiptNo("RCP"),
		MobileNumber:   input.MobileNumber,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	financed := total - terms.DownPayment
	var perInstallment int64
	if terms.NumberOfInstallments > 0 {
		perInstallment = financed / int64(terms.NumberOfInstallments)
	}

	purchase := &entity.BNPLPurchase{
		BusinessID:           scope.BusinessID,
		BranchID:             scope.BranchID,
		CustomerID:           card.ID,
		ProviderID:           provider.ID,
		OrderID:              order.ID,
		TotalAmount:          total,
		DownPayment:          terms.DownPayment,
		BNPLAmount:           financed,
		AmountPaid:           terms.DownPayment,
		InstallmentAmount:    perInstallment,
		NumberOfInstallments: terms.NumberOfInstallments,
		PaymentIntervalDays:  terms.PaymentIntervalDays,
		PurchaseDate:         s.clock.Now(),
		Status:               DeriveBNPLStatus(terms.DownPayment, total),
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	schedule := BuildInstallmentSchedule(InstallmentScheduleInput{
		Now:          s.clock.Now(),
		PerAmount:    perInstallment,
		Count:        terms.NumberOfInstallments,
		IntervalDays: terms.PaymentIntervalDays,
	})
	for i := range schedule {
		schedule[i].BusinessID = scope.BusinessID
		schedule[i].BranchID = scope.BranchID
		schedule[i].PurchaseID = purchase.ID
	}
	if len(schedule) > 0 {
		if err := s.installmentRepo.CreateBatch(ctx, schedule); err != nil {
			return nil, err
		}
	}

	if terms.DownPayment > 0 {
		_, err := s.ledger.Record(ctx, scope, &RecordInput{
			RecordType:  enum.RecordTypeDebit,
			Amount:      terms.DownPayment,
			Reason:      "bnpl_down_payment",
			Description: fmt.Sprintf("Down payment on order %s", order.OrderNumber),
			Reference:   payment.ReceiptNumber,
		})
		if err != nil {
			return nil, err
		}
	}
	return order, nil
}

// priceCart resolves cart lines against inventory and prices them at the
// current selling price
func (s *OrderService) priceCart(ctx context.Context, scope entity.Scope, items []CartItem) (int64, []entity.OrderItem, error) {
	var subTotal int64
	orderItems := make([]entity.OrderItem, 0, len(items))

	for _, line := range items {
		if line.Quantity <= 0 {
			return 0, nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		item, err := s.inventoryRepo.GetByID(ctx, scope, line.ItemID)
		if err != nil {
			return 0, nil, err
		}
		if item == nil {
			return 0, nil, apperror.NewNotFoundError(fmt.Sprintf("Inventory item %s", line.ItemID))
		}

		itemTotal := item.SellingPrice * int64(line.Quantity)
		subTotal += itemTotal
		orderItems = append(orderItems, entity.OrderItem{
			BusinessID:      scope.BusinessID,
			BranchID:        scope.BranchID,
			InventoryItemID: item.ID,
			Quantity:        line.Quantity,
			ItemTotal:       itemTotal,
		})
	}
	return subTotal, orderItems, nil
}

// writeSaleLines persists the order lines and decrements stock per line
func (s *OrderService) writeSaleLines(ctx context.Context, scope entity.Scope, order *entity.Order, orderItems []entity.OrderItem, actor *uuid.UUID) error {
	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.CreateBatch(ctx, orderItems); err != nil {
		return err
	}
	for _, line := range orderItems {
		if _, err := s.inventory.Adjust(ctx, scope, line.InventoryItemID, -line.Quantity, actor); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOrderItem amends one line of an existing order and recomputes the
// order totals. Stock follows the amendment: an increase sells more units, a
// decrease or removal returns them.
func (s *OrderService) UpdateOrderItem(ctx context.Context, scope entity.Scope, orderID, orderItemID uuid.UUID, action enum.ItemUpdateAction, quantity int, actor *uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByIDForUpdate(ctx, scope, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		line, err := s.orderItemRepo.GetByID(ctx, orderItemID)
		if err != nil {
			return err
		}
		if line == nil || line.OrderID != order.ID {
			return apperror.NewNotFoundError("Order item")
		}

		item, err := s.inventoryRepo.GetByID(ctx, scope, line.InventoryItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.NewNotFoundError("Inventory item")
		}

		switch action {
		case enum.ItemUpdateActionIncrease:
			if quantity <= 0 {
				return apperror.NewBadRequestError("Quantity must be positive")
			}
			if _, err := s.inventory.Adjust(ctx, scope, item.ID, -quantity, actor); err != nil {
				return err
			}
			line.Quantity += quantity
			line.ItemTotal = item.SellingPrice * int64(line.Quantity)
			if err := s.orderItemRepo.Update(ctx, line); err != nil {
				return err
			}
		case enum.ItemUpdateActionDecrease:
			if quantity <= 0 {
				return apperror.NewBadRequestError("Quantity must be positive")
			}
			if quantity >= line.Quantity {
				return apperror.NewBadRequestError("Decrease would empty the line; use remove instead")
			}
			if _, err := s.inventory.Adjust(ctx, scope, item.ID, quantity, actor); err != nil {
				return err
			}
			line.Quantity -= quantity
			line.ItemTotal = item.SellingPrice * int64(line.Quantity)
			if err := s.orderItemRepo.Update(ctx, line); err != nil {
				return err
			}
		case enum.ItemUpdateActionRemove:
			if _, err := s.inventory.Adjust(ctx, scope, item.ID, line.Quantity, actor); err != nil {
				return err
			}
			if err := s.orderItemRepo.Delete(ctx, line.ID); err != nil {
				return err
			}
		default:
			return apperror.NewBadRequestError("Unknown item update action")
		}

		return s.refreshTotals(ctx, scope, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// refreshTotals recomputes subtotal, tax and total from the order's current
// lines and re-derives its status
func (s *OrderService) refreshTotals(ctx context.Context, scope entity.Scope, order *entity.Order) error {
	lines, err := s.orderItemRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}

	var subTotal int64
	for _, line := range lines {
		subTotal += line.ItemTotal
	}
	order.SubTotal = subTotal
	order.Tax = taxOn(subTotal, s.taxRate)
	order.TotalAmount = order.SubTotal + order.Tax
	order.Status = DeriveOrderStatus(order.AmountReceived, order.TotalAmount)
	return s.orderRepo.Update(ctx, order)
}

// GetOrder returns an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, scope entity.Scope, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders returns orders for the scope
func (s *OrderService) ListOrders(ctx context.Context, scope entity.Scope, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, scope, params)
}

// taxOn computes the sale tax in cents, rounded to the nearest cent
func taxOn(subTotal int64, rate float64) int64 {
	return int64(math.Round(float64(subTotal) * rate))
}
