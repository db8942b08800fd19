package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/utils"
)

// PaymentService allocates incoming payments against orders, invoices and
// BNPL installment schedules. Every allocation emits exactly one Payment row
// and one ledger debit inside the same transaction as the balance rollups.
type PaymentService struct {
	txManager       repository.TxManager
	orderRepo       repository.OrderRepository
	invoiceRepo     repository.InvoiceRepository
	supplierInvRepo repository.SupplierInvoiceRepository
	purchaseRepo    repository.BNPLPurchaseRepository
	installmentRepo repository.BNPLInstallmentRepository
	paymentRepo     repository.PaymentRepository
	ledger          *LedgerService
	clock           Clock
	policy          enum.OverpaymentPolicy
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	txManager repository.TxManager,
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	supplierInvRepo repository.SupplierInvoiceRepository,
	purchaseRepo repository.BNPLPurchaseRepository,
	installmentRepo repository.BNPLInstallmentRepository,
	paymentRepo repository.PaymentRepository,
	ledger *LedgerService,
	clock Clock,
	policy enum.OverpaymentPolicy,
) *PaymentService {
	return &PaymentService{
		txManager:       txManager,
		orderRepo:       orderRepo,
		invoiceRepo:     invoiceRepo,
		supplierInvRepo: supplierInvRepo,
		purchaseRepo:    purchaseRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		ledger:          ledger,
		clock:           clock,
		policy:          policy,
	}
}

// applyPolicy resolves the effective amount against the outstanding balance.
// Allow passes the amount through untouched, matching the legacy behavior.
func (s *PaymentService) applyPolicy(amount, outstanding int64) (int64, error) {
	if amount <= outstanding {
		return amount, nil
	}
	switch s.policy {
	case enum.OverpaymentPolicyReject:
		return 0, apperror.NewBadRequestError(
			fmt.Sprintf("Payment of %.2f exceeds outstanding balance %.2f", float64(amount)/100, float64(outstanding)/100))
	case enum.OverpaymentPolicyClamp:
		if outstanding < 0 {
			return 0, apperror.NewBadRequestError("Target balance is already settled")
		}
		return outstanding, nil
	default:
		return amount, nil
	}
}

// PayOrder applies an incoming amount to an order's balance
func (s *PaymentService) PayOrder(ctx context.Context, scope entity.Scope, orderID uuid.UUID, amount int64, method enum.PaymentMethod) (*entity.Order, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

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

		applied, err := s.applyPolicy(amount, order.Outstanding())
		if err != nil {
			return err
		}

		order.AmountReceived += applied
		order.AmountPaid += applied
		order.Status = DeriveOrderStatus(order.AmountReceived, order.TotalAmount)
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}

		payment := &entity.Payment{
			BusinessID:     scope.BusinessID,
			BranchID:       scope.BranchID,
			OrderID:        &order.ID,
			CustomerName:   order.CustomerName,
			Total:          applied,
			AmountReceived: applied,
			PaymentMethod:  method,
			Direction:      enum.PaymentDirectionIncoming,
			Status:         "Completed",
			PaymentDate:    s.clock.Now(),
			ReceiptNumber:  utils.GenerateReceiptNo("PAY"),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		_, err = s.ledger.Record(ctx, scope, &RecordInput{
			RecordType:  enum.RecordTypeDebit,
			Amount:      applied,
			Reason:      "order_payment",
			Description: fmt.Sprintf("Payment on order %s", order.OrderNumber),
			Reference:   payment.ReceiptNumber,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// PayInvoice applies an incoming amount to a customer invoice
func (s *PaymentService) PayInvoice(ctx context.Context, scope entity.Scope, invoiceID uuid.UUID, amount int64, method enum.PaymentMethod) (*entity.Invoice, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

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

		applied, err := s.applyPolicy(amount, invoice.Outstanding())
		if err != nil {
			return err
		}

		invoice.AmountPaid += applied
		invoice.Status = DeriveInvoiceStatus(invoice.AmountPaid, invoice.TotalAmount)
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}

		payment := &entity.Payment{
			BusinessID:     scope.BusinessID,
			BranchID:       scope.BranchID,
			InvoiceID:      &invoice.ID,
			CustomerName:   invoice.CustomerName,
			Total:          applied,
			AmountReceived: applied,
			PaymentMethod:  method,
			Direction:      enum.PaymentDirectionIncoming,
			Status:         "Completed",
			PaymentDate:    s.clock.Now(),
			ReceiptNumber:  utils.GenerateReceiptNo("INV"),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		_, err = s.ledger.Record(ctx, scope, &RecordInput{
			RecordType:  enum.RecordTypeDebit,
			Amount:      applied,
			Reason:      "invoice_payment",
			Description: fmt.Sprintf("Payment on invoice %s", invoice.InvoiceNumber),
			Reference:   payment.ReceiptNumber,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// BNPLPaymentInput describes one installment payment event
type BNPLPaymentInput struct {
	PurchaseID    uuid.UUID
	Mode          enum.InstallmentPaymentMode
	Amount        int64 // cents
	InstallmentID *uuid.UUID
	// Count bounds how many pending installments a sequential sweep may
	// settle
	Count int
}

// MakeBNPLPayment allocates a repayment against a BNPL purchase. Single mode
// settles one named installment; sequential mode sweeps pending installments
// earliest-due-first. In both modes exactly one Payment row and one ledger
// debit are written.
//
// Sequential mode deliberately applies the same amount to every installment
// it settles instead of splitting the incoming amount across them. That
// mirrors the books this system replaces; changing the ratio is a product
// decision, not a refactor.
func (s *PaymentService) MakeBNPLPayment(ctx context.Context, scope entity.Scope, input *BNPLPaymentInput) (*entity.BNPLPurchase, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	var purchase *entity.BNPLPurchase
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		purchase, err = s.purchaseRepo.GetByIDForUpdate(ctx, scope, input.PurchaseID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return apperror.NewNotFoundError("BNPL purchase")
		}

		order, err := s.orderRepo.GetByIDForUpdate(ctx, scope, purchase.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		var settled int64
		switch input.Mode {
		case enum.InstallmentPaymentModeSingle:
			settled, err = s.paySingleInstallment(ctx, scope, purchase, order, input)
		case enum.InstallmentPaymentModeSequential:
			settled, err = s.paySequentialInstallments(ctx, scope, purchase, order, input)
		default:
			err = apperror.NewBadRequestError("Unknown installment payment mode")
		}
		if err != nil {
			return err
		}

		if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
			return err
		}
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}

		installmentRef := input.InstallmentID
		payment := &entity.Payment{
			BusinessID:     scope.BusinessID,
			BranchID:       scope.BranchID,
			OrderID:        &order.ID,
			InstallmentID:  installmentRef,
			CustomerName:   order.CustomerName,
			Total:          settled,
			AmountReceived: settled,
			PaymentMethod:  enum.PaymentMethodBNPL,
			Direction:      enum.PaymentDirectionIncoming,
			Status:         "Completed",
			PaymentDate:    s.clock.Now(),
			ReceiptNumber:  utils.GenerateReceiptNo("BNPL"),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		_, err = s.ledger.Record(ctx, scope, &RecordInput{
			RecordType:  enum.RecordTypeDebit,
			Amount:      settled,
			Reason:      "bnpl_payment",
			Description: fmt.Sprintf("Installment payment on order %s", order.OrderNumber),
			Reference:   payment.ReceiptNumber,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// paySingleInstallment settles one named installment in full at the given
// amount and rolls the amount up into the purchase and its order
func (s *PaymentService) paySingleInstallment(ctx context.Context, scope entity.Scope, purchase *entity.BNPLPurchase, order *entity.Order, input *BNPLPaymentInput) (int64, error) {
	if input.InstallmentID == nil {
		return 0, apperror.NewBadRequestError("Installment ID is required for single mode")
	}
	installment, err := s.installmentRepo.GetByIDForUpdate(ctx, scope, *input.InstallmentID)
	if err != nil {
		return 0, err
	}
	if installment == nil || installment.PurchaseID != purchase.ID {
		return 0, apperror.NewNotFoundError("Installment")
	}
	if installment.Status == enum.InstallmentStatusPaid {
		return 0, apperror.NewBadRequestError("Installment is already paid")
	}

	applied, err := s.applyPolicy(input.Amount, installment.AmountExpected-installment.AmountPaid)
	if err != nil {
		return 0, err
	}

	s.settleInstallment(installment, applied)
	if err := s.installmentRepo.Update(ctx, installment); err != nil {
		return 0, err
	}

	s.rollUp(purchase, order, applied)
	return applied, nil
}

// paySequentialInstallments sweeps up to Count pending installments ordered
// by due date, settling each at the full input amount
func (s *PaymentService) paySequentialInstallments(ctx context.Context, scope entity.Scope, purchase *entity.BNPLPurchase, order *entity.Order, input *BNPLPaymentInput) (int64, error) {
	pending, err := s.installmentRepo.ListPendingByPurchase(ctx, scope, purchase.ID)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, apperror.NewNotFoundError("Pending installment")
	}

	count := input.Count
	if count <= 0 || count > len(pending) {
		count = len(pending)
	}

	var settled int64
	for i := 0; i < count; i++ {
		installment := pending[i]
		s.settleInstallment(&installment, input.Amount)
		if err := s.installmentRepo.Update(ctx, &installment); err != nil {
			return 0, err
		}
		s.rollUp(purchase, order, input.Amount)
		settled = input.Amount
	}
	return settled, nil
}

func (s *PaymentService) settleInstallment(installment *entity.BNPLInstallment, amount int64) {
	now := s.clock.Now()
	installment.AmountPaid += amount
	installment.PaidDate = &now
	installment.Status = enum.InstallmentStatusPaid
}

func (s *PaymentService) rollUp(purchase *entity.BNPLPurchase, order *entity.Order, amount int64) {
	purchase.AmountPaid += amount
	purchase.Status = DeriveBNPLStatus(purchase.AmountPaid, purchase.TotalAmount)
	order.AmountReceived += amount
	order.AmountPaid += amount
	order.Status = DeriveOrderStatus(order.AmountReceived, order.TotalAmount)
}

// PaySupplierInvoice settles part of a supplier bill with an outgoing
// payment and a ledger credit
func (s *PaymentService) PaySupplierInvoice(ctx context.Context, scope entity.Scope, invoiceID uuid.UUID, amount int64, method enum.PaymentMethod) (*entity.SupplierInvoice, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	var invoice *entity.SupplierInvoice
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		invoice, err = s.supplierInvRepo.GetByIDForUpdate(ctx, scope, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Supplier invoice")
		}

		applied, err := s.applyPolicy(amount, invoice.BalanceDue())
		if err != nil {
			return err
		}

		invoice.AmountPaid += applied
		if invoice.AmountPaid >= invoice.TotalAmount {
			invoice.Status = "Paid"
		} else {
			invoice.Status = "Partially Paid"
		}
		if err := s.supplierInvRepo.Update(ctx, invoice); err != nil {
			return err
		}

		payment := &entity.Payment{
			BusinessID:     scope.BusinessID,
			BranchID:       scope.BranchID,
			InvoiceID:      &invoice.ID,
			Total:          applied,
			AmountReceived: applied,
			PaymentMethod:  method,
			Direction:      enum.PaymentDirectionOutgoing,
			Status:         "Completed",
			PaymentDate:    s.clock.Now(),
			ReceiptNumber:  utils.GenerateReceiptNo("SUP"),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		_, err = s.ledger.Record(ctx, scope, &RecordInput{
			RecordType:  enum.RecordTypeCredit,
			Amount:      applied,
			Reason:      "supplier_payment",
			Description: fmt.Sprintf("Payment on supplier invoice %s", invoice.InvoiceNumber),
			Reference:   payment.ReceiptNumber,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListPayments returns payment rows for the scope
func (s *PaymentService) ListPayments(ctx context.Context, scope entity.Scope, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	return s.paymentRepo.List(ctx, scope, params)
}
