package service

import (
	"context"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/mpesa"
)

// MpesaService drives STK push collection for order balances. The gateway is
// asynchronous: InitiateSTKPush records a pending transaction and the
// callback later settles it through the payment allocator.
type MpesaService struct {
	client   *mpesa.Client
	txnRepo  repository.MpesaTransactionRepository
	payments *PaymentService
}

// NewMpesaService creates a new M-Pesa service
func NewMpesaService(client *mpesa.Client, txnRepo repository.MpesaTransactionRepository, payments *PaymentService) *MpesaService {
	return &MpesaService{
		client:   client,
		txnRepo:  txnRepo,
		payments: payments,
	}
}

// InitiateSTKPush prompts the customer's phone for an amount and records the
// pending transaction keyed by the gateway's checkout request ID. Amount is
// in cents; the gateway wants whole currency units.
func (s *MpesaService) InitiateSTKPush(ctx context.Context, scope entity.Scope, phoneNumber string, amount int64, orderID *uuid.UUID, accountRef string) (*entity.MpesaTransaction, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	if phoneNumber == "" {
		return nil, apperror.NewBadRequestError("Phone number is required")
	}

	units := amount / 100
	if amount%100 != 0 {
		units++
	}

	resp, err := s.client.STKPush(ctx, phoneNumber, units, accountRef, "Payment")
	if err != nil {
		return nil, err
	}

	txn := &entity.MpesaTransaction{
		BusinessID:        scope.BusinessID,
		BranchID:          scope.BranchID,
		OrderID:           orderID,
		MerchantRequestID: resp.MerchantRequestID,
		CheckoutRequestID: resp.CheckoutRequestID,
		PhoneNumber:       mpesa.NormalizePhone(phoneNumber),
		Amount:            amount,
		Status:            "Pending",
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// HandleCallback records the gateway's verdict on a pending transaction. A
// successful result tied to an order settles the order through the payment
// allocator; a failed result only marks the transaction. Unknown checkout IDs
// are ignored so gateway retries stay harmless.
func (s *MpesaService) HandleCallback(ctx context.Context, envelope *mpesa.CallbackEnvelope) error {
	result := mpesa.Flatten(envelope)

	txn, err := s.txnRepo.GetByCheckoutRequestID(ctx, result.CheckoutRequestID)
	if err != nil {
		return err
	}
	if txn == nil {
		log.Printf("Warning: mpesa callback for unknown checkout request %s", result.CheckoutRequestID)
		return nil
	}
	if txn.Status != "Pending" {
		return nil
	}

	code := result.ResultCode
	txn.ResultCode = &code
	txn.ResultDesc = result.ResultDesc

	if !result.Success() {
		txn.Status = "Failed"
		return s.txnRepo.Update(ctx, txn)
	}

	txn.Status = "Completed"
	txn.MpesaReceiptNumber = result.MpesaReceiptNumber
	if result.Amount > 0 {
		txn.Amount = int64(math.Round(result.Amount * 100))
	}
	if err := s.txnRepo.Update(ctx, txn); err != nil {
		return err
	}

	if txn.OrderID != nil {
		scope := entity.Scope{BusinessID: txn.BusinessID, BranchID: txn.BranchID}
		if _, err := s.payments.PayOrder(ctx, scope, *txn.OrderID, txn.Amount, enum.PaymentMethodMobile); err != nil {
			return err
		}
	}
	return nil
}

// GetTransaction returns a transaction by its checkout request ID
func (s *MpesaService) GetTransaction(ctx context.Context, checkoutRequestID string) (*entity.MpesaTransaction, error) {
	txn, err := s.txnRepo.GetByCheckoutRequestID(ctx, checkoutRequestID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("M-Pesa transaction")
	}
	return txn, nil
}
