package request

import "github.com/google/uuid"

// PayRequest applies an amount against an order, invoice or supplier invoice.
// Amount is in decimal currency.
type PayRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method"`
}

// BNPLPaymentRequest applies a repayment against a BNPL purchase
type BNPLPaymentRequest struct {
	Mode          string     `json:"mode" binding:"required"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	InstallmentID *uuid.UUID `json:"installment_id"`
	Count         int        `json:"count"`
}

// LedgerRecordRequest appends one row to the business ledger
type LedgerRecordRequest struct {
	RecordType  string  `json:"record_type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Date        string  `json:"date"`
	Reason      string  `json:"reason" binding:"required"`
	Description string  `json:"description"`
	Reference   string  `json:"reference"`
}

// STKPushRequest prompts a customer's phone for a mobile payment
type STKPushRequest struct {
	PhoneNumber string     `json:"phone_number" binding:"required"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	OrderID     *uuid.UUID `json:"order_id"`
	AccountRef  string     `json:"account_ref"`
}
