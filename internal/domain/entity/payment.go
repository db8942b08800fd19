package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

// Payment is an immutable record of one money movement. Corrections are new
// rows, never updates.
type Payment struct {
	ID                uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID        uuid.UUID             `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID          uuid.UUID             `gorm:"type:uuid;index" json:"branch_id"`
	OrderID           *uuid.UUID            `gorm:"type:uuid;index" json:"order_id,omitempty"`
	InvoiceID         *uuid.UUID            `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	InstallmentID     *uuid.UUID            `gorm:"type:uuid;index" json:"installment_id,omitempty"`
	CustomerName      string                `gorm:"size:255" json:"customer_name"`
	SubTotal          int64                 `gorm:"default:0" json:"-"` // cents
	Tax               int64                 `gorm:"default:0" json:"-"` // cents
	Total             int64                 `gorm:"default:0" json:"-"` // cents
	AmountReceived    int64                 `gorm:"default:0" json:"-"` // cents
	Change            int64                 `gorm:"default:0" json:"-"` // cents
	SplitCashAmount   int64                 `gorm:"default:0" json:"-"` // cents
	SplitMobileAmount int64                 `gorm:"default:0" json:"-"` // cents
	PaymentMethod     enum.PaymentMethod    `gorm:"default:0" json:"payment_method"`
	Direction         enum.PaymentDirection `gorm:"default:0" json:"direction"`
	Status            string                `gorm:"size:255" json:"status"`
	PaymentDate       time.Time             `gorm:"type:date" json:"payment_date"`
	ReceiptNumber     string                `gorm:"size:255" json:"receipt_number"`
	MobileNumber      string                `gorm:"size:255" json:"mobile_number"`
	MobileNetwork     string                `gorm:"size:255" json:"mobile_network"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// MarshalJSON converts cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		SubTotal          float64 `json:"sub_total"`
		Tax               float64 `json:"tax"`
		Total             float64 `json:"total"`
		AmountReceived    float64 `json:"amount_received"`
		Change            float64 `json:"change"`
		SplitCashAmount   float64 `json:"split_cash_amount"`
		SplitMobileAmount float64 `json:"split_mobile_amount"`
	}{
		Alias:             Alias(p),
		SubTotal:          float64(p.SubTotal) / 100,
		Tax:               float64(p.Tax) / 100,
		Total:             float64(p.Total) / 100,
		AmountReceived:    float64(p.AmountReceived) / 100,
		Change:            float64(p.Change) / 100,
		SplitCashAmount:   float64(p.SplitCashAmount) / 100,
		SplitMobileAmount: float64(p.SplitMobileAmount) / 100,
	})
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Payment) TableName() string {
	return "payments"
}

// BusinessLedger is an append-only double-entry-style record. Exactly one of
// Debit/Credit is non-zero per row; existing rows are never mutated.
type BusinessLedger struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID    uuid.UUID       `gorm:"type:uuid;index" json:"branch_id"`
	RecordType  enum.RecordType `gorm:"not null" json:"record_type"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Debit       int64           `gorm:"default:0" json:"-"` // cents
	Credit      int64           `gorm:"default:0" json:"-"` // cents
	Reason      string          `gorm:"size:255" json:"reason"`
	Description string          `gorm:"size:255" json:"description"`
	Reference   string          `gorm:"size:255" json:"reference"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MarshalJSON converts cents to decimal for API responses
func (l BusinessLedger) MarshalJSON() ([]byte, error) {
	type Alias BusinessLedger
	return json.Marshal(&struct {
		Alias
		Debit  float64 `json:"debit"`
		Credit float64 `json:"credit"`
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(l),
		Debit:  float64(l.Debit) / 100,
		Credit: float64(l.Credit) / 100,
		Amount: float64(l.SignedAmount()) / 100,
	})
}

func (l *BusinessLedger) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (BusinessLedger) TableName() string {
	return "business_ledgers"
}

// SignedAmount is credit minus debit, used by reporting only
func (l *BusinessLedger) SignedAmount() int64 {
	return l.Credit - l.Debit
}

// MpesaTransaction records the lifecycle of one STK push request. The engine
// only stores the gateway outcome; it never drives the gateway conversation.
type MpesaTransaction struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID           uuid.UUID  `gorm:"type:uuid;index" json:"branch_id"`
	OrderID            *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	MerchantRequestID  string     `gorm:"size:255;index" json:"merchant_request_id"`
	CheckoutRequestID  string     `gorm:"size:255;uniqueIndex" json:"checkout_request_id"`
	PhoneNumber        string     `gorm:"size:255" json:"phone_number"`
	Amount             int64      `gorm:"default:0" json:"-"` // cents
	ResultCode         *int       `json:"result_code,omitempty"`
	ResultDesc         string     `gorm:"size:255" json:"result_desc"`
	MpesaReceiptNumber string     `gorm:"size:255" json:"mpesa_receipt_number"`
	Status             string     `gorm:"size:50;default:Pending" json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// MarshalJSON converts cents to decimal for API responses
func (t MpesaTransaction) MarshalJSON() ([]byte, error) {
	type Alias MpesaTransaction
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}

func (t *MpesaTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (MpesaTransaction) TableName() string {
	return "mpesa_transactions"
}
