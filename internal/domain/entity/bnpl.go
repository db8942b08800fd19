package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

// BNPLProvider is a buy-now-pay-later service provider the business partners
// with
type BNPLProvider struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID               uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	Name                   string         `gorm:"size:255;uniqueIndex;not null" json:"name"`
	DownPaymentPercentage  float64        `gorm:"default:0" json:"down_payment_percentage"`
	InterestRatePercentage float64        `gorm:"default:0" json:"interest_rate_percentage"`
	PhoneNumber            string         `gorm:"size:20" json:"phone_number"`
	Email                  string         `gorm:"size:255" json:"email"`
	Website                string         `gorm:"size:255" json:"website"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *BNPLProvider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (BNPLProvider) TableName() string {
	return "bnpl_providers"
}

// BNPLPurchase links a customer, a provider and exactly one order. Created
// once at sale time, mutated only by installment payments.
type BNPLPurchase struct {
	ID                   uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID           uuid.UUID               `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID             uuid.UUID               `gorm:"type:uuid;index" json:"branch_id"`
	CustomerID           uuid.UUID               `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProviderID           uuid.UUID               `gorm:"type:uuid;not null;index" json:"provider_id"`
	OrderID              uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	TotalAmount          int64                   `gorm:"not null" json:"-"`  // cents
	DownPayment          int64                   `gorm:"not null" json:"-"`  // cents
	BNPLAmount           int64                   `gorm:"not null" json:"-"`  // cents, financed remainder
	AmountPaid           int64                   `gorm:"default:0" json:"-"` // cents
	InstallmentAmount    int64                   `gorm:"default:0" json:"-"` // cents
	NumberOfInstallments int                     `gorm:"not null" json:"number_of_installments"`
	PaymentIntervalDays  int                     `gorm:"not null" json:"payment_interval_days"`
	PurchaseDate         time.Time               `json:"purchase_date"`
	Status               enum.BNPLPurchaseStatus `gorm:"default:0" json:"status"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`

	Customer     LoyaltyCard       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Provider     BNPLProvider      `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Order        Order             `gorm:"foreignKey:OrderID" json:"-"`
	Installments []BNPLInstallment `gorm:"foreignKey:PurchaseID" json:"installments,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (p BNPLPurchase) MarshalJSON() ([]byte, error) {
	type Alias BNPLPurchase
	return json.Marshal(&struct {
		Alias
		TotalAmount       float64 `json:"total_amount"`
		DownPayment       float64 `json:"down_payment"`
		BNPLAmount        float64 `json:"bnpl_amount"`
		AmountPaid        float64 `json:"amount_paid"`
		InstallmentAmount float64 `json:"installment_amount"`
	}{
		Alias:             Alias(p),
		TotalAmount:       float64(p.TotalAmount) / 100,
		DownPayment:       float64(p.DownPayment) / 100,
		BNPLAmount:        float64(p.BNPLAmount) / 100,
		AmountPaid:        float64(p.AmountPaid) / 100,
		InstallmentAmount: float64(p.InstallmentAmount) / 100,
	})
}

func (p *BNPLPurchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (BNPLPurchase) TableName() string {
	return "bnpl_purchases"
}

// BNPLInstallment is one scheduled repayment of a purchase. Immutable once
// Paid except for the audit fields set at the moment of payment.
type BNPLInstallment struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID     uuid.UUID              `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID       uuid.UUID              `gorm:"type:uuid;index" json:"branch_id"`
	PurchaseID     uuid.UUID              `gorm:"type:uuid;not null;index" json:"purchase_id"`
	AmountExpected int64                  `gorm:"not null" json:"-"`  // cents
	AmountPaid     int64                  `gorm:"default:0" json:"-"` // cents
	DueDate        time.Time              `gorm:"not null;index" json:"due_date"`
	PaidDate       *time.Time             `json:"paid_date,omitempty"`
	Status         enum.InstallmentStatus `gorm:"default:0" json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`

	Purchase BNPLPurchase `gorm:"foreignKey:PurchaseID" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (i BNPLInstallment) MarshalJSON() ([]byte, error) {
	type Alias BNPLInstallment
	return json.Marshal(&struct {
		Alias
		AmountExpected float64 `json:"amount_expected"`
		AmountPaid     float64 `json:"amount_paid"`
	}{
		Alias:          Alias(i),
		AmountExpected: float64(i.AmountExpected) / 100,
		AmountPaid:     float64(i.AmountPaid) / 100,
	})
}

func (i *BNPLInstallment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (BNPLInstallment) TableName() string {
	return "bnpl_installments"
}
