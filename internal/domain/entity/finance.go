package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreLoan is in-house credit extended to a loyalty-card customer, repaid
// outside the BNPL provider relationship. One open loan per customer; new
// store-credit sales extend it.
type StoreLoan struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID    uuid.UUID  `gorm:"type:uuid;index" json:"branch_id"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	TotalAmount int64      `gorm:"default:0" json:"-"` // cents
	AmountPaid  int64      `gorm:"default:0" json:"-"` // cents
	IssuedBy    *uuid.UUID `gorm:"type:uuid" json:"issued_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Customer LoyaltyCard `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (l StoreLoan) MarshalJSON() ([]byte, error) {
	type Alias StoreLoan
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		AmountPaid  float64 `json:"amount_paid"`
	}{
		Alias:       Alias(l),
		TotalAmount: float64(l.TotalAmount) / 100,
		AmountPaid:  float64(l.AmountPaid) / 100,
	})
}

func (l *StoreLoan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (StoreLoan) TableName() string {
	return "store_loans"
}

// StoreLoanLog is the audit trail of loan issuances and repayments
type StoreLoanLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	LoanID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"loan_id"`
	Action      string     `gorm:"size:255;not null" json:"action"`
	Amount      int64      `gorm:"default:0" json:"-"` // cents
	PerformedBy *uuid.UUID `gorm:"type:uuid" json:"performed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Loan StoreLoan `gorm:"foreignKey:LoanID" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (l StoreLoanLog) MarshalJSON() ([]byte, error) {
	type Alias StoreLoanLog
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(l),
		Amount: float64(l.Amount) / 100,
	})
}

func (l *StoreLoanLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (StoreLoanLog) TableName() string {
	return "store_loan_logs"
}
