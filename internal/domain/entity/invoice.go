package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

// Invoice is a customer invoice settled by later payments. Like an order, its
// status is derived from amount_paid vs total_amount.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID      uuid.UUID          `gorm:"type:uuid;index" json:"branch_id"`
	InvoiceNumber string             `gorm:"size:255;not null;index" json:"invoice_number"`
	CustomerName  string             `gorm:"size:255;not null" json:"customer_name"`
	Email         string             `gorm:"size:255" json:"email"`
	PhoneNumber   string             `gorm:"size:255" json:"phone_number"`
	Address       string             `gorm:"size:255" json:"address"`
	DueDate       time.Time          `gorm:"type:date" json:"due_date"`
	SubTotal      int64              `gorm:"default:0" json:"-"` // cents
	Tax           int64              `gorm:"default:0" json:"-"` // cents
	TotalAmount   int64              `gorm:"default:0" json:"-"` // cents
	AmountPaid    int64              `gorm:"default:0" json:"-"` // cents
	Status        enum.InvoiceStatus `gorm:"default:0" json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		SubTotal    float64 `json:"sub_total"`
		Tax         float64 `json:"tax"`
		TotalAmount float64 `json:"total_amount"`
		AmountPaid  float64 `json:"amount_paid"`
	}{
		Alias:       Alias(i),
		SubTotal:    float64(i.SubTotal) / 100,
		Tax:         float64(i.Tax) / 100,
		TotalAmount: float64(i.TotalAmount) / 100,
		AmountPaid:  float64(i.AmountPaid) / 100,
	})
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (Invoice) TableName() string {
	return "invoices"
}

// Outstanding returns the unpaid balance of the invoice
func (i *Invoice) Outstanding() int64 {
	return i.TotalAmount - i.AmountPaid
}

// InvoiceItem is one line of an invoice
type InvoiceItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	InventoryItemID uuid.UUID      `gorm:"type:uuid;not null;index" json:"inventory_item_id"`
	Quantity        int            `gorm:"default:1" json:"quantity"`
	ItemTotal       int64          `gorm:"default:0" json:"-"` // cents
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Invoice       Invoice       `gorm:"foreignKey:InvoiceID" json:"-"`
	InventoryItem InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (ii InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		ItemTotal float64 `json:"item_total"`
	}{
		Alias:     Alias(ii),
		ItemTotal: float64(ii.ItemTotal) / 100,
	})
}

func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// SupplierInvoice is a bill from a supplier, settled by outgoing payments
type SupplierInvoice struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID        uuid.UUID  `gorm:"type:uuid;index" json:"branch_id"`
	SupplierID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"supplier_id"`
	PurchaseOrderID *uuid.UUID `gorm:"type:uuid;index" json:"purchase_order_id,omitempty"`
	InvoiceNumber   string     `gorm:"size:255" json:"invoice_number"`
	InvoiceDate     time.Time  `gorm:"type:date" json:"invoice_date"`
	DueDate         *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	TotalAmount     int64      `gorm:"default:0" json:"-"` // cents
	AmountPaid      int64      `gorm:"default:0" json:"-"` // cents
	Status          string     `gorm:"size:50;default:Unpaid" json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (si SupplierInvoice) MarshalJSON() ([]byte, error) {
	type Alias SupplierInvoice
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		AmountPaid  float64 `json:"amount_paid"`
		BalanceDue  float64 `json:"balance_due"`
	}{
		Alias:       Alias(si),
		TotalAmount: float64(si.TotalAmount) / 100,
		AmountPaid:  float64(si.AmountPaid) / 100,
		BalanceDue:  float64(si.BalanceDue()) / 100,
	})
}

func (si *SupplierInvoice) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

func (SupplierInvoice) TableName() string {
	return "supplier_invoices"
}

// BalanceDue is the unpaid remainder of the supplier invoice
func (si *SupplierInvoice) BalanceDue() int64 {
	return si.TotalAmount - si.AmountPaid
}
