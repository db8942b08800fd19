package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

// Order represents a point-of-sale order. AmountReceived is monotonically
// non-decreasing and Status is always re-derived from AmountReceived vs
// TotalAmount; the orchestrator owns the row at creation and the payment
// allocator mutates it afterwards.
type Order struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID       uuid.UUID        `gorm:"type:uuid;index" json:"branch_id"`
	OrderNumber    string           `gorm:"size:100;uniqueIndex;not null" json:"order_number"`
	CustomerName   string           `gorm:"size:255" json:"customer_name"`
	SubTotal       int64            `gorm:"default:0" json:"-"` // cents
	Tax            int64            `gorm:"default:0" json:"-"` // cents
	TotalAmount    int64            `gorm:"default:0" json:"-"` // cents
	AmountReceived int64            `gorm:"default:0" json:"-"` // cents
	AmountPaid     int64            `gorm:"default:0" json:"-"` // cents
	Change         int64            `gorm:"default:0" json:"-"` // cents
	Status         enum.OrderStatus `gorm:"default:0" json:"status"`
	OrderType      enum.OrderType   `gorm:"default:0" json:"order_type"`
	SoldBy         *uuid.UUID       `gorm:"type:uuid" json:"sold_by,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal       float64 `json:"sub_total"`
		Tax            float64 `json:"tax"`
		TotalAmount    float64 `json:"total_amount"`
		AmountReceived float64 `json:"amount_received"`
		AmountPaid     float64 `json:"amount_paid"`
		Change         float64 `json:"change"`
	}{
		Alias:          Alias(o),
		SubTotal:       float64(o.SubTotal) / 100,
		Tax:            float64(o.Tax) / 100,
		TotalAmount:    float64(o.TotalAmount) / 100,
		AmountReceived: float64(o.AmountReceived) / 100,
		AmountPaid:     float64(o.AmountPaid) / 100,
		Change:         float64(o.Change) / 100,
	})
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// Outstanding returns the unpaid balance, which may be negative when the
// overpayment policy allows paying past the total
func (o *Order) Outstanding() int64 {
	return o.TotalAmount - o.AmountReceived
}

// OrderItem is one line of an order
type OrderItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	BranchID        uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	OrderID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	InventoryItemID uuid.UUID      `gorm:"type:uuid;not null;index" json:"inventory_item_id"`
	Quantity        int            `gorm:"not null" json:"quantity"`
	ItemTotal       int64          `gorm:"not null" json:"-"` // cents
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Order         Order         `gorm:"foreignKey:OrderID" json:"-"`
	InventoryItem InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		ItemTotal float64 `json:"item_total"`
	}{
		Alias:     Alias(oi),
		ItemTotal: float64(oi.ItemTotal) / 100,
	})
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}
