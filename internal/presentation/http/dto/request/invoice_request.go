package request

import "github.com/google/uuid"

// InvoiceItemRequest is one line of an invoice
type InvoiceItemRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

// CreateInvoiceRequest opens a customer invoice
type CreateInvoiceRequest struct {
	CustomerName string               `json:"customer_name" binding:"required"`
	Email        string               `json:"email"`
	PhoneNumber  string               `json:"phone_number"`
	Address      string               `json:"address"`
	DueDate      string               `json:"due_date" binding:"required"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}
