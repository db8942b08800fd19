package service

import "github.com/dukahub/dukapos-api/internal/domain/enum"

// DeriveOrderStatus re-derives an order's status from its received amount.
// Idempotent; never hand-set status outside creation, always re-derive.
func DeriveOrderStatus(amountReceived, totalAmount int64) enum.OrderStatus {
	switch {
	case amountReceived >= totalAmount:
		return enum.OrderStatusPaid
	case amountReceived > 0:
		return enum.OrderStatusPartiallyPaid
	default:
		return enum.OrderStatusPending
	}
}

// DeriveBNPLStatus is the analogous rule for a BNPL purchase, with Active as
// the zero-paid state
func DeriveBNPLStatus(amountPaid, totalAmount int64) enum.BNPLPurchaseStatus {
	switch {
	case amountPaid >= totalAmount:
		return enum.BNPLPurchaseStatusPaid
	case amountPaid > 0:
		return enum.BNPLPurchaseStatusPartiallyPaid
	default:
		return enum.BNPLPurchaseStatusActive
	}
}

// DeriveInvoiceStatus mirrors the order rule for customer invoices
func DeriveInvoiceStatus(amountPaid, totalAmount int64) enum.InvoiceStatus {
	switch {
	case amountPaid >= totalAmount:
		return enum.InvoiceStatusPaid
	case amountPaid > 0:
		return enum.InvoiceStatusPartiallyPaid
	default:
		return enum.InvoiceStatusPending
	}
}
