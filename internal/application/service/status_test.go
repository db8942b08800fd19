package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

func TestDeriveOrderStatus(t *testing.T) {
	tests := []struct {
		name     string
		received int64
		total    int64
		want     enum.OrderStatus
	}{
		{"nothing received", 0, 10000, enum.OrderStatusPending},
		{"partial payment", 4000, 10000, enum.OrderStatusPartiallyPaid},
		{"exact payment", 10000, 10000, enum.OrderStatusPaid},
		{"overpayment still paid", 12000, 10000, enum.OrderStatusPaid},
		{"one cent short", 9999, 10000, enum.OrderStatusPartiallyPaid},
		{"zero total", 0, 0, enum.OrderStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveOrderStatus(tt.received, tt.total))
		})
	}
}

func TestDeriveBNPLStatus(t *testing.T) {
	assert.Equal(t, enum.BNPLPurchaseStatusActive, DeriveBNPLStatus(0, 50000))
	assert.Equal(t, enum.BNPLPurchaseStatusPartiallyPaid, DeriveBNPLStatus(10000, 50000))
	assert.Equal(t, enum.BNPLPurchaseStatusPaid, DeriveBNPLStatus(50000, 50000))
	assert.Equal(t, enum.BNPLPurchaseStatusPaid, DeriveBNPLStatus(60000, 50000))
}

func TestDeriveInvoiceStatus(t *testing.T) {
	assert.Equal(t, enum.InvoiceStatusPending, DeriveInvoiceStatus(0, 20000))
	assert.Equal(t, enum.InvoiceStatusPartiallyPaid, DeriveInvoiceStatus(1, 20000))
	assert.Equal(t, enum.InvoiceStatusPaid, DeriveInvoiceStatus(20000, 20000))
}

// Deriving twice from the same inputs must never change the answer; payment
// allocation re-derives after every mutation.
func TestDeriveOrderStatusIdempotent(t *testing.T) {
	first := DeriveOrderStatus(4000, 10000)
	second := DeriveOrderStatus(4000, 10000)
	assert.Equal(t, first, second)
}
