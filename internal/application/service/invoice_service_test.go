package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/apperror"
)

func TestCreateInvoicePricesAtCurrentSellingPrice(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	cement := env.createItem(t, "Cement 50kg", 100, 75000)
	nails := env.createItem(t, "Nails 1kg", 40, 3500)

	invoice, err := env.invoices.CreateInvoice(ctx, env.scope, &CreateInvoiceInput{
		CustomerName: "Otieno Hardware",
		DueDate:      env.clock.Now().AddDate(0, 0, 14),
		Items: []CartItem{
			{ItemID: cement.ID, Quantity: 2},
			{ItemID: nails.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 2*750.00 + 3*35.00 = 1605.00, tax 8% = 128.40
	assert.Equal(t, int64(160500), invoice.SubTotal)
	assert.Equal(t, int64(12840), invoice.Tax)
	assert.Equal(t, int64(173340), invoice.TotalAmount)
	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)
	assert.NotEmpty(t, invoice.InvoiceNumber)

	loaded, err := env.invoices.GetInvoice(ctx, env.scope, invoice.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
}

func TestCreateInvoiceValidation(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Paint 5L", 10, 12000)

	_, err := env.invoices.CreateInvoice(ctx, env.scope, &CreateInvoiceInput{
		CustomerName: "",
		Items:        []CartItem{{ItemID: item.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = env.invoices.CreateInvoice(ctx, env.scope, &CreateInvoiceInput{
		CustomerName: "No Items Ltd",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = env.invoices.CreateInvoice(ctx, env.scope, &CreateInvoiceInput{
		CustomerName: "Zero Qty Ltd",
		Items:        []CartItem{{ItemID: item.ID, Quantity: 0}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPayInvoiceToSettlement(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Roofing Sheet", 30, 50000)
	invoice, err := env.invoices.CreateInvoice(ctx, env.scope, &CreateInvoiceInput{
		CustomerName: "Mama Njeri",
		DueDate:      env.clock.Now().AddDate(0, 1, 0),
		Items:        []CartItem{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(54000), invoice.TotalAmount)

	updated, err := env.payments.PayInvoice(ctx, env.scope, invoice.ID, 20000, enum.PaymentMethodMobile)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPartiallyPaid, updated.Status)
	assert.Equal(t, int64(20000), updated.AmountPaid)

	updated, err = env.payments.PayInvoice(ctx, env.scope, invoice.ID, 34000, enum.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, updated.Status)
	assert.Equal(t, int64(54000), updated.AmountPaid)

	// Each allocation wrote a payment row and a ledger debit
	assert.Equal(t, int64(2), env.countRows(t, &entity.Payment{}))
	rows := env.ledgerRows(t)
	var debits int64
	for _, row := range rows {
		debits += row.Debit
	}
	assert.Equal(t, int64(54000), debits)
}

func TestRefreshTotalsRederivesStatus(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Timber 2x4", 50, 8000)
	invoice, err := env.invoices.CreateInvoice(ctx, env.scope, &CreateInvoiceInput{
		CustomerName: "Site Foreman",
		DueDate:      env.clock.Now().Add(72 * time.Hour),
		Items:        []CartItem{{ItemID: item.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = env.payments.PayInvoice(ctx, env.scope, invoice.ID, invoice.TotalAmount, enum.PaymentMethodCash)
	require.NoError(t, err)

	// Shrink a line behind the service; the refresh recomputes totals from
	// lines and the paid amount now covers the smaller total
	require.NoError(t, env.db.Model(&entity.InvoiceItem{}).
		Where("invoice_id = ?", invoice.ID).
		Updates(map[string]interface{}{"quantity": 3, "item_total": int64(24000)}).Error)

	refreshed, err := env.invoices.RefreshTotals(ctx, env.scope, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(24000), refreshed.SubTotal)
	assert.Equal(t, int64(25920), refreshed.TotalAmount)
	assert.Equal(t, enum.InvoiceStatusPaid, refreshed.Status)
}
