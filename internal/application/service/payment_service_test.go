package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/apperror"
)

func placePendingOrder(t *testing.T, env *testEnv, price int64) *entity.Order {
	t.Helper()
	item := env.createItem(t, "Gas Cylinder", 10, price)
	order, err := env.orders.PlaceSale(context.Background(), env.scope, &PlaceSaleInput{
		Items:          []CartItem{{ItemID: item.ID, Quantity: 1}},
		PaymentMethod:  enum.PaymentMethodCash,
		AmountReceived: 0,
	})
	require.NoError(t, err)
	return order
}

func placeBNPLPurchase(t *testing.T, env *testEnv, price, downPayment int64, installments int) *entity.BNPLPurchase {
	t.Helper()
	ctx := context.Background()
	item := env.createItem(t, "Sofa Set", 5, price)
	card := env.createCard(t, "CARD-"+uuid.NewString()[:8])
	provider := env.createProvider(t, "Provider-"+uuid.NewString()[:8])

	order, err := env.orders.PlaceSale(ctx, env.scope, &PlaceSaleInput{
		Items:             []CartItem{{ItemID: item.ID, Quantity: 1}},
		PaymentMethod:     enum.PaymentMethodBNPL,
		LoyaltyCardNumber: card.CardNumber,
		BNPL: &BNPLTerms{
			ProviderID:           provider.ID,
			DownPayment:          downPayment,
			NumberOfInstallments: installments,
			PaymentIntervalDays:  30,
		},
	})
	require.NoError(t, err)

	purchase, err := env.bnpl.GetPurchase(ctx, env.scope, mustPurchaseID(t, env, order.ID))
	require.NoError(t, err)
	return purchase
}

func TestPayOrderToSettlement(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	order := placePendingOrder(t, env, 10000) // total 108.00 with tax

	paid, err := env.payments.PayOrder(ctx, env.scope, order.ID, 5000, enum.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPartiallyPaid, paid.Status)
	assert.Equal(t, int64(5000), paid.AmountReceived)

	paid, err = env.payments.PayOrder(ctx, env.scope, order.ID, 5800, enum.PaymentMethodMobile)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPaid, paid.Status)
	assert.Equal(t, int64(10800), paid.AmountReceived)

	// One payment row per allocation, plus the one written at sale time
	assert.Equal(t, int64(3), env.countRows(t, &entity.Payment{}))
}

func TestPayOrderRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)

	order := placePendingOrder(t, env, 10000)

	_, err := env.payments.PayOrder(context.Background(), env.scope, order.ID, 0, enum.PaymentMethodCash)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPayOrderOverpaymentPolicies(t *testing.T) {
	t.Run("allow passes the excess through", func(t *testing.T) {
		env := newTestEnv(t, enum.OverpaymentPolicyAllow)
		order := placePendingOrder(t, env, 10000)

		paid, err := env.payments.PayOrder(context.Background(), env.scope, order.ID, 20000, enum.PaymentMethodCash)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), paid.AmountReceived)
		assert.Equal(t, enum.OrderStatusPaid, paid.Status)
	})

	t.Run("reject refuses the payment untouched", func(t *testing.T) {
		env := newTestEnv(t, enum.OverpaymentPolicyReject)
		order := placePendingOrder(t, env, 10000)

		_, err := env.payments.PayOrder(context.Background(), env.scope, order.ID, 20000, enum.PaymentMethodCash)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))

		// Nothing was applied
		after, err := env.orders.GetOrder(context.Background(), env.scope, order.ID)
		require.NoError(t, err)
		assert.Zero(t, after.AmountReceived)
		assert.Equal(t, enum.OrderStatusPending, after.Status)
	})

	t.Run("clamp settles exactly the outstanding balance", func(t *testing.T) {
		env := newTestEnv(t, enum.OverpaymentPolicyClamp)
		order := placePendingOrder(t, env, 10000)

		paid, err := env.payments.PayOrder(context.Background(), env.scope, order.ID, 20000, enum.PaymentMethodCash)
		require.NoError(t, err)
		assert.Equal(t, paid.TotalAmount, paid.AmountReceived)
		assert.Equal(t, enum.OrderStatusPaid, paid.Status)
	})
}

func TestMakeBNPLPaymentSingle(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	purchase := placeBNPLPurchase(t, env, 50000, 14000, 4)
	require.Len(t, purchase.Installments, 4)
	first := purchase.Installments[0]

	paymentsBefore := env.countRows(t, &entity.Payment{})
	ledgerBefore := env.countRows(t, &entity.BusinessLedger{})

	updated, err := env.payments.MakeBNPLPayment(ctx, env.scope, &BNPLPaymentInput{
		PurchaseID:    purchase.ID,
		Mode:          enum.InstallmentPaymentModeSingle,
		Amount:        10000,
		InstallmentID: &first.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(24000), updated.AmountPaid)
	assert.Equal(t, enum.BNPLPurchaseStatusPartiallyPaid, updated.Status)

	// Exactly one payment row and one ledger debit per allocation event
	assert.Equal(t, paymentsBefore+1, env.countRows(t, &entity.Payment{}))
	assert.Equal(t, ledgerBefore+1, env.countRows(t, &entity.BusinessLedger{}))

	settled, err := env.bnpl.GetPurchase(ctx, env.scope, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InstallmentStatusPaid, settled.Installments[0].Status)
	assert.Equal(t, int64(10000), settled.Installments[0].AmountPaid)
	require.NotNil(t, settled.Installments[0].PaidDate)

	// The order balance rolled up too
	order, err := env.orders.GetOrder(ctx, env.scope, settled.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(24000), order.AmountReceived)
}

func TestMakeBNPLPaymentSinglePaidTwice(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	purchase := placeBNPLPurchase(t, env, 50000, 14000, 4)
	first := purchase.Installments[0]

	_, err := env.payments.MakeBNPLPayment(ctx, env.scope, &BNPLPaymentInput{
		PurchaseID:    purchase.ID,
		Mode:          enum.InstallmentPaymentModeSingle,
		Amount:        10000,
		InstallmentID: &first.ID,
	})
	require.NoError(t, err)

	_, err = env.payments.MakeBNPLPayment(ctx, env.scope, &BNPLPaymentInput{
		PurchaseID:    purchase.ID,
		Mode:          enum.InstallmentPaymentModeSingle,
		Amount:        10000,
		InstallmentID: &first.ID,
	})
	require.Error(t, err)
}

// Sequential mode applies the full incoming amount to every installment it
// sweeps rather than splitting it across them. The books this engine replaces
// worked that way, so the behavior is pinned here on purpose.
func TestMakeBNPLPaymentSequentialAppliesSameAmountToEachInstallment(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	purchase := placeBNPLPurchase(t, env, 50000, 14000, 4)

	updated, err := env.payments.MakeBNPLPayment(ctx, env.scope, &BNPLPaymentInput{
		PurchaseID: purchase.ID,
		Mode:       enum.InstallmentPaymentModeSequential,
		Amount:     10000,
		Count:      2,
	})
	require.NoError(t, err)

	// Two installments swept, each credited the full 100.00
	assert.Equal(t, int64(14000+2*10000), updated.AmountPaid)

	settled, err := env.bnpl.GetPurchase(ctx, env.scope, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InstallmentStatusPaid, settled.Installments[0].Status)
	assert.Equal(t, int64(10000), settled.Installments[0].AmountPaid)
	assert.Equal(t, enum.InstallmentStatusPaid, settled.Installments[1].Status)
	assert.Equal(t, int64(10000), settled.Installments[1].AmountPaid)
	assert.Equal(t, enum.InstallmentStatusPending, settled.Installments[2].Status)
	assert.Equal(t, enum.InstallmentStatusPending, settled.Installments[3].Status)
}

func TestMakeBNPLPaymentSequentialTieBreaksOnCreationOrder(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	purchase := placeBNPLPurchase(t, env, 50000, 14000, 2)
	require.Len(t, purchase.Installments, 2)
	first, second := purchase.Installments[0], purchase.Installments[1]

	// Collapse the schedule onto one due date and make the later installment
	// the earlier-created one; a sweep must follow creation order, not
	// whatever the database happens to return
	sharedDue := env.clock.Now().AddDate(0, 0, 7)
	require.NoError(t, env.db.Model(&entity.BNPLInstallment{}).Where("id = ?", first.ID).
		Updates(map[string]interface{}{"due_date": sharedDue, "created_at": env.clock.Now()}).Error)
	require.NoError(t, env.db.Model(&entity.BNPLInstallment{}).Where("id = ?", second.ID).
		Updates(map[string]interface{}{"due_date": sharedDue, "created_at": env.clock.Now().Add(-time.Minute)}).Error)

	_, err := env.payments.MakeBNPLPayment(ctx, env.scope, &BNPLPaymentInput{
		PurchaseID: purchase.ID,
		Mode:       enum.InstallmentPaymentModeSequential,
		Amount:     20000,
		Count:      1,
	})
	require.NoError(t, err)

	var swept entity.BNPLInstallment
	require.NoError(t, env.db.First(&swept, "id = ?", second.ID).Error)
	assert.Equal(t, enum.InstallmentStatusPaid, swept.Status)

	var untouched entity.BNPLInstallment
	require.NoError(t, env.db.First(&untouched, "id = ?", first.ID).Error)
	assert.Equal(t, enum.InstallmentStatusPending, untouched.Status)
}

func TestMakeBNPLPaymentSequentialNoPendingInstallments(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	purchase := placeBNPLPurchase(t, env, 50000, 14000, 1)

	_, err := env.payments.MakeBNPLPayment(ctx, env.scope, &BNPLPaymentInput{
		PurchaseID: purchase.ID,
		Mode:       enum.InstallmentPaymentModeSequential,
		Amount:     40000,
	})
	require.NoError(t, err)

	_, err = env.payments.MakeBNPLPayment(ctx, env.scope, &BNPLPaymentInput{
		PurchaseID: purchase.ID,
		Mode:       enum.InstallmentPaymentModeSequential,
		Amount:     1000,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestPaySupplierInvoice(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	supplier, err := env.purchasing.CreateSupplier(ctx, env.scope, &entity.Supplier{Name: "Mombasa Traders"})
	require.NoError(t, err)

	invoice, err := env.purchasing.CreateSupplierInvoice(ctx, env.scope, &entity.SupplierInvoice{
		SupplierID:    supplier.ID,
		InvoiceNumber: "SUP-100",
		TotalAmount:   30000,
	})
	require.NoError(t, err)

	updated, err := env.payments.PaySupplierInvoice(ctx, env.scope, invoice.ID, 12000, enum.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, "Partially Paid", updated.Status)

	updated, err = env.payments.PaySupplierInvoice(ctx, env.scope, invoice.ID, 18000, enum.PaymentMethodMobile)
	require.NoError(t, err)
	assert.Equal(t, "Paid", updated.Status)

	// Supplier payments leave as ledger credits
	rows := env.ledgerRows(t)
	var credits int64
	for _, row := range rows {
		credits += row.Credit
	}
	assert.Equal(t, int64(30000), credits)
}
