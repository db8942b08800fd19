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

func TestPlaceSaleCash(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	soda := env.createItem(t, "Soda 500ml", 20, 1500)
	bread := env.createItem(t, "Bread", 10, 1299)

	order, err := env.orders.PlaceSale(ctx, env.scope, &PlaceSaleInput{
		Items: []CartItem{
			{ItemID: soda.ID, Quantity: 2},
			{ItemID: bread.ID, Quantity: 1},
		},
		PaymentMethod:  enum.PaymentMethodCash,
		AmountReceived: 5000,
		CustomerName:   "Walk-in",
	})
	require.NoError(t, err)

	// 2x15.00 + 12.99 = 42.99, 8% tax = 3.44, total 46.43
	assert.Equal(t, int64(4299), order.SubTotal)
	assert.Equal(t, int64(344), order.Tax)
	assert.Equal(t, int64(4643), order.TotalAmount)
	assert.Equal(t, int64(5000), order.AmountReceived)
	assert.Equal(t, int64(357), order.Change)
	assert.Equal(t, int64(4643), order.AmountPaid)
	assert.Equal(t, enum.OrderStatusPaid, order.Status)
	assert.Equal(t, enum.OrderTypePaid, order.OrderType)

	// Stock moved with the sale
	sodaAfter, err := env.inventory.GetItem(ctx, env.scope, soda.ID)
	require.NoError(t, err)
	assert.Equal(t, 18, sodaAfter.Quantity)
	breadAfter, err := env.inventory.GetItem(ctx, env.scope, bread.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, breadAfter.Quantity)

	// Exactly one payment row and one ledger debit for the paid amount
	assert.Equal(t, int64(1), env.countRows(t, &entity.Payment{}))
	rows := env.ledgerRows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, enum.RecordTypeDebit, rows[0].RecordType)
	assert.Equal(t, int64(4643), rows[0].Debit)
	assert.Zero(t, rows[0].Credit)
}

func TestPlaceSalePartialPayment(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Flour 2kg", 5, 20000)

	order, err := env.orders.PlaceSale(ctx, env.scope, &PlaceSaleInput{
		Items:          []CartItem{{ItemID: item.ID, Quantity: 1}},
		PaymentMethod:  enum.PaymentMethodCash,
		AmountReceived: 10000,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusPartiallyPaid, order.Status)
	assert.Zero(t, order.Change)
	assert.Equal(t, int64(10000), order.AmountPaid)
}

func TestPlaceSaleAccruesLoyaltyPoints(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "TV 32in", 3, 2500000)
	card := env.createCard(t, "CARD-001")

	_, err := env.orders.PlaceSale(ctx, env.scope, &PlaceSaleInput{
		Items:             []CartItem{{ItemID: item.ID, Quantity: 1}},
		PaymentMethod:     enum.PaymentMethodCash,
		AmountReceived:    2700000,
		LoyaltyCardNumber: card.CardNumber,
	})
	require.NoError(t, err)

	// Total 27,000.00 earns floor(27000/100) = 270 points
	updated, err := env.loyalty.GetCard(ctx, env.scope, card.ID)
	require.NoError(t, err)
	assert.InDelta(t, 270, updated.Points, 1e-9)
	assert.Equal(t, int64(2700000), updated.AmountSpend)
}

func TestPlaceSaleBNPL(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Fridge", 2, 50000)
	card := env.createCard(t, "CARD-002")
	provider := env.createProvider(t, "Lipa Polepole")

	order, err := env.orders.PlaceSale(ctx, env.scope, &PlaceSaleInput{
		Items:             []CartItem{{ItemID: item.ID, Quantity: 1}},
		PaymentMethod:     enum.PaymentMethodBNPL,
		LoyaltyCardNumber: card.CardNumber,
		BNPL: &BNPLTerms{
			ProviderID:           provider.ID,
			DownPayment:          14000,
			NumberOfInstallments: 4,
			PaymentIntervalDays:  30,
		},
	})
	require.NoError(t, err)

	// Subtotal 500.00, tax 40.00, total 540.00; down payment leaves 400.00
	// financed over 4 installments of 100.00
	assert.Equal(t, int64(54000), order.TotalAmount)
	assert.Equal(t, int64(14000), order.AmountReceived)
	assert.Equal(t, enum.OrderStatusPartiallyPaid, order.Status)
	assert.Equal(t, enum.OrderTypeBNPL, order.OrderType)

	purchase, err := env.bnpl.GetPurchase(ctx, env.scope, mustPurchaseID(t, env, order.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(40000), purchase.BNPLAmount)
	assert.Equal(t, int64(14000), purchase.AmountPaid)
	assert.Equal(t, int64(10000), purchase.InstallmentAmount)
	assert.Equal(t, enum.BNPLPurchaseStatusPartiallyPaid, purchase.Status)

	require.Len(t, purchase.Installments, 4)
	now := env.clock.Now()
	assert.WithinDuration(t, now.AddDate(0, 0, 37), purchase.Installments[0].DueDate, time.Second)
	assert.WithinDuration(t, now.AddDate(0, 0, 67), purchase.Installments[1].DueDate, time.Second)
	for _, installment := range purchase.Installments {
		assert.Equal(t, int64(10000), installment.AmountExpected)
		assert.Equal(t, enum.InstallmentStatusPending, installment.Status)
	}

	// Down payment hits the ledger as a debit
	rows := env.ledgerRows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(14000), rows[0].Debit)
}

func TestPlaceSaleBNPLRequiresTerms(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)

	item := env.createItem(t, "Radio", 2, 10000)

	_, err := env.orders.PlaceSale(context.Background(), env.scope, &PlaceSaleInput{
		Items:         []CartItem{{ItemID: item.ID, Quantity: 1}},
		PaymentMethod: enum.PaymentMethodBNPL,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPlaceSaleRollsBackOnInsufficientStock(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	plenty := env.createItem(t, "Sugar 1kg", 10, 1000)
	empty := env.createItem(t, "Rice 5kg", 0, 5000)

	_, err := env.orders.PlaceSale(ctx, env.scope, &PlaceSaleInput{
		Items: []CartItem{
			{ItemID: plenty.ID, Quantity: 2},
			{ItemID: empty.ID, Quantity: 1},
		},
		PaymentMethod:  enum.PaymentMethodCash,
		AmountReceived: 10000,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	// The whole sale rolled back: no rows, no stock movement
	after, err := env.inventory.GetItem(ctx, env.scope, plenty.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.Quantity)
	assert.Zero(t, env.countRows(t, &entity.Order{}))
	assert.Zero(t, env.countRows(t, &entity.Payment{}))
	assert.Zero(t, env.countRows(t, &entity.BusinessLedger{}))
}

func TestUpdateOrderItem(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Milk 500ml", 10, 600)

	order, err := env.orders.PlaceSale(ctx, env.scope, &PlaceSaleInput{
		Items:          []CartItem{{ItemID: item.ID, Quantity: 3}},
		PaymentMethod:  enum.PaymentMethodCash,
		AmountReceived: 0,
	})
	require.NoError(t, err)

	withItems, err := env.orders.GetOrder(ctx, env.scope, order.ID)
	require.NoError(t, err)
	require.Len(t, withItems.Items, 1)
	lineID := withItems.Items[0].ID

	updated, err := env.orders.UpdateOrderItem(ctx, env.scope, order.ID, lineID, enum.ItemUpdateActionIncrease, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), updated.SubTotal) // 5 x 6.00

	after, err := env.inventory.GetItem(ctx, env.scope, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, after.Quantity)

	updated, err = env.orders.UpdateOrderItem(ctx, env.scope, order.ID, lineID, enum.ItemUpdateActionDecrease, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2400), updated.SubTotal)

	// Decreasing a line to zero is an error; removal is explicit
	_, err = env.orders.UpdateOrderItem(ctx, env.scope, order.ID, lineID, enum.ItemUpdateActionDecrease, 4, nil)
	require.Error(t, err)

	updated, err = env.orders.UpdateOrderItem(ctx, env.scope, order.ID, lineID, enum.ItemUpdateActionRemove, 0, nil)
	require.NoError(t, err)
	assert.Zero(t, updated.SubTotal)
	assert.Zero(t, updated.TotalAmount)

	// Removal returned all units to stock
	after, err = env.inventory.GetItem(ctx, env.scope, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.Quantity)
}

// mustPurchaseID resolves the BNPL purchase created for an order
func mustPurchaseID(t *testing.T, env *testEnv, orderID uuid.UUID) uuid.UUID {
	t.Helper()
	var purchase entity.BNPLPurchase
	require.NoError(t, env.db.First(&purchase, "order_id = ?", orderID).Error)
	return purchase.ID
}
