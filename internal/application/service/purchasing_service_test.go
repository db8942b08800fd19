package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/pkg/apperror"
)

func createSupplier(t *testing.T, env *testEnv, name string) *entity.Supplier {
	t.Helper()
	supplier, err := env.purchasing.CreateSupplier(context.Background(), env.scope, &entity.Supplier{Name: name})
	require.NoError(t, err)
	return supplier
}

func TestAddItemResolvesUnitCost(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	supplier := createSupplier(t, env, "Nakuru Wholesalers")
	item := env.createItem(t, "Rice 25kg", 0, 60000) // buying price 300.00

	order, err := env.purchasing.CreatePurchaseOrder(ctx, env.scope, supplier.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pending", order.Status)

	// Without a supplier link the line costs the item's buying price
	order, err = env.purchasing.AddItem(ctx, env.scope, order.ID, item.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), order.TotalAmount)

	// A negotiated supplier price overrides the buying price
	require.NoError(t, env.db.Create(&entity.ProductSupplier{
		BusinessID: env.scope.BusinessID,
		ProductID:  item.ID,
		SupplierID: supplier.ID,
		CostPrice:  25000,
	}).Error)

	order, err = env.purchasing.AddItem(ctx, env.scope, order.ID, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(300000+100000), order.TotalAmount)
}

func TestUpdateItemAdjustsOrderTotal(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	supplier := createSupplier(t, env, "Eldoret Grain")
	item := env.createItem(t, "Maize Flour 2kg", 0, 2400) // buying price 12.00

	order, err := env.purchasing.CreatePurchaseOrder(ctx, env.scope, supplier.ID, nil)
	require.NoError(t, err)
	order, err = env.purchasing.AddItem(ctx, env.scope, order.ID, item.ID, 10)
	require.NoError(t, err)
	require.Equal(t, int64(12000), order.TotalAmount)

	var line entity.PurchaseOrderItem
	require.NoError(t, env.db.Where("purchase_order_id = ?", order.ID).First(&line).Error)

	order, err = env.purchasing.UpdateItem(ctx, env.scope, order.ID, line.ID, enum.ItemUpdateActionIncrease, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(18000), order.TotalAmount)

	order, err = env.purchasing.UpdateItem(ctx, env.scope, order.ID, line.ID, enum.ItemUpdateActionDecrease, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(14400), order.TotalAmount)

	// Decreasing to zero is a removal, not a decrease
	_, err = env.purchasing.UpdateItem(ctx, env.scope, order.ID, line.ID, enum.ItemUpdateActionDecrease, 12)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	order, err = env.purchasing.UpdateItem(ctx, env.scope, order.ID, line.ID, enum.ItemUpdateActionRemove, 0)
	require.NoError(t, err)
	assert.Zero(t, order.TotalAmount)
}

func TestReceiveGoodsRestocksInventory(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	supplier := createSupplier(t, env, "Thika Beverages")
	item := env.createItem(t, "Soda Crate", 2, 48000)

	order, err := env.purchasing.CreatePurchaseOrder(ctx, env.scope, supplier.ID, nil)
	require.NoError(t, err)
	_, err = env.purchasing.AddItem(ctx, env.scope, order.ID, item.ID, 10)
	require.NoError(t, err)

	var poLine entity.PurchaseOrderItem
	require.NoError(t, env.db.Where("purchase_order_id = ?", order.ID).First(&poLine).Error)

	line, err := env.purchasing.ReceiveGoods(ctx, env.scope, poLine.ID, 6, nil)
	require.NoError(t, err)
	assert.Equal(t, "Partially Received", line.Status)
	assert.Equal(t, 6, line.ReceivedQuantity)

	stocked, err := env.inventory.GetItem(ctx, env.scope, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stocked.Quantity)

	// Receiving more than the outstanding balance is refused
	_, err = env.purchasing.ReceiveGoods(ctx, env.scope, poLine.ID, 5, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	line, err = env.purchasing.ReceiveGoods(ctx, env.scope, poLine.ID, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, "Received", line.Status)
	assert.Equal(t, 10, line.ReceivedQuantity)

	stocked, err = env.inventory.GetItem(ctx, env.scope, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stocked.Quantity)
}

func TestSupplyRequestFlow(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Sugar 1kg", 1, 1800)

	request, err := env.purchasing.CreateSupplyRequest(ctx, env.scope, item.ID, 50, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pending", request.Status)

	request, err = env.purchasing.UpdateSupplyRequestStatus(ctx, env.scope, request.ID, "Approved")
	require.NoError(t, err)
	assert.Equal(t, "Approved", request.Status)

	_, err = env.purchasing.CreateSupplyRequest(ctx, env.scope, item.ID, 0, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCreateSupplierInvoiceRequiresKnownSupplier(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	supplier := createSupplier(t, env, "Kisumu Fisheries")

	invoice, err := env.purchasing.CreateSupplierInvoice(ctx, env.scope, &entity.SupplierInvoice{
		SupplierID:    supplier.ID,
		InvoiceNumber: "SUP-200",
		TotalAmount:   90000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Unpaid", invoice.Status)
	assert.False(t, invoice.InvoiceDate.IsZero())

	otherScope := entity.Scope{BusinessID: env.scope.BusinessID, BranchID: env.scope.BranchID}
	otherScope.BusinessID[0] ^= 0xff
	_, err = env.purchasing.CreateSupplierInvoice(ctx, otherScope, &entity.SupplierInvoice{
		SupplierID:  supplier.ID,
		TotalAmount: 1000,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
