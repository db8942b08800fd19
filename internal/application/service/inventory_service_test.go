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

func TestAdjustRejectsUnderflow(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Cooking Oil 1L", 3, 4000)

	_, err := env.inventory.Adjust(ctx, env.scope, item.ID, -5, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	// The rejected adjustment changed nothing
	after, err := env.inventory.GetItem(ctx, env.scope, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Quantity)
}

func TestAdjustToExactlyZero(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Matches", 4, 50)

	after, err := env.inventory.Adjust(ctx, env.scope, item.ID, -4, nil)
	require.NoError(t, err)
	assert.Zero(t, after.Quantity)
}

func TestAdjustWritesAuditLog(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Salt 500g", 10, 300)

	_, err := env.inventory.Adjust(ctx, env.scope, item.ID, 5, nil)
	require.NoError(t, err)
	_, err = env.inventory.Adjust(ctx, env.scope, item.ID, -2, nil)
	require.NoError(t, err)

	var logs []entity.InventoryLog
	require.NoError(t, env.db.Where("item_id = ?", item.ID).Order("created_at ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, enum.StockActionAdd, logs[0].Action)
	assert.Equal(t, 5, logs[0].Quantity)
	assert.Equal(t, enum.StockActionRemove, logs[1].Action)
	assert.Equal(t, 2, logs[1].Quantity)
}

func TestRestockOrSell(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Tea Leaves", 5, 2500)

	after, err := env.inventory.RestockOrSell(ctx, env.scope, item.ID, enum.StockActionAdd, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, after.Quantity)

	after, err = env.inventory.RestockOrSell(ctx, env.scope, item.ID, enum.StockActionRemove, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, after.Quantity)

	_, err = env.inventory.RestockOrSell(ctx, env.scope, item.ID, enum.StockActionAdd, 0, nil)
	require.Error(t, err)
}

func TestAdjustScopedToBusiness(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	item := env.createItem(t, "Candles", 10, 200)

	otherScope := entity.Scope{BusinessID: env.scope.BusinessID, BranchID: env.scope.BranchID}
	otherScope.BusinessID[0] ^= 0xff

	_, err := env.inventory.Adjust(ctx, otherScope, item.ID, -1, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	after, err := env.inventory.GetItem(ctx, env.scope, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.Quantity)
}

func TestCreateItemValidation(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	_, err := env.inventory.CreateItem(ctx, env.scope, &CreateItemInput{Name: "", Quantity: 1})
	require.Error(t, err)

	_, err = env.inventory.CreateItem(ctx, env.scope, &CreateItemInput{Name: "Eggs", Quantity: -1})
	require.Error(t, err)
}
