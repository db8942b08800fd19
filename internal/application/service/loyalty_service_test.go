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

func TestAccrueFloorsPoints(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	card := env.createCard(t, "LOYAL-01")

	// 250.50 spent earns floor(250.50/100) = 2 points
	points, err := env.loyalty.Accrue(ctx, env.scope, card.CardNumber, 25050)
	require.NoError(t, err)
	assert.InDelta(t, 2, points, 1e-9)

	updated, err := env.loyalty.GetCard(ctx, env.scope, card.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2, updated.Points, 1e-9)
	assert.Equal(t, int64(25050), updated.AmountSpend)
}

func TestAccrueUnknownCardIsNoOp(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	points, err := env.loyalty.Accrue(ctx, env.scope, "", 50000)
	require.NoError(t, err)
	assert.Zero(t, points)

	points, err = env.loyalty.Accrue(ctx, env.scope, "NO-SUCH-CARD", 50000)
	require.NoError(t, err)
	assert.Zero(t, points)
}

func TestRedeemInsufficientPoints(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	card := env.createCard(t, "LOYAL-02")
	_, err := env.loyalty.Accrue(ctx, env.scope, card.CardNumber, 30000) // 3 points
	require.NoError(t, err)

	err = env.loyalty.Redeem(ctx, env.scope, card.CardNumber, 5)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientPoints))

	// Balance untouched by the failed redemption
	updated, err := env.loyalty.GetCard(ctx, env.scope, card.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3, updated.Points, 1e-9)
}

func TestRedeemConvertsPointsToCredit(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	card := env.createCard(t, "LOYAL-03")
	_, err := env.loyalty.Accrue(ctx, env.scope, card.CardNumber, 100000) // 10 points
	require.NoError(t, err)

	require.NoError(t, env.loyalty.Redeem(ctx, env.scope, card.CardNumber, 4))

	updated, err := env.loyalty.GetCard(ctx, env.scope, card.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6, updated.Points, 1e-9)
	// 1 point = 1.00 of credit on top of the card's default line
	assert.Equal(t, card.AvailableCredit+400, updated.AvailableCredit)
}

func TestReconcileMatchesAuditTrail(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	card := env.createCard(t, "LOYAL-04")
	_, err := env.loyalty.Accrue(ctx, env.scope, card.CardNumber, 100000)
	require.NoError(t, err)
	require.NoError(t, env.loyalty.Redeem(ctx, env.scope, card.CardNumber, 3))

	require.NoError(t, env.loyalty.Reconcile(ctx, env.scope, card.ID))
}

func TestReconcileDetectsDrift(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	card := env.createCard(t, "LOYAL-05")
	_, err := env.loyalty.Accrue(ctx, env.scope, card.CardNumber, 100000)
	require.NoError(t, err)

	// Corrupt the cached balance behind the service's back
	require.NoError(t, env.db.Model(&entity.LoyaltyCard{}).
		Where("id = ?", card.ID).
		Update("points", 99).Error)

	err = env.loyalty.Reconcile(ctx, env.scope, card.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInconsistentState))
}

func TestStoreCreditLifecycle(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	card := env.createCard(t, "LOYAL-06")

	loan, err := env.loyalty.IssueStoreCredit(ctx, env.scope, card.CardNumber, 50000, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), loan.TotalAmount)

	// A second issuance extends the open loan instead of opening another
	loan, err = env.loyalty.IssueStoreCredit(ctx, env.scope, card.CardNumber, 25000, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), loan.TotalAmount)
	assert.Equal(t, int64(1), env.countRows(t, &entity.StoreLoan{}))

	updated, err := env.loyalty.GetCard(ctx, env.scope, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.AvailableCredit-75000, updated.AvailableCredit)
	assert.Equal(t, int64(75000), updated.CreditIssued)

	repaid, err := env.loyalty.RepayStoreLoan(ctx, env.scope, loan.ID, 30000, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), repaid.AmountPaid)

	updated, err = env.loyalty.GetCard(ctx, env.scope, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.AvailableCredit-45000, updated.AvailableCredit)
	assert.Equal(t, int64(45000), updated.CreditIssued)
}

func TestIssueStoreCreditInsufficientCredit(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	card := env.createCard(t, "LOYAL-07")

	_, err := env.loyalty.IssueStoreCredit(ctx, env.scope, card.CardNumber, card.AvailableCredit+1, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientCredit))
}

func TestCreateCardDuplicateNumber(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)

	env.createCard(t, "LOYAL-08")

	_, err := env.loyalty.CreateCard(context.Background(), env.scope, &CreateCardInput{
		CardNumber:   "LOYAL-08",
		CustomerName: "Someone Else",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}
