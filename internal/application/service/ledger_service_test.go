package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

func TestLedgerRecordDebitXorCredit(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	debit, err := env.ledger.Record(ctx, env.scope, &RecordInput{
		RecordType: enum.RecordTypeDebit,
		Amount:     15000,
		Reason:     "sale",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), debit.Debit)
	assert.Zero(t, debit.Credit)

	credit, err := env.ledger.Record(ctx, env.scope, &RecordInput{
		RecordType: enum.RecordTypeCredit,
		Amount:     4000,
		Reason:     "rent",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4000), credit.Credit)
	assert.Zero(t, credit.Debit)
}

func TestLedgerRecordRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	for _, amount := range []int64{0, -100} {
		_, err := env.ledger.Record(ctx, env.scope, &RecordInput{
			RecordType: enum.RecordTypeDebit,
			Amount:     amount,
			Reason:     "bad",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	}
}

func TestLedgerTotals(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	for _, in := range []RecordInput{
		{RecordType: enum.RecordTypeDebit, Amount: 10000, Reason: "sale"},
		{RecordType: enum.RecordTypeDebit, Amount: 2500, Reason: "sale"},
		{RecordType: enum.RecordTypeCredit, Amount: 4000, Reason: "stock purchase"},
	} {
		in := in
		_, err := env.ledger.Record(ctx, env.scope, &in)
		require.NoError(t, err)
	}

	debit, credit, err := env.ledger.Totals(ctx, env.scope, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12500), debit)
	assert.Equal(t, int64(4000), credit)
}

func TestLedgerListFiltersByType(t *testing.T) {
	env := newTestEnv(t, enum.OverpaymentPolicyAllow)
	ctx := context.Background()

	_, err := env.ledger.Record(ctx, env.scope, &RecordInput{RecordType: enum.RecordTypeDebit, Amount: 100, Reason: "a"})
	require.NoError(t, err)
	_, err = env.ledger.Record(ctx, env.scope, &RecordInput{RecordType: enum.RecordTypeCredit, Amount: 200, Reason: "b"})
	require.NoError(t, err)

	recordType := enum.RecordTypeCredit
	rows, total, err := env.ledger.List(ctx, env.scope, &repository.LedgerFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		RecordType: &recordType,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(200), rows[0].Credit)
}
