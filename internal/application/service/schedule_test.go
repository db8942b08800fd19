package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

func TestBuildInstallmentSchedule(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	schedule := BuildInstallmentSchedule(InstallmentScheduleInput{
		Now:          now,
		PerAmount:    150000,
		Count:        3,
		IntervalDays: 30,
	})
	require.Len(t, schedule, 3)

	// Default 7-day grace before the interval starts counting
	assert.Equal(t, now.AddDate(0, 0, 37), schedule[0].DueDate)
	assert.Equal(t, now.AddDate(0, 0, 67), schedule[1].DueDate)
	assert.Equal(t, now.AddDate(0, 0, 97), schedule[2].DueDate)

	for _, installment := range schedule {
		assert.Equal(t, int64(150000), installment.AmountExpected)
		assert.Equal(t, enum.InstallmentStatusPending, installment.Status)
		assert.Zero(t, installment.AmountPaid)
	}
}

func TestBuildInstallmentScheduleCustomOffset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	schedule := BuildInstallmentSchedule(InstallmentScheduleInput{
		Now:                now,
		PerAmount:          10000,
		Count:              2,
		IntervalDays:       14,
		FirstDueOffsetDays: 3,
	})
	require.Len(t, schedule, 2)
	assert.Equal(t, now.AddDate(0, 0, 17), schedule[0].DueDate)
	assert.Equal(t, now.AddDate(0, 0, 31), schedule[1].DueDate)
}

func TestBuildInstallmentScheduleZeroCount(t *testing.T) {
	assert.Nil(t, BuildInstallmentSchedule(InstallmentScheduleInput{Count: 0}))
	assert.Nil(t, BuildInstallmentSchedule(InstallmentScheduleInput{Count: -1}))
}

// Same inputs, same schedule: generation must be pure so a retried sale
// cannot produce a different payment plan.
func TestBuildInstallmentScheduleDeterministic(t *testing.T) {
	in := InstallmentScheduleInput{
		Now:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		PerAmount:    5000,
		Count:        4,
		IntervalDays: 7,
	}
	assert.Equal(t, BuildInstallmentSchedule(in), BuildInstallmentSchedule(in))
}
