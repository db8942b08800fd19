package service

import (
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
)

// DefaultFirstDueOffsetDays is the grace period before the first installment
// falls due
const DefaultFirstDueOffsetDays = 7

// InstallmentScheduleInput describes one schedule generation request
type InstallmentScheduleInput struct {
	Now                time.Time
	PerAmount          int64 // cents
	Count              int
	IntervalDays       int
	FirstDueOffsetDays int
}

// BuildInstallmentSchedule generates the installment records for a BNPL
// purchase. Due dates are now + firstDueOffset + interval*i for i = 1..count,
// so with offset 7 and interval 30 the dates land at T+37, T+67, T+97. Pure:
// same inputs always yield the same sequence. Count <= 0 yields an empty
// schedule; the cart computation upstream owns that value.
func BuildInstallmentSchedule(in InstallmentScheduleInput) []entity.BNPLInstallment {
	if in.Count <= 0 {
		return nil
	}
	offset := in.FirstDueOffsetDays
	if offset == 0 {
		offset = DefaultFirstDueOffsetDays
	}

	start := in.Now.AddDate(0, 0, offset)
	installments := make([]entity.BNPLInstallment, 0, in.Count)
	for i := 1; i <= in.Count; i++ {
		installments = append(installments, entity.BNPLInstallment{
			AmountExpected: in.PerAmount,
			DueDate:        start.AddDate(0, 0, in.IntervalDays*i),
			Status:         enum.InstallmentStatusPending,
		})
	}
	return installments
}
