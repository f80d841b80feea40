package leave

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
)

// AccrualCalculator turns an accrual rule and a run period into the number of
// days to credit. It is pure arithmetic: no partial cycles, no pro-rating.
type AccrualCalculator struct{}

func NewAccrualCalculator() *AccrualCalculator {
	return &AccrualCalculator{}
}

// CompletedCycles counts the accrual cycles that finish entirely inside
// [periodStart, periodEnd]. The period end is inclusive, so the boundary is
// pushed one day past it: a Jan 1 - Dec 31 period with monthly cycles yields
// twelve, the last one closing at midnight into Jan 1.
func (c *AccrualCalculator) CompletedCycles(rule leave.AccrualRule, periodStart, periodEnd time.Time) int {
	if periodEnd.Before(periodStart) {
		return 0
	}
	boundary := periodEnd.AddDate(0, 0, 1)

	if months := rule.CycleMonths(); months > 0 {
		cycles := 0
		for {
			next := periodStart.AddDate(0, (cycles+1)*months, 0)
			if next.After(boundary) {
				break
			}
			cycles++
		}
		return cycles
	}

	if days := rule.CycleDays(); days > 0 {
		elapsed := int(boundary.Sub(periodStart).Hours() / 24)
		return elapsed / days
	}

	return 0
}

// ComputeAccrual returns the days to credit for the given completed cycle
// count, capped so that year-to-date accrual never exceeds the rule's annual
// maximum. A balance already at or over the cap accrues nothing.
func (c *AccrualCalculator) ComputeAccrual(rule leave.AccrualRule, cycles int, ytdAccrued decimal.Decimal) decimal.Decimal {
	if cycles <= 0 {
		return decimal.Zero
	}

	earned := rule.AccrualValue.Mul(decimal.NewFromInt(int64(cycles)))

	if rule.MaxDaysPerYear != nil {
		headroom := rule.MaxDaysPerYear.Sub(ytdAccrued)
		if headroom.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero
		}
		if earned.GreaterThan(headroom) {
			return headroom
		}
	}

	return earned
}
