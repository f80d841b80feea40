package leave

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompletedCycles_MonthlyFullYear(t *testing.T) {
	calc := NewAccrualCalculator()
	rule := leave.AccrualRule{RuleType: leave.RuleTypeMonthly}

	cycles := calc.CompletedCycles(rule, date(2024, time.January, 1), date(2024, time.December, 31))

	assert.Equal(t, 12, cycles)
}

func TestCompletedCycles_PartialCycleDoesNotCount(t *testing.T) {
	calc := NewAccrualCalculator()
	rule := leave.AccrualRule{RuleType: leave.RuleTypeMonthly}

	// Jan 1 through Jan 30: the first monthly cycle has not completed.
	assert.Equal(t, 0, calc.CompletedCycles(rule, date(2024, time.January, 1), date(2024, time.January, 30)))
	// Jan 1 through Jan 31 inclusive closes the first cycle.
	assert.Equal(t, 1, calc.CompletedCycles(rule, date(2024, time.January, 1), date(2024, time.January, 31)))
}

func TestCompletedCycles_QuarterlyAndYearly(t *testing.T) {
	calc := NewAccrualCalculator()

	quarterly := leave.AccrualRule{RuleType: leave.RuleTypeQuarterly}
	assert.Equal(t, 4, calc.CompletedCycles(quarterly, date(2024, time.January, 1), date(2024, time.December, 31)))

	yearly := leave.AccrualRule{RuleType: leave.RuleTypeYearly}
	assert.Equal(t, 1, calc.CompletedCycles(yearly, date(2024, time.January, 1), date(2024, time.December, 31)))
	assert.Equal(t, 0, calc.CompletedCycles(yearly, date(2024, time.January, 1), date(2024, time.November, 30)))
}

func TestCompletedCycles_CustomDayBased(t *testing.T) {
	calc := NewAccrualCalculator()
	freq := 10
	rule := leave.AccrualRule{RuleType: leave.RuleTypeCustom, FrequencyDays: &freq}

	// Jan 1 through Feb 4 inclusive is 35 elapsed days: three 10-day cycles.
	assert.Equal(t, 3, calc.CompletedCycles(rule, date(2024, time.January, 1), date(2024, time.February, 4)))
}

func TestCompletedCycles_CustomMonthBased(t *testing.T) {
	calc := NewAccrualCalculator()
	freq := 2
	rule := leave.AccrualRule{RuleType: leave.RuleTypeCustom, FrequencyMonths: &freq}

	assert.Equal(t, 6, calc.CompletedCycles(rule, date(2024, time.January, 1), date(2024, time.December, 31)))
}

func TestCompletedCycles_InvertedPeriod(t *testing.T) {
	calc := NewAccrualCalculator()
	rule := leave.AccrualRule{RuleType: leave.RuleTypeMonthly}

	assert.Equal(t, 0, calc.CompletedCycles(rule, date(2024, time.June, 1), date(2024, time.January, 1)))
}

func TestComputeAccrual_NoCap(t *testing.T) {
	calc := NewAccrualCalculator()
	rule := leave.AccrualRule{AccrualValue: days(1.5)}

	got := calc.ComputeAccrual(rule, 4, decimal.Zero)

	assert.True(t, got.Equal(days(6)), "got %s", got)
}

func TestComputeAccrual_CapLimitsCredit(t *testing.T) {
	calc := NewAccrualCalculator()
	maxDays := days(12)
	rule := leave.AccrualRule{AccrualValue: days(1), MaxDaysPerYear: &maxDays}

	// 11 already accrued this year, two cycles due: only one day fits.
	got := calc.ComputeAccrual(rule, 2, days(11))

	assert.True(t, got.Equal(days(1)), "got %s", got)
}

func TestComputeAccrual_AtCapCreditsNothing(t *testing.T) {
	calc := NewAccrualCalculator()
	maxDays := days(12)
	rule := leave.AccrualRule{AccrualValue: days(1), MaxDaysPerYear: &maxDays}

	assert.True(t, calc.ComputeAccrual(rule, 3, days(12)).IsZero())
	assert.True(t, calc.ComputeAccrual(rule, 3, days(14)).IsZero())
}

func TestComputeAccrual_ZeroCycles(t *testing.T) {
	calc := NewAccrualCalculator()
	rule := leave.AccrualRule{AccrualValue: days(1)}

	assert.True(t, calc.ComputeAccrual(rule, 0, decimal.Zero).IsZero())
}
