package leave

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/metrics"
)

// creditRetries bounds the optimistic-concurrency retry loop on credits.
const creditRetries = 3

// BalanceReconciler is the only component that mutates leave balances. Every
// mutation goes through a guarded SQL update so the balance invariant
// (remaining = allocated + carried - used - encashed) holds under concurrency.
type BalanceReconciler struct {
	balanceRepo leave.LeaveBalanceRepository
}

func NewBalanceReconciler(balanceRepo leave.LeaveBalanceRepository) *BalanceReconciler {
	return &BalanceReconciler{balanceRepo: balanceRepo}
}

// ApplyAccrual credits days to the employee's balance for the year, creating
// the balance row on first accrual. The credit is version-checked; a conflict
// means another writer got there first, so the balance is re-read and the
// credit retried a bounded number of times.
func (r *BalanceReconciler) ApplyAccrual(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (leave.LeaveBalance, error) {
	if days.LessThanOrEqual(decimal.Zero) {
		return leave.LeaveBalance{}, nil
	}

	var lastErr error
	for attempt := 0; attempt < creditRetries; attempt++ {
		balance, err := r.balanceRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
		if errors.Is(err, leave.ErrBalanceNotFound) {
			balance, err = r.balanceRepo.Create(ctx, leave.LeaveBalance{
				EmployeeID:  employeeID,
				LeaveTypeID: leaveTypeID,
				Year:        year,
			})
			// A concurrent run may have created the row between the read and
			// the insert; fall through to the re-read on the next attempt.
			if err != nil {
				lastErr = err
				continue
			}
		} else if err != nil {
			return leave.LeaveBalance{}, err
		}

		err = r.balanceRepo.CreditAllocated(ctx, balance.ID, days, balance.Version)
		if err == nil {
			metrics.AccrualDaysCredited.Add(days.InexactFloat64())
			return r.balanceRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
		}
		if !errors.Is(err, leave.ErrConcurrencyConflict) {
			return leave.LeaveBalance{}, err
		}

		metrics.BalanceConflictsTotal.Inc()
		slog.Warn("balance credit conflict, retrying",
			"employee_id", employeeID,
			"leave_type_id", leaveTypeID,
			"year", year,
			"attempt", attempt+1,
		)
		lastErr = err
	}

	return leave.LeaveBalance{}, lastErr
}

// ApplyDebit moves days from remaining to used. The guard in the repository
// rejects overdraw atomically, so two racing debits can never both succeed
// against the same remaining days.
func (r *BalanceReconciler) ApplyDebit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	balance, err := r.balanceRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	if errors.Is(err, leave.ErrBalanceNotFound) {
		metrics.DebitFailuresTotal.WithLabelValues("no_balance").Inc()
		return leave.ErrInsufficientBalance
	}
	if err != nil {
		return err
	}

	if err := r.balanceRepo.Debit(ctx, balance.ID, days); err != nil {
		if errors.Is(err, leave.ErrInsufficientBalance) {
			metrics.DebitFailuresTotal.WithLabelValues("insufficient").Inc()
		}
		return err
	}
	return nil
}

// ReverseDebit returns previously debited days, used when an approved request
// is cancelled. Reversing more than was used indicates corrupted books and
// surfaces as an invariant violation, never as a silent correction.
func (r *BalanceReconciler) ReverseDebit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	balance, err := r.balanceRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}
	return r.balanceRepo.ReverseDebit(ctx, balance.ID, days)
}

// ApplyEncashment converts remaining days to encashed days.
func (r *BalanceReconciler) ApplyEncashment(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	balance, err := r.balanceRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	if errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	return r.balanceRepo.Encash(ctx, balance.ID, days)
}

// CarryForward opens the next year's balance row, carrying over the remaining
// days capped at the leave type's annual allowance. Types without carry
// forward start the year from zero.
func (r *BalanceReconciler) CarryForward(ctx context.Context, balance leave.LeaveBalance, leaveType leave.LeaveType, nextYear int) (leave.LeaveBalance, error) {
	carried := decimal.Zero
	if leaveType.CarryForward {
		carried = balance.RemainingDays
		if carried.GreaterThan(leaveType.DaysAllowed) {
			carried = leaveType.DaysAllowed
		}
		if carried.LessThan(decimal.Zero) {
			carried = decimal.Zero
		}
	}

	existing, err := r.balanceRepo.GetByEmployeeTypeYear(ctx, balance.EmployeeID, balance.LeaveTypeID, nextYear)
	if err == nil {
		// Already opened, carry forward is idempotent per year.
		return existing, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.LeaveBalance{}, err
	}

	return r.balanceRepo.Create(ctx, leave.LeaveBalance{
		EmployeeID:     balance.EmployeeID,
		LeaveTypeID:    balance.LeaveTypeID,
		Year:           nextYear,
		CarriedForward: carried,
	})
}
