package leave

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
)

func TestApplyAccrual_CreatesBalanceOnFirstCredit(t *testing.T) {
	repo := newFakeBalanceRepo()
	reconciler := NewBalanceReconciler(repo)

	balance, err := reconciler.ApplyAccrual(context.Background(), "emp-1", "lt-1", 2024, days(2))

	require.NoError(t, err)
	assert.True(t, balance.AllocatedDays.Equal(days(2)))
	assert.True(t, balance.RemainingDays.Equal(days(2)))
	assert.NoError(t, balance.CheckInvariant())
}

func TestApplyAccrual_AccumulatesAcrossRuns(t *testing.T) {
	repo := newFakeBalanceRepo()
	reconciler := NewBalanceReconciler(repo)
	ctx := context.Background()

	_, err := reconciler.ApplyAccrual(ctx, "emp-1", "lt-1", 2024, days(2))
	require.NoError(t, err)
	balance, err := reconciler.ApplyAccrual(ctx, "emp-1", "lt-1", 2024, days(1.5))
	require.NoError(t, err)

	assert.True(t, balance.AllocatedDays.Equal(days(3.5)))
	assert.NoError(t, balance.CheckInvariant())
}

func TestApplyAccrual_RetriesOnVersionConflict(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.seed(leave.LeaveBalance{EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024})
	repo.injectConflicts = 2
	reconciler := NewBalanceReconciler(repo)

	balance, err := reconciler.ApplyAccrual(context.Background(), "emp-1", "lt-1", 2024, days(1))

	require.NoError(t, err)
	assert.True(t, balance.AllocatedDays.Equal(days(1)))
}

func TestApplyAccrual_GivesUpAfterBoundedRetries(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.seed(leave.LeaveBalance{EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024})
	repo.injectConflicts = 10
	reconciler := NewBalanceReconciler(repo)

	_, err := reconciler.ApplyAccrual(context.Background(), "emp-1", "lt-1", 2024, days(1))

	assert.ErrorIs(t, err, leave.ErrConcurrencyConflict)
}

func TestApplyDebit_InsufficientLeavesBalanceUntouched(t *testing.T) {
	repo := newFakeBalanceRepo()
	seeded := repo.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024,
		AllocatedDays: days(5),
	})
	reconciler := NewBalanceReconciler(repo)

	err := reconciler.ApplyDebit(context.Background(), "emp-1", "lt-1", 2024, days(6))

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	after := repo.get(seeded.ID)
	assert.True(t, after.RemainingDays.Equal(days(5)))
	assert.True(t, after.UsedDays.IsZero())
}

func TestApplyDebit_NoBalanceRowMeansInsufficient(t *testing.T) {
	reconciler := NewBalanceReconciler(newFakeBalanceRepo())

	err := reconciler.ApplyDebit(context.Background(), "emp-1", "lt-1", 2024, days(1))

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApplyDebit_ConcurrentDebitsCannotOverspend(t *testing.T) {
	repo := newFakeBalanceRepo()
	seeded := repo.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024,
		AllocatedDays: days(5),
	})
	reconciler := NewBalanceReconciler(repo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	amounts := []float64{4, 3}
	for i := range amounts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = reconciler.ApplyDebit(context.Background(), "emp-1", "lt-1", 2024, days(amounts[i]))
		}(i)
	}
	wg.Wait()

	// 4 + 3 > 5: exactly one debit may win.
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 1, succeeded)

	after := repo.get(seeded.ID)
	assert.NoError(t, after.CheckInvariant())
	assert.True(t, after.RemainingDays.GreaterThanOrEqual(days(0)))
}

func TestReverseDebit_BeyondUsedIsInvariantViolation(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024,
		AllocatedDays: days(10), UsedDays: days(2),
	})
	reconciler := NewBalanceReconciler(repo)

	err := reconciler.ReverseDebit(context.Background(), "emp-1", "lt-1", 2024, days(3))

	assert.ErrorIs(t, err, leave.ErrInvariantViolation)
}

func TestReverseDebit_RestoresRemaining(t *testing.T) {
	repo := newFakeBalanceRepo()
	seeded := repo.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024,
		AllocatedDays: days(10), UsedDays: days(4),
	})
	reconciler := NewBalanceReconciler(repo)

	err := reconciler.ReverseDebit(context.Background(), "emp-1", "lt-1", 2024, days(4))

	require.NoError(t, err)
	after := repo.get(seeded.ID)
	assert.True(t, after.UsedDays.IsZero())
	assert.True(t, after.RemainingDays.Equal(days(10)))
	assert.NoError(t, after.CheckInvariant())
}

func TestApplyEncashment(t *testing.T) {
	repo := newFakeBalanceRepo()
	seeded := repo.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024,
		AllocatedDays: days(10),
	})
	reconciler := NewBalanceReconciler(repo)

	require.NoError(t, reconciler.ApplyEncashment(context.Background(), "emp-1", "lt-1", 2024, days(3)))

	after := repo.get(seeded.ID)
	assert.True(t, after.EncashedDays.Equal(days(3)))
	assert.True(t, after.RemainingDays.Equal(days(7)))
	assert.NoError(t, after.CheckInvariant())

	err := reconciler.ApplyEncashment(context.Background(), "emp-1", "lt-1", 2024, days(8))
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestCarryForward_CappedAtAnnualAllowance(t *testing.T) {
	repo := newFakeBalanceRepo()
	seeded := repo.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024,
		AllocatedDays: days(25),
	})
	reconciler := NewBalanceReconciler(repo)

	leaveType := leave.LeaveType{ID: "lt-1", CarryForward: true, DaysAllowed: days(20)}
	next, err := reconciler.CarryForward(context.Background(), repo.get(seeded.ID), leaveType, 2025)

	require.NoError(t, err)
	assert.Equal(t, 2025, next.Year)
	assert.True(t, next.CarriedForward.Equal(days(20)))
	assert.True(t, next.RemainingDays.Equal(days(20)))
}

func TestCarryForward_DisabledTypeStartsFromZero(t *testing.T) {
	repo := newFakeBalanceRepo()
	seeded := repo.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024,
		AllocatedDays: days(8),
	})
	reconciler := NewBalanceReconciler(repo)

	leaveType := leave.LeaveType{ID: "lt-1", CarryForward: false, DaysAllowed: days(20)}
	next, err := reconciler.CarryForward(context.Background(), repo.get(seeded.ID), leaveType, 2025)

	require.NoError(t, err)
	assert.True(t, next.CarriedForward.IsZero())
	assert.True(t, next.RemainingDays.IsZero())
}

func TestCarryForward_IdempotentPerYear(t *testing.T) {
	repo := newFakeBalanceRepo()
	seeded := repo.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: "lt-1", Year: 2024,
		AllocatedDays: days(10),
	})
	reconciler := NewBalanceReconciler(repo)
	leaveType := leave.LeaveType{ID: "lt-1", CarryForward: true, DaysAllowed: days(20)}

	first, err := reconciler.CarryForward(context.Background(), repo.get(seeded.ID), leaveType, 2025)
	require.NoError(t, err)
	second, err := reconciler.CarryForward(context.Background(), repo.get(seeded.ID), leaveType, 2025)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.CarriedForward.Equal(days(10)))
}
