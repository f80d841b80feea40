package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	SoftDelete(ctx context.Context, id string) error
}

// AccrualRuleRepository - interface for leave_accrual_rules table
type AccrualRuleRepository interface {
	Create(ctx context.Context, rule AccrualRule) (AccrualRule, error)
	// GetActiveByLeaveType returns the single non-deleted rule for the leave
	// type, or ErrRuleNotFound when none is configured.
	GetActiveByLeaveType(ctx context.Context, leaveTypeID string) (AccrualRule, error)
	ListActive(ctx context.Context) ([]AccrualRule, error)
	SoftDelete(ctx context.Context, id string) error
}

// LeaveBalanceRepository - interface for leave_balances table. Guarded
// updates enforce the balance invariants in a single statement: a zero
// rows-affected result maps to the business error noted per method.
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	// CreditAllocated adds days to allocated_days and remaining_days together,
	// guarded by the version column; ErrConcurrencyConflict on version mismatch.
	CreditAllocated(ctx context.Context, balanceID string, days decimal.Decimal, expectedVersion int64) error
	// Debit moves days into used_days, guarded by remaining_days >= days;
	// ErrInsufficientBalance when the guard fails.
	Debit(ctx context.Context, balanceID string, days decimal.Decimal) error
	// ReverseDebit undoes a prior debit, guarded by used_days >= days;
	// ErrInvariantViolation when the guard fails.
	ReverseDebit(ctx context.Context, balanceID string, days decimal.Decimal) error
	// Encash moves days into encashed_days, guarded by remaining_days >= days;
	// ErrInsufficientBalance when the guard fails.
	Encash(ctx context.Context, balanceID string, days decimal.Decimal) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status LeaveStatus) ([]LeaveRequest, error)
	// HasOverlapping reports whether a pending or approved request for the
	// employee intersects [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, req UpdateLeaveRequestStatusRequest) error
}

// ApprovalWorkflowRepository - interface for leave_approval_workflow table
type ApprovalWorkflowRepository interface {
	CreateSteps(ctx context.Context, steps []ApprovalStep) error
	GetByRequest(ctx context.Context, leaveRequestID string) ([]ApprovalStep, error)
	UpdateStep(ctx context.Context, stepID string, status ApprovalStatus, actionDate time.Time, comments *string) error
	// GetApproverChain returns the configured approver user IDs in level order
	// for new requests.
	GetApproverChain(ctx context.Context) ([]string, error)
}
