package leave

import "errors"

var (
	// No-op business states, not surfaced as failures to end users.
	ErrRuleNotFound    = errors.New("no accrual rule configured for leave type")
	ErrBalanceNotFound = errors.New("leave balance not found")

	// Business rule rejections, surfaced with actionable messages.
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrOverlappingLeave    = errors.New("overlapping leave request exists")
	ErrLeaveTypeInactive   = errors.New("leave type is inactive")

	ErrLeaveTypeNotFound     = errors.New("leave type not found")
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
	ErrNotAnApprover         = errors.New("user is not an approver for this request")

	// Retried internally with a bounded count, then surfaced as transient.
	ErrConcurrencyConflict = errors.New("balance modified concurrently")

	// Fatal: indicates a logic or data-integrity bug. Never auto-corrected.
	ErrInvariantViolation = errors.New("leave balance invariant violated")
)
