package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Code        string
	Name        string
	Description *string

	DaysAllowed   decimal.Decimal // default annual quota
	CarryForward  bool
	SalaryPayable bool
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type RuleType string

const (
	RuleTypeMonthly   RuleType = "monthly"
	RuleTypeYearly    RuleType = "yearly"
	RuleTypeQuarterly RuleType = "quarterly"
	RuleTypeCustom    RuleType = "custom"
)

// AccrualRule entity. At most one non-deleted rule exists per leave type;
// replacing a rule soft-deletes the old row and inserts a new one.
type AccrualRule struct {
	ID          string
	LeaveTypeID string
	RuleType    RuleType

	AccrualValue    decimal.Decimal // days credited per completed cycle
	FrequencyDays   *int
	FrequencyMonths *int

	MaxDaysPerYear      *decimal.Decimal
	ApplicableAfterDays int
	ApplyToProbation    bool

	MinWorkingDays        *int
	MinAttendanceRequired *decimal.Decimal // percentage, 0-100

	CustomConditions *ConditionNode
	Notes            *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// CycleMonths returns the accrual cycle length in months, or 0 when the rule
// cycles in days.
func (r AccrualRule) CycleMonths() int {
	switch r.RuleType {
	case RuleTypeMonthly:
		return 1
	case RuleTypeQuarterly:
		return 3
	case RuleTypeYearly:
		return 12
	case RuleTypeCustom:
		if r.FrequencyMonths != nil && *r.FrequencyMonths > 0 {
			return *r.FrequencyMonths
		}
	}
	return 0
}

// CycleDays returns the accrual cycle length in days for day-based custom
// rules, or 0 when the rule cycles in months.
func (r AccrualRule) CycleDays() int {
	if r.CycleMonths() > 0 {
		return 0
	}
	if r.FrequencyDays != nil && *r.FrequencyDays > 0 {
		return *r.FrequencyDays
	}
	return 0
}

// LeaveBalance entity. One row per (employee, leave_type, year). Only the
// balance reconciler mutates these rows; Version backs the optimistic
// concurrency check on credits.
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	AllocatedDays  decimal.Decimal
	CarriedForward decimal.Decimal
	UsedDays       decimal.Decimal
	EncashedDays   decimal.Decimal
	RemainingDays  decimal.Decimal

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joins (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// CheckInvariant verifies remaining = allocated + carried - used - encashed.
func (b LeaveBalance) CheckInvariant() error {
	expected := b.AllocatedDays.Add(b.CarriedForward).Sub(b.UsedDays).Sub(b.EncashedDays)
	if !b.RemainingDays.Equal(expected) {
		return ErrInvariantViolation
	}
	return nil
}

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "pending"
	LeaveStatusApproved  LeaveStatus = "approved"
	LeaveStatusRejected  LeaveStatus = "rejected"
	LeaveStatusCancelled LeaveStatus = "cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
func (s LeaveStatus) IsTerminal() bool {
	return s == LeaveStatusRejected || s == LeaveStatusCancelled
}

type HalfDayType string

const (
	HalfDayFirstHalf  HalfDayType = "first_half"
	HalfDaySecondHalf HalfDayType = "second_half"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate   time.Time
	EndDate     time.Time
	HalfDayType *HalfDayType
	TotalDays   decimal.Decimal

	Reason           string
	EmergencyContact *string

	Status          LeaveStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	AppliedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	// Joins (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// TotalDaysFor computes the inclusive day count of [start, end], halved for a
// single-day half-day request. Computed once at creation; edits must
// re-validate against the balance before recomputing.
func TotalDaysFor(start, end time.Time, halfDay *HalfDayType) decimal.Decimal {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	if halfDay != nil && days == 1 {
		return decimal.NewFromFloat(0.5)
	}
	return decimal.NewFromInt(int64(days))
}

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// ApprovalStep is one level of the per-request approval workflow. The request
// is fully approved only when every level reaches approved.
type ApprovalStep struct {
	ID             string
	LeaveRequestID string
	Level          int
	ApproverID     string
	Status         ApprovalStatus
	ActionDate     *time.Time
	Comments       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
