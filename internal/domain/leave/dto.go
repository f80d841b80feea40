package leave

import (
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

// CreateLeaveTypeRequest represents the request structure for creating a leave type.
type CreateLeaveTypeRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	DaysAllowed   float64 `json:"days_allowed"`
	CarryForward  bool    `json:"carry_forward"`
	SalaryPayable bool    `json:"salary_payable"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if r.DaysAllowed < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_allowed",
			Message: "days_allowed must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLeaveTypeRequest represents the request structure for updating a leave type.
type UpdateLeaveTypeRequest struct {
	ID            string   `json:"-"` // From URL
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	DaysAllowed   *float64 `json:"days_allowed,omitempty"`
	CarryForward  *bool    `json:"carry_forward,omitempty"`
	SalaryPayable *bool    `json:"salary_payable,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.DaysAllowed != nil && *r.DaysAllowed < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_allowed",
			Message: "days_allowed must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetAccrualRuleRequest replaces the active accrual rule for a leave type.
type SetAccrualRuleRequest struct {
	LeaveTypeID           string         `json:"-"` // From URL
	RuleType              string         `json:"rule_type"`
	AccrualValue          float64        `json:"accrual_value"`
	FrequencyDays         *int           `json:"frequency_days,omitempty"`
	FrequencyMonths       *int           `json:"frequency_months,omitempty"`
	MaxDaysPerYear        *float64       `json:"max_days_per_year,omitempty"`
	ApplicableAfterDays   int            `json:"applicable_after_days"`
	ApplyToProbation      bool           `json:"apply_to_probation"`
	MinWorkingDays        *int           `json:"min_working_days,omitempty"`
	MinAttendanceRequired *float64       `json:"min_attendance_required,omitempty"`
	CustomConditions      *ConditionNode `json:"custom_conditions,omitempty"`
	Notes                 *string        `json:"notes,omitempty"`
}

func (r *SetAccrualRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	switch RuleType(r.RuleType) {
	case RuleTypeMonthly, RuleTypeYearly, RuleTypeQuarterly:
	case RuleTypeCustom:
		hasDays := r.FrequencyDays != nil && *r.FrequencyDays > 0
		hasMonths := r.FrequencyMonths != nil && *r.FrequencyMonths > 0
		if !hasDays && !hasMonths {
			errs = append(errs, validator.ValidationError{
				Field:   "frequency_days",
				Message: "custom rules require frequency_days or frequency_months",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "rule_type",
			Message: "rule_type must be one of monthly, yearly, quarterly, custom",
		})
	}

	if r.AccrualValue <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accrual_value",
			Message: "accrual_value must be positive",
		})
	}
	if r.ApplicableAfterDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "applicable_after_days",
			Message: "applicable_after_days must not be negative",
		})
	}
	if r.MinAttendanceRequired != nil && (*r.MinAttendanceRequired < 0 || *r.MinAttendanceRequired > 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "min_attendance_required",
			Message: "min_attendance_required must be between 0 and 100",
		})
	}
	if r.MaxDaysPerYear != nil && *r.MaxDaysPerYear < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days_per_year",
			Message: "max_days_per_year must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateLeaveRequestRequest represents the request structure for submitting leave.
type CreateLeaveRequestRequest struct {
	EmployeeID       string  `json:"-"` // From JWT
	LeaveTypeID      string  `json:"leave_type_id"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	HalfDayType      *string `json:"half_day_type,omitempty"`
	Reason           string  `json:"reason"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.HalfDayType != nil {
		switch HalfDayType(*r.HalfDayType) {
		case HalfDayFirstHalf, HalfDaySecondHalf:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_type",
				Message: "half_day_type must be first_half or second_half",
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DecideRequestRequest carries an approver's decision on one workflow level.
type DecideRequestRequest struct {
	RequestID  string  `json:"-"` // From URL
	ApproverID string  `json:"-"` // From JWT
	Comments   *string `json:"comments,omitempty"`
	// Rejection only
	Reason *string `json:"reason,omitempty"`
}

func (r *DecideRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RunAccrualRequest triggers an on-demand accrual run.
type RunAccrualRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *RunAccrualRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLeaveRequestStatusRequest is the repository-level status transition.
type UpdateLeaveRequestStatusRequest struct {
	ID              string
	Status          LeaveStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
}
