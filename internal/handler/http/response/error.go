package response

import (
	"errors"
	"net/http"

	"github.com/zenithhr/hrms-backend-go/internal/domain/attendance"
	"github.com/zenithhr/hrms-backend-go/internal/domain/auth"
	"github.com/zenithhr/hrms-backend-go/internal/domain/company"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/department"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/designation"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/holiday"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/payrollperiod"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/shift"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/workweek"
	"github.com/zenithhr/hrms-backend-go/internal/domain/user"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrPasswordTooShort):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employees
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRuleNotFound):
		NotFound(w, "No accrual rule configured for this leave type")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, "Leave type is inactive", nil)
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotAnApprover):
		Forbidden(w, "You are not the pending approver for this request")
	case errors.Is(err, leave.ErrConcurrencyConflict):
		Conflict(w, "Balance was modified concurrently, please retry")

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")

	// Masters
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, designation.ErrDesignationNotFound):
		NotFound(w, "Designation not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, payrollperiod.ErrPayrollPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, workweek.ErrWorkWeekNotFound):
		NotFound(w, "Work week not found")
	case errors.Is(err, payrollperiod.ErrInvalidStatusChange):
		BadRequest(w, "Invalid payroll period status transition", nil)

	// Company
	case errors.Is(err, company.ErrSettingsNotFound):
		NotFound(w, "Company settings not found")
	case errors.Is(err, company.ErrSMTPSettingsNotFound):
		NotFound(w, "SMTP settings not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
