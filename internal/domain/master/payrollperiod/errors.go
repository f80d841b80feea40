package payrollperiod

import "errors"

var (
	ErrPayrollPeriodNotFound = errors.New("payroll period not found")
	ErrInvalidStatusChange   = errors.New("invalid payroll period status transition")
)
