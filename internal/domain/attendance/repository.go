package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	// GetStats aggregates marked attendance for the eligibility window.
	GetStats(ctx context.Context, employeeID string, from, to time.Time) (Stats, error)
	Update(ctx context.Context, att Attendance) error
}
