package attendance

import (
	"context"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/domain/attendance"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
)

type Service struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// Mark records one attendance entry. Marking the same employee and date twice
// fails with ErrAlreadyMarked; corrections go through Update.
func (s *Service) Mark(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, att.EmployeeID); err != nil {
		return attendance.Attendance{}, err
	}
	// Normalize to a date; clock times carry the moment.
	att.Date = truncateToDay(att.Date)
	return s.attendanceRepo.Create(ctx, att)
}

// ClockIn marks today as present with the current time, or stamps the clock-in
// on an existing row that has none.
func (s *Service) ClockIn(ctx context.Context, employeeID string, now time.Time) (attendance.Attendance, error) {
	today := truncateToDay(now)

	existing, err := s.attendanceRepo.GetByEmployeeDate(ctx, employeeID, today)
	if err == nil {
		if existing.ClockIn != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
		existing.ClockIn = &now
		if err := s.attendanceRepo.Update(ctx, existing); err != nil {
			return attendance.Attendance{}, err
		}
		return existing, nil
	}

	return s.Mark(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		Status:     attendance.StatusPresent,
		ClockIn:    &now,
	})
}

// ClockOut stamps the clock-out time on today's row.
func (s *Service) ClockOut(ctx context.Context, employeeID string, now time.Time) (attendance.Attendance, error) {
	existing, err := s.attendanceRepo.GetByEmployeeDate(ctx, employeeID, truncateToDay(now))
	if err != nil {
		return attendance.Attendance{}, err
	}
	existing.ClockOut = &now
	if err := s.attendanceRepo.Update(ctx, existing); err != nil {
		return attendance.Attendance{}, err
	}
	return existing, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return s.attendanceRepo.ListByEmployee(ctx, employeeID, from, to)
}

func (s *Service) Stats(ctx context.Context, employeeID string, from, to time.Time) (attendance.Stats, error) {
	return s.attendanceRepo.GetStats(ctx, employeeID, from, to)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
