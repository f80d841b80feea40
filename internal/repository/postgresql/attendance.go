package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/attendance"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO attendance (
            id, employee_id, date, status, clock_in, clock_out, notes,
            created_at, updated_at
        ) VALUES (
            uuidv7(), $1, $2, $3, $4, $5, $6,
            NOW(), NOW()
        )
        ON CONFLICT (employee_id, date) DO NOTHING
        RETURNING id, created_at, updated_at
    `

	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.Status, att.ClockIn, att.ClockOut, att.Notes,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
		return attendance.Attendance{}, err
	}

	return att, nil
}

// GetByEmployeeDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, date, status, clock_in, clock_out, notes,
			   created_at, updated_at
		FROM attendance
		WHERE employee_id = $1 AND date = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.Status, &att.ClockIn, &att.ClockOut, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, date, status, clock_in, clock_out, notes,
			   created_at, updated_at
		FROM attendance
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.Status, &att.ClockIn, &att.ClockOut, &att.Notes,
			&att.CreatedAt, &att.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, att)
	}

	return records, nil
}

// GetStats implements attendance.AttendanceRepository. Holidays and approved
// leave days are excluded from the denominator so they never count against
// the employee's attendance percentage.
func (r *attendanceRepositoryImpl) GetStats(ctx context.Context, employeeID string, from, to time.Time) (attendance.Stats, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present') AS present_days,
			COUNT(*) FILTER (WHERE status = 'half_day') AS half_days,
			COUNT(*) FILTER (WHERE status = 'absent') AS absent_days
		FROM attendance
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	var stats attendance.Stats
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&stats.PresentDays, &stats.HalfDays, &stats.AbsentDays,
	)
	if err != nil {
		return attendance.Stats{}, err
	}
	stats.CountedDays = stats.PresentDays + stats.HalfDays + stats.AbsentDays
	return stats, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendance
		SET status = $1, clock_in = $2, clock_out = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := q.Exec(ctx, query, att.Status, att.ClockIn, att.ClockOut, att.Notes, att.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
