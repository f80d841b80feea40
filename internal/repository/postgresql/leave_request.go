package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO leave_requests (
            id, employee_id, leave_type_id,
            start_date, end_date, half_day_type, total_days,
            reason, emergency_contact, status,
            applied_at, created_at, updated_at
        ) VALUES (
            uuidv7(), $1, $2,
            $3, $4, $5, $6,
            $7, $8, $9,
            NOW(), NOW(), NOW()
        ) RETURNING id, applied_at, created_at, updated_at
    `

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.HalfDayType, request.TotalDays,
		request.Reason, request.EmergencyContact, request.Status,
	).Scan(&request.ID, &request.AppliedAt, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.half_day_type, lr.total_days,
			   lr.reason, lr.emergency_contact,
			   lr.status, lr.approved_by, lr.approved_at, lr.rejection_reason,
			   lr.applied_at, lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1 AND lr.deleted_at IS NULL
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.HalfDayType, &req.TotalDays,
		&req.Reason, &req.EmergencyContact,
		&req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason,
		&req.AppliedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.LeaveTypeName, &req.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.half_day_type, lr.total_days,
			   lr.reason, lr.emergency_contact,
			   lr.status, lr.approved_by, lr.approved_at, lr.rejection_reason,
			   lr.applied_at, lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1 AND lr.deleted_at IS NULL
		ORDER BY lr.applied_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID,
			&req.StartDate, &req.EndDate, &req.HalfDayType, &req.TotalDays,
			&req.Reason, &req.EmergencyContact,
			&req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason,
			&req.AppliedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.LeaveStatus) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.half_day_type, lr.total_days,
			   lr.reason, lr.emergency_contact,
			   lr.status, lr.approved_by, lr.approved_at, lr.rejection_reason,
			   lr.applied_at, lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.status = $1 AND lr.deleted_at IS NULL
		ORDER BY lr.applied_at
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID,
			&req.StartDate, &req.EndDate, &req.HalfDayType, &req.TotalDays,
			&req.Reason, &req.EmergencyContact,
			&req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason,
			&req.AppliedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.LeaveTypeName, &req.EmployeeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// HasOverlapping implements leave.LeaveRequestRepository. Date ranges are
// inclusive on both ends, so two ranges overlap when each starts on or before
// the other ends.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND deleted_at IS NULL
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus implements leave.LeaveRequestRepository. The status guard
// refuses to move a request out of a terminal state.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, req leave.UpdateLeaveRequestStatusRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
		SET status = $1,
			approved_by = $2,
			approved_at = $3,
			rejection_reason = $4,
			updated_at = NOW()
		WHERE id = $5
		  AND deleted_at IS NULL
		  AND status NOT IN ('rejected', 'cancelled')
	`

	result, err := q.Exec(ctx, query,
		req.Status, req.ApprovedBy, req.ApprovedAt, req.RejectionReason, req.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveAlreadyProcessed
	}
	return nil
}
