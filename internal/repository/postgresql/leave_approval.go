package postgresql

import (
	"context"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type approvalWorkflowRepositoryImpl struct {
	db *database.DB
}

func NewApprovalWorkflowRepository(db *database.DB) leave.ApprovalWorkflowRepository {
	return &approvalWorkflowRepositoryImpl{db: db}
}

// CreateSteps implements leave.ApprovalWorkflowRepository.
func (r *approvalWorkflowRepositoryImpl) CreateSteps(ctx context.Context, steps []leave.ApprovalStep) error {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO leave_approval_workflow (
            id, leave_request_id, level, approver_id, status,
            created_at, updated_at
        ) VALUES (
            uuidv7(), $1, $2, $3, $4,
            NOW(), NOW()
        )
    `

	for _, step := range steps {
		if _, err := q.Exec(ctx, query,
			step.LeaveRequestID, step.Level, step.ApproverID, step.Status,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetByRequest implements leave.ApprovalWorkflowRepository.
func (r *approvalWorkflowRepositoryImpl) GetByRequest(ctx context.Context, leaveRequestID string) ([]leave.ApprovalStep, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, leave_request_id, level, approver_id, status,
			   action_date, comments, created_at, updated_at
		FROM leave_approval_workflow
		WHERE leave_request_id = $1
		ORDER BY level
	`

	rows, err := q.Query(ctx, query, leaveRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]leave.ApprovalStep, 0)
	for rows.Next() {
		var step leave.ApprovalStep
		if err := rows.Scan(
			&step.ID, &step.LeaveRequestID, &step.Level, &step.ApproverID, &step.Status,
			&step.ActionDate, &step.Comments, &step.CreatedAt, &step.UpdatedAt,
		); err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return steps, nil
}

// UpdateStep implements leave.ApprovalWorkflowRepository. The pending guard
// keeps an already-decided step from being decided twice.
func (r *approvalWorkflowRepositoryImpl) UpdateStep(ctx context.Context, stepID string, status leave.ApprovalStatus, actionDate time.Time, comments *string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_approval_workflow
		SET status = $1,
			action_date = $2,
			comments = $3,
			updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
	`

	result, err := q.Exec(ctx, query, status, actionDate, comments, stepID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveAlreadyProcessed
	}
	return nil
}

// GetApproverChain implements leave.ApprovalWorkflowRepository. Approvers are
// active users who may approve leave, ordered with HR managers before admins
// so the final sign-off rests with an admin.
func (r *approvalWorkflowRepositoryImpl) GetApproverChain(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id
		FROM users
		WHERE role IN ('hr_manager', 'admin')
		  AND is_active = TRUE
		  AND deleted_at IS NULL
		ORDER BY CASE role WHEN 'hr_manager' THEN 1 ELSE 2 END, created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	approvers := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		approvers = append(approvers, id)
	}

	return approvers, nil
}
