package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO leave_types (
            id, code, name, description,
            days_allowed, carry_forward, salary_payable, is_active,
            created_at, updated_at
        ) VALUES (
            uuidv7(), $1, $2, $3,
            $4, $5, $6, $7,
            NOW(), NOW()
        ) RETURNING id, created_at, updated_at
    `

	err := q.QueryRow(ctx, query,
		leaveType.Code, leaveType.Name, leaveType.Description,
		leaveType.DaysAllowed, leaveType.CarryForward, leaveType.SalaryPayable, leaveType.IsActive,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)

	if err != nil {
		return leave.LeaveType{}, err
	}

	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, code, name, description,
			   days_allowed, carry_forward, salary_payable, is_active,
			   created_at, updated_at, deleted_at
		FROM leave_types
		WHERE id = $1 AND deleted_at IS NULL
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Code, &lt.Name, &lt.Description,
		&lt.DaysAllowed, &lt.CarryForward, &lt.SalaryPayable, &lt.IsActive,
		&lt.CreatedAt, &lt.UpdatedAt, &lt.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, code, name, description,
			   days_allowed, carry_forward, salary_payable, is_active,
			   created_at, updated_at, deleted_at
		FROM leave_types
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Code, &lt.Name, &lt.Description,
			&lt.DaysAllowed, &lt.CarryForward, &lt.SalaryPayable, &lt.IsActive,
			&lt.CreatedAt, &lt.UpdatedAt, &lt.DeletedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}

	return types, nil
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DaysAllowed != nil {
		updates["days_allowed"] = *req.DaysAllowed
	}
	if req.CarryForward != nil {
		updates["carry_forward"] = *req.CarryForward
	}
	if req.SalaryPayable != nil {
		updates["salary_payable"] = *req.SalaryPayable
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for leave type update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE leave_types SET " +
		strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND deleted_at IS NULL", i)
	args = append(args, req.ID)

	result, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

// SoftDelete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_types
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}
