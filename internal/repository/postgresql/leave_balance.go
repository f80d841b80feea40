package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO leave_balances (
            id, employee_id, leave_type_id, year,
            allocated_days, carried_forward, used_days, encashed_days, remaining_days,
            version, created_at, updated_at
        ) VALUES (
            uuidv7(), $1, $2, $3,
            $4, $5, $6, $7, $4 + $5 - $6 - $7,
            1, NOW(), NOW()
        ) RETURNING id, remaining_days, version, created_at, updated_at
    `

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.AllocatedDays, balance.CarriedForward, balance.UsedDays, balance.EncashedDays,
	).Scan(&balance.ID, &balance.RemainingDays, &balance.Version, &balance.CreatedAt, &balance.UpdatedAt)

	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        SELECT id, employee_id, leave_type_id, year,
               allocated_days, carried_forward, used_days, encashed_days, remaining_days,
               version, created_at, updated_at
        FROM leave_balances
        WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
    `

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
		&balance.AllocatedDays, &balance.CarriedForward, &balance.UsedDays, &balance.EncashedDays, &balance.RemainingDays,
		&balance.Version, &balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return balance, nil
}

// GetByEmployeeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.year,
               lb.allocated_days, lb.carried_forward, lb.used_days, lb.encashed_days, lb.remaining_days,
               lb.version, lb.created_at, lb.updated_at,
               lt.name AS leave_type_name
        FROM leave_balances lb
        JOIN leave_types lt ON lb.leave_type_id = lt.id
        WHERE lb.employee_id = $1 AND lb.year = $2
        ORDER BY lt.name
    `

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var balance leave.LeaveBalance
		if err := rows.Scan(
			&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.Year,
			&balance.AllocatedDays, &balance.CarriedForward, &balance.UsedDays, &balance.EncashedDays, &balance.RemainingDays,
			&balance.Version, &balance.CreatedAt, &balance.UpdatedAt,
			&balance.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}

	return balances, nil
}

// CreditAllocated implements leave.LeaveBalanceRepository. The version guard
// makes concurrent accrual runs fail fast instead of double-crediting; callers
// re-read and retry on leave.ErrConcurrencyConflict.
func (r *leaveBalanceRepositoryImpl) CreditAllocated(ctx context.Context, balanceID string, days decimal.Decimal, expectedVersion int64) error {
	q := GetQuerier(ctx, r.db)
	query := `
        UPDATE leave_balances
        SET allocated_days = allocated_days + $1,
            remaining_days = remaining_days + $1,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $2 AND version = $3
    `

	result, err := q.Exec(ctx, query, days, balanceID, expectedVersion)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrConcurrencyConflict
	}
	return nil
}

// Debit implements leave.LeaveBalanceRepository. The remaining_days guard
// rejects a double-spend in a single statement regardless of interleaving.
func (r *leaveBalanceRepositoryImpl) Debit(ctx context.Context, balanceID string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)
	query := `
        UPDATE leave_balances
        SET used_days = used_days + $1,
            remaining_days = remaining_days - $1,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $2 AND remaining_days >= $1
    `

	result, err := q.Exec(ctx, query, days, balanceID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}
	return nil
}

// ReverseDebit implements leave.LeaveBalanceRepository. Reversing more than
// was used means the books are wrong, which is fatal rather than retryable.
func (r *leaveBalanceRepositoryImpl) ReverseDebit(ctx context.Context, balanceID string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)
	query := `
        UPDATE leave_balances
        SET used_days = used_days - $1,
            remaining_days = remaining_days + $1,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $2 AND used_days >= $1
    `

	result, err := q.Exec(ctx, query, days, balanceID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrInvariantViolation
	}
	return nil
}

// Encash implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Encash(ctx context.Context, balanceID string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)
	query := `
        UPDATE leave_balances
        SET encashed_days = encashed_days + $1,
            remaining_days = remaining_days - $1,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $2 AND remaining_days >= $1
    `

	result, err := q.Exec(ctx, query, days, balanceID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}
	return nil
}
