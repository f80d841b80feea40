package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/payrollperiod"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type payrollPeriodRepositoryImpl struct {
	db *database.DB
}

func NewPayrollPeriodRepository(db *database.DB) payrollperiod.PayrollPeriodRepository {
	return &payrollPeriodRepositoryImpl{db: db}
}

// Create implements payrollperiod.PayrollPeriodRepository.
func (r *payrollPeriodRepositoryImpl) Create(ctx context.Context, p payrollperiod.PayrollPeriod) (payrollperiod.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO payroll_periods (
            id, name, start_date, end_date, pay_date, status,
            created_at, updated_at
        ) VALUES (
            uuidv7(), $1, $2, $3, $4, $5,
            NOW(), NOW()
        ) RETURNING id, created_at, updated_at
    `

	err := q.QueryRow(ctx, query,
		p.Name, p.StartDate, p.EndDate, p.PayDate, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return payrollperiod.PayrollPeriod{}, err
	}
	return p, nil
}

// GetByID implements payrollperiod.PayrollPeriodRepository.
func (r *payrollPeriodRepositoryImpl) GetByID(ctx context.Context, id string) (payrollperiod.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, start_date, end_date, pay_date, status,
			   created_at, updated_at, deleted_at
		FROM payroll_periods
		WHERE id = $1 AND deleted_at IS NULL
	`

	var p payrollperiod.PayrollPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.PayDate, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollperiod.PayrollPeriod{}, payrollperiod.ErrPayrollPeriodNotFound
		}
		return payrollperiod.PayrollPeriod{}, err
	}
	return p, nil
}

// List implements payrollperiod.PayrollPeriodRepository.
func (r *payrollPeriodRepositoryImpl) List(ctx context.Context) ([]payrollperiod.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, start_date, end_date, pay_date, status,
			   created_at, updated_at, deleted_at
		FROM payroll_periods
		WHERE deleted_at IS NULL
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]payrollperiod.PayrollPeriod, 0)
	for rows.Next() {
		var p payrollperiod.PayrollPeriod
		if err := rows.Scan(
			&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.PayDate, &p.Status,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}

	return periods, nil
}

// UpdateStatus implements payrollperiod.PayrollPeriodRepository. The guard
// enforces the draft -> processed -> confirmed progression in one statement.
func (r *payrollPeriodRepositoryImpl) UpdateStatus(ctx context.Context, id string, status payrollperiod.Status) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE payroll_periods
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		  AND deleted_at IS NULL
		  AND (
			($1 = 'processed' AND status = 'draft') OR
			($1 = 'confirmed' AND status = 'processed') OR
			($1 = 'draft' AND status = 'processed')
		  )
	`
	result, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return payrollperiod.ErrInvalidStatusChange
	}
	return nil
}

// SoftDelete implements payrollperiod.PayrollPeriodRepository.
func (r *payrollPeriodRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE payroll_periods
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND status = 'draft'
	`
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return payrollperiod.ErrPayrollPeriodNotFound
	}
	return nil
}
