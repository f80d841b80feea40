package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type accrualRuleRepositoryImpl struct {
	db *database.DB
}

func NewAccrualRuleRepository(db *database.DB) leave.AccrualRuleRepository {
	return &accrualRuleRepositoryImpl{db: db}
}

// Create implements leave.AccrualRuleRepository.
func (r *accrualRuleRepositoryImpl) Create(ctx context.Context, rule leave.AccrualRule) (leave.AccrualRule, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO leave_accrual_rules (
            id, leave_type_id, rule_type, accrual_value,
            frequency_days, frequency_months, max_days_per_year,
            applicable_after_days, apply_to_probation,
            min_working_days, min_attendance_required,
            custom_conditions, notes,
            created_at, updated_at
        ) VALUES (
            uuidv7(), $1, $2, $3,
            $4, $5, $6,
            $7, $8,
            $9, $10,
            $11, $12,
            NOW(), NOW()
        ) RETURNING id, created_at, updated_at
    `

	err := q.QueryRow(ctx, query,
		rule.LeaveTypeID, rule.RuleType, rule.AccrualValue,
		rule.FrequencyDays, rule.FrequencyMonths, rule.MaxDaysPerYear,
		rule.ApplicableAfterDays, rule.ApplyToProbation,
		rule.MinWorkingDays, rule.MinAttendanceRequired,
		rule.CustomConditions, rule.Notes,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)

	if err != nil {
		return leave.AccrualRule{}, err
	}

	return rule, nil
}

// GetActiveByLeaveType implements leave.AccrualRuleRepository.
func (r *accrualRuleRepositoryImpl) GetActiveByLeaveType(ctx context.Context, leaveTypeID string) (leave.AccrualRule, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, leave_type_id, rule_type, accrual_value,
			   frequency_days, frequency_months, max_days_per_year,
			   applicable_after_days, apply_to_probation,
			   min_working_days, min_attendance_required,
			   custom_conditions, notes,
			   created_at, updated_at, deleted_at
		FROM leave_accrual_rules
		WHERE leave_type_id = $1 AND deleted_at IS NULL
	`

	var rule leave.AccrualRule
	err := q.QueryRow(ctx, query, leaveTypeID).Scan(
		&rule.ID, &rule.LeaveTypeID, &rule.RuleType, &rule.AccrualValue,
		&rule.FrequencyDays, &rule.FrequencyMonths, &rule.MaxDaysPerYear,
		&rule.ApplicableAfterDays, &rule.ApplyToProbation,
		&rule.MinWorkingDays, &rule.MinAttendanceRequired,
		&rule.CustomConditions, &rule.Notes,
		&rule.CreatedAt, &rule.UpdatedAt, &rule.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.AccrualRule{}, leave.ErrRuleNotFound
		}
		return leave.AccrualRule{}, err
	}
	return rule, nil
}

// ListActive implements leave.AccrualRuleRepository.
func (r *accrualRuleRepositoryImpl) ListActive(ctx context.Context) ([]leave.AccrualRule, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ar.id, ar.leave_type_id, ar.rule_type, ar.accrual_value,
			   ar.frequency_days, ar.frequency_months, ar.max_days_per_year,
			   ar.applicable_after_days, ar.apply_to_probation,
			   ar.min_working_days, ar.min_attendance_required,
			   ar.custom_conditions, ar.notes,
			   ar.created_at, ar.updated_at, ar.deleted_at
		FROM leave_accrual_rules ar
		JOIN leave_types lt ON ar.leave_type_id = lt.id
		WHERE ar.deleted_at IS NULL
		  AND lt.deleted_at IS NULL
		  AND lt.is_active = TRUE
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]leave.AccrualRule, 0)
	for rows.Next() {
		var rule leave.AccrualRule
		if err := rows.Scan(
			&rule.ID, &rule.LeaveTypeID, &rule.RuleType, &rule.AccrualValue,
			&rule.FrequencyDays, &rule.FrequencyMonths, &rule.MaxDaysPerYear,
			&rule.ApplicableAfterDays, &rule.ApplyToProbation,
			&rule.MinWorkingDays, &rule.MinAttendanceRequired,
			&rule.CustomConditions, &rule.Notes,
			&rule.CreatedAt, &rule.UpdatedAt, &rule.DeletedAt,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// SoftDelete implements leave.AccrualRuleRepository.
func (r *accrualRuleRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_accrual_rules
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrRuleNotFound
	}
	return nil
}
