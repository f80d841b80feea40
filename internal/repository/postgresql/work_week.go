package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/workweek"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type workWeekRepositoryImpl struct {
	db *database.DB
}

func NewWorkWeekRepository(db *database.DB) workweek.WorkWeekRepository {
	return &workWeekRepositoryImpl{db: db}
}

// Create implements workweek.WorkWeekRepository. Activating a pattern
// deactivates the rest so at most one row stays active.
func (r *workWeekRepositoryImpl) Create(ctx context.Context, w workweek.WorkWeek) (workweek.WorkWeek, error) {
	q := GetQuerier(ctx, r.db)

	if w.IsActive {
		if _, err := q.Exec(ctx, `UPDATE work_weeks SET is_active = FALSE, updated_at = NOW() WHERE is_active AND deleted_at IS NULL`); err != nil {
			return workweek.WorkWeek{}, err
		}
	}

	query := `
        INSERT INTO work_weeks (id, name, monday, tuesday, wednesday, thursday, friday, saturday, sunday, is_active, created_at, updated_at)
        VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `

	err := q.QueryRow(ctx, query,
		w.Name, w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday, w.IsActive,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return workweek.WorkWeek{}, err
	}
	return w, nil
}

// GetByID implements workweek.WorkWeekRepository.
func (r *workWeekRepositoryImpl) GetByID(ctx context.Context, id string) (workweek.WorkWeek, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, monday, tuesday, wednesday, thursday, friday, saturday, sunday, is_active, created_at, updated_at, deleted_at
		FROM work_weeks
		WHERE id = $1 AND deleted_at IS NULL
	`

	var w workweek.WorkWeek
	err := q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.Monday, &w.Tuesday, &w.Wednesday, &w.Thursday, &w.Friday,
		&w.Saturday, &w.Sunday, &w.IsActive, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return workweek.WorkWeek{}, workweek.ErrWorkWeekNotFound
		}
		return workweek.WorkWeek{}, err
	}
	return w, nil
}

// List implements workweek.WorkWeekRepository.
func (r *workWeekRepositoryImpl) List(ctx context.Context) ([]workweek.WorkWeek, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, monday, tuesday, wednesday, thursday, friday, saturday, sunday, is_active, created_at, updated_at, deleted_at
		FROM work_weeks
		WHERE deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weeks := make([]workweek.WorkWeek, 0)
	for rows.Next() {
		var w workweek.WorkWeek
		if err := rows.Scan(
			&w.ID, &w.Name, &w.Monday, &w.Tuesday, &w.Wednesday, &w.Thursday, &w.Friday,
			&w.Saturday, &w.Sunday, &w.IsActive, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
		); err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}

	return weeks, nil
}

// Update implements workweek.WorkWeekRepository.
func (r *workWeekRepositoryImpl) Update(ctx context.Context, req workweek.UpdateWorkWeekRequest) error {
	q := GetQuerier(ctx, r.db)

	if req.IsActive != nil && *req.IsActive {
		if _, err := q.Exec(ctx, `UPDATE work_weeks SET is_active = FALSE, updated_at = NOW() WHERE is_active AND id <> $1 AND deleted_at IS NULL`, req.ID); err != nil {
			return err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Monday != nil {
		updates["monday"] = *req.Monday
	}
	if req.Tuesday != nil {
		updates["tuesday"] = *req.Tuesday
	}
	if req.Wednesday != nil {
		updates["wednesday"] = *req.Wednesday
	}
	if req.Thursday != nil {
		updates["thursday"] = *req.Thursday
	}
	if req.Friday != nil {
		updates["friday"] = *req.Friday
	}
	if req.Saturday != nil {
		updates["saturday"] = *req.Saturday
	}
	if req.Sunday != nil {
		updates["sunday"] = *req.Sunday
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for work week update")
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

	sql := "UPDATE work_weeks SET " +
		strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND deleted_at IS NULL", i)
	args = append(args, req.ID)

	result, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return workweek.ErrWorkWeekNotFound
	}
	return nil
}

// SoftDelete implements workweek.WorkWeekRepository.
func (r *workWeekRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE work_weeks
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return workweek.ErrWorkWeekNotFound
	}
	return nil
}
