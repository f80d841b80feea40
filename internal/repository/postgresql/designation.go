package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/designation"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

// Create implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Create(ctx context.Context, d designation.Designation) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO designations (id, department_id, title, created_at, updated_at)
        VALUES (uuidv7(), $1, $2, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `

	err := q.QueryRow(ctx, query, d.DepartmentID, d.Title).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return designation.Designation{}, err
	}
	return d, nil
}

// GetByID implements designation.DesignationRepository.
func (r *designationRepositoryImpl) GetByID(ctx context.Context, id string) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, department_id, title, created_at, updated_at, deleted_at
		FROM designations
		WHERE id = $1 AND deleted_at IS NULL
	`

	var d designation.Designation
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.DepartmentID, &d.Title, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		return designation.Designation{}, err
	}
	return d, nil
}

// List implements designation.DesignationRepository.
func (r *designationRepositoryImpl) List(ctx context.Context) ([]designation.Designation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, department_id, title, created_at, updated_at, deleted_at
		FROM designations
		WHERE deleted_at IS NULL
		ORDER BY title
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	designations := make([]designation.Designation, 0)
	for rows.Next() {
		var d designation.Designation
		if err := rows.Scan(
			&d.ID, &d.DepartmentID, &d.Title, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
		); err != nil {
			return nil, err
		}
		designations = append(designations, d)
	}

	return designations, nil
}

// Update implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Update(ctx context.Context, req designation.UpdateDesignationRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for designation update")
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

	sql := "UPDATE designations SET " +
		strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND deleted_at IS NULL", i)
	args = append(args, req.ID)

	result, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}

// SoftDelete implements designation.DesignationRepository.
func (r *designationRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE designations
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}
