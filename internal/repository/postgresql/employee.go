package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.user_id, e.department_id, e.designation_id, e.shift_id,
	e.employee_code, e.full_name, e.email, e.phone_number, e.gender, e.dob, e.address,
	e.hire_date, e.probation_end_date, e.employment_type, e.employment_status,
	e.base_salary, e.created_at, e.updated_at, e.deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.DepartmentID, &emp.DesignationID, &emp.ShiftID,
		&emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.PhoneNumber, &emp.Gender, &emp.DOB, &emp.Address,
		&emp.HireDate, &emp.ProbationEndDate, &emp.EmploymentType, &emp.EmploymentStatus,
		&emp.BaseSalary, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
        INSERT INTO employees (
            id, user_id, department_id, designation_id, shift_id,
            employee_code, full_name, email, phone_number, gender, dob, address,
            hire_date, probation_end_date, employment_type, employment_status,
            base_salary, created_at, updated_at
        ) VALUES (
            uuidv7(), $1, $2, $3, $4,
            $5, $6, $7, $8, $9, $10, $11,
            $12, $13, $14, $15,
            $16, NOW(), NOW()
        ) RETURNING id, created_at, updated_at
    `

	err := q.QueryRow(ctx, query,
		emp.UserID, emp.DepartmentID, emp.DesignationID, emp.ShiftID,
		emp.EmployeeCode, emp.FullName, emp.Email, emp.PhoneNumber, emp.Gender, emp.DOB, emp.Address,
		emp.HireDate, emp.ProbationEndDate, emp.EmploymentType, emp.EmploymentStatus,
		emp.BaseSalary,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.user_id = $1 AND e.deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT e.id, e.user_id, e.department_id, e.designation_id, e.shift_id,
			   e.employee_code, e.full_name, e.email, e.phone_number, e.gender, e.dob, e.address,
			   e.hire_date, e.probation_end_date, e.employment_type, e.employment_status,
			   e.base_salary, e.created_at, e.updated_at, e.deleted_at,
			   d.name AS department_name,
			   dg.title AS designation_name
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		LEFT JOIN designations dg ON e.designation_id = dg.id
		WHERE e.deleted_at IS NULL
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.UserID, &emp.DepartmentID, &emp.DesignationID, &emp.ShiftID,
			&emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.PhoneNumber, &emp.Gender, &emp.DOB, &emp.Address,
			&emp.HireDate, &emp.ProbationEndDate, &emp.EmploymentType, &emp.EmploymentStatus,
			&emp.BaseSalary, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
			&emp.DepartmentName, &emp.DesignationName,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.employment_status = 'active' AND e.deleted_at IS NULL
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.DesignationID != nil {
		updates["designation_id"] = *req.DesignationID
	}
	if req.ShiftID != nil {
		updates["shift_id"] = *req.ShiftID
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.ProbationEndDate != nil {
		updates["probation_end_date"] = *req.ProbationEndDate
	}
	if req.EmploymentType != nil {
		updates["employment_type"] = *req.EmploymentType
	}
	if req.EmploymentStatus != nil {
		updates["employment_status"] = *req.EmploymentStatus
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for employee update")
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

	sql := "UPDATE employees SET " +
		strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND deleted_at IS NULL", i)
	args = append(args, req.ID)

	result, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SoftDelete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
