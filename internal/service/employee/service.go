package employee

import (
	"context"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/domain/user"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
	"github.com/zenithhr/hrms-backend-go/internal/repository/postgresql"
)

// Service manages employee records. Creating an employee also provisions the
// linked user account so the person can log in once they set a password.
type Service struct {
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	tx           func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(employeeRepo employee.EmployeeRepository, userRepo user.UserRepository, db *database.DB) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		tx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Create inserts the employee together with a passwordless user account in one
// transaction.
func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)

	emp := employee.Employee{
		DepartmentID:     req.DepartmentID,
		DesignationID:    req.DesignationID,
		ShiftID:          req.ShiftID,
		EmployeeCode:     req.EmployeeCode,
		FullName:         req.FullName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		HireDate:         hireDate,
		EmploymentType:   employee.EmploymentType(req.EmploymentType),
		EmploymentStatus: employee.EmploymentStatusActive,
	}
	if req.Gender != nil {
		g := employee.Gender(*req.Gender)
		emp.Gender = &g
	}
	if req.DOB != nil {
		dob, _ := time.Parse("2006-01-02", *req.DOB)
		emp.DOB = &dob
	}
	if req.ProbationEndDate != nil {
		probationEnd, _ := time.Parse("2006-01-02", *req.ProbationEndDate)
		emp.ProbationEndDate = &probationEnd
	}

	err := s.tx(ctx, func(txCtx context.Context) error {
		account, err := s.userRepo.Create(txCtx, user.User{
			Email:    req.Email,
			FullName: req.FullName,
			Role:     user.RoleEmployee,
			IsActive: true,
		})
		if err != nil {
			return err
		}
		emp.UserID = &account.ID

		emp, err = s.employeeRepo.Create(txCtx, emp)
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

func (s *Service) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return s.employeeRepo.GetByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]employee.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *Service) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.employeeRepo.Update(ctx, req)
}

// Delete soft-deletes the employee and deactivates the linked user account so
// the login stops working immediately.
func (s *Service) Delete(ctx context.Context, id string) error {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx(ctx, func(txCtx context.Context) error {
		if emp.UserID != nil {
			if err := s.userRepo.SoftDelete(txCtx, *emp.UserID); err != nil {
				return err
			}
		}
		return s.employeeRepo.SoftDelete(txCtx, id)
	})
}
