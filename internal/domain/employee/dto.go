package employee

import (
	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

// CreateEmployeeRequest represents the request structure for creating an employee.
type CreateEmployeeRequest struct {
	DepartmentID     *string `json:"department_id,omitempty"`
	DesignationID    *string `json:"designation_id,omitempty"`
	ShiftID          *string `json:"shift_id,omitempty"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	DOB              *string `json:"dob,omitempty"`
	Address          *string `json:"address,omitempty"`
	HireDate         string  `json:"hire_date"`
	ProbationEndDate *string `json:"probation_end_date,omitempty"`
	EmploymentType   string  `json:"employment_type"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}
	if r.ProbationEndDate != nil {
		if _, ok := validator.IsValidDate(*r.ProbationEndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "probation_end_date",
				Message: "probation_end_date must be in YYYY-MM-DD format",
			})
		}
	}
	switch EmploymentType(r.EmploymentType) {
	case EmploymentTypePermanent, EmploymentTypeContract, EmploymentTypeIntern:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be one of permanent, contract, intern",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest represents the request structure for updating an employee.
type UpdateEmployeeRequest struct {
	ID               string  `json:"-"` // From URL
	DepartmentID     *string `json:"department_id,omitempty"`
	DesignationID    *string `json:"designation_id,omitempty"`
	ShiftID          *string `json:"shift_id,omitempty"`
	FullName         *string `json:"full_name,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Address          *string `json:"address,omitempty"`
	ProbationEndDate *string `json:"probation_end_date,omitempty"`
	EmploymentType   *string `json:"employment_type,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}
	if r.EmploymentStatus != nil {
		switch EmploymentStatus(*r.EmploymentStatus) {
		case EmploymentStatusActive, EmploymentStatusInactive, EmploymentStatusTerminated, EmploymentStatusOnLeave:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "employment_status",
				Message: "employment_status is invalid",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
