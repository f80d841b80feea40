package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	UserID        *string
	DepartmentID  *string
	DesignationID *string
	ShiftID       *string

	EmployeeCode string
	FullName     string
	Email        string
	PhoneNumber  *string
	Gender       *Gender
	DOB          *time.Time
	Address      *string

	HireDate         time.Time
	ProbationEndDate *time.Time
	EmploymentType   EmploymentType
	EmploymentStatus EmploymentStatus

	BaseSalary *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	// Joins (for responses)
	DepartmentName  *string
	DesignationName *string
}

// TenureDays returns the whole days elapsed since hire as of the given date.
func (e Employee) TenureDays(asOf time.Time) int {
	days := int(asOf.Sub(e.HireDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// OnProbation reports whether the employee is still in probation as of the
// given date.
func (e Employee) OnProbation(asOf time.Time) bool {
	return e.ProbationEndDate != nil && asOf.Before(*e.ProbationEndDate)
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type EmploymentType string

const (
	EmploymentTypePermanent EmploymentType = "permanent"
	EmploymentTypeContract  EmploymentType = "contract"
	EmploymentTypeIntern    EmploymentType = "intern"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
	EmploymentStatusOnLeave    EmploymentStatus = "on_leave"
)
