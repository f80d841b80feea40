package designation

import (
	"context"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

type Designation struct {
	ID           string
	DepartmentID *string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type DesignationRepository interface {
	Create(ctx context.Context, d Designation) (Designation, error)
	GetByID(ctx context.Context, id string) (Designation, error)
	List(ctx context.Context) ([]Designation, error)
	Update(ctx context.Context, req UpdateDesignationRequest) error
	SoftDelete(ctx context.Context, id string) error
}

// CreateDesignationRequest represents the request structure for creating a designation.
type CreateDesignationRequest struct {
	DepartmentID *string `json:"department_id,omitempty"`
	Title        string  `json:"title"`
}

func (r *CreateDesignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateDesignationRequest represents the request structure for updating a designation.
type UpdateDesignationRequest struct {
	ID           string  `json:"-"` // From URL
	DepartmentID *string `json:"department_id,omitempty"`
	Title        *string `json:"title,omitempty"`
}

func (r *UpdateDesignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
