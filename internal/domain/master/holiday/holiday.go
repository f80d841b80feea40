package holiday

import (
	"context"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

type Type string

const (
	TypeNational Type = "national"
	TypeRegional Type = "regional"
	TypeCompany  Type = "company"
)

// Holiday is a company calendar entry. Multi-day holidays span
// [StartDate, EndDate] inclusive; Year is derived from the start date so
// lists filter cheaply.
type Holiday struct {
	ID          string
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Type        Type
	Year        int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
	Update(ctx context.Context, req UpdateHolidayRequest) error
	SoftDelete(ctx context.Context, id string) error
}

func isValidType(t string) bool {
	switch Type(t) {
	case TypeNational, TypeRegional, TypeCompany:
		return true
	}
	return false
}

// CreateHolidayRequest represents the request structure for creating a holiday.
type CreateHolidayRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Type        string  `json:"type,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.Type != "" && !isValidType(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of national, regional, company",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateHolidayRequest represents the request structure for updating a holiday.
type UpdateHolidayRequest struct {
	ID          string  `json:"-"` // From URL
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Type        *string `json:"type,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.Type != nil && !isValidType(*r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of national, regional, company",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
