package workweek

import (
	"context"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

// WorkWeek names the set of working weekdays for the company. Only one
// pattern is active at a time; inactive rows are kept for history.
type WorkWeek struct {
	ID        string
	Name      string
	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// WorksOn reports whether the given weekday is a working day.
func (w WorkWeek) WorksOn(d time.Weekday) bool {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	}
	return false
}

type WorkWeekRepository interface {
	Create(ctx context.Context, w WorkWeek) (WorkWeek, error)
	GetByID(ctx context.Context, id string) (WorkWeek, error)
	List(ctx context.Context) ([]WorkWeek, error)
	Update(ctx context.Context, req UpdateWorkWeekRequest) error
	SoftDelete(ctx context.Context, id string) error
}

// CreateWorkWeekRequest represents the request structure for creating a work week.
type CreateWorkWeekRequest struct {
	Name      string `json:"name"`
	Monday    bool   `json:"monday"`
	Tuesday   bool   `json:"tuesday"`
	Wednesday bool   `json:"wednesday"`
	Thursday  bool   `json:"thursday"`
	Friday    bool   `json:"friday"`
	Saturday  bool   `json:"saturday"`
	Sunday    bool   `json:"sunday"`
	IsActive  bool   `json:"is_active"`
}

func (r *CreateWorkWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !r.Monday && !r.Tuesday && !r.Wednesday && !r.Thursday &&
		!r.Friday && !r.Saturday && !r.Sunday {
		errs = append(errs, validator.ValidationError{
			Field:   "monday",
			Message: "at least one working day is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateWorkWeekRequest represents the request structure for updating a work week.
type UpdateWorkWeekRequest struct {
	ID        string  `json:"-"` // From URL
	Name      *string `json:"name,omitempty"`
	Monday    *bool   `json:"monday,omitempty"`
	Tuesday   *bool   `json:"tuesday,omitempty"`
	Wednesday *bool   `json:"wednesday,omitempty"`
	Thursday  *bool   `json:"thursday,omitempty"`
	Friday    *bool   `json:"friday,omitempty"`
	Saturday  *bool   `json:"saturday,omitempty"`
	Sunday    *bool   `json:"sunday,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (r *UpdateWorkWeekRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{
			Field:   "id",
			Message: "id is required",
		}}
	}
	return nil
}
