package shift

import (
	"context"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

type Shift struct {
	ID        string
	Name      string
	StartTime string // HH:MM:SS
	EndTime   string // HH:MM:SS
	IsNight   bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context) ([]Shift, error)
	Update(ctx context.Context, req UpdateShiftRequest) error
	SoftDelete(ctx context.Context, id string) error
}

func isValidClock(s string) bool {
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// CreateShiftRequest represents the request structure for creating a shift.
type CreateShiftRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsNight   bool   `json:"is_night"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !isValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM:SS format",
		})
	}
	if !isValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM:SS format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateShiftRequest represents the request structure for updating a shift.
type UpdateShiftRequest struct {
	ID        string  `json:"-"` // From URL
	Name      *string `json:"name,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	IsNight   *bool   `json:"is_night,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.StartTime != nil && !isValidClock(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM:SS format",
		})
	}
	if r.EndTime != nil && !isValidClock(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM:SS format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
