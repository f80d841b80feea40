package company

import (
	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

// UpdateSettingsRequest represents the request structure for updating company settings.
type UpdateSettingsRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CompanyName != nil && validator.IsEmpty(*r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSMTPSettingsRequest represents the request structure for updating SMTP settings.
type UpdateSMTPSettingsRequest struct {
	Host       string  `json:"host"`
	Port       int     `json:"port"`
	Username   string  `json:"username"`
	Password   *string `json:"password,omitempty"` // unchanged when omitted
	FromName   string  `json:"from_name"`
	FromEmail  string  `json:"from_email"`
	Encryption string  `json:"encryption"`
	IsActive   bool    `json:"is_active"`
}

func (r *UpdateSMTPSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Host) {
		errs = append(errs, validator.ValidationError{
			Field:   "host",
			Message: "host is required",
		})
	}
	if r.Port <= 0 || r.Port > 65535 {
		errs = append(errs, validator.ValidationError{
			Field:   "port",
			Message: "port must be between 1 and 65535",
		})
	}
	if !validator.IsValidEmail(r.FromEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_email",
			Message: "from_email is invalid",
		})
	}
	if r.Encryption != "tls" && r.Encryption != "ssl" {
		errs = append(errs, validator.ValidationError{
			Field:   "encryption",
			Message: "encryption must be tls or ssl",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
