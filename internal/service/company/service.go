package company

import (
	"context"
	"errors"

	"github.com/zenithhr/hrms-backend-go/internal/domain/company"
)

type Service struct {
	settingsRepo company.SettingsRepository
	smtpRepo     company.SMTPSettingsRepository
}

func NewService(settingsRepo company.SettingsRepository, smtpRepo company.SMTPSettingsRepository) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		smtpRepo:     smtpRepo,
	}
}

func (s *Service) GetSettings(ctx context.Context) (company.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings applies a partial update over the single settings row.
func (s *Service) UpdateSettings(ctx context.Context, req company.UpdateSettingsRequest) (company.Settings, error) {
	if err := req.Validate(); err != nil {
		return company.Settings{}, err
	}

	current, err := s.settingsRepo.Get(ctx)
	if err != nil && !errors.Is(err, company.ErrSettingsNotFound) {
		return company.Settings{}, err
	}

	if req.CompanyName != nil {
		current.CompanyName = *req.CompanyName
	}
	if req.Address != nil {
		current.Address = req.Address
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.Email != nil {
		current.Email = req.Email
	}
	if req.Website != nil {
		current.Website = req.Website
	}
	if req.Timezone != nil {
		current.Timezone = *req.Timezone
	}

	return s.settingsRepo.Upsert(ctx, current)
}

// GetSMTPSettings returns the active SMTP configuration with the password
// blanked; it is write-only over the API.
func (s *Service) GetSMTPSettings(ctx context.Context) (company.SMTPSettings, error) {
	smtp, err := s.smtpRepo.GetActive(ctx)
	if err != nil {
		return company.SMTPSettings{}, err
	}
	smtp.Password = ""
	return smtp, nil
}

// UpdateSMTPSettings replaces the active SMTP configuration. An omitted
// password keeps the stored one.
func (s *Service) UpdateSMTPSettings(ctx context.Context, req company.UpdateSMTPSettingsRequest) (company.SMTPSettings, error) {
	if err := req.Validate(); err != nil {
		return company.SMTPSettings{}, err
	}

	next := company.SMTPSettings{
		Host:       req.Host,
		Port:       req.Port,
		Username:   req.Username,
		FromName:   req.FromName,
		FromEmail:  req.FromEmail,
		Encryption: req.Encryption,
		IsActive:   req.IsActive,
	}

	if req.Password != nil {
		next.Password = *req.Password
	} else {
		current, err := s.smtpRepo.GetActive(ctx)
		if err != nil && !errors.Is(err, company.ErrSMTPSettingsNotFound) {
			return company.SMTPSettings{}, err
		}
		next.Password = current.Password
	}

	saved, err := s.smtpRepo.Upsert(ctx, next)
	if err != nil {
		return company.SMTPSettings{}, err
	}
	saved.Password = ""
	return saved, nil
}
