package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/company"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
)

type companySettingsRepositoryImpl struct {
	db *database.DB
}

func NewCompanySettingsRepository(db *database.DB) company.SettingsRepository {
	return &companySettingsRepositoryImpl{db: db}
}

// Get implements company.SettingsRepository.
func (r *companySettingsRepositoryImpl) Get(ctx context.Context) (company.Settings, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_name, address, phone, email, website, logo_url, timezone,
			   created_at, updated_at
		FROM company_settings
		ORDER BY created_at
		LIMIT 1
	`

	var s company.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.CompanyName, &s.Address, &s.Phone, &s.Email, &s.Website, &s.LogoURL, &s.Timezone,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Settings{}, company.ErrSettingsNotFound
		}
		return company.Settings{}, err
	}
	return s, nil
}

// Upsert implements company.SettingsRepository. A single settings row is kept;
// the insert path only runs on first configuration.
func (r *companySettingsRepositoryImpl) Upsert(ctx context.Context, s company.Settings) (company.Settings, error) {
	q := GetQuerier(ctx, r.db)

	existing, err := r.Get(ctx)
	if err != nil && err != company.ErrSettingsNotFound {
		return company.Settings{}, err
	}

	if err == company.ErrSettingsNotFound {
		query := `
			INSERT INTO company_settings (
				id, company_name, address, phone, email, website, logo_url, timezone,
				created_at, updated_at
			) VALUES (
				uuidv7(), $1, $2, $3, $4, $5, $6, $7,
				NOW(), NOW()
			) RETURNING id, created_at, updated_at
		`
		err = q.QueryRow(ctx, query,
			s.CompanyName, s.Address, s.Phone, s.Email, s.Website, s.LogoURL, s.Timezone,
		).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return company.Settings{}, err
		}
		return s, nil
	}

	query := `
		UPDATE company_settings
		SET company_name = $1, address = $2, phone = $3, email = $4,
			website = $5, logo_url = $6, timezone = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	s.ID = existing.ID
	s.CreatedAt = existing.CreatedAt
	if err := q.QueryRow(ctx, query,
		s.CompanyName, s.Address, s.Phone, s.Email, s.Website, s.LogoURL, s.Timezone, s.ID,
	).Scan(&s.UpdatedAt); err != nil {
		return company.Settings{}, err
	}
	return s, nil
}

type smtpSettingsRepositoryImpl struct {
	db *database.DB
}

func NewSMTPSettingsRepository(db *database.DB) company.SMTPSettingsRepository {
	return &smtpSettingsRepositoryImpl{db: db}
}

// GetActive implements company.SMTPSettingsRepository.
func (r *smtpSettingsRepositoryImpl) GetActive(ctx context.Context) (company.SMTPSettings, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, host, port, username, password, from_name, from_email, encryption, is_active,
			   created_at, updated_at
		FROM smtp_settings
		WHERE is_active = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s company.SMTPSettings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.Host, &s.Port, &s.Username, &s.Password, &s.FromName, &s.FromEmail, &s.Encryption, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.SMTPSettings{}, company.ErrSMTPSettingsNotFound
		}
		return company.SMTPSettings{}, err
	}
	return s, nil
}

// Upsert implements company.SMTPSettingsRepository. The previous active row
// is deactivated so GetActive always resolves to one configuration.
func (r *smtpSettingsRepositoryImpl) Upsert(ctx context.Context, s company.SMTPSettings) (company.SMTPSettings, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE smtp_settings SET is_active = FALSE, updated_at = NOW() WHERE is_active = TRUE`); err != nil {
		return company.SMTPSettings{}, err
	}

	query := `
		INSERT INTO smtp_settings (
			id, host, port, username, password, from_name, from_email, encryption, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, TRUE,
			NOW(), NOW()
		) RETURNING id, is_active, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		s.Host, s.Port, s.Username, s.Password, s.FromName, s.FromEmail, s.Encryption,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return company.SMTPSettings{}, err
	}
	return s, nil
}
