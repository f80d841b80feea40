package company

import "context"

type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}

type SMTPSettingsRepository interface {
	GetActive(ctx context.Context) (SMTPSettings, error)
	Upsert(ctx context.Context, s SMTPSettings) (SMTPSettings, error)
}
