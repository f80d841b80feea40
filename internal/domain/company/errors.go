package company

import "errors"

var (
	ErrSettingsNotFound     = errors.New("company settings not found")
	ErrSMTPSettingsNotFound = errors.New("smtp settings not found")
)
