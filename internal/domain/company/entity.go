package company

import "time"

// Settings is the single company settings row, loaded explicitly and passed
// to consumers rather than read as ambient global state.
type Settings struct {
	ID          string
	CompanyName string
	Address     *string
	Phone       *string
	Email       *string
	Website     *string
	LogoURL     *string
	Timezone    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SMTPSettings mirrors the smtp_settings row. The password is write-only over
// the API.
type SMTPSettings struct {
	ID         string
	Host       string
	Port       int
	Username   string
	Password   string
	FromName   string
	FromEmail  string
	Encryption string // 'tls' or 'ssl'
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
