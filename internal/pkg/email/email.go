package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendLeaveRequestSubmitted(to, approverName, employeeName, leaveTypeName, startDate, endDate string, totalDays string) error
	SendLeaveDecision(to, employeeName, leaveTypeName, startDate, endDate, decision string, remarks *string) error
}

// SettingsFunc returns the SMTP settings to use for a send. It is consulted
// on every send, so admin edits to the stored settings take effect without a
// process restart.
type SettingsFunc func() config.SMTPConfig

type emailServiceImpl struct {
	settings  SettingsFunc
	templates *template.Template
}

// NewEmailService creates a sender with fixed settings, typically from env.
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	return NewEmailServiceWithResolver(func() config.SMTPConfig { return cfg })
}

// NewEmailServiceWithResolver creates a sender that re-resolves its SMTP
// settings on every send.
func NewEmailServiceWithResolver(settings SettingsFunc) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		settings:  settings,
		templates: tmpl,
	}, nil
}

type leaveSubmittedEmailData struct {
	ApproverName  string
	EmployeeName  string
	LeaveTypeName string
	StartDate     string
	EndDate       string
	TotalDays     string
}

// SendLeaveRequestSubmitted notifies an approver that a leave request awaits review
func (s *emailServiceImpl) SendLeaveRequestSubmitted(to, approverName, employeeName, leaveTypeName, startDate, endDate string, totalDays string) error {
	data := leaveSubmittedEmailData{
		ApproverName:  approverName,
		EmployeeName:  employeeName,
		LeaveTypeName: leaveTypeName,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_submitted.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Leave request from %s awaits your approval", employeeName), body.String())
}

type leaveDecisionEmailData struct {
	EmployeeName  string
	LeaveTypeName string
	StartDate     string
	EndDate       string
	Decision      string
	Remarks       string
}

// SendLeaveDecision notifies an employee that their request was decided
func (s *emailServiceImpl) SendLeaveDecision(to, employeeName, leaveTypeName, startDate, endDate, decision string, remarks *string) error {
	data := leaveDecisionEmailData{
		EmployeeName:  employeeName,
		LeaveTypeName: leaveTypeName,
		StartDate:     startDate,
		EndDate:       endDate,
		Decision:      decision,
	}
	if remarks != nil {
		data.Remarks = *remarks
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your %s request was %s", leaveTypeName, decision), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	cfg := s.settings()

	// Skip sending if SMTP is not configured
	if cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := cfg.FromEmail

	headers := fmt.Sprintf("From: %s <%s>\r\n", cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
