package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/squad-internal/hr-backend-go/internal/config"
	"github.com/squad-internal/hr-backend-go/internal/domain/leave"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

type Service struct {
	cfg       config.SMTPConfig
	baseURL   string
	templates *template.Template
}

// NewService creates the email dispatcher backing leave notifications.
// baseURL is prefixed onto the approve/reject deep links in the approver mail.
func NewService(cfg config.SMTPConfig, baseURL string) (*Service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &Service{
		cfg:       cfg,
		baseURL:   baseURL,
		templates: tmpl,
	}, nil
}

type leaveEmailData struct {
	EmployeeName  string
	EmployeeEmail string
	DateRange     string
	Days          int
	LeaveType     string
	Reason        string
	AppliedOn     string
	ApproveLink   string
	RejectLink    string
	Year          int
}

func (s *Service) leaveData(n leave.Notification) leaveEmailData {
	dateRange := n.FromDate.Format("January 02, 2006")
	if !n.FromDate.Equal(n.ToDate) {
		dateRange = fmt.Sprintf("%s - %s", n.FromDate.Format("January 02, 2006"), n.ToDate.Format("January 02, 2006"))
	}

	return leaveEmailData{
		EmployeeName:  n.EmployeeName,
		EmployeeEmail: n.EmployeeEmail,
		DateRange:     dateRange,
		Days:          leave.DateRange{From: leave.TruncateToDate(n.FromDate), To: leave.TruncateToDate(n.ToDate)}.Days(),
		LeaveType:     n.LeaveType,
		Reason:        n.Reason,
		AppliedOn:     n.AppliedOn.Format("January 02, 2006 at 3:04 PM"),
		ApproveLink:   fmt.Sprintf("%s/api/v1/leaves/%s/approve", s.baseURL, n.RequestID),
		RejectLink:    fmt.Sprintf("%s/api/v1/leaves/%s/reject", s.baseURL, n.RequestID),
		Year:          time.Now().Year(),
	}
}

// LeaveApplied implements leave.Notifier.
func (s *Service) LeaveApplied(ctx context.Context, to string, n leave.Notification) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_applied.html", s.leaveData(n)); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Leave Request: %s - %s", n.EmployeeName, n.FromDate.Format("January 02, 2006"))
	return s.sendHTML(to, subject, body.String())
}

// LeaveDecided implements leave.Notifier.
func (s *Service) LeaveDecided(ctx context.Context, to string, n leave.Notification, approved bool) error {
	tmplName := "leave_rejected.html"
	subject := "Your leave request was rejected"
	if approved {
		tmplName = "leave_approved.html"
		subject = "Your leave request was approved"
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, tmplName, s.leaveData(n)); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, subject, body.String())
}

// LeaveCancelled implements leave.Notifier.
func (s *Service) LeaveCancelled(ctx context.Context, to string, n leave.Notification) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_cancelled.html", s.leaveData(n)); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Leave Cancelled: %s", n.EmployeeName)
	return s.sendHTML(to, subject, body.String())
}

func (s *Service) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

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
