package email

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers a single queued email request.
type Sender interface {
	Send(ctx context.Context, req EmailRequest) EmailResult
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	appURL string
	logger *zap.Logger
}

// NewSMTPSender builds a Sender from the SMTP_* environment. APP_URL is
// the public frontend origin used for notification links.
func NewSMTPSender(logger ...*zap.Logger) (Sender, error) {
	l := zap.L().Named("email.sender")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("email.sender")
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	port := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", p, err)
		}
		port = parsed
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		return nil, fmt.Errorf("SMTP_FROM is not set")
	}

	dialer := gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"))

	return &smtpSender{
		dialer: dialer,
		from:   from,
		appURL: os.Getenv("APP_URL"),
		logger: l,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, req EmailRequest) EmailResult {
	rendered, err := Render(req, s.appURL)
	if err != nil {
		return EmailResult{Success: false, Error: err.Error()}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	if req.RecipientName != "" {
		m.SetAddressHeader("To", req.RecipientEmail, req.RecipientName)
	} else {
		m.SetHeader("To", req.RecipientEmail)
	}
	m.SetHeader("Subject", rendered.Subject)
	m.SetBody("text/plain", rendered.TextBody)
	m.AddAlternative("text/html", rendered.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("failed to send email",
			zap.String("email_type", req.EmailType),
			zap.Error(err),
		)
		return EmailResult{Success: false, Error: err.Error()}
	}

	s.logger.Info("email sent",
		zap.String("email_type", req.EmailType),
		zap.String("company_name", req.CompanyName),
	)
	return EmailResult{Success: true}
}
