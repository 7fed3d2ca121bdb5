package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sanketkurve/portfolio-backend/config"
	"github.com/sanketkurve/portfolio-backend/errs"
)

// Email is a single outgoing message. Text is required; HTML is an
// optional alternative part.
type Email struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// Mailer delivers an Email.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// Supported EMAIL_PROVIDER values.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderNone   = "none"
)

// NewMailer builds the mailer named by EMAIL_PROVIDER. When no provider is
// named, SMTP is used if SMTP credentials are present, otherwise mail is
// dropped with a warning.
func NewMailer(c map[string]string, logger zerolog.Logger) (Mailer, error) {
	provider := strings.ToLower(config.GetString(c, "EMAIL_PROVIDER", ""))
	if provider == "" {
		provider = ProviderNone
		if config.GetString(c, "SMTP_USER", "") != "" && config.GetString(c, "SMTP_PASSWORD", "") != "" {
			provider = ProviderSMTP
		}
	}

	switch provider {
	case ProviderSMTP:
		return NewSMTPMailer(SMTPConfig{
			Host:     config.GetString(c, "SMTP_HOST", "smtp.gmail.com"),
			Port:     config.GetInt(c, "SMTP_PORT", 587),
			Username: config.GetString(c, "SMTP_USER", ""),
			Password: config.GetString(c, "SMTP_PASSWORD", ""),
			From:     config.GetString(c, "SMTP_FROM", config.GetString(c, "SMTP_USER", "")),
		})
	case ProviderResend:
		return NewResendMailer(
			config.GetString(c, "RESEND_API_KEY", ""),
			config.GetString(c, "RESEND_FROM_EMAIL", ""),
		)
	case ProviderNone:
		logger.Warn().Msg("email credentials not configured, notifications will not be sent")
		return NoopMailer{logger: logger}, nil
	default:
		return nil, errs.NewConfigError("EMAIL_PROVIDER", fmt.Errorf("unknown provider %q", provider))
	}
}

// NoopMailer logs and discards every email.
type NoopMailer struct {
	logger zerolog.Logger
}

func (m NoopMailer) Send(_ context.Context, email Email) error {
	m.logger.Debug().Strs("to", email.To).Str("subject", email.Subject).Msg("email dropped, no provider configured")
	return nil
}
