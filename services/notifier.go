package services

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"

	"github.com/rs/zerolog"

	"github.com/sanketkurve/portfolio-backend/config"
	"github.com/sanketkurve/portfolio-backend/models"
)

// ContactNotifier emails the site owner about new contact messages and,
// optionally, thanks the sender.
type ContactNotifier struct {
	mailer     Mailer
	dispatcher *Dispatcher
	ownerEmail string
	ownerName  string
	autoReply  bool
	logger     zerolog.Logger
}

type NotifierConfig struct {
	OwnerEmail string
	OwnerName  string
	AutoReply  bool
}

// NotifierConfigFrom reads NOTIFICATION_EMAIL, OWNER_NAME and AUTO_REPLY.
// NOTIFICATION_EMAIL falls back to SMTP_USER.
func NotifierConfigFrom(c map[string]string) NotifierConfig {
	return NotifierConfig{
		OwnerEmail: config.GetString(c, "NOTIFICATION_EMAIL", config.GetString(c, "SMTP_USER", "")),
		OwnerName:  config.GetString(c, "OWNER_NAME", "Portfolio"),
		AutoReply:  config.GetBool(c, "AUTO_REPLY", false),
	}
}

func NewContactNotifier(mailer Mailer, dispatcher *Dispatcher, cfg NotifierConfig, logger zerolog.Logger) *ContactNotifier {
	return &ContactNotifier{
		mailer:     mailer,
		dispatcher: dispatcher,
		ownerEmail: cfg.OwnerEmail,
		ownerName:  cfg.OwnerName,
		autoReply:  cfg.AutoReply,
		logger:     logger,
	}
}

// MessageReceived queues the notification emails and returns immediately.
func (n *ContactNotifier) MessageReceived(msg models.Message) {
	if n.ownerEmail == "" {
		n.logger.Warn().Str("messageId", msg.ID.String()).Msg("no notification address configured, skipping owner email")
	} else {
		n.dispatcher.Dispatch("contact-notification", func(ctx context.Context) error {
			email, err := ownerNotification(n.ownerEmail, msg)
			if err != nil {
				return err
			}
			return n.mailer.Send(ctx, email)
		})
	}

	if n.autoReply {
		n.dispatcher.Dispatch("contact-auto-reply", func(ctx context.Context) error {
			email, err := autoReply(n.ownerName, msg)
			if err != nil {
				return err
			}
			return n.mailer.Send(ctx, email)
		})
	}
}

type templateData struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	OwnerName string
}

func newTemplateData(msg models.Message, ownerName string) templateData {
	subject := "N/A"
	if msg.Subject != nil && *msg.Subject != "" {
		subject = *msg.Subject
	}
	return templateData{
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   subject,
		Message:   msg.Message,
		OwnerName: ownerName,
	}
}

var (
	notificationText = texttemplate.Must(texttemplate.New("notification").Parse(`New message received from your portfolio:

Name: {{.Name}}
Email: {{.Email}}
Subject: {{.Subject}}

Message:
{{.Message}}

---
This is an automated notification from your portfolio website.
`))

	notificationHTML = htmltemplate.Must(htmltemplate.New("notification").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
    <h2 style="color: #7c3aed;">New Contact Form Submission</h2>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Message:</strong></p>
    <p style="white-space: pre-wrap;">{{.Message}}</p>
    <hr style="border: none; border-top: 1px solid #ddd;">
    <p style="font-size: 12px; color: #666;">This is an automated notification from your portfolio website.</p>
  </div>
</body>
</html>`))

	autoReplyText = texttemplate.Must(texttemplate.New("auto-reply").Parse(`Hi {{.Name}},

Thank you for reaching out! I've received your message and will get back to you as soon as possible.

Best regards,
{{.OwnerName}}
`))

	autoReplyHTML = htmltemplate.Must(htmltemplate.New("auto-reply").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 30px;">
    <h2 style="color: #7c3aed;">Thank You for Reaching Out!</h2>
    <p>Hi <strong>{{.Name}}</strong>,</p>
    <p>Thank you for reaching out! I've received your message and will get back to you as soon as possible.</p>
    <p style="margin-top: 30px;">Best regards,<br><strong>{{.OwnerName}}</strong></p>
  </div>
</body>
</html>`))
)

type executor interface {
	Execute(w io.Writer, data any) error
}

func render(tmpl executor, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func ownerNotification(to string, msg models.Message) (Email, error) {
	data := newTemplateData(msg, "")
	text, err := render(notificationText, data)
	if err != nil {
		return Email{}, err
	}
	html, err := render(notificationHTML, data)
	if err != nil {
		return Email{}, err
	}

	subject := "No Subject"
	if msg.Subject != nil && *msg.Subject != "" {
		subject = *msg.Subject
	}
	return Email{
		To:      []string{to},
		Subject: "New Contact Form Submission: " + subject,
		Text:    text,
		HTML:    html,
		ReplyTo: msg.Email,
	}, nil
}

func autoReply(ownerName string, msg models.Message) (Email, error) {
	data := newTemplateData(msg, ownerName)
	text, err := render(autoReplyText, data)
	if err != nil {
		return Email{}, err
	}
	html, err := render(autoReplyHTML, data)
	if err != nil {
		return Email{}, err
	}

	return Email{
		To:      []string{msg.Email},
		Subject: "Thank you for contacting me! - " + ownerName,
		Text:    text,
		HTML:    html,
	}, nil
}
