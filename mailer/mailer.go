// Package mailer renders templated mails and delivers them over SMTP.
package mailer

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"blog-api/logger"

	gomail "github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

const TemplateWelcome = "welcome"

type Sender interface {
	Send(ctx context.Context, to, subject, tmpl string, data any) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	cfg       SMTPConfig
	templates *template.Template
}

func NewSMTPSender(cfg SMTPConfig) (Sender, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &smtpSender{cfg: cfg, templates: templates}, nil
}

func (s *smtpSender) Send(ctx context.Context, to, subject, tmpl string, data any) error {
	t := s.templates.Lookup(tmpl + ".html")
	if t == nil {
		return fmt.Errorf("unknown mail template %q", tmpl)
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	if err := msg.SetBodyHTMLTemplate(t, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// logSender only logs; used when SMTP is not configured.
type logSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) Sender {
	return &logSender{log: logger.Resolve(log)}
}

func (s *logSender) Send(ctx context.Context, to, subject, tmpl string, _ any) error {
	logger.FromContextOr(ctx, s.log).Info("mail not sent, smtp disabled",
		"to", to,
		"subject", subject,
		"template", tmpl,
	)
	return nil
}
