// internal/service/mailer/service.go
package mailer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Attachment references a file already on disk.
type Attachment struct {
	Filename    string
	Path        string
	ContentType string
}

// Message is one transactional email: recipients, subject, plaintext and
// rich-text bodies, optional attachments.
type Message struct {
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// SMTPConfig is the cleartext transport configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
	Secure   bool // implicit TLS (465) instead of STARTTLS (587)
}

// SMTPDispatcher sends mail through a fixed configured sender. One attempt
// per invocation, no retries; transport errors propagate to the caller.
type SMTPDispatcher struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *zap.Logger
}

func NewSMTPDispatcher(cfg SMTPConfig, logger *zap.Logger) *SMTPDispatcher {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	dialer.SSL = cfg.Secure

	return &SMTPDispatcher{
		dialer:   dialer,
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

// Dispatch sends one message.
func (s *SMTPDispatcher) Dispatch(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, s.fromName))
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@healthyhome>", uuid.NewString()))
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	for _, a := range msg.Attachments {
		m.Attach(a.Path, gomail.Rename(a.Filename))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email dispatched",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return nil
}
