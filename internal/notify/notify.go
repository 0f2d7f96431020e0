// Package notify delivers the digest by email.
//
// A Mailer opens one SMTP connection per Send, upgrades it with STARTTLS
// (mandatory, never implicit TLS), authenticates with PLAIN, submits exactly
// one message and closes the connection. There is no retry and no queue.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// Message is one email to deliver.
type Message struct {
	From     string // sender address, also the SMTP username unless Config.Username is set
	Password string // SMTP credential
	To       string
	Subject  string
	HTMLBody string
}

// SendError reports a failed delivery attempt.
type SendError struct {
	Host string
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send mail via %s: %v", e.Host, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// Config holds the fixed submission endpoint.
type Config struct {
	Host     string
	Port     int
	Username string        // defaults to Message.From
	Timeout  time.Duration // dial + command timeout, defaults to 30s
}

// smtpClient is the part of *mail.Client the Mailer uses.
type smtpClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type clientFactory func(host string, opts ...mail.Option) (smtpClient, error)

func newMailClient(host string, opts ...mail.Option) (smtpClient, error) {
	return mail.NewClient(host, opts...)
}

// Mailer submits messages to one SMTP server.
type Mailer struct {
	cfg       Config
	logger    *slog.Logger
	newClient clientFactory
}

// NewMailer creates a Mailer for cfg.
func NewMailer(cfg Config, logger *slog.Logger) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, logger: logger, newClient: newMailClient}
}

// Send delivers msg. Every failure, including an invalid address, is a *SendError.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	mm, err := m.buildMsg(msg)
	if err != nil {
		return &SendError{Host: m.cfg.Host, Err: err}
	}

	client, err := m.newClient(m.cfg.Host, m.clientOptions(msg)...)
	if err != nil {
		return &SendError{Host: m.cfg.Host, Err: err}
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return &SendError{Host: m.cfg.Host, Err: err}
	}
	m.logger.Info("mail sent", "host", m.cfg.Host, "to", msg.To, "elapsed", time.Since(start))
	return nil
}

func (m *Mailer) clientOptions(msg Message) []mail.Option {
	username := m.cfg.Username
	if username == "" {
		username = msg.From
	}
	return []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(msg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	}
}

// buildMsg assembles a multipart/alternative message: a plain-text part
// derived from the HTML, then the HTML part.
func (m *Mailer) buildMsg(msg Message) (*mail.Msg, error) {
	if strings.TrimSpace(msg.HTMLBody) == "" {
		return nil, errors.New("empty message body")
	}

	mm := mail.NewMsg()
	if err := mm.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := mm.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	mm.Subject(msg.Subject)
	mm.SetDate()
	mm.SetMessageIDWithValue(messageID(msg.From))

	text, err := PlainText(msg.HTMLBody)
	if err != nil {
		m.logger.Warn("plain-text alternative skipped", "err", err)
		mm.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
		return mm, nil
	}
	mm.SetBodyString(mail.TypeTextPlain, text)
	mm.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	return mm, nil
}

// messageID returns "<uuid>@<sender domain>".
func messageID(from string) string {
	domain := "localhost"
	if _, d, ok := strings.Cut(from, "@"); ok && d != "" {
		domain = strings.TrimRight(d, ">")
	}
	return uuid.NewString() + "@" + domain
}
