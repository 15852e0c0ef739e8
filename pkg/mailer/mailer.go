package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Mailer delivers a plain-text message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type smtpMailer struct {
	opts SMTPOptions
}

// New returns an SMTP mailer, or a log-only mailer when no host is configured.
func New(opts SMTPOptions) Mailer {
	if opts.Host == "" {
		return logMailer{}
	}
	if opts.Port == 0 {
		opts.Port = 587
	}
	return &smtpMailer{opts: opts}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.opts.Username != "" {
		auth = smtp.PlainAuth("", m.opts.Username, m.opts.Password, m.opts.Host)
	}

	addr := net.JoinHostPort(m.opts.Host, strconv.Itoa(m.opts.Port))
	if err := smtp.SendMail(addr, auth, m.opts.From, []string{to}, m.buildMessage(to, subject, body)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (m *smtpMailer) buildMessage(to, subject, body string) []byte {
	var buf bytes.Buffer
	from := m.opts.From
	if m.opts.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.opts.FromName, m.opts.From)
	}
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", sanitizeHeader(subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	buf.WriteString("\r\n")
	return buf.Bytes()
}

func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

type logMailer struct{}

func (logMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("smtp not configured, mail logged only")
	return nil
}
