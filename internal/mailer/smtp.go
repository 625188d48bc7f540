// AngelaMos | 2026
// smtp.go

package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/lexisarthi/api/internal/config"
)

// Mailer delivers a single HTML message. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPMailer struct {
	config config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func (m *SMTPMailer) Send(
	ctx context.Context,
	to string,
	subject string,
	htmlBody string,
) error {
	msg := m.buildMessage(to, subject, htmlBody)

	if m.config.UseSSL {
		return m.sendImplicitTLS(ctx, to, msg)
	}
	return m.sendSTARTTLS(ctx, to, msg)
}

// sendSTARTTLS dials in the clear and upgrades when the server offers it,
// the usual path for port 587.
func (m *SMTPMailer) sendSTARTTLS(
	ctx context.Context,
	to string,
	msg []byte,
) error {
	dialer := net.Dialer{Timeout: m.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", m.config.Addr())
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: m.config.Host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	return m.deliver(client, to, msg)
}

// sendImplicitTLS wraps the whole session in TLS, the usual path for
// port 465.
func (m *SMTPMailer) sendImplicitTLS(
	ctx context.Context,
	to string,
	msg []byte,
) error {
	dialer := tls.Dialer{
		NetDialer: &net.Dialer{Timeout: m.config.Timeout},
		Config:    &tls.Config{ServerName: m.config.Host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", m.config.Addr())
	if err != nil {
		return fmt.Errorf("dial smtps: %w", err)
	}

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	return m.deliver(client, to, msg)
}

func (m *SMTPMailer) deliver(client *smtp.Client, to string, msg []byte) error {
	if m.config.Username != "" {
		auth := smtp.PlainAuth(
			"",
			m.config.Username,
			m.config.Password,
			m.config.Host,
		)
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(m.config.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}

func (m *SMTPMailer) buildMessage(to, subject, htmlBody string) []byte {
	from := m.config.From
	if m.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>",
			mime.QEncoding.Encode("utf-8", m.config.FromName),
			m.config.From,
		)
	}

	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	sb.WriteString("\r\n")

	return []byte(sb.String())
}
