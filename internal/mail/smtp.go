package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     From
}

// SMTPSender uses implicit TLS on port 465 and STARTTLS elsewhere when the
// server offers it.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer net.Dialer
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &SMTPSender{cfg: cfg, dialer: net.Dialer{Timeout: 10 * time.Second}}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("mail/smtp: dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("mail/smtp: handshake: %w", err)
	}
	defer client.Close()

	if s.cfg.Port != "465" {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
				return fmt.Errorf("mail/smtp: starttls: %w", err)
			}
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mail/smtp: auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From.Email); err != nil {
		return fmt.Errorf("mail/smtp: mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("mail/smtp: rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("mail/smtp: data: %w", err)
	}
	if _, err := w.Write(buildRaw(s.cfg.From, msg)); err != nil {
		w.Close()
		return fmt.Errorf("mail/smtp: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mail/smtp: close data: %w", err)
	}

	return client.Quit()
}

func (s *SMTPSender) dial(ctx context.Context, addr string) (net.Conn, error) {
	if s.cfg.Port == "465" {
		d := tls.Dialer{NetDialer: &s.dialer, Config: &tls.Config{ServerName: s.cfg.Host}}
		return d.DialContext(ctx, "tcp", addr)
	}
	return s.dialer.DialContext(ctx, "tcp", addr)
}

func buildRaw(from From, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from.String() + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", msg.Subject) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
