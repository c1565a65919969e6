package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stanstork/tutoring-api/internal/config"
)

// EmailNotifier sends messages through an SMTP relay.
type EmailNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewEmailNotifier(cfg config.EmailConfig, logger zerolog.Logger) (*EmailNotifier, error) {
	host := strings.TrimSpace(cfg.SMTPHost)
	from := strings.TrimSpace(cfg.From)
	if host == "" {
		return nil, fmt.Errorf("smtp_host is required for email notifier")
	}
	if from == "" {
		return nil, fmt.Errorf("from is required for email notifier")
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &EmailNotifier{
		host:     host,
		port:     port,
		username: strings.TrimSpace(cfg.Username),
		password: cfg.Password,
		from:     from,
		timeout:  timeout,
		logger:   logger.With().Str("notifier", "email").Logger(),
	}, nil
}

func (n *EmailNotifier) Notify(ctx context.Context, email Email) error {
	to := strings.TrimSpace(email.To)
	if to == "" {
		return fmt.Errorf("recipient is required")
	}

	deadline := time.Now().Add(n.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	addr := net.JoinHostPort(n.host, fmt.Sprint(n.port))
	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "dial %s", addr)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "smtp handshake")
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.host, MinVersion: tls.VersionTLS12}); err != nil {
			return errors.Wrap(err, "starttls")
		}
	}
	if n.username != "" {
		if err := client.Auth(smtp.PlainAuth("", n.username, n.password, n.host)); err != nil {
			return errors.Wrap(err, "smtp auth")
		}
	}
	if err := client.Mail(senderAddress(n.from)); err != nil {
		return errors.Wrap(err, "smtp mail from")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrap(err, "smtp rcpt to")
	}
	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "smtp data")
	}
	if _, err := w.Write(buildMessage(n.from, to, email)); err != nil {
		w.Close()
		return errors.Wrap(err, "write message")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close message")
	}
	if err := client.Quit(); err != nil {
		n.logger.Debug().Err(err).Msg("smtp quit failed")
	}

	n.logger.Info().
		Str("kind", email.Kind).
		Str("recipient", to).
		Msg("email notification sent")
	return nil
}

func (n *EmailNotifier) String() string {
	return "EmailNotifier"
}

func buildMessage(from, to string, email Email) []byte {
	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\nContent-Transfer-Encoding: 8bit\r\n\r\n",
		headerValue(from), headerValue(to), mime.QEncoding.Encode("utf-8", headerValue(email.Subject)))
	body := strings.ReplaceAll(email.Body, "\r\n", "\n")
	return []byte(headers + strings.ReplaceAll(body, "\n", "\r\n"))
}

// headerValue folds line breaks into spaces so a value cannot start a new header.
func headerValue(value string) string {
	value = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(value)
	return strings.TrimSpace(value)
}

// senderAddress extracts the bare address from a "Name <addr>" header value.
func senderAddress(from string) string {
	if start := strings.LastIndex(from, "<"); start >= 0 {
		if end := strings.LastIndex(from, ">"); end > start {
			return from[start+1 : end]
		}
	}
	return from
}
