// Package mail sends transactional emails such as appointment confirmations.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/peeringlatam/network-planner/internal/config"
	"go.uber.org/zap"
)

type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
	// HTML is sent as an alternative part when set.
	HTML string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer when a relay is configured, a logging mailer otherwise.
func New(cfg *config.Config) Mailer {
	if cfg.Mail.SMTPEnabled() {
		return NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password)
	}
	return NewLogMailer()
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	addr string
	host string
	auth smtp.Auth
	send sendFunc
}

func NewSMTPMailer(host string, port int, user, password string) *SMTPMailer {
	m := &SMTPMailer{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		host: host,
		send: smtp.SendMail,
	}
	if user != "" {
		m.auth = smtp.PlainAuth("", user, password, host)
	}
	return m
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("mail has no recipient")
	}

	body, err := Encode(msg)
	if err != nil {
		return err
	}

	// net/smtp has no context support
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.send(m.addr, m.auth, msg.From, msg.To, body)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to send mail through %s: %w", m.addr, err)
		}
		return nil
	}
}

// Encode renders msg as an RFC 5322 message. A message with an HTML body becomes
// multipart/alternative with the plain text part first.
func Encode(msg Message) ([]byte, error) {
	var buf bytes.Buffer

	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }
	header("From", msg.From)
	header("To", strings.Join(msg.To, ", "))
	header("Subject", msg.Subject)
	header("Date", time.Now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")

	if msg.HTML == "" {
		header("Content-Type", `text/plain; charset="utf-8"`)
		buf.WriteString("\r\n")
		buf.WriteString(msg.Text)
		return buf.Bytes(), nil
	}

	var parts bytes.Buffer
	w := multipart.NewWriter(&parts)
	header("Content-Type", fmt.Sprintf(`multipart/alternative; boundary="%s"`, w.Boundary()))
	buf.WriteString("\r\n")

	for _, p := range []struct{ contentType, body string }{
		{`text/plain; charset="utf-8"`, msg.Text},
		{`text/html; charset="utf-8"`, msg.HTML},
	} {
		pw, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {p.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := pw.Write([]byte(p.body)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	buf.Write(parts.Bytes())
	return buf.Bytes(), nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (l *LogMailer) Send(_ context.Context, msg Message) error {
	zap.S().Named("mail").Infow("mail not sent, no smtp relay configured",
		"to", msg.To, "subject", msg.Subject)
	return nil
}
