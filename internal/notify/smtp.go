package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// SMTPConfig is the mail server an EmailNotifier talks to.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends notifications as plain text e-mail.
type EmailNotifier struct {
	config   SMTPConfig
	sendMail sendMailFunc
	now      func() time.Time
}

func NewEmailNotifier(config SMTPConfig) (*EmailNotifier, error) {
	if config.Host == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "smtp host is required")
	}

	if config.Port == 0 {
		config.Port = 587
	}

	return &EmailNotifier{
		config:   config,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}, nil
}

// Send implements Notifier.
func (e *EmailNotifier) Send(ctx context.Context, notification types.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if notification.From == "" || len(notification.Recipients) == 0 {
		return errors.New(errors.ErrCodeNotificationFailed, "e-mail needs a sender and at least one recipient")
	}

	var auth smtp.Auth
	if e.config.Username != "" {
		auth = smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)
	}

	addr := net.JoinHostPort(e.config.Host, strconv.Itoa(e.config.Port))

	err := e.sendMail(addr, auth, notification.From, notification.Recipients, e.message(notification))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeNotificationFailed, err, "failed to send e-mail via %s", addr)
	}

	return nil
}

func (e *EmailNotifier) message(notification types.Notification) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", notification.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(notification.Recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(notification.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", e.now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(notification.Body, "\n", "\r\n"))

	return []byte(b.String())
}

// sanitizeHeader keeps a header value on one line.
func sanitizeHeader(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
}
