// Package mailer delivers outbound email. Delivery is synchronous: a failed
// send is returned to the caller and is never retried or queued.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yamdb-api/config"

	"github.com/op/go-logging"
)

type Message struct {
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var ErrNoRecipients = errors.New("message has no recipients")

// New returns the transport selected by MAIL_BACKEND.
func New(cfg config.MailConfig, log *logging.Logger) (Mailer, error) {
	switch strings.ToLower(cfg.Backend) {
	case "smtp":
		return NewSMTPMailer(cfg)
	case "console", "":
		return NewConsoleMailer(cfg.From, log), nil
	default:
		return nil, fmt.Errorf("unknown mail backend %q", cfg.Backend)
	}
}

// ConsoleMailer writes messages to the log instead of sending them.
type ConsoleMailer struct {
	from string
	log  *logging.Logger
}

func NewConsoleMailer(from string, log *logging.Logger) *ConsoleMailer {
	return &ConsoleMailer{from: from, log: log}
}

func (m *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Infof("mail from=%s to=%s subject=%q\n%s",
		m.from, strings.Join(msg.To, ","), msg.Subject, msg.Body)
	return nil
}
