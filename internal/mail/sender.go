// Package mail delivers single-recipient HTML emails through SMTP, a
// transactional email HTTP API, or the application log.
package mail

import (
	"context"
	"errors"
	"net/mail"
	"strings"
)

var ErrNoRecipient = errors.New("mail: recipient is required")

type Message struct {
	To      string
	Subject string
	HTML    string
}

func (m Message) validate() error {
	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// From is the sender identity shared by all transports.
type From struct {
	Name  string
	Email string
}

func (f From) String() string {
	addr := mail.Address{Name: f.Name, Address: f.Email}
	return addr.String()
}
