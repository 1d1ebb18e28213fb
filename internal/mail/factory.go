package mail

import (
	"fmt"

	"github.com/PabloPavan/varejao_api/internal/config"
)

// NewSender builds the Sender selected by cfg.Driver.
func NewSender(cfg config.MailConfig) (Sender, error) {
	from := From{Name: cfg.FromName, Email: cfg.From}

	switch cfg.Driver {
	case config.MailDriverSMTP:
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     from,
		}), nil
	case config.MailDriverAPI:
		return NewAPISender(APIConfig{
			URL:     cfg.API.URL,
			Key:     cfg.API.Key,
			Timeout: cfg.API.Timeout,
			From:    from,
		}), nil
	case config.MailDriverLog, "":
		return LogSender{From: from}, nil
	default:
		return nil, fmt.Errorf("mail: unknown driver %q", cfg.Driver)
	}
}
