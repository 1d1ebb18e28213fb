package mail

import (
	"context"

	"github.com/PabloPavan/varejao_api/internal/telemetry"
)

// LogSender only records the message in the application log. It is the
// development default when no transport is configured.
type LogSender struct {
	From From
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	telemetry.LogInfo(ctx, "email not sent (log driver)",
		telemetry.LogString("mail.from", s.From.String()),
		telemetry.LogString("mail.to", msg.To),
		telemetry.LogString("mail.subject", msg.Subject),
		telemetry.LogInt("mail.html_bytes", len(msg.HTML)),
	)
	return nil
}
