package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PabloPavan/varejao_api/internal/mail"
	"github.com/PabloPavan/varejao_api/internal/queue"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/PabloPavan/varejao_api/internal/users"
)

type NameResolver interface {
	DisplayName(ctx context.Context, email string) string
}

// Jobs sends the emails behind each queued notification.
type Jobs struct {
	Renderer   *Renderer
	Sender     mail.Sender
	Names      NameResolver
	AdminEmail string
}

func (j *Jobs) Register(q *queue.Queue) {
	q.Handle(JobUserWelcome, j.welcome)
	q.Handle(JobOrderPlaced, j.orderPlaced)
	q.Handle(JobOrderShipped, j.orderShipped)
}

func (j *Jobs) welcome(ctx context.Context, raw json.RawMessage) error {
	var p WelcomePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode welcome payload: %w", err)
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = users.DefaultDisplayName
	}

	msg, err := j.Renderer.Welcome(p.Email, name)
	if err != nil {
		return err
	}
	return j.send(ctx, JobUserWelcome, msg)
}

// orderPlaced emails the purchaser and, when configured, the store admin.
// Both sends are attempted even if the first fails.
func (j *Jobs) orderPlaced(ctx context.Context, raw json.RawMessage) error {
	var p OrderPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode order payload: %w", err)
	}

	name := j.displayName(ctx, p.Order.UserEmail)

	var errs []error
	msg, err := j.Renderer.OrderPlaced(p.Order.UserEmail, name, p.Order)
	if err == nil {
		err = j.send(ctx, JobOrderPlaced, msg)
	}
	errs = append(errs, err)

	if admin := strings.TrimSpace(j.AdminEmail); admin != "" {
		msg, err := j.Renderer.AdminNewOrder(admin, name, p.Order)
		if err == nil {
			err = j.send(ctx, JobOrderPlaced, msg)
		}
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (j *Jobs) orderShipped(ctx context.Context, raw json.RawMessage) error {
	var p OrderPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode order payload: %w", err)
	}

	name := j.displayName(ctx, p.Order.UserEmail)
	msg, err := j.Renderer.OrderShipped(p.Order.UserEmail, name, p.Order)
	if err != nil {
		return err
	}
	return j.send(ctx, JobOrderShipped, msg)
}

func (j *Jobs) displayName(ctx context.Context, email string) string {
	if j.Names == nil {
		return users.DefaultDisplayName
	}
	return j.Names.DisplayName(ctx, email)
}

func (j *Jobs) send(ctx context.Context, jobType string, msg mail.Message) error {
	if err := j.Sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %q to %s: %w", msg.Subject, msg.To, err)
	}
	telemetry.LogInfo(ctx, "email sent",
		telemetry.LogString("job.type", jobType),
		telemetry.LogString("mail.to", msg.To),
	)
	return nil
}
