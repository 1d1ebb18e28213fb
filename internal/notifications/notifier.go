package notifications

import (
	"context"

	"github.com/PabloPavan/varejao_api/internal/orders"
	"github.com/PabloPavan/varejao_api/internal/queue"
	"github.com/PabloPavan/varejao_api/internal/users"
)

const (
	JobUserWelcome  = "user.welcome"
	JobOrderPlaced  = "order.placed"
	JobOrderShipped = "order.shipped"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, jobType string, payload any) (queue.Receipt, error)
}

type WelcomePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderPayload struct {
	Order orders.Order `json:"order"`
}

// Notifier turns domain events into queued jobs. It never sends anything
// itself.
type Notifier struct {
	Queue Enqueuer
}

func (n *Notifier) UserRegistered(ctx context.Context, u users.User) (queue.Receipt, error) {
	return n.Queue.Enqueue(ctx, JobUserWelcome, WelcomePayload{Name: u.Name, Email: u.Email})
}

func (n *Notifier) OrderPlaced(ctx context.Context, o orders.Order) (queue.Receipt, error) {
	return n.Queue.Enqueue(ctx, JobOrderPlaced, OrderPayload{Order: o})
}

func (n *Notifier) OrderShipped(ctx context.Context, o orders.Order) (queue.Receipt, error) {
	return n.Queue.Enqueue(ctx, JobOrderShipped, OrderPayload{Order: o})
}
