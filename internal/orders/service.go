package orders

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/PabloPavan/varejao_api/internal/apperrors"
	"github.com/PabloPavan/varejao_api/internal/queue"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/google/uuid"
)

const (
	msgIncompleteCheckout = "Dados incompletos para checkout"
	msgNotFound           = "Pedido não encontrado"
)

type Store interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]*Order, error)
	ListByUser(ctx context.Context, email string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
}

// Notifier schedules order emails. Its errors are logged and dropped.
type Notifier interface {
	OrderPlaced(ctx context.Context, o Order) (queue.Receipt, error)
	OrderShipped(ctx context.Context, o Order) (queue.Receipt, error)
}

type Service struct {
	Store       Store
	Notifier    Notifier
	IDGenerator func() string
}

// Checkout persists a new order. The status is always StatusPending,
// whatever the caller sent.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*Order, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "orders store not configured")
	}

	email := strings.ToLower(strings.TrimSpace(in.UserEmail))
	if email == "" || in.TotalPrice == nil || in.TotalPrice.IsZero() || len(in.Items) == 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, msgIncompleteCheckout)
	}
	if in.TotalPrice.IsNegative() {
		return nil, apperrors.New(apperrors.KindInvalidInput, msgIncompleteCheckout)
	}

	idGen := s.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}

	items := make([]json.RawMessage, len(in.Items))
	for i, it := range in.Items {
		items[i] = append(json.RawMessage(nil), it...)
	}

	o := &Order{
		ID:         idGen(),
		UserEmail:  email,
		TotalPrice: *in.TotalPrice,
		Items:      items,
		Status:     StatusPending,
	}

	if err := s.Store.Create(ctx, o); err != nil {
		return nil, apperrors.Internal("failed to create order", err)
	}

	if s.Notifier != nil {
		if _, err := s.Notifier.OrderPlaced(ctx, *o); err != nil {
			s.logNotifyFailure(ctx, "order placed notification not queued", o.ID, err)
		}
	}

	return o, nil
}

func (s *Service) List(ctx context.Context) ([]*Order, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "orders store not configured")
	}

	list, err := s.Store.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list orders", err)
	}
	return newestFirst(list), nil
}

func (s *Service) ListByUser(ctx context.Context, email string) ([]*Order, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "orders store not configured")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return []*Order{}, nil
	}

	list, err := s.Store.ListByUser(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to list user orders", err)
	}
	return newestFirst(list), nil
}

// UpdateStatus sets the order status, defaulting to StatusShipped when
// status is nil or blank. Any string is accepted.
func (s *Service) UpdateStatus(ctx context.Context, id string, status *string) (*Order, error) {
	if s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "orders store not configured")
	}

	id = strings.TrimSpace(id)
	if uuid.Validate(id) != nil {
		return nil, apperrors.New(apperrors.KindNotFound, msgNotFound)
	}

	newStatus := StatusShipped
	if status != nil && strings.TrimSpace(*status) != "" {
		newStatus = strings.TrimSpace(*status)
	}

	o, err := s.Store.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if IsNotFound(err) {
			return nil, apperrors.New(apperrors.KindNotFound, msgNotFound)
		}
		return nil, apperrors.Internal("failed to update order", err)
	}

	if s.Notifier != nil {
		if _, err := s.Notifier.OrderShipped(ctx, *o); err != nil {
			s.logNotifyFailure(ctx, "order shipped notification not queued", o.ID, err)
		}
	}

	return o, nil
}

func (s *Service) logNotifyFailure(ctx context.Context, msg, orderID string, err error) {
	telemetry.LogWarn(ctx, msg,
		telemetry.LogString("order.id", orderID),
		telemetry.LogErr(err),
	)
}

// newestFirst guarantees created_at descending order whatever the store
// returned. Ties keep their relative order.
func newestFirst(list []*Order) []*Order {
	if list == nil {
		return []*Order{}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}
