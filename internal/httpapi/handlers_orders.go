package httpapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/PabloPavan/varejao_api/internal/orders"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/go-chi/chi/v5"
)

const (
	msgOrderPlaced  = "Compra realizada com sucesso!"
	msgOrderUpdated = "Status do pedido atualizado!"
)

type OrdersService interface {
	Checkout(ctx context.Context, in orders.CheckoutInput) (*orders.Order, error)
	List(ctx context.Context) ([]*orders.Order, error)
	ListByUser(ctx context.Context, email string) ([]*orders.Order, error)
	UpdateStatus(ctx context.Context, id string, status *string) (*orders.Order, error)
}

type OrdersHandler struct {
	Service OrdersService
}

// Checkout
// @Summary Place an order
// @Description The order is always created with status "Pendente".
// @Tags orders
// @Accept json
// @Produce json
// @Param body body CheckoutDTO true "order"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkout [post]
func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, r, err)
		return
	}

	o, err := h.Service.Checkout(r.Context(), req.Input())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	telemetry.LogInfo(r.Context(), "order placed",
		telemetry.LogString("event", "order.placed"),
		telemetry.LogString("order.id", o.ID),
		telemetry.LogInt("order.items", len(o.Items)),
	)

	writeJSON(w, http.StatusCreated, OrderResponse{Message: msgOrderPlaced, Order: o})
}

// List Orders
// @Summary List all orders
// @Tags orders
// @Produce json
// @Success 200 {array} orders.Order
// @Failure 500 {object} ErrorResponse
// @Router /orders [get]
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeOrders(w, list)
}

// ListByUser Orders
// @Summary List orders of a customer
// @Tags orders
// @Produce json
// @Param email path string true "customer email"
// @Success 200 {array} orders.Order
// @Failure 500 {object} ErrorResponse
// @Router /orders/user/{email} [get]
func (h *OrdersHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if unescaped, err := url.PathUnescape(email); err == nil {
		email = unescaped
	}

	list, err := h.Service.ListByUser(r.Context(), email)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeOrders(w, list)
}

// UpdateStatus Order
// @Summary Update order status
// @Description Status defaults to "Enviado 🚚" when omitted.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param body body OrderStatusDTO false "new status"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /orders/{id} [put]
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req OrderStatusDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	o, err := h.Service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	telemetry.LogInfo(r.Context(), "order status updated",
		telemetry.LogString("event", "order.status_updated"),
		telemetry.LogString("order.id", o.ID),
		telemetry.LogString("order.status", o.Status),
	)

	writeJSON(w, http.StatusOK, OrderResponse{Message: msgOrderUpdated, Order: o})
}

func writeOrders(w http.ResponseWriter, list []*orders.Order) {
	if list == nil {
		list = []*orders.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}
