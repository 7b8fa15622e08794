package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softstep/shop/internal/logging"
	"github.com/softstep/shop/internal/service"
	"github.com/softstep/shop/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var items []transport.CreateOrderItem
	if err := c.Bind(&items); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	order, err := h.Svc.Create(ctx, items)
	if err != nil {
		l.Warn("create_order_error", "error", err)
		return respondError(c, err)
	}

	l.Info("create_order_success", "orderID", order.OrderID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.Svc.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list orders failed", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) PendingCount(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.Svc.PendingCount(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("pending count failed", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.PendingCountResponse{Count: count})
}

func (h *OrderHTTP) Confirm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.confirm")
	orderID := c.Param("orderId")

	if err := h.Svc.Confirm(ctx, orderID); err != nil {
		l.Warn("confirm_order_error", "orderID", orderID, "error", err)
		return respondError(c, err)
	}

	l.Info("confirm_order_success", "orderID", orderID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Order confirmed and stock updated"})
}
