package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_schema/internal/transport"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
)

func (h *ShopHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(l, "order_create_error", "invalid body", err)
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return serviceError(l, "order_create_error", err, "cannot create order")
	}

	l.Info("order_create_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *ShopHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "order_get_error", "invalid id", err)
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return serviceError(l, "order_get_error", err, "cannot get order")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *ShopHTTP) SetOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.set_status")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "order_status_error", "invalid id", err)
	}

	var req transport.SetOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(l, "order_status_error", "invalid body", err)
	}

	order, err := h.Svc.SetOrderStatus(ctx, id, req.Status)
	if err != nil {
		return serviceError(l, "order_status_error", err, "cannot update order")
	}

	l.Info("order_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}
