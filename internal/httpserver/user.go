package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_schema/internal/service"
	"github.com/Skotchmaster/shop_schema/internal/transport"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
)

func (h *ShopHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(l, "user_create_error", "invalid body", err)
	}

	user, err := h.Svc.CreateUser(ctx, req)
	if err != nil {
		return serviceError(l, "user_create_error", err, "cannot create user")
	}

	l.Info("user_create_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *ShopHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "user_get_error", "invalid id", err)
	}

	user, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		return serviceError(l, "user_get_error", err, "cannot get user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *ShopHTTP) PatchUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.patch")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "user_patch_error", "invalid id", err)
	}

	var req transport.PatchUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(l, "user_patch_error", "invalid body", err)
	}

	user, err := h.Svc.PatchUser(ctx, id, req)
	if err != nil {
		return serviceError(l, "user_patch_error", err, "cannot update user")
	}

	l.Info("user_patch_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *ShopHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "user_delete_error", "invalid id", err)
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		return serviceError(l, "user_delete_error", err, "cannot delete user")
	}

	l.Info("user_delete_success", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}

// CreateUserCart returns the user's cart, creating it when missing.
func (h *ShopHTTP) CreateUserCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create_cart")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "user_cart_error", "invalid id", err)
	}

	cart, err := h.Svc.UserCart(ctx, id)
	if err != nil {
		return serviceError(l, "user_cart_error", err, "cannot create cart")
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *ShopHTTP) GetUserCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_cart")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "user_cart_error", "invalid id", err)
	}

	cart, err := h.Svc.GetUserCart(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("user_cart_error", "status", 404, "reason", "user has no cart", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user has no cart")
		}
		return serviceError(l, "user_cart_error", err, "cannot get cart")
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *ShopHTTP) ListUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list_orders")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "user_orders_error", "invalid id", err)
	}

	page, offset, limit := pageParams(c)
	total, orders, err := h.Svc.ListOrders(ctx, id, offset, limit)
	if err != nil {
		return serviceError(l, "user_orders_error", err, "cannot list orders")
	}
	return c.JSON(http.StatusOK, transport.NewPage(orders, page, offset, limit, total))
}
