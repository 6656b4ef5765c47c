package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_schema/internal/transport"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
)

func (h *ShopHTTP) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.create")

	var req transport.CreateCartRequest
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return badRequest(l, "cart_create_error", "invalid body", err)
		}
	}

	cart, err := h.Svc.CreateCart(ctx, req)
	if err != nil {
		return serviceError(l, "cart_create_error", err, "cannot create cart")
	}

	l.Info("cart_create_success", "cart_id", cart.ID)
	return c.JSON(http.StatusCreated, cart)
}

func (h *ShopHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "cart_get_error", "invalid id", err)
	}

	cart, err := h.Svc.GetCart(ctx, id)
	if err != nil {
		return serviceError(l, "cart_get_error", err, "cannot get cart")
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *ShopHTTP) AddCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "cart_add_item_error", "invalid id", err)
	}

	var req transport.AddCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(l, "cart_add_item_error", "invalid body", err)
	}

	item, err := h.Svc.AddCartItem(ctx, id, req)
	if err != nil {
		return serviceError(l, "cart_add_item_error", err, "cannot add item to cart")
	}

	l.Info("cart_add_item_success", "cart_id", id, "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *ShopHTTP) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "cart_remove_item_error", "invalid id", err)
	}
	itemID, err := parseID(c, "item")
	if err != nil {
		return badRequest(l, "cart_remove_item_error", "invalid item id", err)
	}

	if err := h.Svc.RemoveCartItem(ctx, id, itemID); err != nil {
		return serviceError(l, "cart_remove_item_error", err, "cannot remove item")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ShopHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "cart_clear_error", "invalid id", err)
	}

	if err := h.Svc.ClearCart(ctx, id); err != nil {
		return serviceError(l, "cart_clear_error", err, "cannot clear cart")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ShopHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "checkout_error", "invalid id", err)
	}

	order, err := h.Svc.Checkout(ctx, id)
	if err != nil {
		return serviceError(l, "checkout_error", err, "cannot create order")
	}

	l.Info("checkout_success", "cart_id", id, "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}
