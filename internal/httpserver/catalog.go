package httpserver

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_schema/internal/transport"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
	middleware "github.com/Skotchmaster/shop_schema/pkg/middleware/auth"
)

// adminLogger tags the request logger with the token subject set by the
// admin guard.
func adminLogger(c echo.Context, handler string) *slog.Logger {
	return logging.FromContext(c.Request().Context()).With("handler", handler, "admin", middleware.Subject(c))
}

func (h *ShopHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_categories")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return serviceError(l, "list_categories_error", err, "cannot list categories")
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *ShopHTTP) GetCategoryProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.category_products")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "category_products_error", "invalid id", err)
	}

	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.CategoryProducts(ctx, id, offset, limit)
	if err != nil {
		return serviceError(l, "category_products_error", err, "cannot get products")
	}
	return c.JSON(http.StatusOK, transport.NewPage(items, page, offset, limit, total))
}

func (h *ShopHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := adminLogger(c, "catalog.create_category")

	var req transport.CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(l, "category_create_error", "invalid body", err)
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return serviceError(l, "category_create_error", err, "cannot create category")
	}

	l.Info("category_create_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *ShopHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := adminLogger(c, "catalog.delete_category")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "category_delete_error", "invalid id", err)
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return serviceError(l, "category_delete_error", err, "cannot delete category")
	}

	l.Info("category_delete_success", "category_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ShopHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_product_error", "invalid id", err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return serviceError(l, "get_product_error", err, "cannot get product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ShopHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		return serviceError(l, "get_products_error", err, "cannot get products")
	}
	return c.JSON(http.StatusOK, transport.NewPage(items, page, offset, limit, total))
}

func (h *ShopHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_products")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_products_error", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return serviceError(l, "search_products_error", err, "search failed")
	}
	return c.JSON(http.StatusOK, transport.NewPage(items, page, offset, limit, total))
}

func (h *ShopHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := adminLogger(c, "catalog.create_product")

	var req transport.CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(l, "product_create_error", "invalid body", err)
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return serviceError(l, "product_create_error", err, "cannot add product to db")
	}

	l.Info("product_create_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ShopHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := adminLogger(c, "catalog.patch_product")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "product_patch_error", "invalid id", err)
	}

	var req transport.PatchProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(l, "product_patch_error", "invalid body", err)
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		return serviceError(l, "product_patch_error", err, "cannot update product")
	}

	l.Info("product_patch_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ShopHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := adminLogger(c, "catalog.delete_product")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "product_delete_error", "invalid id", err)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return serviceError(l, "product_delete_error", err, "cannot delete product from db")
	}

	l.Info("product_delete_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
