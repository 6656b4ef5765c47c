package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	middleware "github.com/Skotchmaster/shop_schema/pkg/middleware/auth"
)

type Deps struct {
	ShopHandler *ShopHTTP
	DB          *gorm.DB
	JWTSecret   []byte
}

func Register(e *echo.Echo, d *Deps) {
	if e.Validator == nil {
		e.Validator = NewRequestValidator()
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	h := d.ShopHandler
	api := e.Group("/api/v1")

	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.PatchUser)
	users.DELETE("/:id", h.DeleteUser)
	users.POST("/:id/cart", h.CreateUserCart)
	users.GET("/:id/cart", h.GetUserCart)
	users.GET("/:id/orders", h.ListUserOrders)

	carts := api.Group("/carts")
	carts.POST("", h.CreateCart)
	carts.GET("/:id", h.GetCart)
	carts.POST("/:id/items", h.AddCartItem)
	carts.DELETE("/:id/items", h.ClearCart)
	carts.DELETE("/:id/items/:item", h.RemoveCartItem)
	carts.POST("/:id/checkout", h.Checkout)

	orders := api.Group("/orders")
	orders.POST("", h.CreateOrder)
	orders.GET("/:id", h.GetOrder)
	orders.PATCH("/:id/status", h.SetOrderStatus)

	api.GET("/categories", h.ListCategories)
	api.GET("/categories/:id/products", h.GetCategoryProducts)

	products := api.Group("/products")
	products.GET("/search", h.SearchProducts)
	products.GET("", h.GetProducts)
	products.GET("/:id", h.GetProduct)

	if len(d.JWTSecret) == 0 {
		slog.Warn("admin_routes_disabled", "reason", "JWT_SECRET is empty")
		return
	}

	authMW := middleware.NewJWTMiddleware(d.JWTSecret)
	admin := api.Group("/admin", authMW.RequireAdmin)
	admin.POST("/categories", h.CreateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)
	admin.POST("/products", h.CreateProduct)
	admin.PATCH("/products/:id", h.PatchProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
}
