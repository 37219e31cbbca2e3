package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/satriadjati/goshop/internal/handlers"
	authmw "github.com/satriadjati/goshop/internal/middleware/auth"
	"github.com/satriadjati/goshop/internal/service"
)

type Deps struct {
	Auth           *service.AuthService
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	requireLogin := authmw.RequireLogin(d.Auth)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	order := e.Group("/order")
	order.POST("", d.OrderHandler.CreateOrder, requireLogin)
	order.GET("", d.OrderHandler.GetUserOrders, requireLogin)
	// Order detail is deliberately public, see the API docs.
	order.GET("/:id", d.OrderHandler.GetOrderByID)
	order.POST("/:id/pay-now", d.OrderHandler.PayOrder, requireLogin)
	order.POST("/:id/cancel", d.OrderHandler.CancelOrder, requireLogin)
	order.PUT("/:id", d.OrderHandler.UpdateOrder, requireLogin)
	order.DELETE("/:id", d.OrderHandler.DeleteOrder, requireLogin)

	product := e.Group("/product")
	product.POST("", d.ProductHandler.CreateProduct)
	product.GET("", d.ProductHandler.GetProducts, requireLogin)
	product.POST("/search", d.ProductHandler.SearchProduct, requireLogin)
	product.GET("/search-text", d.SearchHandler.SearchText)
}
