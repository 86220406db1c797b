package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndenisov/gostore/internal/handlers"
	"github.com/ndenisov/gostore/internal/logging"
	authmw "github.com/ndenisov/gostore/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	CartHandler     *handlers.CartHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	OrderHandler    *handlers.OrderHandler
	SearchHandler   *handlers.SearchHandler
	Tokens          *authmw.TokenService
	Logger          *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), d.Logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.Logout)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.GET("/categories", d.CategoryHandler.GetCategories)
	api.GET("/categories/:id", d.CategoryHandler.GetCategory)
	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Handler)
	}

	admin := api.Group("", d.Tokens.AdminOnly)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/categories", d.CategoryHandler.CreateCategory)
	admin.PUT("/categories/:id", d.CategoryHandler.UpdateCategory)
	admin.DELETE("/categories/:id", d.CategoryHandler.DeleteCategory)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)

	cart := api.Group("/cart", d.Tokens.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.GET("/count", d.CartHandler.GetCartCount)
	cart.GET("/summary", d.CartHandler.GetCartSummary)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("", d.CartHandler.UpdateQuantity)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/items/:product_id", d.CartHandler.RemoveItem)

	orders := api.Group("/orders", d.Tokens.RequireAuth)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/checkout", d.OrderHandler.Checkout)
}
