package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/live"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Deps struct {
	Auth *authmw.Authenticator

	CatalogHandler   *CatalogHTTP
	CartHandler      *CartHTTP
	OrderHandler     *OrderHTTP
	AuthHandler      *AuthHTTP
	UserHandler      *UserHTTP
	ReviewHandler    *ReviewHTTP
	AnalyticsHandler *AnalyticsHTTP
	LiveHandler      *live.Handler

	// Ready reports whether the database answers; nil means always ready.
	Ready   func(ctx context.Context) error
	Metrics http.Handler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		if err := d.Ready(c.Request().Context()); err != nil {
			logging.FromContext(c.Request().Context()).Warn("readiness_failed", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	authMW := d.Auth

	a := e.Group("/auth")
	a.POST("/register", d.AuthHandler.Register)
	a.POST("/verify-otp", d.AuthHandler.VerifyOTP)
	a.POST("/resend-otp", d.AuthHandler.ResendOTP)
	a.POST("/login", d.AuthHandler.Login)
	a.GET("/profile", d.AuthHandler.GetProfile, authMW.RequireAuth)
	a.PUT("/profile", d.AuthHandler.UpdateProfile, authMW.RequireAuth)

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.POST("/custom", d.CatalogHandler.CustomProduct)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct, authMW.RequireAdmin)
	products.PUT("/:id", d.CatalogHandler.PatchProduct, authMW.RequireAdmin)
	products.PATCH("/:id", d.CatalogHandler.PatchProduct, authMW.RequireAdmin)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, authMW.RequireAdmin)

	cart := e.Group("/cart", authMW.Resolve)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddItem)
	cart.DELETE("", d.CartHandler.Clear)
	cart.PUT("/:itemId", d.CartHandler.UpdateItem)
	cart.DELETE("/:itemId", d.CartHandler.RemoveItem)

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.GetMyOrders, authMW.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder, authMW.RequireAuth)
	orders.GET("/all", d.OrderHandler.GetAllOrders, authMW.RequireAdmin)
	orders.GET("/:id", d.OrderHandler.GetOrder, authMW.RequireAuth)
	orders.PUT("/:id/cancel", d.OrderHandler.CancelOrder, authMW.RequireAuth)
	orders.PUT("/:id", d.OrderHandler.UpdateOrder, authMW.RequireAdmin)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder, authMW.RequireAdmin)

	reviews := e.Group("/reviews")
	reviews.POST("", d.ReviewHandler.Submit)
	reviews.GET("/approved", d.ReviewHandler.GetApproved)
	reviews.GET("/all", d.ReviewHandler.GetAll, authMW.RequireAdmin)
	reviews.PATCH("/:id", d.ReviewHandler.SetStatus, authMW.RequireAdmin)
	reviews.PATCH("/:id/status", d.ReviewHandler.SetStatus, authMW.RequireAdmin)
	reviews.DELETE("/:id", d.ReviewHandler.Delete, authMW.RequireAdmin)

	users := e.Group("/users", authMW.RequireAdmin)
	users.GET("", d.UserHandler.GetUsers)
	users.PATCH("/:id", d.UserHandler.SetRole)
	users.PATCH("/:id/role", d.UserHandler.SetRole)
	users.DELETE("/:id", d.UserHandler.DeleteUser)

	e.GET("/analytics/dashboard", d.AnalyticsHandler.Dashboard, authMW.RequireAdmin)

	if d.LiveHandler != nil {
		e.GET("/admin/live/orders", d.LiveHandler.Subscribe, authMW.RequireAdmin)
	}
}
