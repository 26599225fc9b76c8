package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/banquet-booking/internal/handler"
	"github.com/iliyamo/banquet-booking/internal/middleware"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Bookings *handler.BookingHandler
	Payments *handler.PaymentHandler
	Banquets *handler.BanquetHandler
	DB       handler.Pinger
}

// RegisterRoutes mounts every route on e.  authLimiter wraps the
// unauthenticated auth endpoints; jwtSecret verifies bearer tokens on the
// booking and payment routes.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, authLimiter echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	if h.DB != nil {
		e.GET("/readyz", handler.Ready(h.DB))
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Register, login: no session required.
	a := e.Group("/v1/auth")
	if authLimiter != nil {
		a.Use(authLimiter)
	}
	a.POST("/register", h.Auth.Register)
	a.POST("/login", h.Auth.Login)

	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	v1.GET("/banquets", h.Banquets.List)
	v1.GET("/banquets/:id", h.Banquets.Get)
	v1.GET("/event-types", h.Banquets.ListEventTypes)

	v1.POST("/bookings", h.Bookings.Create)
	v1.GET("/bookings/:id", h.Bookings.Get)
	v1.PUT("/bookings/:id", h.Bookings.Update)
	v1.DELETE("/bookings/:id", h.Bookings.Delete)

	v1.POST("/payments", h.Payments.Save)
	v1.GET("/payments/:id", h.Payments.Find)
}
