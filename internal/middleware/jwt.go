package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/banquet-booking/internal/utils"
)

// CustomerIDKey is the echo context key holding the authenticated customer.
const CustomerIDKey = "customer_id"

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// stores the token's subject (the CustomerID) in the request context under
// CustomerIDKey.  It only authenticates; which bookings a customer may
// touch is not decided here.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            customerID, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(CustomerIDKey, customerID)
            return next(c)
        }
    }
}
