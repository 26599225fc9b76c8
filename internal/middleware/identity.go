package middleware

import "github.com/labstack/echo/v4"

// customerID returns the authenticated customer stored by JWTAuth, or
// "anon" before authentication.
func customerID(c echo.Context) string {
    if s, ok := c.Get(CustomerIDKey).(string); ok && s != "" {
        return s
    }
    return "anon"
}
