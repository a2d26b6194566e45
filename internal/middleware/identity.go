package middleware

import (
	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user id placed in the context
// by JWTAuth. It returns "anon" for unauthenticated requests so rate
// limit keys stay well-formed.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
