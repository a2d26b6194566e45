// Package router registers the HTTP surface of the allocation service.
// Routes are grouped by concern: inventory (seats, seat types, devices,
// groups), guest registry and allocations. Everything except the health
// check requires a JWT issued by the property directory service.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
