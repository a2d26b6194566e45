package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/handler"
	"github.com/smartflags/seat-allocation/internal/middleware"
	"github.com/smartflags/seat-allocation/internal/model"
)

// RegisterGuests registers guest registry and property configuration
// endpoints under /v1. Importing and clearing the daily list, and
// editing configuration, are manager/supervisor operations; listing is
// open to every property role. The limiter sits after JWTAuth so
// user-aware rate keys see the authenticated user; pass nil to skip it.
func RegisterGuests(e *echo.Echo, guests *handler.GuestHandler, config *handler.ConfigurationHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	readMW := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(
			model.RoleFBManager,
			model.RoleFBServer,
			model.RolePoolBeachAttendant,
			model.RoleSupervisor,
		),
	}
	if limiter != nil {
		readMW = append(readMW, limiter)
	}
	read := e.Group("/v1", readMW...)
	read.GET("/properties/:property_id/guests", guests.List)
	read.GET("/properties/:property_id/configuration", config.Get)

	manageMW := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleFBManager, model.RoleSupervisor),
	}
	if limiter != nil {
		manageMW = append(manageMW, limiter)
	}
	manage := e.Group("/v1", manageMW...)
	manage.POST("/guests", guests.Create)
	manage.POST("/guests/bulk", guests.CreateBulk)
	manage.DELETE("/guests/:id", guests.Delete)
	manage.DELETE("/properties/:property_id/guests", guests.DeleteAll)
	manage.PUT("/properties/:property_id/configuration", config.Put)
}
