package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/handler"
	"github.com/smartflags/seat-allocation/internal/middleware"
	"github.com/smartflags/seat-allocation/internal/model"
)

// RegisterInventory registers seat, seat type, device and group
// endpoints under /v1. Listings are readable by every property role
// and may be wrapped in the response cache; mutations are restricted
// to managers and supervisors and bump the cache generation so cached
// listings drop immediately. The limiter sits after JWTAuth so
// user-aware rate keys see the authenticated user. Any of the three
// middleware may be nil to skip it.
func RegisterInventory(e *echo.Echo, seats *handler.SeatHandler, seatTypes *handler.SeatTypeHandler, devices *handler.DeviceHandler, groups *handler.GroupHandler, jwtSecret string, cache, limiter, invalidate echo.MiddlewareFunc) {
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
	listMW := []echo.MiddlewareFunc{}
	if cache != nil {
		listMW = append(listMW, cache)
	}
	read.GET("/properties/:property_id/seats", seats.List, listMW...)
	read.GET("/properties/:property_id/seat-types", seatTypes.List, listMW...)
	read.GET("/properties/:property_id/devices", devices.List, listMW...)
	read.GET("/properties/:property_id/groups", groups.List, listMW...)

	manageMW := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleFBManager, model.RoleSupervisor),
	}
	if limiter != nil {
		manageMW = append(manageMW, limiter)
	}
	if invalidate != nil {
		manageMW = append(manageMW, invalidate)
	}
	manage := e.Group("/v1", manageMW...)
	manage.POST("/seats/generate", seats.Generate)
	manage.POST("/seats", seats.Create)
	manage.PATCH("/seats/:id/block", seats.ToggleBlock)
	manage.PATCH("/seats/:id/status", seats.SetStatus)
	manage.POST("/seats/bulk-status", seats.BulkSetStatus)

	manage.POST("/seat-types", seatTypes.Create)
	manage.DELETE("/seat-types/:id", seatTypes.Delete)

	manage.POST("/devices", devices.Create)
	manage.PATCH("/devices/:id/seat", devices.BindSeat)
	manage.DELETE("/devices/:id", devices.Delete)

	manage.POST("/groups", groups.Create)
	manage.PUT("/groups/:id/seats", groups.UpdateSeats)
	manage.DELETE("/groups/:id", groups.Delete)
}
