package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/handler"
	"github.com/smartflags/seat-allocation/internal/middleware"
	"github.com/smartflags/seat-allocation/internal/model"
)

// RegisterAllocations registers the allocation engine endpoints under
// /v1. Every property role can read allocations and flip calling
// flags (attendants toggle them from the floor); creating, changing
// status and deleting require a manager, attendant or supervisor.
// Creation, status changes and deletion flip seat status, so the
// manage group bumps the listing-cache generation. The limiter sits
// after JWTAuth so user-aware rate keys see the authenticated user.
// Either middleware may be nil to skip it.
func RegisterAllocations(e *echo.Echo, allocations *handler.AllocationHandler, jwtSecret string, limiter, invalidate echo.MiddlewareFunc) {
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
	read.GET("/properties/:property_id/allocations", allocations.List)
	read.GET("/properties/:property_id/allocations/allocated-seats", allocations.AllocatedIDs)
	read.GET("/allocations/:id", allocations.Get)
	read.GET("/allocations/:id/events", allocations.ListEvents)
	read.PATCH("/allocations/:id/calling-flag", allocations.SetCallingFlag)

	manageMW := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(
			model.RoleFBManager,
			model.RolePoolBeachAttendant,
			model.RoleSupervisor,
		),
	}
	if limiter != nil {
		manageMW = append(manageMW, limiter)
	}
	if invalidate != nil {
		manageMW = append(manageMW, invalidate)
	}
	manage := e.Group("/v1", manageMW...)
	manage.POST("/allocations", allocations.Create)
	manage.PATCH("/allocations/:id/status", allocations.SetStatus)
	manage.DELETE("/allocations/:id", allocations.Delete)
}
