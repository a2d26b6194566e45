package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/model"
	"github.com/smartflags/seat-allocation/internal/repository"
)

// SeatHandler exposes seat inventory management: bulk generation,
// single creation, listing, block toggling and status updates. All
// methods assume JWT authentication and role validation has already
// been performed by middleware.
type SeatHandler struct {
	SeatRepo     *repository.SeatRepo
	SeatTypeRepo *repository.SeatTypeRepo
}

// NewSeatHandler constructs a SeatHandler. All dependencies must be non-nil.
func NewSeatHandler(seatRepo *repository.SeatRepo, seatTypeRepo *repository.SeatTypeRepo) *SeatHandler {
	if seatRepo == nil || seatTypeRepo == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{SeatRepo: seatRepo, SeatTypeRepo: seatTypeRepo}
}

// Generate handles POST /v1/seats/generate. It creates a numbered run
// of seats in one statement: prefix "A-" with range 1..12 produces
// A-01 through A-12, every seat starting FREE. A reversed range or a
// span over the configured maximum yields 422.
func (h *SeatHandler) Generate(c echo.Context) error {
	var body struct {
		PropertyID  uint64  `json:"property_id"`
		SeatTypeID  uint64  `json:"seat_type_id"`
		GroupID     *uint64 `json:"group_id"`
		Prefix      string  `json:"prefix"`
		Suffix      string  `json:"suffix"`
		StartNumber int     `json:"start_number"`
		EndNumber   int     `json:"end_number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 || body.SeatTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id and seat_type_id are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.SeatTypeRepo.GetByID(ctx, body.SeatTypeID); err != nil {
		if errors.Is(err, repository.ErrSeatTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	numbers, err := repository.BuildSeatNumbers(body.Prefix, body.Suffix, body.StartNumber, body.EndNumber)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidRange) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	count, err := h.SeatRepo.GenerateSeats(ctx, body.PropertyID, body.SeatTypeID, body.GroupID, numbers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"count": count})
}

// Create handles POST /v1/seats for a single seat.
func (h *SeatHandler) Create(c echo.Context) error {
	var body struct {
		PropertyID uint64  `json:"property_id"`
		SeatTypeID uint64  `json:"seat_type_id"`
		GroupID    *uint64 `json:"group_id"`
		SeatNumber string  `json:"seat_number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 || body.SeatTypeID == 0 || body.SeatNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id, seat_type_id and seat_number are required"})
	}
	seat := &model.Seat{
		PropertyID: body.PropertyID,
		SeatTypeID: body.SeatTypeID,
		GroupID:    body.GroupID,
		SeatNumber: body.SeatNumber,
		Status:     model.SeatFree,
	}
	if err := h.SeatRepo.Create(c.Request().Context(), seat); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seat"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": seat})
}

// List handles GET /v1/properties/:property_id/seats with an optional
// ?status= filter restricted to the seat status enum.
func (h *SeatHandler) List(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	status := model.SeatStatus(c.QueryParam("status"))
	if status != "" && !status.IsValid() {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid seat status"})
	}
	seats, err := h.SeatRepo.GetByProperty(c.Request().Context(), propertyID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seats})
}

// ToggleBlock handles PATCH /v1/seats/:id/block. It flips a seat
// between FREE and BLOCKED. A seat currently referenced by an active
// allocation is ALLOCATED and cannot be toggled; doing so would free a
// seat out from under the allocation, so the request fails with 409.
func (h *SeatHandler) ToggleBlock(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	status, err := h.SeatRepo.ToggleBlock(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSeatNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		case errors.Is(err, repository.ErrSeatAllocated):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat is allocated"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle seat"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

// SetStatus handles PATCH /v1/seats/:id/status.
func (h *SeatHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		Status model.SeatStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !body.Status.IsValid() {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid seat status"})
	}
	if err := h.SeatRepo.SetStatus(c.Request().Context(), id, body.Status); err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seat"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": body.Status})
}

// BulkSetStatus handles POST /v1/seats/bulk-status.
func (h *SeatHandler) BulkSetStatus(c echo.Context) error {
	var body struct {
		SeatIDs []uint64         `json:"seat_ids"`
		Status  model.SeatStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ids := dedupeIDs(body.SeatIDs)
	if len(ids) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "seat_ids is required"})
	}
	if !body.Status.IsValid() {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid seat status"})
	}
	if err := h.SeatRepo.BulkSetStatus(c.Request().Context(), ids, body.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": len(ids), "status": body.Status})
}
