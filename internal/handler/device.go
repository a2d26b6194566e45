package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/model"
	"github.com/smartflags/seat-allocation/internal/repository"
)

// DeviceHandler exposes CRUD for pairing devices and their optional
// static seat binding. Device serials are unique within a property.
type DeviceHandler struct {
	DeviceRepo *repository.DeviceRepo
	SeatRepo   *repository.SeatRepo
}

// NewDeviceHandler constructs a DeviceHandler.
func NewDeviceHandler(deviceRepo *repository.DeviceRepo, seatRepo *repository.SeatRepo) *DeviceHandler {
	if deviceRepo == nil || seatRepo == nil {
		panic("nil repository passed to NewDeviceHandler")
	}
	return &DeviceHandler{DeviceRepo: deviceRepo, SeatRepo: seatRepo}
}

// Create handles POST /v1/devices. A duplicate serial within the same
// property yields 409.
func (h *DeviceHandler) Create(c echo.Context) error {
	var body struct {
		PropertyID uint64 `json:"property_id"`
		Name       string `json:"name"`
		Serial     string `json:"serial"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 || body.Serial == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id and serial are required"})
	}
	d := &model.Device{PropertyID: body.PropertyID, Name: body.Name, Serial: body.Serial}
	if err := h.DeviceRepo.Create(c.Request().Context(), d); err != nil {
		if errors.Is(err, repository.ErrDuplicateDevice) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "device serial already registered for this property"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create device"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": d})
}

// List handles GET /v1/properties/:property_id/devices.
func (h *DeviceHandler) List(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	devices, err := h.DeviceRepo.GetByProperty(c.Request().Context(), propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load devices"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": devices})
}

// BindSeat handles PATCH /v1/devices/:id/seat. A null seat_id removes
// the binding; a non-null one moves the device to that seat.
func (h *DeviceHandler) BindSeat(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		SeatID *uint64 `json:"seat_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SeatID != nil {
		if _, err := h.SeatRepo.GetByID(c.Request().Context(), *body.SeatID); err != nil {
			if errors.Is(err, repository.ErrSeatNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	if err := h.DeviceRepo.BindSeat(c.Request().Context(), id, body.SeatID); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to bind device"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "seat_id": body.SeatID})
}

// Delete handles DELETE /v1/devices/:id.
func (h *DeviceHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.DeviceRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete device"})
	}
	return c.NoContent(http.StatusNoContent)
}
