package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/model"
	"github.com/smartflags/seat-allocation/internal/repository"
)

// SeatTypeHandler exposes CRUD for seat types (sunbed, cabana, ...).
type SeatTypeHandler struct {
	SeatTypeRepo *repository.SeatTypeRepo
}

// NewSeatTypeHandler constructs a SeatTypeHandler.
func NewSeatTypeHandler(repo *repository.SeatTypeRepo) *SeatTypeHandler {
	if repo == nil {
		panic("nil repository passed to NewSeatTypeHandler")
	}
	return &SeatTypeHandler{SeatTypeRepo: repo}
}

// Create handles POST /v1/seat-types.
func (h *SeatTypeHandler) Create(c echo.Context) error {
	var body struct {
		PropertyID uint64 `json:"property_id"`
		Name       string `json:"name"`
		Icon       string `json:"icon"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PropertyID == 0 || body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id and name are required"})
	}
	st := &model.SeatType{PropertyID: body.PropertyID, Name: body.Name, Icon: body.Icon}
	if err := h.SeatTypeRepo.Create(c.Request().Context(), st); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seat type"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": st})
}

// List handles GET /v1/properties/:property_id/seat-types.
func (h *SeatTypeHandler) List(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	types, err := h.SeatTypeRepo.GetByProperty(c.Request().Context(), propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat types"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": types})
}

// Delete handles DELETE /v1/seat-types/:id.
func (h *SeatTypeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.SeatTypeRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSeatTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete seat type"})
	}
	return c.NoContent(http.StatusNoContent)
}
