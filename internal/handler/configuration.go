package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartflags/seat-allocation/internal/repository"
)

// ConfigurationHandler exposes the per-property check-in/check-out
// clock times used by the eligibility check.
type ConfigurationHandler struct {
	ConfigRepo *repository.ConfigurationRepo
}

// NewConfigurationHandler constructs a ConfigurationHandler.
func NewConfigurationHandler(repo *repository.ConfigurationRepo) *ConfigurationHandler {
	if repo == nil {
		panic("nil repository passed to NewConfigurationHandler")
	}
	return &ConfigurationHandler{ConfigRepo: repo}
}

// Get handles GET /v1/properties/:property_id/configuration. Properties
// without a stored row get the documented defaults.
func (h *ConfigurationHandler) Get(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	cfg, err := h.ConfigRepo.Get(c.Request().Context(), propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load configuration"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": cfg})
}

// Put handles PUT /v1/properties/:property_id/configuration as an upsert.
func (h *ConfigurationHandler) Put(c echo.Context) error {
	propertyID, err := pathID(c, "property_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		CheckInTime  string `json:"check_in_time"`
		CheckOutTime string `json:"check_out_time"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CheckInTime == "" && body.CheckOutTime == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "empty update payload"})
	}
	cfg, err := h.ConfigRepo.Get(c.Request().Context(), propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load configuration"})
	}
	if body.CheckInTime != "" {
		if !validClock(body.CheckInTime) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "check_in_time must be HH:MM"})
		}
		cfg.CheckInTime = body.CheckInTime
	}
	if body.CheckOutTime != "" {
		if !validClock(body.CheckOutTime) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "check_out_time must be HH:MM"})
		}
		cfg.CheckOutTime = body.CheckOutTime
	}
	if err := h.ConfigRepo.Upsert(c.Request().Context(), cfg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save configuration"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": cfg})
}

func validClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}
